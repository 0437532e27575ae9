package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/avatar-generator/covconv/internal/capture"
	"github.com/spf13/cobra"
)

var captureCmd = &cobra.Command{
	Use:   "capture",
	Short: "Capture coverage by driving the running application in a browser",
	Long: `Open the application at CAPTURE_BASE_URL in Chrome, run the avatar generator
scenario and write the collected coverage to COVERAGE_INPUT.

Set CAPTURE_CONTROL_URL to use an already running browser.`,
	Args: cobra.NoArgs,
	RunE: runCapture,
}

func runCapture(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	output := cfg.InputPath()
	if !filepath.IsAbs(output) {
		output = filepath.Join(cfg.ProjectRoot(), output)
	}

	return capture.Run(ctx, capture.Options{
		BaseURL:    cfg.BaseURL(),
		OutputPath: output,
		Headless:   cfg.Headless(),
		ControlURL: cfg.ControlURL(),
		Timeout:    cfg.CaptureTimeout(),
	})
}
