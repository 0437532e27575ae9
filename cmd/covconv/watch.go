package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/avatar-generator/covconv/internal/convert"
	"github.com/avatar-generator/covconv/internal/coverage"
	"github.com/avatar-generator/covconv/internal/watch"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Convert again whenever new coverage data is written",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts := runOptions(cfg, cmd.OutOrStdout())
	if coverage.IsRemote(opts.InputPath) {
		return errors.Errorf("cannot watch remote coverage data at %s", opts.InputPath)
	}

	input := opts.InputPath
	if !filepath.IsAbs(input) {
		input = filepath.Join(opts.ProjectRoot, input)
	}

	eventHandler, err := watch.NewEventHandler(input, func() error {
		return convert.Run(opts)
	})
	if err != nil {
		return err
	}

	// existing data is converted right away
	if err := convert.Run(opts); err != nil {
		logger.Errorf("conversion failed: %+v", err)
	}

	var wg sync.WaitGroup
	done := make(chan struct{})

	setupSignalChannel(done)

	wg.Add(1)
	go func() {
		defer wg.Done()
		logger.Info("starting event handler for coverage data")
		eventHandler.Start(done)

		logger.Info("event handler has shut down")
	}()

	wg.Wait()
	logger.Info("watch has successfully shut down")
	return nil
}

// setupSignalChannel registers a listener for Unix signals for a ordered shutdown
func setupSignalChannel(done chan struct{}) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, os.Interrupt)

	go func() {
		logger.Info("waiting for shutdown signal in the background")
		<-sigChan
		logger.Info("received shutdown signal - initiating shutdown")
		close(done)
	}()
}
