// covconv converts browser JavaScript coverage of the avatar generator into an Istanbul report.
//
// Usage:
//
//	covconv            convert playwright-coverage/coverage-data.json to .nyc_output/out.json
//	covconv capture    drive the running application in a browser and capture coverage
//	covconv watch      convert again whenever new coverage data is written
//
// Settings are read from the environment, then from coverage.properties.
package main

import (
	"io"
	"os"

	"github.com/avatar-generator/covconv/internal/config"
	"github.com/avatar-generator/covconv/internal/convert"
	"github.com/avatar-generator/covconv/internal/logging"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logger = logging.AppLogger().WithFields(log.Fields{"component": "main"})

	propertiesFile string
	cfg            config.Configuration
)

var rootCmd = &cobra.Command{
	Use:   logging.AppName,
	Short: "Convert browser coverage into an Istanbul report",
	Long: `Convert the function coverage captured from the browser into an Istanbul
coverage report that nyc can render.

Without a subcommand the coverage data is converted once.`,
	Args:              cobra.NoArgs,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	RunE:              runConvert,
}

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert the captured coverage data once",
	Args:  cobra.NoArgs,
	RunE:  runConvert,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&propertiesFile, "properties", config.DefaultPropertiesFile, "Properties file with settings (environment variables take precedence)")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(watchCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("%+v", err)
		os.Exit(1)
	}
}

func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.NewConfiguration(propertiesFile)
	if err != nil {
		return err
	}
	logging.SetLevel(cfg.Level())
	logger.Debugf("starting %s with config: %s", logging.AppName, cfg)
	return nil
}

func runOptions(cfg config.Configuration, out io.Writer) convert.RunOptions {
	return convert.RunOptions{
		Options: convert.Options{
			ProjectRoot:   cfg.ProjectRoot(),
			SourceDir:     cfg.SourceDir(),
			ComponentsDir: cfg.ComponentsDir(),
		},
		InputPath:  cfg.InputPath(),
		OutputPath: cfg.OutputPath(),
		ListDepth:  cfg.ListDepth(),
		Out:        out,
	}
}

func runConvert(cmd *cobra.Command, args []string) error {
	return convert.Run(runOptions(cfg, cmd.OutOrStdout()))
}
