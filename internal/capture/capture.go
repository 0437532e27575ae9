// Package capture collects precise JavaScript coverage from a browser driven through a scenario and
// stores it as the input of the coverage conversion.
package capture

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/avatar-generator/covconv/internal/coverage"
	"github.com/avatar-generator/covconv/internal/logging"
	"github.com/avatar-generator/covconv/internal/util"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultTimeout is used when Options.Timeout is not set.
	DefaultTimeout = 60 * time.Second
)

var (
	logger = logging.AppLogger().WithFields(log.Fields{"component": "capture"})
)

// Options configure a capture run.
type Options struct {
	// BaseURL is the address of the running application.
	BaseURL string
	// OutputPath is where the captured entries are written.
	OutputPath string
	// Headless selects headless mode for a launched browser.
	Headless bool
	// ControlURL connects to a running browser instead of launching one.
	ControlURL string
	// Timeout bounds waiting for the application as well as the scenario itself.
	Timeout time.Duration
	// Scenario is run after the application has loaded. DefaultScenario is used when empty.
	Scenario []Step
}

// Run captures coverage of opts.Scenario and writes it to opts.OutputPath.
func Run(ctx context.Context, opts Options) error {
	if len(opts.Scenario) == 0 {
		opts.Scenario = DefaultScenario()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	controlURL := opts.ControlURL
	if controlURL == "" {
		l := launcher.New().Headless(opts.Headless)
		defer l.Cleanup()

		u, err := l.Launch()
		if err != nil {
			return errors.Wrap(err, "unable to launch browser")
		}
		controlURL = u
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return errors.Wrapf(err, "unable to connect to browser at %s", controlURL)
	}
	defer func() {
		if err := browser.Close(); err != nil {
			logger.Debugf("error closing browser: %s", err)
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return errors.Wrap(err, "unable to open page")
	}

	entries, err := collect(page, opts)
	if err != nil {
		return err
	}
	logger.Infof("collected coverage data: %d entries", len(entries))

	return writeEntries(opts.OutputPath, entries)
}

func collect(page *rod.Page, opts Options) ([]coverage.Entry, error) {
	if err := (proto.ProfilerEnable{}).Call(page); err != nil {
		return nil, errors.Wrap(err, "unable to enable profiler")
	}
	if _, err := (proto.DebuggerEnable{}).Call(page); err != nil {
		return nil, errors.Wrap(err, "unable to enable debugger")
	}
	if _, err := (proto.ProfilerStartPreciseCoverage{CallCount: true, Detailed: true}).Call(page); err != nil {
		return nil, errors.Wrap(err, "unable to start coverage collection")
	}
	logger.Info("started JS coverage collection")

	err := util.ApplyWithBackoffTimeout(func() error {
		err := Navigate{URL: opts.BaseURL}.Run(page)
		if err != nil {
			logger.Debugf("application not reachable yet: %s", err)
		}
		return err
	}, opts.Timeout)
	if err != nil {
		return nil, errors.Wrapf(err, "application at %s did not become reachable", opts.BaseURL)
	}
	logger.Info("page loaded, starting interactions")

	scenarioPage := page.Timeout(opts.Timeout)
	for _, step := range opts.Scenario {
		logger.Debugf("running step: %s", step)
		if err := step.Run(scenarioPage); err != nil {
			return nil, errors.Wrapf(err, "step '%s' failed", step)
		}
	}
	scenarioPage.CancelTimeout()
	logger.Info("interactions complete, collecting coverage")

	taken, err := proto.ProfilerTakePreciseCoverage{}.Call(page)
	if err != nil {
		return nil, errors.Wrap(err, "unable to take coverage")
	}
	if err := (proto.ProfilerStopPreciseCoverage{}).Call(page); err != nil {
		logger.Debugf("error stopping coverage collection: %s", err)
	}

	sources := map[proto.RuntimeScriptID]string{}
	for _, script := range taken.Result {
		if script.URL == "" {
			continue
		}
		source, err := proto.DebuggerGetScriptSource{ScriptID: script.ScriptID}.Call(page)
		if err != nil {
			logger.Warnf("unable to get source of %s: %s", script.URL, err)
			continue
		}
		sources[script.ScriptID] = source.ScriptSource
	}

	return FromProfile(taken.Result, sources), nil
}

func writeEntries(path string, entries []coverage.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(err, "unable to serialize coverage data")
	}

	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrapf(err, "unable to create directory %s", dir)
		}
		logger.Infof("created directory: %s", dir)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrapf(err, "unable to write %s", path)
	}
	logger.Infof("saved coverage data to: %s", path)
	return nil
}
