package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"time"

	"github.com/avatar-generator/covconv/internal/logging"
	"github.com/avatar-generator/covconv/internal/util"
	"github.com/magiconair/properties"
	"github.com/pkg/errors"
)

const (
	// DefaultPropertiesFile is the optional properties file read from the working directory.
	DefaultPropertiesFile = "coverage.properties"
)

var (
	settings = map[string]Setting{}
)

func init() {
	// Sources
	settings["ProjectRoot"] = Setting{"COVERAGE_PROJECT_ROOT", ".", []func(interface{}, string) error{util.IsNotEmpty}}
	settings["SourceDir"] = Setting{"COVERAGE_SOURCE_DIR", "src", []func(interface{}, string) error{util.IsNotEmpty}}
	settings["ComponentsDir"] = Setting{"COVERAGE_COMPONENTS_DIR", "components", []func(interface{}, string) error{util.IsNotEmpty}}

	// Coverage conversion
	settings["InputPath"] = Setting{"COVERAGE_INPUT", filepath.Join("playwright-coverage", "coverage-data.json"), []func(interface{}, string) error{util.IsNotEmpty}}
	settings["OutputPath"] = Setting{"COVERAGE_OUTPUT", filepath.Join(".nyc_output", "out.json"), []func(interface{}, string) error{util.IsNotEmpty}}
	settings["ListDepth"] = Setting{"COVERAGE_LIST_DEPTH", "3", []func(interface{}, string) error{util.IsInt}}

	// Capture
	settings["BaseURL"] = Setting{"CAPTURE_BASE_URL", "http://localhost:5173", []func(interface{}, string) error{util.IsHTTPURL}}
	settings["Headless"] = Setting{"CAPTURE_HEADLESS", "true", []func(interface{}, string) error{util.IsBool}}
	settings["ControlURL"] = Setting{"CAPTURE_CONTROL_URL", "", nil}
	settings["CaptureTimeout"] = Setting{"CAPTURE_TIMEOUT", "60s", []func(interface{}, string) error{util.IsDuration}}

	// Logging
	settings["Level"] = Setting{"LOG_LEVEL", "info", []func(interface{}, string) error{util.IsNotEmpty}}
}

// Setting is an element in the configuration. It contains the environment
// variable from which the setting is retrieved, its default value as well as a list
// of validations which the value of this setting needs to pass.
// The environment variable name doubles as the key in the properties file.
type Setting struct {
	key          string
	defaultValue string
	validations  []func(interface{}, string) error
}

// EnvConfig is a Configuration implementation which reads the configuration from the process environment,
// falling back to an optional properties file and finally to the setting defaults.
type EnvConfig struct {
	props *properties.Properties
}

// NewConfiguration creates a configuration instance. propertiesPath names an optional
// properties file; a missing file is not an error.
func NewConfiguration(propertiesPath string) (Configuration, error) {
	props, err := loadProperties(propertiesPath)
	if err != nil {
		return nil, err
	}
	config := EnvConfig{props: props}

	// Check if we have all we need.
	multiError := config.verify()
	if !multiError.Empty() {
		for _, err := range multiError.Errors {
			logging.AppLogger().Error(err)
		}
		return nil, errors.New("one or more configuration values are missing or invalid")
	}

	return &config, nil
}

func loadProperties(path string) (*properties.Properties, error) {
	if path == "" {
		return properties.NewProperties(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return properties.NewProperties(), nil
	}
	props, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to load properties file %s", path)
	}
	return props, nil
}

// ProjectRoot returns the absolute path of the project root.
func (c *EnvConfig) ProjectRoot() string {
	callPtr, _, _, _ := runtime.Caller(0)
	value := c.getConfigValue(util.NameOfFunction(callPtr))

	abs, err := filepath.Abs(value)
	if err != nil {
		return value
	}
	return abs
}

// SourceDir returns the name of the source directory below the project root.
func (c *EnvConfig) SourceDir() string {
	callPtr, _, _, _ := runtime.Caller(0)
	return c.getConfigValue(util.NameOfFunction(callPtr))
}

// ComponentsDir returns the name of the single file component directory below the source directory.
func (c *EnvConfig) ComponentsDir() string {
	callPtr, _, _, _ := runtime.Caller(0)
	return c.getConfigValue(util.NameOfFunction(callPtr))
}

// InputPath returns the location of the browser coverage data.
func (c *EnvConfig) InputPath() string {
	callPtr, _, _, _ := runtime.Caller(0)
	return c.getConfigValue(util.NameOfFunction(callPtr))
}

// OutputPath returns the path the Istanbul report is written to.
func (c *EnvConfig) OutputPath() string {
	callPtr, _, _, _ := runtime.Caller(0)
	return c.getConfigValue(util.NameOfFunction(callPtr))
}

// ListDepth returns the maximum depth of the diagnostic source tree listing.
func (c *EnvConfig) ListDepth() int {
	callPtr, _, _, _ := runtime.Caller(0)
	value, _ := strconv.Atoi(c.getConfigValue(util.NameOfFunction(callPtr)))
	return value
}

// BaseURL returns the URL of the running application.
func (c *EnvConfig) BaseURL() string {
	callPtr, _, _, _ := runtime.Caller(0)
	return c.getConfigValue(util.NameOfFunction(callPtr))
}

// Headless returns whether a launched browser runs headless.
func (c *EnvConfig) Headless() bool {
	callPtr, _, _, _ := runtime.Caller(0)
	value, _ := strconv.ParseBool(c.getConfigValue(util.NameOfFunction(callPtr)))
	return value
}

// ControlURL returns the DevTools URL of an already running browser.
func (c *EnvConfig) ControlURL() string {
	callPtr, _, _, _ := runtime.Caller(0)
	return c.getConfigValue(util.NameOfFunction(callPtr))
}

// CaptureTimeout returns the upper bound for a capture run.
func (c *EnvConfig) CaptureTimeout() time.Duration {
	callPtr, _, _, _ := runtime.Caller(0)
	value, _ := time.ParseDuration(c.getConfigValue(util.NameOfFunction(callPtr)))
	return value
}

// Level returns the logging level.
func (c *EnvConfig) Level() string {
	callPtr, _, _, _ := runtime.Caller(0)
	return c.getConfigValue(util.NameOfFunction(callPtr))
}

// String returns a string representation of the configuration.
func (c *EnvConfig) String() string {
	config := map[string]interface{}{}
	for key := range settings {
		config[key] = c.getConfigValue(key)
	}
	return fmt.Sprintf("%v", config)
}

// verify checks whether all config options are valid.
func (c *EnvConfig) verify() util.MultiError {
	keys := make([]string, 0, len(settings))
	for key := range settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var errors util.MultiError
	for _, key := range keys {
		setting := settings[key]
		value := c.getConfigValue(key)

		for _, validateFunc := range setting.validations {
			errors.Collect(validateFunc(value, setting.key))
		}
	}

	return errors
}

func (c *EnvConfig) getConfigValue(funcName string) string {
	setting := settings[funcName]

	if value, ok := os.LookupEnv(setting.key); ok {
		return value
	}
	if c.props != nil {
		if value, ok := c.props.Get(setting.key); ok {
			return value
		}
	}
	return setting.defaultValue
}
