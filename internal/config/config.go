package config

import "time"

// Configuration declares the configuration properties of this app.
type Configuration interface {
	SourceConfig
	CoverageConfig
	CaptureConfig
	LogConfig

	// String returns a string representation of the configuration.
	String() string
}

// SourceConfig defines where the project sources live.
type SourceConfig interface {
	// ProjectRoot returns the absolute path of the project root.
	ProjectRoot() string

	// SourceDir returns the name of the source directory below the project root.
	SourceDir() string

	// ComponentsDir returns the name of the single file component directory below the source directory.
	ComponentsDir() string
}

// CoverageConfig defines the coverage conversion input and output.
type CoverageConfig interface {
	// InputPath returns the location of the browser coverage data, a path relative to the
	// project root, an absolute path or an http(s) URL.
	InputPath() string

	// OutputPath returns the path the Istanbul report is written to.
	OutputPath() string

	// ListDepth returns the maximum depth of the diagnostic source tree listing.
	ListDepth() int
}

// CaptureConfig defines the browser coverage capture settings.
type CaptureConfig interface {
	// BaseURL returns the URL of the running application.
	BaseURL() string

	// Headless returns whether a launched browser runs headless.
	Headless() bool

	// ControlURL returns the DevTools URL of an already running browser, empty to launch one.
	ControlURL() string

	// CaptureTimeout returns the upper bound for waiting on the application and running the scenario.
	CaptureTimeout() time.Duration
}

// LogConfig defines the logging configuration.
type LogConfig interface {
	// Level returns the logging level.
	Level() string
}
