// Package logging configures the application wide logrus logger.
package logging

import (
	"os"

	log "github.com/sirupsen/logrus"
)

const (
	// AppName is the name used to identify this application in log output.
	AppName = "covconv"
)

var (
	appLogger *log.Entry
)

func init() {
	logger := log.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
	appLogger = logger.WithFields(log.Fields{"app": AppName})
}

// AppLogger returns the application logger. Callers add their own component field.
func AppLogger() *log.Entry {
	return appLogger
}

// SetLevel sets the log level of the application logger. Unknown levels fall back to info.
func SetLevel(level string) {
	logrusLevel, err := log.ParseLevel(level)
	if err != nil {
		appLogger.Warnf("unknown log level '%s', using 'info'", level)
		logrusLevel = log.InfoLevel
	}
	appLogger.Logger.SetLevel(logrusLevel)
}
