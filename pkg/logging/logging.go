// Package logging configures the shared zap logger for the application.
package logging

import (
	"go.uber.org/zap"
)

// New builds a logger for the given verbosity. Verbose mode uses the
// human-readable development config; otherwise the JSON production config
// is used. Both carry the application name and version as initial fields.
func New(verbose bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config
	if verbose {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop(), err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}
