package logging

import (
	"go.uber.org/zap"
)

// New builds the application logger. Debug switches to the development
// config so per-file decisions become visible. Output always goes to
// stderr; stdout is reserved for command output.
func New(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	// Add default fields
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

// OrNop returns logger, or a no-op logger when it is nil.
func OrNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
