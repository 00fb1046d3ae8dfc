// Package logging provides the process-wide zap logger.
package logging

import (
	"fmt"

	"go.uber.org/zap"
)

var (
	base  = zap.NewNop()
	sugar = base.Sugar()
)

// Init initializes the package-level logger. With verbose set it uses the
// development encoder at debug level, otherwise the production encoder.
func Init(verbose bool) error {
	var logger *zap.Logger
	var err error

	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return fmt.Errorf("can't initialize zap logger: %w", err)
	}

	base = logger
	sugar = logger.Sugar()
	return nil
}

// S returns the sugared logger. Safe to call before Init; logs are
// dropped until the logger is initialized.
func S() *zap.SugaredLogger {
	return sugar
}

// Sync flushes buffered log entries.
func Sync() {
	_ = base.Sync()
}
