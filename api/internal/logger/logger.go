// Package logger builds the process zap logger.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production JSON logger at the given level name.
func New(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.DisableStacktrace = true
	return config.Build()
}

// HashPrefix is the only part of a user hash that may be logged.
func HashPrefix(h string) string {
	if len(h) <= 8 {
		return h
	}
	n := 0
	for i := range h {
		if n == 8 {
			return h[:i]
		}
		n++
	}
	return h
}
