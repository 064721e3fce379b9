// Package logging builds the zap loggers used by the hosts.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ParseLevel maps a config string to a zap level. Empty means info.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return zap.InfoLevel, nil
	case "debug":
		return zap.DebugLevel, nil
	case "warn", "warning":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	}
	return zap.InfoLevel, fmt.Errorf("logging: unknown level %q", level)
}

// New returns a JSON logger writing to the given paths (stderr when none).
// The terminal host passes a file path so neither log lines nor zap's own
// internal errors reach the screen.
func New(level string, paths ...string) (*zap.Logger, error) {
	config, err := newConfig(level, paths)
	if err != nil {
		return nil, err
	}
	return config.Build()
}

func newConfig(level string, paths []string) (zap.Config, error) {
	zapLevel, err := ParseLevel(level)
	if err != nil {
		return zap.Config{}, err
	}
	if len(paths) == 0 {
		paths = []string{"stderr"}
	}

	config := zap.Config{
		Level:       zap.NewAtomicLevelAt(zapLevel),
		Development: false,
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      paths,
		ErrorOutputPaths: paths,
		DisableCaller:    true,
	}
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config, nil
}

func Nop() *zap.Logger { return zap.NewNop() }
