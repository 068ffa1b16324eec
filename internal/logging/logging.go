// Package logging configures the structured logger shared by the launcher and the nvmd CLI.
package logging

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// EnvLevel names the variable that selects the log level.
const EnvLevel = "NVMD_LOG"

// DefaultLevel keeps shims silent unless something needs attention.
const DefaultLevel = log.WarnLevel

// New returns a logger writing to w at the level named by raw (debug, info, warn, error).
// Unknown or empty values use DefaultLevel.
func New(w io.Writer, raw string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		Prefix: "nvmd",
		Level:  ParseLevel(raw),
	})
	if logger.GetLevel() == log.DebugLevel {
		logger.SetReportTimestamp(true)
	}
	return logger
}

// ParseLevel maps raw to a log level, falling back to DefaultLevel.
func ParseLevel(raw string) log.Level {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DefaultLevel
	}
	level, err := log.ParseLevel(strings.ToLower(trimmed))
	if err != nil {
		return DefaultLevel
	}
	return level
}
