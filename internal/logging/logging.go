// Package logging builds the slog logger used by the command-line hosts.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/log"
)

// Formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// New returns a logger writing to w. Text output goes through charmbracelet/log,
// JSON through slog's own handler. Unknown levels are an error.
func New(w io.Writer, format, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(strings.TrimSpace(level)))); err != nil {
		return nil, fmt.Errorf("logging: level %q: %w", level, err)
	}

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatText:
		handler := log.NewWithOptions(w, log.Options{
			Level:           log.Level(lvl),
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.000",
		})
		return slog.New(handler), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl})), nil
	default:
		return nil, fmt.Errorf("logging: unknown format %q", format)
	}
}

// Setup is New followed by slog.SetDefault.
func Setup(w io.Writer, format, level string) error {
	logger, err := New(w, format, level)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	return nil
}
