// Package logging writes zerolog output to a file so logs survive after the
// TUI releases the terminal.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"modalstack/internal/config"
	"modalstack/internal/modal"
)

// FileName is the log file created inside the configured log dir.
const FileName = "modalstack.log"

// New opens (or appends to) the log file in cfg.Dir and returns a logger
// writing to it. Close the returned io.Closer on exit.
func New(cfg config.LogConfig) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(cfg.Dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return NewWriter(f, level), f, nil
}

// NewWriter builds a timestamped logger over w.
func NewWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	return zerolog.New(w).Level(level).With().
		Timestamp().
		Str("app", "modalstack").
		Logger()
}

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logging: unknown level %q: %w", s, err)
	}
	return level, nil
}

// Observer logs registry mutations at debug level.
type Observer struct {
	Logger zerolog.Logger
}

var _ modal.Observer = (*Observer)(nil)

// OnEvent implements modal.Observer.
func (o *Observer) OnEvent(e modal.Event) {
	ev := o.Logger.Debug().
		Str("component", "registry").
		Str("op", e.Op.String()).
		Int("count", e.Count).
		Int("len", e.Len)
	if e.ID != "" {
		ev = ev.Str("modal_id", e.ID)
	}
	ev.Msg("registry mutation")
}
