package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	hclog "github.com/hashicorp/go-hclog"
)

type Options struct {
	Level  string
	JSON   bool
	File   string
	Output io.Writer
}

// New builds the root logger. When File is set the log is appended there so
// the terminal UI keeps stderr clean; Output takes precedence when non-nil.
func New(opts Options) (hclog.Logger, io.Closer, error) {
	var closer io.Closer = nopCloser{}
	out := opts.Output
	if out == nil && opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f
	}
	if out == nil {
		out = os.Stderr
	}

	level := hclog.LevelFromString(opts.Level)
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:       "studyhub",
		Level:      level,
		Output:     out,
		JSONFormat: opts.JSON,
	})
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
