// Package logx builds the console loggers used by the command line tools.
package logx

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// NewLogger returns a zerolog logger writing human-readable lines to w at
// the given level ("trace", "debug", "info", "warn", "error"; empty means
// info).
func NewLogger(w io.Writer, level string) (zerolog.Logger, error) {
	lvl := zerolog.InfoLevel
	if level != "" {
		var err error
		lvl, err = zerolog.ParseLevel(strings.ToLower(level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("logx: %w", err)
		}
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return fmt.Sprintf("%-20s", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Caller().Logger(), nil
}
