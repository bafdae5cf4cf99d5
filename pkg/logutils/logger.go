// Package logutils builds the process logger.
package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// New parses level and returns a JSON logger appending to file. An empty file
// discards output so nothing lands on top of the terminal UI. The returned
// closer is always safe to call.
func New(level string, file string) (zerolog.Logger, func(), error) {
	noop := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), noop, fmt.Errorf("parse log level %q: %w", level, err)
	}

	out, closer, err := openSink(file)
	if err != nil {
		return zerolog.Nop(), noop, err
	}

	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), closer, nil
}

func openSink(file string) (io.Writer, func(), error) {
	if file == "" {
		return io.Discard, func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}

	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	return f, func() { _ = f.Close() }, nil
}
