package iojson

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

// ErrNoInput is returned by Read when no file was named and stdin is a terminal.
var ErrNoInput = errors.New("no input: pass --file or pipe JSON on stdin")

// FileReader decodes one JSON document of type T, taken from the path given
// to its --file flag or, when that is unset, from stdin.
type FileReader[T any] struct {
	path string

	// Stdin replaces os.Stdin when set.
	Stdin io.Reader
}

// Flag returns the --file/-f flag bound to this reader.
func (fr *FileReader[T]) Flag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:        "file",
		Aliases:     []string{"f"},
		Usage:       "read JSON from `PATH` instead of stdin",
		Destination: &fr.path,
	}
}

func (fr *FileReader[T]) Read() (T, error) {
	var zero T

	src, release, err := fr.source()
	if err != nil {
		return zero, err
	}
	defer release()

	var v T
	if err := json.NewDecoder(src).Decode(&v); err != nil {
		return zero, fmt.Errorf("decode JSON: %w", err)
	}
	return v, nil
}

func (fr *FileReader[T]) source() (io.Reader, func(), error) {
	if fr.path != "" {
		f, err := os.Open(fr.path)
		if err != nil {
			return nil, nil, fmt.Errorf("open input: %w", err)
		}
		return f, func() { _ = f.Close() }, nil
	}

	if fr.Stdin != nil {
		return fr.Stdin, func() {}, nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, nil, ErrNoInput
	}
	return os.Stdin, func() {}, nil
}
