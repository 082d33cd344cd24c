package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/gogpu/gds"
)

// pipeName indicates that stdin or stdout is used instead of a file.
const pipeName = "-"

// openInput opens path for reading, or stdin for pipeName.
func openInput(path string) (io.ReadCloser, error) {
	if path == pipeName {
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdin")
		}
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open the source file: %w", err)
	}
	return f, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// createOutput creates path for writing, or returns stdout for pipeName.
func createOutput(path string) (io.WriteCloser, error) {
	if path == pipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return nil, errors.New("`-` should be used with a pipe for stdout")
		}
		return nopWriteCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("unable to create the destination file: %w", err)
	}
	return f, nil
}

func readLayout(path string, opts ...gds.ReadOption) (*gds.Layout, error) {
	r, err := openInput(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return gds.Read(r, opts...)
}

// writeOutput writes src to path and reports the close error when the
// write itself succeeded.
func writeOutput(path string, src io.WriterTo) (err error) {
	w, err := createOutput(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	_, err = src.WriteTo(w)
	return err
}
