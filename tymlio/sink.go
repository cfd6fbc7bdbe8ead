package tymlio

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/tymlgo/tyml/emit"
)

// FileWriter adapts an afero.File to emit.Writer, so emit.YAML/emit.JSON
// can render straight to a file on any afero.Fs (the real OS, an
// in-memory fs for tests, or a read-only overlay) without the emitter
// package importing afero itself.
type FileWriter struct {
	f       afero.File
	written int
}

// CreateFileWriter truncates or creates path on fs and wraps it as a
// Writer. The caller is responsible for closing the returned
// FileWriter (via Close) once emission is done.
func CreateFileWriter(fs afero.Fs, path string) (*FileWriter, error) {
	f, err := fs.Create(path)
	if err != nil {
		return nil, fmt.Errorf("tymlio: create %s: %w", path, err)
	}
	return &FileWriter{f: f}, nil
}

func (w *FileWriter) Write(p []byte) (int, error) {
	n, err := w.f.Write(p)
	w.written += n
	return n, err
}

// Written returns the total bytes written so far.
func (w *FileWriter) Written() int { return w.written }

// Close closes the underlying file.
func (w *FileWriter) Close() error { return w.f.Close() }

var _ emit.Writer = (*FileWriter)(nil)

// WriteFile renders a full emit pass (caller-supplied render func,
// typically a closure over emit.YAML or emit.JSON) to a new file on
// fs, closing it afterwards regardless of the render outcome.
func WriteFile(fs afero.Fs, path string, render func(w emit.Writer) int) (int, error) {
	w, err := CreateFileWriter(fs, path)
	if err != nil {
		return 0, err
	}
	defer w.Close()
	return render(w), nil
}
