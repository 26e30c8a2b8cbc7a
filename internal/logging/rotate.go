package logging

import (
	"fmt"
	"os"
	"sync"
)

// RotatingWriter appends to a file and, once it exceeds maxSize bytes,
// renames it to "<path>.1" and starts a fresh file. One backup is kept;
// shipping or pruning old logs is the operator's concern.
type RotatingWriter struct {
	mu      sync.Mutex
	path    string
	maxSize int64
	size    int64
	f       *os.File
}

func NewRotatingWriter(path string, maxSize int64) (*RotatingWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}

	return &RotatingWriter{path: path, maxSize: maxSize, size: info.Size(), f: f}, nil
}

func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.size+int64(len(p)) > w.maxSize && w.size > 0 {
		if err := w.rotate(); err != nil {
			return 0, fmt.Errorf("rotate log: %w", err)
		}
	}

	n, err := w.f.Write(p)
	w.size += int64(n)
	return n, err
}

// rotate swaps the live file for a fresh one. Caller must hold the mutex.
func (w *RotatingWriter) rotate() error {
	if err := w.f.Close(); err != nil {
		return err
	}
	if err := os.Rename(w.path, w.path+".1"); err != nil {
		return err
	}

	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	w.f = f
	w.size = 0
	return nil
}

func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.f.Close()
}
