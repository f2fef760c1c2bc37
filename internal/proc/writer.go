package proc

import (
	"io"
	"os"
	"sync"
)

// syncWriter serializes writes. os/exec copies a child's output through its
// own goroutine whenever the destination is not a file, so children sharing a
// writer would otherwise write to it at the same time.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// Synchronized returns a writer that several children and the shell may write
// to at once. Files, nil and writers it already wrapped come back unchanged.
func Synchronized(w io.Writer) io.Writer {
	switch w.(type) {
	case nil, *os.File, *syncWriter:
		return w
	}
	return &syncWriter{w: w}
}
