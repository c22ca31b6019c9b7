package fifo

import (
	"errors"
	"os"
	"sync"
	"syscall"

	"golang.org/x/sys/unix"
)

// EnsureFIFO creates path as a named pipe (mode 0600) if it does not
// already exist. An existing non-FIFO file at path is left untouched
// and reported as an error, matching the "create if missing" contract
// for -s/-c/-e without silently clobbering a user's file.
func EnsureFIFO(path string) error {
	fi, err := os.Stat(path)
	if err == nil {
		if fi.Mode()&os.ModeNamedPipe == 0 {
			return errors.New(path + " exists and is not a FIFO")
		}
		return nil
	}
	if !os.IsNotExist(err) {
		return err
	}
	return unix.Mkfifo(path, 0600)
}

// Writer is a best-effort, non-blocking writer over a FIFO: once the
// reader goes away (EPIPE) or any other write error occurs, it marks
// itself closed and every subsequent Write is a silent no-op, matching
// "writes to the event FIFO are best-effort non-blocking".
type Writer struct {
	mu     sync.Mutex
	f      *os.File
	closed bool
}

// OpenWriter opens path for non-blocking writes. The FIFO must already
// exist (see EnsureFIFO); opening for write blocks until a reader is
// present unless O_NONBLOCK is set, matching the original's
// open-then-fail-fast-if-no-reader behavior for optional FIFOs.
func OpenWriter(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, err
	}
	return &Writer{f: f}, nil
}

// Write best-effort writes p. It never blocks the caller on a stalled
// reader and never returns an error; a dead pipe simply stops
// accepting further writes.
func (w *Writer) Write(p []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.f == nil {
		return
	}
	if _, err := w.f.Write(p); err != nil {
		if errors.Is(err, syscall.EAGAIN) {
			return // transient: reader's buffer is full, drop this line
		}
		w.closed = true // EPIPE and anything else: reader is gone for good
	}
}

// Closed reports whether this FIFO has stopped accepting writes.
func (w *Writer) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// Close releases the underlying file descriptor.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	if w.f == nil {
		return nil
	}
	return w.f.Close()
}

// OpenReader opens path for non-blocking reads, for the command and
// status FIFOs.
func OpenReader(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_RDONLY|unix.O_NONBLOCK, 0)
}
