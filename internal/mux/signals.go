package mux

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"
)

// WatchResize blocks on SIGWINCH/SIGTERM notifications: a SIGWINCH
// calls NotifyResize with the outer terminal's new size, grounded on
// ekain-fr-h2/internal/terminal/wrapper.go's WatchResize (the goroutine
// only ever touches the resizePending flag and the Screen's recorded
// dimensions, both of which Tick, not this goroutine, acts on); a
// SIGTERM sets quitting exactly as Quit() does, the Go analog of
// original_source/dvtm.c's sigterm_handler setting running = 0 for a
// clean shutdown through Run()'s existing loop-exit/Shutdown() path.
func (m *Multiplexer) WatchResize(sigCh <-chan os.Signal) {
	for sig := range sigCh {
		switch sig {
		case syscall.SIGTERM:
			m.Quit()
		case syscall.SIGWINCH:
			fd := int(os.Stdin.Fd())
			cols, rows, err := term.GetSize(fd)
			if err != nil || rows < 1 || cols < 1 {
				m.Logger.Printf("resize: GetSize failed: %v", err)
				continue
			}
			m.NotifyResize(rows, cols)
		}
	}
}

// NotifySignals registers the process-wide signal channel WatchResize
// consumes. Callers (cmd/dvtm) own the channel's lifetime.
func NotifySignals() <-chan os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH, syscall.SIGTERM)
	return sigCh
}
