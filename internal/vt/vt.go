// Package vt wraps the terminal engine (github.com/vito/midterm) and the
// PTY (github.com/creack/pty) that back a single client. It owns the
// child process lifecycle and the byte pipe between the child and the
// virtual screen grid; it does not know about layout, focus, or input
// dispatch.
package vt

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/creack/pty"
	"github.com/vito/midterm"
)

// VT owns the PTY master, the child process, and the virtual terminal
// buffer that mirrors the child's output.
type VT struct {
	Ptm          *os.File          // PTY master
	Cmd          *exec.Cmd         // child process
	Term         *midterm.Terminal // virtual terminal grid for child output
	Scrollback   *midterm.Terminal // append-only history for copy mode, or nil
	HistoryLines int               // rows allocated to Scrollback
	Rows         int               // rows reserved for this client's content
	Cols         int               // columns

	LastOut   time.Time // last time the child produced output
	ChildHung bool

	// childExited and ExitError are the deferred-SIGCHLD analog: a
	// background goroutine reaps the process with Cmd.Wait() and
	// publishes the result here; the event loop only ever observes it
	// at the top of a tick (ChildExited), never mid-dispatch.
	childExited atomic.Bool
	ExitError   error

	// OscFg/OscBg cache the outer terminal's default colors, probed once
	// at startup, so OSC 10/11 queries from the child can be answered
	// without round-tripping through the real terminal.
	OscFg, OscBg string
}

// ErrWriteTimeout is returned by Write when the child is not draining its
// PTY and the kernel buffer is full.
var ErrWriteTimeout = fmt.Errorf("pty write timed out")

// Start execs command with args attached to a fresh PTY of the given
// size. extraEnv, if non-nil, overrides entries of the inherited
// environment. historyLines, when > 0, allocates a second, append-only
// terminal grid fed the same child bytes as Term, so copy mode can
// scroll back past what Term currently displays without Term itself
// growing unbounded.
func Start(command string, args []string, dir string, rows, cols, historyLines int, extraEnv map[string]string) (*VT, error) {
	cmd := exec.Command(command, args...)
	if dir != "" {
		cmd.Dir = dir
	}
	if len(extraEnv) > 0 {
		env := make([]string, 0, len(os.Environ())+len(extraEnv))
		for _, e := range os.Environ() {
			key := e
			if idx := strings.Index(e, "="); idx >= 0 {
				key = e[:idx]
			}
			if _, override := extraEnv[key]; !override {
				env = append(env, e)
			}
		}
		for k, v := range extraEnv {
			env = append(env, k+"="+v)
		}
		cmd.Env = env
	}

	ptm, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, fmt.Errorf("start command: %w", err)
	}

	v := &VT{
		Ptm:     ptm,
		Cmd:     cmd,
		Term:    midterm.NewTerminal(rows, cols),
		Rows:    rows,
		Cols:    cols,
		LastOut: time.Now(),
	}
	v.Term.ForwardResponses = ptm
	if historyLines > 0 {
		v.Scrollback = midterm.NewTerminal(historyLines, cols)
		v.HistoryLines = historyLines
	}
	v.waitInBackground()
	return v, nil
}

// waitInBackground reaps the child asynchronously, the Go analog of a
// SIGCHLD handler: the goroutine only ever stores a result, it never
// touches shared multiplexer state. The event loop picks the result up
// by polling ChildExited() at the top of a tick.
func (v *VT) waitInBackground() {
	go func() {
		err := v.Cmd.Wait()
		v.ExitError = err
		v.childExited.Store(true)
	}()
}

// ChildExited reports whether the background Wait() has completed.
func (v *VT) ChildExited() bool {
	return v.childExited.Load()
}

// Pump drains one readable chunk from the PTY master into the virtual
// terminal buffer and calls onData afterward. Callers serialize access to
// VT themselves (the event loop only ever calls Pump on the main
// goroutine). The error returned is the raw Read error (EOF/EIO included)
// so the caller can decide whether the client died.
func (v *VT) Pump(onData func()) error {
	buf := make([]byte, 4096)
	n, err := v.Ptm.Read(buf)
	if n > 0 {
		v.respondOSCColors(buf[:n])
		v.LastOut = time.Now()
		v.Term.Write(buf[:n])
		if v.Scrollback != nil {
			v.Scrollback.Write(buf[:n])
		}
		if onData != nil {
			onData()
		}
	}
	return err
}

// respondOSCColors answers OSC 10/11 color queries from the child using
// the colors probed from the real outer terminal at startup.
func (v *VT) respondOSCColors(data []byte) {
	if v.OscFg != "" && bytes.Contains(data, []byte("\033]10;?")) {
		fmt.Fprintf(v.Ptm, "\033]10;%s\033\\", v.OscFg)
	}
	if v.OscBg != "" && bytes.Contains(data, []byte("\033]11;?")) {
		fmt.Fprintf(v.Ptm, "\033]11;%s\033\\", v.OscBg)
	}
}

// Resize updates the child's PTY winsize and the virtual terminal grid.
func (v *VT) Resize(rows, cols int) {
	v.Rows = rows
	v.Cols = cols
	v.Term.Resize(rows, cols)
	if v.Scrollback != nil {
		v.Scrollback.Resize(v.HistoryLines, cols)
	}
	pty.Setsize(v.Ptm, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

// Write writes p to the child's PTY, giving up after timeout if the
// child is not reading its stdin (kernel PTY buffer full).
func (v *VT) Write(p []byte, timeout time.Duration) (int, error) {
	type result struct {
		n   int
		err error
	}
	ch := make(chan result, 1)
	go func() {
		n, err := v.Ptm.Write(p)
		ch <- result{n, err}
	}()
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case r := <-ch:
		return r.n, r.err
	case <-timer.C:
		return 0, ErrWriteTimeout
	}
}

// Kill sends SIGKILL to the child's whole process group (pty.Start
// makes the child its own session/group leader, so -pid addresses
// every descendant it spawned, not just the immediate child).
func (v *VT) Kill() error {
	if v.Cmd == nil || v.Cmd.Process == nil {
		return nil
	}
	if err := syscall.Kill(-v.Cmd.Process.Pid, syscall.SIGKILL); err != nil {
		return v.Cmd.Process.Kill()
	}
	return nil
}

// Close releases the PTY master. Safe to call more than once.
func (v *VT) Close() error {
	if v.Ptm == nil {
		return nil
	}
	return v.Ptm.Close()
}

// IsIdle reports whether the child has been silent for at least threshold.
func (v *VT) IsIdle(threshold time.Duration) bool {
	return !v.LastOut.IsZero() && time.Since(v.LastOut) > threshold
}
