package mux

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"

	"dvtm/internal/registry"
)

// Run is the single-threaded reactor: resize-if-pending, reap dead
// clients, poll stdin/command-FIFO/status-FIFO/every client PTY at
// once, drain whatever is ready, re-arrange, repaint, repeat. It
// returns once Quit has been called or stdin is closed.
func (m *Multiplexer) Run() error {
	stdinFd := int(os.Stdin.Fd())
	stdinBuf := make([]byte, 256)

	for !m.IsQuitting() {
		m.Tick()

		fds, kind := m.buildPollSet(stdinFd)
		n, err := unix.Poll(fds, -1)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			return err
		}
		if n == 0 {
			continue
		}

		for i, pfd := range fds {
			if pfd.Revents == 0 {
				continue
			}
			switch k := kind[i]; k.what {
			case pollStdin:
				nr, rerr := os.Stdin.Read(stdinBuf)
				for j := 0; j < nr; j++ {
					if m.locked {
						m.handleLockedByte(stdinBuf[j])
						continue
					}
					m.Dispatcher.HandleByte(stdinBuf[j])
				}
				if rerr != nil && nr == 0 {
					return nil // stdin closed: nothing left to drive the loop
				}
			case pollCmdFIFO:
				m.ReadCommandFIFO()
			case pollStatusFIFO:
				m.ReadStatusFIFO()
			case pollClientPTY:
				c := k.client
				if c.VT == nil {
					continue
				}
				if perr := c.VT.Pump(nil); perr != nil {
					c.Died = true
				}
			}
		}

		m.Tick()
		m.Arrange()
		m.Repaint()
	}
	return nil
}

type pollWhat int

const (
	pollStdin pollWhat = iota
	pollCmdFIFO
	pollStatusFIFO
	pollClientPTY
)

type pollInfo struct {
	what   pollWhat
	client *registry.Client
}

// buildPollSet assembles the descriptor list for one iteration: stdin
// and the optional FIFOs are always included; each living client
// contributes its PTY master, matching §4.G's "poll stdin, the command
// FIFO, the status FIFO, and every client's PTY" fan-in.
func (m *Multiplexer) buildPollSet(stdinFd int) ([]unix.PollFd, []pollInfo) {
	fds := []unix.PollFd{{Fd: int32(stdinFd), Events: unix.POLLIN}}
	info := []pollInfo{{what: pollStdin}}

	if m.cmdReader != nil && m.cmdFile != nil {
		fds = append(fds, unix.PollFd{Fd: int32(m.cmdFile.Fd()), Events: unix.POLLIN})
		info = append(info, pollInfo{what: pollCmdFIFO})
	}
	if m.statusFile != nil {
		fds = append(fds, unix.PollFd{Fd: int32(m.statusFile.Fd()), Events: unix.POLLIN})
		info = append(info, pollInfo{what: pollStatusFIFO})
	}
	for _, c := range m.Registry.Clients() {
		if c.VT == nil || c.Died {
			continue
		}
		fds = append(fds, unix.PollFd{Fd: int32(c.VT.Ptm.Fd()), Events: unix.POLLIN})
		info = append(info, pollInfo{what: pollClientPTY, client: c})
	}
	return fds, info
}
