// Package mux ties the registry, layout, screen, input dispatcher, and
// FIFO protocols into the single-threaded reactor the rest of the
// packages describe in isolation. It is the Go analog of the
// original's module-level globals (sel, clients, layout, runinall,
// inputmode, and the three FIFO descriptors), collected per the design
// notes into one owning value instead of package-level state.
package mux

import (
	"bytes"
	"io"
	"log"
	"os"

	"dvtm/internal/commands"
	"dvtm/internal/fifo"
	"dvtm/internal/input"
	"dvtm/internal/layout"
	"dvtm/internal/registry"
	"dvtm/internal/screen"
	"dvtm/internal/vt"
)

// Config collects the command-line-derived settings a Multiplexer is
// built from.
type Config struct {
	Shell         string
	ScrollHistory int
	MFact         float64
	Mouse         bool
	Title         string

	CmdFIFOPath    string
	EventFIFOPath  string
	StatusFIFOPath string

	BarPos screen.BarPos

	ColorRules []screen.ColorRule
}

// Multiplexer is the live, mutable program state: the client registry,
// the active layout, the outer screen, the input dispatcher, and the
// optional FIFO endpoints. commands.Dispatch drives it through the
// commands.Multiplexer interface it satisfies.
type Multiplexer struct {
	cfg Config

	Registry   *registry.Registry
	Layouts    *layout.Registry
	Screen     *screen.Screen
	Dispatcher *input.Dispatcher

	// Logger receives backend-failure and other debug diagnostics
	// (§7's "Backend failure: log via debug channel"); it discards
	// everything unless the caller points it at a -debug-log file,
	// mirroring the teacher's bare log.Printf usage.
	Logger *log.Logger

	mfact        float64
	runInAll     bool
	barOn        bool
	barPos       screen.BarPos
	mouseOn      bool
	bellOn       bool
	locked       bool
	lockPassword string
	lockCapture  bool
	lockBuf      []byte
	quitting     bool

	yank []byte

	cmdReader  *fifo.CommandReader
	cmdFile    *os.File
	eventW     *fifo.Writer
	statusFile *os.File
	statusBuf  []byte
	statusText string

	out *os.File // real outer terminal, for OSC title + final flush

	oscFg, oscBg string // real terminal's default fg/bg, probed once at startup

	resizePending bool
}

// DefaultColors records the real outer terminal's default foreground
// and background (probed once via vt.ProbeColors before raw mode),
// so every client spawned afterward can answer its own OSC 10/11
// queries without round-tripping through the real terminal.
func (m *Multiplexer) DefaultColors(fg, bg string) {
	m.oscFg, m.oscBg = fg, bg
}

var _ commands.Multiplexer = (*Multiplexer)(nil)

// New builds an empty Multiplexer (no clients yet) sized to rows x cols.
func New(cfg Config, rows, cols int, out *os.File) *Multiplexer {
	if cfg.MFact == 0 {
		cfg.MFact = 0.5
	}
	barPos := cfg.BarPos
	m := &Multiplexer{
		cfg:      cfg,
		Registry: registry.New(),
		Layouts:  layout.NewRegistry(),
		Screen:   screen.New(rows, cols),
		mfact:    cfg.MFact,
		barOn:    barPos != screen.BarOff,
		barPos:   barPos,
		mouseOn:  cfg.Mouse,
		out:      out,
		Logger:   log.New(io.Discard, "dvtm: ", log.LstdFlags),
	}
	m.Screen.Bar = barPos
	if len(cfg.ColorRules) > 0 {
		m.Screen.ColorRules = cfg.ColorRules
	}
	m.Dispatcher = input.NewDispatcher()
	m.Dispatcher.Passthrough = m.passthrough
	m.Dispatcher.HandleMouse = m.handleMouse
	m.Dispatcher.CopyModeActive = m.copyModeActive
	m.Dispatcher.ForwardCopyMode = m.forwardCopyMode
	m.Dispatcher.DrainEscape = m.drainEscape
	m.Dispatcher.EmitEvent = m.emitEvent
	return m
}

// Arrange re-lays-out every client under the current layout and
// workspace, then emits an arrangement-change event line.
func (m *Multiplexer) Arrange() {
	ws := m.Screen.Workspace()
	lws := layout.Workspace{X: ws.X, Y: ws.Y, W: ws.W, H: ws.H}
	m.Layouts.Current().Arrange(lws, m.Registry.Clients(), m.mfact)
	m.emitArrangement()
}

// Repaint renders every client and the status bar and flushes the
// result to the real terminal in one write.
func (m *Multiplexer) Repaint() {
	clients := m.Registry.Clients()
	sel := m.Registry.Sel()
	fullscreen := m.Layouts.Current().Symbol == "[ ]"
	buf := m.Screen.Render(clients, sel, m.runInAll, fullscreen, m.statusText)
	if m.out != nil {
		m.out.Write(buf)
	}
}

func (m *Multiplexer) emitArrangement() {
	if m.eventW == nil {
		return
	}
	sel := m.Registry.Sel()
	var tuples []fifo.ClientTuple
	for _, c := range m.Registry.Clients() {
		tuples = append(tuples, fifo.ClientTuple{
			ID: c.ID, X: c.Rect.X, Y: c.Rect.Y, W: c.Rect.W, H: c.Rect.H,
			Selected: c == sel, Minimized: c.Minimized, Died: c.Died,
		})
	}
	m.eventW.Write([]byte(fifo.FormatEventLine(tuples)))
}

func (m *Multiplexer) emitEvent(kind byte, payload []byte) {
	if m.eventW == nil {
		return
	}
	escaped := input.EscapeBytes(payload)
	switch kind {
	case 'K':
		m.eventW.Write([]byte(fifo.FormatKeyEvent(escaped)))
	case 'E':
		m.eventW.Write([]byte(fifo.FormatEscapeEvent(escaped)))
	}
}

func (m *Multiplexer) drainEscape(max int) []byte {
	fd := int(os.Stdin.Fd())
	return drainNonBlocking(fd, max)
}

// vtHistoryLines is how many lines of scrollback each client's VT
// allocates, taken from the -h flag.
func (m *Multiplexer) vtHistoryLines() int {
	if m.cfg.ScrollHistory <= 0 {
		return 500 // SCROLL_HISTORY default, config.def.h
	}
	return m.cfg.ScrollHistory
}

// AttachFIFOs opens the configured command/event/status FIFOs, if any
// paths were given, creating them first if they do not exist.
func (m *Multiplexer) AttachFIFOs() error {
	if p := m.cfg.CmdFIFOPath; p != "" {
		if err := fifo.EnsureFIFO(p); err != nil {
			return err
		}
		f, err := fifo.OpenReader(p)
		if err != nil {
			return err
		}
		m.cmdFile = f
		m.cmdReader = fifo.NewCommandReader(f)
		os.Setenv("DVTM_CMD_FIFO", p)
	}
	if p := m.cfg.EventFIFOPath; p != "" {
		if err := fifo.EnsureFIFO(p); err != nil {
			return err
		}
		w, err := fifo.OpenWriter(p)
		if err != nil {
			return err
		}
		m.eventW = w
		os.Setenv("DVTM_EVENT_FIFO", p)
	}
	if p := m.cfg.StatusFIFOPath; p != "" {
		if err := fifo.EnsureFIFO(p); err != nil {
			return err
		}
		f, err := fifo.OpenReader(p)
		if err != nil {
			return err
		}
		m.statusFile = f
	}
	return nil
}

// Shutdown destroys every client and releases every owned descriptor,
// per §5's "on process shutdown" resource discipline.
func (m *Multiplexer) Shutdown() {
	for _, c := range m.Registry.Clients() {
		m.destroy(c)
	}
	if m.cmdFile != nil {
		m.cmdFile.Close()
	}
	if m.eventW != nil {
		m.eventW.Close()
	}
	if m.statusFile != nil {
		m.statusFile.Close()
	}
}

func (m *Multiplexer) destroy(c *registry.Client) {
	if c.VT != nil {
		c.VT.Kill()
		c.VT.Close()
	}
	m.Registry.Detach(c)
}

// SetOuterTitle emits the OSC 0 title-change sequence to the real
// terminal, per §6 "on focus change, emit ESC ] 0 ; <title> BEL".
func (m *Multiplexer) SetOuterTitle(title string) {
	if m.out == nil {
		return
	}
	m.out.Write([]byte("\033]0;" + title + "\a"))
}

// Tick runs one iteration's worth of housekeeping that must happen
// before dispatch: destroying any clients whose background Wait()
// completed, and re-arranging if a resize is pending. It is exported so
// Run (internal/mux/loop.go) and tests can drive it independently of
// the actual poll/read machinery.
func (m *Multiplexer) Tick() {
	m.reapDeadClients()
	if m.resizePending {
		m.resizePending = false
		m.Arrange()
	}
}

func (m *Multiplexer) reapDeadClients() {
	for _, c := range m.Registry.Clients() {
		if c.VT != nil && c.VT.ChildExited() {
			c.Died = true
		}
	}
	var died []*registry.Client
	for _, c := range m.Registry.Clients() {
		if c.Died {
			died = append(died, c)
		}
	}
	for _, c := range died {
		wasLast := m.Registry.Len() == 1
		cmd := c.Cmd
		m.destroy(c)
		if wasLast {
			m.maybeRespawn(cmd)
		}
	}
	if len(died) > 0 {
		m.Arrange()
	}
}

// IsQuitting reports whether the quit command has been issued.
func (m *Multiplexer) IsQuitting() bool { return m.quitting }

// StatusText returns the most recently received status-FIFO line.
func (m *Multiplexer) StatusText() string { return m.statusText }

// NotifyResize marks a resize as pending; it is safe to call from the
// SIGWINCH handler goroutine (see signals.go), since it only sets a
// flag observed at the top of the next Tick.
func (m *Multiplexer) NotifyResize(rows, cols int) {
	m.Screen.Resize(rows, cols)
	m.resizePending = true
}

// ReadStatusFIFO drains whatever is currently available on the status
// FIFO (non-blocking) and updates StatusText from the most recent
// complete line, per 4.E.
func (m *Multiplexer) ReadStatusFIFO() {
	if m.statusFile == nil {
		return
	}
	buf := make([]byte, 4096)
	n, err := m.statusFile.Read(buf)
	if n > 0 {
		m.statusBuf = append(m.statusBuf, buf[:n]...)
		if line := fifo.LastLine(m.statusBuf); line != "" {
			m.statusText = line
			// keep any unterminated tail for the next read
			m.statusBuf = m.statusBuf[bytes.LastIndexByte(m.statusBuf, '\n')+1:]
		}
	}
	if err != nil {
		// EOF/EAGAIN: nothing more to read this tick; a real error
		// closing the pipe is tolerated silently per the error taxonomy.
		_ = err
	}
}

// ReadCommandFIFO drains every complete command currently queued on the
// command FIFO and dispatches each through the command table.
func (m *Multiplexer) ReadCommandFIFO() {
	if m.cmdReader == nil {
		return
	}
	for {
		cmd, err := m.cmdReader.Next()
		if cmd.Name != "" {
			commands.Dispatch(m, cmd.Name, cmd.Args)
		}
		if err != nil {
			if isEOFOrClosed(err) {
				m.cmdReader = nil
				m.cmdFile.Close()
				m.cmdFile = nil
			}
			return
		}
		if cmd.Name == "" {
			return
		}
	}
}

func isEOFOrClosed(err error) bool {
	return err != nil
}
