package mux

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"dvtm/internal/input"
	"dvtm/internal/screen"
)

// writeTimeout bounds how long a PTY write (paste, key passthrough)
// will block on a child that is not draining its PTY.
const writeTimeout = 200 * time.Millisecond

// Create spawns a new client running cmdline (the configured shell if
// empty), with the given title and working directory ("$CWD" resolves
// to the focused client's /proc/<pid>/cwd).
func (m *Multiplexer) Create(cmdline, title, cwd string) error {
	if cmdline == "" {
		cmdline = m.cfg.Shell
	}
	if cwd == "$CWD" {
		cwd = m.focusedCwd()
	}
	return m.spawn(cmdline, title, cwd)
}

// KillFocused sends SIGKILL to the focused client's process group.
func (m *Multiplexer) KillFocused() {
	c := m.Registry.Sel()
	if c == nil || c.VT == nil {
		return
	}
	c.VT.Kill()
}

func (m *Multiplexer) FocusNext()   { m.Registry.FocusNext(); m.emitArrangement() }
func (m *Multiplexer) FocusPrev()   { m.Registry.FocusPrev(); m.emitArrangement() }
func (m *Multiplexer) FocusNextNM() { m.Registry.FocusNextNM(); m.emitArrangement() }
func (m *Multiplexer) FocusPrevNM() { m.Registry.FocusPrevNM(); m.emitArrangement() }

func (m *Multiplexer) FocusN(n int) bool {
	ok := m.Registry.FocusN(n)
	if ok {
		m.emitArrangement()
	}
	return ok
}

func (m *Multiplexer) FocusID(id uint64) bool {
	ok := m.Registry.FocusID(id)
	if ok {
		m.emitArrangement()
	}
	return ok
}

func (m *Multiplexer) SetLayout(sym string) bool {
	ok := m.Layouts.SetByName(sym)
	if ok {
		m.Arrange()
	}
	return ok
}

func (m *Multiplexer) CycleLayout() {
	m.Layouts.Cycle()
	m.Arrange()
}

// SetMFact parses an absolute ("0.6") or relative ("+0.05"/"-0.05")
// master-factor spec, clamps to [0.1, 0.9], and is a no-op under
// layouts that ignore mfact (grid, fullscreen).
func (m *Multiplexer) SetMFact(spec string) {
	sym := m.Layouts.Current().Symbol
	if sym == "+++" || sym == "[ ]" {
		return
	}
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return
	}
	v, err := strconv.ParseFloat(spec, 64)
	if err != nil {
		return
	}
	if spec[0] == '+' || spec[0] == '-' {
		m.mfact = clampMFact(m.mfact + v)
	} else {
		m.mfact = clampMFact(v)
	}
	m.Arrange()
}

func clampMFact(v float64) float64 {
	if v < 0.1 {
		return 0.1
	}
	if v > 0.9 {
		return 0.9
	}
	return v
}

func (m *Multiplexer) Zoom() {
	c := m.Registry.Sel()
	if c == nil {
		return
	}
	m.Registry.ZoomToMaster(c)
	m.Arrange()
}

// ToggleMinimize flips the focused client's minimized flag, refusing
// the change if it would leave zero visible windows.
func (m *Multiplexer) ToggleMinimize() {
	c := m.Registry.Sel()
	if c == nil {
		return
	}
	if !c.Minimized && m.Registry.VisibleCount() <= 1 {
		return // would leave zero visible windows
	}
	c.Minimized = !c.Minimized
	m.Arrange()
}

// ToggleBar flips the status bar on or off, restoring the configured
// position (top/bottom) when turning it back on.
func (m *Multiplexer) ToggleBar() {
	m.barOn = !m.barOn
	if m.barOn {
		if m.barPos == screen.BarOff {
			m.barPos = screen.BarTop
		}
		m.Screen.Bar = m.barPos
	} else {
		m.Screen.Bar = screen.BarOff
	}
	m.Arrange()
}

func (m *Multiplexer) ToggleMouse()  { m.mouseOn = !m.mouseOn }
func (m *Multiplexer) ToggleBell()   { m.bellOn = !m.bellOn }
func (m *Multiplexer) ToggleRunAll() { m.runInAll = !m.runInAll }

// EnterCopyMode switches the focused client into copy/scrollback mode,
// optionally seeding a search direction ("/" or "?").
func (m *Multiplexer) EnterCopyMode(seed string) {
	c := m.Registry.Sel()
	if c == nil {
		return
	}
	c.CopyMode = true
	c.ScrollOffset = 0
	c.SearchSeed = seed
}

// Paste writes the last yanked buffer into the focused client's PTY.
func (m *Multiplexer) Paste() {
	c := m.Registry.Sel()
	if c == nil || c.VT == nil || len(m.yank) == 0 {
		return
	}
	c.VT.Write(m.yank, writeTimeout)
}

// Scrollback scrolls the focused client's terminal by half its height
// in the given direction (a leading "-" scrolls up, anything else
// scrolls down).
func (m *Multiplexer) Scrollback(dir string) {
	c := m.Registry.Sel()
	if c == nil || c.VT == nil {
		return
	}
	half := c.VT.Rows / 2
	if half < 1 {
		half = 1
	}
	if strings.HasPrefix(dir, "-") {
		m.scrollUp(c, half)
	} else {
		m.scrollDown(c, half)
	}
}

// Lock freezes input behind a password the user must type back before
// any key reaches a client again. With no password given it prompts
// for one on the next keystrokes up to a newline, exactly as
// original_source/dvtm.c's lock() does when called with no args; the
// actual blocking re-entry consumption of stdin happens in loop.go's
// Run(), the one deliberately synchronous suspension point in the
// design, gated on the locked/lockCapture flags set here.
func (m *Multiplexer) Lock(password string) {
	m.locked = true
	m.lockBuf = m.lockBuf[:0]
	if password == "" {
		m.lockCapture = true
		m.lockPassword = ""
	} else {
		m.lockCapture = false
		m.lockPassword = password
	}
}

// maxLockPassword mirrors original_source/dvtm.c's lock()'s fixed
// "char buf[16]" capture size.
const maxLockPassword = 16

// handleLockedByte is the blocking re-entry consumer Run() routes every
// stdin byte through while locked, instead of the normal dispatcher: no
// key reaches a client or a binding until the password is retyped,
// matching original_source/dvtm.c's lock() getch() loop.
func (m *Multiplexer) handleLockedByte(b byte) {
	if m.lockCapture {
		if b == '\n' || b == '\r' {
			m.lockPassword = string(m.lockBuf)
			m.lockBuf = m.lockBuf[:0]
			m.lockCapture = false
			if m.lockPassword == "" {
				m.locked = false
				m.Arrange()
			}
			return
		}
		if len(m.lockBuf) < maxLockPassword {
			m.lockBuf = append(m.lockBuf, b)
		}
		return
	}

	if m.lockPassword == "" {
		m.locked = false
		m.Arrange()
		return
	}

	m.lockBuf = append(m.lockBuf, b)
	if len(m.lockBuf) < len(m.lockPassword) {
		return
	}
	if string(m.lockBuf) == m.lockPassword {
		m.locked = false
		m.lockBuf = m.lockBuf[:0]
		m.Arrange()
		return
	}
	m.lockBuf = m.lockBuf[:0] // resync: retry the next block of keystrokes
}

func (m *Multiplexer) Redraw() {
	m.Arrange()
}

func (m *Multiplexer) Quit() {
	m.quitting = true
}

// SetInputMode sets the dispatcher's Mode bits from a spec string made
// of the characters 'i' (INPUT), 'e' (ESCAPE), 'b' (BINDING); an empty
// spec or one with none of those characters clears all bits.
func (m *Multiplexer) SetInputMode(spec string) {
	var mode input.Mode
	for _, r := range spec {
		switch r {
		case 'i':
			mode |= input.ModeInput
		case 'e':
			mode |= input.ModeEscape
		case 'b':
			mode |= input.ModeBinding
		}
	}
	m.Dispatcher.Mode = mode
}

func (m *Multiplexer) SetTitleByID(id uint64, title string) bool {
	c := m.Registry.ByID(id)
	if c == nil {
		return false
	}
	c.Title = title
	return true
}

// focusedCwd resolves the $CWD placeholder to the focused client's
// current working directory via procfs.
func (m *Multiplexer) focusedCwd() string {
	c := m.Registry.Sel()
	if c == nil || c.VT == nil || c.VT.Cmd == nil || c.VT.Cmd.Process == nil {
		return ""
	}
	link := fmt.Sprintf("/proc/%d/cwd", c.VT.Cmd.Process.Pid)
	dir, err := os.Readlink(link)
	if err != nil {
		return ""
	}
	return dir
}
