package mux

import "dvtm/internal/registry"

// copyModeActive and forwardCopyMode are wired as the input.Dispatcher's
// CopyModeActive/ForwardCopyMode hooks: while the focused client is in
// copy mode, raw bytes navigate its scrollback cursor instead of
// reaching the child, grounded on the scroll-mode key handling in
// ekain-fr-h2/internal/session/client/input.go (ScrollUp/ScrollDown/
// ClampScrollOffset), generalized here from a single fixed client to
// whichever client currently holds focus.
func (m *Multiplexer) copyModeActive() bool {
	c := m.Registry.Sel()
	return c != nil && c.CopyMode
}

// forwardCopyMode interprets one byte as a copy-mode key: j/k scroll
// by a line (arrow-key escape sequences are not recognized, since each
// byte arrives here on its own), Ctrl-D/Ctrl-U by half a
// page, g/G jump to the oldest/newest line, and q or Enter leaves copy
// mode. Anything else is ignored rather than reaching the child, since
// copy mode is a read-only view over already-rendered output.
func (m *Multiplexer) forwardCopyMode(b byte) {
	c := m.Registry.Sel()
	if c == nil {
		return
	}
	switch b {
	case 'j':
		m.scrollUp(c, 1)
	case 'k':
		m.scrollDown(c, 1)
	case 0x04: // Ctrl-D
		m.scrollUp(c, halfPage(c))
	case 0x15: // Ctrl-U
		m.scrollUp(c, -halfPage(c))
	case 'g':
		m.scrollUp(c, maxScrollback)
	case 'G':
		c.ScrollOffset = 0
	case 'q', '\r', '\n':
		c.CopyMode = false
		c.ScrollOffset = 0
		c.SearchSeed = ""
	}
	m.Arrange()
}

// maxScrollback is large enough that clampScrollOffset always wins;
// there is no fixed scrollback size constant to reuse since it is
// configured per-VT via -h.
const maxScrollback = 1 << 30

func halfPage(c *registry.Client) int {
	if c.VT == nil {
		return 1
	}
	h := c.VT.Rows / 2
	if h < 1 {
		h = 1
	}
	return h
}

// scrollUp moves the copy-mode cursor further back into history (lines
// is allowed to be negative, which scrollDown-in-disguise handles via
// the shared clamp).
func (m *Multiplexer) scrollUp(c *registry.Client, lines int) {
	c.ScrollOffset += lines
	m.clampScrollOffset(c)
}

// scrollDown moves the copy-mode cursor toward the live screen.
func (m *Multiplexer) scrollDown(c *registry.Client, lines int) {
	c.ScrollOffset -= lines
	m.clampScrollOffset(c)
}

func (m *Multiplexer) clampScrollOffset(c *registry.Client) {
	if c.ScrollOffset < 0 {
		c.ScrollOffset = 0
	}
	max := 0
	if c.VT != nil && c.VT.Scrollback != nil {
		max = c.VT.HistoryLines
	}
	if c.ScrollOffset > max {
		c.ScrollOffset = max
	}
}
