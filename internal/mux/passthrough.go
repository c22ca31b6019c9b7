package mux

import "dvtm/internal/input"

// passthrough is the input.Dispatcher's Passthrough hook: it delivers a
// literal input block to the focused client, or to every non-minimized
// client at once when "run in all" is active, mirroring the original's
// sendarg-to-all-clients behavior bound to the same toggle.
func (m *Multiplexer) passthrough(block []byte) {
	if m.runInAll {
		for _, c := range m.Registry.Clients() {
			if c.Minimized || c.VT == nil {
				continue
			}
			c.VT.Write(block, writeTimeout)
		}
		return
	}
	c := m.Registry.Sel()
	if c == nil || c.VT == nil {
		return
	}
	c.VT.Write(block, writeTimeout)
}

// handleMouse is the input.Dispatcher's HandleMouse hook: a click
// focuses whichever client's rect contains the reported cell, matching
// config.def.h's default buttons[] binding of button 1 to focus.
func (m *Multiplexer) handleMouse(ev input.MouseEvent) {
	if !m.mouseOn {
		return
	}
	target := m.Registry.ByCoord(ev.X, ev.Y)
	if target == nil || target == m.Registry.Sel() {
		return
	}
	m.Registry.SetSel(target)
	m.emitArrangement()
	m.Arrange()
}
