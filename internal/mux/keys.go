package mux

// BindDefaults registers the stock mod-then-key bindings from the
// teacher corpus's nearest analog — config.def.h's keys[] table —
// translated from dvtm's ALT(x) (ESC-prefixed) scheme onto this
// Dispatcher's two-step mod-then-key FSM, with mod defaulting to the
// -m flag's value instead of a hardwired Ctrl-a/ESC. Bindings whose
// original action took a special (non-printable) key, such as
// KEY_PPAGE/KEY_NPAGE/F1, are left to the command FIFO instead, since
// the two-step FSM here keys on printable second bytes.
func (m *Multiplexer) BindDefaults(mod byte) {
	d := m.Dispatcher
	bind := func(key byte, action func()) { d.Bind(mod, key, action) }

	bind('w', func() { m.Create("", "", "") })
	bind('q', func() { m.Create("", "", "$CWD") })
	bind('`', m.KillFocused)
	bind('j', m.FocusNext)
	bind('k', m.FocusPrev)
	bind('u', m.FocusNextNM)
	bind('i', m.FocusPrevNM)
	bind('t', func() { m.SetLayout("[]=") })
	bind('g', func() { m.SetLayout("+++") })
	bind('b', func() { m.SetLayout("TTT") })
	bind('m', func() { m.SetLayout("[ ]") })
	bind(' ', m.CycleLayout)
	bind('h', func() { m.SetMFact("-0.05") })
	bind('l', func() { m.SetMFact("+0.05") })
	bind('.', m.ToggleMinimize)
	bind('s', m.ToggleBar)
	bind('M', m.ToggleMouse)
	bind('\n', m.Zoom)
	for n := byte('1'); n <= '9'; n++ {
		n := n
		bind(n, func() { m.FocusN(int(n - '0')) })
	}
	bind('Q', m.Quit)
	bind('a', m.ToggleRunAll)
	bind('r', m.Redraw)
	bind('X', func() { m.Lock("") })
	bind('B', m.ToggleBell)
	bind('c', func() { m.EnterCopyMode("") })
	bind('/', func() { m.EnterCopyMode("/") })
	bind('?', func() { m.EnterCopyMode("?") })
	bind('v', m.Paste)
}
