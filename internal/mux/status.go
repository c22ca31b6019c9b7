package mux

import "fmt"

// ReportStatus sets StatusText to a summary of the daemon's current
// client count and layout symbol, for the "status" command-FIFO verb:
// a read-side complement to the -s status FIFO's write side.
func (m *Multiplexer) ReportStatus() {
	m.statusText = fmt.Sprintf("%d clients, layout %s", m.Registry.Len(), m.Layouts.Current().Symbol)
}

// EscapeKey forces the very next keystroke to reach the focused
// client's PTY literally, bypassing the modifier/binding table, for
// typing a literal modifier byte into a client (e.g. sending Ctrl-G
// itself to a nested dvtm or editor).
func (m *Multiplexer) EscapeKey() {
	m.Dispatcher.ForceNextLiteral()
}
