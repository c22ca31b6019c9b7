// Package input implements the keystroke dispatch state machine: a
// two-step IDLE/AWAIT_MOD modifier scheme (the Go analog of the
// original's MOD/ALT keytable), ESC-block passthrough, copy-mode
// gating, and the InputMode redirection of stdin into the event FIFO.
// It is grounded on the FSM in
// ekain-fr-h2/internal/session/client/input.go (setMode,
// HandleDefaultBytes, FlushPassthroughEscIfComplete, HandleEscape),
// generalized from that file's single-client passthrough-lock model to
// dvtm's modifier/binding table.
package input

// Mode is a bitset controlling where stdin keys are routed, mirroring
// the original's InputMode.
type Mode uint8

const (
	// ModeInput redirects ordinary (non-escape) keys to the event FIFO
	// as "K<escaped>\n" lines instead of the focused client.
	ModeInput Mode = 1 << iota
	// ModeEscape redirects whole escape blocks to the event FIFO as
	// "E<escaped>\n" lines.
	ModeEscape
	// ModeBinding disables invoking bound actions from stdin; they
	// remain reachable only through the command FIFO.
	ModeBinding
)

type state int

const (
	stateIdle state = iota
	stateAwaitMod
)

// Action is invoked when a bound key (direct or two-step) is pressed.
type Action func()

type binding struct {
	mod, key byte
	action   Action
}

// Dispatcher owns the modifier/binding table and the IDLE/AWAIT_MOD
// cursor. It is not safe for concurrent use; the event loop drives it
// from a single goroutine.
type Dispatcher struct {
	direct  map[byte]Action         // mod == 0 bindings
	twoStep map[byte]map[byte]Action
	mods    map[byte]bool

	state        state
	mod          byte
	forceLiteral bool

	Mode Mode

	// CopyModeActive reports whether the focused client is in
	// copy/scrollback mode; when true, bytes are forwarded there
	// instead of going through the binding table.
	CopyModeActive func() bool
	// ForwardCopyMode delivers one byte to the focused client's
	// copy-mode cursor and triggers a redraw.
	ForwardCopyMode func(b byte)

	// Passthrough delivers a literal input block to the focused client
	// (or, when runinall is active, to every non-minimized client);
	// that fanout decision lives with the caller that wires this hook.
	Passthrough func(block []byte)
	// HandleMouse is called instead of Passthrough when a block decodes
	// as a complete SGR mouse report.
	HandleMouse func(ev MouseEvent)
	// DrainEscape greedily reads up to max additional, already-buffered
	// bytes following an ESC without blocking, so fast escape sequences
	// are forwarded as a single block instead of one byte at a time.
	DrainEscape func(max int) []byte
	// EmitEvent writes one escaped event-FIFO line: kind is 'K' or 'E'.
	EmitEvent func(kind byte, payload []byte)
}

// NewDispatcher returns an idle Dispatcher with an empty binding table.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		direct:  make(map[byte]Action),
		twoStep: make(map[byte]map[byte]Action),
		mods:    make(map[byte]bool),
	}
}

// Bind registers a binding. mod == 0 means the key fires directly from
// IDLE; mod != 0 requires the two-step mod-then-key sequence and marks
// mod as a recognized modifier key.
func (d *Dispatcher) Bind(mod, key byte, action Action) {
	if mod == 0 {
		d.direct[key] = action
		return
	}
	d.mods[mod] = true
	m := d.twoStep[mod]
	if m == nil {
		m = make(map[byte]Action)
		d.twoStep[mod] = m
	}
	m[key] = action
}

// ForceNextLiteral arranges for the very next byte to bypass the
// modifier/binding table and copy-mode gating entirely and go straight
// to Passthrough, the escapekey command's one-shot literal-key escape.
func (d *Dispatcher) ForceNextLiteral() {
	d.forceLiteral = true
}

// HandleByte advances the FSM by one raw stdin byte.
func (d *Dispatcher) HandleByte(b byte) {
	if d.forceLiteral {
		d.forceLiteral = false
		if d.Passthrough != nil {
			d.Passthrough([]byte{b})
		}
		return
	}
	switch d.state {
	case stateAwaitMod:
		d.handleAwaitMod(b)
	default:
		d.handleIdle(b)
	}
}

func (d *Dispatcher) handleIdle(b byte) {
	if d.CopyModeActive != nil && d.CopyModeActive() {
		if d.ForwardCopyMode != nil {
			d.ForwardCopyMode(b)
		}
		return
	}

	bindingsLive := d.Mode&ModeBinding == 0
	if bindingsLive && d.mods[b] {
		d.state = stateAwaitMod
		d.mod = b
		return
	}
	if bindingsLive {
		if action, ok := d.direct[b]; ok {
			action()
			return
		}
	}

	d.dispatchByte(b)
}

func (d *Dispatcher) handleAwaitMod(b byte) {
	m := d.mod
	d.state = stateIdle
	d.mod = 0

	if b == m {
		d.dispatchByte(b)
		return
	}
	if action, ok := d.twoStep[m][b]; ok {
		action()
		return
	}
	// anything else: drop, per the IDLE/AWAIT_MOD table
}

// dispatchByte is the passthrough path for a byte that was not
// consumed by the binding table or copy mode. It special-cases ESC by
// greedily draining any immediately-available follow-up bytes so a
// whole escape sequence reaches the child (or the event FIFO) as one
// block instead of byte by byte.
func (d *Dispatcher) dispatchByte(b byte) {
	block := []byte{b}
	if b == 0x1b && d.DrainEscape != nil {
		if extra := d.DrainEscape(7); len(extra) > 0 {
			block = append(block, extra...)
		}
	}

	if ev, ok := ParseSGRMouse(block); ok {
		if d.HandleMouse != nil {
			d.HandleMouse(ev)
		}
		return
	}

	if b == 0x1b {
		if d.Mode&ModeEscape != 0 {
			if d.EmitEvent != nil {
				d.EmitEvent('E', block)
			}
			return
		}
	} else if d.Mode&ModeInput != 0 {
		if d.EmitEvent != nil {
			d.EmitEvent('K', block)
		}
		return
	}

	if d.Passthrough != nil {
		d.Passthrough(block)
	}
}
