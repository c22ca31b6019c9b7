package input

import "testing"

func newTestDispatcher() (*Dispatcher, *[]byte, *bool) {
	d := NewDispatcher()
	passed := &[]byte{}
	fired := new(bool)
	d.Passthrough = func(block []byte) { *passed = append(*passed, block...) }
	d.Bind(0x07, 'j', func() { *fired = true })
	d.Bind(0, 'q', func() { *fired = true })
	return d, passed, fired
}

func TestDirectBindingFiresFromIdle(t *testing.T) {
	d, passed, fired := newTestDispatcher()
	d.HandleByte('q')
	if !*fired {
		t.Fatal("direct binding did not fire")
	}
	if len(*passed) != 0 {
		t.Errorf("direct binding should not pass through, got %v", *passed)
	}
}

func TestTwoStepBindingFires(t *testing.T) {
	d, _, fired := newTestDispatcher()
	d.HandleByte(0x07)
	d.HandleByte('j')
	if !*fired {
		t.Fatal("two-step binding did not fire")
	}
}

func TestAwaitModUnboundKeyIsDropped(t *testing.T) {
	d, passed, fired := newTestDispatcher()
	d.HandleByte(0x07)
	d.HandleByte('z') // not bound under this modifier
	if *fired {
		t.Fatal("unrelated binding should not have fired")
	}
	if len(*passed) != 0 {
		t.Errorf("unbound mod+key should be dropped, not passed through, got %v", *passed)
	}
}

func TestAwaitModRepeatedModPassesThroughLiteral(t *testing.T) {
	d, passed, _ := newTestDispatcher()
	d.HandleByte(0x07)
	d.HandleByte(0x07)
	if string(*passed) != "\x07" {
		t.Errorf("passed = %q, want literal modifier", *passed)
	}
}

func TestOrdinaryKeyPassesThrough(t *testing.T) {
	d, passed, _ := newTestDispatcher()
	d.HandleByte('x')
	if string(*passed) != "x" {
		t.Errorf("passed = %q, want %q", *passed, "x")
	}
}

func TestModeBindingDisablesActionsButNotPassthrough(t *testing.T) {
	d, passed, fired := newTestDispatcher()
	d.Mode |= ModeBinding
	d.HandleByte('q')
	if *fired {
		t.Fatal("binding should not fire while ModeBinding is set")
	}
	if string(*passed) != "q" {
		t.Errorf("passed = %q, want %q (fallback passthrough)", *passed, "q")
	}
}

func TestModeInputRedirectsOrdinaryKeysToEventFIFO(t *testing.T) {
	d, passed, _ := newTestDispatcher()
	var events []string
	d.Mode |= ModeInput
	d.EmitEvent = func(kind byte, payload []byte) {
		events = append(events, string(kind)+EscapeBytes(payload))
	}
	d.HandleByte('x')
	if len(*passed) != 0 {
		t.Errorf("passthrough should not have been invoked, got %v", *passed)
	}
	if len(events) != 1 || events[0] != "Kx" {
		t.Errorf("events = %v, want [Kx]", events)
	}
}

func TestModeEscapeRedirectsEscapeBlocksToEventFIFO(t *testing.T) {
	d, passed, _ := newTestDispatcher()
	var events []string
	d.Mode |= ModeEscape
	d.EmitEvent = func(kind byte, payload []byte) {
		events = append(events, string(kind)+EscapeBytes(payload))
	}
	d.DrainEscape = func(max int) []byte { return []byte("[A") }
	d.HandleByte(0x1b)
	if len(*passed) != 0 {
		t.Errorf("passthrough should not have been invoked, got %v", *passed)
	}
	if len(events) != 1 || events[0] != `E\e[A` {
		t.Errorf("events = %v, want [E\\e[A]", events)
	}
}

func TestCopyModeForwardsInsteadOfDispatching(t *testing.T) {
	d, passed, fired := newTestDispatcher()
	var forwarded []byte
	d.CopyModeActive = func() bool { return true }
	d.ForwardCopyMode = func(b byte) { forwarded = append(forwarded, b) }
	d.HandleByte('q') // would otherwise be a direct binding
	if *fired {
		t.Fatal("binding should not fire in copy mode")
	}
	if len(*passed) != 0 {
		t.Errorf("passthrough should not fire in copy mode, got %v", *passed)
	}
	if string(forwarded) != "q" {
		t.Errorf("forwarded = %q, want %q", forwarded, "q")
	}
}

func TestEscapeDrainsUpToSevenBytesAsOneBlock(t *testing.T) {
	d, passed, _ := newTestDispatcher()
	d.DrainEscape = func(max int) []byte {
		if max != 7 {
			t.Errorf("DrainEscape called with max=%d, want 7", max)
		}
		return []byte("[200~x")
	}
	d.HandleByte(0x1b)
	if string(*passed) != "\x1b[200~x" {
		t.Errorf("passed = %q, want whole escape block", *passed)
	}
}

func TestSGRMouseRoutesToHandleMouse(t *testing.T) {
	d, passed, _ := newTestDispatcher()
	var got MouseEvent
	var sawMouse bool
	d.HandleMouse = func(ev MouseEvent) { got = ev; sawMouse = true }
	d.DrainEscape = func(max int) []byte { return []byte("[<0;10;5M") }
	d.HandleByte(0x1b)
	if !sawMouse {
		t.Fatal("SGR mouse sequence was not routed to HandleMouse")
	}
	if len(*passed) != 0 {
		t.Errorf("mouse sequence should not also be passed through, got %v", *passed)
	}
	if got.X != 9 || got.Y != 4 || got.Button != 0 || got.Release {
		t.Errorf("decoded mouse event = %+v", got)
	}
}
