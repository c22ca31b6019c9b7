package mux

import (
	"testing"
	"time"
)

// newTestMux builds a Multiplexer sized for a small terminal with no
// FIFOs attached, the way the black-box scenarios below need it: real
// clients, real PTYs, no real outer terminal writer.
func newTestMux(t *testing.T, rows, cols int) *Multiplexer {
	t.Helper()
	cfg := Config{Shell: "/bin/sh"}
	m := New(cfg, rows, cols, nil)
	m.BindDefaults('\a' & 0x1f)
	return m
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !cond() {
		t.Fatal("condition never became true")
	}
}

// E1: spawning two clients and focusing by order number selects the
// right one.
func TestE1SpawnAndFocusByNumber(t *testing.T) {
	m := newTestMux(t, 24, 80)
	defer m.Shutdown()

	if err := m.Create("/bin/cat", "one", ""); err != nil {
		t.Fatal(err)
	}
	if err := m.Create("/bin/cat", "two", ""); err != nil {
		t.Fatal(err)
	}
	if m.Registry.Len() != 2 {
		t.Fatalf("expected 2 clients, got %d", m.Registry.Len())
	}

	if !m.FocusN(1) {
		t.Fatal("FocusN(1) should succeed")
	}
	sel := m.Registry.Sel()
	if sel == nil || sel.Order != 1 {
		t.Fatalf("expected order 1 selected, got %+v", sel)
	}
}

// E2: setmfact clamps to [0.1, 0.9] and is a no-op under grid/fullscreen.
func TestE2SetMFactClamps(t *testing.T) {
	m := newTestMux(t, 24, 80)
	defer m.Shutdown()

	m.SetMFact("5")
	if m.mfact != 0.9 {
		t.Errorf("mfact should clamp to 0.9, got %v", m.mfact)
	}
	m.SetMFact("-5")
	if m.mfact != 0.1 {
		t.Errorf("mfact should clamp to 0.1, got %v", m.mfact)
	}

	m.SetLayout("+++") // grid
	before := m.mfact
	m.SetMFact("0.5")
	if m.mfact != before {
		t.Errorf("setmfact should be a no-op under grid, got %v want %v", m.mfact, before)
	}
}

// E3: toggling minimize on the last visible client is refused.
func TestE3ToggleMinimizeRefusesLastVisible(t *testing.T) {
	m := newTestMux(t, 24, 80)
	defer m.Shutdown()

	if err := m.Create("/bin/cat", "solo", ""); err != nil {
		t.Fatal(err)
	}
	m.ToggleMinimize()
	if m.Registry.Sel().Minimized {
		t.Error("minimizing the only visible client should be refused")
	}
}

// E4: setting ModeInput redirects plain keys to the event FIFO instead
// of the focused client, observable as Passthrough never firing.
func TestE4InputModeRedirectsAwayFromPassthrough(t *testing.T) {
	m := newTestMux(t, 24, 80)
	defer m.Shutdown()

	if err := m.Create("/bin/cat", "", ""); err != nil {
		t.Fatal(err)
	}

	var passed []byte
	m.Dispatcher.Passthrough = func(b []byte) { passed = append(passed, b...) }

	m.SetInputMode("i")
	m.Dispatcher.HandleByte('x')
	if len(passed) != 0 {
		t.Errorf("ModeInput should suppress passthrough, got %q", passed)
	}

	m.SetInputMode("")
	m.Dispatcher.HandleByte('y')
	if string(passed) != "y" {
		t.Errorf("clearing InputMode should restore passthrough, got %q", passed)
	}
}

// E5: the sole client's process exiting leads Tick to detect the death
// and respawn that client's command (here /bin/true, not the shell).
func TestE5ChildDeathRespawns(t *testing.T) {
	m := newTestMux(t, 24, 80)
	defer m.Shutdown()

	if err := m.Create("/bin/true", "", ""); err != nil {
		t.Fatal(err)
	}
	waitFor(t, 2*time.Second, func() bool {
		return m.Registry.Sel() != nil && m.Registry.Sel().VT.ChildExited()
	})

	m.Tick()
	waitFor(t, time.Second, func() bool { return m.Registry.Len() == 1 })

	if m.Registry.Len() != 1 {
		t.Fatalf("expected a respawned client, got %d clients", m.Registry.Len())
	}
}

// Lock freezes stdin behind a password: bytes before the full password
// is retyped never reach the dispatcher, and a wrong block resyncs
// instead of unlocking.
func TestLockBlocksUntilPasswordRetyped(t *testing.T) {
	m := newTestMux(t, 24, 80)
	defer m.Shutdown()

	var passed []byte
	m.Dispatcher.Passthrough = func(b []byte) { passed = append(passed, b...) }

	m.Lock("ab")
	if !m.locked {
		t.Fatal("Lock should set locked")
	}

	for _, b := range []byte("xy") { // wrong guess, should resync
		m.handleLockedByte(b)
	}
	if !m.locked {
		t.Fatal("wrong password block should not unlock")
	}

	for _, b := range []byte("ab") {
		m.handleLockedByte(b)
	}
	if m.locked {
		t.Error("correct password should unlock")
	}
	if len(passed) != 0 {
		t.Errorf("locked bytes must never reach the dispatcher passthrough, got %q", passed)
	}
}

// E6: a command string runs through /bin/sh -c, so shell metacharacters
// (here a pipe) are interpreted rather than passed through literally as
// a literal argument to the first word.
func TestE6CommandRunsThroughShell(t *testing.T) {
	m := newTestMux(t, 24, 80)
	defer m.Shutdown()

	if err := m.Create("echo hello | cat", "", ""); err != nil {
		t.Fatal(err)
	}
	c := m.Registry.Sel()
	waitFor(t, time.Second, func() bool { return c.VT.ChildExited() })
	if c.VT.ExitError != nil {
		t.Fatalf("pipeline should exit cleanly: %v", c.VT.ExitError)
	}
	if c.Title != "echo" {
		t.Errorf("default title should be the leading word, got %q", c.Title)
	}
}
