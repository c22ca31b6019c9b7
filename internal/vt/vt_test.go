package vt

import (
	"strings"
	"testing"
	"time"
)

func TestStartPumpAndChildExited(t *testing.T) {
	v, err := Start("/bin/echo", []string{"hello"}, "", 24, 80, 0, nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer v.Close()

	deadline := time.Now().Add(2 * time.Second)
	var saw string
	for time.Now().Before(deadline) {
		if perr := v.Pump(nil); perr != nil {
			break
		}
		saw = contentString(v)
		if strings.Contains(saw, "hello") {
			break
		}
	}
	if !strings.Contains(saw, "hello") {
		t.Fatalf("expected terminal content to contain %q, got %q", "hello", saw)
	}

	deadline = time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && !v.ChildExited() {
		time.Sleep(10 * time.Millisecond)
	}
	if !v.ChildExited() {
		t.Fatal("expected ChildExited to become true after echo exits")
	}
}

func TestResizeUpdatesDimensions(t *testing.T) {
	v, err := Start("/bin/cat", nil, "", 24, 80, 0, nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer func() {
		v.Kill()
		v.Close()
	}()

	v.Resize(30, 100)
	if v.Rows != 30 || v.Cols != 100 {
		t.Fatalf("Resize: got rows=%d cols=%d, want 30x100", v.Rows, v.Cols)
	}
}

func TestScrollbackAllocatedWhenHistoryLinesPositive(t *testing.T) {
	v, err := Start("/bin/cat", nil, "", 24, 80, 200, nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer func() {
		v.Kill()
		v.Close()
	}()
	if v.Scrollback == nil {
		t.Fatal("expected Scrollback to be allocated when historyLines > 0")
	}
}

func TestKillTerminatesChild(t *testing.T) {
	v, err := Start("/bin/cat", nil, "", 24, 80, 0, nil)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer v.Close()

	if err := v.Kill(); err != nil {
		t.Fatalf("Kill: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) && !v.ChildExited() {
		time.Sleep(10 * time.Millisecond)
	}
	if !v.ChildExited() {
		t.Fatal("expected ChildExited to become true after Kill")
	}
}

func contentString(v *VT) string {
	var b strings.Builder
	for _, line := range v.Term.Content {
		b.WriteString(string(line))
		b.WriteByte('\n')
	}
	return b.String()
}
