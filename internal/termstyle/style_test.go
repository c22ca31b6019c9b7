package termstyle

import "testing"

func TestRed_Enabled(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	got := Red("dvtm: boom")
	want := "\033[31mdvtm: boom\033[0m"
	if got != want {
		t.Errorf("Red(...) = %q, want %q", got, want)
	}
}

func TestRed_Disabled(t *testing.T) {
	SetEnabled(false)

	got := Red("dvtm: boom")
	if got != "dvtm: boom" {
		t.Errorf("Red(...) with disabled = %q, want plain text", got)
	}
}

func TestRed_EmptyString(t *testing.T) {
	SetEnabled(true)
	defer SetEnabled(false)

	if got := Red(""); got != "" {
		t.Errorf("Red(\"\") = %q, want empty", got)
	}
}

func TestEnabled_ReflectsSetEnabled(t *testing.T) {
	SetEnabled(true)
	if !Enabled() {
		t.Error("Enabled() should report true after SetEnabled(true)")
	}
	SetEnabled(false)
	if Enabled() {
		t.Error("Enabled() should report false after SetEnabled(false)")
	}
}
