package fifo

import "testing"

func TestFormatEventLine(t *testing.T) {
	tuples := []ClientTuple{
		{ID: 1, X: 0, Y: 0, W: 40, H: 24, Selected: true},
		{ID: 2, X: 40, Y: 0, W: 40, H: 24, Minimized: true},
	}
	got := FormatEventLine(tuples)
	want := "A|1,0,0,40,24,1,0,0|2,40,0,40,24,0,1,0\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestFormatEventLineEmpty(t *testing.T) {
	if got := FormatEventLine(nil); got != "A\n" {
		t.Errorf("got %q, want %q", got, "A\n")
	}
}

func TestFormatKeyAndEscapeEvents(t *testing.T) {
	if got := FormatKeyEvent("A"); got != "KA\n" {
		t.Errorf("got %q", got)
	}
	if got := FormatEscapeEvent(`\e[A`); got != "E\\e[A\n" {
		t.Errorf("got %q", got)
	}
}
