package fifo

import "testing"

func TestLastLineExtractsMostRecentCompleteLine(t *testing.T) {
	tests := []struct {
		name  string
		chunk string
		want  string
	}{
		{"single line", "hello\n", "hello"},
		{"multiple lines", "first\nsecond\n", "second"},
		{"trailing newlines trimmed", "hello\n\n\n", "hello"},
		{"no newline yet", "partial", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LastLine([]byte(tt.chunk)); got != tt.want {
				t.Errorf("LastLine(%q) = %q, want %q", tt.chunk, got, tt.want)
			}
		})
	}
}
