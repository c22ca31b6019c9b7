package screen

import "testing"

func TestFormatTitle(t *testing.T) {
	tests := []struct {
		title string
		order int
		want  string
	}{
		{"bash", 1, "[bash | #1]"},
		{"", 3, "[ | #3]"},
	}
	for _, tt := range tests {
		if got := formatTitle(tt.title, tt.order); got != tt.want {
			t.Errorf("formatTitle(%q, %d) = %q, want %q", tt.title, tt.order, got, tt.want)
		}
	}
}

func TestTruncWidth(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 3, "hel"},
		{"", 5, ""},
		{"x", 0, ""},
	}
	for _, tt := range tests {
		if got := truncWidth(tt.in, tt.width); got != tt.want {
			t.Errorf("truncWidth(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
		}
	}
}

func TestMatchColorRuleFallsBackToDefault(t *testing.T) {
	rules := []ColorRule{{Pattern: "", FG: -1, BG: -1}, {Pattern: "ssh", FG: 0, BG: 224}}
	got := MatchColorRule("bash", rules)
	if got.FG != -1 || got.BG != -1 {
		t.Errorf("non-matching title should fall back to default, got %+v", got)
	}
}

func TestMatchColorRuleFindsSubstring(t *testing.T) {
	rules := []ColorRule{{Pattern: "", FG: -1, BG: -1}, {Pattern: "ssh", FG: 0, BG: 224}}
	got := MatchColorRule("user@host: ssh box", rules)
	if got.FG != 0 || got.BG != 224 {
		t.Errorf("ssh-matching title should use override rule, got %+v", got)
	}
}

func TestColorRuleSGREmptyWhenBothDefault(t *testing.T) {
	r := ColorRule{FG: -1, BG: -1}
	if got := r.sgr(); got != "" {
		t.Errorf("all-default rule should render no SGR, got %q", got)
	}
}

func TestWorkspaceExcludesBar(t *testing.T) {
	s := New(24, 80)
	ws := s.Workspace()
	if ws.H != 23 || ws.Y != 1 {
		t.Errorf("top-bar workspace = %+v, want H=23 Y=1", ws)
	}

	s.Bar = BarBottom
	ws = s.Workspace()
	if ws.H != 23 || ws.Y != 0 {
		t.Errorf("bottom-bar workspace = %+v, want H=23 Y=0", ws)
	}

	s.Bar = BarOff
	ws = s.Workspace()
	if ws.H != 24 || ws.Y != 0 {
		t.Errorf("no-bar workspace = %+v, want H=24 Y=0", ws)
	}
}
