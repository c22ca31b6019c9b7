// Package screen renders clients and the status bar as raw ANSI/SGR
// escape sequences onto the outer terminal, the same no-curses idiom
// the teacher repo uses (internal/terminal/wrapper.go's RenderScreen/
// RenderBar): there is no curses/tcell dependency anywhere in the
// example corpus's complete repos, so none is introduced here either.
package screen

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/vito/midterm"

	"dvtm/internal/registry"
)

// Separator sits between a client's title and its order number, carried
// over verbatim from the original's SEPARATOR define.
const Separator = " | "

// formatTitle mirrors the original's TITLE "[%s%s#%d]" printf format.
func formatTitle(title string, order int) string {
	return fmt.Sprintf("[%s%s#%d]", title, Separator, order)
}

// BarPos selects where the status bar is drawn, mirroring BAR_TOP/
// BAR_BOTTOM/BAR_OFF from config.def.h.
type BarPos int

const (
	BarTop BarPos = iota
	BarBottom
	BarOff
)

// BarAlign selects status bar text alignment, mirroring ALIGN_LEFT/
// ALIGN_RIGHT.
type BarAlign int

const (
	AlignLeft BarAlign = iota
	AlignRight
)

// Attribute constants grounded on config.def.h's SELECTED_ATTR/
// NORMAL_ATTR/BAR_ATTR, expressed as SGR escapes since there is no
// curses color pair table: selected and bar use blue-on-default,
// matching the original's BLUE foreground with a -1 ("keep terminal
// default") background; normal keeps the terminal's default colors.
const (
	attrSelected = "\033[34m"
	attrNormal   = "\033[0m"
	attrBar      = "\033[34m"
	attrReset    = "\033[0m"
)

// ColorRule overrides a client's border colors when its title contains
// Pattern, grounded on original_source/dvtm.c's applycolorrules and its
// colorrules[] table. Rules[0] is the always-matching default (empty
// Pattern); the rest are tried in table order and the first substring
// match wins, mirroring applycolorrules's for loop and break.
type ColorRule struct {
	Pattern string
	FG, BG  int // ANSI SGR color number; -1 keeps the terminal default
}

// DefaultColorRules is the built-in table: just the pass-through
// default entry, since config.def.h ships its only non-default example
// ("ssh") inside a disabled #if 0 block.
func DefaultColorRules() []ColorRule {
	return []ColorRule{{Pattern: "", FG: -1, BG: -1}}
}

// MatchColorRule returns the first rule after rules[0] whose Pattern is
// a substring of title, or rules[0] if none match or rules is empty.
func MatchColorRule(title string, rules []ColorRule) ColorRule {
	if len(rules) == 0 {
		return ColorRule{FG: -1, BG: -1}
	}
	def := rules[0]
	for _, r := range rules[1:] {
		if strings.Contains(title, r.Pattern) {
			return r
		}
	}
	return def
}

func (r ColorRule) sgr() string {
	var parts []string
	if r.FG >= 0 {
		parts = append(parts, fmt.Sprintf("38;5;%d", r.FG))
	}
	if r.BG >= 0 {
		parts = append(parts, fmt.Sprintf("48;5;%d", r.BG))
	}
	if len(parts) == 0 {
		return ""
	}
	return "\033[" + strings.Join(parts, ";") + "m"
}

// Screen owns the outer terminal dimensions and bar configuration; it
// holds no client state of its own; every render call is handed the
// current client list and takes a snapshot style view of it.
type Screen struct {
	Rows, Cols int
	Bar        BarPos
	Align      BarAlign
	ColorRules []ColorRule
}

// New returns a Screen sized to rows x cols with the default bar
// position/alignment from config.def.h (top, right-aligned).
func New(rows, cols int) *Screen {
	return &Screen{Rows: rows, Cols: cols, Bar: BarTop, Align: AlignRight, ColorRules: DefaultColorRules()}
}

// Resize updates the tracked outer terminal size.
func (s *Screen) Resize(rows, cols int) {
	s.Rows, s.Cols = rows, cols
}

// BarHeight is 0 when the bar is off, 1 otherwise.
func (s *Screen) BarHeight() int {
	if s.Bar == BarOff {
		return 0
	}
	return 1
}

// Workspace returns the region available for tiling once the status bar
// row has been carved off the top or bottom.
func (s *Screen) Workspace() registry.Rect {
	y := 0
	if s.Bar == BarTop {
		y = s.BarHeight()
	}
	return registry.Rect{X: 0, Y: y, W: s.Cols, H: s.Rows - s.BarHeight()}
}

// Render draws every client's title border and content, then the
// status bar, into a single escape-sequence buffer ready to write in
// one syscall. runinall, when true, paints every non-minimized client
// with the selected attribute instead of just sel.
func (s *Screen) Render(clients []*registry.Client, sel *registry.Client, runinall bool, fullscreen bool, statusText string) []byte {
	var buf bytes.Buffer
	buf.WriteString("\033[?25l")

	for _, c := range clients {
		if c.Minimized {
			s.renderMinimizedRow(&buf, c)
			continue
		}
		if fullscreen && c != sel {
			continue
		}
		selected := c == sel || runinall
		s.renderClient(&buf, c, selected)
	}

	if s.Bar != BarOff {
		s.renderBar(&buf, statusText)
	}

	if sel != nil && !sel.Minimized {
		row := sel.Rect.Y + 1
		col := sel.Rect.X + 1
		fmt.Fprintf(&buf, "\033[%d;%dH", row, col)
		buf.WriteString("\033[?25h")
	}
	return buf.Bytes()
}

func (s *Screen) renderClient(buf *bytes.Buffer, c *registry.Client, selected bool) {
	r := c.Rect
	if r.Empty() {
		return
	}
	attr := attrNormal
	if selected {
		attr = attrSelected
	}
	attr += MatchColorRule(c.Title, s.ColorRules).sgr()

	title := formatTitle(c.TruncatedTitle(), c.Order)
	fmt.Fprintf(buf, "\033[%d;%dH\033[2K", r.Y+1, r.X+1)
	buf.WriteString(attr)
	buf.WriteString(truncWidth(title, r.W))
	buf.WriteString(attrReset)

	if c.VT == nil || c.VT.Term == nil {
		return
	}
	contentRows := r.H - 1
	for row := 0; row < contentRows; row++ {
		fmt.Fprintf(buf, "\033[%d;%dH\033[2K", r.Y+2+row, r.X+1)
		renderLine(buf, c.VT.Term, row, r.W)
	}
}

func (s *Screen) renderMinimizedRow(buf *bytes.Buffer, c *registry.Client) {
	r := c.Rect
	fmt.Fprintf(buf, "\033[%d;%dH\033[2K", r.Y+1, r.X+1)
	buf.WriteString(attrNormal)
	buf.WriteString(truncWidth(formatTitle(c.TruncatedTitle(), c.Order), r.W))
	buf.WriteString(attrReset)
}

func renderLine(buf *bytes.Buffer, term *midterm.Terminal, row, width int) {
	if row >= len(term.Content) {
		return
	}
	line := term.Content[row]
	var pos int
	var lastFormat midterm.Format
	for region := range term.Format.Regions(row) {
		f := region.F
		if f != lastFormat {
			buf.WriteString("\033[0m")
			buf.WriteString(f.Render())
			lastFormat = f
		}
		end := pos + region.Size
		if end > width {
			end = width
		}
		if pos < len(line) && pos < end {
			contentEnd := end
			if contentEnd > len(line) {
				contentEnd = len(line)
			}
			buf.WriteString(string(line[pos:contentEnd]))
		}
		padStart := len(line)
		if padStart < pos {
			padStart = pos
		}
		if padStart < end {
			buf.WriteString(strings.Repeat(" ", end-padStart))
		}
		pos = end
		if pos >= width {
			break
		}
	}
	buf.WriteString("\033[0m")
}

func (s *Screen) renderBar(buf *bytes.Buffer, text string) {
	row := s.Rows
	if s.Bar == BarTop {
		row = 1
	}
	fmt.Fprintf(buf, "\033[%d;1H\033[2K", row)
	buf.WriteString(attrBar)

	bracketed := ""
	if text != "" {
		bracketed = "[" + text + "]"
	}
	bracketed = truncWidth(bracketed, s.Cols)
	pad := s.Cols - runewidth.StringWidth(bracketed)
	if pad < 0 {
		pad = 0
	}
	if s.Align == AlignRight {
		buf.WriteString(strings.Repeat(" ", pad))
		buf.WriteString(bracketed)
	} else {
		buf.WriteString(bracketed)
		buf.WriteString(strings.Repeat(" ", pad))
	}
	buf.WriteString(attrReset)
}

// truncWidth truncates s to at most width display columns, accounting
// for wide runes the way mattn/go-runewidth does for CJK content.
func truncWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "")
}
