package fifo

import (
	"strconv"
	"strings"
)

// ClientTuple is one client's arrangement/event line entry.
type ClientTuple struct {
	ID                 uint64
	X, Y, W, H         int
	Selected, Minimized, Died bool
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// FormatEventLine renders the A|id,x,y,w,h,sel,min,died|...\n
// arrangement line for the given clients, in list order.
func FormatEventLine(tuples []ClientTuple) string {
	var b strings.Builder
	b.WriteByte('A')
	for _, t := range tuples {
		b.WriteByte('|')
		b.WriteString(strconv.FormatUint(t.ID, 10))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(t.X))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(t.Y))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(t.W))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(t.H))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(boolInt(t.Selected)))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(boolInt(t.Minimized)))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(boolInt(t.Died)))
	}
	b.WriteByte('\n')
	return b.String()
}

// FormatKeyEvent renders one "K<escaped>\n" input-redirection line.
func FormatKeyEvent(escaped string) string {
	return "K" + escaped + "\n"
}

// FormatEscapeEvent renders one "E<escaped>\n" input-redirection line.
func FormatEscapeEvent(escaped string) string {
	return "E" + escaped + "\n"
}
