package vt

import (
	"os"
	"strconv"

	"github.com/muesli/termenv"
)

// ProbeColors detects the real terminal's default foreground/background
// colors before raw mode is entered, so OSC 10/11 queries from children
// can be answered locally instead of racing the real terminal.
func ProbeColors(out *os.File) (fg, bg string) {
	output := termenv.NewOutput(out)
	if c := output.ForegroundColor(); c != nil {
		fg = colorToX11(c)
	}
	if c := output.BackgroundColor(); c != nil {
		bg = colorToX11(c)
	}
	return fg, bg
}

// colorToX11 converts a termenv.Color to the X11 "rgb:RRRR/GGGG/BBBB"
// format used by OSC 10/11 responses.
func colorToX11(c termenv.Color) string {
	rgb, ok := c.(termenv.RGBColor)
	if !ok {
		return ""
	}
	hex := string(rgb)
	if len(hex) != 7 || hex[0] != '#' {
		return ""
	}
	r, _ := strconv.ParseUint(hex[1:3], 16, 8)
	g, _ := strconv.ParseUint(hex[3:5], 16, 8)
	b, _ := strconv.ParseUint(hex[5:7], 16, 8)
	return "rgb:" + pad4(r) + "/" + pad4(g) + "/" + pad4(b)
}

func pad4(v uint64) string {
	s := strconv.FormatUint(v*0x101, 16)
	for len(s) < 4 {
		s = "0" + s
	}
	return s
}
