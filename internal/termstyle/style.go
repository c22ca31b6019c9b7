// Package termstyle renders the handful of error-path colors dvtm
// needs on stderr, auto-detecting whether stdout is a TTY the way
// ekain-fr-h2/internal/termstyle does for its whole palette; dvtm only
// ever reaches for red, so that is all this trims down to.
package termstyle

import (
	"os"

	"github.com/mattn/go-isatty"
)

// enabled tracks whether ANSI styling is active.
// Defaults to true if stdout is a TTY.
var enabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

// SetEnabled overrides the auto-detected TTY check.
func SetEnabled(on bool) {
	enabled = on
}

// Enabled returns whether styling is currently active.
func Enabled() bool {
	return enabled
}

func wrap(code, s string) string {
	if !enabled || s == "" {
		return s
	}
	return code + s + "\033[0m"
}

// Red renders text in red, used for the fatal-error line on stderr.
func Red(s string) string { return wrap("\033[31m", s) }
