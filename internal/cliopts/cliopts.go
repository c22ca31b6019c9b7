// Package cliopts parses dvtm's command-line surface with
// github.com/spf13/cobra and github.com/spf13/pflag, the same library
// pair the teacher repo builds its own CLI on (internal/cmd/root.go).
// dvtm has no subcommands, only a flat set of single-letter flags plus
// trailing shell-command arguments, so this package builds one root
// *cobra.Command rather than a tree of them.
package cliopts

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"dvtm/internal/version"
)

// Options holds the parsed flag values, ready to feed into mux.Config.
type Options struct {
	PrintVersion  bool
	ToggleMouse   bool
	Modifier      byte
	EscDelayMS    int
	ScrollHistory int
	Title         string
	StatusFIFO    string
	CmdFIFO       string
	EventFIFO     string
	DebugLog      string
	ConfigPath    string
	Commands      []string // trailing args: one shell command per client
}

// Parse builds the root command, runs Cobra's flag parsing over args
// (typically os.Args[1:]), and passes the resulting Options to run. run
// is invoked only when -v was not given; its error becomes the command's
// error and is returned from Parse. Cobra does not print it (errors are
// silenced); the caller prints it and translates it into an exit code.
func Parse(args []string, run func(Options) error) error {
	var (
		modFlag string
		opts    Options
	)

	root := &cobra.Command{
		Use:           "dvtm [shell-command ...]",
		Short:         "dvtm is a dynamic tiling terminal multiplexer",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			if opts.PrintVersion {
				fmt.Fprintln(cmd.OutOrStdout(), version.Version)
				return nil
			}
			mod, err := ParseModifier(modFlag)
			if err != nil {
				return err
			}
			opts.Modifier = mod
			opts.EscDelayMS = clampEscDelay(opts.EscDelayMS)
			opts.Commands = cmdArgs
			return run(opts)
		},
	}

	flags := root.Flags()
	flags.BoolVarP(&opts.PrintVersion, "version", "v", false, "print version and exit")
	flags.BoolVarP(&opts.ToggleMouse, "mouse", "M", false, "toggle default mouse enablement")
	flags.StringVarP(&modFlag, "modifier", "m", "^g", "override the global modifier key")
	flags.IntVarP(&opts.EscDelayMS, "escdelay", "d", defaultEscDelay(), "escape-sequence recognition delay in ms")
	flags.IntVarP(&opts.ScrollHistory, "history", "h", 500, "scrollback lines per client")
	flags.StringVarP(&opts.Title, "title", "t", "dvtm", "outer terminal title")
	flags.StringVarP(&opts.StatusFIFO, "status-fifo", "s", "", "status FIFO path")
	flags.StringVarP(&opts.CmdFIFO, "cmd-fifo", "c", "", "command FIFO path")
	flags.StringVarP(&opts.EventFIFO, "event-fifo", "e", "", "event FIFO path")
	flags.StringVar(&opts.DebugLog, "debug-log", "", "write backend-failure diagnostics to PATH")
	flags.StringVar(&opts.ConfigPath, "config", "", "YAML file overriding color rules and a few numeric defaults")

	root.SetArgs(args)
	return root.Execute()
}

// ParseModifier decodes a single-character modifier flag value. A
// leading '^' yields the control code of the following letter (^X ->
// 0x18); anything else is taken as a literal byte.
func ParseModifier(s string) (byte, error) {
	if s == "" {
		return 0, fmt.Errorf("empty modifier")
	}
	if s[0] == '^' {
		if len(s) != 2 {
			return 0, fmt.Errorf("invalid control modifier %q", s)
		}
		c := s[1]
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		return c & 0x1f, nil
	}
	if len(s) != 1 {
		return 0, fmt.Errorf("modifier must be a single character, got %q", s)
	}
	return s[0], nil
}

func clampEscDelay(ms int) int {
	if ms < 50 {
		return 50
	}
	if ms > 1000 {
		return 1000
	}
	return ms
}

// defaultEscDelay honors a preexisting ESCDELAY environment variable
// (per §6, "not overridden unless -d"), falling back to 300ms.
func defaultEscDelay() int {
	if v := os.Getenv("ESCDELAY"); v != "" {
		if ms, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return clampEscDelay(ms)
		}
	}
	return 300
}
