// Command dvtm is a dynamic tiling terminal multiplexer: it tiles
// shell-command clients onto a single real terminal, each backed by
// its own PTY and virtual terminal engine, the way the teacher repo's
// own terminal wrapper manages one child instead of many.
package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"dvtm/internal/cliopts"
	"dvtm/internal/config"
	"dvtm/internal/mux"
	"dvtm/internal/screen"
	"dvtm/internal/termstyle"
	"dvtm/internal/version"
	"dvtm/internal/vt"
)

func main() {
	err := cliopts.Parse(os.Args[1:], run)
	if err != nil {
		fmt.Fprintln(os.Stderr, termstyle.Red("dvtm: "+err.Error()))
		os.Exit(1)
	}
}

func run(opts cliopts.Options) error {
	fd := int(os.Stdin.Fd())
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	fg, bg := vt.ProbeColors(os.Stdout)

	restore, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	defer func() {
		term.Restore(fd, restore)
		os.Stdout.WriteString("\033[?25h\033[0m\r\n")
	}()

	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	os.Setenv("DVTM", version.Version)

	cfg := mux.Config{
		Shell:          shell,
		ScrollHistory:  opts.ScrollHistory,
		Mouse:          opts.ToggleMouse,
		Title:          opts.Title,
		CmdFIFOPath:    opts.CmdFIFO,
		EventFIFOPath:  opts.EventFIFO,
		StatusFIFOPath: opts.StatusFIFO,
	}
	if opts.ConfigPath != "" {
		cf, err := config.Load(opts.ConfigPath)
		if err != nil {
			return err
		}
		if cf.ScrollHistory > 0 {
			cfg.ScrollHistory = cf.ScrollHistory
		}
		if len(cf.ColorRules) > 0 {
			rules := []screen.ColorRule{{Pattern: "", FG: -1, BG: -1}}
			for _, r := range cf.ColorRules {
				rules = append(rules, screen.ColorRule{Pattern: r.Pattern, FG: r.FG, BG: r.BG})
			}
			cfg.ColorRules = rules
		}
	}
	m := mux.New(cfg, rows, cols, os.Stdout)
	m.DefaultColors(fg, bg)
	m.BindDefaults(opts.Modifier)
	if opts.DebugLog != "" {
		f, err := os.OpenFile(opts.DebugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
		m.Logger.SetOutput(f)
	}

	if err := m.AttachFIFOs(); err != nil {
		return fmt.Errorf("attach fifos: %w", err)
	}
	defer m.Shutdown()

	commands := opts.Commands
	if len(commands) == 0 {
		commands = []string{shell}
	}
	for _, cmdline := range commands {
		if err := m.Create(cmdline, "", ""); err != nil {
			fmt.Fprintln(os.Stderr, termstyle.Red("dvtm: "+err.Error()))
		}
	}
	if m.Registry.Len() == 0 {
		return fmt.Errorf("no client could be started")
	}

	m.SetOuterTitle(opts.Title)

	sigCh := mux.NotifySignals()
	go m.WatchResize(sigCh)

	os.Stdout.WriteString("\033[2J\033[H")
	m.Arrange()
	m.Repaint()

	return m.Run()
}
