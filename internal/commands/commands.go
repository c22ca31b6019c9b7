// Package commands holds the dvtm command table: the same named
// operations reachable from a keybinding or from a command-FIFO line.
// It depends only on a small Multiplexer interface so the table can be
// built without importing internal/mux, which in turn imports this
// package to wire the table in. internal/mux.Multiplexer implements
// this interface; nothing here knows the concrete type.
package commands

// Multiplexer is the set of operations a command may perform. It is
// implemented by internal/mux.Multiplexer.
type Multiplexer interface {
	Create(cmd, title, cwd string) error
	KillFocused()
	FocusNext()
	FocusPrev()
	FocusNextNM()
	FocusPrevNM()
	FocusN(n int) bool
	FocusID(id uint64) bool
	SetLayout(sym string) bool
	CycleLayout()
	SetMFact(spec string)
	Zoom()
	ToggleMinimize()
	ToggleBar()
	ToggleMouse()
	ToggleBell()
	ToggleRunAll()
	EnterCopyMode(seed string)
	Paste()
	Scrollback(dir string)
	Lock(password string)
	Redraw()
	Quit()
	SetInputMode(spec string)
	SetTitleByID(id uint64, title string) bool
	ReportStatus()
	EscapeKey()
}

// Command is one named operation: its argument arity and the function
// that runs it. MaxArgs caps how many args the FIFO parser will ever
// hand it (the grammar itself never collects more than 3).
type Command struct {
	Name    string
	MinArgs int
	MaxArgs int
	Run     func(m Multiplexer, args []string) error
}

// Table is the full set of commands, keyed by name; buildTable lists
// them in the order the original's commands[] array does, but the map
// itself has no order.
var Table = buildTable()

func buildTable() map[string]*Command {
	cmds := []*Command{
		{Name: "create", MinArgs: 0, MaxArgs: 3, Run: func(m Multiplexer, a []string) error {
			cmd, title, cwd := arg(a, 0), arg(a, 1), arg(a, 2)
			return m.Create(cmd, title, cwd)
		}},
		{Name: "killclient", MaxArgs: 0, Run: func(m Multiplexer, a []string) error {
			m.KillFocused()
			return nil
		}},
		{Name: "focusnext", MaxArgs: 0, Run: func(m Multiplexer, a []string) error {
			m.FocusNext()
			return nil
		}},
		{Name: "focusprev", MaxArgs: 0, Run: func(m Multiplexer, a []string) error {
			m.FocusPrev()
			return nil
		}},
		{Name: "focusnextnm", MaxArgs: 0, Run: func(m Multiplexer, a []string) error {
			m.FocusNextNM()
			return nil
		}},
		{Name: "focusprevnm", MaxArgs: 0, Run: func(m Multiplexer, a []string) error {
			m.FocusPrevNM()
			return nil
		}},
		{Name: "focusn", MinArgs: 1, MaxArgs: 1, Run: func(m Multiplexer, a []string) error {
			n, err := parseInt(a[0])
			if err != nil {
				return err
			}
			m.FocusN(n)
			return nil
		}},
		{Name: "focusid", MinArgs: 1, MaxArgs: 1, Run: func(m Multiplexer, a []string) error {
			id, err := parseUint(a[0])
			if err != nil {
				return err
			}
			m.FocusID(id)
			return nil
		}},
		{Name: "setlayout", MaxArgs: 1, Run: func(m Multiplexer, a []string) error {
			if len(a) == 0 {
				m.CycleLayout()
				return nil
			}
			m.SetLayout(a[0])
			return nil
		}},
		{Name: "setmfact", MinArgs: 1, MaxArgs: 1, Run: func(m Multiplexer, a []string) error {
			m.SetMFact(a[0])
			return nil
		}},
		{Name: "zoom", MaxArgs: 0, Run: func(m Multiplexer, a []string) error {
			m.Zoom()
			return nil
		}},
		{Name: "toggleminimize", MaxArgs: 0, Run: func(m Multiplexer, a []string) error {
			m.ToggleMinimize()
			return nil
		}},
		{Name: "togglebar", MaxArgs: 0, Run: func(m Multiplexer, a []string) error {
			m.ToggleBar()
			return nil
		}},
		{Name: "togglemouse", MaxArgs: 0, Run: func(m Multiplexer, a []string) error {
			m.ToggleMouse()
			return nil
		}},
		{Name: "togglebell", MaxArgs: 0, Run: func(m Multiplexer, a []string) error {
			m.ToggleBell()
			return nil
		}},
		{Name: "togglerunall", MaxArgs: 0, Run: func(m Multiplexer, a []string) error {
			m.ToggleRunAll()
			return nil
		}},
		{Name: "copymode", MaxArgs: 1, Run: func(m Multiplexer, a []string) error {
			m.EnterCopyMode(arg(a, 0))
			return nil
		}},
		{Name: "paste", MaxArgs: 0, Run: func(m Multiplexer, a []string) error {
			m.Paste()
			return nil
		}},
		{Name: "scrollback", MinArgs: 1, MaxArgs: 1, Run: func(m Multiplexer, a []string) error {
			m.Scrollback(a[0])
			return nil
		}},
		{Name: "lock", MaxArgs: 1, Run: func(m Multiplexer, a []string) error {
			m.Lock(arg(a, 0))
			return nil
		}},
		{Name: "redraw", MaxArgs: 0, Run: func(m Multiplexer, a []string) error {
			m.Redraw()
			return nil
		}},
		{Name: "quit", MaxArgs: 0, Run: func(m Multiplexer, a []string) error {
			m.Quit()
			return nil
		}},
		{Name: "inputmode", MaxArgs: 1, Run: func(m Multiplexer, a []string) error {
			m.SetInputMode(arg(a, 0))
			return nil
		}},
		{Name: "titleid", MinArgs: 2, MaxArgs: 2, Run: func(m Multiplexer, a []string) error {
			id, err := parseUint(a[0])
			if err != nil {
				return err
			}
			m.SetTitleByID(id, a[1])
			return nil
		}},
		{Name: "status", MaxArgs: 0, Run: func(m Multiplexer, a []string) error {
			m.ReportStatus()
			return nil
		}},
		{Name: "escapekey", MaxArgs: 0, Run: func(m Multiplexer, a []string) error {
			m.EscapeKey()
			return nil
		}},
	}

	table := make(map[string]*Command, len(cmds))
	for _, c := range cmds {
		table[c.Name] = c
	}
	return table
}

// Dispatch looks up name and runs it with args, silently doing nothing
// for an unknown command name, matching the FIFO grammar's
// unrecognized-command handling.
func Dispatch(m Multiplexer, name string, args []string) error {
	cmd, ok := Table[name]
	if !ok {
		return nil
	}
	if len(args) > cmd.MaxArgs {
		args = args[:cmd.MaxArgs]
	}
	if len(args) < cmd.MinArgs {
		return nil
	}
	return cmd.Run(m, args)
}

func arg(a []string, i int) string {
	if i < len(a) {
		return a[i]
	}
	return ""
}
