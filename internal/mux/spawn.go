package mux

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"

	"dvtm/internal/registry"
	"dvtm/internal/vt"
)

// shell is the shell every client is execed through, matching
// original_source/dvtm.c's create(), which always forks
// {"/bin/sh", "-c", cmd} rather than parsing cmd itself: pipes,
// redirects, globs, quoting, and $VAR expansion all need a real shell,
// not an argv splitter.
const shell = "/bin/sh"

// spawn starts cmdline as a new client attached after the currently
// selected one, matching the original's "new windows open next to the
// focused one" placement, then re-arranges and focuses it.
func (m *Multiplexer) spawn(cmdline, title, cwd string) error {
	if strings.TrimSpace(cmdline) == "" {
		return nil
	}
	ws := m.Screen.Workspace()
	rows, cols := ws.H, ws.W
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	id := m.Registry.NextID()
	extraEnv := map[string]string{
		"DVTM_WINDOW_ID": strconv.FormatUint(id, 10),
	}

	v, err := vt.Start(shell, []string{"-c", cmdline}, cwd, rows, cols, m.vtHistoryLines(), extraEnv)
	if err != nil {
		return err
	}
	v.OscFg, v.OscBg = m.oscFg, m.oscBg

	c := &registry.Client{
		ID:        id,
		PID:       v.Cmd.Process.Pid,
		VT:        v,
		Cmd:       cmdline,
		Title:     title,
		CreatedAt: time.Now(),
	}
	if c.Title == "" {
		c.Title = defaultTitle(cmdline)
	}
	m.Registry.AttachAfter(c, m.Registry.Sel())
	m.Registry.SetSel(c)
	m.Arrange()
	return nil
}

// defaultTitle derives a window title from cmdline's leading word the
// way the original names windows after argv[0], using shlex (the
// argv-splitting library ekain-fr-h2/internal/bridge/exec.go already
// reaches for) so quoted leading words ("'my script' arg" -> "my
// script") aren't mangled. spawn itself never uses this split for
// execution: cmdline still goes through the shell whole.
func defaultTitle(cmdline string) string {
	words, err := shlex.Split(cmdline)
	if err != nil || len(words) == 0 {
		return cmdline
	}
	return words[0]
}

// maybeRespawn re-creates the last client's command when it dies,
// unless that command was the configured login shell, in which case it
// quits: a shell exiting is the user asking to leave, while a one-off
// program (editor, pager,
// build command) dying is treated as "run it again" so a typo doesn't
// end the session.
func (m *Multiplexer) maybeRespawn(cmd string) {
	if cmd == "" || m.quitting {
		return
	}
	if strings.TrimSpace(cmd) == strings.TrimSpace(m.cfg.Shell) {
		m.Quit()
		return
	}
	m.spawn(cmd, "", "")
}
