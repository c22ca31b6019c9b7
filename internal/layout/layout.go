// Package layout arranges clients into non-overlapping rectangles
// within a workspace. It mirrors the original program's
// `static Layout layouts[]` array (original_source/config.def.h): a
// small ordered table of named arrange functions with a cursor that
// setlayout/the layout-cycle command can move.
package layout

import "dvtm/internal/registry"

// Workspace is the area available for tiling: the outer screen minus
// the status bar and any reserved border rows.
type Workspace struct {
	X, Y, W, H int
}

// Layout names one arrangement algorithm and its display symbol, the
// short glyph shown in the status bar (e.g. "[]=", "+++", "TTT", "[ ]").
type Layout struct {
	Symbol  string
	Arrange func(ws Workspace, clients []*registry.Client, mfact float64)
}

// Registry holds the fixed, ordered set of layouts and a cursor over
// them, exactly mirroring the original's array-plus-index pattern.
type Registry struct {
	layouts []Layout
	cur     int
}

// NewRegistry builds the standard tile/grid/bstack/fullscreen registry
// in the canonical order from config.def.h's layouts[] array.
func NewRegistry() *Registry {
	return &Registry{
		layouts: []Layout{
			{Symbol: "[]=", Arrange: Tile},
			{Symbol: "+++", Arrange: Grid},
			{Symbol: "TTT", Arrange: BStack},
			{Symbol: "[ ]", Arrange: Fullscreen},
		},
	}
}

// Current returns the active layout.
func (r *Registry) Current() Layout {
	return r.layouts[r.cur]
}

// Cycle advances to the next layout and returns it.
func (r *Registry) Cycle() Layout {
	r.cur = (r.cur + 1) % len(r.layouts)
	return r.layouts[r.cur]
}

// SetByName makes the layout with the given symbol current. It
// also accepts the lowercase English names (tile, bstack, grid,
// fullscreen) as a convenience for the command-FIFO grammar.
func (r *Registry) SetByName(name string) bool {
	for i, l := range r.layouts {
		if l.Symbol == name || matchesAlias(l.Symbol, name) {
			r.cur = i
			return true
		}
	}
	return false
}

func matchesAlias(symbol, name string) bool {
	switch symbol {
	case "[]=":
		return name == "tile"
	case "TTT":
		return name == "bstack"
	case "+++":
		return name == "grid"
	case "[ ]":
		return name == "fullscreen"
	}
	return false
}

// splitMinimized peels the minimized clients off into one row each at
// the bottom of ws, in list order, and returns the shrunk workspace
// remaining for the non-minimized clients plus that visible subset.
// Every layout routes through this so "minimized clients get a row at
// the bottom, compressing the tiled region upward" holds uniformly.
func splitMinimized(ws Workspace, clients []*registry.Client) (Workspace, []*registry.Client) {
	var minimized, visible []*registry.Client
	for _, c := range clients {
		if c.Minimized {
			minimized = append(minimized, c)
		} else {
			visible = append(visible, c)
		}
	}
	if len(minimized) == 0 {
		return ws, visible
	}
	rows := len(minimized)
	if rows > ws.H {
		rows = ws.H
	}
	remaining := Workspace{X: ws.X, Y: ws.Y, W: ws.W, H: ws.H - rows}
	y := ws.Y + remaining.H
	for _, c := range minimized {
		c.Rect = registry.Rect{X: ws.X, Y: y, W: ws.W, H: 1}.Clamped()
		y++
	}
	return remaining, visible
}

// clampMfact clamps mfact to the [0.1, 0.9] range the master-factor
// commands are required to enforce.
func clampMfact(mfact float64) float64 {
	if mfact < 0.1 {
		return 0.1
	}
	if mfact > 0.9 {
		return 0.9
	}
	return mfact
}
