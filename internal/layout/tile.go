package layout

import "dvtm/internal/registry"

// Tile gives the master client the left max(1, floor(w*mfact)) columns
// and stacks the rest in the remaining right column, splitting height as
// evenly as possible with any remainder absorbed by the bottom tile.
func Tile(ws Workspace, clients []*registry.Client, mfact float64) {
	ws, visible := splitMinimized(ws, clients)
	n := len(visible)
	if n == 0 {
		return
	}
	if n == 1 {
		visible[0].Rect = registry.Rect{X: ws.X, Y: ws.Y, W: ws.W, H: ws.H}.Clamped()
		return
	}

	mfact = clampMfact(mfact)
	masterW := int(float64(ws.W) * mfact)
	if masterW < 1 {
		masterW = 1
	}
	visible[0].Rect = registry.Rect{X: ws.X, Y: ws.Y, W: masterW, H: ws.H}.Clamped()

	stackX := ws.X + masterW
	stackW := ws.W - masterW
	stack := visible[1:]
	stackN := len(stack)
	base := ws.H / stackN
	rem := ws.H % stackN
	y := ws.Y
	for i, c := range stack {
		h := base
		if i == stackN-1 {
			h += rem
		}
		c.Rect = registry.Rect{X: stackX, Y: y, W: stackW, H: h}.Clamped()
		y += h
	}
}
