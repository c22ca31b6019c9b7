package layout

import "dvtm/internal/registry"

// BStack gives the master client the top floor(h*mfact) rows, full
// width, and splits the rest horizontally in a row below it.
func BStack(ws Workspace, clients []*registry.Client, mfact float64) {
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
	masterH := int(float64(ws.H) * mfact)
	if masterH < 1 {
		masterH = 1
	}
	visible[0].Rect = registry.Rect{X: ws.X, Y: ws.Y, W: ws.W, H: masterH}.Clamped()

	stackY := ws.Y + masterH
	stackH := ws.H - masterH
	stack := visible[1:]
	stackN := len(stack)
	base := ws.W / stackN
	rem := ws.W % stackN
	x := ws.X
	for i, c := range stack {
		w := base
		if i == stackN-1 {
			w += rem
		}
		c.Rect = registry.Rect{X: x, Y: stackY, W: w, H: stackH}.Clamped()
		x += w
	}
}
