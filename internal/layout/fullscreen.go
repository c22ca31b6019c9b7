package layout

import "dvtm/internal/registry"

// Fullscreen sizes every non-minimized client to the full workspace;
// the renderer is responsible for only actually drawing the selected
// one, since they all occupy the same cells.
func Fullscreen(ws Workspace, clients []*registry.Client, mfact float64) {
	ws, visible := splitMinimized(ws, clients)
	for _, c := range visible {
		c.Rect = registry.Rect{X: ws.X, Y: ws.Y, W: ws.W, H: ws.H}.Clamped()
	}
}
