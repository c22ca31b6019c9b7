package layout

import (
	"math"

	"dvtm/internal/registry"
)

// Grid arranges the non-minimized clients into the most-square r x c
// grid with r*c >= n, filled row-major. A short last row gets its
// extra width distributed across its leftmost cells.
func Grid(ws Workspace, clients []*registry.Client, mfact float64) {
	ws, visible := splitMinimized(ws, clients)
	n := len(visible)
	if n == 0 {
		return
	}
	if n == 1 {
		visible[0].Rect = registry.Rect{X: ws.X, Y: ws.Y, W: ws.W, H: ws.H}.Clamped()
		return
	}

	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols < 1 {
		cols = 1
	}
	rows := int(math.Ceil(float64(n) / float64(cols)))

	rowBaseH := ws.H / rows
	rowRem := ws.H % rows

	i := 0
	y := ws.Y
	for row := 0; row < rows && i < n; row++ {
		remaining := n - i
		inRow := cols
		if remaining < cols {
			inRow = remaining
		}
		h := rowBaseH
		if row == rows-1 {
			h += rowRem
		}

		colBaseW := ws.W / inRow
		colRem := ws.W % inRow
		x := ws.X
		for col := 0; col < inRow; col++ {
			w := colBaseW
			if col < colRem {
				w++
			}
			visible[i].Rect = registry.Rect{X: x, Y: y, W: w, H: h}.Clamped()
			x += w
			i++
		}
		y += h
	}
}
