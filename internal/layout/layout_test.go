package layout

import (
	"testing"

	"dvtm/internal/registry"
)

func makeClients(n int) []*registry.Client {
	cs := make([]*registry.Client, n)
	for i := range cs {
		cs[i] = &registry.Client{ID: uint64(i + 1), Order: i + 1}
	}
	return cs
}

func area(r registry.Rect) int { return r.W * r.H }

func TestTileCoversWorkspace(t *testing.T) {
	tests := []struct {
		name string
		n    int
		ws   Workspace
	}{
		{"two clients", 2, Workspace{W: 80, H: 24}},
		{"five clients", 5, Workspace{W: 100, H: 30}},
		{"odd remainder", 3, Workspace{W: 81, H: 23}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := makeClients(tt.n)
			Tile(tt.ws, cs, 0.5)
			total := 0
			for _, c := range cs {
				total += area(c.Rect)
			}
			if total != tt.ws.W*tt.ws.H {
				t.Errorf("covered area = %d, want %d", total, tt.ws.W*tt.ws.H)
			}
		})
	}
}

func TestTileSingleClientFillsWorkspace(t *testing.T) {
	cs := makeClients(1)
	ws := Workspace{W: 80, H: 24}
	Tile(ws, cs, 0.5)
	if cs[0].Rect != (registry.Rect{X: 0, Y: 0, W: 80, H: 24}) {
		t.Errorf("rect = %+v, want full workspace", cs[0].Rect)
	}
}

func TestTileNoClientsNoOp(t *testing.T) {
	var cs []*registry.Client
	Tile(Workspace{W: 80, H: 24}, cs, 0.5) // must not panic
}

func TestTileMinimizedCompressesTiledRegion(t *testing.T) {
	cs := makeClients(3)
	cs[2].Minimized = true
	ws := Workspace{W: 80, H: 24}
	Tile(ws, cs, 0.5)

	if cs[2].Rect.H != 1 {
		t.Fatalf("minimized client height = %d, want 1", cs[2].Rect.H)
	}
	if cs[2].Rect.Y != 23 {
		t.Fatalf("minimized client sits at y=%d, want bottom row", cs[2].Rect.Y)
	}
	visibleTotal := area(cs[0].Rect) + area(cs[1].Rect)
	if visibleTotal != 80*23 {
		t.Errorf("tiled area = %d, want %d (workspace minus minimized row)", visibleTotal, 80*23)
	}
}

func TestBStackMasterOnTop(t *testing.T) {
	cs := makeClients(3)
	ws := Workspace{W: 80, H: 20}
	BStack(ws, cs, 0.5)
	if cs[0].Rect.Y != 0 || cs[0].Rect.W != 80 {
		t.Errorf("master rect = %+v, want full-width top row", cs[0].Rect)
	}
	for _, c := range cs[1:] {
		if c.Rect.Y != cs[0].Rect.H {
			t.Errorf("stack client %d at y=%d, want %d", c.ID, c.Rect.Y, cs[0].Rect.H)
		}
	}
}

func TestGridShapeAndCoverage(t *testing.T) {
	for n := 1; n <= 9; n++ {
		cs := makeClients(n)
		ws := Workspace{W: 90, H: 30}
		Grid(ws, cs, 0.5)
		total := 0
		for _, c := range cs {
			if c.Rect.Empty() {
				t.Errorf("n=%d: client %d has empty rect", n, c.ID)
			}
			total += area(c.Rect)
		}
		if total != ws.W*ws.H {
			t.Errorf("n=%d: grid area = %d, want %d", n, total, ws.W*ws.H)
		}
	}
}

func TestFullscreenAllSameRect(t *testing.T) {
	cs := makeClients(3)
	ws := Workspace{W: 80, H: 24}
	Fullscreen(ws, cs, 0.5)
	for _, c := range cs {
		if c.Rect != (registry.Rect{X: 0, Y: 0, W: 80, H: 24}) {
			t.Errorf("client %d rect = %+v, want full workspace", c.ID, c.Rect)
		}
	}
}

func TestClampMfact(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0.1},
		{0, 0.1},
		{0.1, 0.1},
		{0.5, 0.5},
		{0.9, 0.9},
		{2, 0.9},
	}
	for _, tt := range tests {
		if got := clampMfact(tt.in); got != tt.want {
			t.Errorf("clampMfact(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRegistryCycleAndSetByName(t *testing.T) {
	r := NewRegistry()
	start := r.Current().Symbol
	if start != "[]=" {
		t.Fatalf("default layout = %q, want tile", start)
	}
	seen := map[string]bool{start: true}
	for i := 0; i < 3; i++ {
		seen[r.Cycle().Symbol] = true
	}
	if len(seen) != 4 {
		t.Errorf("cycling 3 times from tile should visit all 4 layouts, saw %d", len(seen))
	}
	if back := r.Cycle(); back.Symbol != start {
		t.Errorf("cycling a full period should return to %q, got %q", start, back.Symbol)
	}
	if !r.SetByName("grid") {
		t.Fatal("SetByName(grid) failed")
	}
	if r.Current().Symbol != "+++" {
		t.Errorf("after SetByName(grid), current = %q", r.Current().Symbol)
	}
	if r.SetByName("nonsense") {
		t.Error("SetByName(nonsense) should fail")
	}
}
