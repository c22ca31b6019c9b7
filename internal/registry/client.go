// Package registry holds the Client data model and the ordered client
// list: attach/attachafter/detach, id allocation, and the by-pid/by-id/
// by-coordinate lookups the rest of the core uses to resolve a Client.
package registry

import (
	"sync"
	"sync/atomic"
	"time"

	"dvtm/internal/vt"
)

// MaxTitle is the maximum number of UTF-8 bytes kept in Client.Title,
// matching the original program's 254-byte title buffer (plus the
// always-present trailing NUL it reserves).
const MaxTitle = 254

// Rect is a rectangular region in screen cells.
type Rect struct {
	X, Y, W, H int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Clamped returns r with W and H floored to 1, matching the layout
// degrade-gracefully rule: a computed tile narrower or shorter than one
// cell is clamped and left to the backend to truncate visually.
func (r Rect) Clamped() Rect {
	if r.W < 1 {
		r.W = 1
	}
	if r.H < 1 {
		r.H = 1
	}
	return r
}

// Client is a running child process presented as one tiled window.
type Client struct {
	ID    uint64 // monotonic, unique for the process lifetime, never reused
	Order int    // 1-based position in the visible sequence

	PID int
	VT  *vt.VT // nil until the child has been spawned

	Cmd   string // shell command string that created this client
	Title string // display title; TruncatedTitle clamps it to MaxTitle bytes

	Rect Rect

	Minimized bool
	Died      bool

	// CopyMode and ScrollOffset implement the terminal engine's
	// scrollback/copy mode: while CopyMode is set, keys navigate
	// ScrollOffset (lines back from the bottom) instead of reaching
	// the child.
	CopyMode     bool
	ScrollOffset int
	SearchSeed   string // optional "/" or "?" direction passed to copymode

	// CreatedAt records when the client was spawned.
	CreatedAt time.Time
}

// TruncatedTitle returns Title clamped to MaxTitle bytes without splitting
// a UTF-8 rune, mirroring the C original's fixed 254-byte + NUL buffer.
func (c *Client) TruncatedTitle() string {
	if len(c.Title) <= MaxTitle {
		return c.Title
	}
	b := []byte(c.Title)[:MaxTitle]
	for len(b) > 0 && b[len(b)-1]&0xC0 == 0x80 {
		b = b[:len(b)-1]
	}
	return string(b)
}

// Registry is the ordered, doubly-traversable collection of Clients. It
// is backed by a slice rather than raw next/prev pointers (per the
// design notes: indices instead of aliasable pointers), with Order as
// the sole user-visible sequence.
type Registry struct {
	mu      sync.Mutex
	clients []*Client
	sel     *Client
	nextID  atomic.Uint64
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{}
}

// NextID allocates a new strictly increasing, process-wide unique id.
func (r *Registry) NextID() uint64 {
	return r.nextID.Add(1)
}

// Attach prepends c to the list and recomputes Order for the whole list.
func (r *Registry) Attach(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clients = append([]*Client{c}, r.clients...)
	r.renumber(0)
	if r.sel == nil {
		r.sel = c
	}
}

// AttachAfter inserts c immediately after a, or at the tail if a is nil.
func (r *Registry) AttachAfter(c *Client, a *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := len(r.clients)
	if a != nil {
		for i, cl := range r.clients {
			if cl == a {
				idx = i + 1
				break
			}
		}
	}
	r.clients = append(r.clients, nil)
	copy(r.clients[idx+1:], r.clients[idx:])
	r.clients[idx] = c
	r.renumber(idx)
	if r.sel == nil {
		r.sel = c
	}
}

// Detach removes c from the list and decrements the Order of every
// former successor.
func (r *Registry) Detach(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, cl := range r.clients {
		if cl == c {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			r.renumber(i)
			break
		}
	}
	if r.sel == c {
		r.sel = nil
		if len(r.clients) > 0 {
			if i := c.Order - 1; i >= 0 && i < len(r.clients) {
				r.sel = r.clients[i]
			} else {
				r.sel = r.clients[len(r.clients)-1]
			}
		}
	}
}

// renumber assigns Order = 1, 2, 3, ... starting at index from.
// Caller must hold mu.
func (r *Registry) renumber(from int) {
	if from < 0 {
		from = 0
	}
	for i := from; i < len(r.clients); i++ {
		r.clients[i].Order = i + 1
	}
}

// Len returns the number of attached clients.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Clients returns a snapshot slice in list order.
func (r *Registry) Clients() []*Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Client, len(r.clients))
	copy(out, r.clients)
	return out
}

// ByPID does a linear search for the client running the given pid.
func (r *Registry) ByPID(pid int) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.PID == pid {
			return c
		}
	}
	return nil
}

// ByID does a linear search for the client with the given id.
func (r *Registry) ByID(id uint64) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// ByOrder returns the client at 1-based position n, or nil.
func (r *Registry) ByOrder(n int) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.Order == n {
			return c
		}
	}
	return nil
}

// ByCoord returns the client whose Rect contains the given screen cell.
func (r *Registry) ByCoord(x, y int) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		rect := c.Rect
		if x >= rect.X && x < rect.X+rect.W && y >= rect.Y && y < rect.Y+rect.H {
			return c
		}
	}
	return nil
}

// Sel returns the currently selected client, or nil.
func (r *Registry) Sel() *Client {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sel
}

// SetSel selects c. c must already be a member of the list, or nil.
func (r *Registry) SetSel(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sel = c
}

// FocusNext selects the client following sel in list order, wrapping.
func (r *Registry) FocusNext() { r.focusStep(1, false) }

// FocusPrev selects the client preceding sel in list order, wrapping.
func (r *Registry) FocusPrev() { r.focusStep(-1, false) }

// FocusNextNM is like FocusNext but skips minimized clients.
func (r *Registry) FocusNextNM() { r.focusStep(1, true) }

// FocusPrevNM is like FocusPrev but skips minimized clients.
func (r *Registry) FocusPrevNM() { r.focusStep(-1, true) }

func (r *Registry) focusStep(dir int, skipMinimized bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := len(r.clients)
	if n == 0 || r.sel == nil {
		return
	}
	start := r.sel.Order - 1
	i := start
	for range r.clients {
		i = ((i+dir)%n + n) % n
		cand := r.clients[i]
		if !skipMinimized || !cand.Minimized {
			r.sel = cand
			return
		}
		if i == start {
			break
		}
	}
}

// FocusN selects the client at 1-based order n, if any.
func (r *Registry) FocusN(n int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.Order == n {
			r.sel = c
			return true
		}
	}
	return false
}

// FocusID selects the client with the given persistent id, if any.
func (r *Registry) FocusID(id uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c.ID == id {
			r.sel = c
			return true
		}
	}
	return false
}

// ZoomToMaster moves c to the head of the list (Order 1), swapping it
// with whatever currently occupies the master slot.
func (r *Registry) ZoomToMaster(c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i, cl := range r.clients {
		if cl == c {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return
	}
	r.clients = append(r.clients[:idx], r.clients[idx+1:]...)
	r.clients = append([]*Client{c}, r.clients...)
	r.renumber(0)
}

// VisibleCount returns the number of non-minimized clients.
func (r *Registry) VisibleCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, c := range r.clients {
		if !c.Minimized {
			n++
		}
	}
	return n
}
