package workflow

import (
	"fmt"
	"sync"
)

// InFlight tracks outstanding requests per item so a second click on
// the same row is suppressed without disabling the whole view.
type InFlight struct {
	mu   sync.Mutex
	keys map[string]bool
}

func NewInFlight() *InFlight {
	return &InFlight{keys: make(map[string]bool)}
}

// Begin marks the key as in flight. Returns false when a request for
// the same key is already outstanding.
func (g *InFlight) Begin(kind string, id uint) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	key := fmt.Sprintf("%s:%d", kind, id)
	if g.keys[key] {
		return false
	}
	g.keys[key] = true
	return true
}

// End releases the key. Safe to call from a deferred cleanup on every
// error path.
func (g *InFlight) End(kind string, id uint) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.keys, fmt.Sprintf("%s:%d", kind, id))
}

func (g *InFlight) Active(kind string, id uint) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.keys[fmt.Sprintf("%s:%d", kind, id)]
}
