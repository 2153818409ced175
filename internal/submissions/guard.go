package submissions

import (
	"errors"
	"sync"
)

// ErrInFlight is returned when a key already holds a running submission.
var ErrInFlight = errors.New("submission already in flight")

// Guard allows at most one in-flight submission per key.
type Guard struct {
	mu     sync.Mutex
	active map[string]struct{}
}

// NewGuard constructs an empty Guard.
func NewGuard() *Guard {
	return &Guard{active: make(map[string]struct{})}
}

// Acquire claims key. The returned release must be called exactly once.
func (g *Guard) Acquire(key string) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.active[key]; busy {
		return nil, ErrInFlight
	}
	g.active[key] = struct{}{}
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.active, key)
			g.mu.Unlock()
		})
	}, nil
}

// Busy reports whether key holds a running submission.
func (g *Guard) Busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	_, busy := g.active[key]
	return busy
}
