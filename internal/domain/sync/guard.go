package sync

import (
	gosync "sync"
)

// InFlightGuard admits at most one running sync per key within this process
type InFlightGuard struct {
	mu       gosync.Mutex
	inFlight map[string]struct{}
}

func NewInFlightGuard() *InFlightGuard {
	return &InFlightGuard{inFlight: make(map[string]struct{})}
}

// TryAcquire marks key as busy. It returns a release func and true on success,
// or false when key is already held.
func (g *InFlightGuard) TryAcquire(key string) (release func(), ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.inFlight[key]; busy {
		return nil, false
	}
	g.inFlight[key] = struct{}{}

	var once gosync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.inFlight, key)
			g.mu.Unlock()
		})
	}, true
}

// Len returns the number of keys currently held
func (g *InFlightGuard) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.inFlight)
}
