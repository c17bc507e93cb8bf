package sim

import "sync"

// Guarded serializes access to a State shared between a physics goroutine and
// a renderer. Each call holds the lock for exactly one operation, so a reader
// never observes a half-finished tick.
type Guarded struct {
	mu sync.Mutex
	s  *State
}

func NewGuarded(s *State) *Guarded {
	return &Guarded{s: s}
}

func (g *Guarded) Step(speed float64) int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.Step(speed)
}

func (g *Guarded) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.Snapshot()
}

func (g *Guarded) Restart(massA, massB float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.s.Restart(massA, massB)
}

// SetMasses applies both masses. A rejected mass A leaves B unchanged.
func (g *Guarded) SetMasses(massA, massB float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.s.SetMassA(massA); err != nil {
		return err
	}
	return g.s.SetMassB(massB)
}

// Do runs fn with exclusive access to the state.
func (g *Guarded) Do(fn func(s *State) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.s)
}
