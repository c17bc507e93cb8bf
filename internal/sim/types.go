package sim

import "github.com/san-kum/blockpi/internal/physics"

// Events records which collision tests fired during a single tick.
type Events struct {
	BodyBody bool
	BodyWall bool
}

// Count returns how many collisions the tick added (0, 1 or 2).
func (e Events) Count() int {
	n := 0
	if e.BodyBody {
		n++
	}
	if e.BodyWall {
		n++
	}
	return n
}

// Snapshot is a read-only copy of the scene handed to renderers and observers.
type Snapshot struct {
	A, B       physics.Body
	Wall       float64
	Speed      float64
	Collisions int
	Ticks      int
	Events     Events
}

// Momentum is the total momentum of both blocks. The wall is excluded, so
// this changes at every wall bounce.
func (s Snapshot) Momentum() float64 {
	return s.A.Momentum() + s.B.Momentum()
}

// Energy is the total kinetic energy of both blocks.
func (s Snapshot) Energy() float64 {
	return s.A.KineticEnergy() + s.B.KineticEnergy()
}

// Settled reports whether no further collision can happen: both blocks move
// left (or rest), B at least as fast as A, with clear gaps on both sides of A.
func (s Snapshot) Settled() bool {
	a, b := s.A, s.B
	return a.Velocity <= 0 &&
		b.Velocity <= a.Velocity &&
		a.Position > b.Right() &&
		a.Right() < s.Wall
}

type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}

type Observer interface {
	OnTick(s Snapshot)
}

type Result struct {
	Collisions  int
	Ticks       int
	Settled     bool
	Final       Snapshot
	Fingerprint uint64
	Metrics     map[string]float64
}
