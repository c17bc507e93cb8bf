package sim

import (
	"encoding/binary"
	"math"

	"github.com/san-kum/blockpi/internal/config"
	"github.com/san-kum/blockpi/internal/physics"
	"github.com/zeebo/xxh3"
)

// State owns both blocks, the wall, the speed multiplier and the running
// collision count. Block A is the one next to the wall; B is to its left.
//
// State is not safe for concurrent use; wrap it in a Guarded when a renderer
// reads it from another goroutine.
type State struct {
	A, B       *physics.Body
	Wall       physics.Wall
	Speed      float64
	Collisions int
	Ticks      int

	last   Events
	layout config.Config
}

// New validates cfg and builds the scene it describes. The velocities and
// positions in cfg are also the defaults Restart returns to.
func New(cfg *config.Config) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a, err := physics.NewBody(cfg.MassA, cfg.VelocityA, cfg.PositionA, cfg.WidthA)
	if err != nil {
		return nil, err
	}
	b, err := physics.NewBody(cfg.MassB, cfg.VelocityB, cfg.PositionB, cfg.WidthB)
	if err != nil {
		return nil, err
	}
	return &State{
		A:      a,
		B:      b,
		Wall:   physics.Wall{Position: cfg.Wall},
		Speed:  cfg.Speed,
		layout: *cfg,
	}, nil
}

// Restart puts both blocks back at their starting velocities and positions
// with the given masses and clears the collision count. The speed multiplier
// is kept. Invalid masses leave the state untouched.
func (s *State) Restart(massA, massB float64) error {
	a, err := physics.NewBody(massA, s.layout.VelocityA, s.layout.PositionA, s.layout.WidthA)
	if err != nil {
		return err
	}
	b, err := physics.NewBody(massB, s.layout.VelocityB, s.layout.PositionB, s.layout.WidthB)
	if err != nil {
		return err
	}
	*s.A = *a
	*s.B = *b
	s.Collisions = 0
	s.Ticks = 0
	s.last = Events{}
	return nil
}

func (s *State) SetMassA(m float64) error { return s.A.SetMass(m) }
func (s *State) SetMassB(m float64) error { return s.B.SetMass(m) }

// LastEvents reports which collisions the most recent Step detected.
func (s *State) LastEvents() Events { return s.last }

// Settled reports whether no further collision can happen.
func (s *State) Settled() bool { return s.Snapshot().Settled() }

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		A:          *s.A,
		B:          *s.B,
		Wall:       s.Wall.Position,
		Speed:      s.Speed,
		Collisions: s.Collisions,
		Ticks:      s.Ticks,
		Events:     s.last,
	}
}

// Fingerprint hashes the exact bit patterns of every simulated quantity.
// Equal fingerprints mean bit-identical scenes.
func (s *State) Fingerprint() uint64 {
	buf := make([]byte, 0, 12*8)
	for _, v := range []float64{
		s.A.Mass, s.A.Velocity, s.A.Position, s.A.Width,
		s.B.Mass, s.B.Velocity, s.B.Position, s.B.Width,
		s.Wall.Position, s.Speed,
	} {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.Collisions))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(s.Ticks))
	return xxh3.Hash(buf)
}
