package sim

import "github.com/san-kum/blockpi/internal/physics"

// Step advances the scene by one tick and returns the collision count.
//
// Order is fixed: integrate both blocks, test A against B, then test A
// against the wall. Both tests may fire in the same tick. Neither is
// re-evaluated after its single positional correction, so a large speed can
// carry a block through a boundary within one tick.
func (s *State) Step(speed float64) int {
	s.Speed = speed
	s.last = Events{}

	s.A.Integrate(speed)
	s.B.Integrate(speed)

	if s.A.Position <= s.B.Right() {
		vA, vB, err := physics.ResolveBodyBody(s.A.Velocity, s.A.Mass, s.B.Velocity, s.B.Mass)
		if err != nil {
			// Masses are validated on every write; reaching this is a bug.
			panic(err)
		}
		s.A.Velocity = vA
		s.B.Velocity = vB
		s.Collisions++
		s.A.Position = s.B.Right()
		s.last.BodyBody = true
	}

	if s.Wall.Touches(s.A) {
		physics.ResolveBodyWall(s.Wall, s.A)
		s.Collisions++
		s.last.BodyWall = true
	}

	s.Ticks++
	return s.Collisions
}
