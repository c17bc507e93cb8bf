package physics

// Body is a square block sliding on a frictionless floor.
// Position is the left edge; Velocity is in units per tick before the
// speed multiplier is applied.
type Body struct {
	Mass     float64
	Velocity float64
	Position float64
	Width    float64
}

// NewBody validates mass and width and returns the body.
func NewBody(mass, velocity, position, width float64) (*Body, error) {
	if err := requirePositive("mass", mass); err != nil {
		return nil, err
	}
	if err := requirePositive("width", width); err != nil {
		return nil, err
	}
	return &Body{
		Mass:     mass,
		Velocity: velocity,
		Position: position,
		Width:    width,
	}, nil
}

// Integrate advances the body by velocity*speed. No bounds are enforced here.
func (b *Body) Integrate(speed float64) {
	b.Position += float64(b.Velocity * speed)
}

// SetMass replaces the mass. The body is left unchanged on error.
func (b *Body) SetMass(m float64) error {
	if err := requirePositive("mass", m); err != nil {
		return err
	}
	b.Mass = m
	return nil
}

// Right returns the coordinate of the trailing (right) edge.
func (b *Body) Right() float64 { return b.Position + b.Width }

func (b *Body) Momentum() float64 { return b.Mass * b.Velocity }

func (b *Body) KineticEnergy() float64 {
	return 0.5 * b.Mass * b.Velocity * b.Velocity
}
