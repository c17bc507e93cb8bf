package control

// MassSource supplies the masses of blocks A and B.
type MassSource interface {
	Masses() (a, b float64)
}

// SpeedSource supplies the speed multiplier for the next tick.
type SpeedSource interface {
	Speed() float64
}

// RestartTrigger restarts a scene with the masses currently offered by ms.
type RestartTrigger interface {
	Restart(ms MassSource) error
}

// Fixed is a constant mass and speed source.
type Fixed struct {
	A, B  float64
	Value float64
}

func (f Fixed) Masses() (float64, float64) { return f.A, f.B }
func (f Fixed) Speed() float64             { return f.Value }
