package sim

// Sample is one recorded tick.
type Sample struct {
	Tick       int     `json:"tick"`
	PositionA  float64 `json:"position_a"`
	PositionB  float64 `json:"position_b"`
	VelocityA  float64 `json:"velocity_a"`
	VelocityB  float64 `json:"velocity_b"`
	Collisions int     `json:"collisions"`
}

// Trace is an Observer keeping samples in memory for plotting and export.
// It records every Stride-th tick plus every tick on which a collision fired,
// capped at Limit samples (0 means unlimited).
type Trace struct {
	Stride  int
	Limit   int
	Samples []Sample
}

func NewTrace(stride, limit int) *Trace {
	if stride < 1 {
		stride = 1
	}
	return &Trace{Stride: stride, Limit: limit}
}

func (t *Trace) OnTick(s Snapshot) {
	if t.Limit > 0 && len(t.Samples) >= t.Limit {
		return
	}
	if s.Ticks%t.Stride != 0 && s.Events.Count() == 0 {
		return
	}
	t.Samples = append(t.Samples, Sample{
		Tick:       s.Ticks,
		PositionA:  s.A.Position,
		PositionB:  s.B.Position,
		VelocityA:  s.A.Velocity,
		VelocityB:  s.B.Velocity,
		Collisions: s.Collisions,
	})
}

// Velocities splits the recorded velocities into two series.
func (t *Trace) Velocities() (a, b []float64) {
	a = make([]float64, len(t.Samples))
	b = make([]float64, len(t.Samples))
	for i, s := range t.Samples {
		a[i] = s.VelocityA
		b[i] = s.VelocityB
	}
	return a, b
}
