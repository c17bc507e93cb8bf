package metrics

import (
	"math"

	"github.com/san-kum/blockpi/internal/sim"
)

// PeakSpeed is the largest speed block A reaches. Large values mean a
// single tick can carry A through B or the wall.
type PeakSpeed struct {
	name string
	peak float64
}

func NewPeakSpeed() *PeakSpeed {
	return &PeakSpeed{name: "peak_speed_a"}
}

func (p *PeakSpeed) Name() string {
	return p.name
}

func (p *PeakSpeed) Observe(s sim.Snapshot) {
	p.peak = math.Max(p.peak, math.Abs(s.A.Velocity))
}

func (p *PeakSpeed) Value() float64 {
	return p.peak
}

func (p *PeakSpeed) Reset() {
	p.peak = 0
}
