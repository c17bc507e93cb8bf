package analysis

import (
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/blockpi/internal/sim"
)

// PhasePortrait is a run in energy-normalised velocity space:
// X = sqrt(mA)*vA, Y = sqrt(mB)*vB. Energy conservation keeps every point on
// a circle of radius sqrt(2E).
type PhasePortrait struct {
	MassA, MassB float64
	Points       []mgl64.Vec2
}

func NewPhasePortrait(massA, massB float64, samples []sim.Sample) *PhasePortrait {
	p := &PhasePortrait{
		MassA:  massA,
		MassB:  massB,
		Points: make([]mgl64.Vec2, 0, len(samples)),
	}
	for _, s := range samples {
		p.Points = append(p.Points, PhasePoint(massA, massB, s.VelocityA, s.VelocityB))
	}
	return p
}

func PhasePoint(massA, massB, vA, vB float64) mgl64.Vec2 {
	return mgl64.Vec2{math.Sqrt(massA) * vA, math.Sqrt(massB) * vB}
}

// Radius returns the circle radius implied by the first point.
func (p *PhasePortrait) Radius() float64 {
	if len(p.Points) == 0 {
		return 0
	}
	return p.Points[0].Len()
}

// MaxRadiusError is the largest relative departure of any point from Radius.
func (p *PhasePortrait) MaxRadiusError() float64 {
	r := p.Radius()
	if r == 0 {
		return 0
	}
	worst := 0.0
	for _, pt := range p.Points {
		worst = math.Max(worst, math.Abs(pt.Len()-r)/r)
	}
	return worst
}

// Angle returns the unsigned angle between two phase points.
func Angle(a, b mgl64.Vec2) float64 {
	la, lb := a.Len(), b.Len()
	if la == 0 || lb == 0 {
		return 0
	}
	cos := mgl64.Clamp(a.Dot(b)/(la*lb), -1, 1)
	return math.Acos(cos)
}

// ToASCII plots the portrait on a width x height character grid.
func (p *PhasePortrait) ToASCII(width, height int) string {
	if len(p.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	// Square bounds around the circle keep it round on screen.
	r := p.Radius() * 1.1
	if r == 0 {
		r = 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	mid := height / 2
	for col := 0; col < width; col++ {
		canvas[mid][col] = '─'
	}
	for row := 0; row < height; row++ {
		canvas[row][width/2] = '│'
	}

	for _, pt := range p.Points {
		col := int((pt.X() + r) / (2 * r) * float64(width-1))
		row := height - 1 - int((pt.Y()+r)/(2*r)*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
