package physics

import "math"

// Wall is an immovable boundary on the right side of the scene. It behaves
// like a body of unbounded mass: incoming speed is preserved, only the
// direction is forced away from the wall.
type Wall struct {
	Position float64
}

// Touches reports whether b's right edge has reached or passed the wall.
// Exact contact counts.
func (w Wall) Touches(b *Body) bool {
	return b.Right() >= w.Position
}

// Reflect sends b leftward at its current speed and places its right edge
// on the wall. Callers only invoke it once Touches has reported contact.
func (w Wall) Reflect(b *Body) {
	b.Velocity = -math.Abs(b.Velocity)
	b.Position = w.Position - b.Width
}
