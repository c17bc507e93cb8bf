package physics

import "testing"

func TestWallReflect(t *testing.T) {
	w := Wall{Position: 750}

	tests := []struct {
		name     string
		velocity float64
		want     float64
	}{
		{"moving into wall", 3.5, -3.5},
		{"already leaving", -1.25, -1.25},
		{"at rest", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Body{Mass: 1, Velocity: tt.velocity, Position: 710, Width: 50}
			ResolveBodyWall(w, b)

			if b.Velocity != tt.want {
				t.Errorf("velocity = %g, want %g", b.Velocity, tt.want)
			}
			if b.Position != 700 {
				t.Errorf("position = %g, want 700", b.Position)
			}
			if b.Velocity > 0 {
				t.Error("body still heading into the wall")
			}
		})
	}
}

func TestWallTouches(t *testing.T) {
	w := Wall{Position: 750}

	tests := []struct {
		position float64
		want     bool
	}{
		{699.999, false},
		{700, true},
		{720, true},
	}

	for _, tt := range tests {
		b := &Body{Mass: 1, Position: tt.position, Width: 50}
		if got := w.Touches(b); got != tt.want {
			t.Errorf("Touches(pos=%g) = %v, want %v", tt.position, got, tt.want)
		}
	}
}

func TestWallReflectIdempotent(t *testing.T) {
	w := Wall{Position: 750}
	b := &Body{Mass: 1, Velocity: 2, Position: 720, Width: 50}

	w.Reflect(b)
	first := *b
	w.Reflect(b)

	if *b != first {
		t.Errorf("second reflect changed body: %+v -> %+v", first, *b)
	}
}
