package analysis

import (
	"errors"
	"testing"

	"github.com/san-kum/blockpi/internal/physics"
)

func TestPredictCollisions(t *testing.T) {
	tests := []struct {
		massA, massB float64
		want         int
	}{
		{1, 1, 3},
		{1, 100, 31},
		{1, 1e4, 314},
		{1, 1e6, 3141},
		{10, 100, 10},
		{10, 1, 2},
		{1, 3, 5},
	}

	for _, tt := range tests {
		got, err := PredictCollisions(tt.massA, tt.massB)
		if err != nil {
			t.Fatalf("PredictCollisions(%g, %g): %v", tt.massA, tt.massB, err)
		}
		if got != tt.want {
			t.Errorf("PredictCollisions(%g, %g) = %d, want %d", tt.massA, tt.massB, got, tt.want)
		}
	}
}

func TestPredictCollisionsRejectsMass(t *testing.T) {
	for _, m := range [][2]float64{{0, 1}, {1, -2}} {
		_, err := PredictCollisions(m[0], m[1])
		if !errors.Is(err, physics.ErrInvalidConfiguration) {
			t.Errorf("masses %v: expected ErrInvalidConfiguration, got %v", m, err)
		}
	}
}

func TestPiDigits(t *testing.T) {
	if got := PiDigits(4); got != "3141" {
		t.Errorf("PiDigits(4) = %q", got)
	}
	if got := PiDigits(0); got != "" {
		t.Errorf("PiDigits(0) = %q", got)
	}
	if !MatchesPi(314, 3) || MatchesPi(315, 3) {
		t.Error("MatchesPi disagrees with PiDigits")
	}
	if RatioForDigits(3) != 1e4 {
		t.Errorf("RatioForDigits(3) = %g", RatioForDigits(3))
	}
}
