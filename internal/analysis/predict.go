package analysis

import (
	"math"
	"strconv"

	"github.com/san-kum/blockpi/internal/physics"
)

// epsilon absorbs rounding when pi/theta lands on an integer (e.g. 1:1, 1:3).
const epsilon = 1e-9

// PredictCollisions returns the number of collisions an exact, continuous
// simulation performs when B pushes A, initially at rest, toward the wall.
func PredictCollisions(massA, massB float64) (int, error) {
	if !(massA > 0) {
		return 0, &physics.ConfigError{Field: "mass_a", Value: massA}
	}
	if !(massB > 0) {
		return 0, &physics.ConfigError{Field: "mass_b", Value: massB}
	}
	theta := math.Atan(math.Sqrt(massA / massB))
	return int(math.Ceil(math.Pi/theta-epsilon)) - 1, nil
}

// PiDigits returns the first n digits of pi without the decimal point.
func PiDigits(n int) string {
	const digits = "314159265358979323846"
	if n <= 0 {
		return ""
	}
	if n > len(digits) {
		n = len(digits)
	}
	return digits[:n]
}

// RatioForDigits is the mass ratio mB/mA whose collision count spells
// the first n digits of pi.
func RatioForDigits(n int) float64 {
	return math.Pow(100, float64(n-1))
}

// MatchesPi reports whether count equals the first n digits of pi.
func MatchesPi(count, n int) bool {
	return strconv.Itoa(count) == PiDigits(n)
}
