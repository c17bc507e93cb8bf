package control

import (
	"math"
	"sync"
)

const sliderSteps = 49

// Slider is a clamped speed multiplier. Nudge moves it by a fixed
// fraction of its range.
type Slider struct {
	Min, Max float64

	mu  sync.Mutex
	val float64
}

func NewSlider(min, max, initial float64) *Slider {
	s := &Slider{Min: min, Max: max}
	s.Set(initial)
	return s
}

func (s *Slider) Speed() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val
}

// Set stores v clamped to [Min, Max]. NaN is ignored.
func (s *Slider) Set(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(v)
}

func (s *Slider) set(v float64) {
	if math.IsNaN(v) {
		return
	}
	s.val = math.Max(s.Min, math.Min(v, s.Max))
}

// Nudge moves the slider dir steps up (positive) or down (negative).
func (s *Slider) Nudge(dir int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	step := (s.Max - s.Min) / sliderSteps
	s.set(s.val + float64(dir)*step)
}

// Fraction is the handle position in [0, 1], for drawing.
func (s *Slider) Fraction() float64 {
	if s.Max == s.Min {
		return 0
	}
	return (s.Speed() - s.Min) / (s.Max - s.Min)
}
