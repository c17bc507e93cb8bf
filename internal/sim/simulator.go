package sim

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrNotSettled indicates a run used its whole tick budget while collisions
// were still possible, typically because a large speed let a block tunnel.
var ErrNotSettled = errors.New("sim: scene did not settle within tick budget")

// Simulator drives a State to settlement in batch, outside any frame loop.
type Simulator struct {
	metrics   []Metric
	observers []Observer
	log       logrus.FieldLogger
}

func NewSimulator(log logrus.FieldLogger) *Simulator {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Simulator{
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       log,
	}
}

func (r *Simulator) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Simulator) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// Run steps s at a constant speed until it settles or maxTicks steps have been
// taken. The partial result is returned alongside ErrNotSettled or the
// context error.
func (r *Simulator) Run(ctx context.Context, s *State, speed float64, maxTicks int) (*Result, error) {
	if speed <= 0 {
		return nil, fmt.Errorf("speed must be positive, got %f", speed)
	}
	if maxTicks <= 0 {
		return nil, fmt.Errorf("max ticks must be positive, got %d", maxTicks)
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	log := r.log.WithFields(logrus.Fields{
		"mass_a": s.A.Mass,
		"mass_b": s.B.Mass,
		"speed":  speed,
	})
	log.Debug("run started")

	r.observe(s.Snapshot())

	var runErr error
	for !s.Settled() {
		if s.Ticks >= maxTicks {
			runErr = ErrNotSettled
			break
		}
		select {
		case <-ctx.Done():
			runErr = ctx.Err()
		default:
		}
		if runErr != nil {
			break
		}

		s.Step(speed)
		r.observe(s.Snapshot())
	}

	result := &Result{
		Collisions:  s.Collisions,
		Ticks:       s.Ticks,
		Settled:     runErr == nil,
		Final:       s.Snapshot(),
		Fingerprint: s.Fingerprint(),
		Metrics:     make(map[string]float64, len(r.metrics)),
	}
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	log = log.WithFields(logrus.Fields{"collisions": result.Collisions, "ticks": result.Ticks})
	if runErr != nil {
		log.WithError(runErr).Warn("run stopped before settling")
		return result, runErr
	}
	log.Debug("run settled")
	return result, nil
}

func (r *Simulator) observe(snap Snapshot) {
	for _, m := range r.metrics {
		m.Observe(snap)
	}
	for _, obs := range r.observers {
		obs.OnTick(snap)
	}
}
