package loop

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/san-kum/blockpi/internal/control"
	"github.com/san-kum/blockpi/internal/physics"
	"github.com/san-kum/blockpi/internal/sim"
	"github.com/sirupsen/logrus"
)

// Sink receives a snapshot after every tick.
type Sink interface {
	Render(s sim.Snapshot)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(s sim.Snapshot)

func (f SinkFunc) Render(s sim.Snapshot) { f(s) }

// Driver is the frame loop around a guarded scene. Each tick it applies the
// masses and speed offered by its sources, steps once, and hands the result
// to the sink.
type Driver struct {
	State  *sim.Guarded
	Masses control.MassSource
	Speed  control.SpeedSource
	Sink   Sink
	FPS    int
	Log    logrus.FieldLogger

	paused   atomic.Bool
	rejected [2]float64
}

func (d *Driver) log() logrus.FieldLogger {
	if d.Log == nil {
		return logrus.StandardLogger()
	}
	return d.Log
}

// Tick runs one frame. A rejected mass skips the physics step for this frame;
// the sink still receives the unchanged scene.
func (d *Driver) Tick() error {
	err := d.applyMasses()
	if err == nil && !d.paused.Load() {
		d.State.Step(d.Speed.Speed())
	}
	if d.Sink != nil {
		d.Sink.Render(d.State.Snapshot())
	}
	return err
}

func (d *Driver) applyMasses() error {
	if d.Masses == nil {
		return nil
	}
	a, b := d.Masses.Masses()
	err := d.State.SetMasses(a, b)
	if err == nil {
		d.rejected = [2]float64{}
		return nil
	}
	// Log each distinct bad pair once rather than every frame.
	if d.rejected != [2]float64{a, b} {
		d.rejected = [2]float64{a, b}
		d.log().WithFields(logrus.Fields{"mass_a": a, "mass_b": b}).WithError(err).Warn("mass input rejected")
	}
	return err
}

// Restart implements control.RestartTrigger.
func (d *Driver) Restart(ms control.MassSource) error {
	a, b := ms.Masses()
	if err := d.State.Restart(a, b); err != nil {
		return err
	}
	d.log().WithFields(logrus.Fields{"mass_a": a, "mass_b": b}).Info("scene restarted")
	return nil
}

func (d *Driver) SetPaused(p bool) { d.paused.Store(p) }
func (d *Driver) Paused() bool     { return d.paused.Load() }

// Run ticks at FPS until ctx is done. Invalid mass input never stops the
// loop; it only holds the scene still until the input is fixed.
func (d *Driver) Run(ctx context.Context) error {
	fps := d.FPS
	if fps <= 0 {
		fps = 60
	}
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	d.log().WithField("fps", fps).Debug("driver started")
	defer d.log().Debug("driver stopped")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := d.Tick(); err != nil && !errors.Is(err, physics.ErrInvalidConfiguration) {
				return err
			}
		}
	}
}
