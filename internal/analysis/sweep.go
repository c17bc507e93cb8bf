package analysis

import (
	"context"
	"fmt"

	"github.com/san-kum/blockpi/internal/config"
	"github.com/san-kum/blockpi/internal/sim"
	"github.com/sirupsen/logrus"
)

// MaxSweepDigits bounds Sweep. Beyond it a single tick carries the light
// block through its neighbour and counts stop tracking pi.
const MaxSweepDigits = 5

// DigitResult compares one simulated ratio with the closed form.
type DigitResult struct {
	Digits     int
	MassA      float64
	MassB      float64
	Collisions int
	Predicted  int
	Ticks      int
	Matches    bool
}

// Sweep simulates ratios 100^0 .. 100^(n-1) on base's layout at the given
// speed and returns one row per ratio, in order.
func Sweep(ctx context.Context, base *config.Config, n int, speed float64, log logrus.FieldLogger) ([]DigitResult, error) {
	if n < 1 || n > MaxSweepDigits {
		return nil, fmt.Errorf("digits must be in [1, %d], got %d", MaxSweepDigits, n)
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	cfgs := make([]*config.Config, n)
	for k := range cfgs {
		cfgs[k] = base.WithMasses(1, RatioForDigits(k+1))
	}

	ens := &sim.Ensemble{Speed: speed, MaxTicks: base.MaxTicks}
	results, err := ens.Run(ctx, cfgs)
	if err != nil {
		return nil, fmt.Errorf("sweep: %w", err)
	}

	rows := make([]DigitResult, n)
	for k, res := range results {
		predicted, err := PredictCollisions(cfgs[k].MassA, cfgs[k].MassB)
		if err != nil {
			return nil, err
		}
		rows[k] = DigitResult{
			Digits:     k + 1,
			MassA:      cfgs[k].MassA,
			MassB:      cfgs[k].MassB,
			Collisions: res.Collisions,
			Predicted:  predicted,
			Ticks:      res.Ticks,
			Matches:    MatchesPi(res.Collisions, k+1),
		}
		log.WithFields(logrus.Fields{
			"ratio":      cfgs[k].MassB,
			"collisions": res.Collisions,
			"ticks":      res.Ticks,
		}).Debug("ratio simulated")
	}
	return rows, nil
}
