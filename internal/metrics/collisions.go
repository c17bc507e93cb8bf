package metrics

import "github.com/san-kum/blockpi/internal/sim"

// CollisionRate is collisions per tick over the observed run.
type CollisionRate struct {
	name       string
	collisions int
	ticks      int
}

func NewCollisionRate() *CollisionRate {
	return &CollisionRate{name: "collision_rate"}
}

func (c *CollisionRate) Name() string { return c.name }

func (c *CollisionRate) Observe(s sim.Snapshot) {
	c.collisions = s.Collisions
	c.ticks = s.Ticks
}

func (c *CollisionRate) Value() float64 {
	if c.ticks == 0 {
		return 0
	}
	return float64(c.collisions) / float64(c.ticks)
}

func (c *CollisionRate) Reset() {
	c.collisions = 0
	c.ticks = 0
}

// WallShare is the fraction of collisions that were wall bounces.
type WallShare struct {
	name  string
	wall  int
	total int
}

func NewWallShare() *WallShare {
	return &WallShare{name: "wall_share"}
}

func (w *WallShare) Name() string { return w.name }

func (w *WallShare) Observe(s sim.Snapshot) {
	if s.Events.BodyWall {
		w.wall++
	}
	w.total += s.Events.Count()
}

func (w *WallShare) Value() float64 {
	if w.total == 0 {
		return 0
	}
	return float64(w.wall) / float64(w.total)
}

func (w *WallShare) Reset() {
	w.wall = 0
	w.total = 0
}

// Default returns a fresh set of the standard run metrics.
func Default() []sim.Metric {
	return []sim.Metric{
		NewEnergyDrift(),
		NewPeakSpeed(),
		NewCollisionRate(),
		NewWallShare(),
	}
}
