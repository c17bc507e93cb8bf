package sim_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/blockpi/internal/config"
	"github.com/san-kum/blockpi/internal/physics"
	"github.com/san-kum/blockpi/internal/sim"
)

func newState(cfg *config.Config) *sim.State {
	s, err := sim.New(cfg)
	Expect(err).NotTo(HaveOccurred())
	return s
}

var _ = Describe("State", func() {
	var s *sim.State

	BeforeEach(func() {
		s = newState(config.DefaultConfig())
	})

	Describe("construction", func() {
		It("builds the configured scene", func() {
			Expect(s.A.Mass).To(Equal(10.0))
			Expect(s.B.Mass).To(Equal(100.0))
			Expect(s.A.Position).To(Equal(500.0))
			Expect(s.B.Velocity).To(Equal(2.0))
			Expect(s.Wall.Position).To(Equal(750.0))
			Expect(s.Collisions).To(BeZero())
		})

		It("rejects a zero mass", func() {
			_, err := sim.New(config.DefaultConfig().WithMasses(0, 100))
			Expect(err).To(MatchError(physics.ErrInvalidConfiguration))
		})

		It("rejects a negative width", func() {
			cfg := config.DefaultConfig()
			cfg.WidthA = -1
			_, err := sim.New(cfg)
			Expect(err).To(MatchError(physics.ErrInvalidConfiguration))
		})
	})

	Describe("Step", func() {
		It("only integrates while the blocks are apart", func() {
			Expect(s.Step(1.0)).To(Equal(0))
			Expect(s.A.Position).To(Equal(500.0))
			Expect(s.B.Position).To(Equal(102.0))
			Expect(s.LastEvents()).To(Equal(sim.Events{}))
			Expect(s.Ticks).To(Equal(1))
		})

		It("resolves the first impact to exact contact", func() {
			for i := 0; i < 174; i++ {
				Expect(s.Step(1.0)).To(Equal(0))
			}

			Expect(s.Step(1.0)).To(Equal(1))
			Expect(s.LastEvents().BodyBody).To(BeTrue())
			Expect(s.LastEvents().BodyWall).To(BeFalse())
			Expect(s.A.Position).To(Equal(s.B.Position + s.B.Width))
			Expect(s.A.Velocity).To(BeNumerically("~", 400.0/110.0, 1e-12))
			Expect(s.B.Velocity).To(BeNumerically("~", 180.0/110.0, 1e-12))
		})

		It("counts exact wall contact as a collision", func() {
			cfg := config.DefaultConfig()
			cfg.PositionA = cfg.Wall - cfg.WidthA
			cfg.VelocityB = 0
			s = newState(cfg)

			Expect(s.Step(1.0)).To(Equal(1))
			Expect(s.LastEvents().BodyWall).To(BeTrue())
			Expect(s.A.Position + s.A.Width).To(Equal(cfg.Wall))
		})

		It("always sends A away from the wall", func() {
			cfg := config.DefaultConfig()
			cfg.PositionA = 690
			cfg.VelocityA = 12.5
			cfg.VelocityB = 0
			s = newState(cfg)

			s.Step(1.0)
			Expect(s.LastEvents().BodyWall).To(BeTrue())
			Expect(s.A.Velocity).To(Equal(-12.5))
			Expect(s.A.Position).To(Equal(700.0))
		})

		It("counts both collisions when A is squeezed against the wall", func() {
			cfg := config.DefaultConfig()
			cfg.PositionA = 699
			cfg.VelocityA = 0.5
			cfg.PositionB = 648
			cfg.VelocityB = 2
			s = newState(cfg)

			Expect(s.Step(1.0)).To(Equal(2))
			Expect(s.LastEvents().Count()).To(Equal(2))
			Expect(s.A.Velocity).To(BeNumerically("<", 0))
			Expect(s.A.Position).To(Equal(s.B.Position + s.B.Width))
		})

		It("never decreases the count by more than two per tick", func() {
			prev := 0
			for !s.Settled() {
				n := s.Step(1.0)
				Expect(n - prev).To(BeElementOf(0, 1, 2))
				Expect(n - prev).To(Equal(s.LastEvents().Count()))
				prev = n
			}
		})

		It("keeps kinetic energy across the whole run", func() {
			e0 := s.Snapshot().Energy()
			for !s.Settled() {
				s.Step(1.0)
			}
			Expect(s.Snapshot().Energy()).To(BeNumerically("~", e0, 1e-9*e0))
		})
	})

	Describe("reference scenes", func() {
		run := func(cfg *config.Config, speed float64) *sim.Result {
			res, err := sim.NewSimulator(nil).Run(context.Background(), newState(cfg), speed, cfg.MaxTicks)
			Expect(err).NotTo(HaveOccurred())
			return res
		}

		It("settles the classic scene after ten collisions", func() {
			res := run(config.DefaultConfig(), 1.0)
			Expect(res.Settled).To(BeTrue())
			Expect(res.Collisions).To(Equal(10))
			Expect(res.Ticks).To(Equal(677))
		})

		It("is deterministic", func() {
			first := run(config.DefaultConfig(), 1.0)
			second := run(config.DefaultConfig(), 1.0)
			Expect(second.Fingerprint).To(Equal(first.Fingerprint))
		})

		DescribeTable("digits of pi",
			func(preset string, speed float64, want int) {
				Expect(run(config.GetPreset(preset), speed).Collisions).To(Equal(want))
			},
			Entry("1:1", "pi1", 1.0, 3),
			Entry("1:100", "pi2", 1.0, 31),
			Entry("1:10000", "pi3", 1.0, 314),
			Entry("classic at top speed", "classic", 5.0, 10),
			Entry("classic at lowest speed", "classic", 0.1, 10),
		)
	})

	Describe("Restart", func() {
		It("returns to the starting layout and clears the count", func() {
			for i := 0; i < 300; i++ {
				s.Step(2.5)
			}
			Expect(s.Collisions).To(BeNumerically(">", 0))

			Expect(s.Restart(1, 100)).To(Succeed())
			Expect(s.Collisions).To(BeZero())
			Expect(s.Ticks).To(BeZero())
			Expect(s.A.Mass).To(Equal(1.0))
			Expect(s.B.Mass).To(Equal(100.0))
			Expect(s.A.Velocity).To(Equal(0.0))
			Expect(s.B.Velocity).To(Equal(2.0))
			Expect(s.A.Position).To(Equal(500.0))
			Expect(s.B.Position).To(Equal(100.0))
			Expect(s.Speed).To(Equal(2.5))
		})

		It("is idempotent", func() {
			Expect(s.Restart(10, 100)).To(Succeed())
			first := s.Fingerprint()
			Expect(s.Restart(10, 100)).To(Succeed())
			Expect(s.Fingerprint()).To(Equal(first))

			fresh := newState(config.DefaultConfig())
			Expect(fresh.Fingerprint()).To(Equal(first))
		})

		It("rejects invalid masses without touching the scene", func() {
			s.Step(1.0)
			before := s.Fingerprint()

			Expect(s.Restart(0, 100)).To(MatchError(physics.ErrInvalidConfiguration))
			Expect(s.Restart(10, -1)).To(MatchError(physics.ErrInvalidConfiguration))
			Expect(s.Fingerprint()).To(Equal(before))
		})
	})

	Describe("SetMass", func() {
		It("changes only the mass", func() {
			s.Step(1.0)
			pos, vel := s.A.Position, s.A.Velocity

			Expect(s.SetMassA(3)).To(Succeed())
			Expect(s.A.Mass).To(Equal(3.0))
			Expect(s.A.Position).To(Equal(pos))
			Expect(s.A.Velocity).To(Equal(vel))
		})

		It("rejects zero, as produced by unparsable input", func() {
			Expect(s.SetMassB(0)).To(MatchError(physics.ErrInvalidConfiguration))
			Expect(s.B.Mass).To(Equal(100.0))
		})
	})

	Describe("Settled", func() {
		It("is false at the start of the classic scene", func() {
			Expect(s.Settled()).To(BeFalse())
		})

		It("is false while A rests against the wall", func() {
			cfg := config.DefaultConfig()
			cfg.PositionA = cfg.Wall - cfg.WidthA
			cfg.VelocityB = -1
			Expect(newState(cfg).Settled()).To(BeFalse())
		})

		It("is true once both blocks drift apart leftward", func() {
			cfg := config.DefaultConfig()
			cfg.VelocityA = -0.5
			cfg.VelocityB = -1
			Expect(newState(cfg).Settled()).To(BeTrue())
		})
	})
})
