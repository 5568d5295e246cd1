package tracker_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nkoval/beamsim/internal/beam"
	"github.com/nkoval/beamsim/internal/elements"
	"github.com/nkoval/beamsim/internal/tracker"
)

var _ = Describe("Engine direction reversal", func() {
	var (
		engine *tracker.Engine
		p      *beam.Particle
	)

	newProton := func(position, momentum beam.Vec3) *beam.Particle {
		particle, err := beam.NewParticle(beam.ProtonMass, beam.ElementaryCharge, position, momentum)
		Expect(err).NotTo(HaveOccurred())
		return particle
	}

	BeforeEach(func() {
		quad, err := elements.NewQuadrupole(0.5, 10)
		Expect(err).NotTo(HaveOccurred())
		dipole, err := elements.NewDipole(2.0, 0.5)
		Expect(err).NotTo(HaveOccurred())

		engine = tracker.NewEngine(tracker.NewBeamline(quad, dipole))
		p = newProton(beam.Vec3{X: 1e-4}, beam.Vec3{Z: 2e-20})
		engine.AddParticle(p)
	})

	It("starts in the forward direction", func() {
		Expect(engine.Direction()).To(Equal(beam.Forward))
	})

	It("toggles direction and momentum together", func() {
		original := p.Momentum

		engine.ReverseDirection()
		Expect(engine.Direction()).To(Equal(beam.Backward))
		Expect(p.Momentum).To(Equal(original.Scale(-1)))
	})

	It("restores momentum and direction after two reversals", func() {
		original := p.Momentum

		engine.ReverseDirection()
		engine.ReverseDirection()

		Expect(engine.Direction()).To(Equal(beam.Forward))
		Expect(p.Momentum).To(Equal(original))
	})

	It("retraces the trajectory within first-order tolerance", func() {
		const (
			dt    = 1e-11
			steps = 50
			// First-order integration leaves a drift proportional to
			// force*dt^2 per step; 1e-4 m is generous against the
			// ~6e-3 m travelled.
			tolerance = 1e-4
		)

		start := p.Position
		startMomentum := p.Momentum

		for i := 0; i < steps; i++ {
			Expect(engine.Step(dt)).To(Succeed())
		}

		engine.ReverseDirection()

		for i := 0; i < steps; i++ {
			Expect(engine.Step(dt)).To(Succeed())
		}

		Expect(p.Position.X).To(BeNumerically("~", start.X, tolerance))
		Expect(p.Position.Y).To(BeNumerically("~", start.Y, tolerance))
		Expect(p.Position.Z).To(BeNumerically("~", start.Z, tolerance))

		// The round trip ends with the momentum pointing back upstream.
		Expect(p.Momentum.Z).To(BeNumerically("~", -startMomentum.Z, 1e-2*startMomentum.Norm()))
	})

	It("retraces through a zero-phase cavity within tolerance", func() {
		cavity, err := elements.NewRFCavity(1.0, 1e9, 5e6, 0)
		Expect(err).NotTo(HaveOccurred())

		cavityEngine := tracker.NewEngine(tracker.NewBeamline(cavity))
		cp := newProton(beam.Vec3{Z: 0.3}, beam.Vec3{Z: 2e-20})
		cavityEngine.AddParticle(cp)

		const (
			dt    = 1e-11
			steps = 40
		)
		start := cp.Position

		for i := 0; i < steps; i++ {
			Expect(cavityEngine.Step(dt)).To(Succeed())
		}
		cavityEngine.ReverseDirection()
		for i := 0; i < steps; i++ {
			Expect(cavityEngine.Step(dt)).To(Succeed())
		}

		Expect(cp.Position.Z).To(BeNumerically("~", start.Z, 1e-4))
		Expect(cavityEngine.Time()).To(BeNumerically("~", 0, 1e-20))
	})
})
