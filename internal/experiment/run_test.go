package experiment

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Registry", func() {
	var registry *Registry

	BeforeEach(func() {
		registry = NewRegistry()
	})

	It("lists systems sorted by name", func() {
		names := registry.ListSystems()
		Expect(names).To(Equal([]string{"decay", "kepler", "lorenz", "oscillator", "tank"}))
	})

	It("lists both method pairs", func() {
		Expect(registry.ListMethods()).To(Equal([]string{"bs32", "dopri5"}))
	})

	It("rejects unknown names", func() {
		_, err := registry.GetSystem("pendulum")
		Expect(err).To(MatchError(ContainSubstring("unknown system")))
		_, err = registry.GetMethod("rk4")
		Expect(err).To(MatchError(ContainSubstring("unknown method")))
	})

	It("returns independent system instances", func() {
		a, err := registry.GetSystem("decay")
		Expect(err).NotTo(HaveOccurred())
		b, err := registry.GetSystem("decay")
		Expect(err).NotTo(HaveOccurred())

		Expect(a.SetParam("rate", 5)).To(Succeed())
		Expect(b.GetParams()["rate"]).To(Equal(1.0))
	})

	It("hands out the full Dormand-Prince pair", func() {
		tab, err := registry.GetMethod("dopri5")
		Expect(err).NotTo(HaveOccurred())
		Expect(tab.Stages).To(Equal(7))
		Expect(tab.Validate()).To(Succeed())
	})
})

var _ = Describe("Run", func() {
	var (
		registry *Registry
		base     Config
	)

	BeforeEach(func() {
		registry = NewRegistry()
		base = Config{
			System:  "decay",
			Method:  "dopri5",
			Tol:     1e-8,
			Start:   0,
			End:     1,
			Samples: 11,
		}
	})

	It("integrates decay to the closed form", func() {
		res, err := New(base, registry).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.States).To(HaveLen(11))
		final := res.States[len(res.States)-1][0]
		Expect(final).To(BeNumerically("~", math.Exp(-1), 1e-6))
		Expect(res.Stats.Accepted).To(BeNumerically(">", 0))
		Expect(res.Elapsed).To(BeNumerically(">", 0))
	})

	It("scores the default metric set", func() {
		res, err := New(base, registry).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics).To(HaveKey("energy_drift"))
		Expect(res.Metrics).To(HaveKey("bounded"))
		Expect(res.Metrics).To(HaveKey("range_x0"))
		Expect(res.Metrics["bounded"]).To(Equal(1.0))
	})

	It("applies parameter overrides before integrating", func() {
		base.Params = map[string]float64{"rate": 2}
		res, err := New(base, registry).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		final := res.States[len(res.States)-1][0]
		Expect(final).To(BeNumerically("~", math.Exp(-2), 1e-6))
	})

	It("rejects unknown parameters", func() {
		base.Params = map[string]float64{"mass": 1}
		_, err := New(base, registry).Run(context.Background())
		Expect(err).To(MatchError(ContainSubstring("unknown parameter")))
	})

	It("honors an initial state override", func() {
		base.Y0 = []float64{3}
		res, err := New(base, registry).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.States[0][0]).To(Equal(3.0))
		final := res.States[len(res.States)-1][0]
		Expect(final).To(BeNumerically("~", 3*math.Exp(-1), 1e-6))
	})

	It("rejects a state of the wrong dimension", func() {
		base.Y0 = []float64{1, 0}
		_, err := New(base, registry).Run(context.Background())
		Expect(err).To(MatchError(ContainSubstring("components")))
	})

	It("rejects degenerate grids", func() {
		base.Samples = 1
		_, err := New(base, registry).Run(context.Background())
		Expect(err).To(HaveOccurred())

		base.Samples = 11
		base.End = base.Start
		_, err = New(base, registry).Run(context.Background())
		Expect(err).To(MatchError(ContainSubstring("time span")))
	})

	It("stops when the context is canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := New(base, registry).Run(ctx)
		Expect(err).To(MatchError(context.Canceled))
	})

	It("keeps orbital energy on a full Kepler period", func() {
		cfg := Config{
			System:  "kepler",
			Method:  "dopri5",
			Tol:     1e-9,
			Start:   0,
			End:     2 * math.Pi,
			Samples: 101,
		}
		res, err := New(cfg, registry).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Metrics["energy_drift"]).To(BeNumerically("<", 1e-5))
	})

	It("warms the storage tank and accumulates delivered heat", func() {
		cfg := Config{
			System:  "tank",
			Method:  "dopri5",
			Tol:     1e-6,
			Start:   0,
			End:     7200,
			Samples: 25,
		}
		res, err := New(cfg, registry).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		first := res.States[0]
		last := res.States[len(res.States)-1]
		Expect(last[0]).To(BeNumerically(">", first[0]))
		Expect(last[1]).To(BeNumerically(">", 0))
	})
})

var _ = Describe("Sweep", func() {
	It("trades evaluations for accuracy across tolerances", func() {
		registry := NewRegistry()
		base := Config{
			System:  "oscillator",
			Method:  "dopri5",
			Start:   0,
			End:     2 * math.Pi,
			Samples: 21,
		}
		tols := []float64{1e-3, 1e-6, 1e-9}
		points := Sweep(context.Background(), registry, base, tols)
		Expect(points).To(HaveLen(3))

		for _, p := range points {
			Expect(p.Err).NotTo(HaveOccurred())
			Expect(math.IsNaN(p.MaxDiff)).To(BeFalse())
		}
		Expect(points[0].Stats.Evals).To(BeNumerically("<", points[2].Stats.Evals))
		Expect(points[0].MaxDiff).To(BeNumerically(">", points[2].MaxDiff))
	})
})
