package snow_test

import (
	"math"
	"math/rand/v2"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/frostframe/internal/host"
	"github.com/san-kum/frostframe/internal/raster"
	"github.com/san-kum/frostframe/internal/snow"
)

var (
	calm     = snow.Config{ParticleCount: 150, BaseSpeed: 1.5, WindSensitivity: 0.5, SizeMultiplier: 1.0, Opacity: 0.8}
	blizzard = snow.Config{ParticleCount: 1200, BaseSpeed: 6.0, WindSensitivity: 2.5, SizeMultiplier: 0.8, Opacity: 0.7}
)

var _ = Describe("Engine", func() {
	var (
		loop    *host.Loop
		surface *raster.Surface
		engine  *snow.Engine
	)

	BeforeEach(func() {
		loop = host.NewLoop(640, 360)
		surface = raster.NewSurface(1, 1)

		var err error
		engine, err = snow.New(surface, loop, loop, calm, snow.WithRand(rand.New(rand.NewPCG(3, 5))))
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		engine.Destroy()
	})

	It("sizes the surface to the viewport", func() {
		w, h := surface.Size()
		Expect(w).To(Equal(640))
		Expect(h).To(Equal(360))
	})

	It("runs the calm to blizzard scenario", func() {
		engine.Start()
		Expect(loop.Tick()).To(BeTrue())

		Expect(surface.Draws()).To(Equal(150))
		for _, p := range engine.Particles() {
			x, y := p.Position()
			Expect(math.IsNaN(x) || math.IsNaN(y)).To(BeFalse())
		}

		engine.UpdateConfig(blizzard)
		Expect(loop.Tick()).To(BeTrue())
		Expect(engine.Len()).To(Equal(1200))
		Expect(surface.Draws()).To(Equal(1200))

		engine.Destroy()
		Expect(loop.Pending()).To(BeFalse())
		Expect(loop.Listeners()).To(BeZero())

		wind := engine.Wind()
		loop.PointerMove(0, 0)
		loop.Resize(100, 100)
		Expect(engine.Wind()).To(Equal(wind))
		w, _ := surface.Size()
		Expect(w).To(Equal(640))
		Expect(loop.Tick()).To(BeFalse())
	})

	It("does not spawn a second loop when started twice", func() {
		engine.Start()
		engine.Start()

		Expect(loop.Tick()).To(BeTrue())
		Expect(engine.Frames()).To(BeEquivalentTo(2))
		Expect(loop.Tick()).To(BeTrue())
		Expect(engine.Frames()).To(BeEquivalentTo(3))
	})

	It("leaves a blank surface after stop", func() {
		engine.UpdateConfig(blizzard)
		engine.Start()
		loop.Tick()
		Expect(surface.Blank()).To(BeFalse())

		engine.Stop()
		Expect(surface.Blank()).To(BeTrue())
		Expect(loop.Pending()).To(BeFalse())

		engine.Stop()
		Expect(surface.Blank()).To(BeTrue())
	})

	It("derives wind from the pointer", func() {
		loop.PointerMove(320, 10)
		Expect(engine.Wind()).To(BeNumerically("~", 0, 1e-12))

		loop.PointerMove(640, 10)
		Expect(engine.Wind()).To(BeNumerically("~", snow.DefaultWindGain, 1e-12))

		loop.PointerMove(0, 10)
		Expect(engine.Wind()).To(BeNumerically("~", -snow.DefaultWindGain, 1e-12))
	})

	It("keeps particles inside the surface", func() {
		engine.UpdateConfig(blizzard)
		engine.Start()
		for i := 0; i < 200; i++ {
			loop.PointerMove(float64(i%640), 0)
			if i == 100 {
				loop.Resize(320, 200)
			}
			loop.Tick()
		}
		w, h := surface.Size()
		for _, p := range engine.Particles() {
			x, y := p.Position()
			Expect(x).To(BeNumerically(">=", 0))
			Expect(x).To(BeNumerically("<", float64(w)))
			Expect(y).To(BeNumerically(">=", snow.RespawnY))
			Expect(y).To(BeNumerically("<=", float64(h)))
		}
	})

	It("keeps old traits and spawns new ones from the new config", func() {
		small := calm
		small.ParticleCount = 10
		engine.UpdateConfig(small)
		before := engine.Particles()

		engine.UpdateConfig(blizzard)
		after := engine.Particles()
		Expect(after).To(HaveLen(1200))

		for i := range before {
			Expect(after[i].Size()).To(Equal(before[i].Size()))
			Expect(after[i].Opacity()).To(Equal(before[i].Opacity()))
			Expect(after[i].Size()).To(BeNumerically("~", 2, 1.0))
			Expect(after[i].Opacity()).To(BeNumerically("<=", calm.Opacity))
			_, vy := after[i].Velocity()
			Expect(vy).To(BeNumerically("~", 1.5, 0.75))
		}
		for _, p := range after[len(before):] {
			Expect(p.Size()).To(BeNumerically("~", 1.6, 0.8))
			Expect(p.Opacity()).To(BeNumerically("<=", blizzard.Opacity))
			_, vy := p.Velocity()
			Expect(vy).To(BeNumerically("~", 6, 3))
		}
	})
})
