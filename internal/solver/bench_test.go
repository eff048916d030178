package solver

import (
	"testing"

	"github.com/san-kum/odelab/internal/vec"
)

func BenchmarkIntegrateOscillator(b *testing.B) {
	f := func(y vec.Vec2, _ float64) vec.Vec2 {
		return vec.Vec2{y[1], -y[0]}
	}
	times := make([]float64, 101)
	for i := range times {
		times[i] = 10 * float64(i) / 100
	}
	opts := DefaultOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Integrate(times, vec.Vec2{1, 0}, f, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkIntegrateLorenz(b *testing.B) {
	f := func(y vec.Vec3, _ float64) vec.Vec3 {
		return vec.Vec3{
			10 * (y[1] - y[0]),
			y[0]*(28-y[2]) - y[1],
			y[0]*y[1] - (8.0/3.0)*y[2],
		}
	}
	times := make([]float64, 101)
	for i := range times {
		times[i] = 5 * float64(i) / 100
	}
	opts := DefaultOptions()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := Integrate(times, vec.Vec3{1, 1, 1}, f, opts); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkInterpolate(b *testing.B) {
	f := func(y vec.Vec2, _ float64) vec.Vec2 {
		return vec.Vec2{y[1], -y[0]}
	}
	st := newStepper(f, 0, 0.5, vec.Vec2{1, 0}, DefaultOptions().withDefaults())
	if err := st.seed(); err != nil {
		b.Fatal(err)
	}
	for {
		accepted, err := st.attempt()
		if err != nil {
			b.Fatal(err)
		}
		if accepted {
			break
		}
	}

	b.ResetTimer()
	var sink vec.Vec2
	for i := 0; i < b.N; i++ {
		sink = st.interpolate(st.prev.t + st.prev.h*float64(i%64)/64)
	}
	_ = sink
}
