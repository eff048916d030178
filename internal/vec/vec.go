package vec

import "math"

// Vector is the capability contract for integrator states: indexed component
// access, same-shape zero construction, additive-group arithmetic, scalar
// multiplication, and an infinity norm. Every vector touched by one
// integration must report the same Len. InfNorm must return NaN when any
// component is NaN, so poisoned states stay detectable.
type Vector[V any] interface {
	Len() int
	At(i int) float64
	Zero() V
	Add(o V) V
	Sub(o V) V
	Scale(s float64) V
	InfNorm() float64
}

// Scalar is a one-dimensional state.
type Scalar float64

func (s Scalar) Len() int             { return 1 }
func (s Scalar) At(i int) float64     { return float64(s) }
func (s Scalar) Zero() Scalar         { return 0 }
func (s Scalar) Add(o Scalar) Scalar  { return s + o }
func (s Scalar) Sub(o Scalar) Scalar  { return s - o }
func (s Scalar) Scale(f float64) Scalar {
	return Scalar(float64(s) * f)
}
func (s Scalar) InfNorm() float64 { return math.Abs(float64(s)) }

// Vec2 is a two-component state.
type Vec2 [2]float64

func (v Vec2) Len() int         { return 2 }
func (v Vec2) At(i int) float64 { return v[i] }
func (v Vec2) Zero() Vec2       { return Vec2{} }

func (v Vec2) Add(o Vec2) Vec2 {
	for i := range v {
		v[i] += o[i]
	}
	return v
}

func (v Vec2) Sub(o Vec2) Vec2 {
	for i := range v {
		v[i] -= o[i]
	}
	return v
}

func (v Vec2) Scale(f float64) Vec2 {
	for i := range v {
		v[i] *= f
	}
	return v
}

func (v Vec2) InfNorm() float64 { return infNorm(v[:]) }

// Vec3 is a three-component state.
type Vec3 [3]float64

func (v Vec3) Len() int         { return 3 }
func (v Vec3) At(i int) float64 { return v[i] }
func (v Vec3) Zero() Vec3       { return Vec3{} }

func (v Vec3) Add(o Vec3) Vec3 {
	for i := range v {
		v[i] += o[i]
	}
	return v
}

func (v Vec3) Sub(o Vec3) Vec3 {
	for i := range v {
		v[i] -= o[i]
	}
	return v
}

func (v Vec3) Scale(f float64) Vec3 {
	for i := range v {
		v[i] *= f
	}
	return v
}

func (v Vec3) InfNorm() float64 { return infNorm(v[:]) }

// Vec4 is a four-component state.
type Vec4 [4]float64

func (v Vec4) Len() int         { return 4 }
func (v Vec4) At(i int) float64 { return v[i] }
func (v Vec4) Zero() Vec4       { return Vec4{} }

func (v Vec4) Add(o Vec4) Vec4 {
	for i := range v {
		v[i] += o[i]
	}
	return v
}

func (v Vec4) Sub(o Vec4) Vec4 {
	for i := range v {
		v[i] -= o[i]
	}
	return v
}

func (v Vec4) Scale(f float64) Vec4 {
	for i := range v {
		v[i] *= f
	}
	return v
}

func (v Vec4) InfNorm() float64 { return infNorm(v[:]) }

// VecN is a slice-backed state for systems whose dimension is only known at
// runtime (registry and CLI paths). Arithmetic returns fresh slices.
type VecN []float64

func (v VecN) Len() int         { return len(v) }
func (v VecN) At(i int) float64 { return v[i] }

func (v VecN) Zero() VecN { return make(VecN, len(v)) }

func (v VecN) Clone() VecN {
	c := make(VecN, len(v))
	copy(c, v)
	return c
}

func (v VecN) IsValid() bool {
	for _, c := range v {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			return false
		}
	}
	return true
}

func (v VecN) Add(o VecN) VecN {
	r := make(VecN, len(v))
	for i := range v {
		if i < len(o) {
			r[i] = v[i] + o[i]
		} else {
			r[i] = v[i]
		}
	}
	return r
}

func (v VecN) Sub(o VecN) VecN {
	r := make(VecN, len(v))
	for i := range v {
		if i < len(o) {
			r[i] = v[i] - o[i]
		} else {
			r[i] = v[i]
		}
	}
	return r
}

func (v VecN) Scale(f float64) VecN {
	r := make(VecN, len(v))
	for i := range v {
		r[i] = v[i] * f
	}
	return r
}

func (v VecN) InfNorm() float64 { return infNorm(v) }

func infNorm(cs []float64) float64 {
	m := 0.0
	for _, c := range cs {
		a := math.Abs(c)
		if math.IsNaN(a) {
			return a
		}
		if a > m {
			m = a
		}
	}
	return m
}
