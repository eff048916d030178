package vec

import (
	"math"
	"testing"
)

func TestScalarArithmetic(t *testing.T) {
	a := Scalar(2.5)
	b := Scalar(-1.5)

	if a.Len() != 1 {
		t.Errorf("expected len 1, got %d", a.Len())
	}
	if got := a.Add(b); got != 1.0 {
		t.Errorf("expected 1.0, got %v", got)
	}
	if got := a.Sub(b); got != 4.0 {
		t.Errorf("expected 4.0, got %v", got)
	}
	if got := a.Scale(2); got != 5.0 {
		t.Errorf("expected 5.0, got %v", got)
	}
	if got := b.InfNorm(); got != 1.5 {
		t.Errorf("expected 1.5, got %v", got)
	}
	if a.Zero() != 0 {
		t.Error("expected zero scalar")
	}
}

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{1, -2, 3}
	b := Vec3{0.5, 0.5, 0.5}

	sum := a.Add(b)
	if sum != (Vec3{1.5, -1.5, 3.5}) {
		t.Errorf("unexpected sum %v", sum)
	}
	diff := a.Sub(b)
	if diff != (Vec3{0.5, -2.5, 2.5}) {
		t.Errorf("unexpected difference %v", diff)
	}
	if a != (Vec3{1, -2, 3}) {
		t.Error("receiver mutated by value arithmetic")
	}
	if got := a.Scale(-2); got != (Vec3{-2, 4, -6}) {
		t.Errorf("unexpected scale %v", got)
	}
	if got := a.InfNorm(); got != 3 {
		t.Errorf("expected inf norm 3, got %v", got)
	}
	if a.Zero() != (Vec3{}) {
		t.Error("expected zero vector")
	}
}

func TestFixedWidths(t *testing.T) {
	if (Vec2{}).Len() != 2 || (Vec3{}).Len() != 3 || (Vec4{}).Len() != 4 {
		t.Error("unexpected fixed widths")
	}
	v := Vec4{1, 2, 3, 4}
	for i := 0; i < v.Len(); i++ {
		if v.At(i) != float64(i+1) {
			t.Errorf("component %d: expected %d, got %v", i, i+1, v.At(i))
		}
	}
}

func TestVecNArithmetic(t *testing.T) {
	a := VecN{1, 2, 3}
	b := VecN{1, 1, 1}

	sum := a.Add(b)
	for i, want := range []float64{2, 3, 4} {
		if sum[i] != want {
			t.Errorf("sum[%d]: expected %v, got %v", i, want, sum[i])
		}
	}

	z := a.Zero()
	if len(z) != 3 {
		t.Fatalf("expected zero of len 3, got %d", len(z))
	}
	for i := range z {
		if z[i] != 0 {
			t.Errorf("zero[%d] non-zero", i)
		}
	}

	c := a.Clone()
	c[0] = 99
	if a[0] != 1 {
		t.Error("clone shares backing array")
	}
}

func TestVecNValidity(t *testing.T) {
	if !(VecN{1, 2}).IsValid() {
		t.Error("finite state reported invalid")
	}
	if (VecN{1, math.NaN()}).IsValid() {
		t.Error("NaN state reported valid")
	}
	if (VecN{math.Inf(1)}).IsValid() {
		t.Error("Inf state reported valid")
	}
}

func TestInfNormPropagatesNaN(t *testing.T) {
	v := VecN{5, math.NaN(), 1}
	if !math.IsNaN(v.InfNorm()) {
		t.Error("expected NaN inf norm")
	}
	w := Vec2{1, math.Inf(-1)}
	if !math.IsInf(w.InfNorm(), 1) {
		t.Error("expected +Inf inf norm")
	}
}
