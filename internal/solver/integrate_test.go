package solver

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/odelab/internal/vec"
)

func TestInitialSampleExact(t *testing.T) {
	y0 := vec.Vec3{1.5, -2.25, 3.125}
	f := func(y vec.Vec3, _ float64) vec.Vec3 {
		return vec.Vec3{y[1], y[2], -y[0]}
	}

	out, _, err := Integrate([]float64{0, 0, 0.5, 1}, y0, f, DefaultOptions())
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	if len(out) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(out))
	}
	if out[0] != y0 {
		t.Errorf("first sample %v is not the initial condition %v", out[0], y0)
	}
	if out[1] != y0 {
		t.Errorf("duplicate of the initial time %v is not the initial condition", out[1])
	}
}

func TestConvergesToE(t *testing.T) {
	f := func(y vec.Scalar, _ float64) vec.Scalar { return y }
	times := []float64{0, 1}

	errAt := func(tol float64) float64 {
		opts := DefaultOptions()
		opts.Tol = tol
		out, _, err := Integrate(times, vec.Scalar(1), f, opts)
		if err != nil {
			t.Fatalf("tol %g: %v", tol, err)
		}
		return math.Abs(float64(out[1]) - math.E)
	}

	loose := errAt(1e-3)
	tight := errAt(1e-9)
	if loose > 1e-2 {
		t.Errorf("error %g at tol 1e-3 is worse than expected", loose)
	}
	if tight > 1e-7 {
		t.Errorf("error %g at tol 1e-9 is worse than expected", tight)
	}
	if tight >= loose {
		t.Errorf("tightening the tolerance did not reduce the error (%g vs %g)", tight, loose)
	}
}

func TestConstantDerivativeInvariance(t *testing.T) {
	y0 := vec.Vec2{3.25, -1.75}
	calls := 0
	f := func(y vec.Vec2, _ float64) vec.Vec2 {
		calls++
		return vec.Vec2{}
	}

	times := []float64{0, 0.3, 1.1, 4.5, 100}
	out, stats, err := Integrate(times, y0, f, DefaultOptions())
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	for i, y := range out {
		if y != y0 {
			t.Errorf("sample %d: %v drifted from %v under zero derivative", i, y, y0)
		}
	}
	if calls != stats.Evals {
		t.Errorf("counted %d calls, stats say %d", calls, stats.Evals)
	}
}

func TestDecayIsMonotone(t *testing.T) {
	f := func(y vec.Scalar, _ float64) vec.Scalar { return -y }
	times := []float64{0, 0.25, 0.5, 0.75, 1}

	out, _, err := Integrate(times, vec.Scalar(1), f, DefaultOptions())
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	for i := 1; i < len(out); i++ {
		if out[i] >= out[i-1] {
			t.Errorf("sample %d: %v not strictly below %v", i, out[i], out[i-1])
		}
		want := math.Exp(-times[i])
		if math.Abs(float64(out[i])-want) > 1e-5 {
			t.Errorf("sample %d: %v, want %v", i, out[i], want)
		}
	}
}

func TestEmptyRequest(t *testing.T) {
	calls := 0
	f := func(y vec.Scalar, _ float64) vec.Scalar {
		calls++
		return y
	}

	out, stats, err := Integrate(nil, vec.Scalar(1), f, DefaultOptions())
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("expected empty result, got %d samples", len(out))
	}
	if calls != 0 || stats.Evals != 0 {
		t.Errorf("derivative evaluated %d times on an empty request", calls)
	}
}

func TestDegenerateGrids(t *testing.T) {
	calls := 0
	f := func(y vec.Scalar, _ float64) vec.Scalar {
		calls++
		return y
	}

	out, _, err := Integrate([]float64{2.5}, vec.Scalar(7), f, DefaultOptions())
	if err != nil || len(out) != 1 || out[0] != 7 {
		t.Errorf("single-time request: out=%v err=%v", out, err)
	}

	out, _, err = Integrate([]float64{1, 1, 1}, vec.Scalar(-3), f, DefaultOptions())
	if err != nil || len(out) != 3 {
		t.Fatalf("duplicate-time request: out=%v err=%v", out, err)
	}
	for i, y := range out {
		if y != -3 {
			t.Errorf("sample %d: %v, want -3", i, y)
		}
	}
	if calls != 0 {
		t.Errorf("derivative evaluated %d times without any span to cover", calls)
	}
}

func TestFSALEvaluationCount(t *testing.T) {
	for _, tab := range []*Tableau{DormandPrince(), BogackiShampine()} {
		calls := 0
		f := func(y vec.Vec2, _ float64) vec.Vec2 {
			calls++
			return vec.Vec2{y[1], -y[0]}
		}

		opts := DefaultOptions()
		opts.Tableau = tab
		opts.Tol = 1e-7
		_, stats, err := Integrate([]float64{0, 2, 4, 6}, vec.Vec2{1, 0}, f, opts)
		if err != nil {
			t.Fatalf("%s: integrate failed: %v", tab.Name, err)
		}
		attempts := stats.Accepted + stats.Rejected
		want := 1 + (tab.Stages-1)*attempts
		if calls != want {
			t.Errorf("%s: %d evaluations for %d attempts, want %d", tab.Name, calls, attempts, want)
		}
		if stats.Evals != calls {
			t.Errorf("%s: stats report %d evaluations, counted %d", tab.Name, stats.Evals, calls)
		}
		if stats.Accepted == 0 {
			t.Errorf("%s: no accepted steps", tab.Name)
		}
	}
}

func TestUnreachableToleranceFailsCleanly(t *testing.T) {
	f := func(y vec.Scalar, _ float64) vec.Scalar { return y }
	opts := DefaultOptions()
	opts.Tol = math.SmallestNonzeroFloat64

	out, stats, err := Integrate([]float64{0, 1}, vec.Scalar(1), f, opts)
	if out != nil {
		t.Error("expected no samples from a failed integration")
	}
	if !errors.Is(err, ErrToleranceUnreachable) {
		t.Fatalf("expected ErrToleranceUnreachable, got %v", err)
	}
	if stats.Rejected != opts.MaxReject {
		t.Errorf("expected %d rejections before giving up, got %d", opts.MaxReject, stats.Rejected)
	}

	var se *StepError
	if !errors.As(err, &se) {
		t.Fatal("expected a *StepError wrapper")
	}
	if se.Step != stats.Accepted+stats.Rejected {
		t.Errorf("step error at attempt %d, stats count %d", se.Step, stats.Accepted+stats.Rejected)
	}
}

func TestNonFiniteDerivativeFailsFast(t *testing.T) {
	f := func(y vec.Scalar, tm float64) vec.Scalar {
		if tm > 0.25 {
			return vec.Scalar(math.NaN())
		}
		return y
	}

	out, _, err := Integrate([]float64{0, 1}, vec.Scalar(1), f, DefaultOptions())
	if out != nil {
		t.Error("expected no samples once NaN appeared")
	}
	if !errors.Is(err, ErrNonFiniteState) {
		t.Fatalf("expected ErrNonFiniteState, got %v", err)
	}

	// NaN at the very first evaluation is caught while seeding.
	bad := func(y vec.Scalar, _ float64) vec.Scalar { return vec.Scalar(math.Inf(1)) }
	_, _, err = Integrate([]float64{0, 1}, vec.Scalar(1), bad, DefaultOptions())
	if !errors.Is(err, ErrNonFiniteState) {
		t.Fatalf("expected ErrNonFiniteState from seeding, got %v", err)
	}
}

func TestArgumentValidation(t *testing.T) {
	f := func(y vec.Scalar, _ float64) vec.Scalar { return y }

	opts := DefaultOptions()
	opts.Tol = 0
	if _, _, err := Integrate([]float64{0, 1}, vec.Scalar(1), f, opts); !errors.Is(err, ErrTolerance) {
		t.Errorf("zero tolerance: got %v", err)
	}

	if _, _, err := Integrate([]float64{0, 1, 0.5}, vec.Scalar(1), f, DefaultOptions()); !errors.Is(err, ErrUnorderedTimes) {
		t.Errorf("decreasing times: got %v", err)
	}
	if _, _, err := Integrate([]float64{0, math.NaN()}, vec.Scalar(1), f, DefaultOptions()); !errors.Is(err, ErrUnorderedTimes) {
		t.Errorf("NaN time: got %v", err)
	}

	short := func(y vec.VecN, _ float64) vec.VecN { return vec.VecN{1} }
	if _, _, err := Integrate([]float64{0, 1}, vec.VecN{1, 2}, short, DefaultOptions()); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("dimension mismatch: got %v", err)
	}
}

func TestBogackiShampineIntegrates(t *testing.T) {
	f := func(y vec.Scalar, _ float64) vec.Scalar { return -y }
	opts := DefaultOptions()
	opts.Tableau = BogackiShampine()

	out, stats, err := Integrate([]float64{0, 1}, vec.Scalar(1), f, opts)
	if err != nil {
		t.Fatalf("integrate failed: %v", err)
	}
	want := math.Exp(-1)
	if got := math.Abs(float64(out[1]) - want); got > 1e-4 {
		t.Errorf("error %g vs exact %v", got, want)
	}
	if stats.Accepted == 0 {
		t.Error("no accepted steps recorded")
	}
}
