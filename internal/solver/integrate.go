package solver

import (
	"github.com/san-kum/odelab/internal/vec"
)

// Derivative is the right-hand side of dy/dt = f(y, t). It must behave as a
// pure function: a rejected attempt may evaluate the same (y, t) again and
// expects the same answer.
type Derivative[V vec.Vector[V]] func(y V, t float64) V

// Stats counts the work performed by one integration call. With an s-stage
// FSAL tableau, Evals is exactly 1 + (s-1) * (Accepted + Rejected).
type Stats struct {
	Accepted int     // accepted steps
	Rejected int     // rejected attempts
	Evals    int     // derivative evaluations
	LastStep float64 // step-size proposal left behind by the final attempt
}

// Integrate solves dy/dt = f(y, t) starting at times[0], emitting one sample
// per requested output time. times must be finite and non-decreasing; an
// empty request returns an empty result without ever calling f. The first
// sample (and any leading duplicates of times[0]) is the initial condition,
// bit for bit. Samples between step ends come from the tableau's dense
// output, so f is evaluated only as stepping demands, not per output time.
//
// On failure the sample slice is nil, never silently truncated, and the
// error is a *StepError wrapping one of the package sentinels. Stats are
// returned in every case, counting work up to the failure.
func Integrate[V vec.Vector[V]](times []float64, y0 V, f Derivative[V], opts Options) ([]V, Stats, error) {
	var stats Stats
	if len(times) == 0 {
		return []V{}, stats, nil
	}
	if !finite(opts.Tol) || opts.Tol <= 0 {
		return nil, stats, ErrTolerance
	}
	for i, tv := range times {
		if !finite(tv) || (i > 0 && tv < times[i-1]) {
			return nil, stats, ErrUnorderedTimes
		}
	}
	opts = opts.withDefaults()
	if err := opts.Tableau.Validate(); err != nil {
		return nil, stats, err
	}

	out := make([]V, len(times))
	out[0] = y0
	cursor := 1
	for cursor < len(times) && times[cursor] == times[0] {
		out[cursor] = y0
		cursor++
	}
	if cursor == len(times) {
		return out, stats, nil
	}

	h0 := opts.InitialStep
	if h0 <= 0 {
		h0 = initialStep(times)
	}
	st := newStepper(f, times[0], h0, y0, opts)
	if err := st.seed(); err != nil {
		return nil, st.stats, &StepError{Step: 0, Time: times[0], Err: err}
	}

	for cursor < len(times) {
		accepted, err := st.attempt()
		if accepted {
			for cursor < len(times) && times[cursor] < st.t {
				out[cursor] = st.interpolate(times[cursor])
				cursor++
			}
			// A time landing exactly on the new step start is the step
			// state itself (sigma = 0), copied rather than interpolated.
			for cursor < len(times) && times[cursor] == st.t {
				out[cursor] = st.y
				cursor++
			}
		}
		if err != nil && cursor < len(times) {
			st.stats.LastStep = st.h
			return nil, st.stats, &StepError{Step: st.stats.Accepted + st.stats.Rejected, Time: st.t, Err: err}
		}
	}
	st.stats.LastStep = st.h
	return out, st.stats, nil
}

// initialStep derives a first step size from the grid span. The adaptive
// controller corrects it within a step or two.
func initialStep(times []float64) float64 {
	span := times[len(times)-1] - times[0]
	return span / (10.0 * float64(len(times)-1))
}
