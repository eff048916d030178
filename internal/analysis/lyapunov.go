package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/odelab/internal/dataset"
	"github.com/san-kum/odelab/internal/fit"
	"github.com/san-kum/odelab/internal/solver"
	"github.com/san-kum/odelab/internal/systems"
	"github.com/san-kum/odelab/internal/vec"
)

// Separations beyond this are treated as saturated at attractor scale
// and excluded from the fit.
const saturation = 1e-2

// LyapunovExponent estimates the largest Lyapunov exponent from the
// divergence of two trajectories started a perturbation apart. The
// exponent is the fitted slope of log separation against time, using
// only the window before the separation saturates. Positive values
// indicate chaos.
func LyapunovExponent(sys systems.System, y0 vec.VecN, span float64, samples int, perturbation, tol float64) (float64, error) {
	if samples < 8 {
		return 0, fmt.Errorf("analysis: need at least 8 samples, have %d", samples)
	}
	if perturbation <= 0 {
		perturbation = 1e-8
	}
	if tol <= 0 {
		tol = 1e-9
	}

	times := dataset.Uniform(0, span, samples)
	opts := solver.DefaultOptions()
	opts.Tol = tol

	base, _, err := solver.Integrate(times, y0.Clone(), sys.Derive, opts)
	if err != nil {
		return 0, err
	}

	perturbed := y0.Clone()
	perturbed[0] += perturbation
	shadow, _, err := solver.Integrate(times, perturbed, sys.Derive, opts)
	if err != nil {
		return 0, err
	}

	ts := make([]float64, 0, len(times))
	logs := make([]float64, 0, len(times))
	for i := 1; i < len(times); i++ {
		sep := base[i].Sub(shadow[i]).InfNorm()
		if sep <= 0 {
			continue
		}
		if sep > saturation {
			break
		}
		ts = append(ts, times[i])
		logs = append(logs, math.Log(sep))
	}
	if len(ts) < 2 {
		return 0, fmt.Errorf("analysis: separation saturated before a slope could be fitted")
	}

	line, err := fit.Polyfit(ts, logs, 1)
	if err != nil {
		return 0, err
	}
	return line.Coeffs[1], nil
}
