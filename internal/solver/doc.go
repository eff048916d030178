// Package solver implements adaptive embedded Runge-Kutta integration with
// dense output.
//
// The package provides:
//
//   - [Tableau]: coefficient data describing one embedded method
//   - [DormandPrince]: the 5(4) pair used by default
//   - [Integrate]: the driver, generic over any [vec.Vector] state
//   - [Options]: tolerance and step-control configuration
//   - [Stats]: per-integration step and evaluation counters
//
// Step size adapts to a caller-supplied tolerance; accepted steps advance on
// the higher-order weights while the embedded lower-order weights feed only
// the error estimate. Requested output times inside an accepted step are
// reconstructed by the method's dense-output polynomials without extra
// derivative evaluations.
//
// # Example
//
//	times := []float64{0, 0.5, 1}
//	f := func(y vec.Scalar, t float64) vec.Scalar { return y }
//	out, stats, err := solver.Integrate(times, vec.Scalar(1), f, solver.DefaultOptions())
//
// # Thread Safety
//
// Each Integrate call owns its state exclusively; concurrent calls are safe
// as long as the derivative functions themselves are.
package solver
