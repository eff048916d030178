package solver

const (
	safety   = 0.9
	errFloor = 1e-30

	defaultTol       = 1e-6
	defaultMaxReject = 32
	defaultMinScale  = 0.2
	defaultMaxScale  = 10.0
)

// Options contains step-control configuration for one integration call.
type Options struct {
	Tol         float64  // error tolerance on the per-step infinity norm
	InitialStep float64  // first step size; <= 0 derives one from the time grid
	MaxReject   int      // consecutive rejections tolerated before giving up
	MinScale    float64  // lower bound on the per-attempt step-size factor
	MaxScale    float64  // upper bound on the per-attempt step-size factor
	Tableau     *Tableau // method to use; nil means DormandPrince
}

// DefaultOptions returns balanced settings suitable for most problems.
func DefaultOptions() Options {
	return Options{
		Tol:       defaultTol,
		MaxReject: defaultMaxReject,
		MinScale:  defaultMinScale,
		MaxScale:  defaultMaxScale,
		Tableau:   DormandPrince(),
	}
}

// FastOptions returns settings tuned for speed over accuracy: the cheaper
// 3(2) pair at a loose tolerance. Good for interactive exploration.
func FastOptions() Options {
	o := DefaultOptions()
	o.Tol = 1e-3
	o.Tableau = BogackiShampine()
	return o
}

// AccurateOptions returns settings for high-precision runs. Slower, with a
// larger rejection budget for sharp transients.
func AccurateOptions() Options {
	o := DefaultOptions()
	o.Tol = 1e-9
	o.MaxReject = 64
	return o
}

// withDefaults fills unset fields so the zero value of everything except
// Tol is usable.
func (o Options) withDefaults() Options {
	if o.MaxReject <= 0 {
		o.MaxReject = defaultMaxReject
	}
	if o.MinScale <= 0 {
		o.MinScale = defaultMinScale
	}
	if o.MaxScale <= 0 {
		o.MaxScale = defaultMaxScale
	}
	if o.Tableau == nil {
		o.Tableau = DormandPrince()
	}
	return o
}
