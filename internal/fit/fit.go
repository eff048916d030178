// Package fit provides least squares polynomial fitting, used to turn
// tabulated equipment data (heat pump COP curves, loss coefficients)
// into smooth functions the models can evaluate.
package fit

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// ErrBadFit reports input that cannot produce a well posed fit.
var ErrBadFit = errors.New("fit: bad input")

// Polynomial holds coefficients in ascending power order, so
// Coeffs[i] multiplies x^i.
type Polynomial struct {
	Coeffs []float64
}

// Degree returns the polynomial degree.
func (p Polynomial) Degree() int { return len(p.Coeffs) - 1 }

// Eval evaluates the polynomial at x using Horner's scheme.
func (p Polynomial) Eval(x float64) float64 {
	acc := 0.0
	for i := len(p.Coeffs) - 1; i >= 0; i-- {
		acc = acc*x + p.Coeffs[i]
	}
	return acc
}

func (p Polynomial) String() string {
	var b strings.Builder
	for i, c := range p.Coeffs {
		if i > 0 {
			b.WriteString(" + ")
		}
		switch i {
		case 0:
			fmt.Fprintf(&b, "%.4g", c)
		case 1:
			fmt.Fprintf(&b, "%.4g*x", c)
		default:
			fmt.Fprintf(&b, "%.4g*x^%d", c, i)
		}
	}
	return b.String()
}

// Polyfit fits a polynomial of the given degree to the sample points in
// the least squares sense. It needs at least degree+1 points.
func Polyfit(xs, ys []float64, degree int) (Polynomial, error) {
	if len(xs) != len(ys) {
		return Polynomial{}, fmt.Errorf("%w: %d x values, %d y values", ErrBadFit, len(xs), len(ys))
	}
	if degree < 0 {
		return Polynomial{}, fmt.Errorf("%w: negative degree %d", ErrBadFit, degree)
	}
	if len(xs) < degree+1 {
		return Polynomial{}, fmt.Errorf("%w: %d points for degree %d", ErrBadFit, len(xs), degree)
	}
	for i := range xs {
		if math.IsNaN(xs[i]) || math.IsInf(xs[i], 0) || math.IsNaN(ys[i]) || math.IsInf(ys[i], 0) {
			return Polynomial{}, fmt.Errorf("%w: non-finite sample at index %d", ErrBadFit, i)
		}
	}

	rows, cols := len(xs), degree+1
	a := mat.NewDense(rows, cols, nil)
	for i, x := range xs {
		v := 1.0
		for j := 0; j < cols; j++ {
			a.Set(i, j, v)
			v *= x
		}
	}
	b := mat.NewDense(rows, 1, nil)
	for i, y := range ys {
		b.Set(i, 0, y)
	}

	var qr mat.QR
	qr.Factorize(a)
	x := mat.NewDense(cols, 1, nil)
	if err := qr.SolveTo(x, false, b); err != nil {
		return Polynomial{}, fmt.Errorf("%w: %v", ErrBadFit, err)
	}

	coeffs := make([]float64, cols)
	for j := range coeffs {
		coeffs[j] = x.At(j, 0)
	}
	return Polynomial{Coeffs: coeffs}, nil
}
