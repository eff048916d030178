package water

import "math"

// Dynamic viscosity per the IAPWS 2008 release, in its industrial form
// without the critical enhancement. The correlation works in reduced
// density and temperature; Viscosity obtains the density from the IF97
// equations first.

var visc0 = []float64{1.67752, 2.20462, 0.6366564, -0.241605}

var visc1 = [6][7]float64{
	{5.20094e-1, 2.22531e-1, -2.81378e-1, 1.61913e-1, -3.25372e-2, 0, 0},
	{8.50895e-2, 9.99115e-1, -9.06851e-1, 2.57399e-1, 0, 0, 0},
	{-1.08374, 1.88797, -7.72479e-1, 0, 0, 0, 0},
	{-2.89555e-1, 1.26613, -4.89837e-1, 0, 6.98452e-2, 0, -4.35673e-3},
	{0, 0, -2.57040e-1, 0, 0, 8.72102e-3, 0},
	{0, 1.20573e-1, 0, 0, 0, 0, -5.93264e-4},
}

// etaRhoT returns the viscosity in Pa s from density in kg/m3 and
// temperature in K.
func etaRhoT(rho, T float64) float64 {
	tr := T / criticalTemperature
	rr := rho / criticalDensity

	denom := 0.0
	for i, h := range visc0 {
		denom += h / math.Pow(tr, float64(i))
	}
	eta0 := 100 * math.Sqrt(tr) / denom

	sum := 0.0
	ti := 1.0
	for i := 0; i < 6; i++ {
		inner := 0.0
		rj := 1.0
		for j := 0; j < 7; j++ {
			inner += visc1[i][j] * rj
			rj *= rr - 1
		}
		sum += ti * inner
		ti *= 1/tr - 1
	}
	eta1 := math.Exp(rr * sum)

	return eta0 * eta1 * 1e-6
}

// Viscosity returns the dynamic viscosity in Pa s at a (p, T) point in
// region 1 or 2.
func Viscosity(p, T float64) (float64, error) {
	pr, err := Props(p, T)
	if err != nil {
		return 0, err
	}
	return etaRhoT(pr.Density(), T), nil
}
