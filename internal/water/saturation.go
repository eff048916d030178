package water

import (
	"fmt"
	"math"
)

// Region 4 is the saturation line, a quadratic in the transformed
// variables beta = ps^0.25 and theta (IF97 eqs. 29-31). The same ten
// coefficients serve both directions, so SaturationPressure and
// SaturationTemperature are exact inverses of each other.

var region4N = []float64{
	0.11670521452767e4, -0.72421316703206e6, -0.17073846940092e2,
	0.12020824702470e5, -0.32325550322333e7, 0.14915108613530e2,
	-0.48232657361591e4, 0.40511340542057e6, -0.23855557567849,
	0.65017534844798e3,
}

func satPressure(T float64) float64 {
	n := region4N
	theta := T + n[8]/(T-n[9])
	a := theta*theta + n[0]*theta + n[1]
	b := n[2]*theta*theta + n[3]*theta + n[4]
	c := n[5]*theta*theta + n[6]*theta + n[7]
	x := 2 * c / (-b + math.Sqrt(b*b-4*a*c))
	return x * x * x * x
}

func satTemperature(p float64) float64 {
	n := region4N
	beta := math.Pow(p, 0.25)
	e := beta*beta + n[2]*beta + n[5]
	f := n[0]*beta*beta + n[3]*beta + n[6]
	g := n[1]*beta*beta + n[4]*beta + n[7]
	d := 2 * g / (-f - math.Sqrt(f*f-4*e*g))
	return (n[9] + d - math.Sqrt((n[9]+d)*(n[9]+d)-4*(n[8]+n[9]*d))) / 2
}

// SaturationPressure returns the vapor pressure in MPa for a temperature
// on the saturation line, valid from the triple point to the critical
// point (273.15 K to 647.096 K).
func SaturationPressure(T float64) (float64, error) {
	if !(T >= 273.15 && T <= criticalTemperature) {
		return 0, fmt.Errorf("%w: T=%g K outside saturation line", ErrOutOfRange, T)
	}
	return satPressure(T), nil
}

// SaturationTemperature returns the boiling temperature in K for a
// pressure between the triple point and the critical point.
func SaturationTemperature(p float64) (float64, error) {
	if !(p >= triplePointPressure && p <= criticalPressure) {
		return 0, fmt.Errorf("%w: p=%g MPa outside saturation line", ErrOutOfRange, p)
	}
	return satTemperature(p), nil
}
