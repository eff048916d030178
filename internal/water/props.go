package water

import (
	"errors"
	"fmt"
)

const (
	specificGasConstant = 0.461526      // kJ/(kg K)
	criticalTemperature = 647.096       // K
	criticalPressure    = 22.064        // MPa
	criticalDensity     = 322.0         // kg/m3
	triplePointPressure = 611.212677e-6 // MPa
)

// ErrOutOfRange reports a state point outside the validity range of the
// formulation.
var ErrOutOfRange = errors.New("water: state out of range")

// ErrRegionUnsupported reports a state point that falls in a region the
// package detects but does not evaluate (regions 3 and 5).
var ErrRegionUnsupported = errors.New("water: region not supported")

// Properties bundles the state functions evaluated at one (p, T) point.
type Properties struct {
	Region   int
	Volume   float64 // m3/kg
	Enthalpy float64 // kJ/kg
	Entropy  float64 // kJ/(kg K)
	Cp       float64 // kJ/(kg K)
}

// Density returns the mass density in kg/m3.
func (pr Properties) Density() float64 { return 1 / pr.Volume }

// Region classifies a (p, T) point into an IF97 region number. Points on
// the saturation line count as region 1, points on the B23 line as
// region 2.
func Region(p, T float64) (int, error) {
	if !(p > 0 && p <= 100 && T >= 273.15 && T <= 2273.15) {
		return 0, fmt.Errorf("%w: p=%g MPa, T=%g K", ErrOutOfRange, p, T)
	}
	switch {
	case T > 1073.15:
		if p > 50 {
			return 0, fmt.Errorf("%w: p=%g MPa, T=%g K", ErrOutOfRange, p, T)
		}
		return 5, nil
	case T > 863.15:
		return 2, nil
	case T > 623.15:
		if p > b23Pressure(T) {
			return 3, nil
		}
		return 2, nil
	default:
		if p >= satPressure(T) {
			return 1, nil
		}
		return 2, nil
	}
}

// Props evaluates specific volume, enthalpy, entropy and isobaric heat
// capacity at a (p, T) point in region 1 or 2.
func Props(p, T float64) (Properties, error) {
	region, err := Region(p, T)
	if err != nil {
		return Properties{}, err
	}
	switch region {
	case 1:
		return props1(p, T), nil
	case 2:
		return props2(p, T), nil
	default:
		return Properties{}, fmt.Errorf("%w: region %d at p=%g MPa, T=%g K",
			ErrRegionUnsupported, region, p, T)
	}
}

// Density returns the mass density in kg/m3 at a (p, T) point.
func Density(p, T float64) (float64, error) {
	pr, err := Props(p, T)
	if err != nil {
		return 0, err
	}
	return pr.Density(), nil
}
