// Package analysis inspects sampled trajectories: frequency content,
// summary statistics, and chaos indicators.
package analysis

import (
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns single-sided spectral magnitudes of a uniformly
// sampled series, Hann windowed to limit leakage.
func PowerSpectrum(samples []float64) []float64 {
	n := len(samples)
	if n < 2 {
		return nil
	}

	windowed := make([]float64, n)
	for i, v := range samples {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = v * w
	}

	spectrum := fft.FFTReal(windowed)
	ps := make([]float64, n/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps
}

// DominantFrequency returns the strongest non-DC frequency in cycles
// per time unit, given the sampling interval dt.
func DominantFrequency(samples []float64, dt float64) float64 {
	if dt <= 0 {
		return 0
	}
	ps := PowerSpectrum(samples)
	if len(ps) < 2 {
		return 0
	}
	idx := floats.MaxIdx(ps[1:]) + 1
	return float64(idx) / (float64(len(samples)) * dt)
}

// Summary holds basic statistics of one component.
type Summary struct {
	Min, Max  float64
	Mean, Std float64
}

func Summarize(samples []float64) Summary {
	if len(samples) == 0 {
		return Summary{}
	}
	return Summary{
		Min:  floats.Min(samples),
		Max:  floats.Max(samples),
		Mean: stat.Mean(samples, nil),
		Std:  stat.StdDev(samples, nil),
	}
}
