package water

import "math"

// Region 1 covers compressed liquid water up to 623.15 K. The basic
// equation is a dimensionless Gibbs free energy gamma(pi, tau) with
// reducing values 16.53 MPa and 1386 K (IF97 eq. 7).

const (
	region1PStar = 16.53  // MPa
	region1TStar = 1386.0 // K
)

var region1I = []float64{
	0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 1, 1, 1, 1,
	2, 2, 2, 2, 2,
	3, 3, 3,
	4, 4, 4,
	5,
	8, 8,
	21, 23, 29, 30, 31, 32,
}

var region1J = []float64{
	-2, -1, 0, 1, 2, 3, 4, 5,
	-9, -7, -1, 0, 1, 3,
	-3, 0, 1, 3, 17,
	-4, 0, 6,
	-5, -2, 10,
	-8,
	-11, -6,
	-29, -31, -38, -39, -40, -41,
}

var region1N = []float64{
	0.14632971213167, -0.84548187169114, -0.37563603672040e1,
	0.33855169168385e1, -0.95791963387872, 0.15772038513228,
	-0.16616417199501e-1, 0.81214629983568e-3, 0.28319080123804e-3,
	-0.60706301565874e-3, -0.18990068218419e-1, -0.32529748770505e-1,
	-0.21841717175414e-1, -0.52838357969930e-4, -0.47184321073267e-3,
	-0.30001780793026e-3, 0.47661393906987e-4, -0.44141845330846e-5,
	-0.72694996297594e-15, -0.31679644845054e-4, -0.28270797985312e-5,
	-0.85205128120103e-9, -0.22425281908000e-5, -0.65171222895601e-6,
	-0.14341729937924e-12, -0.40516996860117e-6, -0.12734301741641e-8,
	-0.17424871230634e-9, -0.68762131295531e-18, 0.14478307828521e-19,
	0.26335781662795e-22, -0.11947622640071e-22, 0.18228094581404e-23,
	-0.93537087292458e-25,
}

// props1 evaluates the region 1 Gibbs equation and its first and second
// derivatives in a single pass over the coefficient table.
func props1(p, T float64) Properties {
	pi := p / region1PStar
	tau := region1TStar / T
	var g, gPi, gTau, gTauTau float64
	for i := range region1N {
		n, ii, jj := region1N[i], region1I[i], region1J[i]
		a := math.Pow(7.1-pi, ii)
		b := math.Pow(tau-1.222, jj)
		g += n * a * b
		gPi -= n * ii * math.Pow(7.1-pi, ii-1) * b
		gTau += n * a * jj * math.Pow(tau-1.222, jj-1)
		gTauTau += n * a * jj * (jj - 1) * math.Pow(tau-1.222, jj-2)
	}
	rt := specificGasConstant * T
	return Properties{
		Region:   1,
		Volume:   rt * pi * gPi / (p * 1000),
		Enthalpy: rt * tau * gTau,
		Entropy:  specificGasConstant * (tau*gTau - g),
		Cp:       -specificGasConstant * tau * tau * gTauTau,
	}
}
