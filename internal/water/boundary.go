package water

import "math"

// The B23 line separates region 2 from the dense region 3 between
// 623.15 K and 863.15 K (IF97 eqs. 5-6).

var b23N = []float64{
	0.34805185628969e3, -0.11671859879975e1, 0.10192970039326e-2,
	0.57254459862746e3, 0.13918839778870e2,
}

// b23Pressure returns the boundary pressure in MPa for 623.15 <= T <= 863.15.
func b23Pressure(T float64) float64 {
	return b23N[0] + b23N[1]*T + b23N[2]*T*T
}

// b23Temperature returns the boundary temperature in K for
// 16.5292 <= p <= 100 MPa.
func b23Temperature(p float64) float64 {
	return b23N[3] + math.Sqrt((p-b23N[4])/b23N[2])
}
