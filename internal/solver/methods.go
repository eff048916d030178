package solver

// This file holds the built-in tableaux as literal constants. The rationals
// encode the order conditions of each method; rounding them degrades the
// convergence order, so they are kept exactly as published.

// DormandPrince returns the Dormand-Prince 5(4) pair, the classic adaptive
// method behind MATLAB's ode45. Seven stages, FSAL, with the standard C1
// quartic continuous extension as dense output.
//
// Reference: J.R. Dormand & P.J. Prince, "A family of embedded Runge-Kutta
// formulae", Journal of Computational and Applied Mathematics, 6 (1980)
// 19-26. Dense-output rows follow the continuous extension in Hairer,
// Norsett & Wanner, "Solving Ordinary Differential Equations I" (dopri5),
// expanded to monomial form.
func DormandPrince() *Tableau {
	return &Tableau{
		Name:       "dopri5",
		Stages:     7,
		Order:      5,
		DenseOrder: 5,
		C: []float64{
			0,
			1.0 / 5.0,
			3.0 / 10.0,
			4.0 / 5.0,
			8.0 / 9.0,
			1,
			1,
		},
		A: [][]float64{
			{},
			{1.0 / 5.0},
			{3.0 / 40.0, 9.0 / 40.0},
			{44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0},
			{19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0},
			{9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0},
			{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0},
		},
		B: []float64{
			5179.0 / 57600.0,
			0,
			7571.0 / 16695.0,
			393.0 / 640.0,
			-92097.0 / 339200.0,
			187.0 / 2100.0,
			1.0 / 40.0,
		},
		BHat: []float64{
			35.0 / 384.0,
			0,
			500.0 / 1113.0,
			125.0 / 192.0,
			-2187.0 / 6784.0,
			11.0 / 84.0,
			0,
		},
		P: [][]float64{
			{1, -8048581381.0 / 2820520608.0, 8663915743.0 / 2820520608.0, -12715105075.0 / 11282082432.0},
			{0, 0, 0, 0},
			{0, 131558114200.0 / 32700410799.0, -68118460800.0 / 10900136933.0, 87487479700.0 / 32700410799.0},
			{0, -1754552775.0 / 470086768.0, 14199869525.0 / 1410260304.0, -10690763975.0 / 1880347072.0},
			{0, 127303824393.0 / 49829197408.0, -318862633887.0 / 49829197408.0, 701980252875.0 / 199316789632.0},
			{0, -282668133.0 / 205662961.0, 2019193451.0 / 616988883.0, -1453857185.0 / 822651844.0},
			{0, 40617522.0 / 29380423.0, -110615467.0 / 29380423.0, 69997945.0 / 29380423.0},
		},
	}
}

// BogackiShampine returns the Bogacki-Shampine 3(2) pair (MATLAB's ode23).
// Four stages, FSAL, with the free cubic Hermite interpolant as dense
// output. Cheaper per step than Dormand-Prince; useful at loose tolerances.
//
// Reference: P. Bogacki & L.F. Shampine, "A 3(2) pair of Runge-Kutta
// formulas", Applied Mathematics Letters, 2 (1989) 321-325.
func BogackiShampine() *Tableau {
	return &Tableau{
		Name:       "bs32",
		Stages:     4,
		Order:      3,
		DenseOrder: 3,
		C: []float64{
			0,
			1.0 / 2.0,
			3.0 / 4.0,
			1,
		},
		A: [][]float64{
			{},
			{1.0 / 2.0},
			{0, 3.0 / 4.0},
			{2.0 / 9.0, 1.0 / 3.0, 4.0 / 9.0},
		},
		B: []float64{
			7.0 / 24.0,
			1.0 / 4.0,
			1.0 / 3.0,
			1.0 / 8.0,
		},
		BHat: []float64{
			2.0 / 9.0,
			1.0 / 3.0,
			4.0 / 9.0,
			0,
		},
		P: [][]float64{
			{1, -4.0 / 3.0, 5.0 / 9.0},
			{0, 1, -2.0 / 3.0},
			{0, 4.0 / 3.0, -8.0 / 9.0},
			{0, -1, 1},
		},
	}
}

// Tableaux lists the built-in methods by name.
func Tableaux() map[string]*Tableau {
	return map[string]*Tableau{
		"dopri5": DormandPrince(),
		"bs32":   BogackiShampine(),
	}
}
