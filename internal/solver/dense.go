package solver

// interpolate reconstructs the solution at tOut inside the most recently
// accepted step, using the tableau's dense-output polynomials over the saved
// stage derivatives. No derivative evaluations happen here.
//
// With sigma = (tOut - t) / h in [0, 1), each stage contributes
// b_i(sigma) = sum_j P[i][j] * sigma^(j+1), and the sample is
// y + h * sum_i b_i(sigma) * k[i]. Every b_i(0) is zero, so sampling at the
// step start returns the step's starting state exactly.
func (s *stepper[V]) interpolate(tOut float64) V {
	sigma := (tOut - s.prev.t) / s.prev.h
	phi := s.prev.y.Zero()
	for i, row := range s.tab.P {
		bi := 0.0
		pow := sigma
		for _, c := range row {
			bi += c * pow
			pow *= sigma
		}
		phi = phi.Add(s.k[i].Scale(bi))
	}
	return s.prev.y.Add(phi.Scale(s.prev.h))
}
