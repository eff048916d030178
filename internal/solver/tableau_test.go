package solver

import (
	"math"
	"testing"
)

func TestBuiltinTableauxValidate(t *testing.T) {
	for name, tab := range Tableaux() {
		if err := tab.Validate(); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestOrderConditions(t *testing.T) {
	for name, tab := range Tableaux() {
		sumB := 0.0
		sumBHat := 0.0
		for i := 0; i < tab.Stages; i++ {
			sumB += tab.B[i]
			sumBHat += tab.BHat[i]
		}
		if math.Abs(sumB-1) > 1e-12 {
			t.Errorf("%s: error weights sum to %v, want 1", name, sumB)
		}
		if math.Abs(sumBHat-1) > 1e-12 {
			t.Errorf("%s: advancing weights sum to %v, want 1", name, sumBHat)
		}

		// Row-sum consistency: each node equals its coupling row sum.
		for i, row := range tab.A {
			rowSum := 0.0
			for _, a := range row {
				rowSum += a
			}
			if math.Abs(rowSum-tab.C[i]) > 1e-9 {
				t.Errorf("%s: coupling row %d sums to %v, want node %v", name, i, rowSum, tab.C[i])
			}
		}
	}
}

func TestDenseRowsInterpolateEndpoints(t *testing.T) {
	for name, tab := range Tableaux() {
		for i, row := range tab.P {
			// b_i(1) must reproduce the advancing weight, so the dense
			// interpolant is continuous with the accepted solution.
			atOne := 0.0
			for _, c := range row {
				atOne += c
			}
			if math.Abs(atOne-tab.BHat[i]) > 1e-12 {
				t.Errorf("%s: dense row %d sums to %v, want %v", name, i, atOne, tab.BHat[i])
			}

			// The slope at sigma=0 is stage 0, and at sigma=1 the FSAL
			// stage, making the interpolant C1 across steps.
			slope0 := 0.0
			if len(row) > 0 {
				slope0 = row[0]
			}
			want0 := 0.0
			if i == 0 {
				want0 = 1
			}
			if math.Abs(slope0-want0) > 1e-12 {
				t.Errorf("%s: dense row %d slope at 0 is %v, want %v", name, i, slope0, want0)
			}

			slope1 := 0.0
			for j, c := range row {
				slope1 += float64(j+1) * c
			}
			want1 := 0.0
			if i == tab.Stages-1 {
				want1 = 1
			}
			if math.Abs(slope1-want1) > 1e-12 {
				t.Errorf("%s: dense row %d slope at 1 is %v, want %v", name, i, slope1, want1)
			}
		}
	}
}

func TestValidateRejectsBrokenTableaux(t *testing.T) {
	breakers := map[string]func(*Tableau){
		"short nodes":      func(tab *Tableau) { tab.C = tab.C[:2] },
		"short weights":    func(tab *Tableau) { tab.B = tab.B[:3] },
		"ragged coupling":  func(tab *Tableau) { tab.A[3] = tab.A[3][:1] },
		"missing dense":    func(tab *Tableau) { tab.P = nil },
		"nonzero first":    func(tab *Tableau) { tab.C[0] = 0.5 },
		"non-FSAL node":    func(tab *Tableau) { tab.C[tab.Stages-1] = 0.5 },
		"non-FSAL weights": func(tab *Tableau) { tab.A[tab.Stages-1][0] += 1e-3 },
		"fed-back stage":   func(tab *Tableau) { tab.BHat[tab.Stages-1] = 0.1 },
	}
	for name, corrupt := range breakers {
		tab := DormandPrince()
		corrupt(tab)
		if err := tab.Validate(); err == nil {
			t.Errorf("%s: expected validation error", name)
		}
	}
}
