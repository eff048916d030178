package solver

import "fmt"

// Tableau holds the coefficients of one embedded Runge-Kutta pair together
// with its dense-output polynomials. Instances are immutable data; the
// stepper and sampler read dimensions from the slices and hard-code nothing.
//
// The weight convention is asymmetric on purpose: BHat (higher order)
// advances the solution, B (lower order) is used only inside the error
// estimate. Swapping the two silently changes the method's effective order.
//
// Only FSAL pairs are supported: the last coupling row must equal BHat and
// the last node must be 1, so the final stage of an accepted step is the
// first stage of the next.
type Tableau struct {
	Name       string
	Stages     int
	Order      int         // consistency order of the advancing solution
	DenseOrder int         // consistency order of the dense interpolant
	C          []float64   // node offsets, len Stages
	A          [][]float64 // coupling coefficients, row i holds i entries
	B          []float64   // lower-order weights (error estimate only)
	BHat       []float64   // higher-order weights (advance the solution)
	P          [][]float64 // dense-output rows: b_i(s) = sum_j P[i][j]*s^(j+1)
}

// Validate checks the structural invariants of the tableau.
func (tab *Tableau) Validate() error {
	if tab.Stages < 2 {
		return fmt.Errorf("tableau %s: need at least two stages", tab.Name)
	}
	if len(tab.C) != tab.Stages {
		return fmt.Errorf("tableau %s: %d nodes for %d stages", tab.Name, len(tab.C), tab.Stages)
	}
	if len(tab.B) != tab.Stages || len(tab.BHat) != tab.Stages {
		return fmt.Errorf("tableau %s: weight lengths must equal %d stages", tab.Name, tab.Stages)
	}
	if len(tab.A) != tab.Stages {
		return fmt.Errorf("tableau %s: %d coupling rows for %d stages", tab.Name, len(tab.A), tab.Stages)
	}
	for i, row := range tab.A {
		if len(row) != i {
			return fmt.Errorf("tableau %s: coupling row %d must have %d entries", tab.Name, i, i)
		}
	}
	if len(tab.P) != tab.Stages {
		return fmt.Errorf("tableau %s: %d dense rows for %d stages", tab.Name, len(tab.P), tab.Stages)
	}
	if tab.Order < 1 || tab.DenseOrder < 1 {
		return fmt.Errorf("tableau %s: orders must be positive", tab.Name)
	}
	if tab.C[0] != 0 {
		return fmt.Errorf("tableau %s: first node must be 0", tab.Name)
	}
	if tab.C[tab.Stages-1] != 1 {
		return fmt.Errorf("tableau %s: last node must be 1 for FSAL reuse", tab.Name)
	}
	if tab.BHat[tab.Stages-1] != 0 {
		return fmt.Errorf("tableau %s: last advancing weight must be 0 for FSAL reuse", tab.Name)
	}
	for j, w := range tab.A[tab.Stages-1] {
		if w != tab.BHat[j] {
			return fmt.Errorf("tableau %s: last coupling row must equal the advancing weights", tab.Name)
		}
	}
	return nil
}
