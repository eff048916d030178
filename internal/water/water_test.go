package water

import (
	"errors"
	"math"
	"testing"
)

func relDiff(got, want float64) float64 {
	return math.Abs(got-want) / math.Abs(want)
}

// Reference values from the IF97 release, tables 5 and 15.
func TestRegion1Verification(t *testing.T) {
	cases := []struct {
		p, T        float64
		v, h, s, cp float64
	}{
		{3, 300, 0.100215168e-2, 0.115331273e3, 0.392294792, 0.417301218e1},
		{80, 300, 0.971180894e-3, 0.184142828e3, 0.368563852, 0.401008987e1},
		{3, 500, 0.120241800e-2, 0.975542239e3, 0.258041912e1, 0.465580682e1},
	}
	for _, c := range cases {
		pr, err := Props(c.p, c.T)
		if err != nil {
			t.Fatalf("Props(%v, %v): %v", c.p, c.T, err)
		}
		if pr.Region != 1 {
			t.Errorf("Props(%v, %v) region = %d, want 1", c.p, c.T, pr.Region)
		}
		if relDiff(pr.Volume, c.v) > 1e-8 {
			t.Errorf("v(%v, %v) = %.9e, want %.9e", c.p, c.T, pr.Volume, c.v)
		}
		if relDiff(pr.Enthalpy, c.h) > 1e-8 {
			t.Errorf("h(%v, %v) = %.9e, want %.9e", c.p, c.T, pr.Enthalpy, c.h)
		}
		if relDiff(pr.Entropy, c.s) > 1e-8 {
			t.Errorf("s(%v, %v) = %.9e, want %.9e", c.p, c.T, pr.Entropy, c.s)
		}
		if relDiff(pr.Cp, c.cp) > 1e-8 {
			t.Errorf("cp(%v, %v) = %.9e, want %.9e", c.p, c.T, pr.Cp, c.cp)
		}
	}
}

func TestRegion2Verification(t *testing.T) {
	cases := []struct {
		p, T        float64
		v, h, s, cp float64
	}{
		{0.0035, 300, 0.394913866e2, 0.254991145e4, 0.852238967e1, 0.191300162e1},
		{0.0035, 700, 0.923015898e2, 0.333568375e4, 0.101749996e2, 0.208141274e1},
		{30, 700, 0.542946619e-2, 0.263149474e4, 0.517540298e1, 0.103505092e2},
	}
	for _, c := range cases {
		pr, err := Props(c.p, c.T)
		if err != nil {
			t.Fatalf("Props(%v, %v): %v", c.p, c.T, err)
		}
		if pr.Region != 2 {
			t.Errorf("Props(%v, %v) region = %d, want 2", c.p, c.T, pr.Region)
		}
		if relDiff(pr.Volume, c.v) > 1e-8 {
			t.Errorf("v(%v, %v) = %.9e, want %.9e", c.p, c.T, pr.Volume, c.v)
		}
		if relDiff(pr.Enthalpy, c.h) > 1e-8 {
			t.Errorf("h(%v, %v) = %.9e, want %.9e", c.p, c.T, pr.Enthalpy, c.h)
		}
		if relDiff(pr.Entropy, c.s) > 1e-8 {
			t.Errorf("s(%v, %v) = %.9e, want %.9e", c.p, c.T, pr.Entropy, c.s)
		}
		if relDiff(pr.Cp, c.cp) > 1e-8 {
			t.Errorf("cp(%v, %v) = %.9e, want %.9e", c.p, c.T, pr.Cp, c.cp)
		}
	}
}

func TestSaturationVerification(t *testing.T) {
	psCases := []struct{ T, ps float64 }{
		{300, 0.353658941e-2},
		{500, 0.263889776e1},
		{600, 0.123443146e2},
	}
	for _, c := range psCases {
		ps, err := SaturationPressure(c.T)
		if err != nil {
			t.Fatalf("SaturationPressure(%v): %v", c.T, err)
		}
		if relDiff(ps, c.ps) > 1e-8 {
			t.Errorf("ps(%v) = %.9e, want %.9e", c.T, ps, c.ps)
		}
	}
	tsCases := []struct{ p, Ts float64 }{
		{0.1, 0.372755919e3},
		{1, 0.453035632e3},
		{10, 0.584149488e3},
	}
	for _, c := range tsCases {
		ts, err := SaturationTemperature(c.p)
		if err != nil {
			t.Fatalf("SaturationTemperature(%v): %v", c.p, err)
		}
		if relDiff(ts, c.Ts) > 1e-8 {
			t.Errorf("Ts(%v) = %.9e, want %.9e", c.p, ts, c.Ts)
		}
	}
}

func TestSaturationRoundTrip(t *testing.T) {
	for _, T := range []float64{280, 320, 373.15, 450, 550, 640} {
		ps := satPressure(T)
		back := satTemperature(ps)
		if math.Abs(back-T) > 1e-7 {
			t.Errorf("Ts(ps(%v)) = %v, drift %v", T, back, back-T)
		}
	}
}

func TestB23Boundary(t *testing.T) {
	p := b23Pressure(623.15)
	if relDiff(p, 0.165291643e2) > 1e-8 {
		t.Errorf("b23Pressure(623.15) = %.9e, want 1.65291643e1", p)
	}
	if T := b23Temperature(p); math.Abs(T-623.15) > 1e-7 {
		t.Errorf("b23Temperature(%v) = %v, want 623.15", p, T)
	}
}

func TestRegionDispatch(t *testing.T) {
	cases := []struct {
		p, T   float64
		region int
	}{
		{3, 300, 1},       // compressed liquid
		{0.0035, 300, 2},  // low pressure steam
		{0.1, 400, 2},     // superheated steam
		{30, 650, 3},      // above B23
		{10, 650, 2},      // below B23
		{40, 1100, 5},     // high temperature
	}
	for _, c := range cases {
		region, err := Region(c.p, c.T)
		if err != nil {
			t.Fatalf("Region(%v, %v): %v", c.p, c.T, err)
		}
		if region != c.region {
			t.Errorf("Region(%v, %v) = %d, want %d", c.p, c.T, region, c.region)
		}
	}
}

func TestUnsupportedRegions(t *testing.T) {
	if _, err := Props(30, 650); !errors.Is(err, ErrRegionUnsupported) {
		t.Errorf("Props in region 3: err = %v, want ErrRegionUnsupported", err)
	}
	if _, err := Props(40, 1100); !errors.Is(err, ErrRegionUnsupported) {
		t.Errorf("Props in region 5: err = %v, want ErrRegionUnsupported", err)
	}
}

func TestOutOfRange(t *testing.T) {
	bad := []struct{ p, T float64 }{
		{-1, 300},
		{0, 300},
		{120, 300},
		{3, 200},
		{3, 2500},
		{80, 1200}, // region 5 tops out at 50 MPa
	}
	for _, c := range bad {
		if _, err := Props(c.p, c.T); !errors.Is(err, ErrOutOfRange) {
			t.Errorf("Props(%v, %v): err = %v, want ErrOutOfRange", c.p, c.T, err)
		}
	}
	if _, err := SaturationPressure(700); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SaturationPressure(700): err = %v, want ErrOutOfRange", err)
	}
	if _, err := SaturationTemperature(30); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("SaturationTemperature(30): err = %v, want ErrOutOfRange", err)
	}
}

// Reference values from the IAPWS 2008 viscosity release, table 4.
func TestViscosityVerification(t *testing.T) {
	cases := []struct{ T, rho, eta float64 }{
		{298.15, 998, 889.735100},
		{298.15, 1200, 1437.649467},
		{373.15, 1000, 307.883622},
		{433.15, 1, 14.538324},
		{433.15, 1000, 217.685358},
	}
	for _, c := range cases {
		got := etaRhoT(c.rho, c.T) * 1e6 // to uPa s
		if relDiff(got, c.eta) > 1e-8 {
			t.Errorf("eta(rho=%v, T=%v) = %.9f uPa s, want %.9f", c.rho, c.T, got, c.eta)
		}
	}
}

func TestViscosityAtStatePoint(t *testing.T) {
	eta, err := Viscosity(0.101325, 293.15)
	if err != nil {
		t.Fatalf("Viscosity: %v", err)
	}
	// Tap water at 20 C is close to 1.0 mPa s.
	if eta < 0.9e-3 || eta > 1.1e-3 {
		t.Errorf("Viscosity(1 atm, 20 C) = %v Pa s, want about 1e-3", eta)
	}
	if _, err := Viscosity(30, 650); !errors.Is(err, ErrRegionUnsupported) {
		t.Errorf("Viscosity in region 3: err = %v, want ErrRegionUnsupported", err)
	}
}

func TestDensityLiquid(t *testing.T) {
	rho, err := Density(0.101325, 277.15)
	if err != nil {
		t.Fatalf("Density: %v", err)
	}
	// Water near 4 C sits at its density maximum, just under 1000 kg/m3.
	if rho < 999 || rho > 1001 {
		t.Errorf("Density(1 atm, 4 C) = %v, want about 1000", rho)
	}
}
