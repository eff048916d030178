// Package water evaluates thermodynamic properties of ordinary water
// following the IAPWS Industrial Formulation 1997 (IF97).
//
// Coverage is the forward equations of the liquid region (region 1), the
// steam region (region 2) and the saturation line (region 4), plus the
// IAPWS 2008 industrial correlation for dynamic viscosity. The dense
// supercritical region 3 and the high temperature region 5 are detected
// but not evaluated; [Props] reports them via [ErrRegionUnsupported].
//
// Pressures are in MPa, temperatures in K, specific volume in m3/kg,
// enthalpy and entropy in kJ/kg and kJ/(kg K).
package water
