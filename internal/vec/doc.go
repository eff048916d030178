// Package vec defines the state-vector contract the solver integrates over.
//
// The package provides:
//
//   - [Vector]: generic constraint for fixed-dimension numeric states
//   - [Scalar]: one-dimensional state (a bare float64)
//   - [Vec2], [Vec3], [Vec4]: stack-allocated fixed-width states
//   - [VecN]: slice-backed state for runtime-sized systems
//
// All implementations are value types: arithmetic returns new values and
// nothing is shared between integrations. The constraint is self-referential
// (Vector[V] with V a type parameter) so the solver's stage loop is
// monomorphized per state type instead of dispatching through an interface
// value.
package vec
