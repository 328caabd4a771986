// Package derive computes everything the presentation surfaces show for a
// given step of a plan: active attachments, exact-step and accumulated IPR,
// inter-tooth reduction markers, the per-step breakdown table, the IPR
// timeline and the tooth highlight state.
//
// All functions are pure and total over every integer step. A step outside
// [0, plan.MaxBound()] simply matches nothing.
package derive
