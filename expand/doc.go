// Package expand derives additional query terms from external synonym and
// word-vector collaborators.
//
// Expansion operates on raw surface tokens, not normalized ones: stemming a
// token before a dictionary lookup would miss entries. The caller normalizes
// the expanded text afterwards and unions it with the normalized original
// query terms for keyword scoring.
//
// All collaborator lookups are best-effort. Failures contribute zero terms
// and are reported only as debug diagnostics, never as errors.
package expand
