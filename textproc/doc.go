// Package textproc provides the text normalization pipeline shared by the
// index build and query paths.
//
// Keyword scores are only meaningful when both sides of a comparison were
// normalized by the exact same function, so every caller goes through
// Normalize or Tokens; there is no configurable variant.
package textproc
