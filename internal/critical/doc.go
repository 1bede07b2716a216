// Package critical locates and classifies the critical points of a function
// of one variable.
//
// A critical point is a root of the first derivative. Each one is classified
// by the sign of the second derivative there:
//
//   - positive: [Minima]
//   - negative: [Maxima]
//   - zero: [SaddlePoint]
//
// The zero case follows the simple convention, so x**4 reports a
// saddle point at 0 even though it is a minimum.
//
// Candidates that are not real (for example the roots of x**2 + 1) are
// handled by [Policy]: [PolicySkip] records them in [Result.Skipped], while
// [PolicyStrict] fails with [ErrIndeterminate] whenever a concavity cannot be
// ordered against zero.
package critical
