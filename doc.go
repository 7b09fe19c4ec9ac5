// Package calculator implements a line-oriented floating-point calculator.
//
// Each line is one expression or one assignment, e.g. "2 + 2" or
// "a = cos(pi)". A Session keeps variable bindings alive between lines, so
// "a = 1" followed by "a * 3" works the way a desk calculator would.
// Operators fold left at every precedence level, including '^', and a
// leading sign applies to the whole expression rather than to single terms.
//
// All arithmetic is IEEE double precision: dividing by zero yields an
// infinity or NaN rather than an error.
package calculator
