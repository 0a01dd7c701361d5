// Package validation holds the preflight checks a run performs before it
// starts streaming the assembly summary: the local input file must be a
// readable regular file, and the report directory must be creatable and
// writable.
package validation
