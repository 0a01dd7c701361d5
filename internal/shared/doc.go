// Package shared holds code used across packages that belongs to no single
// layer. Its testutil subpackage provides log capture and assembly summary
// fixtures for tests; it must never be imported from production code.
package shared
