// Package shared holds code used by several internal packages that does not
// belong to any single layer of the statistics service.
//
// The testutil subpackage provides a capturing slog handler and helpers that
// write small trade and closing price tables to a temporary directory. It is
// imported from _test.go files only.
package shared
