// Package table provides the expected side of a table diff: ordered column
// headers and ordered rows of string cells.
//
// Tables are append-only while being built and read-only afterwards. Once a
// table has been handed to the diff package it is frozen, so row indices
// recorded in a difference result always refer to the same rows.
//
// # Shape
//
//	headers: One | Two | Three
//	row 0:   a   | 1   | W
//	row 1:   b   | 2   | X
//
// Every row has exactly as many cells as there are headers. Violations are
// reported at construction time as *MalformedTableError; there is no deferred
// validation.
//
// Cells are opaque strings. No type inference happens here.
package table
