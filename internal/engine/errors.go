// Package engine implements the rent lifecycle rules: tenant check-in
// and checkout, first-month proration, monthly rent generation, payment
// recording and dashboard aggregation.  Handlers stay thin; every
// multi-step mutation here runs inside a single store transaction.
package engine

import "errors"

// The three failure kinds every engine operation may surface.  Callers
// match with errors.Is; the concrete message carries the detail.
//
// ErrNotFound covers both "does not exist" and "exists but is owned by
// someone else".  The two are deliberately indistinguishable so that
// probing ids does not leak which resources exist.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidInput = errors.New("invalid input")
)
