package extsort

import "errors"

var (
	// ErrInvalidBudget is returned by New when the budget is below one item.
	ErrInvalidBudget = errors.New("extsort: memory budget must be at least 1 item")

	// ErrCorruptSegment is returned when a spill segment cannot be decoded.
	ErrCorruptSegment = errors.New("extsort: corrupt segment")

	// ErrClosed is returned by Sort after Close.
	ErrClosed = errors.New("extsort: sorter closed")
)
