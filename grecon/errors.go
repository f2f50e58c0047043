package grecon

import "errors"

var (
	// ErrIncompleteConceptSet is reported by Result.Verify when relation cells
	// remain uncovered, which means the concepts passed to Cover were not the
	// complete set of formal concepts of the context.
	ErrIncompleteConceptSet = errors.New("grecon: concept set does not cover the context")

	// ErrContextTooLarge is returned when objects*attributes exceeds the
	// 32-bit cell id space of the coverage bitmaps.
	ErrContextTooLarge = errors.New("grecon: context has more than 2^32 cells")
)
