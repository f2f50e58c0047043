package fcago

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch is returned when a matrix, label list, boolean slice
	// or selector does not agree with the size of the dimension it targets.
	ErrDimensionMismatch = errors.New("fcago: dimension mismatch")

	// ErrInvalidAxis is returned by Filter for an axis other than AxisObjects or AxisAttributes.
	ErrInvalidAxis = errors.New("fcago: axis must be 0 (objects) or 1 (attributes)")

	// ErrEmptyContext is returned by Density when the context has no objects or no attributes.
	ErrEmptyContext = errors.New("fcago: context has an empty dimension")

	// ErrDuplicateLabel is returned when a dimension is built from labels that are not unique.
	ErrDuplicateLabel = errors.New("fcago: duplicate label")

	// ErrUnknownLabel is returned when a label does not belong to the dimension.
	ErrUnknownLabel = errors.New("fcago: unknown label")

	// ErrIndexOutOfRange is returned when a position is outside [0, Len).
	ErrIndexOutOfRange = errors.New("fcago: index out of range")

	// ErrInvalidSnapshot is returned when a snapshot cannot be decoded.
	ErrInvalidSnapshot = errors.New("fcago: invalid snapshot")
)

// DimensionMismatchError describes a size disagreement on one axis.
//
// It matches ErrDimensionMismatch via errors.Is.
type DimensionMismatchError struct {
	Axis     Axis
	Expected int
	Actual   int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("fcago: dimension mismatch on %s axis: expected %d, got %d", e.Axis, e.Expected, e.Actual)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionMismatchError) Is(target error) bool { return target == ErrDimensionMismatch }

func mismatch(axis Axis, expected, actual int) error {
	return &DimensionMismatchError{Axis: axis, Expected: expected, Actual: actual}
}
