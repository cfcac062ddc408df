package domain

import (
	"errors"
	"fmt"
)

// ErrCurveOutOfRange is matched by every CurveIndexError.
var ErrCurveOutOfRange = errors.New("curve index out of range")

// CurveIndexError reports a curve index outside [0, Count).
type CurveIndexError struct {
	Index int
	Count int
}

func (e *CurveIndexError) Error() string {
	return fmt.Sprintf("curve %d requested, file has %d", e.Index, e.Count)
}

func (e *CurveIndexError) Unwrap() error { return ErrCurveOutOfRange }
