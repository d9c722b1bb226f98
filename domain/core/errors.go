package core

import (
	"errors"
)

// Domain-level sentinel errors shared across ports and adapters.
var (
	ErrNotFound         = errors.New("resource not found")
	ErrEmptyRecordView  = errors.New("record view is empty")
	ErrInconsistentCols = errors.New("record view has inconsistent column shape")
	ErrInsufficientData = errors.New("insufficient data for analysis")
)

// IsNotFoundError reports whether err is (or wraps) ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}
