package domain

import "errors"

var (
	ErrIncompleteFixture = errors.New("fixture missing required fields")
	ErrInvalidOdd        = errors.New("odd is not a finite positive number")
	ErrNotFound          = errors.New("not found")
	ErrNoOdds            = errors.New("no odds offered")
	ErrLockHeld          = errors.New("lock already held")
)
