package domain

import "errors"

var (
	// ErrInvalidInput marks structurally invalid planning input.
	ErrInvalidInput = errors.New("invalid input")

	ErrPlanNotFound = errors.New("plan not found")
)
