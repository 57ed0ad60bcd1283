package services

import (
	"errors"

	"backend/models"
)

// Validation failures surfaced by check-in evaluation.
var (
	ErrNegativeQuantity = errors.New("actual quantity cannot be negative")
	ErrUnknownCause     = errors.New("unknown cause code")
)

// CheckInResult is the outcome of evaluating one day's actual against the
// planned slot.
type CheckInResult struct {
	Completed     bool
	CauseRequired bool
}

// EvaluateCheckIn applies the commitment rule: a day is complete only when
// planned work existed and the actual met it. An incomplete day with planned
// work must carry a cause of failure before the record commits.
func EvaluateCheckIn(plannedQty, actualQty float64, causeCode string) (CheckInResult, error) {
	if actualQty < 0 {
		return CheckInResult{}, ErrNegativeQuantity
	}
	if causeCode != "" && !models.IsValidCause(causeCode) {
		return CheckInResult{}, ErrUnknownCause
	}

	completed := plannedQty > 0 && actualQty >= plannedQty
	if completed {
		return CheckInResult{Completed: true}, nil
	}

	if plannedQty > 0 && causeCode == "" {
		return CheckInResult{CauseRequired: true}, nil
	}
	return CheckInResult{}, nil
}
