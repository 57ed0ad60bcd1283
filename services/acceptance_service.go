package services

import (
	"errors"
	"fmt"

	"backend/models"
)

// Transition failures.
var (
	// ErrIllegalTransition marks an event that is not allowed from the
	// plan's current status.
	ErrIllegalTransition = errors.New("illegal plan transition")
	// ErrEmptyPlan blocks execution start on a plan with no activities.
	ErrEmptyPlan = errors.New("plan has no activities")
)

// NextPlanStatus applies one acceptance event to the current plan status and
// returns the resulting status. totalActivities guards START_EXECUTION: an
// empty plan cannot enter execution.
func NextPlanStatus(current, eventType string, totalActivities int) (string, error) {
	switch eventType {
	case models.EventSubmitToProduction:
		if current != models.PlanStatusPlanned {
			return "", illegal(current, eventType)
		}
		return models.PlanStatusAwaitingAcceptance, nil

	case models.EventAccept:
		if current != models.PlanStatusAwaitingAcceptance {
			return "", illegal(current, eventType)
		}
		return models.PlanStatusAccepted, nil

	case models.EventReject, models.EventReturnToPlanning:
		if current != models.PlanStatusAwaitingAcceptance {
			return "", illegal(current, eventType)
		}
		return models.PlanStatusPlanned, nil

	case models.EventStartExecution:
		if current != models.PlanStatusPlanned && current != models.PlanStatusAccepted {
			return "", illegal(current, eventType)
		}
		if totalActivities <= 0 {
			return "", ErrEmptyPlan
		}
		return models.PlanStatusInExecution, nil

	case models.EventComplete:
		if current != models.PlanStatusInExecution {
			return "", illegal(current, eventType)
		}
		return models.PlanStatusCompleted, nil
	}
	return "", fmt.Errorf("%w: unknown event %s", ErrIllegalTransition, eventType)
}

// AllowsStructuralEdits reports whether planned activities may still be
// added, removed or have their planned slots edited. Only a plan sitting in
// PLANNED is structurally open; every later state takes actuals only.
func AllowsStructuralEdits(status string) bool {
	return status == models.PlanStatusPlanned
}

func illegal(current, eventType string) error {
	return fmt.Errorf("%w: %s not allowed from %s", ErrIllegalTransition, eventType, current)
}
