package services

import (
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
)

func TestNextPlanStatus_HappyPath(t *testing.T) {
	status, err := NextPlanStatus(models.PlanStatusPlanned, models.EventSubmitToProduction, 3)
	assert.NoError(t, err)
	assert.Equal(t, models.PlanStatusAwaitingAcceptance, status)

	status, err = NextPlanStatus(status, models.EventAccept, 3)
	assert.NoError(t, err)
	assert.Equal(t, models.PlanStatusAccepted, status)

	status, err = NextPlanStatus(status, models.EventStartExecution, 3)
	assert.NoError(t, err)
	assert.Equal(t, models.PlanStatusInExecution, status)

	status, err = NextPlanStatus(status, models.EventComplete, 3)
	assert.NoError(t, err)
	assert.Equal(t, models.PlanStatusCompleted, status)
}

func TestNextPlanStatus_RejectReturnsToPlanning(t *testing.T) {
	status, err := NextPlanStatus(models.PlanStatusAwaitingAcceptance, models.EventReject, 3)
	assert.NoError(t, err)
	assert.Equal(t, models.PlanStatusPlanned, status)

	status, err = NextPlanStatus(models.PlanStatusAwaitingAcceptance, models.EventReturnToPlanning, 3)
	assert.NoError(t, err)
	assert.Equal(t, models.PlanStatusPlanned, status)
}

func TestNextPlanStatus_ExecutionWithoutAcceptance(t *testing.T) {
	// direct start from PLANNED is allowed; acceptance is optional
	status, err := NextPlanStatus(models.PlanStatusPlanned, models.EventStartExecution, 2)
	assert.NoError(t, err)
	assert.Equal(t, models.PlanStatusInExecution, status)
}

func TestNextPlanStatus_SubmitFromExecutionRejected(t *testing.T) {
	_, err := NextPlanStatus(models.PlanStatusInExecution, models.EventSubmitToProduction, 3)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestNextPlanStatus_IllegalTransitions(t *testing.T) {
	cases := []struct {
		current string
		event   string
	}{
		{models.PlanStatusPlanned, models.EventAccept},
		{models.PlanStatusPlanned, models.EventReject},
		{models.PlanStatusPlanned, models.EventComplete},
		{models.PlanStatusAccepted, models.EventSubmitToProduction},
		{models.PlanStatusAccepted, models.EventAccept},
		{models.PlanStatusAwaitingAcceptance, models.EventStartExecution},
		{models.PlanStatusCompleted, models.EventStartExecution},
		{models.PlanStatusCompleted, models.EventComplete},
	}
	for _, tc := range cases {
		_, err := NextPlanStatus(tc.current, tc.event, 3)
		assert.ErrorIs(t, err, ErrIllegalTransition, "%s from %s", tc.event, tc.current)
	}
}

func TestNextPlanStatus_EmptyPlanCannotStart(t *testing.T) {
	_, err := NextPlanStatus(models.PlanStatusAccepted, models.EventStartExecution, 0)
	assert.ErrorIs(t, err, ErrEmptyPlan)
}

func TestNextPlanStatus_UnknownEvent(t *testing.T) {
	_, err := NextPlanStatus(models.PlanStatusPlanned, "ARCHIVE", 3)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestAllowsStructuralEdits(t *testing.T) {
	assert.True(t, AllowsStructuralEdits(models.PlanStatusPlanned))
	assert.False(t, AllowsStructuralEdits(models.PlanStatusAwaitingAcceptance))
	assert.False(t, AllowsStructuralEdits(models.PlanStatusAccepted))
	assert.False(t, AllowsStructuralEdits(models.PlanStatusInExecution))
	assert.False(t, AllowsStructuralEdits(models.PlanStatusCompleted))
}
