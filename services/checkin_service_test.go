package services

import (
	"testing"

	"backend/models"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateCheckIn_CompletedDay(t *testing.T) {
	result, err := EvaluateCheckIn(10, 10, "")
	assert.NoError(t, err)
	assert.True(t, result.Completed)
	assert.False(t, result.CauseRequired)

	// overshooting still counts as complete
	result, err = EvaluateCheckIn(10, 12, "")
	assert.NoError(t, err)
	assert.True(t, result.Completed)
}

func TestEvaluateCheckIn_IncompleteNeedsCause(t *testing.T) {
	result, err := EvaluateCheckIn(10, 5, "")
	assert.NoError(t, err)
	assert.False(t, result.Completed)
	assert.True(t, result.CauseRequired)
}

func TestEvaluateCheckIn_IncompleteWithCause(t *testing.T) {
	result, err := EvaluateCheckIn(10, 5, models.CauseMaterial)
	assert.NoError(t, err)
	assert.False(t, result.Completed)
	assert.False(t, result.CauseRequired)
}

func TestEvaluateCheckIn_ZeroPlannedNeverCompletes(t *testing.T) {
	// a day without planned work cannot be "met", and needs no cause either
	result, err := EvaluateCheckIn(0, 5, "")
	assert.NoError(t, err)
	assert.False(t, result.Completed)
	assert.False(t, result.CauseRequired)

	result, err = EvaluateCheckIn(0, 0, "")
	assert.NoError(t, err)
	assert.False(t, result.Completed)
	assert.False(t, result.CauseRequired)
}

func TestEvaluateCheckIn_NegativeActual(t *testing.T) {
	_, err := EvaluateCheckIn(10, -1, "")
	assert.ErrorIs(t, err, ErrNegativeQuantity)
}

func TestEvaluateCheckIn_UnknownCause(t *testing.T) {
	_, err := EvaluateCheckIn(10, 5, "WEATHER")
	assert.ErrorIs(t, err, ErrUnknownCause)
}

func TestEvaluateCheckIn_AcceptsWholeTaxonomy(t *testing.T) {
	for _, code := range models.CauseCategories {
		_, err := EvaluateCheckIn(10, 5, code)
		assert.NoError(t, err, "cause %s", code)
	}
}
