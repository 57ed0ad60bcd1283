package storage

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPromoteMiss(t *testing.T) {
	// row gone entirely: deleted between the caller's read and the lock
	assert.Equal(t, ErrInterferenceNotFound, classifyPromoteMiss(sql.ErrNoRows))

	// row exists but already left OPEN
	assert.Equal(t, ErrInterferenceNotOpen, classifyPromoteMiss(nil))

	// infrastructure failures are neither sentinel
	err := classifyPromoteMiss(errors.New("connection reset"))
	assert.NotEqual(t, ErrInterferenceNotFound, err)
	assert.NotEqual(t, ErrInterferenceNotOpen, err)
	assert.Error(t, err)
}
