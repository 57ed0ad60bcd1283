package storage

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pq.Error{Code: "23505"}
	assert.True(t, IsUniqueViolation(unique))

	// wrapped errors are unwrapped
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert failed: %w", unique)))

	fk := &pq.Error{Code: "23503"}
	assert.False(t, IsUniqueViolation(fk))

	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.False(t, IsUniqueViolation(nil))
}
