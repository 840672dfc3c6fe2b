package calendar

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClientErrorKinds(t *testing.T) {
	authErr := NewAuthenticationError("failed to sign in", errors.New("bad credentials"))
	listErr := NewRetrievalError("failed to list events", nil)
	insErr := NewInsertError("failed to create event", errors.New("quota exceeded"))

	assert.True(t, IsAuthenticationError(authErr))
	assert.False(t, IsAuthenticationError(listErr))

	assert.True(t, IsRetrievalError(listErr))
	assert.True(t, IsInsertError(insErr))
	assert.False(t, IsInsertError(errors.New("plain")))
}

func TestClientErrorWrapping(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := NewInsertError("failed to create event", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "insertError")
	assert.Contains(t, err.Error(), "failed to create event")

	// Kind checks see through additional wrapping.
	wrapped := fmt.Errorf("submit: %w", err)
	assert.True(t, IsInsertError(wrapped))
}
