package diary

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError(t *testing.T) {
	err := newValidationError("title", "must not be empty")
	assert.Equal(t, "invalid title: must not be empty", err.Error())

	wrapped := fmt.Errorf("creating entry: %w", err)

	var vErr *ValidationError
	require.True(t, errors.As(wrapped, &vErr))
	assert.Equal(t, "title", vErr.Field)
	assert.Equal(t, "must not be empty", vErr.Reason)
}

func TestSentinelsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, ErrForbidden))
	assert.False(t, errors.Is(ErrForbidden, ErrAuthRequired))
	assert.True(t, errors.Is(fmt.Errorf("lookup: %w", ErrNotFound), ErrNotFound))
}
