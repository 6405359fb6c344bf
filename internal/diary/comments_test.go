package diary

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBareCommentStore() *CommentStore {
	return NewCommentStore(nil, NewEntryStore(nil), nil)
}

func TestCreateCommentValidation(t *testing.T) {
	store := newBareCommentStore()

	for _, body := range []string{"", "   ", "\n"} {
		_, err := store.Create(context.Background(), "5f9f1f64-0000-0000-0000-000000000000", "u1", body)
		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "body", vErr.Field)
	}
}

func TestCreateCommentMalformedEntryID(t *testing.T) {
	store := newBareCommentStore()

	_, err := store.Create(context.Background(), "not-a-uuid", "u1", "nice entry")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetCommentMalformedID(t *testing.T) {
	store := newBareCommentStore()

	_, err := store.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListForEntryMalformedID(t *testing.T) {
	store := newBareCommentStore()

	comments, err := store.ListForEntry(context.Background(), "not-a-uuid")
	assert.NoError(t, err)
	assert.Empty(t, comments)
}
