package diary

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryLookupsRejectMalformedIDs(t *testing.T) {
	store := NewEntryStore(nil)
	ctx := context.Background()

	t.Run("get", func(t *testing.T) {
		_, err := store.Get(ctx, "not-a-uuid")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update", func(t *testing.T) {
		title := "edited"
		_, err := store.Update(ctx, "not-a-uuid", "u1", EntryUpdate{Title: &title})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestCreateEntryValidation(t *testing.T) {
	store := NewEntryStore(nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		title string
		body  string
		field string
	}{
		{name: "empty title", title: "", body: "some body", field: "title"},
		{name: "whitespace title", title: "   ", body: "some body", field: "title"},
		{name: "empty body", title: "a title", body: "", field: "body"},
		{name: "whitespace body", title: "a title", body: "\t\n", field: "body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.Create(ctx, "u1", tt.title, tt.body, "en", nil, nil)
			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestMapLanguageViolation(t *testing.T) {
	t.Run("language foreign key violation becomes a validation error", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:           "23503",
			ConstraintName: "diary_entries_language_code_fkey",
		}
		err := mapLanguageViolation(fmt.Errorf("insert: %w", pgErr))

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "languageCode", vErr.Field)
	})

	t.Run("other foreign key violations pass through", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:           "23503",
			ConstraintName: "diary_entries_user_uid_fkey",
		}
		err := mapLanguageViolation(pgErr)
		assert.Same(t, error(pgErr), err)
	})

	t.Run("non-postgres errors pass through", func(t *testing.T) {
		plain := errors.New("connection reset")
		assert.Same(t, plain, mapLanguageViolation(plain))
	})
}
