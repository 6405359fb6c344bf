package diary

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Moderator performs administrator-gated hide operations. Visibility is
// monotone: visible to hidden is the only transition, and nothing in this
// core reverses it. Hidden items remain addressable by id.
type Moderator struct {
	db    *pgxpool.Pool
	users *UserDirectory
}

func NewModerator(db *pgxpool.Pool, users *UserDirectory) *Moderator {
	return &Moderator{db: db, users: users}
}

// requireAdministrator guards the hide operations. Non-admins get
// ErrForbidden before any lookup happens.
func (m *Moderator) requireAdministrator(ctx context.Context, uid string) error {
	admin, err := m.users.IsAdministrator(ctx, uid)
	if err != nil {
		return err
	}
	if !admin {
		return ErrForbidden
	}
	return nil
}

// HideEntry marks an entry hidden. Hiding an already-hidden entry is
// harmless.
func (m *Moderator) HideEntry(ctx context.Context, entryID, actingUID string) error {
	if err := m.requireAdministrator(ctx, actingUID); err != nil {
		return err
	}
	if !knownID(entryID) {
		return ErrNotFound
	}

	tag, err := m.db.Exec(ctx, `UPDATE diary_entries SET visible = FALSE WHERE id = $1`, entryID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// HideComment marks a comment hidden under the same authorization rule.
func (m *Moderator) HideComment(ctx context.Context, commentID, actingUID string) error {
	if err := m.requireAdministrator(ctx, actingUID); err != nil {
		return err
	}
	if !knownID(commentID) {
		return ErrNotFound
	}

	tag, err := m.db.Exec(ctx, `UPDATE diary_comments SET visible = FALSE WHERE id = $1`, commentID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
