package diary

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	accountmodels "io.winapps.communitydiary/internal/models/account"
)

// CommentStore owns comment creation under an entry. The comment row and
// the commenter's subscription commit as one unit; notification fan-out
// runs after commit and can never roll the comment back.
type CommentStore struct {
	db         *pgxpool.Pool
	entries    *EntryStore
	dispatcher *Dispatcher
}

func NewCommentStore(db *pgxpool.Pool, entries *EntryStore, dispatcher *Dispatcher) *CommentStore {
	return &CommentStore{db: db, entries: entries, dispatcher: dispatcher}
}

// Create persists a comment on an entry, subscribes the commenter unless
// already subscribed, and fans out notifications to the other subscribers.
func (s *CommentStore) Create(ctx context.Context, entryID, authorUID, body string) (*accountmodels.Comment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, newValidationError("body", "must not be empty")
	}

	entry, err := s.entries.Get(ctx, entryID)
	if err != nil {
		return nil, err
	}

	commentID := uuid.New().String()
	now := time.Now()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO diary_comments (id, entry_id, user_uid, body, visible, created_at)
		VALUES ($1, $2, $3, $4, TRUE, $5)
	`, commentID, entryID, authorUID, body, now)
	if err != nil {
		return nil, err
	}

	// Commenting subscribes the commenter to further comments.
	_, err = tx.Exec(ctx, `
		INSERT INTO diary_subscriptions (entry_id, user_uid, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (entry_id, user_uid) DO NOTHING
	`, entryID, authorUID, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	comment, err := s.Get(ctx, commentID)
	if err != nil {
		return nil, err
	}

	// Best-effort fan-out: delivery failures are logged inside the
	// dispatcher and never surface here.
	if s.dispatcher != nil {
		s.dispatcher.CommentPosted(ctx, entry, comment)
	}

	return comment, nil
}

const commentColumns = `c.id, c.entry_id, c.user_uid, u.display_name, c.body, c.visible, c.created_at`

func scanComment(row pgx.Row) (*accountmodels.Comment, error) {
	var c accountmodels.Comment
	err := row.Scan(
		&c.ID,
		&c.EntryID,
		&c.AuthorUID,
		&c.AuthorName,
		&c.Body,
		&c.Visible,
		&c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Get fetches a comment by id, hidden or not.
func (s *CommentStore) Get(ctx context.Context, commentID string) (*accountmodels.Comment, error) {
	if !knownID(commentID) {
		return nil, ErrNotFound
	}

	row := s.db.QueryRow(ctx, `
		SELECT `+commentColumns+`
		FROM diary_comments c
		JOIN users u ON u.uid = c.user_uid
		WHERE c.id = $1
	`, commentID)
	return scanComment(row)
}

// ListForEntry returns the visible comments under an entry, oldest first.
func (s *CommentStore) ListForEntry(ctx context.Context, entryID string) ([]accountmodels.Comment, error) {
	if !knownID(entryID) {
		return []accountmodels.Comment{}, nil
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+commentColumns+`
		FROM diary_comments c
		JOIN users u ON u.uid = c.user_uid
		WHERE c.entry_id = $1 AND c.visible = TRUE
		ORDER BY c.created_at ASC, c.id ASC
	`, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComments(rows)
}

// ListByAuthor returns a page of a user's visible comments, newest first.
func (s *CommentStore) ListByAuthor(ctx context.Context, displayName string, page int) ([]accountmodels.Comment, error) {
	limit, offset := pageWindow(page)
	rows, err := s.db.Query(ctx, `
		SELECT `+commentColumns+`
		FROM diary_comments c
		JOIN users u ON u.uid = c.user_uid
		WHERE u.display_name = $1 AND c.visible = TRUE
		ORDER BY c.created_at DESC, c.id ASC
		LIMIT $2 OFFSET $3
	`, displayName, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectComments(rows)
}

func collectComments(rows pgx.Rows) ([]accountmodels.Comment, error) {
	comments := []accountmodels.Comment{}
	for rows.Next() {
		var c accountmodels.Comment
		if err := rows.Scan(
			&c.ID,
			&c.EntryID,
			&c.AuthorUID,
			&c.AuthorName,
			&c.Body,
			&c.Visible,
			&c.CreatedAt,
		); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	return comments, rows.Err()
}
