package diary

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	accountmodels "io.winapps.communitydiary/internal/models/account"
)

// defaultLanguageKey is the per-user preference recording the language of
// the most recently created entry. Purely advisory, used to pre-fill forms.
const defaultLanguageKey = "diary.default_language"

// EntryStore owns the diary entry lifecycle: creation, author-scoped
// updates and default-language resolution.
type EntryStore struct {
	db *pgxpool.Pool
}

func NewEntryStore(db *pgxpool.Pool) *EntryStore {
	return &EntryStore{db: db}
}

const entryColumns = `e.id, e.user_uid, u.display_name, e.title, e.body, e.language_code,
	e.latitude, e.longitude, e.visible, e.created_at, e.updated_at`

// mapLanguageViolation turns the language foreign key violation into the
// validation taxonomy. A code outside the languages table is a client
// error, not a storage failure.
func mapLanguageViolation(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23503" && pgErr.ConstraintName == "diary_entries_language_code_fkey" {
		return newValidationError("languageCode", "unknown language")
	}
	return err
}

func scanEntry(row pgx.Row) (*accountmodels.Entry, error) {
	var e accountmodels.Entry
	err := row.Scan(
		&e.ID,
		&e.AuthorUID,
		&e.AuthorName,
		&e.Title,
		&e.Body,
		&e.LanguageCode,
		&e.Latitude,
		&e.Longitude,
		&e.Visible,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// Create persists a new entry, records the author's language choice as the
// new diary default, and subscribes the author to their own entry. All
// three land in one transaction.
func (s *EntryStore) Create(ctx context.Context, authorUID, title, body, languageCode string, lat, lon *float64) (*accountmodels.Entry, error) {
	if strings.TrimSpace(title) == "" {
		return nil, newValidationError("title", "must not be empty")
	}
	if strings.TrimSpace(body) == "" {
		return nil, newValidationError("body", "must not be empty")
	}

	if languageCode == "" {
		lang, err := s.DefaultLanguage(ctx, authorUID)
		if err != nil {
			return nil, err
		}
		languageCode = lang
	}

	entryID := uuid.New().String()
	now := time.Now()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO diary_entries (id, user_uid, title, body, language_code, latitude, longitude, visible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, TRUE, $8, $8)
	`, entryID, authorUID, title, body, languageCode, lat, lon, now)
	if err != nil {
		return nil, mapLanguageViolation(err)
	}

	// Remember the chosen language for the next entry form.
	_, err = tx.Exec(ctx, `
		INSERT INTO user_preferences (user_uid, key, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_uid, key) DO UPDATE SET value = EXCLUDED.value
	`, authorUID, defaultLanguageKey, languageCode)
	if err != nil {
		return nil, err
	}

	// The author always starts subscribed to their own entry.
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

	return s.Get(ctx, entryID)
}

// DefaultLanguage returns the user's last-used diary language if recorded,
// falling back to the account-level preferred language.
func (s *EntryStore) DefaultLanguage(ctx context.Context, uid string) (string, error) {
	var lang string
	err := s.db.QueryRow(ctx, `
		SELECT value FROM user_preferences WHERE user_uid = $1 AND key = $2
	`, uid, defaultLanguageKey).Scan(&lang)
	if err == nil {
		return lang, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}

	err = s.db.QueryRow(ctx, `SELECT preferred_language FROM users WHERE uid = $1`, uid).Scan(&lang)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return lang, nil
}

// EntryUpdate carries the permitted field changes for an entry. Nil fields
// are left untouched; latitude and longitude move together.
type EntryUpdate struct {
	Title        *string
	Body         *string
	LanguageCode *string
	Latitude     *float64
	Longitude    *float64
}

// Update applies permitted field changes atomically. Only the entry's
// author may update content.
func (s *EntryStore) Update(ctx context.Context, entryID, authorUID string, fields EntryUpdate) (*accountmodels.Entry, error) {
	if !knownID(entryID) {
		return nil, ErrNotFound
	}

	var ownerUID string
	err := s.db.QueryRow(ctx, `SELECT user_uid FROM diary_entries WHERE id = $1`, entryID).Scan(&ownerUID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if ownerUID != authorUID {
		return nil, ErrForbidden
	}

	if fields.Title != nil && strings.TrimSpace(*fields.Title) == "" {
		return nil, newValidationError("title", "must not be empty")
	}
	if fields.Body != nil && strings.TrimSpace(*fields.Body) == "" {
		return nil, newValidationError("body", "must not be empty")
	}

	updateFields := []string{}
	args := []interface{}{}
	argCounter := 1

	if fields.Title != nil {
		updateFields = append(updateFields, "title = $"+strconv.Itoa(argCounter))
		args = append(args, *fields.Title)
		argCounter++
	}
	if fields.Body != nil {
		updateFields = append(updateFields, "body = $"+strconv.Itoa(argCounter))
		args = append(args, *fields.Body)
		argCounter++
	}
	if fields.LanguageCode != nil {
		updateFields = append(updateFields, "language_code = $"+strconv.Itoa(argCounter))
		args = append(args, *fields.LanguageCode)
		argCounter++
	}
	if fields.Latitude != nil && fields.Longitude != nil {
		updateFields = append(updateFields, "latitude = $"+strconv.Itoa(argCounter))
		args = append(args, *fields.Latitude)
		argCounter++
		updateFields = append(updateFields, "longitude = $"+strconv.Itoa(argCounter))
		args = append(args, *fields.Longitude)
		argCounter++
	}

	if len(updateFields) == 0 {
		return s.Get(ctx, entryID)
	}

	updateFields = append(updateFields, "updated_at = $"+strconv.Itoa(argCounter))
	args = append(args, time.Now())
	argCounter++

	args = append(args, entryID)
	query := `
		UPDATE diary_entries
		SET ` + strings.Join(updateFields, ", ") + `
		WHERE id = $` + strconv.Itoa(argCounter)

	if _, err := s.db.Exec(ctx, query, args...); err != nil {
		return nil, mapLanguageViolation(err)
	}

	return s.Get(ctx, entryID)
}

// Get fetches an entry by id, hidden or not. Whether a hidden entry may be
// shown to the requester is the caller's decision.
func (s *EntryStore) Get(ctx context.Context, entryID string) (*accountmodels.Entry, error) {
	if !knownID(entryID) {
		return nil, ErrNotFound
	}

	row := s.db.QueryRow(ctx, `
		SELECT `+entryColumns+`
		FROM diary_entries e
		JOIN users u ON u.uid = e.user_uid
		WHERE e.id = $1
	`, entryID)
	return scanEntry(row)
}
