package diary

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	accountmodels "io.winapps.communitydiary/internal/models/account"
)

// SubscriptionRegistry maintains the (entry, user) subscription pairs that
// drive comment notification fan-out. Both subscribe and unsubscribe are
// idempotent; uniqueness rests on the table's primary key, so concurrent
// calls for the same pair converge without application-level locking.
type SubscriptionRegistry struct {
	db *pgxpool.Pool
}

func NewSubscriptionRegistry(db *pgxpool.Pool) *SubscriptionRegistry {
	return &SubscriptionRegistry{db: db}
}

// Subscribe registers interest in an entry's comments. Re-subscribing is a
// no-op, not an error.
func (r *SubscriptionRegistry) Subscribe(ctx context.Context, entryID, uid string) error {
	if !knownID(entryID) {
		return ErrNotFound
	}

	var exists bool
	err := r.db.QueryRow(ctx, `SELECT TRUE FROM diary_entries WHERE id = $1`, entryID).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	_, err = r.db.Exec(ctx, `
		INSERT INTO diary_subscriptions (entry_id, user_uid, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (entry_id, user_uid) DO NOTHING
	`, entryID, uid, time.Now())
	return err
}

// Unsubscribe removes a subscription. Unsubscribing when not subscribed is
// a no-op.
func (r *SubscriptionRegistry) Unsubscribe(ctx context.Context, entryID, uid string) error {
	if !knownID(entryID) {
		return nil
	}

	_, err := r.db.Exec(ctx, `
		DELETE FROM diary_subscriptions WHERE entry_id = $1 AND user_uid = $2
	`, entryID, uid)
	return err
}

// IsSubscribed reports whether the pair exists.
func (r *SubscriptionRegistry) IsSubscribed(ctx context.Context, entryID, uid string) (bool, error) {
	if !knownID(entryID) {
		return false, nil
	}

	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT TRUE FROM diary_subscriptions WHERE entry_id = $1 AND user_uid = $2
	`, entryID, uid).Scan(&exists)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return exists, nil
}

// SubscribersOf returns the entry's subscribers whose accounts are in good
// standing. Suppressed accounts are excluded from fan-out.
func (r *SubscriptionRegistry) SubscribersOf(ctx context.Context, entryID string) ([]accountmodels.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT u.uid, u.display_name, u.email, u.status, u.administrator,
			u.preferred_language, u.home_lat, u.home_lon, u.created_at
		FROM diary_subscriptions s
		JOIN users u ON u.uid = s.user_uid
		WHERE s.entry_id = $1 AND u.status IN ($2, $3)
		ORDER BY s.created_at
	`, entryID, accountmodels.StatusActive, accountmodels.StatusConfirmed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subscribers := []accountmodels.User{}
	for rows.Next() {
		var u accountmodels.User
		if err := rows.Scan(
			&u.UID,
			&u.DisplayName,
			&u.Email,
			&u.Status,
			&u.Administrator,
			&u.PreferredLanguage,
			&u.HomeLat,
			&u.HomeLon,
			&u.CreatedAt,
		); err != nil {
			return nil, err
		}
		subscribers = append(subscribers, u)
	}
	return subscribers, rows.Err()
}
