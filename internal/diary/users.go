package diary

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	accountmodels "io.winapps.communitydiary/internal/models/account"
)

// UserDirectory is the read-only view of user accounts the diary core needs.
// Account lifecycle itself is owned elsewhere.
type UserDirectory struct {
	db *pgxpool.Pool
}

func NewUserDirectory(db *pgxpool.Pool) *UserDirectory {
	return &UserDirectory{db: db}
}

const userColumns = `uid, display_name, email, status, administrator, preferred_language, home_lat, home_lon, created_at`

func scanUser(row pgx.Row) (*accountmodels.User, error) {
	var u accountmodels.User
	err := row.Scan(
		&u.UID,
		&u.DisplayName,
		&u.Email,
		&u.Status,
		&u.Administrator,
		&u.PreferredLanguage,
		&u.HomeLat,
		&u.HomeLon,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByUID fetches a user regardless of account status.
func (d *UserDirectory) GetByUID(ctx context.Context, uid string) (*accountmodels.User, error) {
	row := d.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE uid = $1`, uid)
	return scanUser(row)
}

// GetActiveByDisplayName resolves a display name among accounts in good
// standing. Suppressed accounts do not resolve here.
func (d *UserDirectory) GetActiveByDisplayName(ctx context.Context, displayName string) (*accountmodels.User, error) {
	row := d.db.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE display_name = $1 AND status IN ($2, $3)
	`, displayName, accountmodels.StatusActive, accountmodels.StatusConfirmed)
	return scanUser(row)
}

// IsAdministrator reports whether the user exists and carries the
// administrator flag.
func (d *UserDirectory) IsAdministrator(ctx context.Context, uid string) (bool, error) {
	var admin bool
	err := d.db.QueryRow(ctx, `SELECT administrator FROM users WHERE uid = $1`, uid).Scan(&admin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return admin, nil
}
