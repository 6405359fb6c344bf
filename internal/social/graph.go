package social

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	accountmodels "io.winapps.communitydiary/internal/models/account"
)

// Graph computes the friends and nearby membership sets consumed by the
// diary listing queries. The diary core treats these as opaque uid sets.
type Graph struct {
	postgres *pgxpool.Pool
	redis    *redis.Client
}

func NewGraph(postgres *pgxpool.Pool, redisClient *redis.Client) *Graph {
	return &Graph{postgres: postgres, redis: redisClient}
}

// nearbyDegrees is the half-width of the home-location box that counts as
// "nearby", in degrees of latitude/longitude.
const nearbyDegrees = 0.5

// FriendIDs returns the uids of the user's approved friends, in either
// direction of the friendship row. Cached briefly in redis.
func (g *Graph) FriendIDs(ctx context.Context, uid string) ([]string, error) {
	cacheKey := "friends:" + uid
	if cached, err := g.redis.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
		var uids []string
		if err := json.Unmarshal([]byte(cached), &uids); err == nil {
			return uids, nil
		}
	}

	rows, err := g.postgres.Query(ctx, `
		SELECT DISTINCT CASE WHEN f.uid = $1 THEN f.fid ELSE f.uid END AS friend_uid
		FROM friendships f
		WHERE (f.uid = $1 OR f.fid = $1) AND f.status = 'approved'
	`, uid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	uids := []string{}
	for rows.Next() {
		var friendUID string
		if err := rows.Scan(&friendUID); err != nil {
			return nil, err
		}
		uids = append(uids, friendUID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if data, err := json.Marshal(uids); err == nil {
		_ = g.redis.Set(ctx, cacheKey, data, 5*time.Minute).Err()
	}

	return uids, nil
}

// NearbyIDs returns the uids of accounts in good standing whose home
// location falls inside a box around the viewer's home. A viewer without a
// home location has no nearby set.
func (g *Graph) NearbyIDs(ctx context.Context, uid string) ([]string, error) {
	var homeLat, homeLon *float64
	err := g.postgres.QueryRow(ctx, `SELECT home_lat, home_lon FROM users WHERE uid = $1`, uid).Scan(&homeLat, &homeLon)
	if err != nil {
		return nil, fmt.Errorf("failed to load viewer home location: %w", err)
	}
	if homeLat == nil || homeLon == nil {
		return []string{}, nil
	}

	rows, err := g.postgres.Query(ctx, `
		SELECT uid FROM users
		WHERE uid != $1
			AND status IN ($2, $3)
			AND home_lat BETWEEN $4 AND $5
			AND home_lon BETWEEN $6 AND $7
	`, uid,
		accountmodels.StatusActive, accountmodels.StatusConfirmed,
		*homeLat-nearbyDegrees, *homeLat+nearbyDegrees,
		*homeLon-nearbyDegrees, *homeLon+nearbyDegrees,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	uids := []string{}
	for rows.Next() {
		var nearbyUID string
		if err := rows.Scan(&nearbyUID); err != nil {
			return nil, err
		}
		uids = append(uids, nearbyUID)
	}
	return uids, rows.Err()
}
