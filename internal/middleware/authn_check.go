package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	firebaseutil "io.winapps.communitydiary/internal/firebase"
)

const bearerPrefix = "Bearer "

// resolveUID maps a bearer token to a user uid. Redis first, then the
// users table, then Firebase ID-token verification as a last resort.
// Returns empty string when the token resolves to nobody.
func resolveUID(ctx context.Context, token string, firebaseApp *firebase.App, postgres *pgxpool.Pool, redisClient *redis.Client) string {
	cacheKey := "auth_token:" + token
	if uid, err := redisClient.Get(ctx, cacheKey).Result(); err == nil && uid != "" {
		return uid
	}

	var uid string
	err := postgres.QueryRow(ctx, `SELECT uid FROM users WHERE token = $1`, token).Scan(&uid)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return ""
		}
		authClient, err := firebaseutil.GetAuthClient(firebaseApp)
		if err != nil {
			return ""
		}
		idToken, err := authClient.VerifyIDToken(ctx, token)
		if err != nil {
			return ""
		}
		uid = idToken.UID
	}

	if uid != "" {
		_ = redisClient.Set(ctx, cacheKey, uid, 15*time.Minute).Err()
	}
	return uid
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}
	return strings.TrimPrefix(authHeader, bearerPrefix)
}

// AuthMiddleware requires a valid bearer token and sets the user uid in
// the request context.
func AuthMiddleware(firebaseApp *firebase.App, postgres *pgxpool.Pool, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header with Bearer token is required"})
			c.Abort()
			return
		}

		uid := resolveUID(c.Request.Context(), token, firebaseApp, postgres, redisClient)
		if uid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("uid", uid)
		c.Next()
	}
}

// OptionalAuthMiddleware resolves the viewer when a token is supplied but
// never rejects the request. Listings use it: anonymous browsing is fine,
// the friends/nearby axes just need a resolved viewer downstream.
func OptionalAuthMiddleware(firebaseApp *firebase.App, postgres *pgxpool.Pool, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if uid := resolveUID(c.Request.Context(), token, firebaseApp, postgres, redisClient); uid != "" {
				c.Set("uid", uid)
			}
		}
		c.Next()
	}
}
