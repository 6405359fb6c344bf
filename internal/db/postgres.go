package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InitPostgres initializes and returns a PostgreSQL connection pool
func InitPostgres() (*pgxpool.Pool, error) {
	// Get database URL from environment variable or use default
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		// Default local development configuration
		host := getEnvOrDefault("POSTGRES_HOST", "localhost")
		port := getEnvOrDefault("POSTGRES_PORT", "5432")
		user := getEnvOrDefault("POSTGRES_USER", "communitydiary")
		password := os.Getenv("POSTGRES_PASSWORD")
		dbname := getEnvOrDefault("POSTGRES_DB", "communitydiary")
		sslmode := getEnvOrDefault("POSTGRES_SSLMODE", "disable")

		databaseURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			user, password, host, port, dbname, sslmode)
	}

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = time.Minute * 30
	config.HealthCheckPeriod = time.Minute * 5

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := createTables(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return pool, nil
}

// createTables creates all required tables if they don't exist
func createTables(ctx context.Context, pool *pgxpool.Pool) error {
	// Users table - account data is owned by the account service; this
	// schema mirrors the columns the diary core reads.
	usersTable := `
		CREATE TABLE IF NOT EXISTS users (
			uid VARCHAR(255) PRIMARY KEY,
			display_name VARCHAR(255) UNIQUE NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			token TEXT,
			status VARCHAR(20) NOT NULL DEFAULT 'active' CHECK (status IN ('active', 'confirmed', 'suspended', 'deleted')),
			administrator BOOLEAN NOT NULL DEFAULT FALSE,
			preferred_language VARCHAR(20) NOT NULL DEFAULT 'en',
			home_lat DOUBLE PRECISION,
			home_lon DOUBLE PRECISION,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		);
	`

	// User preferences - generic (user, key) store; the diary core only
	// uses the diary.default_language key.
	userPreferencesTable := `
		CREATE TABLE IF NOT EXISTS user_preferences (
			user_uid VARCHAR(255) NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
			key VARCHAR(255) NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (user_uid, key)
		);
	`

	// Languages table - code to English name, for feed titles
	languagesTable := `
		CREATE TABLE IF NOT EXISTS languages (
			code VARCHAR(20) PRIMARY KEY,
			english_name VARCHAR(255) NOT NULL
		);
	`

	// Diary entries table
	diaryEntriesTable := `
		CREATE TABLE IF NOT EXISTS diary_entries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_uid VARCHAR(255) NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
			title VARCHAR(500) NOT NULL,
			body TEXT NOT NULL,
			language_code VARCHAR(20) NOT NULL DEFAULT 'en' REFERENCES languages(code),
			latitude DOUBLE PRECISION,
			longitude DOUBLE PRECISION,
			visible BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT NOW(),
			updated_at TIMESTAMP DEFAULT NOW()
		);
	`

	// Diary comments table
	diaryCommentsTable := `
		CREATE TABLE IF NOT EXISTS diary_comments (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			entry_id UUID NOT NULL REFERENCES diary_entries(id) ON DELETE CASCADE,
			user_uid VARCHAR(255) NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
			body TEXT NOT NULL,
			visible BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT NOW()
		);
	`

	// Subscriptions - the composite primary key is what makes subscribe
	// idempotent under concurrent inserts.
	diarySubscriptionsTable := `
		CREATE TABLE IF NOT EXISTS diary_subscriptions (
			entry_id UUID NOT NULL REFERENCES diary_entries(id) ON DELETE CASCADE,
			user_uid VARCHAR(255) NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
			created_at TIMESTAMP DEFAULT NOW(),
			PRIMARY KEY (entry_id, user_uid)
		);
	`

	// Friendships - feeds the friends listing axis
	friendshipsTable := `
		CREATE TABLE IF NOT EXISTS friendships (
			uid VARCHAR(255) NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
			fid VARCHAR(255) NOT NULL REFERENCES users(uid) ON DELETE CASCADE,
			status VARCHAR(20) NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved')),
			created_at TIMESTAMP DEFAULT NOW(),
			PRIMARY KEY (uid, fid)
		);
	`

	// Push tokens - stores device push registration for comment fan-out
	pushTokensTable := `
		CREATE TABLE IF NOT EXISTS push_tokens (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			user_id VARCHAR(255) NOT NULL,
			fcm_token TEXT,
			platform VARCHAR(20) NOT NULL,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			active BOOLEAN DEFAULT TRUE,
			UNIQUE(user_id)
		);
	`

	// Create indexes for the listing and fan-out query shapes
	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_users_display_name ON users(display_name);`,
		`CREATE INDEX IF NOT EXISTS idx_users_status ON users(status);`,
		`CREATE INDEX IF NOT EXISTS idx_users_home ON users(home_lat, home_lon);`,
		`CREATE INDEX IF NOT EXISTS idx_diary_entries_user_uid ON diary_entries(user_uid);`,
		`CREATE INDEX IF NOT EXISTS idx_diary_entries_created_at ON diary_entries(created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_diary_entries_language ON diary_entries(language_code);`,
		`CREATE INDEX IF NOT EXISTS idx_diary_comments_entry_id ON diary_comments(entry_id);`,
		`CREATE INDEX IF NOT EXISTS idx_diary_comments_user_uid ON diary_comments(user_uid);`,
		`CREATE INDEX IF NOT EXISTS idx_diary_subscriptions_user_uid ON diary_subscriptions(user_uid);`,
		`CREATE INDEX IF NOT EXISTS idx_push_tokens_user_id ON push_tokens(user_id);`,
	}

	tables := []string{
		usersTable,
		userPreferencesTable,
		languagesTable,
		diaryEntriesTable,
		diaryCommentsTable,
		diarySubscriptionsTable,
		friendshipsTable,
		pushTokensTable,
	}

	for _, table := range tables {
		if _, err := pool.Exec(ctx, table); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	for _, index := range indexes {
		if _, err := pool.Exec(ctx, index); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	if err := seedLanguages(ctx, pool); err != nil {
		return fmt.Errorf("failed to seed languages: %w", err)
	}

	return nil
}

// seedLanguages inserts the language codes the feed titles can name.
func seedLanguages(ctx context.Context, pool *pgxpool.Pool) error {
	languages := map[string]string{
		"en": "English",
		"de": "German",
		"es": "Spanish",
		"fr": "French",
		"it": "Italian",
		"ja": "Japanese",
		"nl": "Dutch",
		"pl": "Polish",
		"pt": "Portuguese",
		"ru": "Russian",
		"uk": "Ukrainian",
		"zh": "Chinese",
	}

	for code, name := range languages {
		_, err := pool.Exec(ctx, `
			INSERT INTO languages (code, english_name)
			VALUES ($1, $2)
			ON CONFLICT (code) DO NOTHING
		`, code, name)
		if err != nil {
			return err
		}
	}
	return nil
}

// getEnvOrDefault returns the environment variable value or a default value if not set
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
