package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/tallum/internal/config"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Store owns the database connection and hands out repositories
type Store struct {
	DB *sqlx.DB

	Words      *WordRepository
	Scores     *ScoreRepository
	Statistics *StatisticsRepository
}

// Open connects to the configured database and creates the schema if needed
func Open(ctx context.Context, cfg config.DatabaseConfig) (*Store, error) {
	if cfg.Driver == config.DriverSQLite {
		if err := ensureDataDir(cfg.DSN); err != nil {
			return nil, err
		}
	}

	db, err := sqlx.ConnectContext(ctx, cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == config.DriverSQLite {
		// One connection: SQLite has a single writer, and :memory: databases are per connection
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)

		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	store := NewStore(db)
	if err := store.initializeSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewStore wraps an already open connection
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		DB:         db,
		Words:      NewWordRepository(db),
		Scores:     NewScoreRepository(db),
		Statistics: NewStatisticsRepository(db),
	}
}

// Close closes the database connection
func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

func ensureDataDir(dsn string) error {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}
	return nil
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS words (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		word TEXT NOT NULL,
		translation TEXT NOT NULL,
		example_sentence TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_words_word ON words(word)`,
	`CREATE TABLE IF NOT EXISTS scores (
		word_id INTEGER NOT NULL,
		user_id TEXT NOT NULL DEFAULT '',
		positive_score INTEGER NOT NULL DEFAULT 0 CHECK (positive_score >= 0),
		negative_score INTEGER NOT NULL DEFAULT 0 CHECK (negative_score >= 0),
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (word_id, user_id),
		FOREIGN KEY (word_id) REFERENCES words(id) ON DELETE CASCADE
	)`,
}

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS words (
		id BIGSERIAL PRIMARY KEY,
		word TEXT NOT NULL,
		translation TEXT NOT NULL,
		example_sentence TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_words_word ON words(word)`,
	`CREATE TABLE IF NOT EXISTS scores (
		word_id BIGINT NOT NULL REFERENCES words(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL DEFAULT '',
		positive_score INTEGER NOT NULL DEFAULT 0 CHECK (positive_score >= 0),
		negative_score INTEGER NOT NULL DEFAULT 0 CHECK (negative_score >= 0),
		updated_at TIMESTAMPTZ DEFAULT NOW(),
		PRIMARY KEY (word_id, user_id)
	)`,
}

// initializeSchema creates the words and scores tables if they don't exist
func (s *Store) initializeSchema(ctx context.Context) error {
	stmts := sqliteSchema
	if s.DB.DriverName() == config.DriverPostgres {
		stmts = postgresSchema
	}
	for _, stmt := range stmts {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to initialize schema: %w", err)
		}
	}
	return nil
}
