package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/rt1856/Manrega/config"
)

// ErrNotFound signals a recoverable missing-row condition. Callers map it to
// a 404 or fall back to synthesized data; it is never fatal.
var ErrNotFound = errors.New("store: not found")

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
	retryDelay      = 5 * time.Second
)

// Store is the shared database handle. It is opened once at process start,
// passed to each component at construction, and closed at process stop.
type Store struct {
	DB     *sql.DB
	SQ     sq.StatementBuilderType
	driver string
}

// Open connects to the configured database and initializes the schema.
func Open(cfg *config.Config) (*Store, error) {
	var (
		db  *sql.DB
		err error
	)

	switch cfg.DBDriver {
	case "postgres":
		db, err = sql.Open("postgres", cfg.PostgresConnString())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxIdleConns)
		db.SetConnMaxLifetime(connMaxLifetime)
	default:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("make db dir: %w", err)
			}
		}
		db, err = sql.Open("sqlite3", cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		for _, pragma := range []string{
			"PRAGMA foreign_keys = ON",
			"PRAGMA journal_mode = WAL",
			"PRAGMA synchronous = NORMAL",
		} {
			if _, err := db.Exec(pragma); err != nil {
				db.Close()
				return nil, fmt.Errorf("pragma %q: %w", pragma, err)
			}
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.DBDriver, err)
	}

	s := &Store{DB: db, SQ: statementBuilder(cfg.DBDriver), driver: cfg.DBDriver}
	if err := s.initSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Connected to %s database", cfg.DBDriver)
	return s, nil
}

// OpenWithRetry attempts Open up to maxRetries times before giving up.
func OpenWithRetry(cfg *config.Config, maxRetries int) (*Store, error) {
	var err error
	for i := 0; i < maxRetries; i++ {
		var s *Store
		s, err = Open(cfg)
		if err == nil {
			return s, nil
		}
		log.Printf("Failed to connect to database (attempt %d/%d): %v", i+1, maxRetries, err)
		time.Sleep(retryDelay)
	}
	return nil, fmt.Errorf("failed to connect after %d attempts: %w", maxRetries, err)
}

func statementBuilder(driver string) sq.StatementBuilderType {
	if driver == "postgres" {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// Rebind rewrites ?-style placeholders in a raw query for the active driver.
func (s *Store) Rebind(query string) string {
	if s.driver == "postgres" {
		rebound, err := sq.Dollar.ReplacePlaceholders(query)
		if err == nil {
			return rebound
		}
	}
	return query
}

// Health pings the database with a short timeout.
func (s *Store) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	if err := s.DB.Close(); err != nil {
		log.Printf("Error closing database connection: %v", err)
	}
}

// WithTx runs fn inside a transaction, rolling back on error or panic.
func (s *Store) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}
