package store

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// AnalyticsCache is a key/value table holding precomputed aggregates with an
// expiry timestamp. It is purely an optimization: a miss just means the
// aggregate gets recomputed.
type AnalyticsCache struct {
	*Store
}

func NewAnalyticsCache(s *Store) *AnalyticsCache {
	return &AnalyticsCache{Store: s}
}

// Get returns the cached payload for key, reporting a miss for absent or
// expired entries. Expired rows are deleted on the way out.
func (ac *AnalyticsCache) Get(ctx context.Context, key string) ([]byte, bool) {
	query, args, err := ac.SQ.Select("cache_data", "expires_at").
		From("analytics_cache").
		Where(sq.Eq{"cache_key": key}).
		ToSql()
	if err != nil {
		return nil, false
	}

	var (
		data      string
		expiresAt sql.NullString
	)
	err = ac.DB.QueryRowContext(ctx, query, args...).Scan(&data, &expiresAt)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Printf("Error reading analytics cache for %q: %v", key, err)
		return nil, false
	}

	if expiresAt.Valid {
		expiry, perr := time.Parse(time.RFC3339, expiresAt.String)
		if perr != nil || time.Now().UTC().After(expiry) {
			ac.delete(ctx, key)
			return nil, false
		}
	}
	return []byte(data), true
}

// Put stores a payload under key with the given lifetime, replacing any
// previous entry.
func (ac *AnalyticsCache) Put(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	expiresAt := time.Now().UTC().Add(ttl).Format(time.RFC3339)

	query, args, err := ac.SQ.Insert("analytics_cache").
		Columns("cache_key", "cache_data", "expires_at").
		Values(key, string(data), expiresAt).
		Suffix(`ON CONFLICT (cache_key) DO UPDATE SET
			cache_data = excluded.cache_data,
			expires_at = excluded.expires_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build cache upsert: %w", err)
	}

	if _, err := ac.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("write analytics cache: %w", err)
	}
	return nil
}

// PurgeExpired removes every entry past its expiry.
func (ac *AnalyticsCache) PurgeExpired(ctx context.Context) error {
	now := time.Now().UTC().Format(time.RFC3339)
	query, args, err := ac.SQ.Delete("analytics_cache").
		Where(sq.Lt{"expires_at": now}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build cache purge: %w", err)
	}
	if _, err := ac.DB.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("purge analytics cache: %w", err)
	}
	return nil
}

func (ac *AnalyticsCache) delete(ctx context.Context, key string) {
	query, args, err := ac.SQ.Delete("analytics_cache").Where(sq.Eq{"cache_key": key}).ToSql()
	if err != nil {
		return
	}
	if _, err := ac.DB.ExecContext(ctx, query, args...); err != nil {
		log.Printf("Error deleting analytics cache entry %q: %v", key, err)
	}
}
