package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"aidetect/internal/detect"
	deterr "aidetect/internal/errors"
)

// GetResult returns the cached result for a key, or (nil, nil) on a miss.
// Expired entries count as misses.
func (db *DB) GetResult(ctx context.Context, key string) (*detect.AnalysisResult, error) {
	var payload string
	err := db.conn.QueryRowContext(ctx, `
		SELECT result FROM result_cache
		WHERE cache_key = ? AND expires_at > ?`,
		key, time.Now().Unix(),
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, deterr.New(deterr.StorageFailure, "read cache", err)
	}

	var res detect.AnalysisResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		// A corrupt entry is a miss; the caller recomputes and overwrites.
		db.log.Warn().Str("key", key).Err(err).Msg("dropping corrupt cache entry")
		db.conn.ExecContext(ctx, `DELETE FROM result_cache WHERE cache_key = ?`, key)
		return nil, nil
	}
	return &res, nil
}

// PutResult stores a result under the key with the given time to live.
func (db *DB) PutResult(ctx context.Context, key string, res *detect.AnalysisResult, ttl time.Duration) error {
	payload, err := json.Marshal(res)
	if err != nil {
		return deterr.New(deterr.StorageFailure, "encode cached result", err)
	}
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO result_cache (cache_key, result, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT(cache_key) DO UPDATE SET
			result = excluded.result,
			expires_at = excluded.expires_at`,
		key, string(payload), time.Now().Add(ttl).Unix(),
	)
	if err != nil {
		return deterr.New(deterr.StorageFailure, "write cache", err)
	}
	return nil
}

// CleanupExpired deletes stale cache entries and returns how many went.
func (db *DB) CleanupExpired(ctx context.Context) (int64, error) {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM result_cache WHERE expires_at <= ?`, time.Now().Unix())
	if err != nil {
		return 0, deterr.New(deterr.StorageFailure, "cleanup cache", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		db.log.Debug().Int64("removed", n).Msg("cache cleanup")
	}
	return n, nil
}
