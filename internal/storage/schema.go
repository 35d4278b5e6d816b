package storage

import (
	deterr "aidetect/internal/errors"
)

const schema = `
CREATE TABLE IF NOT EXISTS analyses (
    id           TEXT PRIMARY KEY,
    filename     TEXT NOT NULL DEFAULT '',
    language     TEXT NOT NULL,
    fingerprint  TEXT NOT NULL,
    size_bytes   INTEGER NOT NULL,
    percentage   INTEGER NOT NULL,
    ai_generated INTEGER NOT NULL,
    confidence   TEXT NOT NULL,
    summary      TEXT NOT NULL,
    findings     TEXT NOT NULL,
    created_at   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_analyses_created ON analyses(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_analyses_fingerprint ON analyses(fingerprint);
CREATE INDEX IF NOT EXISTS idx_analyses_language ON analyses(language);

CREATE TABLE IF NOT EXISTS result_cache (
    cache_key  TEXT PRIMARY KEY,
    result     TEXT NOT NULL,
    expires_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_result_cache_expires ON result_cache(expires_at);
`

func (db *DB) applySchema() error {
	if _, err := db.conn.Exec(schema); err != nil {
		return deterr.New(deterr.StorageFailure, "apply schema", err)
	}
	return nil
}
