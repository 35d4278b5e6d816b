package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"aidetect/internal/detect"
	deterr "aidetect/internal/errors"
)

// Record is one stored analysis.
type Record struct {
	ID          string           `json:"id"`
	Filename    string           `json:"filename,omitempty"`
	Language    string           `json:"language"`
	Fingerprint string           `json:"fingerprint"`
	SizeBytes   int              `json:"size_bytes"`
	Percentage  int              `json:"percentage"`
	AIGenerated bool             `json:"ai_generated"`
	Confidence  string           `json:"confidence"`
	Summary     string           `json:"summary"`
	Findings    []detect.Finding `json:"findings"`
	CreatedAt   time.Time        `json:"created_at"`
}

// InsertAnalysis stores one result and returns the generated record ID.
func (db *DB) InsertAnalysis(ctx context.Context, res *detect.AnalysisResult, sizeBytes int) (string, error) {
	findings, err := json.Marshal(res.Findings)
	if err != nil {
		return "", deterr.New(deterr.StorageFailure, "encode findings", err)
	}

	id := uuid.NewString()
	_, err = db.conn.ExecContext(ctx, `
		INSERT INTO analyses
			(id, filename, language, fingerprint, size_bytes, percentage,
			 ai_generated, confidence, summary, findings)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, res.Filename, res.Language, res.Fingerprint, sizeBytes,
		res.Percentage, res.AIGenerated, string(res.Confidence), res.Summary,
		string(findings),
	)
	if err != nil {
		return "", deterr.New(deterr.StorageFailure, "insert analysis", err)
	}
	return id, nil
}

// ListAnalyses returns one page of history, newest first, plus the total
// row count for pagination.
func (db *DB) ListAnalyses(ctx context.Context, page, perPage int) ([]Record, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}

	var total int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM analyses`).Scan(&total); err != nil {
		return nil, 0, deterr.New(deterr.StorageFailure, "count analyses", err)
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, filename, language, fingerprint, size_bytes, percentage,
		       ai_generated, confidence, summary, findings, created_at
		FROM analyses
		ORDER BY created_at DESC, id
		LIMIT ? OFFSET ?`,
		perPage, (page-1)*perPage,
	)
	if err != nil {
		return nil, 0, deterr.New(deterr.StorageFailure, "list analyses", err)
	}
	defer rows.Close()

	records := make([]Record, 0, perPage)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, deterr.New(deterr.StorageFailure, "iterate analyses", err)
	}
	return records, total, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var findings string
	if err := rows.Scan(&rec.ID, &rec.Filename, &rec.Language, &rec.Fingerprint,
		&rec.SizeBytes, &rec.Percentage, &rec.AIGenerated, &rec.Confidence,
		&rec.Summary, &findings, &rec.CreatedAt); err != nil {
		return Record{}, deterr.New(deterr.StorageFailure, "scan analysis row", err)
	}
	if err := json.Unmarshal([]byte(findings), &rec.Findings); err != nil {
		return Record{}, deterr.New(deterr.StorageFailure, "decode findings", err)
	}
	return rec, nil
}

// Stats summarizes the stored history.
type Stats struct {
	TotalAnalyses int            `json:"total_analyses"`
	FlaggedCount  int            `json:"flagged_count"`
	AvgPercentage float64        `json:"avg_percentage"`
	ByLanguage    map[string]int `json:"by_language"`
	AnalysesByDay map[string]int `json:"analyses_by_day"`
}

// GetStats aggregates counts over the whole history table.
func (db *DB) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByLanguage:    make(map[string]int),
		AnalysesByDay: make(map[string]int),
	}

	err := db.conn.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(ai_generated), 0),
		       COALESCE(AVG(percentage), 0)
		FROM analyses`,
	).Scan(&stats.TotalAnalyses, &stats.FlaggedCount, &stats.AvgPercentage)
	if err != nil {
		return nil, deterr.New(deterr.StorageFailure, "aggregate totals", err)
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT language, COUNT(*) FROM analyses GROUP BY language`)
	if err != nil {
		return nil, deterr.New(deterr.StorageFailure, "aggregate languages", err)
	}
	defer rows.Close()
	for rows.Next() {
		var lang string
		var n int
		if err := rows.Scan(&lang, &n); err != nil {
			return nil, deterr.New(deterr.StorageFailure, "scan language row", err)
		}
		stats.ByLanguage[lang] = n
	}
	if err := rows.Err(); err != nil {
		return nil, deterr.New(deterr.StorageFailure, "iterate languages", err)
	}

	dayRows, err := db.conn.QueryContext(ctx, `
		SELECT DATE(created_at), COUNT(*)
		FROM analyses
		WHERE created_at >= DATETIME('now', '-30 days')
		GROUP BY DATE(created_at)`)
	if err != nil {
		return nil, deterr.New(deterr.StorageFailure, "aggregate days", err)
	}
	defer dayRows.Close()
	for dayRows.Next() {
		var day string
		var n int
		if err := dayRows.Scan(&day, &n); err != nil {
			return nil, deterr.New(deterr.StorageFailure, "scan day row", err)
		}
		stats.AnalysesByDay[day] = n
	}
	if err := dayRows.Err(); err != nil {
		return nil, deterr.New(deterr.StorageFailure, "iterate days", err)
	}

	return stats, nil
}

// AllRecords streams the full history, newest first. Used by the exporter.
func (db *DB) AllRecords(ctx context.Context) ([]Record, error) {
	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, filename, language, fingerprint, size_bytes, percentage,
		       ai_generated, confidence, summary, findings, created_at
		FROM analyses
		ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, deterr.New(deterr.StorageFailure, "read all analyses", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, deterr.New(deterr.StorageFailure, "iterate analyses", err)
	}
	return records, nil
}
