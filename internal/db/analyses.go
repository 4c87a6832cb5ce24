package db

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// HashInput returns the hex SHA-256 digest used as an analysis input hash.
func HashInput(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])
}

// SaveAnalysis stores result under a new ID. input is hashed, never stored.
func (db *DB) SaveAnalysis(ctx context.Context, kind Kind, input string, result any) (uuid.UUID, error) {
	if !kind.Valid() {
		return uuid.Nil, fmt.Errorf("unknown analysis kind %q", kind)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal %s result: %w", kind, err)
	}

	id := uuid.New()
	_, err = db.pool.Exec(ctx,
		`INSERT INTO analyses (id, kind, input_hash, result)
		 VALUES ($1, $2, $3, $4)`,
		id, string(kind), HashInput(input), payload,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to save %s analysis: %w", kind, err)
	}
	return id, nil
}

// GetAnalysis returns the analysis with id, or nil when there is none.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	var a Analysis
	var kind string
	err := db.pool.QueryRow(ctx,
		`SELECT id, kind, input_hash, result, created_at
		 FROM analyses WHERE id = $1`,
		id,
	).Scan(&a.ID, &kind, &a.InputHash, &a.Result, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis %s: %w", id, err)
	}
	a.Kind = Kind(kind)
	return &a, nil
}

// ListAnalyses returns the newest analyses, optionally filtered by kind.
// An empty kind lists every kind.
func (db *DB) ListAnalyses(ctx context.Context, kind Kind, limit int) ([]Analysis, error) {
	limit = clampLimit(limit)

	rows, err := db.pool.Query(ctx,
		`SELECT id, kind, input_hash, result, created_at
		 FROM analyses
		 WHERE $1 = '' OR kind = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		string(kind), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	analyses := make([]Analysis, 0)
	for rows.Next() {
		var a Analysis
		var k string
		if err := rows.Scan(&a.ID, &k, &a.InputHash, &a.Result, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		a.Kind = Kind(k)
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate analyses: %w", err)
	}
	return analyses, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return min(limit, MaxListLimit)
}
