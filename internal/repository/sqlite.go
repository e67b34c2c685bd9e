package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/akashkanabur/AIAgentEvaluation/internal/domain"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// For in-memory SQLite, multiple connections create separate databases.
	// Keep a single connection to avoid schema/data disappearing across goroutines.
	if dsn == ":memory:" || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *SQLiteStore) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS evaluations (
			id TEXT PRIMARY KEY,
			interaction_id TEXT NOT NULL,
			owner_id TEXT NOT NULL,
			prompt TEXT NOT NULL,
			response TEXT NOT NULL,
			score REAL NOT NULL,
			latency_ms INTEGER NOT NULL DEFAULT 0,
			flags TEXT,
			pii_tokens_redacted INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_created ON evaluations(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_owner ON evaluations(owner_id, created_at)`,
		`CREATE TABLE IF NOT EXISTS policies (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			run_policy TEXT NOT NULL,
			sample_rate_pct REAL NOT NULL,
			max_eval_per_day INTEGER NOT NULL,
			obfuscate_pii INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL
		)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w\n%s", err, m)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// InsertEvaluation persists an admitted evaluation record.
func (s *SQLiteStore) InsertEvaluation(ctx context.Context, ev *domain.Evaluation) error {
	flags, _ := json.Marshal(ev.Flags)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO evaluations (id, interaction_id, owner_id, prompt, response, score, latency_ms, flags, pii_tokens_redacted, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.InteractionID, ev.OwnerID, ev.Prompt, ev.Response, ev.Score, ev.LatencyMs, string(flags), ev.PIITokensRedacted, ev.CreatedAt)
	return err
}

// GetEvaluation retrieves an evaluation by ID.
func (s *SQLiteStore) GetEvaluation(ctx context.Context, id string) (*domain.Evaluation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, interaction_id, owner_id, prompt, response, score, latency_ms, flags, pii_tokens_redacted, created_at
		 FROM evaluations WHERE id = ?`, id)
	ev, err := scanEvaluation(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ev, nil
}

// ListEvaluations retrieves evaluations most recent first. A zero before
// means no upper bound; limit <= 0 means no limit.
func (s *SQLiteStore) ListEvaluations(ctx context.Context, limit int, before time.Time) ([]domain.Evaluation, error) {
	query := `SELECT id, interaction_id, owner_id, prompt, response, score, latency_ms, flags, pii_tokens_redacted, created_at
	          FROM evaluations`
	args := []interface{}{}

	if !before.IsZero() {
		query += ` WHERE created_at < ?`
		args = append(args, before)
	}

	query += ` ORDER BY created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var evals []domain.Evaluation
	for rows.Next() {
		ev, err := scanEvaluation(rows.Scan)
		if err != nil {
			return nil, err
		}
		evals = append(evals, *ev)
	}
	return evals, rows.Err()
}

// CountEvaluationsSince counts evaluations created at or after t. Used to
// prime the daily quota counter.
func (s *SQLiteStore) CountEvaluationsSince(ctx context.Context, t time.Time) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM evaluations WHERE created_at >= ?`, t).Scan(&n)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// GetPolicy retrieves the policy row, or nil when none has been saved yet.
func (s *SQLiteStore) GetPolicy(ctx context.Context) (*domain.Policy, error) {
	var pol domain.Policy
	var obfuscate int
	err := s.db.QueryRowContext(ctx,
		`SELECT run_policy, sample_rate_pct, max_eval_per_day, obfuscate_pii, updated_at FROM policies WHERE id = 1`).
		Scan(&pol.RunPolicy, &pol.SampleRatePct, &pol.MaxEvalPerDay, &obfuscate, &pol.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	pol.ObfuscatePII = obfuscate != 0
	return &pol, nil
}

// SavePolicy creates or replaces the single policy row.
func (s *SQLiteStore) SavePolicy(ctx context.Context, pol *domain.Policy) error {
	obfuscate := 0
	if pol.ObfuscatePII {
		obfuscate = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO policies (id, run_policy, sample_rate_pct, max_eval_per_day, obfuscate_pii, updated_at)
		 VALUES (1, ?, ?, ?, ?, ?)`,
		pol.RunPolicy, pol.SampleRatePct, pol.MaxEvalPerDay, obfuscate, pol.UpdatedAt)
	return err
}

func scanEvaluation(scan func(dest ...interface{}) error) (*domain.Evaluation, error) {
	var ev domain.Evaluation
	var flags sql.NullString
	if err := scan(&ev.ID, &ev.InteractionID, &ev.OwnerID, &ev.Prompt, &ev.Response, &ev.Score, &ev.LatencyMs, &flags, &ev.PIITokensRedacted, &ev.CreatedAt); err != nil {
		return nil, err
	}
	if flags.Valid && flags.String != "" && flags.String != "null" {
		if err := json.Unmarshal([]byte(flags.String), &ev.Flags); err != nil {
			return nil, fmt.Errorf("failed to decode flags for %s: %w", ev.ID, err)
		}
	}
	return &ev, nil
}
