package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"loadscout"
)

type JobSQLite struct {
	db *sql.DB
}

func NewJobSQLite(db *sql.DB) *JobSQLite {
	return &JobSQLite{db: db}
}

var _ JobRepo = (*JobSQLite)(nil)

const (
	upsertJobSQL = `
		INSERT INTO jobs (id, address, summary, sizing_params, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			address=excluded.address,
			summary=excluded.summary,
			sizing_params=excluded.sizing_params,
			updated_at=excluded.updated_at
	`

	selectJobSQL  = `SELECT summary, sizing_params FROM jobs WHERE id=?`
	selectJobsSQL = `SELECT summary FROM jobs ORDER BY created_at ASC`
)

// marshalSizing converts sizing params to a nullable JSON column value.
func marshalSizing(sizing *loadscout.SizingParams) (*string, error) {
	if sizing == nil {
		return nil, nil
	}
	b, err := json.Marshal(sizing)
	if err != nil {
		return nil, fmt.Errorf("marshal sizing params: %w", err)
	}
	s := string(b)
	return &s, nil
}

// Save upserts the summary row keyed by job ID. Timestamps are persisted in
// UTC; a zero UpdatedAt is set to now.
func (r *JobSQLite) Save(ctx context.Context, summary loadscout.JobSummary, sizing *loadscout.SizingParams) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("marshal job summary: %w", err)
	}
	sizingJSON, err := marshalSizing(sizing)
	if err != nil {
		return err
	}

	created := summary.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	updated := summary.UpdatedAt
	if updated.IsZero() {
		updated = time.Now().UTC()
	}

	_, err = r.db.ExecContext(ctx, upsertJobSQL,
		summary.JobID,
		summary.Address,
		string(summaryJSON),
		sizingJSON,
		created.UTC(),
		updated.UTC(),
	)
	return err
}

// Get loads one job summary and its stored sizing params, if any.
func (r *JobSQLite) Get(ctx context.Context, id string) (loadscout.JobSummary, *loadscout.SizingParams, error) {
	row := r.db.QueryRowContext(ctx, selectJobSQL, id)

	var summaryJSON string
	var sizingJSON sql.NullString
	if err := row.Scan(&summaryJSON, &sizingJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return loadscout.JobSummary{}, nil, ErrJobNotFound
		}
		return loadscout.JobSummary{}, nil, err
	}

	var summary loadscout.JobSummary
	if err := json.Unmarshal([]byte(summaryJSON), &summary); err != nil {
		return loadscout.JobSummary{}, nil, fmt.Errorf("unmarshal job %s: %w", id, err)
	}

	var sizing *loadscout.SizingParams
	if sizingJSON.Valid && sizingJSON.String != "" {
		sizing = &loadscout.SizingParams{}
		if err := json.Unmarshal([]byte(sizingJSON.String), sizing); err != nil {
			return loadscout.JobSummary{}, nil, fmt.Errorf("unmarshal sizing params for job %s: %w", id, err)
		}
	}

	return summary, sizing, nil
}

// List returns all summaries ordered by creation time.
func (r *JobSQLite) List(ctx context.Context) ([]loadscout.JobSummary, error) {
	rows, err := r.db.QueryContext(ctx, selectJobsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]loadscout.JobSummary, 0, 16)
	for rows.Next() {
		var summaryJSON string
		if err := rows.Scan(&summaryJSON); err != nil {
			return nil, err
		}
		var summary loadscout.JobSummary
		if err := json.Unmarshal([]byte(summaryJSON), &summary); err != nil {
			return nil, fmt.Errorf("unmarshal job summary: %w", err)
		}
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
