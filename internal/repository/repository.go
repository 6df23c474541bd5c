package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"loadscout"
)

// ErrJobNotFound is returned by JobRepo lookups for unknown IDs.
var ErrJobNotFound = errors.New("job not found")

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*loadscout.User, error)
}

// JobRepo persists assembled job summaries plus the sizing parameters the
// estimator needs when a clarification re-runs it.
type JobRepo interface {
	Save(ctx context.Context, summary loadscout.JobSummary, sizing *loadscout.SizingParams) error
	Get(ctx context.Context, id string) (loadscout.JobSummary, *loadscout.SizingParams, error)
	List(ctx context.Context) ([]loadscout.JobSummary, error)
}

// EventRepo is the append-only pipeline audit log with filtered access.
type EventRepo interface {
	Append(ctx context.Context, e loadscout.PipelineEvent) error
	List(ctx context.Context, from, to time.Time, typ string) ([]loadscout.PipelineEvent, error)
}

type Repository struct {
	Jobs   JobRepo
	Events EventRepo
	Auth   Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Jobs:   NewJobSQLite(db),
		Events: NewEventSQLite(db),
		Auth:   NewUserRepository(db),
	}
}
