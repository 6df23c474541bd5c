package service

import (
	"context"
	"encoding/json"
	"time"

	"loadscout"
	"loadscout/internal/lookup"
	"loadscout/internal/repository"

	"github.com/jonboulle/clockwork"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Intake is the single entry point converting raw vision-model output into
// attribute records. Malformed or empty payloads normalize to nil (absent),
// never to an error.
type Intake interface {
	NormalizeExterior(raw json.RawMessage) *loadscout.HouseExteriorAttributes
	NormalizeEquipment(raw json.RawMessage) *loadscout.EquipmentAttributes
}

// ExteriorValidation decides whether a house reading is usable as-is or
// needs human clarification.
type ExteriorValidation interface {
	Validate(attrs *loadscout.HouseExteriorAttributes) loadscout.ValidationOutcome
}

// EquipmentEnrichment runs AFUE backfill, warranty derivation, and
// cross-field flag derivation over one equipment record. The input is never
// mutated; a possibly-updated copy is returned.
type EquipmentEnrichment interface {
	Enrich(attrs *loadscout.EquipmentAttributes) (*loadscout.EquipmentAttributes, loadscout.WarrantyStatus, *loadscout.EquipmentFlags)
}

// LoadEstimation converts envelope attributes plus design conditions into
// sizing numbers.
type LoadEstimation interface {
	Estimate(in loadscout.LoadCalcInput) (loadscout.LoadCalcResult, error)
}

// Jobs owns the intake-to-report lifecycle: assemble, persist, clarify.
type Jobs interface {
	Create(ctx context.Context, p CreateJobParams) (loadscout.JobSummary, error)
	Get(ctx context.Context, id string) (loadscout.JobSummary, error)
	List(ctx context.Context) ([]loadscout.JobSummary, error)
	Clarify(ctx context.Context, id string, p ClarifyParams) (loadscout.JobSummary, error)
}

// EventLog exposes the append-only pipeline audit log with filtering.
type EventLog interface {
	List(ctx context.Context, f LogFilter) ([]loadscout.PipelineEvent, error)
}

// CreateJobParams carries one intake submission: raw model payloads for the
// two photo analyses plus the homeowner-entered sizing parameters.
type CreateJobParams struct {
	Address      string
	ExteriorRaw  json.RawMessage
	EquipmentRaw json.RawMessage
	Sizing       *loadscout.SizingParams
}

// ClarifyParams carries a human-corrected exterior record. Sizing is
// optional; when nil the params stored at create time are reused.
type ClarifyParams struct {
	Exterior loadscout.HouseExteriorAttributes
	Sizing   *loadscout.SizingParams
}

// LogFilter supports history filtering by time range and type.
type LogFilter struct {
	From time.Time // inclusive; zero means no lower bound
	To   time.Time // inclusive; zero means no upper bound
	Type string    // "", "JOB_CREATED", "VALIDATION_FLAGGED", "CLARIFIED", "ESTIMATED"
}

// Defaults are config-supplied design conditions applied when a job's
// sizing parameters leave them zero.
type Defaults struct {
	DesignDeltaTF   float64
	IndoorRHPercent float64
}

//
// Root Service aggregates all sub-services.
//

type Service struct {
	Intake
	ExteriorValidation
	EquipmentEnrichment
	LoadEstimation
	Jobs
	EventLog
	Authorization
}

// NewService wires the repository layer, the injected lookup table, and the
// clock into concrete services.
func NewService(repos *repository.Repository, table *lookup.Table, clock clockwork.Clock, defaults Defaults, signingKey string) *Service {
	intake := NewIntakeService()
	validator := NewExteriorValidationService()
	enricher := NewEquipmentEnrichmentService(table, clock)
	estimator := NewLoadEstimatorService()

	return &Service{
		Intake:              intake,
		ExteriorValidation:  validator,
		EquipmentEnrichment: enricher,
		LoadEstimation:      estimator,
		Jobs:                NewJobService(repos.Jobs, repos.Events, intake, validator, enricher, estimator, defaults),
		EventLog:            NewEventLogService(repos.Events),
		Authorization:       NewAuthService(repos.Auth, signingKey),
	}
}
