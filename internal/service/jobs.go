package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"loadscout"
	"loadscout/internal/repository"

	"github.com/google/uuid"
)

// Audit event types.
const (
	EventJobCreated        = "JOB_CREATED"
	EventValidationFlagged = "VALIDATION_FLAGGED"
	EventClarified         = "CLARIFIED"
	EventEstimated         = "ESTIMATED"
)

var (
	// ErrAddressRequired rejects intake submissions with no address.
	ErrAddressRequired = errors.New("address is required")
	// ErrJobNotFound mirrors the repository sentinel at the service boundary.
	ErrJobNotFound = repository.ErrJobNotFound
)

// JobService owns the intake-to-report lifecycle. It runs the validator and
// enricher over freshly normalized records, triggers the estimator once the
// house reading is confirmed, and merges everything into the canonical
// JobSummary.
type JobService struct {
	jobs      repository.JobRepo
	events    repository.EventRepo
	intake    Intake
	validator ExteriorValidation
	enricher  EquipmentEnrichment
	estimator LoadEstimation
	defaults  Defaults
}

func NewJobService(
	jobs repository.JobRepo,
	events repository.EventRepo,
	intake Intake,
	validator ExteriorValidation,
	enricher EquipmentEnrichment,
	estimator LoadEstimation,
	defaults Defaults,
) *JobService {
	return &JobService{
		jobs:      jobs,
		events:    events,
		intake:    intake,
		validator: validator,
		enricher:  enricher,
		estimator: estimator,
		defaults:  defaults,
	}
}

// Create normalizes the raw model payloads, runs validation and enrichment,
// estimates when the house reading needs no clarification, and persists the
// assembled summary. Missing equipment photos are not an error; the
// equipment-derived records are simply absent.
func (s *JobService) Create(ctx context.Context, p CreateJobParams) (loadscout.JobSummary, error) {
	address := strings.TrimSpace(p.Address)
	if address == "" {
		return loadscout.JobSummary{}, ErrAddressRequired
	}

	exterior := s.intake.NormalizeExterior(p.ExteriorRaw)
	equipment := s.intake.NormalizeEquipment(p.EquipmentRaw)

	outcome := s.validator.Validate(exterior)
	enriched, warranty, flags := s.enricher.Enrich(equipment)

	loadCalc, err := s.maybeEstimate(exterior, outcome, p.Sizing)
	if err != nil {
		return loadscout.JobSummary{}, err
	}

	now := time.Now().UTC()
	summary := loadscout.JobSummary{
		JobID:      uuid.NewString(),
		Address:    address,
		Exterior:   exterior,
		Validation: outcome,
		Equipment:  enriched,
		Warranty:   warranty,
		Flags:      flags,
		LoadCalc:   loadCalc,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.jobs.Save(ctx, summary, p.Sizing); err != nil {
		return loadscout.JobSummary{}, err
	}

	if err := s.appendJobEvents(ctx, summary, EventJobCreated, "Job created for "+address); err != nil {
		return loadscout.JobSummary{}, err
	}
	return summary, nil
}

// Get returns one assembled summary.
func (s *JobService) Get(ctx context.Context, id string) (loadscout.JobSummary, error) {
	summary, _, err := s.jobs.Get(ctx, id)
	return summary, err
}

// List returns all assembled summaries in creation order.
func (s *JobService) List(ctx context.Context) ([]loadscout.JobSummary, error) {
	return s.jobs.List(ctx)
}

// Clarify applies a human-corrected exterior record. The correction enters
// the pipeline as a fresh record: it is re-validated from scratch and, once
// clean, the estimator re-runs with the submitted or previously stored
// sizing parameters. Equipment-derived records are untouched.
func (s *JobService) Clarify(ctx context.Context, id string, p ClarifyParams) (loadscout.JobSummary, error) {
	summary, storedSizing, err := s.jobs.Get(ctx, id)
	if err != nil {
		return loadscout.JobSummary{}, err
	}

	corrected := p.Exterior
	if corrected.StoryCount != nil && !loadscout.IsValidStoryCount(*corrected.StoryCount) {
		corrected.StoryCount = nil
	}

	sizing := p.Sizing
	if sizing == nil {
		sizing = storedSizing
	}

	outcome := s.validator.Validate(&corrected)
	loadCalc, err := s.maybeEstimate(&corrected, outcome, sizing)
	if err != nil {
		return loadscout.JobSummary{}, err
	}

	summary.Exterior = &corrected
	summary.Validation = outcome
	summary.LoadCalc = loadCalc
	summary.UpdatedAt = time.Now().UTC()

	if err := s.jobs.Save(ctx, summary, sizing); err != nil {
		return loadscout.JobSummary{}, err
	}

	if err := s.appendJobEvents(ctx, summary, EventClarified, "Exterior attributes clarified"); err != nil {
		return loadscout.JobSummary{}, err
	}
	return summary, nil
}

// maybeEstimate runs the estimator only when the house reading is usable
// and sizing parameters exist. Estimator errors surface to the caller; no
// partial result is kept.
func (s *JobService) maybeEstimate(exterior *loadscout.HouseExteriorAttributes, outcome loadscout.ValidationOutcome, sizing *loadscout.SizingParams) (*loadscout.LoadCalcResult, error) {
	if exterior == nil || outcome.NeedsClarification || sizing == nil {
		return nil, nil
	}
	result, err := s.estimator.Estimate(s.buildLoadInput(exterior, *sizing))
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// buildLoadInput merges photo-derived envelope attributes with user-entered
// sizing parameters, filling zero design conditions from config defaults.
func (s *JobService) buildLoadInput(exterior *loadscout.HouseExteriorAttributes, sizing loadscout.SizingParams) loadscout.LoadCalcInput {
	stories := 1.0
	if exterior.StoryCount != nil {
		stories = *exterior.StoryCount
	}

	deltaT := sizing.DesignDeltaTF
	if deltaT == 0 {
		deltaT = s.defaults.DesignDeltaTF
	}
	rh := sizing.IndoorRHPercent
	if rh == 0 {
		rh = s.defaults.IndoorRHPercent
	}

	return loadscout.LoadCalcInput{
		ConditionedArea:      sizing.ConditionedArea,
		StoryCount:           stories,
		WindowDensity:        exterior.WindowDensity,
		Orientation:          sizing.Orientation,
		Insulation:           sizing.Insulation,
		SidingMaterial:       exterior.SidingMaterial,
		DesignDeltaTF:        deltaT,
		IndoorRHPercent:      rh,
		DuctsInUnconditioned: sizing.DuctsInUnconditioned,
	}
}

// appendJobEvents records the lifecycle event plus derived markers for a
// flagged validation and a completed estimate.
func (s *JobService) appendJobEvents(ctx context.Context, summary loadscout.JobSummary, eventType, description string) error {
	if err := s.events.Append(ctx, loadscout.PipelineEvent{
		EventID:     uuid.NewString(),
		OccurredAt:  summary.UpdatedAt,
		Type:        eventType,
		Description: description,
		Metadata:    map[string]any{"job_id": summary.JobID},
	}); err != nil {
		return err
	}

	if summary.Validation.NeedsClarification {
		if err := s.events.Append(ctx, loadscout.PipelineEvent{
			EventID:     uuid.NewString(),
			OccurredAt:  summary.UpdatedAt,
			Type:        EventValidationFlagged,
			Description: "Exterior reading needs clarification",
			Metadata: map[string]any{
				"job_id": summary.JobID,
				"issues": summary.Validation.Issues,
			},
		}); err != nil {
			return err
		}
	}

	if summary.LoadCalc != nil {
		if err := s.events.Append(ctx, loadscout.PipelineEvent{
			EventID:     uuid.NewString(),
			OccurredAt:  summary.UpdatedAt,
			Type:        EventEstimated,
			Description: "Load estimate computed",
			Metadata: map[string]any{
				"job_id":           summary.JobID,
				"total_load_btuh":  summary.LoadCalc.TotalLoadBTUH,
				"recommended_tons": summary.LoadCalc.RecommendedTons,
			},
		}); err != nil {
			return err
		}
	}
	return nil
}
