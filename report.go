package loadscout

import "time"

// PipelineEvent is one audit-log entry for a job's trip through the pipeline.
type PipelineEvent struct {
	EventID     string    `json:"event_id"`
	OccurredAt  time.Time `json:"occurred_at"`
	Type        string    `json:"type"`        // JOB_CREATED | VALIDATION_FLAGGED | CLARIFIED | ESTIMATED
	Description string    `json:"description"` // human-readable
	Metadata    any       `json:"metadata,omitempty"`
}

// JobSummary is the canonical record published for one intake job. Absent
// sub-records are explicit nulls so downstream rendering can show "N/A"
// uniformly. Only a clarification updates an assembled record.
type JobSummary struct {
	JobID      string                   `json:"job_id"`
	Address    string                   `json:"address"`
	Exterior   *HouseExteriorAttributes `json:"exterior"`
	Validation ValidationOutcome        `json:"validation"`
	Equipment  *EquipmentAttributes     `json:"equipment"`
	Warranty   WarrantyStatus           `json:"warranty"`
	Flags      *EquipmentFlags          `json:"equipment_flags"`
	LoadCalc   *LoadCalcResult          `json:"load_calc"`
	CreatedAt  time.Time                `json:"created_at"`
	UpdatedAt  time.Time                `json:"updated_at"`
}

type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // never exposed
}
