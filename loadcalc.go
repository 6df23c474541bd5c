package loadscout

// Orientation of the longest glazed facade.
type Orientation string

const (
	OrientationNorth   Orientation = "north"
	OrientationSouth   Orientation = "south"
	OrientationEast    Orientation = "east"
	OrientationWest    Orientation = "west"
	OrientationMixed   Orientation = "mixed"
	OrientationUnknown Orientation = "unknown"
)

// InsulationGrade: poor | average | good.
type InsulationGrade string

const (
	InsulationPoor    InsulationGrade = "poor"
	InsulationAverage InsulationGrade = "average"
	InsulationGood    InsulationGrade = "good"
)

// LoadCalcInput feeds the sizing estimator. All enum fields are assumed
// already constrained; only ConditionedArea is validated (> 0).
type LoadCalcInput struct {
	ConditionedArea      float64         `json:"conditioned_area_sqft"`
	StoryCount           float64         `json:"story_count"` // >= 1
	WindowDensity        WindowDensity   `json:"window_density"`
	Orientation          Orientation     `json:"orientation"`
	Insulation           InsulationGrade `json:"insulation_grade"`
	SidingMaterial       SidingMaterial  `json:"siding_material"`
	DesignDeltaTF        float64         `json:"design_delta_t_f"`
	IndoorRHPercent      float64         `json:"indoor_rh_percent"`
	DuctsInUnconditioned bool            `json:"ducts_in_unconditioned_space"`
}

// LoadCalcResult is the estimator output. Sensible and latent are rounded
// independently before summing, so TotalLoadBTUH is always their exact sum.
// Notes keep factor-evaluation order and end with a sizing summary line.
type LoadCalcResult struct {
	SensibleLoadBTUH int      `json:"sensible_load_btuh"`
	LatentLoadBTUH   int      `json:"latent_load_btuh"`
	TotalLoadBTUH    int      `json:"total_load_btuh"`
	RecommendedTons  float64  `json:"recommended_capacity_tons"` // multiple of 0.25
	Notes            []string `json:"notes"`
}

// SizingParams is the user-entered portion of LoadCalcInput: everything the
// exterior photo cannot supply. Stored with a job so a later clarification
// can re-run the estimator without re-asking.
type SizingParams struct {
	ConditionedArea      float64         `json:"conditioned_area_sqft"`
	Orientation          Orientation     `json:"orientation"`
	Insulation           InsulationGrade `json:"insulation_grade"`
	DesignDeltaTF        float64         `json:"design_delta_t_f,omitempty"`   // 0 means use configured default
	IndoorRHPercent      float64         `json:"indoor_rh_percent,omitempty"`  // 0 means use configured default
	DuctsInUnconditioned bool            `json:"ducts_in_unconditioned_space"`
}
