package loadscout

// SidingMaterial is the dominant exterior cladding read from a photo.
type SidingMaterial string

const (
	SidingVinyl       SidingMaterial = "vinyl"
	SidingWood        SidingMaterial = "wood"
	SidingFiberCement SidingMaterial = "fiber-cement"
	SidingStucco      SidingMaterial = "stucco"
	SidingBrick       SidingMaterial = "brick"
	SidingMixed       SidingMaterial = "mixed"
	SidingUnknown     SidingMaterial = "unknown"
)

// WindowDensity is a coarse glazing estimate relative to typical housing stock.
type WindowDensity string

const (
	WindowsFew     WindowDensity = "few"
	WindowsAverage WindowDensity = "average"
	WindowsMany    WindowDensity = "many"
	WindowsUnknown WindowDensity = "unknown"
	WindowsUnclear WindowDensity = "unclear"
)

// GutterPresence: yes | no | unclear.
type GutterPresence string

const (
	GuttersYes     GutterPresence = "yes"
	GuttersNo      GutterPresence = "no"
	GuttersUnclear GutterPresence = "unclear"
)

// ExteriorCondition: good | average | poor.
type ExteriorCondition string

const (
	ConditionGood    ExteriorCondition = "good"
	ConditionAverage ExteriorCondition = "average"
	ConditionPoor    ExteriorCondition = "poor"
)

// ValidStoryCounts are the only story counts the intake accepts; anything
// else normalizes to unknown (nil).
var ValidStoryCounts = []float64{1, 1.5, 2, 3}

// HouseExteriorAttributes is the structured reading of one exterior photo.
// Every enum field holds a valid value or its sentinel once the record has
// passed intake normalization; nil StoryCount means unknown. A clarified
// copy produced by a human re-enters the pipeline as a fresh record.
type HouseExteriorAttributes struct {
	StoryCount        *float64          `json:"story_count"` // one of 1, 1.5, 2, 3
	SidingMaterial    SidingMaterial    `json:"siding_material"`
	WindowDensity     WindowDensity     `json:"window_density"`
	GutterPresence    GutterPresence    `json:"gutter_presence"`
	ExteriorCondition ExteriorCondition `json:"exterior_condition"`
	Confidence        float64           `json:"confidence"` // [0,1]; 0 when the model reported none
}

// ValidationOutcome pairs an exterior record with the checks it failed.
// Issues keep check-evaluation order.
type ValidationOutcome struct {
	Issues             []string `json:"issues"`
	NeedsClarification bool     `json:"needs_clarification"`
}

// IsValidStoryCount reports whether v is an accepted story count.
func IsValidStoryCount(v float64) bool {
	for _, s := range ValidStoryCounts {
		if v == s {
			return true
		}
	}
	return false
}
