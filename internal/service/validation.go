package service

import (
	"fmt"

	"loadscout"
)

// minExteriorConfidence is the threshold below which a reading is sent back
// to the homeowner for confirmation. Absent confidence counts as 0.
const minExteriorConfidence = 0.75

const (
	issueNoPhoto = "no readable exterior photo; please re-upload a clearer photo of the front of the house"
	issueStories = "story count could not be determined; choose one of 1, 1.5, 2, or 3"
	issueWindows = "window density could not be determined; choose one of few, average, or many"
	issueSiding  = "siding material could not be determined; choose one of vinyl, wood, fiber-cement, stucco, brick, or mixed"
)

// ExteriorValidationService checks a house reading for completeness and
// confidence. Pure computation over already-fetched data; no side effects.
type ExteriorValidationService struct{}

func NewExteriorValidationService() *ExteriorValidationService {
	return &ExteriorValidationService{}
}

// Validate runs every check unconditionally, in a fixed order, appending one
// issue per failed check. Absent attributes short-circuit to a single
// re-upload issue.
func (s *ExteriorValidationService) Validate(attrs *loadscout.HouseExteriorAttributes) loadscout.ValidationOutcome {
	if attrs == nil {
		return loadscout.ValidationOutcome{
			Issues:             []string{issueNoPhoto},
			NeedsClarification: true,
		}
	}

	var issues []string

	if attrs.Confidence < minExteriorConfidence {
		issues = append(issues, fmt.Sprintf(
			"exterior reading confidence %.2f is below %.2f; please confirm the extracted details",
			attrs.Confidence, minExteriorConfidence))
	}
	if attrs.StoryCount == nil {
		issues = append(issues, issueStories)
	}
	if windowDensityUnusable(attrs.WindowDensity) {
		issues = append(issues, issueWindows)
	}
	if sidingUnusable(attrs.SidingMaterial) {
		issues = append(issues, issueSiding)
	}

	return loadscout.ValidationOutcome{
		Issues:             issues,
		NeedsClarification: len(issues) > 0,
	}
}

func windowDensityUnusable(d loadscout.WindowDensity) bool {
	return d == "" || d == loadscout.WindowsUnknown || d == loadscout.WindowsUnclear
}

func sidingUnusable(m loadscout.SidingMaterial) bool {
	return m == "" || m == loadscout.SidingUnknown
}
