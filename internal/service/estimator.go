package service

import (
	"errors"
	"fmt"
	"math"

	"loadscout"
)

// The per-area sensible baseline is 10 BTU/h per square foot at a 30°F
// design temperature difference, scaled linearly with ΔT.
const (
	baseRatePerSqFt = 10.0
	baseDesignDTF   = 30.0
)

// Latent ratio step function over indoor relative humidity. Kept as a step
// function rather than interpolated; the boundary inclusions (≤35, ≥55) are
// part of the output contract.
const (
	latentRatioDry     = 0.15
	latentRatioTypical = 0.20
	latentRatioHumid   = 0.25

	dryRHPercent   = 35.0
	humidRHPercent = 55.0
)

const btuhPerTon = 12000.0

// ErrInvalidArea is the estimator's single validated precondition.
var ErrInvalidArea = errors.New("conditioned area must be greater than zero")

// LoadEstimatorService is a pure sizing estimator using a multiplicative
// factor model. It is an approximation, not a Manual J implementation.
type LoadEstimatorService struct{}

func NewLoadEstimatorService() *LoadEstimatorService {
	return &LoadEstimatorService{}
}

// Estimate maps envelope attributes plus design conditions to sensible,
// latent, and total loads and a recommended capacity. Factor evaluation
// order only affects note ordering, but that ordering is part of the
// contract: insulation, windows, orientation, stories, siding, ducts,
// summary.
func (s *LoadEstimatorService) Estimate(in loadscout.LoadCalcInput) (loadscout.LoadCalcResult, error) {
	if in.ConditionedArea <= 0 {
		return loadscout.LoadCalcResult{}, ErrInvalidArea
	}

	perArea := baseRatePerSqFt * (in.DesignDeltaTF / baseDesignDTF)
	var notes []string

	switch in.Insulation {
	case loadscout.InsulationPoor:
		perArea *= 1.20
		notes = append(notes, "poor insulation increases the envelope load by 20%")
	case loadscout.InsulationGood:
		perArea *= 0.85
		notes = append(notes, "good insulation reduces the envelope load by 15%")
	}

	switch in.WindowDensity {
	case loadscout.WindowsFew:
		perArea *= 0.90
		notes = append(notes, "few windows reduce glazing load by 10%")
	case loadscout.WindowsMany:
		perArea *= 1.15
		notes = append(notes, "many windows increase glazing load by 15%")
	case loadscout.WindowsAverage:
		// neutral
	default:
		notes = append(notes, "window density unknown; assuming average glazing")
	}

	switch in.Orientation {
	case loadscout.OrientationSouth, loadscout.OrientationWest:
		perArea *= 1.10
		notes = append(notes, "south or west exposure adds 10% for solar gain")
	case loadscout.OrientationNorth:
		perArea *= 0.95
		notes = append(notes, "north exposure reduces solar gain by 5%")
	case loadscout.OrientationEast:
		perArea *= 1.05
	}

	if in.StoryCount >= 2 {
		perArea *= 1.08
		notes = append(notes, "multiple stories add 8% for stack effect and envelope area")
	}

	switch in.SidingMaterial {
	case loadscout.SidingBrick:
		perArea *= 0.97
	case loadscout.SidingStucco:
		perArea *= 0.99
	}

	if in.DuctsInUnconditioned {
		perArea *= 1.10
		notes = append(notes, "ducts in unconditioned space add a 10% distribution penalty")
	}

	// Round sensible and latent independently, then sum. The total must be
	// the exact sum of the two rounded components.
	sensible := int(math.Round(perArea * in.ConditionedArea))
	latent := int(math.Round(float64(sensible) * latentRatio(in.IndoorRHPercent)))
	total := sensible + latent

	tons := math.Round(float64(total)/btuhPerTon*4) / 4

	notes = append(notes, fmt.Sprintf(
		"estimated total load %d BTU/h; recommended capacity %.2f tons", total, tons))

	return loadscout.LoadCalcResult{
		SensibleLoadBTUH: sensible,
		LatentLoadBTUH:   latent,
		TotalLoadBTUH:    total,
		RecommendedTons:  tons,
		Notes:            notes,
	}, nil
}

func latentRatio(indoorRHPercent float64) float64 {
	switch {
	case indoorRHPercent <= dryRHPercent:
		return latentRatioDry
	case indoorRHPercent >= humidRHPercent:
		return latentRatioHumid
	default:
		return latentRatioTypical
	}
}
