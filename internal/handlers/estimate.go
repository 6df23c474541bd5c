package handlers

import (
	"errors"
	"net/http"

	"loadscout"
	"loadscout/internal/service"

	"github.com/gin-gonic/gin"
)

// EstimateRequest is a standalone what-if sizing run, independent of any
// stored job. Design conditions must be explicit here since no job defaults
// apply.
type EstimateRequest struct {
	ConditionedAreaSqFt  float64 `json:"conditioned_area_sqft" binding:"required" example:"2200"`
	StoryCount           float64 `json:"story_count" example:"2"`
	WindowDensity        string  `json:"window_density" example:"many"`
	Orientation          string  `json:"orientation" example:"south"`
	InsulationGrade      string  `json:"insulation_grade" example:"average"`
	SidingMaterial       string  `json:"siding_material" example:"vinyl"`
	DesignDeltaTF        float64 `json:"design_delta_t_f" binding:"required" example:"40"`
	IndoorRHPercent      float64 `json:"indoor_rh_percent" example:"45"`
	DuctsInUnconditioned bool    `json:"ducts_in_unconditioned_space" example:"true"`
}

func (r *EstimateRequest) toInput() loadscout.LoadCalcInput {
	in := loadscout.LoadCalcInput{
		ConditionedArea:      r.ConditionedAreaSqFt,
		StoryCount:           r.StoryCount,
		WindowDensity:        loadscout.WindowDensity(r.WindowDensity),
		Orientation:          loadscout.Orientation(r.Orientation),
		Insulation:           loadscout.InsulationGrade(r.InsulationGrade),
		SidingMaterial:       loadscout.SidingMaterial(r.SidingMaterial),
		DesignDeltaTF:        r.DesignDeltaTF,
		IndoorRHPercent:      r.IndoorRHPercent,
		DuctsInUnconditioned: r.DuctsInUnconditioned,
	}
	if in.StoryCount < 1 {
		in.StoryCount = 1
	}
	if in.WindowDensity == "" {
		in.WindowDensity = loadscout.WindowsUnknown
	}
	if in.Orientation == "" {
		in.Orientation = loadscout.OrientationUnknown
	}
	if in.Insulation == "" {
		in.Insulation = loadscout.InsulationAverage
	}
	return in
}

// @Summary      Estimate heating/cooling load
// @Description  Runs the deterministic sizing model over explicit envelope attributes and design conditions
// @Tags         estimate
// @Accept       json
// @Produce      json
// @Param        body  body      EstimateRequest  true  "Envelope and design conditions"
// @Success      200   {object}  loadscout.LoadCalcResult
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/estimate [post]
// @Security     BearerAuth
func (h *Handler) estimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	result, err := h.services.LoadEstimation.Estimate(req.toInput())
	if err != nil {
		if errors.Is(err, service.ErrInvalidArea) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to estimate load", "estimate_failed", err)
		return
	}
	c.JSON(http.StatusOK, result)
}
