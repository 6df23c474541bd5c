package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"loadscout"
	"loadscout/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errCreateJob  = "failed to create job"
	errGetJob     = "failed to load job"
	errListJobs   = "failed to list jobs"
	errClarifyJob = "failed to apply clarification"

	errInvalidBodyPref = "invalid body: "
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// SizingRequest is the homeowner-entered portion of a sizing run.
type SizingRequest struct {
	// Conditioned floor area in square feet (must be > 0 to estimate)
	ConditionedAreaSqFt float64 `json:"conditioned_area_sqft" example:"2200"`
	// Orientation of the main glazed facade: north, south, east, west, mixed, unknown
	Orientation string `json:"orientation" example:"south"`
	// Insulation grade: poor, average, good
	InsulationGrade string `json:"insulation_grade" example:"average"`
	// Design temperature difference in °F; 0 uses the configured default
	DesignDeltaTF float64 `json:"design_delta_t_f,omitempty" example:"40"`
	// Indoor relative humidity percent; 0 uses the configured default
	IndoorRHPercent float64 `json:"indoor_rh_percent,omitempty" example:"45"`
	// Whether ducts run through attic/crawl or other unconditioned space
	DuctsInUnconditioned bool `json:"ducts_in_unconditioned_space" example:"true"`
}

func (r *SizingRequest) toParams() *loadscout.SizingParams {
	if r == nil {
		return nil
	}
	return &loadscout.SizingParams{
		ConditionedArea:      r.ConditionedAreaSqFt,
		Orientation:          loadscout.Orientation(r.Orientation),
		Insulation:           loadscout.InsulationGrade(r.InsulationGrade),
		DesignDeltaTF:        r.DesignDeltaTF,
		IndoorRHPercent:      r.IndoorRHPercent,
		DuctsInUnconditioned: r.DuctsInUnconditioned,
	}
}

// CreateJobRequest is one intake submission: the raw vision-model payloads
// for the two photo analyses plus optional sizing parameters.
type CreateJobRequest struct {
	Address string `json:"address" binding:"required" example:"12 Maple St"`
	// Raw JSON emitted by the exterior-photo analysis; may be partial or malformed
	ExteriorAnalysis json.RawMessage `json:"exterior_analysis,omitempty" swaggertype:"object"`
	// Raw JSON emitted by the equipment-label analysis; may be partial or malformed
	EquipmentAnalysis json.RawMessage `json:"equipment_analysis,omitempty" swaggertype:"object"`
	Sizing            *SizingRequest  `json:"sizing,omitempty"`
}

// ClarifyJobRequest carries the human-corrected exterior attributes.
// Confidence is implicitly 1.0: a human confirmed the values.
type ClarifyJobRequest struct {
	StoryCount        *float64       `json:"story_count"` // 1, 1.5, 2, or 3
	SidingMaterial    string         `json:"siding_material" example:"vinyl"`
	WindowDensity     string         `json:"window_density" example:"average"`
	GutterPresence    string         `json:"gutter_presence" example:"yes"`
	ExteriorCondition string         `json:"exterior_condition" example:"good"`
	Sizing            *SizingRequest `json:"sizing,omitempty"`
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// @Summary      Create intake job
// @Description  Runs validation and enrichment over the raw analysis payloads and estimates the load when the exterior reading needs no clarification
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        body  body      CreateJobRequest  true  "Intake payload"
// @Success      200   {object}  map[string]interface{}  "summary"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/jobs [post]
// @Security     BearerAuth
func (h *Handler) createJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	summary, err := h.services.Jobs.Create(c.Request.Context(), service.CreateJobParams{
		Address:      req.Address,
		ExteriorRaw:  req.ExteriorAnalysis,
		EquipmentRaw: req.EquipmentAnalysis,
		Sizing:       req.Sizing.toParams(),
	})
	if err != nil {
		if errors.Is(err, service.ErrAddressRequired) || errors.Is(err, service.ErrInvalidArea) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errCreateJob, "job_create_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// @Summary      Get job summary
// @Tags         jobs
// @Produce      json
// @Param        id   path      string  true  "Job ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/jobs/{id} [get]
// @Security     BearerAuth
func (h *Handler) getJob(c *gin.Context) {
	summary, err := h.services.Jobs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetJob, "job_get_failed", err, "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, summary)
}

// @Summary      List job summaries
// @Tags         jobs
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, jobs"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/jobs [get]
// @Security     BearerAuth
func (h *Handler) listJobs(c *gin.Context) {
	jobs, err := h.services.Jobs.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListJobs, "job_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(jobs),
		"jobs":  jobs,
	})
}

// @Summary      Clarify exterior attributes
// @Description  Replaces the exterior reading with human-corrected values, re-validates, and re-estimates using submitted or previously stored sizing parameters
// @Tags         jobs
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Job ID"
// @Param        body  body      ClarifyJobRequest  true  "Corrected attributes"
// @Success      200   {object}  map[string]interface{}  "summary"
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/jobs/{id}/clarify [post]
// @Security     BearerAuth
func (h *Handler) clarifyJob(c *gin.Context) {
	var req ClarifyJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}

	params := service.ClarifyParams{
		Exterior: loadscout.HouseExteriorAttributes{
			StoryCount:        req.StoryCount,
			SidingMaterial:    loadscout.SidingMaterial(req.SidingMaterial),
			WindowDensity:     loadscout.WindowDensity(req.WindowDensity),
			GutterPresence:    loadscout.GutterPresence(req.GutterPresence),
			ExteriorCondition: loadscout.ExteriorCondition(req.ExteriorCondition),
			Confidence:        1,
		},
		Sizing: req.Sizing.toParams(),
	}

	summary, err := h.services.Jobs.Clarify(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		case errors.Is(err, service.ErrInvalidArea):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logAndJSONError(c, http.StatusInternalServerError, errClarifyJob, "job_clarify_failed", err, "id", c.Param("id"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
