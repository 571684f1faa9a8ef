package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/dto"
)

// projectionHandler handles HTTP requests related to yearly projections.
type projectionHandler struct {
	projectionService portssvc.ProjectionSvcFacade
}

func newProjectionHandler(ps portssvc.ProjectionSvcFacade) *projectionHandler {
	return &projectionHandler{projectionService: ps}
}

// registerProjectionRoutes registers all projection-related routes.
func registerProjectionRoutes(rg *gin.RouterGroup, projectionService portssvc.ProjectionSvcFacade) {
	h := newProjectionHandler(projectionService)

	projections := rg.Group("/projections")
	{
		projections.GET("/summary", h.getSummary)
		projections.PUT("/deals/:id", h.upsertAdjustment)
	}
}

// getSummary godoc
// @Summary Get the yearly projection summary
// @Description Splits approved-deal value by deal type for a year, applying
// stored per-deal adjustments, alongside billed GP from billing records.
// @Tags projections
// @Produce  json
// @Param   year query int false "Projection year (defaults to current)"
// @Success 200 {object} dto.ProjectionSummaryResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /projections/summary [get]
func (h *projectionHandler) getSummary(c *gin.Context) {
	year, ok := yearOrCurrent(c)
	if !ok {
		return
	}

	summary, err := h.projectionService.GetProjectionSummary(c.Request.Context(), year)
	if err != nil {
		respondWithError(c, err, "Failed to compute projection summary")
		return
	}

	c.JSON(http.StatusOK, dto.ProjectionSummaryResponse{Summary: *summary})
}

// upsertAdjustment godoc
// @Summary Adjust a deal's projection
// @Description Creates or replaces a deal's contribution override for a
// projection year. Mobilisation dates apply to Contract deals only.
// @Tags projections
// @Accept  json
// @Produce  json
// @Param   id path string true "Deal ID"
// @Param   adjustment body dto.UpsertProjectionAdjustmentRequest true "Adjustment"
// @Success 200 {object} dto.ProjectionAdjustmentResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown deal"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /projections/deals/{id} [put]
func (h *projectionHandler) upsertAdjustment(c *gin.Context) {
	var req dto.UpsertProjectionAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requesterID, ok := requireUserID(c)
	if !ok {
		return
	}

	adjustment, err := h.projectionService.UpsertAdjustment(c.Request.Context(), c.Param("id"), req, requesterID)
	if err != nil {
		respondWithError(c, err, "Failed to save projection adjustment")
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectionAdjustmentResponse(adjustment))
}
