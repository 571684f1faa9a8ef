package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/dto"
)

// targetHandler handles HTTP requests related to GP targets.
type targetHandler struct {
	targetService portssvc.TargetSvcFacade
}

func newTargetHandler(ts portssvc.TargetSvcFacade) *targetHandler {
	return &targetHandler{targetService: ts}
}

// registerTargetRoutes registers all target-related routes.
func registerTargetRoutes(rg *gin.RouterGroup, targetService portssvc.TargetSvcFacade) {
	h := newTargetHandler(targetService)

	targets := rg.Group("/targets")
	{
		targets.PUT("/company", h.setCompanyTarget) // Privileged only
		targets.GET("/company", h.getCompanyTarget)
		targets.PUT("/users/:id", h.setIndividualTargets) // Privileged only
		targets.GET("/users/:id", h.getIndividualTargets)
	}
}

// yearOrCurrent reads the year query parameter, defaulting to this year.
func yearOrCurrent(c *gin.Context) (int, bool) {
	var params struct {
		Year int `form:"year" binding:"omitempty,min=2000"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid year parameter"})
		return 0, false
	}
	if params.Year == 0 {
		return time.Now().Year(), true
	}
	return params.Year, true
}

// setCompanyTarget godoc
// @Summary Set the company target
// @Description Creates or replaces the company-wide GP target for a year.
// Caller must hold a privileged role.
// @Tags targets
// @Accept  json
// @Produce  json
// @Param   target body dto.SetCompanyTargetRequest true "Target details"
// @Success 200 {object} dto.CompanyTargetResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /targets/company [put]
func (h *targetHandler) setCompanyTarget(c *gin.Context) {
	var req dto.SetCompanyTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	setterID, ok := requireUserID(c)
	if !ok {
		return
	}

	target, err := h.targetService.SetCompanyTarget(c.Request.Context(), req, setterID)
	if err != nil {
		respondWithError(c, err, "Failed to set company target")
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyTargetResponse(target))
}

// getCompanyTarget godoc
// @Summary Get the company target
// @Description Retrieves the company-wide GP target for a year.
// @Tags targets
// @Produce  json
// @Param   year query int false "Target year (defaults to current)"
// @Success 200 {object} dto.CompanyTargetResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /targets/company [get]
func (h *targetHandler) getCompanyTarget(c *gin.Context) {
	year, ok := yearOrCurrent(c)
	if !ok {
		return
	}

	target, err := h.targetService.GetCompanyTarget(c.Request.Context(), year)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve company target")
		return
	}

	c.JSON(http.StatusOK, dto.ToCompanyTargetResponse(target))
}

// setIndividualTargets godoc
// @Summary Set a user's monthly targets
// @Description Upserts monthly GP targets for a user and year. Caller must
// hold a privileged role.
// @Tags targets
// @Accept  json
// @Produce  json
// @Param   id path string true "Profile ID"
// @Param   targets body dto.SetIndividualTargetsRequest true "Monthly targets"
// @Success 200 {object} dto.ListIndividualTargetsResponse
// @Failure 400 {object} ErrorResponse "Duplicate months or negative values"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "Unknown profile"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /targets/users/{id} [put]
func (h *targetHandler) setIndividualTargets(c *gin.Context) {
	var req dto.SetIndividualTargetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	setterID, ok := requireUserID(c)
	if !ok {
		return
	}

	targets, err := h.targetService.SetIndividualTargets(c.Request.Context(), c.Param("id"), req, setterID)
	if err != nil {
		respondWithError(c, err, "Failed to set individual targets")
		return
	}

	c.JSON(http.StatusOK, dto.ToListIndividualTargetsResponse(targets))
}

// getIndividualTargets godoc
// @Summary Get a user's monthly targets
// @Tags targets
// @Produce  json
// @Param   id path string true "Profile ID"
// @Param   year query int false "Target year (defaults to current)"
// @Success 200 {object} dto.ListIndividualTargetsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /targets/users/{id} [get]
func (h *targetHandler) getIndividualTargets(c *gin.Context) {
	year, ok := yearOrCurrent(c)
	if !ok {
		return
	}

	targets, err := h.targetService.GetIndividualTargets(c.Request.Context(), c.Param("id"), year)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve individual targets")
		return
	}

	c.JSON(http.StatusOK, dto.ToListIndividualTargetsResponse(targets))
}
