package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/dto"
	"github.com/meridianhq/salesops_backend/internal/middleware"
)

// teamHandler handles HTTP requests related to teams.
type teamHandler struct {
	teamService portssvc.TeamSvcFacade
}

func newTeamHandler(ts portssvc.TeamSvcFacade) *teamHandler {
	return &teamHandler{teamService: ts}
}

// registerTeamRoutes registers all team-related routes.
func registerTeamRoutes(rg *gin.RouterGroup, teamService portssvc.TeamSvcFacade) {
	h := newTeamHandler(teamService)

	teams := rg.Group("/teams")
	{
		teams.POST("", h.createTeam) // Privileged only
		teams.GET("", h.listTeams)
		teams.GET("/:id", h.getTeam)
		teams.PUT("/:id", h.updateTeam)        // Privileged only
		teams.DELETE("/:id", h.deactivateTeam) // Privileged only
	}
}

// createTeam godoc
// @Summary Create a new team
// @Description Creates a team. Caller must hold a privileged role.
// @Tags teams
// @Accept  json
// @Produce  json
// @Param   team body dto.CreateTeamRequest true "Team details"
// @Success 201 {object} dto.TeamResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams [post]
func (h *teamHandler) createTeam(c *gin.Context) {
	var req dto.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), req, creatorID)
	if err != nil {
		respondWithError(c, err, "Failed to create team")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTeamResponse(team))
}

// listTeams godoc
// @Summary List teams
// @Tags teams
// @Produce  json
// @Success 200 {object} dto.ListTeamsResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams [get]
func (h *teamHandler) listTeams(c *gin.Context) {
	teams, err := h.teamService.ListTeams(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to list teams")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTeamsResponse(teams))
}

// getTeam godoc
// @Summary Get a team by ID
// @Tags teams
// @Produce  json
// @Param   id path string true "Team ID"
// @Success 200 {object} dto.TeamResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{id} [get]
func (h *teamHandler) getTeam(c *gin.Context) {
	team, err := h.teamService.GetTeamByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve team")
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamResponse(team))
}

// updateTeam godoc
// @Summary Update a team
// @Description Updates a team's fields. Caller must hold a privileged role.
// @Tags teams
// @Accept  json
// @Produce  json
// @Param   id path string true "Team ID"
// @Param   team body dto.UpdateTeamRequest true "Fields to update"
// @Success 200 {object} dto.TeamResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{id} [put]
func (h *teamHandler) updateTeam(c *gin.Context) {
	var req dto.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	team, err := h.teamService.UpdateTeam(c.Request.Context(), c.Param("id"), req, requesterID)
	if err != nil {
		respondWithError(c, err, "Failed to update team")
		return
	}

	c.JSON(http.StatusOK, dto.ToTeamResponse(team))
}

// deactivateTeam godoc
// @Summary Deactivate a team
// @Description Marks a team inactive. Teams are never hard-deleted. Caller
// must hold a privileged role.
// @Tags teams
// @Param   id path string true "Team ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /teams/{id} [delete]
func (h *teamHandler) deactivateTeam(c *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.teamService.DeactivateTeam(c.Request.Context(), c.Param("id"), requesterID); err != nil {
		respondWithError(c, err, "Failed to deactivate team")
		return
	}

	c.Status(http.StatusNoContent)
}
