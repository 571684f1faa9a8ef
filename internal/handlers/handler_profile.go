package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/dto"
	"github.com/meridianhq/salesops_backend/internal/middleware"
)

// profileHandler handles HTTP requests related to profiles.
type profileHandler struct {
	profileService portssvc.ProfileSvcFacade
}

// newProfileHandler creates a new profileHandler.
func newProfileHandler(ps portssvc.ProfileSvcFacade) *profileHandler {
	return &profileHandler{profileService: ps}
}

// registerProfileRoutes registers all profile-related routes.
func registerProfileRoutes(rg *gin.RouterGroup, profileService portssvc.ProfileSvcFacade) {
	h := newProfileHandler(profileService)

	profiles := rg.Group("/profiles")
	{
		profiles.POST("", h.createProfile) // Privileged only
		profiles.GET("", h.listProfiles)
		profiles.GET("/me", h.getOwnProfile)
		profiles.GET("/:id", h.getProfile)
		profiles.PUT("/:id", h.updateProfile)        // Privileged only
		profiles.DELETE("/:id", h.deactivateProfile) // Privileged only
	}
}

// createProfile godoc
// @Summary Create a new profile
// @Description Creates a new user profile. Caller must hold a privileged role.
// @Tags profiles
// @Accept  json
// @Produce  json
// @Param   profile body dto.CreateProfileRequest true "Profile details"
// @Success 201 {object} dto.ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already in use"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /profiles [post]
func (h *profileHandler) createProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	profile, err := h.profileService.CreateProfile(c.Request.Context(), req, creatorID)
	if err != nil {
		respondWithError(c, err, "Failed to create profile")
		return
	}

	logger.Info("Profile created", slog.String("profile_id", profile.ProfileID))
	c.JSON(http.StatusCreated, dto.ToProfileResponse(profile))
}

// listProfiles godoc
// @Summary List profiles
// @Description Retrieves a paginated list of profiles.
// @Tags profiles
// @Produce  json
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListProfilesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /profiles [get]
func (h *profileHandler) listProfiles(c *gin.Context) {
	var params dto.ListProfilesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	profiles, err := h.profileService.ListProfiles(c.Request.Context(), params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, err, "Failed to list profiles")
		return
	}

	c.JSON(http.StatusOK, dto.ToListProfilesResponse(profiles))
}

// getOwnProfile godoc
// @Summary Get own profile
// @Description Retrieves the authenticated caller's profile.
// @Tags profiles
// @Produce  json
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /profiles/me [get]
func (h *profileHandler) getOwnProfile(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	profile, err := h.profileService.GetProfileByID(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// getProfile godoc
// @Summary Get a profile by ID
// @Description Retrieves details for a specific profile.
// @Tags profiles
// @Produce  json
// @Param   id path string true "Profile ID"
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /profiles/{id} [get]
func (h *profileHandler) getProfile(c *gin.Context) {
	profile, err := h.profileService.GetProfileByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// updateProfile godoc
// @Summary Update a profile
// @Description Updates profile fields. Caller must hold a privileged role.
// @Tags profiles
// @Accept  json
// @Produce  json
// @Param   id path string true "Profile ID"
// @Param   profile body dto.UpdateProfileRequest true "Fields to update"
// @Success 200 {object} dto.ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /profiles/{id} [put]
func (h *profileHandler) updateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), c.Param("id"), req, requesterID)
	if err != nil {
		respondWithError(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

// deactivateProfile godoc
// @Summary Deactivate a profile
// @Description Soft-deletes a profile. Caller must hold a privileged role and
// may not deactivate themselves.
// @Tags profiles
// @Produce  json
// @Param   id path string true "Profile ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /profiles/{id} [delete]
func (h *profileHandler) deactivateProfile(c *gin.Context) {
	requesterID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.profileService.DeactivateProfile(c.Request.Context(), c.Param("id"), requesterID); err != nil {
		respondWithError(c, err, "Failed to deactivate profile")
		return
	}

	c.Status(http.StatusNoContent)
}
