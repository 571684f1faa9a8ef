package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/dto"
	"github.com/meridianhq/salesops_backend/internal/middleware"
	"github.com/meridianhq/salesops_backend/internal/platform/config"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	profileService portssvc.ProfileSvcFacade
	tokenService   portssvc.TokenSvcFacade
	googleService  portssvc.GoogleOAuthHandlerSvcFacade
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(
	profileService portssvc.ProfileSvcFacade,
	tokenService portssvc.TokenSvcFacade,
	googleService portssvc.GoogleOAuthHandlerSvcFacade,
) *AuthHandler {
	return &AuthHandler{
		profileService: profileService,
		tokenService:   tokenService,
		googleService:  googleService,
	}
}

// registerAuthRoutes sets up the routes for authentication.
func registerAuthRoutes(rg *gin.Engine, cfg *config.Config, services *portssvc.ServiceContainer) {
	h := NewAuthHandler(services.Profile, services.Token, services.GoogleOAuth)

	// Define rate limit: 5 requests per minute
	rate, _ := limiter.NewRateFromFormatted("5-M")
	store := memory.NewStore()
	ipLimiter := limiter.New(store, rate)
	limitMiddleware := middleware.RateLimit(ipLimiter)

	auth := rg.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.GET("/google/login", h.GoogleLogin)
		auth.POST("/google/callback", limitMiddleware, h.GoogleCallback)
	}
}

// issueToken generates a JWT for the profile and writes the login response.
func (h *AuthHandler) issueToken(c *gin.Context, profile *domain.Profile) {
	token, _, err := h.tokenService.GenerateAccessToken(c.Request.Context(), profile)
	if err != nil {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Failed to generate access token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:   token,
		Profile: dto.ToProfileResponse(profile),
	})
}

// Login godoc
// @Summary User login
// @Description Authenticates a user with email and password and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Account deactivated"
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	profile, err := h.profileService.AuthenticateProfile(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err, "Failed to authenticate")
		return
	}

	h.issueToken(c, profile)
}

// GoogleLogin godoc
// @Summary Start Google sign-in
// @Description Returns the Google consent URL plus a CSRF state string.
// @Tags auth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := h.googleService.GenerateStateString(c.Request.Context())
	if err != nil {
		respondWithError(c, err, "Failed to start Google sign-in")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"url":   h.googleService.GetGoogleLoginURL(c.Request.Context(), state),
		"state": state,
	})
}

// GoogleCallback godoc
// @Summary Complete Google sign-in
// @Description Validates a Google ID token and returns an application JWT.
// First-time sign-ins are provisioned as inactive profiles pending activation.
// @Tags auth
// @Accept json
// @Produce json
// @Param callback body dto.GoogleCallbackRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/callback [post]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.GoogleCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	payload, err := h.googleService.ValidateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		logger.Warn("Google ID token validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Invalid Google ID token"})
		return
	}

	info := domain.GoogleUserInfo{ProviderUserID: payload.Subject}
	if email, ok := payload.Claims["email"].(string); ok {
		info.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		info.Name = name
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		info.EmailVerified = verified
	}

	profile, err := h.profileService.FindOrCreateFromGoogle(c.Request.Context(), info)
	if err != nil {
		respondWithError(c, err, "Failed to resolve Google identity")
		return
	}
	if !profile.IsActive {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Account pending activation"})
		return
	}

	h.issueToken(c, profile)
}
