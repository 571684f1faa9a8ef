package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/meridianhq/salesops_backend/internal/core/domain"
	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/dto"
)

// reportingHandler handles the leaderboard and analytics read endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingService
}

func newReportingHandler(rs portssvc.ReportingService) *reportingHandler {
	return &reportingHandler{reportingService: rs}
}

// registerReportingRoutes registers all reporting-related routes.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingService) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/leaderboard/individuals", h.individualLeaderboard)
		reports.GET("/leaderboard/teams", h.teamLeaderboard)
		reports.GET("/leaderboard/targets", h.targetLeaderboard)
		reports.GET("/dashboard", h.dashboard)
		reports.GET("/trends", h.trends)
	}
}

// individualLeaderboard godoc
// @Summary Individual leaderboard
// @Description Ranks active profiles by GP added over approved deals in a
// year, grouped by role and overall.
// @Tags reports
// @Produce  json
// @Param   year query int false "Year (defaults to current)"
// @Success 200 {object} dto.IndividualLeaderboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/leaderboard/individuals [get]
func (h *reportingHandler) individualLeaderboard(c *gin.Context) {
	year, ok := yearOrCurrent(c)
	if !ok {
		return
	}

	byRole, overall, err := h.reportingService.GetIndividualLeaderboard(c.Request.Context(), year)
	if err != nil {
		respondWithError(c, err, "Failed to compute leaderboard")
		return
	}

	c.JSON(http.StatusOK, dto.IndividualLeaderboardResponse{
		Year:    year,
		ByRole:  byRole,
		Overall: overall,
	})
}

// teamLeaderboard godoc
// @Summary Team leaderboard
// @Description Ranks teams by their members' combined GP over approved deals.
// @Tags reports
// @Produce  json
// @Param   year query int false "Year (defaults to current)"
// @Success 200 {object} dto.TeamLeaderboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/leaderboard/teams [get]
func (h *reportingHandler) teamLeaderboard(c *gin.Context) {
	year, ok := yearOrCurrent(c)
	if !ok {
		return
	}

	teams, err := h.reportingService.GetTeamLeaderboard(c.Request.Context(), year)
	if err != nil {
		respondWithError(c, err, "Failed to compute team leaderboard")
		return
	}

	c.JSON(http.StatusOK, dto.TeamLeaderboardResponse{Year: year, Teams: teams})
}

// targetLeaderboard godoc
// @Summary Target progress leaderboard
// @Description Compares actual and projected GP against individual targets
// over a monthly, quarterly, half-yearly or yearly window.
// @Tags reports
// @Produce  json
// @Param   year query int false "Year (defaults to current)"
// @Param   period query string false "Period kind" Enums(monthly, quarterly, half-yearly, yearly) default(yearly)
// @Param   period_num query int false "1-based period number within the year"
// @Success 200 {object} dto.TargetLeaderboardResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/leaderboard/targets [get]
func (h *reportingHandler) targetLeaderboard(c *gin.Context) {
	var params dto.TargetLeaderboardParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	if params.Year == 0 {
		params.Year = time.Now().Year()
	}
	if params.Period == "" {
		params.Period = string(domain.PeriodYearly)
	}

	individuals, teams, err := h.reportingService.GetTargetLeaderboard(
		c.Request.Context(), params.Year, domain.TargetPeriod(params.Period), params.PeriodNum)
	if err != nil {
		respondWithError(c, err, "Failed to compute target leaderboard")
		return
	}

	c.JSON(http.StatusOK, dto.TargetLeaderboardResponse{
		Year:        params.Year,
		Period:      params.Period,
		PeriodNum:   params.PeriodNum,
		Individuals: individuals,
		Teams:       teams,
	})
}

// dashboard godoc
// @Summary Personal dashboard statistics
// @Description Summarises the caller's deals for the current year plus their
// rank against users holding the same role.
// @Tags reports
// @Produce  json
// @Success 200 {object} dto.DashboardResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/dashboard [get]
func (h *reportingHandler) dashboard(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	stats, err := h.reportingService.GetDashboardStats(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err, "Failed to compute dashboard statistics")
		return
	}

	c.JSON(http.StatusOK, dto.DashboardResponse{Stats: *stats})
}

// trends godoc
// @Summary Monthly GP trends
// @Description Returns the monthly GP-added series over approved deals for a
// year plus an annual run-rate projection.
// @Tags reports
// @Produce  json
// @Param   year query int false "Year (defaults to current)"
// @Success 200 {object} dto.TrendsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /reports/trends [get]
func (h *reportingHandler) trends(c *gin.Context) {
	year, ok := yearOrCurrent(c)
	if !ok {
		return
	}

	report, err := h.reportingService.GetTrends(c.Request.Context(), year)
	if err != nil {
		respondWithError(c, err, "Failed to compute trends")
		return
	}

	c.JSON(http.StatusOK, dto.TrendsResponse{Report: *report})
}
