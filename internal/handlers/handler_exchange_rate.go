package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/dto"
)

// exchangeRateHandler handles HTTP requests related to stored exchange rates.
type exchangeRateHandler struct {
	rateService portssvc.ExchangeRateSvcFacade
}

func newExchangeRateHandler(rs portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{rateService: rs}
}

// registerExchangeRateRoutes registers all exchange rate-related routes.
func registerExchangeRateRoutes(rg *gin.RouterGroup, rateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(rateService)

	rates := rg.Group("/exchange-rates")
	{
		rates.GET("", h.getRate)
		rates.POST("/snapshot", h.snapshot)
	}
}

// getRate godoc
// @Summary Get a stored exchange rate
// @Description Retrieves the latest stored rate between two currencies,
// falling back to the inverse pair when only that direction is stored.
// @Tags exchange-rates
// @Produce  json
// @Param   from query string true "Source currency code (e.g. USD)"
// @Param   to query string true "Target currency code (e.g. GBP)"
// @Success 200 {object} dto.ExchangeRateResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No rate stored for the pair"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) getRate(c *gin.Context) {
	var params dto.GetRateParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	rate, err := h.rateService.GetRate(c.Request.Context(), params.From, params.To)
	if err != nil {
		respondWithError(c, err, "Failed to retrieve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToExchangeRateResponse(rate))
}

// snapshot godoc
// @Summary Snapshot current exchange rates
// @Description Fetches current rates for the supported currencies from the
// rate provider and persists them. Normally run by the daily job.
// @Tags exchange-rates
// @Produce  json
// @Success 202 {object} map[string]string
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /exchange-rates/snapshot [post]
func (h *exchangeRateHandler) snapshot(c *gin.Context) {
	if err := h.rateService.SnapshotRates(c.Request.Context()); err != nil {
		respondWithError(c, err, "Failed to snapshot exchange rates")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "snapshot complete"})
}
