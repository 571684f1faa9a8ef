package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portsrepo "github.com/meridianhq/salesops_backend/internal/core/ports/repositories"
	portssvc "github.com/meridianhq/salesops_backend/internal/core/ports/services"
	"github.com/meridianhq/salesops_backend/internal/dto"
	"github.com/meridianhq/salesops_backend/internal/middleware"
)

// dealHandler handles HTTP requests related to deals and their workflow.
type dealHandler struct {
	dealService portssvc.DealSvcFacade
}

func newDealHandler(ds portssvc.DealSvcFacade) *dealHandler {
	return &dealHandler{dealService: ds}
}

// registerDealRoutes registers deal CRUD plus the explicit workflow actions.
func registerDealRoutes(rg *gin.RouterGroup, dealService portssvc.DealSvcFacade) {
	h := newDealHandler(dealService)

	deals := rg.Group("/deals")
	{
		deals.POST("", h.createDeal)
		deals.GET("", h.listDeals)
		deals.GET("/:id", h.getDeal)
		deals.PUT("/:id", h.updateDeal)
		deals.DELETE("/:id", h.deleteDraft)

		deals.POST("/:id/submit", h.submitDeal)
		deals.POST("/:id/review", h.startReview)
		deals.POST("/:id/approve", h.approveDeal)
		deals.POST("/:id/reject", h.rejectDeal)
		deals.POST("/:id/request-revision", h.requestRevision)
		deals.POST("/:id/void", h.voidDeal)
	}
}

// requireUserID pulls the authenticated user from context or aborts with 401.
func requireUserID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}

// createDeal godoc
// @Summary Submit a new deal
// @Description Creates a deal, converting its value to GBP at the current
// rate. SaveAsDraft keeps it in Draft instead of Submitted.
// @Tags deals
// @Accept  json
// @Produce  json
// @Param   deal body dto.CreateDealRequest true "Deal details"
// @Success 201 {object} dto.DealResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals [post]
func (h *dealHandler) createDeal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	submitterID, ok := requireUserID(c)
	if !ok {
		return
	}

	deal, err := h.dealService.CreateDeal(c.Request.Context(), req, submitterID)
	if err != nil {
		respondWithError(c, err, "Failed to create deal")
		return
	}

	logger.Info("Deal created", slog.String("deal_id", deal.DealID), slog.String("status", string(deal.Status)))
	c.JSON(http.StatusCreated, dto.ToDealResponse(deal))
}

// listDeals godoc
// @Summary List deals
// @Description Retrieves deals filtered by status, year, month or submitter.
// @Tags deals
// @Produce  json
// @Param   status query string false "Comma-separated deal statuses"
// @Param   year query int false "Submission year"
// @Param   month query int false "Submission month"
// @Param   userID query string false "Submitter profile ID"
// @Param   limit query int false "Page size" default(50)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {object} dto.ListDealsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals [get]
func (h *dealHandler) listDeals(c *gin.Context) {
	var params dto.ListDealsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}
	statuses, err := params.StatusList()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	deals, err := h.dealService.ListDeals(c.Request.Context(), portsrepo.DealListFilter{
		Statuses:    statuses,
		Year:        params.Year,
		Month:       params.Month,
		SubmittedBy: params.UserID,
		Limit:       params.Limit,
		Offset:      params.Offset,
	})
	if err != nil {
		respondWithError(c, err, "Failed to list deals")
		return
	}

	c.JSON(http.StatusOK, dto.ToListDealsResponse(deals))
}

// getDeal godoc
// @Summary Get a deal by ID
// @Tags deals
// @Produce  json
// @Param   id path string true "Deal ID"
// @Success 200 {object} dto.DealResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{id} [get]
func (h *dealHandler) getDeal(c *gin.Context) {
	deal, err := h.dealService.GetDealByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err, "Failed to retrieve deal")
		return
	}

	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// updateDeal godoc
// @Summary Edit a deal
// @Description Edits a Draft or Revision Required deal owned by the caller.
// Value or currency changes trigger reconversion to GBP.
// @Tags deals
// @Accept  json
// @Produce  json
// @Param   id path string true "Deal ID"
// @Param   deal body dto.UpdateDealRequest true "Fields to update"
// @Success 200 {object} dto.DealResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{id} [put]
func (h *dealHandler) updateDeal(c *gin.Context) {
	var req dto.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	requesterID, ok := requireUserID(c)
	if !ok {
		return
	}

	deal, err := h.dealService.UpdateDeal(c.Request.Context(), c.Param("id"), req, requesterID)
	if err != nil {
		respondWithError(c, err, "Failed to update deal")
		return
	}

	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// deleteDraft godoc
// @Summary Delete a draft deal
// @Description Permanently removes a Draft deal owned by the caller.
// @Tags deals
// @Produce  json
// @Param   id path string true "Deal ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{id} [delete]
func (h *dealHandler) deleteDraft(c *gin.Context) {
	requesterID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.dealService.DeleteDraft(c.Request.Context(), c.Param("id"), requesterID); err != nil {
		respondWithError(c, err, "Failed to delete deal")
		return
	}

	c.Status(http.StatusNoContent)
}

// submitDeal godoc
// @Summary Submit a deal for approval
// @Description Moves a Draft or Revision Required deal to Submitted.
// @Tags deals
// @Produce  json
// @Param   id path string true "Deal ID"
// @Success 200 {object} dto.DealResponse
// @Failure 400 {object} ErrorResponse "Invalid transition"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{id}/submit [post]
func (h *dealHandler) submitDeal(c *gin.Context) {
	requesterID, ok := requireUserID(c)
	if !ok {
		return
	}

	deal, err := h.dealService.SubmitDeal(c.Request.Context(), c.Param("id"), requesterID)
	if err != nil {
		respondWithError(c, err, "Failed to submit deal")
		return
	}

	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// startReview godoc
// @Summary Start reviewing a deal
// @Description Moves a Submitted deal to Under Review. Reviewer only.
// @Tags deals
// @Produce  json
// @Param   id path string true "Deal ID"
// @Success 200 {object} dto.DealResponse
// @Failure 400 {object} ErrorResponse "Invalid transition"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{id}/review [post]
func (h *dealHandler) startReview(c *gin.Context) {
	reviewerID, ok := requireUserID(c)
	if !ok {
		return
	}

	deal, err := h.dealService.StartReview(c.Request.Context(), c.Param("id"), reviewerID)
	if err != nil {
		respondWithError(c, err, "Failed to start review")
		return
	}

	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// approveDeal godoc
// @Summary Approve a deal
// @Description Moves a Submitted or Under Review deal to Approved. Reviewer only.
// @Tags deals
// @Produce  json
// @Param   id path string true "Deal ID"
// @Success 200 {object} dto.DealResponse
// @Failure 400 {object} ErrorResponse "Invalid transition"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{id}/approve [post]
func (h *dealHandler) approveDeal(c *gin.Context) {
	approverID, ok := requireUserID(c)
	if !ok {
		return
	}

	deal, err := h.dealService.ApproveDeal(c.Request.Context(), c.Param("id"), approverID)
	if err != nil {
		respondWithError(c, err, "Failed to approve deal")
		return
	}

	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// rejectDeal godoc
// @Summary Reject a deal
// @Description Moves a Submitted or Under Review deal to Rejected. Reviewer only.
// @Tags deals
// @Accept  json
// @Produce  json
// @Param   id path string true "Deal ID"
// @Param   rejection body dto.RejectDealRequest false "Optional comment"
// @Success 200 {object} dto.DealResponse
// @Failure 400 {object} ErrorResponse "Invalid transition"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{id}/reject [post]
func (h *dealHandler) rejectDeal(c *gin.Context) {
	reviewerID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.RejectDealRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
			return
		}
	}

	deal, err := h.dealService.RejectDeal(c.Request.Context(), c.Param("id"), reviewerID, req.Comment)
	if err != nil {
		respondWithError(c, err, "Failed to reject deal")
		return
	}

	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// requestRevision godoc
// @Summary Request deal revision
// @Description Sends a deal back to the submitter with a mandatory comment. Reviewer only.
// @Tags deals
// @Accept  json
// @Produce  json
// @Param   id path string true "Deal ID"
// @Param   revision body dto.RequestRevisionRequest true "Revision comment"
// @Success 200 {object} dto.DealResponse
// @Failure 400 {object} ErrorResponse "Invalid transition or missing comment"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{id}/request-revision [post]
func (h *dealHandler) requestRevision(c *gin.Context) {
	reviewerID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.RequestRevisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A revision comment is required"})
		return
	}

	deal, err := h.dealService.RequestRevision(c.Request.Context(), c.Param("id"), reviewerID, req.Comment)
	if err != nil {
		respondWithError(c, err, "Failed to request revision")
		return
	}

	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}

// voidDeal godoc
// @Summary Void an approved deal
// @Description Moves an Approved deal to Voided with a mandatory reason. Reviewer only.
// @Tags deals
// @Accept  json
// @Produce  json
// @Param   id path string true "Deal ID"
// @Param   void body dto.VoidDealRequest true "Void reason"
// @Success 200 {object} dto.DealResponse
// @Failure 400 {object} ErrorResponse "Invalid transition or missing reason"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /deals/{id}/void [post]
func (h *dealHandler) voidDeal(c *gin.Context) {
	voidedBy, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.VoidDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "A void reason is required"})
		return
	}

	deal, err := h.dealService.VoidDeal(c.Request.Context(), c.Param("id"), voidedBy, req.Reason)
	if err != nil {
		respondWithError(c, err, "Failed to void deal")
		return
	}

	c.JSON(http.StatusOK, dto.ToDealResponse(deal))
}
