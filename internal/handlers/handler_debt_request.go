package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/SscSPs/settlement_ledger/internal/middleware"
)

// debtRequestHandler handles HTTP requests related to debt requests.
type debtRequestHandler struct {
	debtRequestService portssvc.DebtRequestSvcFacade
}

func newDebtRequestHandler(svc portssvc.DebtRequestSvcFacade) *debtRequestHandler {
	return &debtRequestHandler{debtRequestService: svc}
}

// RegisterDebtRequestRoutes registers debt request routes. decisionGuards run in front of confirm and reject.
func RegisterDebtRequestRoutes(rg *gin.RouterGroup, svc portssvc.DebtRequestSvcFacade, decisionGuards ...gin.HandlerFunc) {
	registerValidators()
	h := newDebtRequestHandler(svc)

	debts := rg.Group("/debt-requests")
	{
		debts.POST("", h.createDebtRequest)
		debts.GET("", h.listDebtRequests)
		debts.POST("/:debtRequestID/confirm", withGuards(decisionGuards, h.confirmDebtRequest)...)
		debts.POST("/:debtRequestID/reject", withGuards(decisionGuards, h.rejectDebtRequest)...)
	}
}

// createDebtRequest godoc
// @Summary Raise a debt request
// @Description Merchant staff claim an amount from a customer. Nothing is booked until the customer confirms.
// @Tags debt-requests
// @Accept  json
// @Produce  json
// @Param   debtRequest body dto.CreateDebtRequestRequest true "Debt details"
// @Success 201 {object} dto.DebtRequestResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Role too low for this business"
// @Failure 404 {object} dto.ErrorResponse "Business or customer not found"
// @Security BearerAuth
// @Router /debt-requests [post]
func (h *debtRequestHandler) createDebtRequest(c *gin.Context) {
	var req dto.CreateDebtRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	staffID, ok := callerID(c)
	if !ok {
		return
	}

	debt, err := h.debtRequestService.CreateDebtRequest(c.Request.Context(), staffID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Debt request created", slog.String("debt_request_id", debt.ID))
	c.JSON(http.StatusCreated, dto.ToDebtRequestResponse(debt))
}

// listDebtRequests godoc
// @Summary List debt requests
// @Description Merchants see the whole business, customers only their own requests.
// @Tags debt-requests
// @Produce  json
// @Param   businessId query string true "Business ID"
// @Param   customerId query string false "Customer filter (merchants only)"
// @Param   status query string false "requested, approved or rejected"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset" default(0)
// @Success 200 {array} dto.DebtRequestResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /debt-requests [get]
func (h *debtRequestHandler) listDebtRequests(c *gin.Context) {
	var params dto.ListDebtRequestsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	debts, err := h.debtRequestService.ListDebtRequests(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListDebtRequestResponse(debts))
}

// confirmDebtRequest godoc
// @Summary Accept a debt request
// @Description The customer accepts the claim. A pending debt entry is booked exactly once.
// @Tags debt-requests
// @Accept  json
// @Produce  json
// @Param   debtRequestID path string true "Debt request ID"
// @Param   confirmation body dto.ConfirmDebtRequestRequest false "Optional business check"
// @Success 200 {object} dto.ConfirmDebtRequestResponse
// @Failure 403 {object} dto.ErrorResponse "Not the customer or business mismatch"
// @Failure 404 {object} dto.ErrorResponse "Debt request not found"
// @Failure 409 {object} dto.ErrorResponse "Already decided"
// @Security BearerAuth
// @Router /debt-requests/{debtRequestID}/confirm [post]
func (h *debtRequestHandler) confirmDebtRequest(c *gin.Context) {
	var req dto.ConfirmDebtRequestRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	entry, debt, err := h.debtRequestService.ConfirmDebtRequest(c.Request.Context(), userID, c.Param("debtRequestID"), req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Debt request confirmed",
		slog.String("debt_request_id", debt.ID),
		slog.String("ledger_entry_id", entry.ID))
	c.JSON(http.StatusOK, dto.ConfirmDebtRequestResponse{
		LedgerEntry: dto.ToLedgerEntryResponse(entry),
		DebtRequest: dto.ToDebtRequestResponse(debt),
	})
}

// rejectDebtRequest godoc
// @Summary Reject a debt request
// @Tags debt-requests
// @Accept  json
// @Produce  json
// @Param   debtRequestID path string true "Debt request ID"
// @Param   rejection body dto.RejectDebtRequestRequest false "Optional reason"
// @Success 200 {object} dto.DebtRequestResponse
// @Failure 403 {object} dto.ErrorResponse "Not the customer or business mismatch"
// @Failure 404 {object} dto.ErrorResponse "Debt request not found"
// @Failure 409 {object} dto.ErrorResponse "Already decided"
// @Security BearerAuth
// @Router /debt-requests/{debtRequestID}/reject [post]
func (h *debtRequestHandler) rejectDebtRequest(c *gin.Context) {
	var req dto.RejectDebtRequestRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	debt, err := h.debtRequestService.RejectDebtRequest(c.Request.Context(), userID, c.Param("debtRequestID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDebtRequestResponse(debt))
}
