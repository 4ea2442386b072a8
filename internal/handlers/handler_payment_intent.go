package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/SscSPs/settlement_ledger/internal/middleware"
)

// paymentIntentHandler handles HTTP requests related to payment intents.
type paymentIntentHandler struct {
	paymentIntentService portssvc.PaymentIntentSvcFacade
}

func newPaymentIntentHandler(svc portssvc.PaymentIntentSvcFacade) *paymentIntentHandler {
	return &paymentIntentHandler{paymentIntentService: svc}
}

// RegisterPaymentIntentRoutes registers payment intent routes. confirmGuards run in front of the confirm route only.
func RegisterPaymentIntentRoutes(rg *gin.RouterGroup, svc portssvc.PaymentIntentSvcFacade, confirmGuards ...gin.HandlerFunc) {
	registerValidators()
	h := newPaymentIntentHandler(svc)

	intents := rg.Group("/payment-intents")
	{
		intents.POST("", h.createIntent)
		intents.POST("/confirm", withGuards(confirmGuards, h.confirmIntent)...)
		intents.GET("/:intentID", h.getIntent)
	}
}

// createIntent godoc
// @Summary Create a payment intent
// @Description Opens a short-lived payment intent and returns its QR payload. No ledger entry is written.
// @Tags payment-intents
// @Accept  json
// @Produce  json
// @Param   intent body dto.CreatePaymentIntentRequest true "Intent details"
// @Success 201 {object} dto.CreatePaymentIntentResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Role too low for this business"
// @Failure 404 {object} dto.ErrorResponse "Business not found"
// @Failure 500 {object} dto.ErrorResponse "Failed to create intent"
// @Security BearerAuth
// @Router /payment-intents [post]
func (h *paymentIntentHandler) createIntent(c *gin.Context) {
	var req dto.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	staffID, ok := callerID(c)
	if !ok {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to create payment intent",
		slog.String("business_id", req.BusinessID),
		slog.String("currency", string(req.Currency)))

	res, err := h.paymentIntentService.CreateIntent(c.Request.Context(), staffID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Payment intent created", slog.String("intent_id", res.IntentID))
	c.JSON(http.StatusCreated, res)
}

// getIntent godoc
// @Summary Get a payment intent
// @Description Lets staff poll an intent, e.g. to see that a customer confirmed it.
// @Tags payment-intents
// @Produce  json
// @Param   intentID path string true "Payment intent ID"
// @Success 200 {object} dto.PaymentIntentResponse
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Intent not found"
// @Security BearerAuth
// @Router /payment-intents/{intentID} [get]
func (h *paymentIntentHandler) getIntent(c *gin.Context) {
	staffID, ok := callerID(c)
	if !ok {
		return
	}

	intent, err := h.paymentIntentService.GetIntent(c.Request.Context(), staffID, c.Param("intentID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentIntentResponse(intent))
}

// confirmIntent godoc
// @Summary Confirm a payment intent
// @Description Customer confirmation after scanning the QR code. Creates a pending payment entry exactly once.
// @Tags payment-intents
// @Accept  json
// @Produce  json
// @Param   confirmation body dto.ConfirmPaymentIntentRequest true "Intent to confirm"
// @Success 200 {object} dto.LedgerEntryResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Failure 403 {object} dto.ErrorResponse "Business mismatch"
// @Failure 404 {object} dto.ErrorResponse "Intent not found"
// @Failure 409 {object} dto.ErrorResponse "Intent already used"
// @Failure 410 {object} dto.ErrorResponse "Intent expired"
// @Failure 429 {object} dto.ErrorResponse "Too many requests"
// @Security BearerAuth
// @Router /payment-intents/confirm [post]
func (h *paymentIntentHandler) confirmIntent(c *gin.Context) {
	var req dto.ConfirmPaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	customerUserID, ok := callerID(c)
	if !ok {
		return
	}

	entry, err := h.paymentIntentService.ConfirmIntent(c.Request.Context(), customerUserID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Payment intent confirmed",
		slog.String("intent_id", req.IntentID),
		slog.String("ledger_entry_id", entry.ID))
	c.JSON(http.StatusOK, dto.ToLedgerEntryResponse(entry))
}
