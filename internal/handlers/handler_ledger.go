package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/SscSPs/settlement_ledger/internal/utils/pagination"
)

// NextPageTokenHeader carries the cursor for the next page of a ledger listing.
const NextPageTokenHeader = "X-Next-Page-Token"

// ledgerHandler serves read access to entries, their audit trail and balances.
type ledgerHandler struct {
	ledgerService  portssvc.LedgerReaderSvc
	balanceService portssvc.BalanceSvc
}

func newLedgerHandler(ls portssvc.LedgerReaderSvc, bs portssvc.BalanceSvc) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls, balanceService: bs}
}

// RegisterLedgerRoutes registers ledger read and balance routes.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerReaderSvc, balanceService portssvc.BalanceSvc) {
	registerValidators()
	h := newLedgerHandler(ledgerService, balanceService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/entries", h.listEntries)
		ledger.GET("/entries/:entryID", h.getEntry)
		ledger.GET("/summary", h.summary)
		ledger.GET("/summary-all", h.summaryAll)
	}
}

// listEntries godoc
// @Summary List ledger entries
// @Description Newest first. Customers only ever see their own entries.
// @Tags ledger
// @Produce  json
// @Param   businessId query string true "Business ID"
// @Param   customerId query string false "Customer filter (merchants only)"
// @Param   status query string false "Entry status"
// @Param   pageToken query string false "Cursor from a previous nextPageToken"
// @Param   limit query int false "Page size" default(20)
// @Param   offset query int false "Offset, ignored with pageToken" default(0)
// @Success 200 {array} dto.LedgerEntryResponse
// @Header  200 {string} X-Next-Page-Token "Cursor for the next page, set when the page is full"
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /ledger/entries [get]
func (h *ledgerHandler) listEntries(c *gin.Context) {
	var params dto.ListLedgerEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	entries, err := h.ledgerService.ListEntries(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	// A full page may have a successor.
	if len(entries) > 0 && len(entries) == params.Limit {
		last := entries[len(entries)-1]
		c.Header(NextPageTokenHeader, pagination.EncodeToken(last.CreatedAt, last.ID))
	}
	c.JSON(http.StatusOK, dto.ToListLedgerEntryResponse(entries))
}

// getEntry godoc
// @Summary Get a ledger entry with its audit trail
// @Tags ledger
// @Produce  json
// @Param   entryID path string true "Ledger entry ID"
// @Success 200 {object} dto.LedgerEntryDetailResponse
// @Failure 404 {object} dto.ErrorResponse "Entry not found"
// @Security BearerAuth
// @Router /ledger/entries/{entryID} [get]
func (h *ledgerHandler) getEntry(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	entry, events, err := h.ledgerService.GetEntry(c.Request.Context(), userID, c.Param("entryID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LedgerEntryDetailResponse{
		Entry:  dto.ToLedgerEntryResponse(entry),
		Events: dto.ToLedgerEventResponses(events),
	})
}

// summary godoc
// @Summary Balance per currency for a business
// @Description Sums finalized and completed entries. Pending entries are excluded.
// @Tags ledger
// @Produce  json
// @Param   businessId query string true "Business ID"
// @Param   customerId query string false "Customer filter (merchants only)"
// @Success 200 {array} dto.BalanceSummaryResponse
// @Failure 400 {object} dto.ErrorResponse "Validation error"
// @Security BearerAuth
// @Router /ledger/summary [get]
func (h *ledgerHandler) summary(c *gin.Context) {
	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		respondBindError(c, err)
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	rows, err := h.balanceService.Summarize(c.Request.Context(), userID, params.BusinessID, params.CustomerID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceSummaryResponses(rows))
}

// summaryAll godoc
// @Summary Balances across every business the caller is a customer of
// @Tags ledger
// @Produce  json
// @Success 200 {object} dto.CrossBusinessSummaryResponse
// @Security BearerAuth
// @Router /ledger/summary-all [get]
func (h *ledgerHandler) summaryAll(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	rows, totals, err := h.balanceService.SummarizeAcrossBusinesses(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.CrossBusinessSummaryResponse{
		Summaries: dto.ToBalanceSummaryResponses(rows),
		Total:     dto.ToBalanceSummaryResponses(totals),
	})
}
