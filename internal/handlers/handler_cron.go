package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/SscSPs/settlement_ledger/internal/core/ports/services"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/SscSPs/settlement_ledger/internal/middleware"
)

type cronHandler struct {
	finalizationService portssvc.FinalizationSvc
}

// RegisterCronRoutes registers scheduler-triggered routes behind the shared cron secret.
func RegisterCronRoutes(r gin.IRoutes, svc portssvc.FinalizationSvc, cronSecret string, guards ...gin.HandlerFunc) {
	h := &cronHandler{finalizationService: svc}
	handlers := withGuards(append([]gin.HandlerFunc{middleware.CronSecretAuth(cronSecret)}, guards...), h.finalizeLedger)
	r.POST("/cron/finalize-ledger", handlers...)
}

// finalizeLedger godoc
// @Summary Finalize due pending entries
// @Description Promotes every pending entry whose finalization time has passed. Safe to call repeatedly.
// @Tags cron
// @Produce  json
// @Param   X-Cron-Secret header string false "Shared scheduler secret (or send it as a bearer token)"
// @Success 200 {object} dto.FinalizationRunResponse
// @Failure 401 {object} dto.ErrorResponse "Bad or missing secret"
// @Failure 500 {object} dto.ErrorResponse "Secret not configured or run failed"
// @Router /cron/finalize-ledger [post]
func (h *cronHandler) finalizeLedger(c *gin.Context) {
	result, err := h.finalizationService.RunFinalization(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Finalization run triggered by scheduler",
		slog.Int("finalized_count", result.FinalizedCount))
	c.JSON(http.StatusOK, dto.FinalizationRunResponse{
		FinalizedCount: result.FinalizedCount,
		Timestamp:      result.RanAt,
	})
}
