package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
)

// CronSecretHeader carries the shared secret for scheduler-triggered routes.
const CronSecretHeader = "X-Cron-Secret"

// CronSecretAuth guards scheduler routes with a shared secret sent either in
// X-Cron-Secret or as a bearer token. An empty server secret fails closed.
func CronSecretAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		if secret == "" {
			logger.Error("Cron secret is not configured, refusing scheduler request")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": gin.H{
				"code":    apperrors.CodeConfiguration,
				"message": apperrors.PublicMessage(apperrors.ErrConfiguration),
			}})
			return
		}

		provided := c.GetHeader(CronSecretHeader)
		if provided == "" {
			if parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				provided = parts[1]
			}
		}

		if subtle.ConstantTimeCompare([]byte(provided), []byte(secret)) != 1 {
			logger.Warn("Scheduler request rejected")
			abortUnauthorized(c, "Unauthorized")
			return
		}
		c.Next()
	}
}
