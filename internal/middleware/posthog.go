package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/settlement_ledger/internal/platform/analytics"
)

// pathsToSkip contains paths that should not be tracked
var pathsToSkip = map[string]bool{
	"/health":               true,
	"/cron/finalize-ledger": true,
}

// AnalyticsMiddleware tracks successful authenticated API calls.
func AnalyticsMiddleware(tracker analytics.Tracker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tracker == nil || !tracker.Enabled() || pathsToSkip[c.Request.URL.Path] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}

		// "/api/v1/payment-intents/confirm" -> "api_v1_payment-intents_confirm"
		eventName := strings.ReplaceAll(strings.TrimPrefix(c.FullPath(), "/"), "/", "_")
		if eventName == "" {
			return
		}

		props := map[string]any{
			"method":      c.Request.Method,
			"status_code": c.Writer.Status(),
		}
		if len(c.Params) > 0 {
			params := make(map[string]string, len(c.Params))
			for _, param := range c.Params {
				params[param.Key] = param.Value
			}
			props["params"] = params
		}

		tracker.Enqueue(userID, eventName, props)
	}
}
