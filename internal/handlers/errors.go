package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/SscSPs/settlement_ledger/internal/apperrors"
	"github.com/SscSPs/settlement_ledger/internal/core/domain"
	"github.com/SscSPs/settlement_ledger/internal/dto"
	"github.com/SscSPs/settlement_ledger/internal/middleware"
)

var registerValidatorsOnce sync.Once

// registerValidators adds the custom binding tags used by the DTOs to gin's validator.
func registerValidators() {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("currency", func(fl validator.FieldLevel) bool {
			return domain.Currency(fl.Field().String()).IsSupported()
		})
	})
}

// respondError writes the error envelope for a service error. Internal causes are logged, never echoed.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.HTTPStatus(err)
	code := apperrors.CodeOf(err)

	if status >= http.StatusInternalServerError {
		logger.Error("Request failed", slog.String("code", code), slog.String("error", err.Error()))
	} else {
		logger.Warn("Request rejected", slog.String("code", code), slog.String("error", err.Error()))
	}

	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: dto.ErrorBody{
		Code:    code,
		Message: apperrors.PublicMessage(err),
	}})
}

// respondBindError reports malformed JSON or failed binding rules as VALIDATION_ERROR.
func respondBindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))

	body := dto.ErrorBody{Code: apperrors.CodeValidation, Message: "Invalid request"}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			body.Details = append(body.Details, dto.FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
	} else {
		body.Message = "Invalid request format"
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: body})
}

// bindOptionalJSON binds a JSON body that may legitimately be empty.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return binding.Validator.ValidateStruct(obj)
	}
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// callerID returns the authenticated user or writes 401.
func callerID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: dto.ErrorBody{
			Code:    apperrors.CodeUnauthorized,
			Message: "Unauthorized",
		}})
		return "", false
	}
	return userID, true
}
