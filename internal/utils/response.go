// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/resona/resona-api/internal/i18n"
	"github.com/resona/resona-api/internal/ledger"
	"github.com/resona/resona-api/internal/models"
)

// Context keys set by the middleware.
const (
	ContextKeyLang    = "lang"
	ContextKeySession = "session"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func SuccessResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
	})
}

func SuccessResponseWithMeta(c *gin.Context, data interface{}, meta interface{}) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    data,
		Meta:    meta,
	})
}

// ListResponse reports whether the ledger could be reached alongside the data.
func ListResponse(c *gin.Context, data interface{}, available bool) {
	SuccessResponseWithMeta(c, data, gin.H{"available": available})
}

func CreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Data:    data,
	})
}

// MessageResponse acknowledges a mutation with a translated message.
func MessageResponse(c *gin.Context, key string) {
	SuccessResponse(c, gin.H{"message": i18n.T(GetLangFromContext(c), key)})
}

func ErrorResponse(c *gin.Context, statusCode int, code, message string, details interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &APIError{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func BadRequestResponse(c *gin.Context, message string, details interface{}) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyValidationInvalid, "request")
	}
	ErrorResponse(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

func UnauthorizedResponse(c *gin.Context, message string) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyAuthRequired)
	}
	ErrorResponse(c, http.StatusUnauthorized, "UNAUTHORIZED", message, nil)
}

func ForbiddenResponse(c *gin.Context, message string) {
	lang := GetLangFromContext(c)
	if message == "" {
		message = i18n.T(lang, i18n.KeyAdminAccessDenied)
	}
	ErrorResponse(c, http.StatusForbidden, "FORBIDDEN", message, nil)
}

func NotFoundResponse(c *gin.Context, resource string) {
	lang := GetLangFromContext(c)
	message := i18n.T(lang, resource+".not_found")
	ErrorResponse(c, http.StatusNotFound, "NOT_FOUND", message, nil)
}

func InternalErrorResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	ErrorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", message, nil)
}

func ValidationErrorResponse(c *gin.Context, errors []ValidationError) {
	lang := GetLangFromContext(c)
	message := i18n.T(lang, i18n.KeyValidationInvalid, "input")
	ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", message, errors)
}

func UnavailableResponse(c *gin.Context) {
	lang := GetLangFromContext(c)
	ErrorResponse(c, http.StatusServiceUnavailable, "LEDGER_UNAVAILABLE", i18n.T(lang, i18n.KeyLedgerUnavailable), nil)
}

// RemoteRejectedResponse passes the ledger's own message through.
func RemoteRejectedResponse(c *gin.Context, err *ledger.RemoteError) {
	message := err.Message
	if message == "" {
		message = i18n.T(GetLangFromContext(c), i18n.KeyLedgerRejected)
	}
	ErrorResponse(c, http.StatusUnprocessableEntity, "REMOTE_REJECTED", message, gin.H{"method": err.Method})
}

// ServiceErrorResponse maps an error returned by a service to the envelope.
// resource names the i18n prefix used for not found messages.
func ServiceErrorResponse(c *gin.Context, err error, resource string) {
	var remote *ledger.RemoteError
	var invalid validator.ValidationErrors

	switch {
	case errors.As(err, &invalid):
		ValidationErrorResponse(c, GetValidationErrors(err))
	case errors.Is(err, models.ErrVariantFields):
		ValidationErrorResponse(c, []ValidationError{{Field: "product_type", Tag: "variant", Message: err.Error()}})
	case errors.Is(err, models.ErrInvalidInput):
		ErrorResponse(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error(), nil)
	case errors.Is(err, models.ErrNotConfigured):
		ErrorResponse(c, http.StatusServiceUnavailable, "NOT_CONFIGURED", i18n.T(GetLangFromContext(c), i18n.KeyPaymentNotConfigured), nil)
	case errors.As(err, &remote):
		RemoteRejectedResponse(c, remote)
	case ledger.IsUnavailable(err):
		UnavailableResponse(c)
	case errors.Is(err, ledger.ErrNotFound):
		NotFoundResponse(c, resource)
	case errors.Is(err, ledger.ErrNumericOverflow):
		ErrorResponse(c, http.StatusBadGateway, "LEDGER_NUMERIC_OVERFLOW", err.Error(), nil)
	default:
		InternalErrorResponse(c, err.Error())
	}
}

func PaginatedResponse(c *gin.Context, result PaginationResult) {
	SetPaginationHeaders(c, result)
	SuccessResponseWithMeta(c, result.Data, gin.H{
		"pagination": gin.H{
			"page":        result.Page,
			"limit":       result.Limit,
			"total":       result.Total,
			"total_pages": result.TotalPages,
		},
	})
}

func GetLangFromContext(c *gin.Context) string {
	if lang, exists := c.Get(ContextKeyLang); exists {
		if langStr, ok := lang.(string); ok {
			return langStr
		}
	}
	return "en"
}

// GetSessionFromContext returns the caller session, or an anonymous one.
func GetSessionFromContext(c *gin.Context) ledger.Session {
	if s, exists := c.Get(ContextKeySession); exists {
		if session, ok := s.(ledger.Session); ok {
			return session
		}
	}
	return ledger.Session{}
}
