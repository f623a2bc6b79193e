package server

import (
	"errors"
	"net/http"
	"strings"

	appdomain "github.com/collectpay/collectpay/internal/app/domain"
	authdomain "github.com/collectpay/collectpay/internal/auth/domain"
	"github.com/collectpay/collectpay/internal/auth/token"
	collectiondomain "github.com/collectpay/collectpay/internal/collection/domain"
	dashboarddomain "github.com/collectpay/collectpay/internal/dashboard/domain"
	paymentdomain "github.com/collectpay/collectpay/internal/payment/domain"
	spenddomain "github.com/collectpay/collectpay/internal/spend/domain"
	"github.com/collectpay/collectpay/internal/timerange"
	userdomain "github.com/collectpay/collectpay/internal/user/domain"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInvalidRequest = errors.New("invalid_request")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if err == nil {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	if isValidationError(err) {
		code := err.Error()
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   validationErrorField(code),
					Code:    code,
					Message: validationErrorMessage(code),
				},
			},
		}
	}

	switch {
	case isUnauthorizedError(err):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case isForbiddenError(err):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isConflictError(err):
		// Unique-key conflicts answer 400, not 409, matching the public API
		// contract the dashboards were built against.
		return http.StatusBadRequest, errorPayload{
			Type:    "conflict",
			Message: "already exists",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

func isValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidRequest),
		errors.Is(err, userdomain.ErrInvalidID),
		errors.Is(err, userdomain.ErrInvalidUsername),
		errors.Is(err, userdomain.ErrInvalidEmail),
		errors.Is(err, userdomain.ErrInvalidPassword),
		errors.Is(err, userdomain.ErrInvalidRole),
		errors.Is(err, userdomain.ErrNotChildAdmin),
		errors.Is(err, userdomain.ErrUnknownApp),
		errors.Is(err, appdomain.ErrInvalidName),
		errors.Is(err, appdomain.ErrEmptyUpdate),
		errors.Is(err, paymentdomain.ErrMissingUUID),
		errors.Is(err, paymentdomain.ErrMissingAppID),
		errors.Is(err, paymentdomain.ErrInvalidStatus),
		errors.Is(err, paymentdomain.ErrInvalidTxnDate),
		errors.Is(err, collectiondomain.ErrMissingAppID),
		errors.Is(err, collectiondomain.ErrInvalidTag),
		errors.Is(err, collectiondomain.ErrEmptyBatch),
		errors.Is(err, collectiondomain.ErrUnknownApp),
		errors.Is(err, spenddomain.ErrInvalidID),
		errors.Is(err, spenddomain.ErrMissingAppID),
		errors.Is(err, spenddomain.ErrInvalidDate),
		errors.Is(err, spenddomain.ErrInvalidSettlement),
		errors.Is(err, spenddomain.ErrInvalidAmount),
		errors.Is(err, dashboarddomain.ErrInvalidFilter),
		errors.Is(err, dashboarddomain.ErrInvalidDate),
		errors.Is(err, timerange.ErrUnknownFilter):
		return true
	default:
		return false
	}
}

func isUnauthorizedError(err error) bool {
	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidCredentials),
		errors.Is(err, authdomain.ErrInactiveUser),
		errors.Is(err, token.ErrInvalidToken),
		errors.Is(err, token.ErrExpiredToken):
		return true
	default:
		return false
	}
}

func isForbiddenError(err error) bool {
	switch {
	case errors.Is(err, ErrForbidden),
		errors.Is(err, appdomain.ErrForbidden),
		errors.Is(err, paymentdomain.ErrForbidden),
		errors.Is(err, collectiondomain.ErrForbidden),
		errors.Is(err, spenddomain.ErrForbidden):
		return true
	default:
		return false
	}
}

func isConflictError(err error) bool {
	return errors.Is(err, userdomain.ErrDuplicateUser)
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, userdomain.ErrNotFound),
		errors.Is(err, appdomain.ErrNotFound),
		errors.Is(err, paymentdomain.ErrNotFound),
		errors.Is(err, collectiondomain.ErrNotFound),
		errors.Is(err, collectiondomain.ErrEmptyPool),
		errors.Is(err, spenddomain.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}

func validationErrorField(code string) string {
	if strings.HasPrefix(code, "invalid_") {
		return strings.TrimPrefix(code, "invalid_")
	}
	if strings.HasPrefix(code, "missing_") {
		return strings.TrimPrefix(code, "missing_")
	}
	return ""
}

func validationErrorMessage(code string) string {
	switch {
	case code == "invalid_request":
		return "invalid request"
	case strings.HasPrefix(code, "missing_"):
		return "required value missing"
	default:
		return "invalid value"
	}
}

// classifyErrorForLog feeds the request logger's error_type/error_code fields.
func classifyErrorForLog(err error) (string, string) {
	_, payload := mapError(err)
	code := payload.Type
	if len(payload.Errors) > 0 {
		code = payload.Errors[0].Code
	}
	return payload.Type, code
}
