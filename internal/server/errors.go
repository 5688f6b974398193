package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	alertdomain "github.com/aquacoop/aquacoop/internal/alert/domain"
	authdomain "github.com/aquacoop/aquacoop/internal/auth/domain"
	billdomain "github.com/aquacoop/aquacoop/internal/bill/domain"
	expensedomain "github.com/aquacoop/aquacoop/internal/expense/domain"
	meterreadingdomain "github.com/aquacoop/aquacoop/internal/meterreading/domain"
	organizationdomain "github.com/aquacoop/aquacoop/internal/organization/domain"
	paymentdomain "github.com/aquacoop/aquacoop/internal/payment/domain"
	profiledomain "github.com/aquacoop/aquacoop/internal/profile/domain"
	settingdomain "github.com/aquacoop/aquacoop/internal/setting/domain"
	subscriberdomain "github.com/aquacoop/aquacoop/internal/subscriber/domain"
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

	var vErr *ValidationErrors
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	switch {
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, authdomain.ErrInvalidToken),
		errors.Is(err, authdomain.ErrInvalidCredentials):
		return http.StatusUnauthorized, errorPayload{
			Type:    "unauthorized",
			Message: "unauthorized",
		}
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden, errorPayload{
			Type:    "forbidden",
			Message: "forbidden",
		}
	case isNotFound(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "resource not found",
		}
	case isConflict(err):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: err.Error(),
		}
	case isValidation(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   "request",
					Code:    err.Error(),
					Message: err.Error(),
				},
			},
		}
	}

	return http.StatusInternalServerError, errorPayload{
		Type:    "internal_error",
		Message: "internal server error",
	}
}

func isNotFound(err error) bool {
	for _, target := range []error{
		organizationdomain.ErrNotFound,
		profiledomain.ErrNotFound,
		subscriberdomain.ErrNotFound,
		billdomain.ErrNotFound,
		billdomain.ErrSubscriberNotFound,
		meterreadingdomain.ErrSubscriberNotFound,
		paymentdomain.ErrNotFound,
		paymentdomain.ErrSubscriberNotFound,
		paymentdomain.ErrBillNotFound,
		expensedomain.ErrNotFound,
		alertdomain.ErrNotFound,
		settingdomain.ErrNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isConflict(err error) bool {
	for _, target := range []error{
		authdomain.ErrEmailTaken,
		subscriberdomain.ErrDuplicateMeterNumber,
		billdomain.ErrInvalidTransition,
		paymentdomain.ErrBillNotPayable,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isValidation(err error) bool {
	for _, target := range []error{
		authdomain.ErrInvalidEmail,
		authdomain.ErrInvalidPassword,
		profiledomain.ErrInvalidUserID,
		profiledomain.ErrInvalidFullName,
		profiledomain.ErrInvalidRole,
		organizationdomain.ErrInvalidName,
		organizationdomain.ErrInvalidAddress,
		organizationdomain.ErrInvalidCity,
		organizationdomain.ErrInvalidStatus,
		organizationdomain.ErrInvalidID,
		subscriberdomain.ErrInvalidOrganization,
		subscriberdomain.ErrInvalidName,
		subscriberdomain.ErrInvalidAddress,
		subscriberdomain.ErrInvalidMeterNumber,
		subscriberdomain.ErrInvalidStatus,
		subscriberdomain.ErrInvalidFamilySize,
		subscriberdomain.ErrInvalidID,
		meterreadingdomain.ErrInvalidOrganization,
		meterreadingdomain.ErrInvalidSubscriber,
		meterreadingdomain.ErrInvalidReading,
		billdomain.ErrInvalidOrganization,
		billdomain.ErrInvalidSubscriber,
		billdomain.ErrInvalidPeriod,
		billdomain.ErrInvalidAmount,
		billdomain.ErrInvalidConsumption,
		billdomain.ErrInvalidDueDate,
		billdomain.ErrInvalidStatus,
		billdomain.ErrInvalidID,
		paymentdomain.ErrInvalidOrganization,
		paymentdomain.ErrInvalidSubscriber,
		paymentdomain.ErrInvalidAmount,
		paymentdomain.ErrInvalidMethod,
		paymentdomain.ErrInvalidBill,
		paymentdomain.ErrBillMismatch,
		paymentdomain.ErrInvalidID,
		expensedomain.ErrInvalidOrganization,
		expensedomain.ErrInvalidCategory,
		expensedomain.ErrInvalidDescription,
		expensedomain.ErrInvalidAmount,
		expensedomain.ErrInvalidID,
		alertdomain.ErrInvalidOrganization,
		alertdomain.ErrInvalidType,
		alertdomain.ErrInvalidSeverity,
		alertdomain.ErrInvalidTitle,
		alertdomain.ErrInvalidMessage,
		alertdomain.ErrInvalidID,
		settingdomain.ErrInvalidOrganization,
		settingdomain.ErrInvalidKey,
		settingdomain.ErrInvalidValue,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
