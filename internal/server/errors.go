package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	facturaedomain "github.com/smallbiznis/facturae/internal/facturae/domain"
	invoicedomain "github.com/smallbiznis/facturae/internal/invoice/domain"
	partydomain "github.com/smallbiznis/facturae/internal/party/domain"
	paymenttypedomain "github.com/smallbiznis/facturae/internal/paymenttype/domain"
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

	// Precondition failures name the failed check and the record so the
	// user can repair the master data and retry.
	var pErr *facturaedomain.PreconditionError
	if errors.As(err, &pErr) {
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "precondition_failed",
			Message: pErr.Error(),
			Errors: []ValidationError{
				{
					Field:   pErr.Record,
					Code:    pErr.Check,
					Message: pErr.Error(),
				},
			},
		}
	}

	var rErr *facturaedomain.MissingRateError
	if errors.As(err, &rErr) {
		return http.StatusUnprocessableEntity, errorPayload{
			Type:    "missing_rate",
			Message: rErr.Error(),
		}
	}

	// A schema failure means the assembler produced a bad document. The
	// offending payload is already logged; the client gets nothing useful.
	var sErr *facturaedomain.SchemaValidationError
	if errors.As(err, &sErr) {
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}

	var signErr *facturaedomain.SigningError
	if errors.As(err, &signErr) {
		return http.StatusBadGateway, errorPayload{
			Type:    "signing_failed",
			Message: signErr.Error(),
		}
	}

	switch {
	case isValidationSentinel(err):
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
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	case errors.Is(err, facturaedomain.ErrAlreadySigned):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "invoice already signed",
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

func isValidationSentinel(err error) bool {
	switch {
	case errors.Is(err, invoicedomain.ErrInvalidInvoiceID),
		errors.Is(err, partydomain.ErrInvalidPartyID),
		errors.Is(err, partydomain.ErrInvalidPersonType),
		errors.Is(err, partydomain.ErrInvalidResidence),
		errors.Is(err, paymenttypedomain.ErrInvalidPaymentTypeID),
		errors.Is(err, paymenttypedomain.ErrUnknownFacturaeType),
		errors.Is(err, paymenttypedomain.ErrIncompatibleBankOwner):
		return true
	default:
		return false
	}
}

func isNotFoundError(err error) bool {
	switch {
	case errors.Is(err, invoicedomain.ErrInvoiceNotFound),
		errors.Is(err, partydomain.ErrPartyNotFound),
		errors.Is(err, paymenttypedomain.ErrPaymentTypeNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		return true
	default:
		return false
	}
}
