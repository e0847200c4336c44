package server

import (
	"errors"
	"net/http"
	"testing"
	"time"

	facturaedomain "github.com/smallbiznis/facturae/internal/facturae/domain"
	invoicedomain "github.com/smallbiznis/facturae/internal/invoice/domain"
	partydomain "github.com/smallbiznis/facturae/internal/party/domain"
	paymenttypedomain "github.com/smallbiznis/facturae/internal/paymenttype/domain"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorPrecondition(t *testing.T) {
	status, payload := mapError(&facturaedomain.PreconditionError{
		Check:  facturaedomain.PreconditionMissingIBAN,
		Record: "Juan García López",
	})

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "precondition_failed", payload.Type)
	if assert.Len(t, payload.Errors, 1) {
		assert.Equal(t, "missing_iban", payload.Errors[0].Code)
		assert.Equal(t, "Juan García López", payload.Errors[0].Field)
	}
}

func TestMapErrorMissingRate(t *testing.T) {
	status, payload := mapError(&facturaedomain.MissingRateError{
		Currency: "USD",
		Date:     time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
	})

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "missing_rate", payload.Type)
	assert.Contains(t, payload.Message, "USD")
	assert.Contains(t, payload.Message, "01/08/2026")
}

func TestMapErrorSchemaFailureStaysGeneric(t *testing.T) {
	status, payload := mapError(&facturaedomain.SchemaValidationError{
		Document: []byte("<Facturae/>"),
		Cause:    errors.New("element TaxCurrencyCode missing"),
	})

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", payload.Type)
	assert.NotContains(t, payload.Message, "TaxCurrencyCode")
}

func TestMapErrorSigningFailure(t *testing.T) {
	status, payload := mapError(&facturaedomain.SigningError{
		Invoice: "A-2026-001",
		Output:  "keystore was tampered with",
		Cause:   errors.New("exit status 3"),
	})

	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "signing_failed", payload.Type)
	assert.Contains(t, payload.Message, "A-2026-001")
	assert.Contains(t, payload.Message, "keystore was tampered with")
}

func TestMapErrorNotFound(t *testing.T) {
	for _, err := range []error{
		invoicedomain.ErrInvoiceNotFound,
		partydomain.ErrPartyNotFound,
		paymenttypedomain.ErrPaymentTypeNotFound,
	} {
		status, payload := mapError(err)
		assert.Equal(t, http.StatusNotFound, status, err.Error())
		assert.Equal(t, "not_found", payload.Type)
	}
}

func TestMapErrorValidationSentinels(t *testing.T) {
	for _, err := range []error{
		invoicedomain.ErrInvalidInvoiceID,
		partydomain.ErrInvalidPersonType,
		paymenttypedomain.ErrUnknownFacturaeType,
		paymenttypedomain.ErrIncompatibleBankOwner,
	} {
		status, payload := mapError(err)
		assert.Equal(t, http.StatusBadRequest, status, err.Error())
		assert.Equal(t, "validation_error", payload.Type)
		if assert.Len(t, payload.Errors, 1) {
			assert.Equal(t, err.Error(), payload.Errors[0].Code)
		}
	}
}

func TestMapErrorAlreadySigned(t *testing.T) {
	status, payload := mapError(facturaedomain.ErrAlreadySigned)

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "conflict", payload.Type)
}

func TestMapErrorUnknownDefaultsToInternal(t *testing.T) {
	status, payload := mapError(errors.New("boom"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "internal_error", payload.Type)
	assert.NotContains(t, payload.Message, "boom")
}
