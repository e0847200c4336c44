// Package domain defines the document pipeline's error taxonomy and ports.
package domain

import (
	"errors"
	"fmt"
	"time"
)

// Precondition codes name the master-data check that failed. They mirror the
// checks the assembler runs before rendering.
const (
	PreconditionFutureInvoiceDate      = "future_invoice_date"
	PreconditionTooManyCredited        = "too_many_credited_invoices"
	PreconditionMissingReasonCode      = "missing_rectificative_reason"
	PreconditionMissingTaxOutput       = "missing_tax_output"
	PreconditionMissingCertificate     = "missing_certificate"
	PreconditionCompanyFacturaeFields  = "company_facturae_fields"
	PreconditionCompanyVATIdentifier   = "company_vat_identifier"
	PreconditionCompanyAddressFields   = "company_address_fields"
	PreconditionPartyFacturaeFields    = "party_facturae_fields"
	PreconditionPartyVATIdentifier     = "party_vat_identifier"
	PreconditionPartyNameSurname       = "party_name_surname"
	PreconditionInvoiceAddressFields   = "invoice_address_fields"
	PreconditionNoBaseCurrency         = "no_base_currency"
	PreconditionUnsupportedTaxType     = "unsupported_tax_type"
	PreconditionMissingPaymentType     = "missing_payment_type"
	PreconditionMissingPaymentTypeCode = "missing_payment_type_facturae_type"
	PreconditionMissingBankAccount     = "missing_bank_account"
	PreconditionMissingIBAN            = "missing_iban"
)

// PreconditionError reports missing or invalid master data. It names the
// failed check and the offending record so the user can fix it; it is never
// retried automatically.
type PreconditionError struct {
	Check  string
	Record string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("facturae precondition %s failed for %q", e.Check, e.Record)
}

// MissingRateError reports that no exchange rate was found on or before the
// invoice date.
type MissingRateError struct {
	Currency string
	Date     time.Time
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("no rate found for currency %q on %s", e.Currency, e.Date.Format("02/01/2006"))
}

// SchemaValidationError reports that a generated document does not conform
// to the official schema. It carries the document for diagnostics; the user
// only sees a generic message because this indicates an internal bug.
type SchemaValidationError struct {
	Document []byte
	Cause    error
}

func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("generated document failed schema validation: %v", e.Cause)
}

func (e *SchemaValidationError) Unwrap() error { return e.Cause }

// SigningError reports a failed external signing run. Output is the signer
// process's combined diagnostics; the certificate password is never included.
type SigningError struct {
	Invoice string
	Output  string
	Cause   error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("error signing invoice %q: %s", e.Invoice, e.Output)
}

func (e *SigningError) Unwrap() error { return e.Cause }

var (
	// ErrAlreadySigned is returned when a caller explicitly asks to
	// regenerate a document; the pipeline itself silently skips.
	ErrAlreadySigned = errors.New("invoice_already_signed")
)
