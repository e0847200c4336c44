package domain

import (
	"context"
	"errors"
)

type ListInvoiceRequest struct {
	Type  *InvoiceType
	State *InvoiceState
}

type ListInvoiceResponse struct {
	Invoices []Invoice `json:"invoices"`
}

type Service interface {
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	// LoadForDocument fetches invoices with the full association graph the
	// document assembler needs, in the order of the given identifiers.
	LoadForDocument(ctx context.Context, ids []string) ([]Invoice, error)
}

var (
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
	ErrInvalidInvoiceID = errors.New("invalid_invoice_id")
)
