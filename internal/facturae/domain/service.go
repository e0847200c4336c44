package domain

import "context"

// GenerateRequest asks for signed documents for a set of invoices. The
// certificate password is held in memory only for the duration of the call.
type GenerateRequest struct {
	InvoiceIDs          []string `json:"invoice_ids"`
	CertificatePassword string   `json:"certificate_password"`
}

// GenerateResult reports, by invoice number, which documents were produced
// and which invoices were skipped.
type GenerateResult struct {
	Generated []string `json:"generated"`
	Skipped   []string `json:"skipped"`
}

type Service interface {
	Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error)
}
