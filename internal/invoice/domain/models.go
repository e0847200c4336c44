// Package domain contains persistence models for invoices and their tax and
// payment breakdowns.
package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	companydomain "github.com/smallbiznis/facturae/internal/company/domain"
	partydomain "github.com/smallbiznis/facturae/internal/party/domain"
	paymenttypedomain "github.com/smallbiznis/facturae/internal/paymenttype/domain"
	referencedomain "github.com/smallbiznis/facturae/internal/reference/domain"
)

// InvoiceType distinguishes outbound (customer) from inbound (supplier)
// invoices. Only outbound invoices produce Factura-e documents.
type InvoiceType string

const (
	InvoiceTypeOut InvoiceType = "out"
	InvoiceTypeIn  InvoiceType = "in"
)

// InvoiceState represents invoice lifecycle states.
type InvoiceState string

const (
	InvoiceStateDraft  InvoiceState = "draft"
	InvoiceStatePosted InvoiceState = "posted"
	InvoiceStatePaid   InvoiceState = "paid"
)

// Finalized reports whether the invoice reached a state that allows
// document generation.
func (s InvoiceState) Finalized() bool {
	return s == InvoiceStatePosted || s == InvoiceStatePaid
}

// TaxType restricts how a tax is computed. The document format only
// supports percentage taxes.
type TaxType string

const (
	TaxTypePercentage TaxType = "percentage"
	TaxTypeFixed      TaxType = "fixed"
)

// ReportTypeItemInfo is the tax report type rendered as additional
// line-item information on the document.
const ReportTypeItemInfo = "05"

// Tax is a tax definition referenced by invoice tax lines. Rate is a
// fraction (0.21 for 21%); withholding taxes carry a negative rate.
type Tax struct {
	ID                snowflake.ID    `gorm:"primaryKey"`
	Name              string          `gorm:"type:text;not null"`
	Type              TaxType         `gorm:"type:text;not null;default:'percentage'"`
	Rate              decimal.Decimal `gorm:"type:numeric(10,6);not null"`
	ReportType        *string         `gorm:"column:report_type;type:text"`
	ReportDescription *string         `gorm:"column:report_description;type:text"`
}

func (Tax) TableName() string { return "taxes" }

// Invoice is the billing document the Factura-e file is generated from.
type Invoice struct {
	ID        snowflake.ID          `gorm:"primaryKey"`
	CompanyID snowflake.ID          `gorm:"not null;index"`
	Company   companydomain.Company `gorm:"foreignKey:CompanyID"`
	PartyID   snowflake.ID          `gorm:"not null;index"`
	Party     partydomain.Party     `gorm:"foreignKey:PartyID"`

	Type         InvoiceType  `gorm:"type:text;not null"`
	State        InvoiceState `gorm:"type:text;not null;default:'draft'"`
	Number       string       `gorm:"type:text;not null"`
	InvoiceDate  time.Time    `gorm:"type:date;not null"`
	CurrencyCode string       `gorm:"column:currency_code;type:char(3);not null"`

	InvoiceAddressID *snowflake.ID        `gorm:"column:invoice_address_id"`
	InvoiceAddress   *partydomain.Address `gorm:"foreignKey:InvoiceAddressID"`

	// RectificativeReasonCode is required exactly when the invoice corrects
	// another one and has been finalized.
	RectificativeReasonCode *string `gorm:"column:rectificative_reason_code;type:text"`

	UntaxedAmount decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0"`
	TaxAmount     decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0"`

	// Facturae holds the signed document. Written once, never regenerated.
	Facturae []byte `gorm:"column:facturae"`

	Lines []InvoiceLine `gorm:"foreignKey:InvoiceID"`
	// TaxLines holds both invoice-level summary rows (LineID nil) and
	// per-line rows.
	TaxLines       []TaxLine       `gorm:"foreignKey:InvoiceID"`
	PaymentDetails []PaymentDetail `gorm:"foreignKey:InvoiceID"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Invoice) TableName() string { return "invoices" }

// HasFacturae reports whether a signed document is already stored.
func (inv *Invoice) HasFacturae() bool {
	return len(inv.Facturae) > 0
}

// FacturaeFilename derives the download name of the signed document.
func (inv *Invoice) FacturaeFilename() string {
	return fmt.Sprintf("facturae-%s.xsig", slug.Make(inv.Number))
}

// CreditedInvoices returns the distinct invoices this one corrects,
// collected from the origin references of its lines.
func (inv *Invoice) CreditedInvoices() []snowflake.ID {
	seen := map[snowflake.ID]struct{}{}
	var ids []snowflake.ID
	for _, line := range inv.Lines {
		if line.OriginInvoiceID == nil {
			continue
		}
		if _, ok := seen[*line.OriginInvoiceID]; ok {
			continue
		}
		seen[*line.OriginInvoiceID] = struct{}{}
		ids = append(ids, *line.OriginInvoiceID)
	}
	return ids
}

// CreditedInvoice returns the first loaded credited invoice, or nil. Only
// meaningful once the at-most-one invariant has been checked.
func (inv *Invoice) CreditedInvoice() *Invoice {
	for _, line := range inv.Lines {
		if line.OriginInvoice != nil {
			return line.OriginInvoice
		}
	}
	return nil
}

// RectificativeReasonSpanish returns the Spanish description of the
// rectification reason, or "".
func (inv *Invoice) RectificativeReasonSpanish() string {
	if inv.RectificativeReasonCode == nil {
		return ""
	}
	if reason := referencedomain.RectificativeReasonByCode(*inv.RectificativeReasonCode); reason != nil {
		return reason.Spanish
	}
	return ""
}

// summaryTaxLines are the invoice-level tax rows.
func (inv *Invoice) summaryTaxLines() []TaxLine {
	var out []TaxLine
	for _, tl := range inv.TaxLines {
		if tl.LineID == nil {
			out = append(out, tl)
		}
	}
	return out
}

// TaxesOutputs returns the invoice-level tax rows with non-negative rate
// ("impuestos repercutidos").
func (inv *Invoice) TaxesOutputs() []TaxLine {
	return filterOutputs(inv.summaryTaxLines())
}

// TaxesWithheld returns the invoice-level tax rows with negative rate
// ("impuestos retenidos").
func (inv *Invoice) TaxesWithheld() []TaxLine {
	return filterWithheld(inv.summaryTaxLines())
}

// SortedPaymentDetails returns the maturity schedule ordered by due date.
func (inv *Invoice) SortedPaymentDetails() []PaymentDetail {
	details := make([]PaymentDetail, len(inv.PaymentDetails))
	copy(details, inv.PaymentDetails)
	sort.Slice(details, func(i, j int) bool {
		return details[i].MaturityDate.Before(details[j].MaturityDate)
	})
	return details
}

// InvoiceLine is one item on an invoice.
type InvoiceLine struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	InvoiceID snowflake.ID `gorm:"not null;index"`

	Description string          `gorm:"type:text;not null"`
	Quantity    decimal.Decimal `gorm:"type:numeric(16,6);not null"`
	Unit        string          `gorm:"type:text"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(16,6);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(16,2);not null"`

	// OriginInvoiceID points at the invoice this line credits, if any.
	OriginInvoiceID *snowflake.ID `gorm:"column:origin_invoice_id;index"`
	OriginInvoice   *Invoice      `gorm:"foreignKey:OriginInvoiceID"`

	TaxLines []TaxLine `gorm:"foreignKey:LineID"`
}

func (InvoiceLine) TableName() string { return "invoice_lines" }

// TaxesOutputs returns the line's tax rows with non-negative rate.
func (l *InvoiceLine) TaxesOutputs() []TaxLine {
	return filterOutputs(l.TaxLines)
}

// TaxesWithheld returns the line's tax rows with negative rate.
func (l *InvoiceLine) TaxesWithheld() []TaxLine {
	return filterWithheld(l.TaxLines)
}

// AdditionalItemInformation groups the line's tax report metadata by report
// type. Rows with report type "05" (or none) are keyed by their
// (rate, base, amount) tuple; a single such row collapses to one entry under
// "05", several become one entry per distinct composite key.
func (l *InvoiceLine) AdditionalItemInformation() map[string]string {
	type itemInfo struct {
		key         string
		description string
	}
	var collapsible []itemInfo
	res := map[string]string{}
	for _, tl := range l.TaxLines {
		tax := tl.Tax
		if tax.ReportType == nil || *tax.ReportType == ReportTypeItemInfo {
			key := fmt.Sprintf("%s %s %s",
				tax.Rate.Mul(decimal.NewFromInt(100)).String(),
				tl.Base.String(),
				tl.Amount.String(),
			)
			collapsible = append(collapsible, itemInfo{key: key, description: tl.Description})
		} else if tax.ReportDescription != nil {
			res[*tax.ReportType] = *tax.ReportDescription
		}
	}
	if len(collapsible) == 1 {
		res[ReportTypeItemInfo] = collapsible[0].description
	} else {
		for _, info := range collapsible {
			res[ReportTypeItemInfo+" "+info.key] = info.description
		}
	}
	return res
}

// TaxLine links an invoice (and optionally one of its lines) to a tax with
// the base and resulting amount.
type TaxLine struct {
	ID        snowflake.ID  `gorm:"primaryKey"`
	InvoiceID snowflake.ID  `gorm:"not null;index"`
	LineID    *snowflake.ID `gorm:"column:line_id;index"`
	TaxID     snowflake.ID  `gorm:"not null"`
	Tax       Tax           `gorm:"foreignKey:TaxID"`

	Base        decimal.Decimal `gorm:"type:numeric(16,2);not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(16,2);not null"`
	Description string          `gorm:"type:text"`
}

func (TaxLine) TableName() string { return "invoice_tax_lines" }

// PaymentDetail is one maturity of the invoice's payment schedule.
type PaymentDetail struct {
	ID        snowflake.ID `gorm:"primaryKey"`
	InvoiceID snowflake.ID `gorm:"not null;index"`

	MaturityDate time.Time       `gorm:"type:date;not null"`
	Amount       decimal.Decimal `gorm:"type:numeric(16,2);not null"`

	PaymentTypeID *snowflake.ID                  `gorm:"column:payment_type_id"`
	PaymentType   *paymenttypedomain.PaymentType `gorm:"foreignKey:PaymentTypeID"`

	BankAccountID *snowflake.ID            `gorm:"column:bank_account_id"`
	BankAccount   *partydomain.BankAccount `gorm:"foreignKey:BankAccountID"`
}

func (PaymentDetail) TableName() string { return "invoice_payment_details" }

func filterOutputs(lines []TaxLine) []TaxLine {
	var out []TaxLine
	for _, tl := range lines {
		if !tl.Tax.Rate.IsNegative() {
			out = append(out, tl)
		}
	}
	return out
}

func filterWithheld(lines []TaxLine) []TaxLine {
	var out []TaxLine
	for _, tl := range lines {
		if tl.Tax.Rate.IsNegative() {
			out = append(out, tl)
		}
	}
	return out
}
