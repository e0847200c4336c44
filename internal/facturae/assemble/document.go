// Package assemble builds Facturae 3.2.1 documents from loaded invoices.
package assemble

import (
	"encoding/xml"
	"time"

	"github.com/shopspring/decimal"
)

// Namespace is the Facturae 3.2.1 schema namespace.
const Namespace = "http://www.facturae.es/Facturae/2014/v3.2.1/Facturae"

const dsNamespace = "http://www.w3.org/2000/09/xmldsig#"

// amount2 renders with exactly two decimal places, as the schema requires
// for monetary totals.
type amount2 decimal.Decimal

func (a amount2) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(decimal.Decimal(a).StringFixed(2), start)
}

// amount6 renders with six decimal places, used for quantities and unit
// prices.
type amount6 decimal.Decimal

func (a amount6) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(decimal.Decimal(a).StringFixed(6), start)
}

// isoDate renders as YYYY-MM-DD.
type isoDate time.Time

func (d isoDate) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return e.EncodeElement(time.Time(d).Format("2006-01-02"), start)
}

// Document is the root of a Facturae 3.2.1 file. Only the root element is
// prefixed; children stay unqualified, matching elementFormDefault of the
// official schema.
type Document struct {
	XMLName    xml.Name   `xml:"fe:Facturae"`
	XMLNSFe    string     `xml:"xmlns:fe,attr"`
	XMLNSDs    string     `xml:"xmlns:ds,attr"`
	FileHeader FileHeader `xml:"FileHeader"`
	Parties    Parties    `xml:"Parties"`
	Invoices   Invoices   `xml:"Invoices"`
}

type FileHeader struct {
	SchemaVersion     string `xml:"SchemaVersion"`
	Modality          string `xml:"Modality"`
	InvoiceIssuerType string `xml:"InvoiceIssuerType"`
	Batch             Batch  `xml:"Batch"`
}

type Batch struct {
	BatchIdentifier        string `xml:"BatchIdentifier"`
	InvoicesCount          int    `xml:"InvoicesCount"`
	TotalInvoicesAmount    Amount `xml:"TotalInvoicesAmount"`
	TotalOutstandingAmount Amount `xml:"TotalOutstandingAmount"`
	TotalExecutableAmount  Amount `xml:"TotalExecutableAmount"`
	InvoiceCurrencyCode    string `xml:"InvoiceCurrencyCode"`
}

type Amount struct {
	TotalAmount amount2 `xml:"TotalAmount"`
}

type Parties struct {
	SellerParty Party `xml:"SellerParty"`
	BuyerParty  Party `xml:"BuyerParty"`
}

type Party struct {
	TaxIdentification TaxIdentification `xml:"TaxIdentification"`
	LegalEntity       *LegalEntity      `xml:"LegalEntity,omitempty"`
	Individual        *Individual       `xml:"Individual,omitempty"`
}

type TaxIdentification struct {
	PersonTypeCode          string `xml:"PersonTypeCode"`
	ResidenceTypeCode       string `xml:"ResidenceTypeCode"`
	TaxIdentificationNumber string `xml:"TaxIdentificationNumber"`
}

type LegalEntity struct {
	CorporateName   string           `xml:"CorporateName"`
	AddressInSpain  *AddressInSpain  `xml:"AddressInSpain,omitempty"`
	OverseasAddress *OverseasAddress `xml:"OverseasAddress,omitempty"`
}

type Individual struct {
	Name            string           `xml:"Name"`
	FirstSurname    string           `xml:"FirstSurname"`
	SecondSurname   string           `xml:"SecondSurname,omitempty"`
	AddressInSpain  *AddressInSpain  `xml:"AddressInSpain,omitempty"`
	OverseasAddress *OverseasAddress `xml:"OverseasAddress,omitempty"`
}

type AddressInSpain struct {
	Address     string `xml:"Address"`
	PostCode    string `xml:"PostCode"`
	Town        string `xml:"Town"`
	Province    string `xml:"Province"`
	CountryCode string `xml:"CountryCode"`
}

type OverseasAddress struct {
	Address         string `xml:"Address"`
	PostCodeAndTown string `xml:"PostCodeAndTown"`
	Province        string `xml:"Province"`
	CountryCode     string `xml:"CountryCode"`
}

type Invoices struct {
	Invoice []Invoice `xml:"Invoice"`
}

type Invoice struct {
	InvoiceHeader    InvoiceHeader    `xml:"InvoiceHeader"`
	InvoiceIssueData InvoiceIssueData `xml:"InvoiceIssueData"`
	TaxesOutputs     Taxes            `xml:"TaxesOutputs"`
	TaxesWithheld    *Taxes           `xml:"TaxesWithheld,omitempty"`
	InvoiceTotals    InvoiceTotals    `xml:"InvoiceTotals"`
	Items            Items            `xml:"Items"`
	PaymentDetails   *PaymentDetails  `xml:"PaymentDetails,omitempty"`
}

type InvoiceHeader struct {
	InvoiceNumber       string      `xml:"InvoiceNumber"`
	InvoiceDocumentType string      `xml:"InvoiceDocumentType"`
	InvoiceClass        string      `xml:"InvoiceClass"`
	Corrective          *Corrective `xml:"Corrective,omitempty"`
}

type Corrective struct {
	InvoiceNumber               string    `xml:"InvoiceNumber"`
	ReasonCode                  string    `xml:"ReasonCode"`
	ReasonDescription           string    `xml:"ReasonDescription"`
	TaxPeriod                   TaxPeriod `xml:"TaxPeriod"`
	CorrectionMethod            string    `xml:"CorrectionMethod"`
	CorrectionMethodDescription string    `xml:"CorrectionMethodDescription"`
}

type TaxPeriod struct {
	StartDate isoDate `xml:"StartDate"`
	EndDate   isoDate `xml:"EndDate"`
}

type InvoiceIssueData struct {
	IssueDate           isoDate              `xml:"IssueDate"`
	InvoiceCurrencyCode string               `xml:"InvoiceCurrencyCode"`
	ExchangeRateDetails *ExchangeRateDetails `xml:"ExchangeRateDetails,omitempty"`
	TaxCurrencyCode     string               `xml:"TaxCurrencyCode"`
	LanguageName        string               `xml:"LanguageName"`
}

type ExchangeRateDetails struct {
	ExchangeRate     amount6 `xml:"ExchangeRate"`
	ExchangeRateDate isoDate `xml:"ExchangeRateDate"`
}

type Taxes struct {
	Tax []Tax `xml:"Tax"`
}

type Tax struct {
	TaxTypeCode string  `xml:"TaxTypeCode"`
	TaxRate     amount2 `xml:"TaxRate"`
	TaxableBase Amount  `xml:"TaxableBase"`
	TaxAmount   Amount  `xml:"TaxAmount"`
}

type InvoiceTotals struct {
	TotalGrossAmount            amount2 `xml:"TotalGrossAmount"`
	TotalGrossAmountBeforeTaxes amount2 `xml:"TotalGrossAmountBeforeTaxes"`
	TotalTaxOutputs             amount2 `xml:"TotalTaxOutputs"`
	TotalTaxesWithheld          amount2 `xml:"TotalTaxesWithheld"`
	InvoiceTotal                amount2 `xml:"InvoiceTotal"`
	TotalOutstandingAmount      amount2 `xml:"TotalOutstandingAmount"`
	TotalExecutableAmount       amount2 `xml:"TotalExecutableAmount"`
}

type Items struct {
	InvoiceLine []Line `xml:"InvoiceLine"`
}

type Line struct {
	ItemDescription               string  `xml:"ItemDescription"`
	Quantity                      amount6 `xml:"Quantity"`
	UnitOfMeasure                 string  `xml:"UnitOfMeasure"`
	UnitPriceWithoutTax           amount6 `xml:"UnitPriceWithoutTax"`
	TotalCost                     amount6 `xml:"TotalCost"`
	GrossAmount                   amount6 `xml:"GrossAmount"`
	TaxesWithheld                 *Taxes  `xml:"TaxesWithheld,omitempty"`
	TaxesOutputs                  Taxes   `xml:"TaxesOutputs"`
	AdditionalLineItemInformation string  `xml:"AdditionalLineItemInformation,omitempty"`
}

type PaymentDetails struct {
	Installment []Installment `xml:"Installment"`
}

type Installment struct {
	InstallmentDueDate  isoDate        `xml:"InstallmentDueDate"`
	InstallmentAmount   amount2        `xml:"InstallmentAmount"`
	PaymentMeans        string         `xml:"PaymentMeans"`
	AccountToBeDebited  *AccountNumber `xml:"AccountToBeDebited,omitempty"`
	AccountToBeCredited *AccountNumber `xml:"AccountToBeCredited,omitempty"`
}

type AccountNumber struct {
	IBAN string `xml:"IBAN"`
}
