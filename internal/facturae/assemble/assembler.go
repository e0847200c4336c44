package assemble

import (
	"context"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/smallbiznis/facturae/internal/clock"
	currencydomain "github.com/smallbiznis/facturae/internal/currency/domain"
	"github.com/smallbiznis/facturae/internal/facturae/domain"
	invoicedomain "github.com/smallbiznis/facturae/internal/invoice/domain"
	partydomain "github.com/smallbiznis/facturae/internal/party/domain"
	referencedomain "github.com/smallbiznis/facturae/internal/reference/domain"
)

const (
	schemaVersion     = "3.2.1"
	modality          = "I"
	invoiceIssuerType = "EM"

	documentTypeComplete   = "FC"
	invoiceClassOriginal   = "OO"
	invoiceClassCorrective = "OR"

	taxTypeVAT = "01"

	correctionMethodFull            = "01"
	correctionMethodFullDescription = "Rectificación íntegra"
)

// Assembler builds the unsigned Facturae document for an invoice after
// checking every master-data precondition.
type Assembler struct {
	currencies currencydomain.Repository
	clock      clock.Clock
	log        *zap.Logger
}

func New(currencies currencydomain.Repository, clk clock.Clock, log *zap.Logger) *Assembler {
	return &Assembler{
		currencies: currencies,
		clock:      clk,
		log:        log.Named("facturae.assemble"),
	}
}

// Assemble returns the UTF-8 XML document for the invoice, or (nil, nil)
// when the invoice is not an outbound finalized one. Any failed precondition
// aborts with a typed error naming the offending record.
func (a *Assembler) Assemble(ctx context.Context, inv *invoicedomain.Invoice) ([]byte, error) {
	if inv.Type != invoicedomain.InvoiceTypeOut || !inv.State.Finalized() {
		return nil, nil
	}

	if err := a.checkPreconditions(inv); err != nil {
		return nil, err
	}

	exchange, err := a.resolveExchangeRate(ctx, inv)
	if err != nil {
		return nil, err
	}

	doc := a.buildDocument(inv, exchange)
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal facturae document: %w", err)
	}
	a.log.Debug("document assembled",
		zap.String("invoice", inv.Number),
		zap.Int("bytes", len(out)))
	return append([]byte(xml.Header), out...), nil
}

func (a *Assembler) checkPreconditions(inv *invoicedomain.Invoice) error {
	if inv.InvoiceDate.After(a.clock.Now()) {
		return &domain.PreconditionError{
			Check:  domain.PreconditionFutureInvoiceDate,
			Record: inv.Number,
		}
	}
	credited := inv.CreditedInvoices()
	if len(credited) > 1 {
		return &domain.PreconditionError{
			Check:  domain.PreconditionTooManyCredited,
			Record: inv.Number,
		}
	}
	if len(credited) > 0 && inv.RectificativeReasonCode == nil {
		return &domain.PreconditionError{
			Check:  domain.PreconditionMissingReasonCode,
			Record: inv.Number,
		}
	}
	if len(inv.TaxesOutputs()) == 0 {
		return &domain.PreconditionError{
			Check:  domain.PreconditionMissingTaxOutput,
			Record: inv.Number,
		}
	}

	company := &inv.Company
	if !company.HasCertificate() {
		return &domain.PreconditionError{
			Check:  domain.PreconditionMissingCertificate,
			Record: company.Party.Name,
		}
	}
	if !company.Party.HasFacturaeFields() {
		return &domain.PreconditionError{
			Check:  domain.PreconditionCompanyFacturaeFields,
			Record: company.Party.Name,
		}
	}
	if !company.Party.TaxIDValid() {
		return &domain.PreconditionError{
			Check:  domain.PreconditionCompanyVATIdentifier,
			Record: company.Party.Name,
		}
	}
	if !company.Party.DefaultAddress().Complete() {
		return &domain.PreconditionError{
			Check:  domain.PreconditionCompanyAddressFields,
			Record: company.Party.Name,
		}
	}

	party := &inv.Party
	if !party.HasFacturaeFields() {
		return &domain.PreconditionError{
			Check:  domain.PreconditionPartyFacturaeFields,
			Record: party.Name,
		}
	}
	if !party.TaxIDValid() {
		return &domain.PreconditionError{
			Check:  domain.PreconditionPartyVATIdentifier,
			Record: party.Name,
		}
	}
	if party.PersonType == partydomain.PersonTypeIndividual && len(party.NameParts()) < 2 {
		return &domain.PreconditionError{
			Check:  domain.PreconditionPartyNameSurname,
			Record: party.Name,
		}
	}
	if !inv.InvoiceAddress.Complete() {
		return &domain.PreconditionError{
			Check:  domain.PreconditionInvoiceAddressFields,
			Record: inv.Number,
		}
	}

	for _, tl := range inv.TaxLines {
		if tl.LineID != nil {
			continue
		}
		if tl.Tax.Type != invoicedomain.TaxTypePercentage {
			return &domain.PreconditionError{
				Check:  domain.PreconditionUnsupportedTaxType,
				Record: tl.Tax.Name,
			}
		}
	}

	for _, detail := range inv.SortedPaymentDetails() {
		if detail.PaymentType == nil {
			return &domain.PreconditionError{
				Check:  domain.PreconditionMissingPaymentType,
				Record: inv.Number,
			}
		}
		if detail.PaymentType.FacturaeType == nil {
			return &domain.PreconditionError{
				Check:  domain.PreconditionMissingPaymentTypeCode,
				Record: detail.PaymentType.Name,
			}
		}
		if !detail.PaymentType.RequiresBankAccount() {
			continue
		}
		if detail.BankAccount == nil {
			return &domain.PreconditionError{
				Check:  domain.PreconditionMissingBankAccount,
				Record: inv.Number,
			}
		}
		if !detail.BankAccount.HasIBAN() {
			return &domain.PreconditionError{
				Check:  domain.PreconditionMissingIBAN,
				Record: detail.BankAccount.Name,
			}
		}
	}
	return nil
}

// resolveExchangeRate returns nil when the invoice is already in the
// reference currency. Otherwise exactly one of the reference currency and
// the invoice currency must carry a unit rate, and the most recent rate of
// the other on or before the invoice date applies.
func (a *Assembler) resolveExchangeRate(ctx context.Context, inv *invoicedomain.Invoice) (*ExchangeRateDetails, error) {
	if inv.CurrencyCode == currencydomain.ReferenceCurrency {
		return nil, nil
	}

	euro, err := a.currencies.Currency(ctx, currencydomain.ReferenceCurrency)
	if err != nil {
		return nil, err
	}
	invoiceCurrency, err := a.currencies.Currency(ctx, inv.CurrencyCode)
	if err != nil {
		return nil, err
	}
	if !euro.IsBase() && !invoiceCurrency.IsBase() {
		return nil, &domain.PreconditionError{
			Check:  domain.PreconditionNoBaseCurrency,
			Record: inv.Number,
		}
	}

	if euro.IsBase() {
		rate, err := a.currencies.LatestRate(ctx, inv.CurrencyCode, inv.InvoiceDate)
		if err != nil {
			return nil, err
		}
		if rate == nil {
			return nil, &domain.MissingRateError{
				Currency: inv.CurrencyCode,
				Date:     inv.InvoiceDate,
			}
		}
		return &ExchangeRateDetails{
			ExchangeRate:     amount6(rate.Value),
			ExchangeRateDate: isoDate(rate.Date),
		}, nil
	}

	rate, err := a.currencies.LatestRate(ctx, currencydomain.ReferenceCurrency, inv.InvoiceDate)
	if err != nil {
		return nil, err
	}
	if rate == nil {
		return nil, &domain.MissingRateError{
			Currency: currencydomain.ReferenceCurrency,
			Date:     inv.InvoiceDate,
		}
	}
	return &ExchangeRateDetails{
		ExchangeRate:     amount6(decimal.NewFromInt(1).Div(rate.Value)),
		ExchangeRateDate: isoDate(rate.Date),
	}, nil
}

func (a *Assembler) buildDocument(inv *invoicedomain.Invoice, exchange *ExchangeRateDetails) *Document {
	return &Document{
		XMLNSFe: Namespace,
		XMLNSDs: dsNamespace,
		FileHeader: FileHeader{
			SchemaVersion:     schemaVersion,
			Modality:          modality,
			InvoiceIssuerType: invoiceIssuerType,
			Batch: Batch{
				BatchIdentifier:        inv.Company.Party.TaxID + inv.Number,
				InvoicesCount:          1,
				TotalInvoicesAmount:    Amount{TotalAmount: amount2(inv.TotalAmount)},
				TotalOutstandingAmount: Amount{TotalAmount: amount2(inv.TotalAmount)},
				TotalExecutableAmount:  Amount{TotalAmount: amount2(inv.TotalAmount)},
				InvoiceCurrencyCode:    inv.CurrencyCode,
			},
		},
		Parties: Parties{
			SellerParty: buildParty(&inv.Company.Party, inv.Company.Party.DefaultAddress()),
			BuyerParty:  buildParty(&inv.Party, inv.InvoiceAddress),
		},
		Invoices: Invoices{
			Invoice: []Invoice{a.buildInvoice(inv, exchange)},
		},
	}
}

func buildParty(p *partydomain.Party, addr *partydomain.Address) Party {
	out := Party{
		TaxIdentification: TaxIdentification{
			PersonTypeCode:          string(p.PersonType),
			ResidenceTypeCode:       string(p.ResidenceType),
			TaxIdentificationNumber: p.TaxID,
		},
	}
	spanish, overseas := buildAddress(p, addr)
	if p.PersonType == partydomain.PersonTypeIndividual {
		parts := p.NameParts()
		individual := &Individual{Name: parts[0]}
		if len(parts) > 1 {
			individual.FirstSurname = parts[1]
		}
		if len(parts) > 2 {
			individual.SecondSurname = parts[2]
		}
		individual.AddressInSpain = spanish
		individual.OverseasAddress = overseas
		out.Individual = individual
		return out
	}
	out.LegalEntity = &LegalEntity{
		CorporateName:   p.Name,
		AddressInSpain:  spanish,
		OverseasAddress: overseas,
	}
	return out
}

func buildAddress(p *partydomain.Party, addr *partydomain.Address) (*AddressInSpain, *OverseasAddress) {
	if addr == nil {
		return nil, nil
	}
	if p.ResidenceType == partydomain.ResidenceTypeSpain {
		return &AddressInSpain{
			Address:     addr.Street,
			PostCode:    addr.Zip,
			Town:        addr.City,
			Province:    addr.Subdivision,
			CountryCode: addr.CountryCode,
		}, nil
	}
	return nil, &OverseasAddress{
		Address:         addr.Street,
		PostCodeAndTown: strings.TrimSpace(addr.Zip + " " + addr.City),
		Province:        addr.Subdivision,
		CountryCode:     addr.CountryCode,
	}
}

func (a *Assembler) buildInvoice(inv *invoicedomain.Invoice, exchange *ExchangeRateDetails) Invoice {
	header := InvoiceHeader{
		InvoiceNumber:       inv.Number,
		InvoiceDocumentType: documentTypeComplete,
		InvoiceClass:        invoiceClassOriginal,
	}
	if credited := inv.CreditedInvoice(); credited != nil && inv.RectificativeReasonCode != nil {
		header.InvoiceClass = invoiceClassCorrective
		header.Corrective = &Corrective{
			InvoiceNumber:     credited.Number,
			ReasonCode:        *inv.RectificativeReasonCode,
			ReasonDescription: inv.RectificativeReasonSpanish(),
			TaxPeriod: TaxPeriod{
				StartDate: isoDate(inv.InvoiceDate),
				EndDate:   isoDate(inv.InvoiceDate),
			},
			CorrectionMethod:            correctionMethodFull,
			CorrectionMethodDescription: correctionMethodFullDescription,
		}
	}

	outputs := buildTaxes(inv.TaxesOutputs())
	withheld := buildTaxes(inv.TaxesWithheld())
	var withheldBlock *Taxes
	if len(withheld.Tax) > 0 {
		withheldBlock = &withheld
	}

	return Invoice{
		InvoiceHeader: header,
		InvoiceIssueData: InvoiceIssueData{
			IssueDate:           isoDate(inv.InvoiceDate),
			InvoiceCurrencyCode: inv.CurrencyCode,
			ExchangeRateDetails: exchange,
			TaxCurrencyCode:     currencydomain.ReferenceCurrency,
			LanguageName:        "es",
		},
		TaxesOutputs:  outputs,
		TaxesWithheld: withheldBlock,
		InvoiceTotals: InvoiceTotals{
			TotalGrossAmount:            amount2(inv.UntaxedAmount),
			TotalGrossAmountBeforeTaxes: amount2(inv.UntaxedAmount),
			TotalTaxOutputs:             amount2(sumAmounts(inv.TaxesOutputs())),
			TotalTaxesWithheld:          amount2(sumAmounts(inv.TaxesWithheld()).Abs()),
			InvoiceTotal:                amount2(inv.TotalAmount),
			TotalOutstandingAmount:      amount2(inv.TotalAmount),
			TotalExecutableAmount:       amount2(inv.TotalAmount),
		},
		Items:          buildItems(inv),
		PaymentDetails: buildPaymentDetails(inv),
	}
}

func buildTaxes(lines []invoicedomain.TaxLine) Taxes {
	taxes := Taxes{}
	for _, tl := range lines {
		taxes.Tax = append(taxes.Tax, Tax{
			TaxTypeCode: taxTypeVAT,
			TaxRate:     amount2(tl.Tax.Rate.Mul(decimal.NewFromInt(100)).Abs()),
			TaxableBase: Amount{TotalAmount: amount2(tl.Base)},
			TaxAmount:   Amount{TotalAmount: amount2(tl.Amount.Abs())},
		})
	}
	return taxes
}

func buildItems(inv *invoicedomain.Invoice) Items {
	items := Items{}
	for i := range inv.Lines {
		line := &inv.Lines[i]
		withheld := buildTaxes(line.TaxesWithheld())
		var withheldBlock *Taxes
		if len(withheld.Tax) > 0 {
			withheldBlock = &withheld
		}
		items.InvoiceLine = append(items.InvoiceLine, Line{
			ItemDescription:               line.Description,
			Quantity:                      amount6(line.Quantity),
			UnitOfMeasure:                 referencedomain.UnitOfMeasureCode(line.Unit),
			UnitPriceWithoutTax:           amount6(line.UnitPrice),
			TotalCost:                     amount6(line.Amount),
			GrossAmount:                   amount6(line.Amount),
			TaxesWithheld:                 withheldBlock,
			TaxesOutputs:                  buildTaxes(line.TaxesOutputs()),
			AdditionalLineItemInformation: renderItemInformation(line.AdditionalItemInformation()),
		})
	}
	return items
}

// renderItemInformation flattens the report metadata deterministically,
// sorted by key.
func renderItemInformation(info map[string]string) string {
	if len(info) == 0 {
		return ""
	}
	keys := make([]string, 0, len(info))
	for k := range info {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+info[k])
	}
	return strings.Join(parts, "\n")
}

func buildPaymentDetails(inv *invoicedomain.Invoice) *PaymentDetails {
	details := inv.SortedPaymentDetails()
	if len(details) == 0 {
		return nil
	}
	out := &PaymentDetails{}
	for _, detail := range details {
		installment := Installment{
			InstallmentDueDate: isoDate(detail.MaturityDate),
			InstallmentAmount:  amount2(detail.Amount),
			PaymentMeans:       *detail.PaymentType.FacturaeType,
		}
		if detail.BankAccount.HasIBAN() {
			account := &AccountNumber{IBAN: *detail.BankAccount.IBAN}
			switch *detail.PaymentType.FacturaeType {
			case referencedomain.PaymentMeanDirectDebit:
				installment.AccountToBeDebited = account
			case referencedomain.PaymentMeanCreditTransfer:
				installment.AccountToBeCredited = account
			}
		}
		out.Installment = append(out.Installment, installment)
	}
	return out
}

func sumAmounts(lines []invoicedomain.TaxLine) decimal.Decimal {
	total := decimal.Zero
	for _, tl := range lines {
		total = total.Add(tl.Amount)
	}
	return total
}
