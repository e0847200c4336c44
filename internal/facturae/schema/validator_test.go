package schema

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smallbiznis/facturae/internal/facturae/domain"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := New("", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(v.Close)
	return v
}

const validDocument = `<?xml version="1.0" encoding="UTF-8"?>
<fe:Facturae xmlns:fe="http://www.facturae.es/Facturae/2014/v3.2.1/Facturae" xmlns:ds="http://www.w3.org/2000/09/xmldsig#">
  <FileHeader>
    <SchemaVersion>3.2.1</SchemaVersion>
    <Modality>I</Modality>
    <InvoiceIssuerType>EM</InvoiceIssuerType>
    <Batch>
      <BatchIdentifier>ESA1234567A-001</BatchIdentifier>
      <InvoicesCount>1</InvoicesCount>
      <TotalInvoicesAmount>
        <TotalAmount>121.00</TotalAmount>
      </TotalInvoicesAmount>
      <TotalOutstandingAmount>
        <TotalAmount>121.00</TotalAmount>
      </TotalOutstandingAmount>
      <TotalExecutableAmount>
        <TotalAmount>121.00</TotalAmount>
      </TotalExecutableAmount>
      <InvoiceCurrencyCode>EUR</InvoiceCurrencyCode>
    </Batch>
  </FileHeader>
  <Parties>
    <SellerParty>
      <TaxIdentification>
        <PersonTypeCode>J</PersonTypeCode>
        <ResidenceTypeCode>R</ResidenceTypeCode>
        <TaxIdentificationNumber>ESA1234567</TaxIdentificationNumber>
      </TaxIdentification>
      <LegalEntity>
        <CorporateName>Acme SL</CorporateName>
        <AddressInSpain>
          <Address>Calle Mayor 1</Address>
          <PostCode>28001</PostCode>
          <Town>Madrid</Town>
          <Province>Madrid</Province>
          <CountryCode>ESP</CountryCode>
        </AddressInSpain>
      </LegalEntity>
    </SellerParty>
    <BuyerParty>
      <TaxIdentification>
        <PersonTypeCode>F</PersonTypeCode>
        <ResidenceTypeCode>R</ResidenceTypeCode>
        <TaxIdentificationNumber>12345678Z</TaxIdentificationNumber>
      </TaxIdentification>
      <Individual>
        <Name>Juan</Name>
        <FirstSurname>García</FirstSurname>
        <SecondSurname>López</SecondSurname>
        <AddressInSpain>
          <Address>Gran Vía 2</Address>
          <PostCode>28013</PostCode>
          <Town>Madrid</Town>
          <Province>Madrid</Province>
          <CountryCode>ESP</CountryCode>
        </AddressInSpain>
      </Individual>
    </BuyerParty>
  </Parties>
  <Invoices>
    <Invoice>
      <InvoiceHeader>
        <InvoiceNumber>A-001</InvoiceNumber>
        <InvoiceDocumentType>FC</InvoiceDocumentType>
        <InvoiceClass>OO</InvoiceClass>
      </InvoiceHeader>
      <InvoiceIssueData>
        <IssueDate>2026-08-01</IssueDate>
        <InvoiceCurrencyCode>EUR</InvoiceCurrencyCode>
        <TaxCurrencyCode>EUR</TaxCurrencyCode>
        <LanguageName>es</LanguageName>
      </InvoiceIssueData>
      <TaxesOutputs>
        <Tax>
          <TaxTypeCode>01</TaxTypeCode>
          <TaxRate>21.00</TaxRate>
          <TaxableBase>
            <TotalAmount>100.00</TotalAmount>
          </TaxableBase>
          <TaxAmount>
            <TotalAmount>21.00</TotalAmount>
          </TaxAmount>
        </Tax>
      </TaxesOutputs>
      <InvoiceTotals>
        <TotalGrossAmount>100.00</TotalGrossAmount>
        <TotalGrossAmountBeforeTaxes>100.00</TotalGrossAmountBeforeTaxes>
        <TotalTaxOutputs>21.00</TotalTaxOutputs>
        <TotalTaxesWithheld>0.00</TotalTaxesWithheld>
        <InvoiceTotal>121.00</InvoiceTotal>
        <TotalOutstandingAmount>121.00</TotalOutstandingAmount>
        <TotalExecutableAmount>121.00</TotalExecutableAmount>
      </InvoiceTotals>
      <Items>
        <InvoiceLine>
          <ItemDescription>Consulting</ItemDescription>
          <Quantity>2.000000</Quantity>
          <UnitOfMeasure>02</UnitOfMeasure>
          <UnitPriceWithoutTax>50.000000</UnitPriceWithoutTax>
          <TotalCost>100.000000</TotalCost>
          <GrossAmount>100.000000</GrossAmount>
          <TaxesOutputs>
            <Tax>
              <TaxTypeCode>01</TaxTypeCode>
              <TaxRate>21.00</TaxRate>
              <TaxableBase>
                <TotalAmount>100.00</TotalAmount>
              </TaxableBase>
              <TaxAmount>
                <TotalAmount>21.00</TotalAmount>
              </TaxAmount>
            </Tax>
          </TaxesOutputs>
          <AdditionalLineItemInformation>05: IVA 21%</AdditionalLineItemInformation>
        </InvoiceLine>
      </Items>
      <PaymentDetails>
        <Installment>
          <InstallmentDueDate>2026-08-31</InstallmentDueDate>
          <InstallmentAmount>121.00</InstallmentAmount>
          <PaymentMeans>01</PaymentMeans>
        </Installment>
      </PaymentDetails>
    </Invoice>
  </Invoices>
</fe:Facturae>
`

func TestValidateAcceptsWellFormedDocument(t *testing.T) {
	v := newValidator(t)
	assert.NoError(t, v.Validate(context.Background(), []byte(validDocument)))
}

func TestValidateRejectsMissingElements(t *testing.T) {
	v := newValidator(t)
	broken := strings.Replace(validDocument,
		"<SchemaVersion>3.2.1</SchemaVersion>", "", 1)

	err := v.Validate(context.Background(), []byte(broken))
	require.Error(t, err)
	verr, ok := err.(*domain.SchemaValidationError)
	require.True(t, ok, "expected SchemaValidationError, got %T", err)
	assert.Equal(t, []byte(broken), verr.Document)
}

func TestValidateRejectsMalformedXML(t *testing.T) {
	v := newValidator(t)
	err := v.Validate(context.Background(), []byte("<fe:Facturae>"))
	var verr *domain.SchemaValidationError
	require.ErrorAs(t, err, &verr)
}

func TestNewWithMissingOverridePath(t *testing.T) {
	_, err := New("/does/not/exist.xsd", zap.NewNop())
	assert.Error(t, err)
}
