// Package domain holds the static Facturae 3.2.1 reference tables.
// Codes come from the official XSD:
// http://www.facturae.gob.es/formato/Versiones/Facturaev3_2_1.xml
package domain

// RectificativeReason maps a corrective-invoice reason code to its
// English and Spanish descriptions.
type RectificativeReason struct {
	Code        string `json:"code"`
	Description string `json:"description"`
	Spanish     string `json:"spanish_description"`
}

// PaymentMean is one of the 19 payment mechanisms accepted by the standard.
type PaymentMean struct {
	Code  string `json:"code"`
	Label string `json:"label"`
	// RequiresBankAccount marks direct debit and credit transfer, which must
	// carry an IBAN in the generated document.
	RequiresBankAccount bool `json:"requires_bank_account"`
}

var RectificativeReasons = []RectificativeReason{
	{"01", "Invoice number", "Número de la factura"},
	{"02", "Invoice serial number", "Serie de la factura"},
	{"03", "Issue date", "Fecha expedición"},
	{"04", "Name and surnames/Corporate name-Issuer (Sender)", "Nombre y apellidos/Razón Social-Emisor"},
	{"05", "Name and surnames/Corporate name-Receiver", "Nombre y apellidos/Razón Social-Receptor"},
	{"06", "Issuer's Tax Identification Number", "Identificación fiscal Emisor/obligado"},
	{"07", "Receiver's Tax Identification Number", "Identificación fiscal Receptor"},
	{"08", "Issuer's address", "Domicilio Emisor/Obligado"},
	{"09", "Receiver's address", "Domicilio Receptor"},
	{"10", "Item line", "Detalle Operación"},
	{"11", "Applicable Tax Rate", "Porcentaje impositivo a aplicar"},
	{"12", "Applicable Tax Amount", "Cuota tributaria a aplicar"},
	{"13", "Applicable Date/Period", "Fecha/Periodo a aplicar"},
	{"14", "Invoice Class", "Clase de factura"},
	{"15", "Legal literals", "Literales legales"},
	{"16", "Taxable Base", "Base imponible"},
	{"80", "Calculation of tax outputs", "Cálculo de cuotas repercutidas"},
	{"81", "Calculation of tax inputs", "Cálculo de cuotas retenidas"},
	{"82", "Taxable Base modified due to return of packages and packaging materials", "Base imponible modificada por devolución de envases / embalajes"},
	{"83", "Taxable Base modified due to discounts and rebates", "Base imponible modificada por descuentos y bonificaciones"},
	{"84", "Taxable Base modified due to firm court ruling or administrative decision", "Base imponible modificada por resolución firme, judicial o administrativa"},
	{"85", "Taxable Base modified due to unpaid outputs where there is a judgement opening insolvency proceedings", "Base imponible modificada cuotas repercutidas no satisfechas. Auto de declaración de concurso"},
}

// RectificativeReasonByCode returns the reason for the given code, or nil.
func RectificativeReasonByCode(code string) *RectificativeReason {
	for i := range RectificativeReasons {
		if RectificativeReasons[i].Code == code {
			return &RectificativeReasons[i]
		}
	}
	return nil
}

// UnitOfMeasureDefault is emitted when a unit symbol has no UN/CEFACT
// mapping ("05", other).
const UnitOfMeasureDefault = "05"

// UnitOfMeasureCodes maps unit symbols to the standard's UoM codes.
var UnitOfMeasureCodes = map[string]string{
	"u":  "01",
	"h":  "02",
	"kg": "03",
	"g":  "21",
	"s":  "34",
	"m":  "25",
	"km": "22",
	"cm": "16",
	"mm": "26",
	"m³": "33",
	"l":  "04",
}

// UnitOfMeasureCode resolves a unit symbol, falling back to the "other" code.
func UnitOfMeasureCode(symbol string) string {
	if code, ok := UnitOfMeasureCodes[symbol]; ok {
		return code
	}
	return UnitOfMeasureDefault
}

const (
	PaymentMeanDirectDebit    = "02"
	PaymentMeanCreditTransfer = "04"
)

var PaymentMeans = []PaymentMean{
	{"01", "In cash", false},
	{"02", "Direct debit", true},
	{"03", "Receipt", false},
	{"04", "Credit transfer", true},
	{"05", "Accepted bill of exchange", false},
	{"06", "Documentary credit", false},
	{"07", "Contract award", false},
	{"08", "Bill of exchange", false},
	{"09", "Transferable promissory note", false},
	{"10", "Non transferable promissory note", false},
	{"11", "Cheque", false},
	{"12", "Open account reimbursement", false},
	{"13", "Special payment", false},
	{"14", "Set-off by reciprocal credits", false},
	{"15", "Payment by postgiro", false},
	{"16", "Certified cheque", false},
	{"17", "Banker's draft", false},
	{"18", "Cash on delivery", false},
	{"19", "Payment by card", false},
}

// PaymentMeanByCode returns the payment mean for the given code, or nil.
func PaymentMeanByCode(code string) *PaymentMean {
	for i := range PaymentMeans {
		if PaymentMeans[i].Code == code {
			return &PaymentMeans[i]
		}
	}
	return nil
}
