// Package domain contains payment type models and their Factura-e checks.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	referencedomain "github.com/smallbiznis/facturae/internal/reference/domain"
)

// BankAccountOwner names which side of the invoice owns the bank account a
// payment type debits or credits.
type BankAccountOwner string

const (
	BankAccountOwnerParty   BankAccountOwner = "party"
	BankAccountOwnerCompany BankAccountOwner = "company"
)

// PaymentType carries the mapping from an internal payment mechanism to the
// standard's payment means code.
type PaymentType struct {
	ID   snowflake.ID `gorm:"primaryKey"`
	Name string       `gorm:"type:text;not null"`

	// FacturaeType is one of the 19 payment means codes, or nil when the
	// payment type is not usable on a Factura-e document.
	FacturaeType *string `gorm:"column:facturae_type;type:text"`

	// BankAccountOwner is nil when the bank-account capability is not
	// enabled for this installation; the compatibility check is skipped then.
	BankAccountOwner *BankAccountOwner `gorm:"column:bank_account_owner;type:text"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (PaymentType) TableName() string { return "payment_types" }

// CheckFacturaeType validates that the payment means code and the configured
// bank-account ownership are compatible: direct debit pulls from the
// counter-party's account, credit transfer pays into the company's.
func (p *PaymentType) CheckFacturaeType() error {
	if p.BankAccountOwner == nil {
		return nil
	}
	if p.FacturaeType == nil {
		return nil
	}
	switch *p.FacturaeType {
	case referencedomain.PaymentMeanDirectDebit:
		if *p.BankAccountOwner != BankAccountOwnerParty {
			return ErrIncompatibleBankOwner
		}
	case referencedomain.PaymentMeanCreditTransfer:
		if *p.BankAccountOwner != BankAccountOwnerCompany {
			return ErrIncompatibleBankOwner
		}
	}
	return nil
}

// RequiresBankAccount reports whether the mapped payment means needs an IBAN
// on the generated document.
func (p *PaymentType) RequiresBankAccount() bool {
	if p.FacturaeType == nil {
		return false
	}
	mean := referencedomain.PaymentMeanByCode(*p.FacturaeType)
	return mean != nil && mean.RequiresBankAccount
}

type UpdateRequest struct {
	Name             *string           `json:"name"`
	FacturaeType     *string           `json:"facturae_type"`
	BankAccountOwner *BankAccountOwner `json:"bank_account_owner"`
}

type Service interface {
	GetByID(ctx context.Context, id string) (PaymentType, error)
	Update(ctx context.Context, id string, req UpdateRequest) (PaymentType, error)
}

var (
	ErrPaymentTypeNotFound   = errors.New("payment_type_not_found")
	ErrInvalidPaymentTypeID  = errors.New("invalid_payment_type_id")
	ErrUnknownFacturaeType   = errors.New("unknown_facturae_type")
	ErrIncompatibleBankOwner = errors.New("incompatible_facturae_type_bank_owner")
)
