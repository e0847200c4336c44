// Package domain contains persistence models for invoicing counter-parties.
package domain

import (
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// PersonType classifies a party for the Factura-e document.
type PersonType string

const (
	PersonTypeLegalEntity PersonType = "J"
	PersonTypeIndividual  PersonType = "F"
)

func (t PersonType) Valid() bool {
	return t == PersonTypeLegalEntity || t == PersonTypeIndividual
}

// ResidenceType classifies a party's tax residence.
type ResidenceType string

const (
	ResidenceTypeSpain     ResidenceType = "R"
	ResidenceTypeEU        ResidenceType = "U"
	ResidenceTypeForeigner ResidenceType = "E"
)

func (t ResidenceType) Valid() bool {
	switch t {
	case ResidenceTypeSpain, ResidenceTypeEU, ResidenceTypeForeigner:
		return true
	}
	return false
}

// Party is a seller or buyer on an invoice.
type Party struct {
	ID   snowflake.ID `gorm:"primaryKey"`
	Name string       `gorm:"type:text;not null"`
	// TaxID is the VAT identifier; the standard requires 3 to 30 characters.
	TaxID         string        `gorm:"column:tax_id;type:text"`
	PersonType    PersonType    `gorm:"column:person_type;type:text"`
	ResidenceType ResidenceType `gorm:"column:residence_type;type:text"`

	Addresses    []Address     `gorm:"foreignKey:PartyID"`
	BankAccounts []BankAccount `gorm:"foreignKey:PartyID"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Party) TableName() string { return "parties" }

// DefaultAddress returns the party's first address, or nil.
func (p *Party) DefaultAddress() *Address {
	if len(p.Addresses) == 0 {
		return nil
	}
	return &p.Addresses[0]
}

// NameParts splits an individual's name into given name, first surname and
// second surname. The document requires at least name and first surname.
func (p *Party) NameParts() []string {
	return strings.SplitN(strings.TrimSpace(p.Name), " ", 3)
}

// HasFacturaeFields reports whether both document classification fields are set.
func (p *Party) HasFacturaeFields() bool {
	return p.PersonType.Valid() && p.ResidenceType.Valid()
}

// TaxIDValid reports whether the VAT identifier length is acceptable.
func (p *Party) TaxIDValid() bool {
	return len(p.TaxID) >= 3 && len(p.TaxID) <= 30
}

// Address is a postal address; CountryCode is ISO 3166-1 alpha-3, as the
// document format requires.
type Address struct {
	ID          snowflake.ID `gorm:"primaryKey"`
	PartyID     snowflake.ID `gorm:"not null;index"`
	Street      string       `gorm:"type:text"`
	Zip         string       `gorm:"type:text"`
	City        string       `gorm:"type:text"`
	Subdivision string       `gorm:"type:text"`
	CountryCode string       `gorm:"column:country_code;type:char(3)"`
}

func (Address) TableName() string { return "party_addresses" }

// Complete reports whether every field the document needs is present.
func (a *Address) Complete() bool {
	if a == nil {
		return false
	}
	return a.Street != "" && a.Zip != "" && a.City != "" && a.Subdivision != "" && a.CountryCode != ""
}

// BankAccount holds a party's account; only accounts carrying an IBAN can be
// referenced from a Factura-e payment installment.
type BankAccount struct {
	ID      snowflake.ID `gorm:"primaryKey"`
	PartyID snowflake.ID `gorm:"not null;index"`
	Name    string       `gorm:"type:text"`
	IBAN    *string      `gorm:"column:iban;type:text"`
}

func (BankAccount) TableName() string { return "party_bank_accounts" }

// HasIBAN reports whether the account carries a non-empty IBAN.
func (b *BankAccount) HasIBAN() bool {
	return b != nil && b.IBAN != nil && strings.TrimSpace(*b.IBAN) != ""
}
