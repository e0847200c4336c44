package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameParts(t *testing.T) {
	cases := []struct {
		name  string
		parts []string
	}{
		{"Cher", []string{"Cher"}},
		{"Juan García", []string{"Juan", "García"}},
		{"Juan García López", []string{"Juan", "García", "López"}},
		{"Juan García López Segundo", []string{"Juan", "García", "López Segundo"}},
		{"  Juan García  ", []string{"Juan", "García"}},
	}
	for _, tc := range cases {
		p := Party{Name: tc.name}
		assert.Equal(t, tc.parts, p.NameParts(), "name %q", tc.name)
	}
}

func TestTaxIDValid(t *testing.T) {
	assert.False(t, (&Party{TaxID: ""}).TaxIDValid())
	assert.False(t, (&Party{TaxID: "12"}).TaxIDValid())
	assert.True(t, (&Party{TaxID: "123"}).TaxIDValid())
	assert.True(t, (&Party{TaxID: "ESA1234567"}).TaxIDValid())
	assert.False(t, (&Party{TaxID: "1234567890123456789012345678901"}).TaxIDValid())
}

func TestHasFacturaeFields(t *testing.T) {
	p := Party{}
	assert.False(t, p.HasFacturaeFields())
	p.PersonType = PersonTypeLegalEntity
	assert.False(t, p.HasFacturaeFields())
	p.ResidenceType = ResidenceTypeSpain
	assert.True(t, p.HasFacturaeFields())
}

func TestAddressComplete(t *testing.T) {
	var nilAddr *Address
	assert.False(t, nilAddr.Complete())

	addr := Address{
		Street:      "Calle Mayor 1",
		Zip:         "28001",
		City:        "Madrid",
		Subdivision: "Madrid",
		CountryCode: "ESP",
	}
	assert.True(t, addr.Complete())

	incomplete := addr
	incomplete.Subdivision = ""
	assert.False(t, incomplete.Complete())
}

func TestDefaultAddress(t *testing.T) {
	p := Party{}
	assert.Nil(t, p.DefaultAddress())
	p.Addresses = []Address{{Street: "First"}, {Street: "Second"}}
	assert.Equal(t, "First", p.DefaultAddress().Street)
}

func TestBankAccountHasIBAN(t *testing.T) {
	var none *BankAccount
	assert.False(t, none.HasIBAN())
	assert.False(t, (&BankAccount{}).HasIBAN())

	empty := "  "
	assert.False(t, (&BankAccount{IBAN: &empty}).HasIBAN())

	iban := "ES9121000418450200051332"
	assert.True(t, (&BankAccount{IBAN: &iban}).HasIBAN())
}
