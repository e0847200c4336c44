package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestCheckFacturaeType(t *testing.T) {
	cases := []struct {
		name    string
		code    *string
		owner   *BankAccountOwner
		wantErr error
	}{
		{"no owner capability skips check", ptr("02"), nil, nil},
		{"no code skips check", nil, ptr(BankAccountOwnerCompany), nil},
		{"direct debit with party owner", ptr("02"), ptr(BankAccountOwnerParty), nil},
		{"direct debit with company owner", ptr("02"), ptr(BankAccountOwnerCompany), ErrIncompatibleBankOwner},
		{"credit transfer with company owner", ptr("04"), ptr(BankAccountOwnerCompany), nil},
		{"credit transfer with party owner", ptr("04"), ptr(BankAccountOwnerParty), ErrIncompatibleBankOwner},
		{"cash ignores owner", ptr("01"), ptr(BankAccountOwnerParty), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pt := PaymentType{FacturaeType: tc.code, BankAccountOwner: tc.owner}
			err := pt.CheckFacturaeType()
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRequiresBankAccount(t *testing.T) {
	assert.False(t, (&PaymentType{}).RequiresBankAccount())
	assert.False(t, (&PaymentType{FacturaeType: ptr("01")}).RequiresBankAccount())
	assert.True(t, (&PaymentType{FacturaeType: ptr("02")}).RequiresBankAccount())
	assert.True(t, (&PaymentType{FacturaeType: ptr("04")}).RequiresBankAccount())
	assert.False(t, (&PaymentType{FacturaeType: ptr("99")}).RequiresBankAccount())
}
