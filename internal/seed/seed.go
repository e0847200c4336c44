// Package seed bootstraps the reference rows a fresh install needs.
package seed

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	currencydomain "github.com/smallbiznis/facturae/internal/currency/domain"
)

// EnsureReferenceCurrency makes sure the euro exists as the base currency.
// Installations billing in another base currency can adjust the rates
// afterwards; documents always report tax amounts in euro.
func EnsureReferenceCurrency(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing currencydomain.Currency
		err := tx.First(&existing, "code = ?", currencydomain.ReferenceCurrency).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&currencydomain.Currency{
			Code: currencydomain.ReferenceCurrency,
			Name: "Euro",
			Rate: decimal.NewFromInt(1),
		}).Error
	})
}
