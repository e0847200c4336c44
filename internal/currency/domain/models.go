// Package domain contains currency and exchange-rate models.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// ReferenceCurrency is the currency the Factura-e document reports tax
// amounts in.
const ReferenceCurrency = "EUR"

// Currency is an ISO 4217 currency. Rate is the currently effective rate
// against the base currency; the base currency itself carries rate 1.
type Currency struct {
	Code      string          `gorm:"type:char(3);primaryKey"`
	Name      string          `gorm:"type:text;not null"`
	Rate      decimal.Decimal `gorm:"type:numeric(16,6);not null;default:1"`
	CreatedAt time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Currency) TableName() string { return "currencies" }

// IsBase reports whether this currency has a unit rate.
func (c *Currency) IsBase() bool {
	return c != nil && c.Rate.Equal(decimal.NewFromInt(1))
}

// Rate is a dated exchange rate for a currency against the base currency.
type Rate struct {
	ID           snowflake.ID    `gorm:"primaryKey"`
	CurrencyCode string          `gorm:"type:char(3);not null;index:ix_rates_currency_date"`
	Date         time.Time       `gorm:"type:date;not null;index:ix_rates_currency_date"`
	Value        decimal.Decimal `gorm:"column:rate;type:numeric(16,6);not null"`
}

func (Rate) TableName() string { return "currency_rates" }

// Repository resolves currencies and historical rates.
type Repository interface {
	Currency(ctx context.Context, code string) (*Currency, error)
	// LatestRate returns the most recent rate on or before the given date,
	// or nil when no such rate exists.
	LatestRate(ctx context.Context, code string, onOrBefore time.Time) (*Rate, error)
}

var ErrCurrencyNotFound = errors.New("currency_not_found")
