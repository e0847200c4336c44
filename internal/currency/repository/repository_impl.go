package repository

import (
	"context"
	"strings"
	"time"

	currencydomain "github.com/smallbiznis/facturae/internal/currency/domain"
	"github.com/smallbiznis/facturae/pkg/db/option"
	"github.com/smallbiznis/facturae/pkg/repository"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB

	currencies repository.Repository[currencydomain.Currency]
	rates      repository.Repository[currencydomain.Rate]
}

func NewRepository(db *gorm.DB) currencydomain.Repository {
	return &Repository{
		db: db,

		currencies: repository.ProvideStore[currencydomain.Currency](db),
		rates:      repository.ProvideStore[currencydomain.Rate](db),
	}
}

func (r *Repository) Currency(ctx context.Context, code string) (*currencydomain.Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	item, err := r.currencies.FindOne(ctx, &currencydomain.Currency{Code: code})
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, currencydomain.ErrCurrencyNotFound
	}
	return item, nil
}

func (r *Repository) LatestRate(ctx context.Context, code string, onOrBefore time.Time) (*currencydomain.Rate, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	items, err := r.rates.Find(ctx, &currencydomain.Rate{CurrencyCode: code},
		option.ApplyOperator(option.Condition{Field: "date", Operator: option.LTE, Value: onOrBefore}),
		option.WithOrder("date DESC"),
		option.WithLimit(1),
	)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items[0], nil
}
