package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	currencydomain "github.com/smallbiznis/facturae/internal/currency/domain"
)

func setupRepo(t *testing.T) (currencydomain.Repository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&currencydomain.Currency{}, &currencydomain.Rate{}))
	return NewRepository(db), db
}

func TestCurrencyLookup(t *testing.T) {
	repo, db := setupRepo(t)
	require.NoError(t, db.Create(&currencydomain.Currency{
		Code: "EUR",
		Name: "Euro",
		Rate: decimal.NewFromInt(1),
	}).Error)

	c, err := repo.Currency(context.Background(), " eur ")
	require.NoError(t, err)
	assert.Equal(t, "EUR", c.Code)
	assert.True(t, c.IsBase())

	_, err = repo.Currency(context.Background(), "XXX")
	assert.ErrorIs(t, err, currencydomain.ErrCurrencyNotFound)
}

func TestLatestRatePicksMostRecentOnOrBefore(t *testing.T) {
	repo, db := setupRepo(t)
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	dates := []struct {
		date time.Time
		rate string
	}{
		{time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), "1.05"},
		{time.Date(2026, 7, 20, 0, 0, 0, 0, time.UTC), "1.08"},
		{time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC), "1.10"},
	}
	for _, d := range dates {
		require.NoError(t, db.Create(&currencydomain.Rate{
			ID:           node.Generate(),
			CurrencyCode: "USD",
			Date:         d.date,
			Value:        decimal.RequireFromString(d.rate),
		}).Error)
	}

	rate, err := repo.LatestRate(context.Background(), "USD", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, rate)
	assert.Equal(t, "1.08", rate.Value.String())

	rate, err = repo.LatestRate(context.Background(), "USD", time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, rate)
	assert.Equal(t, "1.1", rate.Value.String())

	rate, err = repo.LatestRate(context.Background(), "USD", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, rate)

	rate, err = repo.LatestRate(context.Background(), "GBP", time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, rate)
}
