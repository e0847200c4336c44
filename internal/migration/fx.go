package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/smallbiznis/facturae/internal/config"
	companydomain "github.com/smallbiznis/facturae/internal/company/domain"
	currencydomain "github.com/smallbiznis/facturae/internal/currency/domain"
	invoicedomain "github.com/smallbiznis/facturae/internal/invoice/domain"
	partydomain "github.com/smallbiznis/facturae/internal/party/domain"
	paymenttypedomain "github.com/smallbiznis/facturae/internal/paymenttype/domain"
	"github.com/smallbiznis/facturae/internal/seed"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite and mysql installs migrate from the models directly.
			if err := conn.AutoMigrate(
				&partydomain.Party{},
				&partydomain.Address{},
				&partydomain.BankAccount{},
				&companydomain.Company{},
				&paymenttypedomain.PaymentType{},
				&currencydomain.Currency{},
				&currencydomain.Rate{},
				&invoicedomain.Tax{},
				&invoicedomain.Invoice{},
				&invoicedomain.InvoiceLine{},
				&invoicedomain.TaxLine{},
				&invoicedomain.PaymentDetail{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureReferenceCurrency(conn)
	}),
)
