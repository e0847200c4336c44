package currency

import (
	"github.com/smallbiznis/facturae/internal/currency/repository"
	"go.uber.org/fx"
)

var Module = fx.Module("currency.repository",
	fx.Provide(repository.NewRepository),
)
