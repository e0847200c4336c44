package paymenttype

import (
	"github.com/smallbiznis/facturae/internal/paymenttype/service"
	"go.uber.org/fx"
)

var Module = fx.Module("paymenttype.service",
	fx.Provide(service.NewService),
)
