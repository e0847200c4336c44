package party

import (
	"github.com/smallbiznis/facturae/internal/party/service"
	"go.uber.org/fx"
)

var Module = fx.Module("party.service",
	fx.Provide(service.NewService),
)
