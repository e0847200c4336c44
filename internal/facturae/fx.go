package facturae

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/smallbiznis/facturae/internal/clock"
	"github.com/smallbiznis/facturae/internal/config"
	currencydomain "github.com/smallbiznis/facturae/internal/currency/domain"
	"github.com/smallbiznis/facturae/internal/facturae/assemble"
	"github.com/smallbiznis/facturae/internal/facturae/domain"
	"github.com/smallbiznis/facturae/internal/facturae/schema"
	"github.com/smallbiznis/facturae/internal/facturae/service"
	"github.com/smallbiznis/facturae/internal/facturae/sign"
	"github.com/smallbiznis/facturae/internal/observability/metrics"
)

var Module = fx.Module("facturae.service",
	fx.Provide(
		clock.System,
		metrics.NewPipelineMetrics,
		newAssembler,
		newValidator,
		newSigner,
		service.NewService,
	),
)

func newAssembler(currencies currencydomain.Repository, clk clock.Clock, log *zap.Logger) *assemble.Assembler {
	return assemble.New(currencies, clk, log)
}

func newValidator(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) (domain.Validator, error) {
	validator, err := schema.New(cfg.SchemaPath, log)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			validator.Close()
			return nil
		},
	})
	return validator, nil
}

func newSigner(cfg config.Config, log *zap.Logger) domain.Signer {
	return sign.New(cfg.Signer, log)
}
