package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/facturae/internal/config"
	"github.com/smallbiznis/facturae/internal/currency"
	"github.com/smallbiznis/facturae/internal/facturae"
	facturaedomain "github.com/smallbiznis/facturae/internal/facturae/domain"
	"github.com/smallbiznis/facturae/internal/invoice"
	invoicedomain "github.com/smallbiznis/facturae/internal/invoice/domain"
	"github.com/smallbiznis/facturae/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/facturae/internal/observability/metrics"
	"github.com/smallbiznis/facturae/internal/party"
	partydomain "github.com/smallbiznis/facturae/internal/party/domain"
	"github.com/smallbiznis/facturae/internal/paymenttype"
	paymenttypedomain "github.com/smallbiznis/facturae/internal/paymenttype/domain"
	"github.com/smallbiznis/facturae/internal/reference"
	referencedomain "github.com/smallbiznis/facturae/internal/reference/domain"
	"go.uber.org/fx"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	reference.Module,
	currency.Module,
	party.Module,
	paymenttype.Module,
	invoice.Module,
	facturae.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	invoiceSvc     invoicedomain.Service
	facturaeSvc    facturaedomain.Service
	partySvc       partydomain.Service
	paymentTypeSvc paymenttypedomain.Service
	refrepo        referencedomain.Repository
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	InvoiceSvc     invoicedomain.Service
	FacturaeSvc    facturaedomain.Service
	PartySvc       partydomain.Service
	PaymentTypeSvc paymenttypedomain.Service
	Refrepo        referencedomain.Repository
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		invoiceSvc:     p.InvoiceSvc,
		facturaeSvc:    p.FacturaeSvc,
		partySvc:       p.PartySvc,
		paymentTypeSvc: p.PaymentTypeSvc,
		refrepo:        p.Refrepo,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	// -------- Invoices --------
	api.GET("/invoices", s.ListInvoices)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.POST("/invoices/facturae", s.GenerateFacturae)
	api.GET("/invoices/:id/facturae", s.DownloadFacturae)

	// -------- Parties --------
	api.GET("/parties/:id", s.GetPartyByID)
	api.PATCH("/parties/:id/facturae", s.UpdatePartyFacturaeFields)

	// -------- Payment Types --------
	api.GET("/payment_types/:id", s.GetPaymentTypeByID)
	api.PATCH("/payment_types/:id", s.UpdatePaymentType)

	// -------- Reference Data --------
	api.GET("/reference/rectificative_reasons", s.ListRectificativeReasons)
	api.GET("/reference/payment_means", s.ListPaymentMeans)
}
