package service

import (
	"context"
	"errors"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/smallbiznis/facturae/internal/facturae/assemble"
	"github.com/smallbiznis/facturae/internal/facturae/domain"
	invoicedomain "github.com/smallbiznis/facturae/internal/invoice/domain"
	"github.com/smallbiznis/facturae/internal/observability/metrics"
)

type ServiceParam struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Invoices  invoicedomain.Service
	Assembler *assemble.Assembler
	Validator domain.Validator
	Signer    domain.Signer
	Metrics   *metrics.PipelineMetrics
}

// Service runs the assemble, validate, sign pipeline for batches of
// invoices and persists the results atomically.
type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	invoices  invoicedomain.Service
	assembler *assemble.Assembler
	validator domain.Validator
	signer    domain.Signer
	metrics   *metrics.PipelineMetrics
}

func NewService(p ServiceParam) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("facturae.service"),
		invoices:  p.Invoices,
		assembler: p.Assembler,
		validator: p.Validator,
		signer:    p.Signer,
		metrics:   p.Metrics,
	}
}

type signedDocument struct {
	invoice  *invoicedomain.Invoice
	document []byte
}

// Generate produces a signed document for every requested invoice that does
// not have one yet. Invoices that already carry a document, or that are not
// outbound and finalized, are skipped. One invoice failing any stage aborts
// the whole batch; nothing is persisted then.
func (s *Service) Generate(ctx context.Context, req domain.GenerateRequest) (domain.GenerateResult, error) {
	invoices, err := s.invoices.LoadForDocument(ctx, req.InvoiceIDs)
	if err != nil {
		return domain.GenerateResult{}, err
	}

	result := domain.GenerateResult{}
	var signed []signedDocument
	for i := range invoices {
		inv := &invoices[i]
		if inv.HasFacturae() {
			s.metrics.Skipped.Inc()
			result.Skipped = append(result.Skipped, inv.Number)
			continue
		}

		document, err := s.assembler.Assemble(ctx, inv)
		if err != nil {
			s.metrics.Failed.WithLabelValues("assemble").Inc()
			return domain.GenerateResult{}, err
		}
		if document == nil {
			s.metrics.Skipped.Inc()
			result.Skipped = append(result.Skipped, inv.Number)
			continue
		}

		if err := s.validator.Validate(ctx, document); err != nil {
			s.metrics.Failed.WithLabelValues("validate").Inc()
			return domain.GenerateResult{}, err
		}

		signedDoc, err := s.signer.Sign(ctx, document, inv.Company.FacturaeCertificate, req.CertificatePassword)
		if err != nil {
			s.metrics.Failed.WithLabelValues("sign").Inc()
			var serr *domain.SigningError
			if errors.As(err, &serr) && serr.Invoice == "" {
				serr.Invoice = inv.Number
			}
			return domain.GenerateResult{}, err
		}

		signed = append(signed, signedDocument{invoice: inv, document: signedDoc})
	}

	if len(signed) == 0 {
		return result, nil
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range signed {
			res := tx.Model(&invoicedomain.Invoice{}).
				Where("id = ? AND facturae IS NULL", item.invoice.ID).
				Update("facturae", item.document)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return domain.ErrAlreadySigned
			}
		}
		return nil
	})
	if err != nil {
		s.metrics.Failed.WithLabelValues("persist").Inc()
		return domain.GenerateResult{}, err
	}

	for _, item := range signed {
		s.metrics.Generated.Inc()
		s.log.Info("facturae document generated and signed",
			zap.String("invoice", item.invoice.Number),
			zap.Int("bytes", len(item.document)))
		result.Generated = append(result.Generated, item.invoice.Number)
	}
	return result, nil
}
