package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	invoicedomain "github.com/smallbiznis/facturae/internal/invoice/domain"
	"github.com/smallbiznis/facturae/pkg/db/option"
	"github.com/smallbiznis/facturae/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

type Service struct {
	db  *gorm.DB
	log *zap.Logger

	invoicerepo repository.Repository[invoicedomain.Invoice]
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("invoice.service"),

		invoicerepo: repository.ProvideStore[invoicedomain.Invoice](p.DB),
	}
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListInvoiceRequest) (invoicedomain.ListInvoiceResponse, error) {
	filter := &invoicedomain.Invoice{}
	if req.Type != nil {
		filter.Type = *req.Type
	}
	if req.State != nil {
		filter.State = *req.State
	}

	items, err := s.invoicerepo.Find(ctx, filter,
		option.WithOrder("invoice_date DESC, number DESC"),
	)
	if err != nil {
		return invoicedomain.ListInvoiceResponse{}, err
	}

	invoices := make([]invoicedomain.Invoice, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		invoices = append(invoices, *item)
	}

	return invoicedomain.ListInvoiceResponse{Invoices: invoices}, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidInvoiceID
	}

	item, err := s.invoicerepo.FindOne(ctx, &invoicedomain.Invoice{ID: invoiceID})
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	if item == nil {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvoiceNotFound
	}

	return *item, nil
}

// documentPreloads is the association graph the assembler walks.
var documentPreloads = []string{
	"Company",
	"Company.Party",
	"Company.Party.Addresses",
	"Company.Party.BankAccounts",
	"Party",
	"Party.Addresses",
	"Party.BankAccounts",
	"InvoiceAddress",
	"Lines",
	"Lines.OriginInvoice",
	"Lines.TaxLines",
	"Lines.TaxLines.Tax",
	"TaxLines",
	"TaxLines.Tax",
	"PaymentDetails",
	"PaymentDetails.PaymentType",
	"PaymentDetails.BankAccount",
}

func (s *Service) LoadForDocument(ctx context.Context, ids []string) ([]invoicedomain.Invoice, error) {
	invoiceIDs := make([]snowflake.ID, 0, len(ids))
	for _, raw := range ids {
		id, err := snowflake.ParseString(strings.TrimSpace(raw))
		if err != nil {
			return nil, invoicedomain.ErrInvalidInvoiceID
		}
		invoiceIDs = append(invoiceIDs, id)
	}

	stmt := s.db.WithContext(ctx).Where("id IN ?", invoiceIDs)
	for _, preload := range documentPreloads {
		stmt = stmt.Preload(preload)
	}

	var loaded []invoicedomain.Invoice
	if err := stmt.Find(&loaded).Error; err != nil {
		return nil, err
	}

	byID := make(map[snowflake.ID]invoicedomain.Invoice, len(loaded))
	for _, inv := range loaded {
		byID[inv.ID] = inv
	}

	invoices := make([]invoicedomain.Invoice, 0, len(invoiceIDs))
	for _, id := range invoiceIDs {
		inv, ok := byID[id]
		if !ok {
			return nil, invoicedomain.ErrInvoiceNotFound
		}
		invoices = append(invoices, inv)
	}
	return invoices, nil
}
