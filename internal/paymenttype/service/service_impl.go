package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	paymenttypedomain "github.com/smallbiznis/facturae/internal/paymenttype/domain"
	referencedomain "github.com/smallbiznis/facturae/internal/reference/domain"
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

	typerepo repository.Repository[paymenttypedomain.PaymentType]
}

func NewService(p ServiceParam) paymenttypedomain.Service {
	return &Service{
		db:  p.DB,
		log: p.Log.Named("paymenttype.service"),

		typerepo: repository.ProvideStore[paymenttypedomain.PaymentType](p.DB),
	}
}

func (s *Service) GetByID(ctx context.Context, id string) (paymenttypedomain.PaymentType, error) {
	typeID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return paymenttypedomain.PaymentType{}, paymenttypedomain.ErrInvalidPaymentTypeID
	}

	item, err := s.typerepo.FindOne(ctx, &paymenttypedomain.PaymentType{ID: typeID})
	if err != nil {
		return paymenttypedomain.PaymentType{}, err
	}
	if item == nil {
		return paymenttypedomain.PaymentType{}, paymenttypedomain.ErrPaymentTypeNotFound
	}

	return *item, nil
}

func (s *Service) Update(ctx context.Context, id string, req paymenttypedomain.UpdateRequest) (paymenttypedomain.PaymentType, error) {
	paymentType, err := s.GetByID(ctx, id)
	if err != nil {
		return paymenttypedomain.PaymentType{}, err
	}

	if req.Name != nil {
		paymentType.Name = strings.TrimSpace(*req.Name)
	}
	if req.FacturaeType != nil {
		code := strings.TrimSpace(*req.FacturaeType)
		if code == "" {
			paymentType.FacturaeType = nil
		} else {
			if referencedomain.PaymentMeanByCode(code) == nil {
				return paymenttypedomain.PaymentType{}, paymenttypedomain.ErrUnknownFacturaeType
			}
			paymentType.FacturaeType = &code
		}
	}
	if req.BankAccountOwner != nil {
		paymentType.BankAccountOwner = req.BankAccountOwner
	}

	if err := paymentType.CheckFacturaeType(); err != nil {
		return paymenttypedomain.PaymentType{}, err
	}

	updates := map[string]any{
		"name":               paymentType.Name,
		"facturae_type":      paymentType.FacturaeType,
		"bank_account_owner": paymentType.BankAccountOwner,
	}
	if err := s.typerepo.Update(ctx, paymentType.ID.String(), updates); err != nil {
		return paymenttypedomain.PaymentType{}, err
	}
	return paymentType, nil
}
