package reference

import (
	"context"

	"github.com/smallbiznis/facturae/internal/reference/domain"
)

// The tables are fixed by the external standard, so the repository serves
// the in-process copies; there is no database behind it.
type repository struct{}

func NewRepository() domain.Repository {
	return &repository{}
}

func (r *repository) ListRectificativeReasons(ctx context.Context) ([]domain.RectificativeReason, error) {
	_ = ctx
	out := make([]domain.RectificativeReason, len(domain.RectificativeReasons))
	copy(out, domain.RectificativeReasons)
	return out, nil
}

func (r *repository) ListPaymentMeans(ctx context.Context) ([]domain.PaymentMean, error) {
	_ = ctx
	out := make([]domain.PaymentMean, len(domain.PaymentMeans))
	copy(out, domain.PaymentMeans)
	return out, nil
}
