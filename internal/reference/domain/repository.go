package domain

import "context"

type Repository interface {
	ListRectificativeReasons(ctx context.Context) ([]RectificativeReason, error)
	ListPaymentMeans(ctx context.Context) ([]PaymentMean, error)
}
