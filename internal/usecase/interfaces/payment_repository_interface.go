package interfaces

import (
	"context"

	"cartonera/internal/domain/entities"
)

// IPaymentRepository abstracts DynamoDB persistence for Payment.
//
// Approved payments are written by IOrderRepository.RegisterPayment; Create is only
// used to keep an audit row for provider charges that were not approved.
type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	ListByOrderID(ctx context.Context, orderID string) ([]entities.Payment, error)
}
