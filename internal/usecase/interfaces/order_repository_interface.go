package interfaces

import (
	"context"

	"cartonera/internal/domain/entities"
)

// IOrderRepository abstracts DynamoDB persistence for Order. Orders are created by
// IQuoteRepository.ConvertQuote and never deleted.
type IOrderRepository interface {
	GetByID(ctx context.Context, id string) (entities.Order, error)
	GetByQuoteID(ctx context.Context, quoteID string) (entities.Order, error)
	Update(ctx context.Context, o entities.Order) (entities.Order, error)
	// RegisterPayment stores the paid order, the payment and the optional check atomically.
	// An approved payment row already stored for the same order may be re-applied.
	RegisterPayment(ctx context.Context, o entities.Order, p entities.Payment, c *entities.Check) (entities.Order, error)
}
