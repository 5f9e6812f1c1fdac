package interfaces

import (
	"context"
	"errors"

	"cartonera/internal/domain/entities"
)

// ErrNumberTaken means the quote or order number is already reserved by another
// aggregate. Nothing was written; the caller retries with a fresh number.
var ErrNumberTaken = errors.New("document number already taken")

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// Writes are whole-aggregate and conditional on Version:
//   - Create stores version 1 and fails if the id exists or the quote number is reserved
//   - Update stores q with Version+1 only if the stored version still equals q.Version
//   - ConvertQuote writes the converted quote and the new order in one transaction, also
//     reserving the order number
//
// A lost race surfaces as an entities.KindConcurrentModification error.
type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	Update(ctx context.Context, q entities.Quote) (entities.Quote, error)
	ListByStatuses(ctx context.Context, statuses []entities.QuoteStatus) ([]entities.Quote, error)
	ConvertQuote(ctx context.Context, q entities.Quote, o entities.Order) (entities.Quote, entities.Order, error)
}
