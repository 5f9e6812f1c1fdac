package interfaces

import (
	"context"

	"cartonera/internal/domain/entities"
)

// IDocumentGateway issues dispatch paperwork through external systems. Callers bound
// each call with a context deadline.
type IDocumentGateway interface {
	IssueInvoice(ctx context.Context, o entities.Order) (entities.DispatchDocument, error)
	IssueRemito(ctx context.Context, o entities.Order) (entities.DispatchDocument, error)
	IssueTaxDocument(ctx context.Context, o entities.Order) (entities.DispatchDocument, error)
}
