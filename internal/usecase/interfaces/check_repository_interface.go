package interfaces

import (
	"context"

	"cartonera/internal/domain/entities"
)

type ICheckRepository interface {
	GetByID(ctx context.Context, id string) (entities.Check, error)
	ListByStatus(ctx context.Context, status entities.CheckStatus) ([]entities.Check, error)
	ListAll(ctx context.Context) ([]entities.Check, error)
	Update(ctx context.Context, c entities.Check) (entities.Check, error)
}
