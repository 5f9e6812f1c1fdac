package interfaces

import (
	"context"

	"cartonera/internal/domain/entities"
)

// IPricingConfigRepository stores versioned pricing configs.
//
// GetActive returns a zero value when no config is active. Activate puts next as the
// active config and, when previous is not nil, deactivates it in the same transaction.
type IPricingConfigRepository interface {
	GetActive(ctx context.Context) (entities.PricingConfig, error)
	GetByID(ctx context.Context, id string) (entities.PricingConfig, error)
	Activate(ctx context.Context, next entities.PricingConfig, previous *entities.PricingConfig) error
}

// IPricingConfigProvider hands out the active config. Implementations may cache; the
// staleness bound is theirs to document. Invalidate drops any cached copy.
type IPricingConfigProvider interface {
	Active(ctx context.Context) (entities.PricingConfig, error)
	Invalidate(ctx context.Context) error
}
