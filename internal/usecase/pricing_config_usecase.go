package usecase

import (
	"context"
	"time"

	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// IPricingConfigUseCase administers the commercial rules used by the quote builder.
type IPricingConfigUseCase interface {
	GetActive(ctx context.Context) (entities.PricingConfig, error)
	Create(ctx context.Context, cfg entities.PricingConfig) (entities.PricingConfig, error)
}

type PricingConfigUseCase struct {
	repo     interfaces.IPricingConfigRepository
	provider interfaces.IPricingConfigProvider
	now      func() time.Time
}

var _ IPricingConfigUseCase = (*PricingConfigUseCase)(nil)

func NewPricingConfigUseCase(repo interfaces.IPricingConfigRepository, provider interfaces.IPricingConfigProvider) *PricingConfigUseCase {
	return &PricingConfigUseCase{repo: repo, provider: provider, now: func() time.Time { return time.Now().UTC() }}
}

func (u *PricingConfigUseCase) GetActive(ctx context.Context) (entities.PricingConfig, error) {
	cfg, err := u.repo.GetActive(ctx)
	if err != nil {
		return entities.PricingConfig{}, err
	}
	if cfg.ID == "" {
		return entities.PricingConfig{}, ErrPricingConfigNotFound
	}
	return cfg, nil
}

// Create activates cfg as the next version and retires the current one.
func (u *PricingConfigUseCase) Create(ctx context.Context, cfg entities.PricingConfig) (entities.PricingConfig, error) {
	if err := cfg.Validate(); err != nil {
		return entities.PricingConfig{}, err
	}

	current, err := u.repo.GetActive(ctx)
	if err != nil {
		return entities.PricingConfig{}, err
	}

	now := u.now()
	cfg.ID = uuid.NewString()
	cfg.Version = current.Version + 1
	cfg.IsActive = true
	cfg.ValidFrom = now
	cfg.ValidUntil = nil
	cfg.CreatedAt = now

	var previous *entities.PricingConfig
	if current.ID != "" {
		prev := current
		prev.IsActive = false
		prev.ValidUntil = &now
		previous = &prev
	}

	if err := u.repo.Activate(ctx, cfg, previous); err != nil {
		log.Error().Err(err).Int("version", cfg.Version).Msg("[pricing][usecase] activate failed")
		return entities.PricingConfig{}, err
	}
	if u.provider != nil {
		if err := u.provider.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("[pricing][usecase] cache invalidation failed")
		}
	}
	log.Info().Str("pricing_config_id", cfg.ID).Int("version", cfg.Version).Msg("[pricing][usecase] activated")
	return cfg, nil
}
