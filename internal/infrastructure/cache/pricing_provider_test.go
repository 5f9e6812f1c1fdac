package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"cartonera/internal/domain/entities"
	mock_interfaces "cartonera/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newProvider(t *testing.T, ttl time.Duration) (*CachedPricingProvider, *mock_interfaces.MockIPricingConfigRepository, *clock) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIPricingConfigRepository(ctrl)
	clk := &clock{t: time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)}
	p := NewCachedPricingProvider(repo, nil, ttl)
	p.now = clk.now
	return p, repo, clk
}

func TestCachedPricingProvider_ServesFromMemoryWithinTTL(t *testing.T) {
	p, repo, clk := newProvider(t, time.Minute)
	repo.EXPECT().GetActive(gomock.Any()).Return(entities.PricingConfig{ID: "cfg-1", Version: 1}, nil).Times(1)

	for i := 0; i < 3; i++ {
		cfg, err := p.Active(context.Background())
		if err != nil || cfg.ID != "cfg-1" {
			t.Fatalf("unexpected result: %+v err=%v", cfg, err)
		}
		clk.t = clk.t.Add(10 * time.Second)
	}
}

func TestCachedPricingProvider_ReloadsAfterTTL(t *testing.T) {
	p, repo, clk := newProvider(t, time.Minute)
	gomock.InOrder(
		repo.EXPECT().GetActive(gomock.Any()).Return(entities.PricingConfig{ID: "cfg-1", Version: 1}, nil),
		repo.EXPECT().GetActive(gomock.Any()).Return(entities.PricingConfig{ID: "cfg-2", Version: 2}, nil),
	)

	if _, err := p.Active(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	clk.t = clk.t.Add(time.Minute)
	cfg, err := p.Active(context.Background())
	if err != nil || cfg.ID != "cfg-2" {
		t.Fatalf("expected reload after ttl, got %+v err=%v", cfg, err)
	}
}

func TestCachedPricingProvider_Invalidate(t *testing.T) {
	p, repo, _ := newProvider(t, time.Hour)
	repo.EXPECT().GetActive(gomock.Any()).Return(entities.PricingConfig{ID: "cfg-1", Version: 1}, nil).Times(2)

	if _, err := p.Active(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := p.Invalidate(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := p.Active(context.Background()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestCachedPricingProvider_MissesAreNotCached(t *testing.T) {
	p, repo, _ := newProvider(t, time.Hour)
	repo.EXPECT().GetActive(gomock.Any()).Return(entities.PricingConfig{}, nil).Times(2)

	for i := 0; i < 2; i++ {
		cfg, err := p.Active(context.Background())
		if err != nil || cfg.ID != "" {
			t.Fatalf("unexpected result: %+v err=%v", cfg, err)
		}
	}
}

func TestCachedPricingProvider_RepositoryError(t *testing.T) {
	p, repo, _ := newProvider(t, time.Hour)
	repo.EXPECT().GetActive(gomock.Any()).Return(entities.PricingConfig{}, errors.New("dynamodb down"))

	if _, err := p.Active(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
