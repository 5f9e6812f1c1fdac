package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cartonera/internal/domain/entities"
	"cartonera/internal/domain/quoting"
	"cartonera/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrQuoteNotFound         = errors.New("quote not found")
	ErrInvalidQuoteID        = errors.New("invalid quote id")
	ErrInvalidClientID       = errors.New("invalid client_id")
	ErrPricingConfigNotFound = errors.New("no active pricing config")
	ErrExporterNotConfigured = errors.New("quote exporter not configured")
)

// QuoteInput is everything the builder needs to price a quote.
type QuoteInput struct {
	Items              []quoting.ItemInput
	HasPrinting        bool
	HasDieCut          bool
	HasExistingPolymer bool
	ClientDistanceKm   *decimal.Decimal
	PrintingCost       *decimal.Decimal
	DieCutCost         *decimal.Decimal
	ShippingCost       *decimal.Decimal
}

type CreateQuoteInput struct {
	QuoteInput
	ClientID   string
	ClientName string
}

// IQuoteUseCase exposes the quote lifecycle:
//   - Calculate prices without persisting
//   - Create stores a draft
//   - Send / Approve / Reject / ExpireDue move it through its states
//   - Convert turns an approved quote into an order exactly once
type IQuoteUseCase interface {
	Calculate(ctx context.Context, in QuoteInput) (quoting.PricedQuote, error)
	Create(ctx context.Context, in CreateQuoteInput) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	Send(ctx context.Context, id string) (entities.Quote, error)
	Approve(ctx context.Context, id string) (entities.Quote, error)
	Reject(ctx context.Context, id string, reason string) (entities.Quote, error)
	ExpireDue(ctx context.Context) ([]entities.Quote, error)
	Convert(ctx context.Context, id string) (entities.Order, error)
	Export(ctx context.Context, id string) (string, []byte, error)
}

type QuoteUseCase struct {
	repo     interfaces.IQuoteRepository
	pricing  interfaces.IPricingConfigProvider
	notifier interfaces.INotifier
	exporter interfaces.IQuoteExporter
	now      func() time.Time
}

var _ IQuoteUseCase = (*QuoteUseCase)(nil)

func NewQuoteUseCase(repo interfaces.IQuoteRepository, pricing interfaces.IPricingConfigProvider, notifier interfaces.INotifier, exporter interfaces.IQuoteExporter) *QuoteUseCase {
	return &QuoteUseCase{
		repo:     repo,
		pricing:  pricing,
		notifier: notifier,
		exporter: exporter,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (u *QuoteUseCase) activeConfig(ctx context.Context) (entities.PricingConfig, error) {
	cfg, err := u.pricing.Active(ctx)
	if err != nil {
		return entities.PricingConfig{}, err
	}
	if cfg.ID == "" {
		return entities.PricingConfig{}, ErrPricingConfigNotFound
	}
	return cfg, nil
}

func (u *QuoteUseCase) build(ctx context.Context, in QuoteInput) (quoting.PricedQuote, entities.PricingConfig, error) {
	cfg, err := u.activeConfig(ctx)
	if err != nil {
		return quoting.PricedQuote{}, entities.PricingConfig{}, err
	}
	priced, err := quoting.BuildQuote(in.Items, cfg, quoting.Options{
		HasPrinting:        in.HasPrinting,
		HasDieCut:          in.HasDieCut,
		HasExistingPolymer: in.HasExistingPolymer,
		ClientDistanceKm:   in.ClientDistanceKm,
		PrintingCost:       in.PrintingCost,
		DieCutCost:         in.DieCutCost,
		ShippingCost:       in.ShippingCost,
		Now:                u.now(),
	})
	if err != nil {
		return quoting.PricedQuote{}, entities.PricingConfig{}, err
	}
	return priced, cfg, nil
}

func (u *QuoteUseCase) Calculate(ctx context.Context, in QuoteInput) (quoting.PricedQuote, error) {
	priced, _, err := u.build(ctx, in)
	if err != nil {
		log.Debug().Err(err).Int("items", len(in.Items)).Msg("[quote][usecase] calculate rejected")
		return quoting.PricedQuote{}, err
	}
	return priced, nil
}

func (u *QuoteUseCase) Create(ctx context.Context, in CreateQuoteInput) (entities.Quote, error) {
	clientID := strings.TrimSpace(in.ClientID)
	if clientID == "" {
		return entities.Quote{}, ErrInvalidClientID
	}

	priced, cfg, err := u.build(ctx, in.QuoteInput)
	if err != nil {
		return entities.Quote{}, err
	}
	if priced.RequiresSpecialRequest {
		return entities.Quote{}, entities.NewDomainError(entities.KindBelowMinimumOrder,
			"total area %s m² is below the minimum order; submit it as a special request", priced.Summary.TotalM2.String())
	}

	now := u.now()
	s := priced.Summary
	q := entities.Quote{
		ID:                uuid.NewString(),
		QuoteNumber:       documentNumber("COT", now),
		ClientID:          clientID,
		ClientName:        strings.TrimSpace(in.ClientName),
		Items:             priced.LineItems(uuid.NewString),
		TotalM2:           s.TotalM2,
		PricingTier:       string(s.PricingTier),
		PricePerM2:        s.PricePerM2,
		Subtotal:          s.Subtotal,
		PrintingCost:      s.PrintingCost,
		DieCutCost:        s.DieCutCost,
		ShippingCost:      s.ShippingCost,
		Total:             s.Total,
		HasPrinting:       in.HasPrinting,
		HasDieCut:         in.HasDieCut,
		FreeShipping:      s.FreeShipping,
		ShippingNotes:     s.ShippingNotes,
		ProductionDays:    s.ProductionDays,
		EstimatedDelivery: s.EstimatedDelivery,
		Warnings:          priced.WarningMessages(),
		PricingConfigID:   cfg.ID,
		Status:            entities.QuoteStatusDraft,
		ValidUntil:        now.AddDate(0, 0, cfg.QuoteValidityDays),
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	var created entities.Quote
	for attempt := 1; ; attempt++ {
		created, err = u.repo.Create(ctx, q)
		if !errors.Is(err, interfaces.ErrNumberTaken) || attempt == numberAttempts {
			break
		}
		log.Warn().Str("quote_number", q.QuoteNumber).Int("attempt", attempt).Msg("[quote][usecase] quote number taken, retrying")
		q.QuoteNumber = documentNumber("COT", now)
	}
	if err != nil {
		log.Error().Err(err).Str("quote_number", q.QuoteNumber).Msg("[quote][usecase] create failed")
		return entities.Quote{}, err
	}
	log.Info().Str("quote_id", created.ID).Str("quote_number", created.QuoteNumber).
		Str("total_m2", created.TotalM2.String()).Str("total", created.Total.String()).
		Msg("[quote][usecase] created")
	return created, nil
}

func (u *QuoteUseCase) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quote{}, ErrInvalidQuoteID
	}

	q, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if q.ID == "" {
		return entities.Quote{}, ErrQuoteNotFound
	}
	return q, nil
}

// mutate is the read-modify-write used by every transition. apply runs on the freshly
// read aggregate and the result is written back conditionally on its version.
func (u *QuoteUseCase) mutate(ctx context.Context, id string, apply func(q *entities.Quote, now time.Time) error) (entities.Quote, error) {
	q, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}
	if err := apply(&q, u.now()); err != nil {
		return entities.Quote{}, err
	}
	return u.repo.Update(ctx, q)
}

func (u *QuoteUseCase) Send(ctx context.Context, id string) (entities.Quote, error) {
	sent, err := u.mutate(ctx, id, func(q *entities.Quote, now time.Time) error {
		return q.Send(now)
	})
	if err != nil {
		log.Warn().Err(err).Str("quote_id", id).Msg("[quote][usecase] send failed")
		return entities.Quote{}, err
	}
	notify(ctx, u.notifier, entities.QuoteSent{
		QuoteID:     sent.ID,
		QuoteNumber: sent.QuoteNumber,
		ClientID:    sent.ClientID,
		Total:       sent.Total,
		ValidUntil:  sent.ValidUntil,
	})
	return sent, nil
}

// Approve persists the expired status before reporting QUOTE_EXPIRED.
func (u *QuoteUseCase) Approve(ctx context.Context, id string) (entities.Quote, error) {
	q, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Quote{}, err
	}

	approveErr := q.Approve(u.now())
	if approveErr != nil && !errors.Is(approveErr, entities.ErrQuoteExpired) {
		return entities.Quote{}, approveErr
	}

	updated, err := u.repo.Update(ctx, q)
	if err != nil {
		log.Error().Err(err).Str("quote_id", id).Msg("[quote][usecase] approve persist failed")
		return entities.Quote{}, err
	}
	if approveErr != nil {
		log.Info().Str("quote_id", id).Str("valid_until", q.ValidUntil.Format(time.DateOnly)).Msg("[quote][usecase] approve on expired quote")
		return entities.Quote{}, approveErr
	}
	log.Info().Str("quote_id", id).Msg("[quote][usecase] approved")
	return updated, nil
}

func (u *QuoteUseCase) Reject(ctx context.Context, id string, reason string) (entities.Quote, error) {
	return u.mutate(ctx, id, func(q *entities.Quote, now time.Time) error {
		return q.Reject(strings.TrimSpace(reason), now)
	})
}

// ExpireDue moves every draft or sent quote past its validity to expired. Quotes that
// change underneath the sweep are skipped and picked up by the next run.
func (u *QuoteUseCase) ExpireDue(ctx context.Context) ([]entities.Quote, error) {
	open, err := u.repo.ListByStatuses(ctx, []entities.QuoteStatus{entities.QuoteStatusDraft, entities.QuoteStatusSent})
	if err != nil {
		return nil, err
	}

	now := u.now()
	expired := make([]entities.Quote, 0)
	for _, q := range open {
		if !q.IsPastValidity(now) {
			continue
		}
		if err := q.Expire(now); err != nil {
			continue
		}
		updated, err := u.repo.Update(ctx, q)
		if err != nil {
			if errors.Is(err, entities.ErrConcurrentModification) {
				log.Debug().Str("quote_id", q.ID).Msg("[quote][usecase] expire skipped, quote changed")
				continue
			}
			return expired, err
		}
		expired = append(expired, updated)
	}
	if len(expired) > 0 {
		log.Info().Int("count", len(expired)).Msg("[quote][usecase] expired due quotes")
	}
	return expired, nil
}

// Convert creates the order for an approved quote. The order and the converted quote
// are written in one transaction.
func (u *QuoteUseCase) Convert(ctx context.Context, id string) (entities.Order, error) {
	q, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}

	now := u.now()
	order, err := entities.NewOrderFromQuote(uuid.NewString(), documentNumber("PED", now), q, now)
	if err != nil {
		return entities.Order{}, err
	}
	if err := q.MarkConverted(order.ID, now); err != nil {
		return entities.Order{}, err
	}

	var created entities.Order
	for attempt := 1; ; attempt++ {
		_, created, err = u.repo.ConvertQuote(ctx, q, order)
		if !errors.Is(err, interfaces.ErrNumberTaken) || attempt == numberAttempts {
			break
		}
		log.Warn().Str("order_number", order.OrderNumber).Int("attempt", attempt).Msg("[quote][usecase] order number taken, retrying")
		order.OrderNumber = documentNumber("PED", now)
	}
	if err != nil {
		log.Error().Err(err).Str("quote_id", q.ID).Msg("[quote][usecase] convert failed")
		return entities.Order{}, err
	}
	log.Info().Str("quote_id", q.ID).Str("order_id", created.ID).Str("deposit", created.DepositAmount.String()).
		Msg("[quote][usecase] converted")

	notify(ctx, u.notifier, entities.QuoteConverted{
		QuoteID:       q.ID,
		QuoteNumber:   q.QuoteNumber,
		OrderID:       created.ID,
		OrderNumber:   created.OrderNumber,
		ClientID:      created.ClientID,
		DepositAmount: created.DepositAmount,
	})
	return created, nil
}

// Export returns the file name and xlsx content for a quote.
func (u *QuoteUseCase) Export(ctx context.Context, id string) (string, []byte, error) {
	if u.exporter == nil {
		return "", nil, ErrExporterNotConfigured
	}
	q, err := u.GetByID(ctx, id)
	if err != nil {
		return "", nil, err
	}
	content, err := u.exporter.ExportQuote(q)
	if err != nil {
		return "", nil, err
	}
	return fmt.Sprintf("%s.xlsx", q.QuoteNumber), content, nil
}
