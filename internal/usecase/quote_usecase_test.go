package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase/interfaces"
	mock_interfaces "cartonera/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

type quoteMocks struct {
	repo     *mock_interfaces.MockIQuoteRepository
	pricing  *mock_interfaces.MockIPricingConfigProvider
	notifier *mock_interfaces.MockINotifier
	exporter *mock_interfaces.MockIQuoteExporter
}

func newQuoteUseCase(t *testing.T) (*QuoteUseCase, quoteMocks) {
	ctrl := gomock.NewController(t)
	m := quoteMocks{
		repo:     mock_interfaces.NewMockIQuoteRepository(ctrl),
		pricing:  mock_interfaces.NewMockIPricingConfigProvider(ctrl),
		notifier: mock_interfaces.NewMockINotifier(ctrl),
		exporter: mock_interfaces.NewMockIQuoteExporter(ctrl),
	}
	uc := NewQuoteUseCase(m.repo, m.pricing, m.notifier, m.exporter)
	uc.now = func() time.Time { return fixedNow }
	return uc, m
}

func versionBump(_ context.Context, q entities.Quote) (entities.Quote, error) {
	q.Version++
	return q, nil
}

func TestQuoteUseCase_Calculate(t *testing.T) {
	t.Run("no active config", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		m.pricing.EXPECT().Active(gomock.Any()).Return(entities.PricingConfig{}, nil)

		_, err := uc.Calculate(context.Background(), quoteInput(7500))
		if !errors.Is(err, ErrPricingConfigNotFound) {
			t.Fatalf("expected ErrPricingConfigNotFound, got %v", err)
		}
	})

	t.Run("provider error", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		m.pricing.EXPECT().Active(gomock.Any()).Return(entities.PricingConfig{}, errors.New("redis down"))

		_, err := uc.Calculate(context.Background(), quoteInput(7500))
		if err == nil || err.Error() != "redis down" {
			t.Fatalf("expected provider error, got %v", err)
		}
	})

	t.Run("volume scenario", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		m.pricing.EXPECT().Active(gomock.Any()).Return(activePricingConfig(), nil)

		res, err := uc.Calculate(context.Background(), quoteInput(7500))
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if !res.Summary.Subtotal.Equal(dec("4371750")) || !res.Summary.PricePerM2.Equal(dec("670")) {
			t.Fatalf("unexpected summary: %+v", res.Summary)
		}
	})

	t.Run("undersized box", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		m.pricing.EXPECT().Active(gomock.Any()).Return(activePricingConfig(), nil)

		in := quoteInput(7500)
		in.Items[0].HeightMM = 50
		_, err := uc.Calculate(context.Background(), in)
		if !errors.Is(err, entities.ErrBelowMinimumSize) {
			t.Fatalf("expected ErrBelowMinimumSize, got %v", err)
		}
	})
}

func TestQuoteUseCase_Create(t *testing.T) {
	t.Run("missing client", func(t *testing.T) {
		uc, _ := newQuoteUseCase(t)
		_, err := uc.Create(context.Background(), CreateQuoteInput{QuoteInput: quoteInput(7500), ClientID: "  "})
		if !errors.Is(err, ErrInvalidClientID) {
			t.Fatalf("expected ErrInvalidClientID, got %v", err)
		}
	})

	t.Run("below minimum order is not stored", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		m.pricing.EXPECT().Active(gomock.Any()).Return(activePricingConfig(), nil)

		_, err := uc.Create(context.Background(), CreateQuoteInput{QuoteInput: quoteInput(500), ClientID: "client-1"})
		if !errors.Is(err, entities.ErrBelowMinimumOrder) {
			t.Fatalf("expected ErrBelowMinimumOrder, got %v", err)
		}
	})

	t.Run("success", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		m.pricing.EXPECT().Active(gomock.Any()).Return(activePricingConfig(), nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.AssignableToTypeOf(entities.Quote{})).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.ID == "" || !strings.HasPrefix(q.QuoteNumber, "COT-20261019-") || len(q.QuoteNumber) != len("COT-20261019-XXXXXX") {
					t.Fatalf("unexpected identifiers: %q %q", q.ID, q.QuoteNumber)
				}
				if q.Status != entities.QuoteStatusDraft || q.ClientID != "client-1" || q.PricingConfigID != "cfg-1" {
					t.Fatalf("unexpected quote: %+v", q)
				}
				if !q.ValidUntil.Equal(fixedNow.AddDate(0, 0, 15)) {
					t.Fatalf("unexpected valid_until %s", q.ValidUntil)
				}
				if !q.Total.Equal(dec("4371750")) || !q.TotalM2.Equal(dec("6525")) || q.PricingTier != "volume" {
					t.Fatalf("unexpected pricing: total=%s m2=%s tier=%s", q.Total, q.TotalM2, q.PricingTier)
				}
				if len(q.Items) != 1 || q.Items[0].ID == "" {
					t.Fatalf("unexpected items: %+v", q.Items)
				}
				q.Version = 1
				return q, nil
			},
		)

		res, err := uc.Create(context.Background(), CreateQuoteInput{QuoteInput: quoteInput(7500), ClientID: " client-1 "})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if res.Version != 1 {
			t.Fatalf("expected stored quote, got %+v", res)
		}
	})
}

func TestQuoteUseCase_GetByID(t *testing.T) {
	t.Run("invalid id", func(t *testing.T) {
		uc, _ := newQuoteUseCase(t)
		if _, err := uc.GetByID(context.Background(), " "); !errors.Is(err, ErrInvalidQuoteID) {
			t.Fatalf("expected ErrInvalidQuoteID, got %v", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-x").Return(entities.Quote{}, nil)
		if _, err := uc.GetByID(context.Background(), "q-x"); !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})
}

func TestQuoteUseCase_Send(t *testing.T) {
	t.Run("success notifies", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(storedQuote(entities.QuoteStatusDraft), nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(versionBump)
		m.notifier.EXPECT().Notify(gomock.Any(), gomock.AssignableToTypeOf(entities.QuoteSent{})).Return(nil)

		q, err := uc.Send(context.Background(), "q-1")
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if q.Status != entities.QuoteStatusSent || q.SentAt == nil || q.Version != 3 {
			t.Fatalf("unexpected quote: %+v", q)
		}
	})

	t.Run("notification failure does not fail the send", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(storedQuote(entities.QuoteStatusDraft), nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(versionBump)
		m.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errors.New("pubsub"))

		if _, err := uc.Send(context.Background(), "q-1"); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	})

	t.Run("concurrent modification", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(storedQuote(entities.QuoteStatusDraft), nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).Return(entities.Quote{}, entities.ErrConcurrentModification)

		if _, err := uc.Send(context.Background(), "q-1"); !errors.Is(err, entities.ErrConcurrentModification) {
			t.Fatalf("expected ErrConcurrentModification, got %v", err)
		}
	})
}

func TestQuoteUseCase_Approve(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(storedQuote(entities.QuoteStatusSent), nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(versionBump)

		q, err := uc.Approve(context.Background(), "q-1")
		if err != nil || q.Status != entities.QuoteStatusApproved {
			t.Fatalf("unexpected result: %+v err=%v", q, err)
		}
	})

	t.Run("expired quote is persisted as expired", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		stale := storedQuote(entities.QuoteStatusSent)
		stale.ValidUntil = fixedNow.AddDate(0, 0, -1)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(stale, nil)
		m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.Status != entities.QuoteStatusExpired {
					t.Fatalf("expected expired status to be stored, got %s", q.Status)
				}
				return q, nil
			},
		)

		_, err := uc.Approve(context.Background(), "q-1")
		if !errors.Is(err, entities.ErrQuoteExpired) {
			t.Fatalf("expected ErrQuoteExpired, got %v", err)
		}
	})

	t.Run("invalid state carries transitions", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(storedQuote(entities.QuoteStatusRejected), nil)

		_, err := uc.Approve(context.Background(), "q-1")
		if !errors.Is(err, entities.ErrInvalidState) {
			t.Fatalf("expected ErrInvalidState, got %v", err)
		}
		if got := entities.TransitionsOf(err); len(got) != 0 {
			t.Fatalf("expected no transitions from rejected, got %v", got)
		}
	})
}

func TestQuoteUseCase_Reject(t *testing.T) {
	uc, m := newQuoteUseCase(t)
	m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(storedQuote(entities.QuoteStatusSent), nil)
	m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(versionBump)

	q, err := uc.Reject(context.Background(), "q-1", " precio ")
	if err != nil || q.Status != entities.QuoteStatusRejected || q.RejectionReason != "precio" {
		t.Fatalf("unexpected result: %+v err=%v", q, err)
	}
}

func TestQuoteUseCase_ExpireDue(t *testing.T) {
	uc, m := newQuoteUseCase(t)

	pastDraft := storedQuote(entities.QuoteStatusDraft)
	pastDraft.ID = "q-past"
	pastDraft.ValidUntil = fixedNow.AddDate(0, 0, -1)
	valid := storedQuote(entities.QuoteStatusSent)
	valid.ID = "q-valid"
	raced := storedQuote(entities.QuoteStatusSent)
	raced.ID = "q-raced"
	raced.ValidUntil = fixedNow.AddDate(0, 0, -2)

	m.repo.EXPECT().ListByStatuses(gomock.Any(), []entities.QuoteStatus{entities.QuoteStatusDraft, entities.QuoteStatusSent}).
		Return([]entities.Quote{pastDraft, valid, raced}, nil)
	m.repo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, q entities.Quote) (entities.Quote, error) {
			if q.ID == "q-raced" {
				return entities.Quote{}, entities.ErrConcurrentModification
			}
			return q, nil
		},
	).Times(2)

	expired, err := uc.ExpireDue(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(expired) != 1 || expired[0].ID != "q-past" || expired[0].Status != entities.QuoteStatusExpired {
		t.Fatalf("unexpected expired list: %+v", expired)
	}
}

func TestQuoteUseCase_Create_RetriesTakenNumber(t *testing.T) {
	t.Run("fresh number on collision", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		m.pricing.EXPECT().Active(gomock.Any()).Return(activePricingConfig(), nil)
		var seen []entities.Quote
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				seen = append(seen, q)
				if len(seen) == 1 {
					return entities.Quote{}, fmt.Errorf("quote number %s: %w", q.QuoteNumber, interfaces.ErrNumberTaken)
				}
				return q, nil
			},
		)

		res, err := uc.Create(context.Background(), CreateQuoteInput{QuoteInput: quoteInput(7500), ClientID: "client-1"})
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if seen[0].ID != seen[1].ID || !strings.HasPrefix(res.QuoteNumber, "COT-20261019-") {
			t.Fatalf("retry changed the quote: %+v", seen)
		}
	})

	t.Run("gives up after bounded attempts", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		m.pricing.EXPECT().Active(gomock.Any()).Return(activePricingConfig(), nil)
		m.repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(numberAttempts).Return(entities.Quote{}, interfaces.ErrNumberTaken)

		_, err := uc.Create(context.Background(), CreateQuoteInput{QuoteInput: quoteInput(7500), ClientID: "client-1"})
		if !errors.Is(err, interfaces.ErrNumberTaken) {
			t.Fatalf("expected ErrNumberTaken, got %v", err)
		}
	})
}

func TestQuoteUseCase_Convert_RetriesTakenOrderNumber(t *testing.T) {
	uc, m := newQuoteUseCase(t)
	m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(storedQuote(entities.QuoteStatusApproved), nil)
	calls := 0
	m.repo.EXPECT().ConvertQuote(gomock.Any(), gomock.Any(), gomock.Any()).Times(2).DoAndReturn(
		func(_ context.Context, q entities.Quote, o entities.Order) (entities.Quote, entities.Order, error) {
			calls++
			if calls == 1 {
				return entities.Quote{}, entities.Order{}, interfaces.ErrNumberTaken
			}
			if q.ConvertedToOrderID != o.ID {
				t.Fatalf("quote not linked to the retried order: %+v", q)
			}
			return q, o, nil
		},
	)
	m.notifier.EXPECT().Notify(gomock.Any(), gomock.AssignableToTypeOf(entities.QuoteConverted{})).Return(nil)

	o, err := uc.Convert(context.Background(), "q-1")
	if err != nil || !strings.HasPrefix(o.OrderNumber, "PED-20261019-") {
		t.Fatalf("unexpected result: %+v err=%v", o, err)
	}
}

func TestQuoteUseCase_Convert(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(storedQuote(entities.QuoteStatusApproved), nil)
		m.repo.EXPECT().ConvertQuote(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote, o entities.Order) (entities.Quote, entities.Order, error) {
				if q.Status != entities.QuoteStatusConverted || q.ConvertedToOrderID != o.ID {
					t.Fatalf("quote not linked: %+v", q)
				}
				if o.Status != entities.OrderStatusPendingDeposit || o.QuoteID != "q-1" || !strings.HasPrefix(o.OrderNumber, "PED-") {
					t.Fatalf("unexpected order: %+v", o)
				}
				if !o.DepositAmount.Equal(dec("2185875")) || !o.BalanceAmount.Equal(dec("2185875")) {
					t.Fatalf("unexpected split: %s / %s", o.DepositAmount, o.BalanceAmount)
				}
				o.Version = 1
				return q, o, nil
			},
		)
		m.notifier.EXPECT().Notify(gomock.Any(), gomock.AssignableToTypeOf(entities.QuoteConverted{})).Return(nil)

		o, err := uc.Convert(context.Background(), "q-1")
		if err != nil || o.Version != 1 {
			t.Fatalf("unexpected result: %+v err=%v", o, err)
		}
	})

	t.Run("already converted", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		q := storedQuote(entities.QuoteStatusConverted)
		q.ConvertedToOrderID = "o-0"
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(q, nil)

		if _, err := uc.Convert(context.Background(), "q-1"); !errors.Is(err, entities.ErrAlreadyConverted) {
			t.Fatalf("expected ErrAlreadyConverted, got %v", err)
		}
	})

	t.Run("not approved", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(storedQuote(entities.QuoteStatusSent), nil)

		if _, err := uc.Convert(context.Background(), "q-1"); !errors.Is(err, entities.ErrInvalidState) {
			t.Fatalf("expected ErrInvalidState, got %v", err)
		}
	})

	t.Run("transaction failure", func(t *testing.T) {
		uc, m := newQuoteUseCase(t)
		m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(storedQuote(entities.QuoteStatusApproved), nil)
		m.repo.EXPECT().ConvertQuote(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(entities.Quote{}, entities.Order{}, entities.ErrConcurrentModification)

		if _, err := uc.Convert(context.Background(), "q-1"); !errors.Is(err, entities.ErrConcurrentModification) {
			t.Fatalf("expected ErrConcurrentModification, got %v", err)
		}
	})
}

func TestQuoteUseCase_Export(t *testing.T) {
	uc, m := newQuoteUseCase(t)
	m.repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(storedQuote(entities.QuoteStatusSent), nil)
	m.exporter.EXPECT().ExportQuote(gomock.Any()).Return([]byte("xlsx"), nil)

	name, content, err := uc.Export(context.Background(), "q-1")
	if err != nil || name != "COT-20261010-AAAAAA.xlsx" || string(content) != "xlsx" {
		t.Fatalf("unexpected export: %s %q err=%v", name, content, err)
	}

	noExporter := NewQuoteUseCase(nil, nil, nil, nil)
	if _, _, err := noExporter.Export(context.Background(), "q-1"); !errors.Is(err, ErrExporterNotConfigured) {
		t.Fatalf("expected ErrExporterNotConfigured, got %v", err)
	}
}
