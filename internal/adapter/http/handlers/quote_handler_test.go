package handlers

import (
	"net/http"
	"testing"
	"time"

	"cartonera/internal/adapter/http/handlers/mocks"
	"cartonera/internal/domain/entities"
	"cartonera/internal/domain/quoting"
	"cartonera/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newQuoteRouter(t *testing.T) (*mocks.MockIQuoteUseCase, *QuoteHandler) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIQuoteUseCase(ctrl)
	return uc, NewQuoteHandler(uc)
}

func TestQuoteHandler_Calculate(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		_, h := newQuoteRouter(t)
		r := newRouter()
		r.POST("/v1/quotes/calculate", h.Calculate)

		w := serve(r, http.MethodPost, "/v1/quotes/calculate", "{")
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("undersized box is 422", func(t *testing.T) {
		uc, h := newQuoteRouter(t)
		r := newRouter()
		r.POST("/v1/quotes/calculate", h.Calculate)

		uc.EXPECT().Calculate(gomock.Any(), gomock.Any()).
			Return(quoting.PricedQuote{}, entities.NewDomainError(entities.KindBelowMinimumSize, "item 1: 150x200x100 mm is below the 200x200x100 mm minimum"))

		w := serve(r, http.MethodPost, "/v1/quotes/calculate", `{"items":[{"length_mm":150,"width_mm":200,"height_mm":100,"quantity":10}]}`)
		expectStatus(t, w, http.StatusUnprocessableEntity)
		if body := decodeBody(t, w); body["code"] != "BELOW_MINIMUM_SIZE" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("success maps the request", func(t *testing.T) {
		uc, h := newQuoteRouter(t)
		r := newRouter()
		r.POST("/v1/quotes/calculate", h.Calculate)

		uc.EXPECT().Calculate(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, in usecase.QuoteInput) (quoting.PricedQuote, error) {
			if len(in.Items) != 1 || in.Items[0].LengthMM != 600 || in.Items[0].Quantity != 4000 || !in.HasPrinting {
				t.Fatalf("unexpected input: %+v", in)
			}
			if in.ClientDistanceKm == nil || !in.ClientDistanceKm.Equal(decimal.NewFromInt(35)) {
				t.Fatalf("unexpected distance: %v", in.ClientDistanceKm)
			}
			return quoting.PricedQuote{Summary: quoting.Summary{
				TotalM2:           decimal.RequireFromString("6560"),
				Total:             decimal.RequireFromString("4395200"),
				EstimatedDelivery: time.Date(2026, time.November, 2, 0, 0, 0, 0, time.UTC),
			}}, nil
		})

		w := serve(r, http.MethodPost, "/v1/quotes/calculate",
			`{"items":[{"length_mm":600,"width_mm":400,"height_mm":400,"quantity":4000}],"has_printing":true,"client_distance_km":35}`)
		expectStatus(t, w, http.StatusOK)
		summary, ok := decodeBody(t, w)["summary"].(map[string]any)
		if !ok || summary["estimated_delivery"] != "2026-11-02" || summary["total"] != "4395200" {
			t.Fatalf("unexpected summary: %v", summary)
		}
	})
}

func TestQuoteHandler_Create(t *testing.T) {
	t.Run("client_id is required", func(t *testing.T) {
		_, h := newQuoteRouter(t)
		r := newRouter()
		r.POST("/v1/quotes", h.Create)

		w := serve(r, http.MethodPost, "/v1/quotes", `{"items":[{"length_mm":600,"width_mm":400,"height_mm":400,"quantity":4000}]}`)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("below minimum order is 422", func(t *testing.T) {
		uc, h := newQuoteRouter(t)
		r := newRouter()
		r.POST("/v1/quotes", h.Create)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).Return(entities.Quote{}, entities.NewDomainError(entities.KindBelowMinimumOrder, "too small"))

		w := serve(r, http.MethodPost, "/v1/quotes", `{"client_id":"c-1","items":[{"length_mm":300,"width_mm":200,"height_mm":200,"quantity":10}]}`)
		expectStatus(t, w, http.StatusUnprocessableEntity)
	})

	t.Run("created", func(t *testing.T) {
		uc, h := newQuoteRouter(t)
		r := newRouter()
		r.POST("/v1/quotes", h.Create)

		uc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ any, in usecase.CreateQuoteInput) (entities.Quote, error) {
			if in.ClientID != "c-1" || in.ClientName != "Envases del Sur SA" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return entities.Quote{ID: "q-1", QuoteNumber: "COT-20261018-ABC123", ClientID: "c-1", Status: entities.QuoteStatusDraft}, nil
		})

		w := serve(r, http.MethodPost, "/v1/quotes",
			`{"client_id":"c-1","client_name":"Envases del Sur SA","items":[{"length_mm":600,"width_mm":400,"height_mm":400,"quantity":4000}]}`)
		expectStatus(t, w, http.StatusCreated)
		body := decodeBody(t, w)
		if body["id"] != "q-1" || body["status"] != "draft" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestQuoteHandler_Transitions(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		uc, h := newQuoteRouter(t)
		r := newRouter()
		r.PATCH("/v1/quotes/:id/send", h.Send)

		uc.EXPECT().Send(gomock.Any(), "q-404").Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		w := serve(r, http.MethodPatch, "/v1/quotes/q-404/send", "")
		expectStatus(t, w, http.StatusNotFound)
	})

	t.Run("approve after validity is 410", func(t *testing.T) {
		uc, h := newQuoteRouter(t)
		r := newRouter()
		r.PATCH("/v1/quotes/:id/approve", h.Approve)

		uc.EXPECT().Approve(gomock.Any(), "q-1").Return(entities.Quote{}, entities.NewDomainError(entities.KindQuoteExpired, "quote expired"))

		w := serve(r, http.MethodPatch, "/v1/quotes/q-1/approve", "")
		expectStatus(t, w, http.StatusGone)
	})

	t.Run("reject from terminal state lists transitions", func(t *testing.T) {
		uc, h := newQuoteRouter(t)
		r := newRouter()
		r.PATCH("/v1/quotes/:id/reject", h.Reject)

		_, transitionErr := entities.QuoteStateMachine.Transition(entities.QuoteStatusApproved, entities.QuoteStatusRejected)
		uc.EXPECT().Reject(gomock.Any(), "q-1", "precio").Return(entities.Quote{}, transitionErr)

		w := serve(r, http.MethodPatch, "/v1/quotes/q-1/reject", `{"reason":"precio"}`)
		expectStatus(t, w, http.StatusConflict)
		body := decodeBody(t, w)
		transitions, ok := body["valid_transitions"].([]any)
		if !ok || len(transitions) != 1 || transitions[0] != "converted" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("reject without body", func(t *testing.T) {
		uc, h := newQuoteRouter(t)
		r := newRouter()
		r.PATCH("/v1/quotes/:id/reject", h.Reject)

		uc.EXPECT().Reject(gomock.Any(), "q-1", "").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusRejected}, nil)

		w := serve(r, http.MethodPatch, "/v1/quotes/q-1/reject", "")
		expectStatus(t, w, http.StatusOK)
	})
}

func TestQuoteHandler_Convert(t *testing.T) {
	t.Run("already converted", func(t *testing.T) {
		uc, h := newQuoteRouter(t)
		r := newRouter()
		r.POST("/v1/quotes/:id/convert", h.Convert)

		uc.EXPECT().Convert(gomock.Any(), "q-1").Return(entities.Order{}, entities.NewDomainError(entities.KindAlreadyConverted, "already converted"))

		w := serve(r, http.MethodPost, "/v1/quotes/q-1/convert", "")
		expectStatus(t, w, http.StatusConflict)
		if body := decodeBody(t, w); body["code"] != "ALREADY_CONVERTED" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("created order", func(t *testing.T) {
		uc, h := newQuoteRouter(t)
		r := newRouter()
		r.POST("/v1/quotes/:id/convert", h.Convert)

		uc.EXPECT().Convert(gomock.Any(), "q-1").Return(entities.Order{
			ID:            "o-1",
			QuoteID:       "q-1",
			Status:        entities.OrderStatusPendingDeposit,
			DepositAmount: decimal.RequireFromString("2185875"),
			DepositStatus: entities.PaymentStatePending,
		}, nil)

		w := serve(r, http.MethodPost, "/v1/quotes/q-1/convert", "")
		expectStatus(t, w, http.StatusCreated)
		body := decodeBody(t, w)
		deposit, _ := body["deposit"].(map[string]any)
		if body["status"] != "pending_deposit" || deposit["amount"] != "2185875" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestQuoteHandler_Export(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		uc, h := newQuoteRouter(t)
		r := newRouter()
		r.GET("/v1/quotes/:id/export", h.Export)

		uc.EXPECT().Export(gomock.Any(), "q-1").Return("COT-1.xlsx", []byte("PK"), nil)

		w := serve(r, http.MethodGet, "/v1/quotes/q-1/export", "")
		expectStatus(t, w, http.StatusOK)
		if w.Header().Get("Content-Type") != xlsxContentType {
			t.Fatalf("unexpected content type %q", w.Header().Get("Content-Type"))
		}
		if w.Header().Get("Content-Disposition") != `attachment; filename="COT-1.xlsx"` {
			t.Fatalf("unexpected disposition %q", w.Header().Get("Content-Disposition"))
		}
	})

	t.Run("exporter unavailable", func(t *testing.T) {
		uc, h := newQuoteRouter(t)
		r := newRouter()
		r.GET("/v1/quotes/:id/export", h.Export)

		uc.EXPECT().Export(gomock.Any(), "q-1").Return("", nil, usecase.ErrExporterNotConfigured)

		w := serve(r, http.MethodGet, "/v1/quotes/q-1/export", "")
		expectStatus(t, w, http.StatusServiceUnavailable)
	})
}

func TestQuoteHandler_ExpireDue(t *testing.T) {
	uc, h := newQuoteRouter(t)
	r := newRouter()
	r.POST("/v1/quotes/expire", h.ExpireDue)

	uc.EXPECT().ExpireDue(gomock.Any()).Return([]entities.Quote{{ID: "q-1", Status: entities.QuoteStatusExpired}}, nil)

	w := serve(r, http.MethodPost, "/v1/quotes/expire", "")
	expectStatus(t, w, http.StatusOK)
	expired, ok := decodeBody(t, w)["expired"].([]any)
	if !ok || len(expired) != 1 {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
