package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"cartonera/internal/adapter/http/handlers/mocks"
	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newOrderRouter(t *testing.T) (*mocks.MockIOrderUseCase, *OrderHandler) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIOrderUseCase(ctrl)
	return uc, NewOrderHandler(uc)
}

func TestOrderHandler_GetByID(t *testing.T) {
	uc, h := newOrderRouter(t)
	r := newRouter()
	r.GET("/v1/orders/:id", h.GetByID)

	uc.EXPECT().GetByID(gomock.Any(), "o-404").Return(entities.Order{}, usecase.ErrOrderNotFound)

	w := serve(r, http.MethodGet, "/v1/orders/o-404", "")
	expectStatus(t, w, http.StatusNotFound)
	if body := decodeBody(t, w); body["code"] != "ORDER_NOT_FOUND" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestOrderHandler_TransitionStatus(t *testing.T) {
	t.Run("status is required", func(t *testing.T) {
		_, h := newOrderRouter(t)
		r := newRouter()
		r.PATCH("/v1/orders/:id/status", h.TransitionStatus)

		w := serve(r, http.MethodPatch, "/v1/orders/o-1/status", `{"notes":"x"}`)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("skipping a state returns valid transitions", func(t *testing.T) {
		uc, h := newOrderRouter(t)
		r := newRouter()
		r.PATCH("/v1/orders/:id/status", h.TransitionStatus)

		_, transitionErr := entities.OrderStateMachine.Transition(entities.OrderStatusPendingDeposit, entities.OrderStatusInProduction)
		uc.EXPECT().TransitionStatus(gomock.Any(), "o-1", entities.OrderStatusInProduction, "").Return(entities.Order{}, transitionErr)

		w := serve(r, http.MethodPatch, "/v1/orders/o-1/status", `{"status":"in_production"}`)
		expectStatus(t, w, http.StatusConflict)
		body := decodeBody(t, w)
		transitions, _ := body["valid_transitions"].([]any)
		if body["code"] != "INVALID_STATE" || fmt.Sprint(transitions) != "[confirmed cancelled]" {
			t.Fatalf("unexpected body: %v", body)
		}
		if body["error"] == "" {
			t.Fatalf("missing message: %v", body)
		}
	})

	t.Run("deposit required", func(t *testing.T) {
		uc, h := newOrderRouter(t)
		r := newRouter()
		r.PATCH("/v1/orders/:id/status", h.TransitionStatus)

		uc.EXPECT().TransitionStatus(gomock.Any(), "o-1", entities.OrderStatusConfirmed, "").
			Return(entities.Order{}, entities.NewDomainError(entities.KindDepositRequired, "deposit first").WithTransitions([]string{"confirmed", "cancelled"}))

		w := serve(r, http.MethodPatch, "/v1/orders/o-1/status", `{"status":"confirmed"}`)
		expectStatus(t, w, http.StatusConflict)
		if body := decodeBody(t, w); body["code"] != "DEPOSIT_REQUIRED" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("success", func(t *testing.T) {
		uc, h := newOrderRouter(t)
		r := newRouter()
		r.PATCH("/v1/orders/:id/status", h.TransitionStatus)

		uc.EXPECT().TransitionStatus(gomock.Any(), "o-1", entities.OrderStatusInProduction, "planta 2").
			Return(entities.Order{ID: "o-1", Status: entities.OrderStatusInProduction, Version: 3}, nil)

		w := serve(r, http.MethodPatch, "/v1/orders/o-1/status", `{"status":"in_production","notes":"planta 2"}`)
		expectStatus(t, w, http.StatusOK)
		body := decodeBody(t, w)
		if body["status"] != "in_production" || body["version"] != float64(3) {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestOrderHandler_RegisterPayment(t *testing.T) {
	t.Run("cheque without check fields", func(t *testing.T) {
		_, h := newOrderRouter(t)
		r := newRouter()
		r.POST("/v1/orders/:id/payments", h.RegisterPayment)

		w := serve(r, http.MethodPost, "/v1/orders/o-1/payments", `{"payment_type":"deposit","method":"cheque","check_bank":"Galicia"}`)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("unknown payment type", func(t *testing.T) {
		_, h := newOrderRouter(t)
		r := newRouter()
		r.POST("/v1/orders/:id/payments", h.RegisterPayment)

		w := serve(r, http.MethodPost, "/v1/orders/o-1/payments", `{"payment_type":"tip","method":"efectivo"}`)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("balance before deposit", func(t *testing.T) {
		uc, h := newOrderRouter(t)
		r := newRouter()
		r.POST("/v1/orders/:id/payments", h.RegisterPayment)

		uc.EXPECT().RegisterPayment(gomock.Any(), "o-1", gomock.Any()).
			Return(entities.Order{}, entities.Payment{}, entities.NewDomainError(entities.KindDepositRequired, "deposit first"))

		w := serve(r, http.MethodPost, "/v1/orders/o-1/payments", `{"payment_type":"balance","method":"transferencia"}`)
		expectStatus(t, w, http.StatusConflict)
	})

	t.Run("declined online payment", func(t *testing.T) {
		uc, h := newOrderRouter(t)
		r := newRouter()
		r.POST("/v1/orders/:id/payments", h.RegisterPayment)

		uc.EXPECT().RegisterPayment(gomock.Any(), "o-1", gomock.Any()).
			Return(entities.Order{}, entities.Payment{}, fmt.Errorf("%w: provider status rejected", usecase.ErrPaymentNotApproved))

		w := serve(r, http.MethodPost, "/v1/orders/o-1/payments", `{"payment_type":"deposit","method":"mercadopago","mp_payload":{"token":"x"}}`)
		expectStatus(t, w, http.StatusPaymentRequired)
	})

	t.Run("cheque deposit", func(t *testing.T) {
		uc, h := newOrderRouter(t)
		r := newRouter()
		r.POST("/v1/orders/:id/payments", h.RegisterPayment)

		uc.EXPECT().RegisterPayment(gomock.Any(), "o-1", gomock.Any()).DoAndReturn(
			func(_ any, _ string, in usecase.RegisterPaymentInput) (entities.Order, entities.Payment, error) {
				if in.Type != entities.PaymentTypeDeposit || in.Method != entities.PaymentMethodCheque || in.Check == nil {
					t.Fatalf("unexpected input: %+v", in)
				}
				if in.Check.CUIT != "30-71234567-8" || in.Check.DueDate.Format("2006-01-02") != "2026-11-30" {
					t.Fatalf("unexpected check: %+v", in.Check)
				}
				amount := decimal.RequireFromString("2185875")
				return entities.Order{ID: "o-1", Status: entities.OrderStatusPendingDeposit, DepositAmount: amount, DepositStatus: entities.PaymentStatePaid},
					entities.Payment{ID: "pay-1", OrderID: "o-1", Type: in.Type, Method: in.Method, Amount: amount, Status: entities.PaymentStatusApproved, CheckID: "chk-1"},
					nil
			})

		w := serve(r, http.MethodPost, "/v1/orders/o-1/payments", `{
			"payment_type":"deposit","method":"cheque",
			"check_bank":"Banco Nación","check_number":"00012345","check_date":"2026-11-30",
			"check_holder":"Envases del Sur SA","check_cuit":"30-71234567-8"}`)
		expectStatus(t, w, http.StatusCreated)
		body := decodeBody(t, w)
		payment, _ := body["payment"].(map[string]any)
		order, _ := body["order"].(map[string]any)
		deposit, _ := order["deposit"].(map[string]any)
		if payment["check_id"] != "chk-1" || deposit["status"] != "paid" {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}

func TestOrderHandler_ListPayments(t *testing.T) {
	uc, h := newOrderRouter(t)
	r := newRouter()
	r.GET("/v1/orders/:id/payments", h.ListPayments)

	uc.EXPECT().ListPayments(gomock.Any(), "o-1").Return([]entities.Payment{{ID: "pay-1"}, {ID: "pay-2"}}, nil)

	w := serve(r, http.MethodGet, "/v1/orders/o-1/payments", "")
	expectStatus(t, w, http.StatusOK)
	if w.Body.String()[0] != '[' {
		t.Fatalf("expected a list: %s", w.Body.String())
	}
}

func TestOrderHandler_ConfirmQuantities(t *testing.T) {
	t.Run("quantity_delivered is required", func(t *testing.T) {
		_, h := newOrderRouter(t)
		r := newRouter()
		r.POST("/v1/orders/:id/confirm-quantities", h.ConfirmQuantities)

		w := serve(r, http.MethodPost, "/v1/orders/o-1/confirm-quantities", `{"items":[{"id":"item-1"}]}`)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("second confirmation", func(t *testing.T) {
		uc, h := newOrderRouter(t)
		r := newRouter()
		r.POST("/v1/orders/:id/confirm-quantities", h.ConfirmQuantities)

		uc.EXPECT().ConfirmQuantities(gomock.Any(), "o-1", []entities.DeliveredQuantity{{ItemID: "item-1", Quantity: 7000}}).
			Return(entities.Order{}, entities.Reconciliation{}, entities.NewDomainError(entities.KindAlreadyConfirmed, "already confirmed"))

		w := serve(r, http.MethodPost, "/v1/orders/o-1/confirm-quantities", `{"items":[{"id":"item-1","quantity_delivered":7000}]}`)
		expectStatus(t, w, http.StatusConflict)
		if body := decodeBody(t, w); body["code"] != "ALREADY_CONFIRMED" {
			t.Fatalf("unexpected body: %v", body)
		}
	})

	t.Run("reconciliation", func(t *testing.T) {
		uc, h := newOrderRouter(t)
		r := newRouter()
		r.POST("/v1/orders/:id/confirm-quantities", h.ConfirmQuantities)

		uc.EXPECT().ConfirmQuantities(gomock.Any(), "o-1", gomock.Any()).Return(
			entities.Order{ID: "o-1", Status: entities.OrderStatusReady, QuantitiesConfirmed: true},
			entities.Reconciliation{
				NewTotal:         decimal.RequireFromString("4080300"),
				NewBalance:       decimal.RequireFromString("1894425"),
				PrecisionPercent: decimal.RequireFromString("93.33"),
			}, nil)

		w := serve(r, http.MethodPost, "/v1/orders/o-1/confirm-quantities", `{"items":[{"id":"item-1","quantity_delivered":7000}]}`)
		expectStatus(t, w, http.StatusOK)
		rec, _ := decodeBody(t, w)["reconciliation"].(map[string]any)
		if rec["new_balance"] != "1894425" || rec["precision_percent"] != "93.33" {
			t.Fatalf("unexpected reconciliation: %v", rec)
		}
	})
}

func TestOrderHandler_Dispatch(t *testing.T) {
	t.Run("quantities not confirmed", func(t *testing.T) {
		uc, h := newOrderRouter(t)
		r := newRouter()
		r.POST("/v1/orders/:id/dispatch", h.Dispatch)

		uc.EXPECT().Dispatch(gomock.Any(), "o-1", gomock.Any()).
			Return(usecase.DispatchResult{}, entities.NewDomainError(entities.KindQuantitiesNotConfirmed, "confirm first"))

		w := serve(r, http.MethodPost, "/v1/orders/o-1/dispatch", "")
		expectStatus(t, w, http.StatusConflict)
	})

	t.Run("paperwork errors still 200", func(t *testing.T) {
		uc, h := newOrderRouter(t)
		r := newRouter()
		r.POST("/v1/orders/:id/dispatch", h.Dispatch)

		uc.EXPECT().Dispatch(gomock.Any(), "o-1", usecase.DispatchInput{VehicleID: "AB123CD", Invoice: true, TaxDocument: true}).
			Return(usecase.DispatchResult{
				Order:     entities.Order{ID: "o-1", Status: entities.OrderStatusShipped},
				Documents: []entities.DispatchDocument{{Kind: entities.DocumentInvoice, Reference: "A-0001-00000042"}},
				Errors:    []string{"tax_document: service returned 503"},
			}, nil)

		w := serve(r, http.MethodPost, "/v1/orders/o-1/dispatch", `{"vehicle_id":" AB123CD ","issue_invoice":true,"issue_tax_document":true}`)
		expectStatus(t, w, http.StatusOK)
		body := decodeBody(t, w)
		errs, _ := body["errors"].([]any)
		docs, _ := body["documents"].([]any)
		if len(errs) != 1 || len(docs) != 1 {
			t.Fatalf("unexpected body: %v", body)
		}
	})
}
