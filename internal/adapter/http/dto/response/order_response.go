package response

import (
	"time"

	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase"

	"github.com/shopspring/decimal"
)

type PaymentSplitResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Status string          `json:"status"`
	Method string          `json:"method,omitempty"`
	PaidAt *time.Time      `json:"paid_at,omitempty"`
}

type OrderResponse struct {
	ID                    string                      `json:"id"`
	OrderNumber           string                      `json:"order_number"`
	QuoteID               string                      `json:"quote_id"`
	QuoteNumber           string                      `json:"quote_number"`
	ClientID              string                      `json:"client_id"`
	ClientName            string                      `json:"client_name,omitempty"`
	Status                string                      `json:"status"`
	ValidTransitions      []string                    `json:"valid_transitions"`
	Items                 []LineItemResponse          `json:"items"`
	TotalM2               decimal.Decimal             `json:"total_m2"`
	PricePerM2            decimal.Decimal             `json:"price_per_m2"`
	Subtotal              decimal.Decimal             `json:"subtotal"`
	PrintingCost          decimal.Decimal             `json:"printing_cost"`
	DieCutCost            decimal.Decimal             `json:"die_cut_cost"`
	ShippingCost          decimal.Decimal             `json:"shipping_cost"`
	Total                 decimal.Decimal             `json:"total"`
	Deposit               PaymentSplitResponse        `json:"deposit"`
	Balance               PaymentSplitResponse        `json:"balance"`
	QuantitiesConfirmed   bool                        `json:"quantities_confirmed"`
	QuantitiesConfirmedAt *time.Time                  `json:"quantities_confirmed_at,omitempty"`
	DeliveredTotalM2      *decimal.Decimal            `json:"delivered_total_m2,omitempty"`
	OriginalTotal         decimal.Decimal             `json:"original_total"`
	VehicleID             string                      `json:"vehicle_id,omitempty"`
	Documents             []entities.DispatchDocument `json:"documents,omitempty"`
	DispatchedAt          *time.Time                  `json:"dispatched_at,omitempty"`
	DeliveredAt           *time.Time                  `json:"delivered_at,omitempty"`
	CancelledAt           *time.Time                  `json:"cancelled_at,omitempty"`
	CancelReason          string                      `json:"cancel_reason,omitempty"`
	History               []entities.StatusChange     `json:"history,omitempty"`
	Version               int                         `json:"version"`
	CreatedAt             time.Time                   `json:"created_at"`
	UpdatedAt             time.Time                   `json:"updated_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	resp := OrderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		QuoteID:          o.QuoteID,
		QuoteNumber:      o.QuoteNumber,
		ClientID:         o.ClientID,
		ClientName:       o.ClientName,
		Status:           string(o.Status),
		ValidTransitions: o.ValidTransitions(),
		Items:            fromLineItems(o.Items),
		TotalM2:          o.TotalM2,
		PricePerM2:       o.PricePerM2,
		Subtotal:         o.Subtotal,
		PrintingCost:     o.PrintingCost,
		DieCutCost:       o.DieCutCost,
		ShippingCost:     o.ShippingCost,
		Total:            o.Total,
		Deposit: PaymentSplitResponse{
			Amount: o.DepositAmount,
			Status: string(o.DepositStatus),
			Method: string(o.DepositMethod),
			PaidAt: o.DepositPaidAt,
		},
		Balance: PaymentSplitResponse{
			Amount: o.BalanceAmount,
			Status: string(o.BalanceStatus),
			Method: string(o.BalanceMethod),
			PaidAt: o.BalancePaidAt,
		},
		QuantitiesConfirmed:   o.QuantitiesConfirmed,
		QuantitiesConfirmedAt: o.QuantitiesConfirmedAt,
		OriginalTotal:         o.OriginalTotal,
		VehicleID:             o.VehicleID,
		Documents:             o.Documents,
		DispatchedAt:          o.DispatchedAt,
		DeliveredAt:           o.DeliveredAt,
		CancelledAt:           o.CancelledAt,
		CancelReason:          o.CancelReason,
		History:               o.History,
		Version:               o.Version,
		CreatedAt:             o.CreatedAt,
		UpdatedAt:             o.UpdatedAt,
	}
	if o.QuantitiesConfirmed {
		delivered := o.DeliveredTotalM2
		resp.DeliveredTotalM2 = &delivered
	}
	return resp
}

type ReconciliationResponse struct {
	OriginalTotalM2  decimal.Decimal `json:"original_total_m2"`
	DeliveredTotalM2 decimal.Decimal `json:"delivered_total_m2"`
	AdjustmentFactor decimal.Decimal `json:"adjustment_factor"`
	OriginalSubtotal decimal.Decimal `json:"original_subtotal"`
	NewSubtotal      decimal.Decimal `json:"new_subtotal"`
	FixedCosts       decimal.Decimal `json:"fixed_costs"`
	OriginalTotal    decimal.Decimal `json:"original_total"`
	NewTotal         decimal.Decimal `json:"new_total"`
	DepositAmount    decimal.Decimal `json:"deposit_amount"`
	NewBalance       decimal.Decimal `json:"new_balance"`
	PrecisionPercent decimal.Decimal `json:"precision_percent"`
}

type ConfirmQuantitiesResponse struct {
	Order          OrderResponse          `json:"order"`
	Reconciliation ReconciliationResponse `json:"reconciliation"`
}

func FromConfirmation(o entities.Order, r entities.Reconciliation) ConfirmQuantitiesResponse {
	return ConfirmQuantitiesResponse{
		Order: FromOrder(o),
		Reconciliation: ReconciliationResponse{
			OriginalTotalM2:  r.OriginalTotalM2,
			DeliveredTotalM2: r.DeliveredTotalM2,
			AdjustmentFactor: r.AdjustmentFactor,
			OriginalSubtotal: r.OriginalSubtotal,
			NewSubtotal:      r.NewSubtotal,
			FixedCosts:       r.FixedCosts,
			OriginalTotal:    r.OriginalTotal,
			NewTotal:         r.NewTotal,
			DepositAmount:    r.DepositAmount,
			NewBalance:       r.NewBalance,
			PrecisionPercent: r.PrecisionPercent,
		},
	}
}

// DispatchResponse is returned with 200 even when some paperwork failed; Errors lists
// what needs manual follow-up.
type DispatchResponse struct {
	Order     OrderResponse               `json:"order"`
	Documents []entities.DispatchDocument `json:"documents"`
	Errors    []string                    `json:"errors"`
}

func FromDispatch(r usecase.DispatchResult) DispatchResponse {
	docs := r.Documents
	if docs == nil {
		docs = []entities.DispatchDocument{}
	}
	errs := r.Errors
	if errs == nil {
		errs = []string{}
	}
	return DispatchResponse{Order: FromOrder(r.Order), Documents: docs, Errors: errs}
}
