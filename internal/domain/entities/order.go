package entities

import (
	"time"

	"cartonera/internal/domain/geometry"

	"github.com/shopspring/decimal"
)

// OrderStatus is the production and logistics lifecycle of an order.
type OrderStatus string

const (
	OrderStatusPendingDeposit OrderStatus = "pending_deposit"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusInProduction   OrderStatus = "in_production"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusShipped        OrderStatus = "shipped"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// OrderStateMachine only moves forward one step at a time; cancellation is possible
// until delivery.
var OrderStateMachine = NewStateMachine("order", map[OrderStatus][]OrderStatus{
	OrderStatusPendingDeposit: {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:      {OrderStatusInProduction, OrderStatusCancelled},
	OrderStatusInProduction:   {OrderStatusReady, OrderStatusCancelled},
	OrderStatusReady:          {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:        {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:      {},
	OrderStatusCancelled:      {},
})

// PaymentState tracks each half of the 50/50 split.
type PaymentState string

const (
	PaymentStatePending PaymentState = "pending"
	PaymentStatePaid    PaymentState = "paid"
)

type PaymentType string

const (
	PaymentTypeDeposit PaymentType = "deposit"
	PaymentTypeBalance PaymentType = "balance"
)

func (t PaymentType) IsValid() bool {
	return t == PaymentTypeDeposit || t == PaymentTypeBalance
}

type PaymentMethod string

const (
	PaymentMethodTransferencia PaymentMethod = "transferencia"
	PaymentMethodCheque        PaymentMethod = "cheque"
	PaymentMethodEfectivo      PaymentMethod = "efectivo"
	PaymentMethodEcheq         PaymentMethod = "echeq"
	PaymentMethodMercadoPago   PaymentMethod = "mercadopago"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodTransferencia, PaymentMethodCheque, PaymentMethodEfectivo, PaymentMethodEcheq, PaymentMethodMercadoPago:
		return true
	}
	return false
}

// IsCheck is true for paper and electronic checks, which go to the check portfolio.
func (m PaymentMethod) IsCheck() bool {
	return m == PaymentMethodCheque || m == PaymentMethodEcheq
}

type StatusChange struct {
	From  OrderStatus `json:"from"`
	To    OrderStatus `json:"to"`
	At    time.Time   `json:"at"`
	Notes string      `json:"notes,omitempty"`
}

type DocumentKind string

const (
	DocumentInvoice     DocumentKind = "invoice"
	DocumentRemito      DocumentKind = "remito"
	DocumentTaxDocument DocumentKind = "tax_document"
)

// DispatchDocument is paperwork issued by an external system when an order ships.
type DispatchDocument struct {
	Kind      DocumentKind `json:"kind"`
	Reference string       `json:"reference"`
	URL       string       `json:"url,omitempty"`
	IssuedAt  time.Time    `json:"issued_at"`
}

// Order is created once from an approved quote and never deleted.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (quote_id-index): quote_id
//   - version guards every read-modify-write
type Order struct {
	ID          string `json:"id"`
	OrderNumber string `json:"order_number"`
	QuoteID     string `json:"quote_id"`
	QuoteNumber string `json:"quote_number"`
	ClientID    string `json:"client_id"`
	ClientName  string `json:"client_name,omitempty"`

	Items []LineItem `json:"items"`

	TotalM2      decimal.Decimal `json:"total_m2"`
	PricePerM2   decimal.Decimal `json:"price_per_m2"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	PrintingCost decimal.Decimal `json:"printing_cost"`
	DieCutCost   decimal.Decimal `json:"die_cut_cost"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Total        decimal.Decimal `json:"total"`

	DepositAmount decimal.Decimal `json:"deposit_amount"`
	DepositStatus PaymentState    `json:"deposit_status"`
	DepositMethod PaymentMethod   `json:"deposit_method,omitempty"`
	DepositPaidAt *time.Time      `json:"deposit_paid_at,omitempty"`
	BalanceAmount decimal.Decimal `json:"balance_amount"`
	BalanceStatus PaymentState    `json:"balance_status"`
	BalanceMethod PaymentMethod   `json:"balance_method,omitempty"`
	BalancePaidAt *time.Time      `json:"balance_paid_at,omitempty"`

	Status OrderStatus `json:"status"`

	QuantitiesConfirmed   bool            `json:"quantities_confirmed"`
	QuantitiesConfirmedAt *time.Time      `json:"quantities_confirmed_at,omitempty"`
	DeliveredTotalM2      decimal.Decimal `json:"delivered_total_m2"`
	OriginalSubtotal      decimal.Decimal `json:"original_subtotal"`
	OriginalTotal         decimal.Decimal `json:"original_total"`

	VehicleID    string             `json:"vehicle_id,omitempty"`
	Documents    []DispatchDocument `json:"documents,omitempty"`
	DispatchedAt *time.Time         `json:"dispatched_at,omitempty"`
	DeliveredAt  *time.Time         `json:"delivered_at,omitempty"`
	CancelledAt  *time.Time         `json:"cancelled_at,omitempty"`
	CancelReason string             `json:"cancel_reason,omitempty"`

	History []StatusChange `json:"history,omitempty"`

	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SplitDeposit returns the 50/50 split; rounding differences land on the balance.
func SplitDeposit(total decimal.Decimal) (deposit, balance decimal.Decimal) {
	deposit = total.Div(decimal.NewFromInt(2)).Round(2)
	balance = total.Sub(deposit)
	return deposit, balance
}

// NewOrderFromQuote builds the order for an approved quote. Items are deep copies so
// reconciling the order never alters the quote.
func NewOrderFromQuote(orderID, orderNumber string, q Quote, now time.Time) (Order, error) {
	if err := q.CanConvert(); err != nil {
		return Order{}, err
	}
	deposit, balance := SplitDeposit(q.Total)
	return Order{
		ID:               orderID,
		OrderNumber:      orderNumber,
		QuoteID:          q.ID,
		QuoteNumber:      q.QuoteNumber,
		ClientID:         q.ClientID,
		ClientName:       q.ClientName,
		Items:            CopyLineItems(q.Items),
		TotalM2:          q.TotalM2,
		PricePerM2:       q.PricePerM2,
		Subtotal:         q.Subtotal,
		PrintingCost:     q.PrintingCost,
		DieCutCost:       q.DieCutCost,
		ShippingCost:     q.ShippingCost,
		Total:            q.Total,
		DepositAmount:    deposit,
		DepositStatus:    PaymentStatePending,
		BalanceAmount:    balance,
		BalanceStatus:    PaymentStatePending,
		Status:           OrderStatusPendingDeposit,
		OriginalSubtotal: q.Subtotal,
		OriginalTotal:    q.Total,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// FixedCosts are never scaled by reconciliation.
func (o Order) FixedCosts() decimal.Decimal {
	return o.PrintingCost.Add(o.DieCutCost).Add(o.ShippingCost)
}

func (o Order) ValidTransitions() []string {
	return OrderStateMachine.ValidTransitions(o.Status)
}

// TransitionTo applies a status change after checking the table and the guards of the
// target state. A rejected call leaves the order untouched.
func (o *Order) TransitionTo(target OrderStatus, notes string, now time.Time) error {
	if _, err := OrderStateMachine.Transition(o.Status, target); err != nil {
		return err
	}
	switch target {
	case OrderStatusConfirmed:
		if o.DepositStatus != PaymentStatePaid {
			return NewDomainError(KindDepositRequired, "order %s cannot be confirmed until the deposit is paid", o.OrderNumber).
				WithTransitions(o.ValidTransitions())
		}
	case OrderStatusShipped:
		if !o.QuantitiesConfirmed {
			return NewDomainError(KindQuantitiesNotConfirmed, "order %s cannot ship before delivered quantities are confirmed", o.OrderNumber).
				WithTransitions(o.ValidTransitions())
		}
	}

	o.History = append(o.History, StatusChange{From: o.Status, To: target, At: now, Notes: notes})
	o.Status = target
	o.UpdatedAt = now
	switch target {
	case OrderStatusShipped:
		o.DispatchedAt = &now
	case OrderStatusDelivered:
		o.DeliveredAt = &now
	case OrderStatusCancelled:
		o.CancelledAt = &now
		o.CancelReason = notes
	}
	return nil
}

// RegisterPayment marks one half of the split as paid and returns the amount due for it.
func (o *Order) RegisterPayment(paymentType PaymentType, method PaymentMethod, now time.Time) (decimal.Decimal, error) {
	if !paymentType.IsValid() {
		return decimal.Zero, NewDomainError(KindInvalidInput, "unknown payment type %q", paymentType)
	}
	if !method.IsValid() {
		return decimal.Zero, NewDomainError(KindInvalidInput, "unknown payment method %q", method)
	}
	if o.Status == OrderStatusCancelled {
		return decimal.Zero, NewDomainError(KindInvalidState, "order %s is cancelled", o.OrderNumber)
	}

	switch paymentType {
	case PaymentTypeDeposit:
		if o.DepositStatus == PaymentStatePaid {
			return decimal.Zero, NewDomainError(KindInvalidState, "deposit for order %s is already paid", o.OrderNumber)
		}
		o.DepositStatus = PaymentStatePaid
		o.DepositMethod = method
		o.DepositPaidAt = &now
		o.UpdatedAt = now
		return o.DepositAmount, nil
	default:
		if o.DepositStatus != PaymentStatePaid {
			return decimal.Zero, NewDomainError(KindDepositRequired, "balance for order %s cannot be registered before the deposit", o.OrderNumber)
		}
		if o.BalanceStatus == PaymentStatePaid {
			return decimal.Zero, NewDomainError(KindInvalidState, "balance for order %s is already paid", o.OrderNumber)
		}
		o.BalanceStatus = PaymentStatePaid
		o.BalanceMethod = method
		o.BalancePaidAt = &now
		o.UpdatedAt = now
		return o.BalanceAmount, nil
	}
}

// DeliveredQuantity is the count actually produced for one order item.
type DeliveredQuantity struct {
	ItemID   string
	Quantity int
}

// Reconciliation reports how confirmed quantities re-priced the order.
type Reconciliation struct {
	OriginalTotalM2  decimal.Decimal
	DeliveredTotalM2 decimal.Decimal
	AdjustmentFactor decimal.Decimal
	OriginalSubtotal decimal.Decimal
	NewSubtotal      decimal.Decimal
	FixedCosts       decimal.Decimal
	OriginalTotal    decimal.Decimal
	NewTotal         decimal.Decimal
	DepositAmount    decimal.Decimal
	NewBalance       decimal.Decimal
	PrecisionPercent decimal.Decimal
}

// ConfirmQuantities records delivered counts and re-prices the order proportionally to the
// delivered area. Items not listed are taken as delivered in full. It can run once, only
// while the order is ready; any failure leaves the order untouched.
func (o *Order) ConfirmQuantities(delivered []DeliveredQuantity, now time.Time) (Reconciliation, error) {
	if o.QuantitiesConfirmed {
		return Reconciliation{}, NewDomainError(KindAlreadyConfirmed, "quantities for order %s were already confirmed", o.OrderNumber)
	}
	if o.Status != OrderStatusReady {
		return Reconciliation{}, NewDomainError(KindInvalidState, "quantities can only be confirmed when the order is ready (status %s)", o.Status).
			WithTransitions(o.ValidTransitions())
	}

	known := make(map[string]bool, len(o.Items))
	for _, it := range o.Items {
		known[it.ID] = true
	}
	byItem := make(map[string]int, len(delivered))
	for _, d := range delivered {
		if !known[d.ItemID] {
			return Reconciliation{}, NewDomainError(KindInvalidInput, "item %q does not belong to order %s", d.ItemID, o.OrderNumber)
		}
		if _, dup := byItem[d.ItemID]; dup {
			return Reconciliation{}, NewDomainError(KindInvalidInput, "item %q listed more than once", d.ItemID)
		}
		if d.Quantity < 0 {
			return Reconciliation{}, NewDomainError(KindInvalidInput, "delivered quantity for item %q cannot be negative", d.ItemID)
		}
		byItem[d.ItemID] = d.Quantity
	}

	originalM2 := SumItemsM2(o.Items)
	if !originalM2.IsPositive() {
		return Reconciliation{}, NewDomainError(KindInvalidInput, "order %s has no area to reconcile", o.OrderNumber)
	}

	items := CopyLineItems(o.Items)
	areas := make([]decimal.Decimal, 0, len(items))
	for i := range items {
		qty := items[i].Quantity
		if q, ok := byItem[items[i].ID]; ok {
			qty = q
		}
		items[i].QuantityDelivered = &qty
		areas = append(areas, items[i].DeliveredM2())
	}
	deliveredM2 := geometry.SumAreas(areas...)

	newSubtotal := o.Subtotal.Mul(deliveredM2).Div(originalM2).Round(2)
	fixed := o.FixedCosts()
	newTotal := newSubtotal.Add(fixed).Round(2)

	deposit := o.DepositAmount
	balance := o.BalanceAmount
	if o.DepositStatus == PaymentStatePaid {
		if o.BalanceStatus != PaymentStatePaid {
			balance = decimal.Max(decimal.Zero, newTotal.Sub(deposit))
		}
	} else {
		deposit, balance = SplitDeposit(newTotal)
	}

	rec := Reconciliation{
		OriginalTotalM2:  originalM2,
		DeliveredTotalM2: deliveredM2,
		AdjustmentFactor: deliveredM2.Div(originalM2).Round(4),
		OriginalSubtotal: o.Subtotal,
		NewSubtotal:      newSubtotal,
		FixedCosts:       fixed,
		OriginalTotal:    o.Total,
		NewTotal:         newTotal,
		DepositAmount:    deposit,
		NewBalance:       balance,
		PrecisionPercent: deliveredM2.Div(originalM2).Mul(decimal.NewFromInt(100)).Round(2),
	}

	o.OriginalSubtotal = o.Subtotal
	o.OriginalTotal = o.Total
	o.Items = items
	o.DeliveredTotalM2 = deliveredM2
	o.Subtotal = newSubtotal
	o.Total = newTotal
	o.DepositAmount = deposit
	o.BalanceAmount = balance
	o.QuantitiesConfirmed = true
	o.QuantitiesConfirmedAt = &now
	o.UpdatedAt = now
	return rec, nil
}

// Dispatch ships a ready, reconciled order.
func (o *Order) Dispatch(vehicleID, notes string, now time.Time) error {
	if err := o.TransitionTo(OrderStatusShipped, notes, now); err != nil {
		return err
	}
	o.VehicleID = vehicleID
	return nil
}

func (o *Order) AttachDocuments(docs []DispatchDocument, now time.Time) {
	if len(docs) == 0 {
		return
	}
	o.Documents = append(o.Documents, docs...)
	o.UpdatedAt = now
}
