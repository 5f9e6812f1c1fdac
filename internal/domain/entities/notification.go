package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

type NotificationKind string

const (
	NotificationQuoteSent          NotificationKind = "quote.sent"
	NotificationQuoteConverted     NotificationKind = "quote.converted"
	NotificationOrderStatusChanged NotificationKind = "order.status_changed"
	NotificationPaymentRegistered  NotificationKind = "order.payment_registered"
	NotificationOrderDispatched    NotificationKind = "order.dispatched"
)

// Notification is a closed set of events; only the types in this file implement it.
type Notification interface {
	Kind() NotificationKind
	AggregateID() string
	notification()
}

type QuoteSent struct {
	QuoteID     string          `json:"quote_id"`
	QuoteNumber string          `json:"quote_number"`
	ClientID    string          `json:"client_id"`
	Total       decimal.Decimal `json:"total"`
	ValidUntil  time.Time       `json:"valid_until"`
}

type QuoteConverted struct {
	QuoteID       string          `json:"quote_id"`
	QuoteNumber   string          `json:"quote_number"`
	OrderID       string          `json:"order_id"`
	OrderNumber   string          `json:"order_number"`
	ClientID      string          `json:"client_id"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
}

type OrderStatusChanged struct {
	OrderID     string      `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	From        OrderStatus `json:"from"`
	To          OrderStatus `json:"to"`
	Notes       string      `json:"notes,omitempty"`
}

type PaymentRegistered struct {
	OrderID   string          `json:"order_id"`
	PaymentID string          `json:"payment_id"`
	Type      PaymentType     `json:"payment_type"`
	Method    PaymentMethod   `json:"method"`
	Amount    decimal.Decimal `json:"amount"`
	CheckID   string          `json:"check_id,omitempty"`
}

type OrderDispatched struct {
	OrderID     string             `json:"order_id"`
	OrderNumber string             `json:"order_number"`
	VehicleID   string             `json:"vehicle_id,omitempty"`
	Documents   []DispatchDocument `json:"documents,omitempty"`
	Errors      []string           `json:"errors,omitempty"`
}

func (QuoteSent) Kind() NotificationKind          { return NotificationQuoteSent }
func (QuoteConverted) Kind() NotificationKind     { return NotificationQuoteConverted }
func (OrderStatusChanged) Kind() NotificationKind { return NotificationOrderStatusChanged }
func (PaymentRegistered) Kind() NotificationKind  { return NotificationPaymentRegistered }
func (OrderDispatched) Kind() NotificationKind    { return NotificationOrderDispatched }

func (n QuoteSent) AggregateID() string          { return n.QuoteID }
func (n QuoteConverted) AggregateID() string     { return n.QuoteID }
func (n OrderStatusChanged) AggregateID() string { return n.OrderID }
func (n PaymentRegistered) AggregateID() string  { return n.OrderID }
func (n OrderDispatched) AggregateID() string    { return n.OrderID }

func (QuoteSent) notification()          {}
func (QuoteConverted) notification()     {}
func (OrderStatusChanged) notification() {}
func (PaymentRegistered) notification()  {}
func (OrderDispatched) notification()    {}

// NotificationEnvelope is the wire shape published to subscribers.
type NotificationEnvelope struct {
	Kind        NotificationKind `json:"kind"`
	AggregateID string           `json:"aggregate_id"`
	OccurredAt  time.Time        `json:"occurred_at"`
	Payload     Notification     `json:"payload"`
}

func NewNotificationEnvelope(n Notification, at time.Time) NotificationEnvelope {
	return NotificationEnvelope{
		Kind:        n.Kind(),
		AggregateID: n.AggregateID(),
		OccurredAt:  at,
		Payload:     n,
	}
}
