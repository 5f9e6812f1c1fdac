package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// QuoteStatus is the lifecycle of a quote (cotización).
type QuoteStatus string

const (
	QuoteStatusDraft     QuoteStatus = "draft"
	QuoteStatusSent      QuoteStatus = "sent"
	QuoteStatusApproved  QuoteStatus = "approved"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusExpired   QuoteStatus = "expired"
	QuoteStatusConverted QuoteStatus = "converted"
)

// QuoteStateMachine: expiry is time-triggered, the rest are user actions.
var QuoteStateMachine = NewStateMachine("quote", map[QuoteStatus][]QuoteStatus{
	QuoteStatusDraft:     {QuoteStatusSent, QuoteStatusApproved, QuoteStatusExpired},
	QuoteStatusSent:      {QuoteStatusApproved, QuoteStatusRejected, QuoteStatusExpired},
	QuoteStatusApproved:  {QuoteStatusConverted},
	QuoteStatusRejected:  {},
	QuoteStatusExpired:   {},
	QuoteStatusConverted: {},
})

// Quote is the priced offer sent to a client.
//
// Storage model (DynamoDB):
//   - PK: id
//   - quote_number is unique (generated)
//   - version guards every read-modify-write
type Quote struct {
	ID          string `json:"id"`
	QuoteNumber string `json:"quote_number"`
	ClientID    string `json:"client_id"`
	ClientName  string `json:"client_name,omitempty"`

	Items []LineItem `json:"items"`

	TotalM2      decimal.Decimal `json:"total_m2"`
	PricingTier  string          `json:"pricing_tier"`
	PricePerM2   decimal.Decimal `json:"price_per_m2"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	PrintingCost decimal.Decimal `json:"printing_cost"`
	DieCutCost   decimal.Decimal `json:"die_cut_cost"`
	ShippingCost decimal.Decimal `json:"shipping_cost"`
	Total        decimal.Decimal `json:"total"`

	HasPrinting       bool      `json:"has_printing"`
	HasDieCut         bool      `json:"has_die_cut"`
	FreeShipping      bool      `json:"free_shipping"`
	ShippingNotes     string    `json:"shipping_notes,omitempty"`
	ProductionDays    int       `json:"production_days"`
	EstimatedDelivery time.Time `json:"estimated_delivery"`
	Warnings          []string  `json:"warnings,omitempty"`
	PricingConfigID   string    `json:"pricing_config_id,omitempty"`

	Status             QuoteStatus `json:"status"`
	ValidUntil         time.Time   `json:"valid_until"`
	ConvertedToOrderID string      `json:"converted_to_order_id,omitempty"`
	RejectionReason    string      `json:"rejection_reason,omitempty"`

	Version    int        `json:"version"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	SentAt     *time.Time `json:"sent_at,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
}

// IsPastValidity reports whether now is after the whole valid_until calendar day, the
// date clients are shown.
func (q Quote) IsPastValidity(now time.Time) bool {
	y, m, d := q.ValidUntil.Date()
	return !now.Before(time.Date(y, m, d+1, 0, 0, 0, 0, q.ValidUntil.Location()))
}

func (q *Quote) transition(to QuoteStatus, now time.Time) error {
	next, err := QuoteStateMachine.Transition(q.Status, to)
	if err != nil {
		return err
	}
	q.Status = next
	q.UpdatedAt = now
	return nil
}

func (q *Quote) Send(now time.Time) error {
	if err := q.transition(QuoteStatusSent, now); err != nil {
		return err
	}
	q.SentAt = &now
	return nil
}

// Approve moves a draft or sent quote to approved. A quote past its validity is moved
// to expired instead and QUOTE_EXPIRED is returned; the caller must persist that change.
func (q *Quote) Approve(now time.Time) error {
	if !QuoteStateMachine.CanTransition(q.Status, QuoteStatusApproved) {
		_, err := QuoteStateMachine.Transition(q.Status, QuoteStatusApproved)
		return err
	}
	if q.IsPastValidity(now) {
		if err := q.transition(QuoteStatusExpired, now); err != nil {
			return err
		}
		return NewDomainError(KindQuoteExpired, "quote %s expired on %s", q.QuoteNumber, q.ValidUntil.Format(time.DateOnly))
	}
	if err := q.transition(QuoteStatusApproved, now); err != nil {
		return err
	}
	q.ApprovedAt = &now
	return nil
}

func (q *Quote) Reject(reason string, now time.Time) error {
	if err := q.transition(QuoteStatusRejected, now); err != nil {
		return err
	}
	q.RejectionReason = reason
	return nil
}

// Expire applies the time-triggered transition; it fails if the quote is still valid.
func (q *Quote) Expire(now time.Time) error {
	if !q.IsPastValidity(now) {
		return NewDomainError(KindInvalidState, "quote %s is valid until %s", q.QuoteNumber, q.ValidUntil.Format(time.DateOnly))
	}
	return q.transition(QuoteStatusExpired, now)
}

// CanConvert reports whether the quote may become an order.
func (q Quote) CanConvert() error {
	if q.ConvertedToOrderID != "" || q.Status == QuoteStatusConverted {
		return NewDomainError(KindAlreadyConverted, "quote %s was already converted to order %s", q.QuoteNumber, q.ConvertedToOrderID)
	}
	if q.Status != QuoteStatusApproved {
		return NewDomainError(KindInvalidState, "quote %s must be approved before conversion (status %s)", q.QuoteNumber, q.Status).
			WithTransitions(QuoteStateMachine.ValidTransitions(q.Status))
	}
	return nil
}

// MarkConverted links the order and closes the quote.
func (q *Quote) MarkConverted(orderID string, now time.Time) error {
	if err := q.CanConvert(); err != nil {
		return err
	}
	if err := q.transition(QuoteStatusConverted, now); err != nil {
		return err
	}
	q.ConvertedToOrderID = orderID
	return nil
}
