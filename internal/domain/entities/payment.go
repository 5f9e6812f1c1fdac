package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus is the processing outcome of a registered payment.
//
// Offline methods (transferencia, efectivo, cheque, echeq) are registered already approved;
// only MercadoPago charges can come back pending or denied.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// Payment is one half of an order's deposit/balance split.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI1 (order_id-index): order_id
//
// MercadoPago payload:
//   - MPPayloadRaw keeps the provider response body for audit.
//   - MPPayload is the parsed representation, handy for querying.
type Payment struct {
	ID      string          `json:"id"`
	OrderID string          `json:"order_id"`
	Type    PaymentType     `json:"payment_type"`
	Method  PaymentMethod   `json:"method"`
	Amount  decimal.Decimal `json:"amount"`
	Status  PaymentStatus   `json:"status"`
	CheckID string          `json:"check_id,omitempty"`
	Date    time.Time       `json:"date"`

	MPPayloadRaw json.RawMessage        `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]interface{} `json:"mp_payload,omitempty"`
}
