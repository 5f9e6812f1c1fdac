package response

import (
	"time"

	"cartonera/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type PaymentResponse struct {
	PaymentID   string          `json:"payment_id"`
	OrderID     string          `json:"order_id"`
	PaymentType string          `json:"payment_type"`
	Method      string          `json:"method"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	CheckID     string          `json:"check_id,omitempty"`
	Date        time.Time       `json:"date"`

	MPPayload map[string]interface{} `json:"mp_payload,omitempty"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		PaymentID:   p.ID,
		OrderID:     p.OrderID,
		PaymentType: string(p.Type),
		Method:      string(p.Method),
		Amount:      p.Amount,
		Status:      string(p.Status),
		CheckID:     p.CheckID,
		Date:        p.Date,
		MPPayload:   p.MPPayload,
	}
}

func FromPayments(ps []entities.Payment) []PaymentResponse {
	out := make([]PaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromPayment(p))
	}
	return out
}

type RegisterPaymentResponse struct {
	Order   OrderResponse   `json:"order"`
	Payment PaymentResponse `json:"payment"`
}
