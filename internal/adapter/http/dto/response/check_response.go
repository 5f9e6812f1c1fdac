package response

import (
	"time"

	"cartonera/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type CheckResponse struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	PaymentID  string          `json:"payment_id"`
	Electronic bool            `json:"electronic"`
	Bank       string          `json:"bank"`
	Number     string          `json:"number"`
	DueDate    string          `json:"due_date"`
	Holder     string          `json:"holder"`
	HolderCUIT string          `json:"holder_cuit"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	EndorsedTo string          `json:"endorsed_to,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	Version    int             `json:"version"`
	CreatedAt  time.Time       `json:"created_at"`
	ResolvedAt *time.Time      `json:"resolved_at,omitempty"`
}

func FromCheck(c entities.Check) CheckResponse {
	return CheckResponse{
		ID:         c.ID,
		OrderID:    c.OrderID,
		PaymentID:  c.PaymentID,
		Electronic: c.Electronic,
		Bank:       c.Bank,
		Number:     c.Number,
		DueDate:    c.DueDate.Format(time.DateOnly),
		Holder:     c.Holder,
		HolderCUIT: c.HolderCUIT,
		Amount:     c.Amount,
		Status:     string(c.Status),
		EndorsedTo: c.EndorsedTo,
		Notes:      c.Notes,
		Version:    c.Version,
		CreatedAt:  c.CreatedAt,
		ResolvedAt: c.ResolvedAt,
	}
}

func FromChecks(cs []entities.Check) []CheckResponse {
	out := make([]CheckResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, FromCheck(c))
	}
	return out
}
