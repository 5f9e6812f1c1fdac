package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// CheckStatus tracks a check (cheque / echeq) held in the company portfolio.
type CheckStatus string

const (
	CheckStatusInPortfolio CheckStatus = "in_portfolio"
	CheckStatusDeposited   CheckStatus = "deposited"
	CheckStatusCashed      CheckStatus = "cashed"
	CheckStatusEndorsed    CheckStatus = "endorsed"
	CheckStatusRejected    CheckStatus = "rejected"
)

// CheckStateMachine: a check leaves the portfolio exactly once.
var CheckStateMachine = NewStateMachine("check", map[CheckStatus][]CheckStatus{
	CheckStatusInPortfolio: {CheckStatusDeposited, CheckStatusCashed, CheckStatusEndorsed, CheckStatusRejected},
	CheckStatusDeposited:   {},
	CheckStatusCashed:      {},
	CheckStatusEndorsed:    {},
	CheckStatusRejected:    {},
})

// Check is created by a cheque/echeq payment.
//
// Storage model (DynamoDB):
//   - PK: id
//   - GSI (status-index): status
type Check struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"order_id"`
	PaymentID  string          `json:"payment_id"`
	Electronic bool            `json:"electronic"`
	Bank       string          `json:"bank"`
	Number     string          `json:"number"`
	DueDate    time.Time       `json:"due_date"`
	Holder     string          `json:"holder"`
	HolderCUIT string          `json:"holder_cuit"`
	Amount     decimal.Decimal `json:"amount"`
	Status     CheckStatus     `json:"status"`
	EndorsedTo string          `json:"endorsed_to,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	Version    int             `json:"version"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	ResolvedAt *time.Time      `json:"resolved_at,omitempty"`
}

// CheckDetails is what the payer provides for a check-based payment.
type CheckDetails struct {
	Bank    string
	Number  string
	DueDate time.Time
	Holder  string
	CUIT    string
}

func (d CheckDetails) Validate() error {
	switch {
	case d.Bank == "":
		return NewDomainError(KindInvalidInput, "check_bank is required for check payments")
	case d.Number == "":
		return NewDomainError(KindInvalidInput, "check_number is required for check payments")
	case d.DueDate.IsZero():
		return NewDomainError(KindInvalidInput, "check_date is required for check payments")
	case d.Holder == "":
		return NewDomainError(KindInvalidInput, "check_holder is required for check payments")
	case d.CUIT == "":
		return NewDomainError(KindInvalidInput, "check_cuit is required for check payments")
	}
	return nil
}

func NewCheck(id string, p Payment, d CheckDetails, now time.Time) Check {
	return Check{
		ID:         id,
		OrderID:    p.OrderID,
		PaymentID:  p.ID,
		Electronic: p.Method == PaymentMethodEcheq,
		Bank:       d.Bank,
		Number:     d.Number,
		DueDate:    d.DueDate,
		Holder:     d.Holder,
		HolderCUIT: d.CUIT,
		Amount:     p.Amount,
		Status:     CheckStatusInPortfolio,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// MoveTo takes the check out of the portfolio. Endorsing requires the endorsee.
func (c *Check) MoveTo(target CheckStatus, endorsedTo, notes string, now time.Time) error {
	next, err := CheckStateMachine.Transition(c.Status, target)
	if err != nil {
		return err
	}
	if next == CheckStatusEndorsed && endorsedTo == "" {
		return NewDomainError(KindInvalidInput, "endorsed_to is required to endorse check %s", c.Number)
	}
	c.Status = next
	c.EndorsedTo = endorsedTo
	c.Notes = notes
	c.UpdatedAt = now
	c.ResolvedAt = &now
	return nil
}
