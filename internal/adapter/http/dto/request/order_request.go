package request

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

type OrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}

// PaymentRequest registers the deposit or the balance of an order.
//
// The check_* fields are required for cheque/echeq and rejected for any other method;
// check_date uses YYYY-MM-DD. mp_payload is forwarded to Mercado Pago untouched.
type PaymentRequest struct {
	PaymentType string           `json:"payment_type" binding:"required,oneof=deposit balance"`
	Method      string           `json:"method" binding:"required,oneof=transferencia cheque efectivo echeq mercadopago"`
	Amount      *decimal.Decimal `json:"amount"`
	CheckBank   string           `json:"check_bank"`
	CheckNumber string           `json:"check_number"`
	CheckDate   string           `json:"check_date"`
	CheckHolder string           `json:"check_holder"`
	CheckCUIT   string           `json:"check_cuit"`
	MPPayload   json.RawMessage  `json:"mp_payload"`
}

func (r PaymentRequest) isCheck() bool {
	return entities.PaymentMethod(r.Method).IsCheck()
}

func (r PaymentRequest) checkFields() map[string]string {
	return map[string]string{
		"CheckBank":   r.CheckBank,
		"CheckNumber": r.CheckNumber,
		"CheckDate":   r.CheckDate,
		"CheckHolder": r.CheckHolder,
		"CheckCUIT":   r.CheckCUIT,
	}
}

// PaymentRequestStructLevel enforces that check fields are present iff the method is a check.
func PaymentRequestStructLevel(sl validator.StructLevel) {
	r := sl.Current().Interface().(PaymentRequest)
	for field, value := range r.checkFields() {
		value = strings.TrimSpace(value)
		switch {
		case r.isCheck() && value == "":
			sl.ReportError(value, field, field, "required_for_check", r.Method)
		case !r.isCheck() && value != "":
			sl.ReportError(value, field, field, "excluded_for_method", r.Method)
		}
	}
	if r.isCheck() && strings.TrimSpace(r.CheckDate) != "" {
		if _, err := time.Parse(time.DateOnly, strings.TrimSpace(r.CheckDate)); err != nil {
			sl.ReportError(r.CheckDate, "CheckDate", "CheckDate", "datetime", time.DateOnly)
		}
	}
}

var registerOnce sync.Once

// RegisterValidations installs the struct-level rules on gin's validator engine.
func RegisterValidations() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterStructValidation(PaymentRequestStructLevel, PaymentRequest{})
		}
	})
}

func (r PaymentRequest) ToInput() usecase.RegisterPaymentInput {
	in := usecase.RegisterPaymentInput{
		Type:      entities.PaymentType(r.PaymentType),
		Method:    entities.PaymentMethod(r.Method),
		Amount:    r.Amount,
		MPPayload: r.MPPayload,
	}
	if r.isCheck() {
		// format already checked by PaymentRequestStructLevel
		due, _ := time.Parse(time.DateOnly, strings.TrimSpace(r.CheckDate))
		in.Check = &entities.CheckDetails{
			Bank:    strings.TrimSpace(r.CheckBank),
			Number:  strings.TrimSpace(r.CheckNumber),
			DueDate: due,
			Holder:  strings.TrimSpace(r.CheckHolder),
			CUIT:    strings.TrimSpace(r.CheckCUIT),
		}
	}
	return in
}

type DeliveredItemRequest struct {
	ID                string `json:"id" binding:"required"`
	QuantityDelivered *int   `json:"quantity_delivered" binding:"required"`
}

type ConfirmQuantitiesRequest struct {
	Items []DeliveredItemRequest `json:"items" binding:"required,min=1,dive"`
}

func (r ConfirmQuantitiesRequest) ToDelivered() []entities.DeliveredQuantity {
	out := make([]entities.DeliveredQuantity, 0, len(r.Items))
	for _, it := range r.Items {
		out = append(out, entities.DeliveredQuantity{ItemID: it.ID, Quantity: *it.QuantityDelivered})
	}
	return out
}

type DispatchRequest struct {
	VehicleID        string `json:"vehicle_id"`
	Notes            string `json:"notes"`
	IssueInvoice     bool   `json:"issue_invoice"`
	IssueRemito      bool   `json:"issue_remito"`
	IssueTaxDocument bool   `json:"issue_tax_document"`
}

func (r DispatchRequest) ToInput() usecase.DispatchInput {
	return usecase.DispatchInput{
		VehicleID:   strings.TrimSpace(r.VehicleID),
		Notes:       r.Notes,
		Invoice:     r.IssueInvoice,
		Remito:      r.IssueRemito,
		TaxDocument: r.IssueTaxDocument,
	}
}
