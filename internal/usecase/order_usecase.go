package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrOrderNotFound              = errors.New("order not found")
	ErrInvalidOrderID             = errors.New("invalid order id")
	ErrDocumentGatewayUnavailable = errors.New("document gateway not configured")
)

const defaultDocumentsTimeout = 10 * time.Second

type RegisterPaymentInput struct {
	Type   entities.PaymentType
	Method entities.PaymentMethod
	// Amount is optional; when present it must match the amount due.
	Amount    *decimal.Decimal
	Check     *entities.CheckDetails
	MPPayload json.RawMessage
}

type DispatchInput struct {
	VehicleID   string
	Notes       string
	Invoice     bool
	Remito      bool
	TaxDocument bool
}

// DispatchResult reports the committed shipment plus any paperwork that failed.
type DispatchResult struct {
	Order     entities.Order
	Documents []entities.DispatchDocument
	Errors    []string
}

// IOrderUseCase exposes the order lifecycle after conversion.
type IOrderUseCase interface {
	GetByID(ctx context.Context, id string) (entities.Order, error)
	TransitionStatus(ctx context.Context, id string, target entities.OrderStatus, notes string) (entities.Order, error)
	RegisterPayment(ctx context.Context, id string, in RegisterPaymentInput) (entities.Order, entities.Payment, error)
	ListPayments(ctx context.Context, id string) ([]entities.Payment, error)
	ConfirmQuantities(ctx context.Context, id string, delivered []entities.DeliveredQuantity) (entities.Order, entities.Reconciliation, error)
	Dispatch(ctx context.Context, id string, in DispatchInput) (DispatchResult, error)
}

type OrderUseCase struct {
	repo             interfaces.IOrderRepository
	paymentRepo      interfaces.IPaymentRepository
	gateway          interfaces.IPaymentGateway
	documents        interfaces.IDocumentGateway
	notifier         interfaces.INotifier
	mp               MercadoPagoSettings
	documentsTimeout time.Duration
	now              func() time.Time
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

type OrderUseCaseDeps struct {
	Repo             interfaces.IOrderRepository
	PaymentRepo      interfaces.IPaymentRepository
	Gateway          interfaces.IPaymentGateway
	Documents        interfaces.IDocumentGateway
	Notifier         interfaces.INotifier
	MercadoPago      MercadoPagoSettings
	DocumentsTimeout time.Duration
}

func NewOrderUseCase(deps OrderUseCaseDeps) *OrderUseCase {
	timeout := deps.DocumentsTimeout
	if timeout <= 0 {
		timeout = defaultDocumentsTimeout
	}
	return &OrderUseCase{
		repo:             deps.Repo,
		paymentRepo:      deps.PaymentRepo,
		gateway:          deps.Gateway,
		documents:        deps.Documents,
		notifier:         deps.Notifier,
		mp:               deps.MercadoPago,
		documentsTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (u *OrderUseCase) GetByID(ctx context.Context, id string) (entities.Order, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Order{}, ErrInvalidOrderID
	}

	o, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if o.ID == "" {
		return entities.Order{}, ErrOrderNotFound
	}
	return o, nil
}

func (u *OrderUseCase) TransitionStatus(ctx context.Context, id string, target entities.OrderStatus, notes string) (entities.Order, error) {
	o, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}

	from := o.Status
	if err := o.TransitionTo(target, strings.TrimSpace(notes), u.now()); err != nil {
		log.Info().Err(err).Str("order_id", o.ID).Str("from", string(from)).Str("to", string(target)).
			Msg("[order][usecase] transition rejected")
		return entities.Order{}, err
	}

	updated, err := u.repo.Update(ctx, o)
	if err != nil {
		return entities.Order{}, err
	}
	log.Info().Str("order_id", o.ID).Str("from", string(from)).Str("to", string(target)).Msg("[order][usecase] transitioned")

	notify(ctx, u.notifier, entities.OrderStatusChanged{
		OrderID:     updated.ID,
		OrderNumber: updated.OrderNumber,
		From:        from,
		To:          updated.Status,
		Notes:       notes,
	})
	return updated, nil
}

// RegisterPayment marks the deposit or balance as paid. The order, the payment and, for
// cheque/echeq, the portfolio check are written together.
func (u *OrderUseCase) RegisterPayment(ctx context.Context, id string, in RegisterPaymentInput) (entities.Order, entities.Payment, error) {
	if in.Method.IsCheck() {
		if in.Check == nil {
			return entities.Order{}, entities.Payment{}, entities.NewDomainError(entities.KindInvalidInput,
				"check details are required for %s payments", in.Method)
		}
		if err := in.Check.Validate(); err != nil {
			return entities.Order{}, entities.Payment{}, err
		}
	}

	o, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, entities.Payment{}, err
	}

	now := u.now()
	due, err := o.RegisterPayment(in.Type, in.Method, now)
	if err != nil {
		log.Info().Err(err).Str("order_id", o.ID).Str("payment_type", string(in.Type)).Msg("[payment][usecase] registration rejected")
		return entities.Order{}, entities.Payment{}, err
	}
	if in.Amount != nil && !in.Amount.Equal(due) {
		return entities.Order{}, entities.Payment{}, entities.NewDomainError(entities.KindInvalidInput,
			"amount %s does not match the %s due of %s", in.Amount.String(), in.Type, due.String())
	}

	p := entities.Payment{
		ID:      uuid.NewString(),
		OrderID: o.ID,
		Type:    in.Type,
		Method:  in.Method,
		Amount:  due,
		Status:  entities.PaymentStatusApproved,
		Date:    now,
	}

	reapplied := false
	if in.Method == entities.PaymentMethodMercadoPago {
		prior, found, err := u.unappliedCharge(ctx, o.ID, in.Type)
		if err != nil {
			return entities.Order{}, entities.Payment{}, err
		}
		if found {
			if !prior.Amount.Equal(due) {
				return entities.Order{}, entities.Payment{}, entities.NewDomainError(entities.KindInvalidState,
					"an approved %s charge of %s for order %s awaits reconciliation", in.Type, prior.Amount.String(), o.OrderNumber)
			}
			log.Warn().Str("order_id", o.ID).Str("payment_id", prior.ID).Msg("[payment][usecase] re-applying stored charge, provider not called")
			p = prior
			reapplied = true
		} else {
			charge, err := u.chargeMercadoPago(ctx, o, in.Type, due, in.MPPayload)
			if err != nil {
				return entities.Order{}, entities.Payment{}, err
			}
			p.MPPayloadRaw = charge.Raw
			p.MPPayload = charge.Parsed
			if charge.Status != "approved" {
				p.Status = entities.PaymentStatusPending
				if charge.Status == "rejected" || charge.Status == "cancelled" {
					p.Status = entities.PaymentStatusDenied
				}
				if u.paymentRepo != nil {
					if _, err := u.paymentRepo.Create(ctx, p); err != nil {
						log.Error().Err(err).Str("order_id", o.ID).Msg("[payment][usecase] audit row for unapproved charge failed")
					}
				}
				return entities.Order{}, p, fmt.Errorf("%w: provider status %s", ErrPaymentNotApproved, charge.Status)
			}
		}
	}

	var check *entities.Check
	if in.Method.IsCheck() {
		c := entities.NewCheck(uuid.NewString(), p, *in.Check, now)
		p.CheckID = c.ID
		check = &c
	}

	updated, err := u.repo.RegisterPayment(ctx, o, p, check)
	if err != nil {
		log.Error().Err(err).Str("order_id", o.ID).Str("payment_id", p.ID).Msg("[payment][usecase] persist failed")
		if p.Method == entities.PaymentMethodMercadoPago && !reapplied {
			u.keepUnappliedCharge(ctx, p)
		}
		return entities.Order{}, entities.Payment{}, err
	}
	log.Info().Str("order_id", o.ID).Str("payment_id", p.ID).Str("payment_type", string(p.Type)).
		Str("method", string(p.Method)).Str("amount", p.Amount.String()).Msg("[payment][usecase] registered")

	notify(ctx, u.notifier, entities.PaymentRegistered{
		OrderID:   updated.ID,
		PaymentID: p.ID,
		Type:      p.Type,
		Method:    p.Method,
		Amount:    p.Amount,
		CheckID:   p.CheckID,
	})
	return updated, p, nil
}

// unappliedCharge finds an approved Mercado Pago row of the given type that the order
// does not reflect yet. The caller has already checked that the order part is unpaid.
func (u *OrderUseCase) unappliedCharge(ctx context.Context, orderID string, paymentType entities.PaymentType) (entities.Payment, bool, error) {
	if u.paymentRepo == nil {
		return entities.Payment{}, false, nil
	}
	list, err := u.paymentRepo.ListByOrderID(ctx, orderID)
	if err != nil {
		return entities.Payment{}, false, err
	}
	for _, p := range list {
		if p.Method == entities.PaymentMethodMercadoPago && p.Type == paymentType && p.Status == entities.PaymentStatusApproved {
			return p, true, nil
		}
	}
	return entities.Payment{}, false, nil
}

// keepUnappliedCharge stores an approved charge whose order write failed so a retry
// re-applies it instead of charging the client again.
func (u *OrderUseCase) keepUnappliedCharge(ctx context.Context, p entities.Payment) {
	if u.paymentRepo == nil {
		return
	}
	if _, err := u.paymentRepo.Create(context.WithoutCancel(ctx), p); err != nil {
		log.Error().Err(err).Str("order_id", p.OrderID).Str("payment_id", p.ID).Msg("[payment][usecase] storing unapplied charge failed")
		return
	}
	log.Warn().Str("order_id", p.OrderID).Str("payment_id", p.ID).Msg("[payment][usecase] approved charge stored for reconciliation")
}

func (u *OrderUseCase) ListPayments(ctx context.Context, id string) ([]entities.Payment, error) {
	o, err := u.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.paymentRepo.ListByOrderID(ctx, o.ID)
}

func (u *OrderUseCase) ConfirmQuantities(ctx context.Context, id string, delivered []entities.DeliveredQuantity) (entities.Order, entities.Reconciliation, error) {
	o, err := u.GetByID(ctx, id)
	if err != nil {
		return entities.Order{}, entities.Reconciliation{}, err
	}

	rec, err := o.ConfirmQuantities(delivered, u.now())
	if err != nil {
		return entities.Order{}, entities.Reconciliation{}, err
	}

	updated, err := u.repo.Update(ctx, o)
	if err != nil {
		return entities.Order{}, entities.Reconciliation{}, err
	}
	log.Info().Str("order_id", o.ID).Str("original_m2", rec.OriginalTotalM2.String()).
		Str("delivered_m2", rec.DeliveredTotalM2.String()).Str("new_total", rec.NewTotal.String()).
		Msg("[order][usecase] quantities confirmed")
	return updated, rec, nil
}

// Dispatch commits the shipped status first. Paperwork runs afterwards under its own
// deadline; failures are reported, never rolled back.
func (u *OrderUseCase) Dispatch(ctx context.Context, id string, in DispatchInput) (DispatchResult, error) {
	o, err := u.GetByID(ctx, id)
	if err != nil {
		return DispatchResult{}, err
	}

	if err := o.Dispatch(strings.TrimSpace(in.VehicleID), strings.TrimSpace(in.Notes), u.now()); err != nil {
		return DispatchResult{}, err
	}
	shipped, err := u.repo.Update(ctx, o)
	if err != nil {
		return DispatchResult{}, err
	}
	log.Info().Str("order_id", shipped.ID).Str("vehicle_id", shipped.VehicleID).Msg("[order][usecase] dispatched")

	res := DispatchResult{Order: shipped}
	docs, docErrs := u.issueDocuments(ctx, shipped, in)
	res.Errors = docErrs

	if len(docs) > 0 {
		withDocs := shipped
		withDocs.AttachDocuments(docs, u.now())
		stored, err := u.repo.Update(ctx, withDocs)
		if err != nil {
			log.Warn().Err(err).Str("order_id", shipped.ID).Msg("[order][usecase] storing document references failed")
			res.Errors = append(res.Errors, fmt.Sprintf("documents: references not stored: %v", err))
		} else {
			res.Order = stored
		}
		res.Documents = docs
	}

	notify(ctx, u.notifier, entities.OrderStatusChanged{
		OrderID:     shipped.ID,
		OrderNumber: shipped.OrderNumber,
		From:        entities.OrderStatusReady,
		To:          entities.OrderStatusShipped,
		Notes:       in.Notes,
	})
	notify(ctx, u.notifier, entities.OrderDispatched{
		OrderID:     shipped.ID,
		OrderNumber: shipped.OrderNumber,
		VehicleID:   shipped.VehicleID,
		Documents:   res.Documents,
		Errors:      res.Errors,
	})
	return res, nil
}

func (u *OrderUseCase) issueDocuments(ctx context.Context, o entities.Order, in DispatchInput) ([]entities.DispatchDocument, []string) {
	type subAction struct {
		name  string
		want  bool
		issue func(context.Context, entities.Order) (entities.DispatchDocument, error)
	}
	if !in.Invoice && !in.Remito && !in.TaxDocument {
		return nil, nil
	}
	if u.documents == nil {
		return nil, []string{ErrDocumentGatewayUnavailable.Error()}
	}

	actions := []subAction{
		{"invoice", in.Invoice, u.documents.IssueInvoice},
		{"remito", in.Remito, u.documents.IssueRemito},
		{"tax_document", in.TaxDocument, u.documents.IssueTaxDocument},
	}

	docCtx, cancel := context.WithTimeout(ctx, u.documentsTimeout)
	defer cancel()

	var docs []entities.DispatchDocument
	var errs []string
	for _, a := range actions {
		if !a.want {
			continue
		}
		doc, err := a.issue(docCtx, o)
		if err != nil {
			log.Warn().Err(err).Str("order_id", o.ID).Str("document", a.name).Msg("[order][usecase] document failed")
			errs = append(errs, fmt.Sprintf("%s: %v", a.name, err))
			continue
		}
		docs = append(docs, doc)
	}
	return docs, errs
}
