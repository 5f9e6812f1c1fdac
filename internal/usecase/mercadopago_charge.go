package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"cartonera/internal/domain/entities"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrPaymentNotApproved             = errors.New("payment not approved by provider")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// MercadoPagoSettings drives payload validation for online charges. In mock mode an
// empty or partial payload is accepted and the gateway answers approved.
type MercadoPagoSettings struct {
	Mock            bool
	AccessToken     string
	TestPayerEmail  string
	TestPayerUserID string
}

func (s MercadoPagoSettings) sandbox() bool {
	return strings.HasPrefix(strings.TrimSpace(s.AccessToken), "TEST-")
}

type mercadoPagoCharge struct {
	ProviderID string
	Status     string
	Raw        json.RawMessage
	Parsed     map[string]interface{}
}

// chargeMercadoPago enriches the client payload with the order reference and the
// amount due, then calls the gateway. The amount always comes from the order.
func (u *OrderUseCase) chargeMercadoPago(ctx context.Context, o entities.Order, paymentType entities.PaymentType, amount decimal.Decimal, payload json.RawMessage) (mercadoPagoCharge, error) {
	mockMode := u.mp.Mock
	log.Info().Str("order_id", o.ID).Int("payload_len", len(payload)).Bool("mock", mockMode).Msg("[payment][usecase] mercadopago charge start")

	if len(payload) == 0 || !json.Valid(payload) {
		if !mockMode {
			log.Warn().Str("order_id", o.ID).Msg("[payment][usecase] invalid payload (empty or not json)")
			return mercadoPagoCharge{}, ErrInvalidMPPayload
		}
		payload = json.RawMessage("{}")
	}
	if u.gateway == nil {
		return mercadoPagoCharge{}, ErrPaymentGatewayNotConfigured
	}

	var reqMap map[string]any
	if err := json.Unmarshal(payload, &reqMap); err != nil || reqMap == nil {
		return mercadoPagoCharge{}, ErrInvalidMPPayload
	}
	if !mockMode {
		if stringField(reqMap, "payment_method_id") == "" {
			log.Warn().Str("order_id", o.ID).Msg("[payment][usecase] missing payment_method_id")
			return mercadoPagoCharge{}, ErrInvalidMPPayload
		}
		if !u.preparePayer(reqMap) {
			log.Warn().Str("order_id", o.ID).Msg("[payment][usecase] missing/invalid payer")
			return mercadoPagoCharge{}, ErrInvalidMPPayload
		}
	}

	reqMap["external_reference"] = chargeReference(o.ID, paymentType)
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Pedido %s (%s)", o.OrderNumber, paymentType)
	}
	reqMap["transaction_amount"] = amount.InexactFloat64()

	enriched, err := json.Marshal(reqMap)
	if err != nil {
		return mercadoPagoCharge{}, err
	}

	providerID, status, raw, err := u.gateway.CreatePayment(ctx, enriched)
	if err != nil {
		log.Error().Err(err).Str("order_id", o.ID).Msg("[payment][usecase] payment gateway failed")
		return mercadoPagoCharge{}, classifyGatewayError(err)
	}
	log.Info().Str("order_id", o.ID).Str("provider_payment_id", providerID).Str("provider_status", status).
		Msg("[payment][usecase] payment gateway success")

	var parsed map[string]interface{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		log.Warn().Err(err).Str("order_id", o.ID).Msg("[payment][usecase] provider response unmarshal failed")
	}
	return mercadoPagoCharge{ProviderID: providerID, Status: status, Raw: raw, Parsed: parsed}, nil
}

// chargeReference is the same for every attempt at one order part, so the provider side
// can match retries.
func chargeReference(orderID string, paymentType entities.PaymentType) string {
	return orderID + ":" + string(paymentType)
}

// gatewayFailures maps fragments of Mercado Pago error bodies to domain errors. The
// first match wins, so the specific causes come before the generic status codes.
var gatewayFailures = []struct {
	fragments []string
	err       error
}{
	{[]string{"customer not found", `"code":2002`}, ErrPaymentGatewayCustomerNotFound},
	{[]string{"invalid users involved", `"code":2034`}, ErrPaymentGatewayInvalidUsers},
	{[]string{`"error":"unauthorized"`, `"status":401`}, ErrPaymentGatewayUnauthorized},
	{[]string{`"error":"bad_request"`, `"status":400`}, ErrPaymentGatewayBadRequest},
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	for _, f := range gatewayFailures {
		for _, frag := range f.fragments {
			if strings.Contains(msg, frag) {
				return f.err
			}
		}
	}
	return err
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return strings.TrimSpace(s)
}

// payerID reads payer.id, which clients send as a string or a JSON number.
func payerID(payer map[string]any) string {
	switch v := payer["id"].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// preparePayer fills the payer block a live charge needs and reports whether it ends
// up identifying someone (an id or an email).
//
// In sandbox the configured test user id is swapped for its email, and a payer with
// neither gets the test email.
func (u *OrderUseCase) preparePayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		if m["payer"] != nil {
			return false
		}
		payer = map[string]any{}
		m["payer"] = payer
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}

	email := strings.TrimSpace(u.mp.TestPayerEmail)
	id := payerID(payer)
	if u.mp.sandbox() && stringField(payer, "email") == "" {
		switch {
		case id != "" && id == strings.TrimSpace(u.mp.TestPayerUserID) && email != "":
			payer["email"] = email
			delete(payer, "id")
			id = ""
			log.Debug().Msg("[payment][usecase] mapped sandbox payer user_id to payer.email")
		case id == "" && email == "":
			payer["email"] = "test_user_ar@testuser.com"
		}
	}
	if id == "" && stringField(payer, "email") == "" && email != "" {
		payer["email"] = email
	}
	return id != "" || stringField(payer, "email") != ""
}
