package interfaces

import (
	"context"
	"encoding/json"
)

// IPaymentGateway abstracts online payment providers (Mercado Pago).
//
// Orders paid with the mercadopago method are charged through it; the provider
// response is stored on the payment for traceability.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (providerPaymentID string, providerStatus string, providerResponse json.RawMessage, err error)
}
