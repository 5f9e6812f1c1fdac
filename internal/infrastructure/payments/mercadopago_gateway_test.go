package payments

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	appconfig "cartonera/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMercadoPagoGateway_RequiresTokenOutsideMock(t *testing.T) {
	_, err := NewMercadoPagoGateway(appconfig.MercadoPagoConfig{})
	assert.True(t, errors.Is(err, ErrMissingMercadoPagoAccessToken))
}

func TestMockCreate(t *testing.T) {
	g, err := NewMercadoPagoGateway(appconfig.MercadoPagoConfig{Mock: true})
	require.NoError(t, err)

	t.Run("approves and echoes the request", func(t *testing.T) {
		id, status, raw, err := g.CreatePayment(context.Background(), json.RawMessage(`{"transaction_amount":2185875,"external_reference":"o-1"}`))
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.Equal(t, "approved", status)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "o-1", body["external_reference"])
		assert.Equal(t, "accredited", body["status_detail"])
		assert.Contains(t, body, "date_approved")
	})

	t.Run("mock_status overrides the outcome", func(t *testing.T) {
		_, status, raw, err := g.CreatePayment(context.Background(), json.RawMessage(`{"mock_status":"rejected"}`))
		require.NoError(t, err)
		assert.Equal(t, "rejected", status)

		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.NotContains(t, body, "mock_status")
		assert.NotContains(t, body, "date_approved")
	})
}

func TestCreatePayment_NotConfigured(t *testing.T) {
	var g *MercadoPagoGateway
	_, _, _, err := g.CreatePayment(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrMercadoPagoGatewayNotConfigured))
}
