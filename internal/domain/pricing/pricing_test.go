package pricing

import (
	"errors"
	"testing"
	"time"

	"cartonera/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func testConfig() entities.PricingConfig {
	return entities.PricingConfig{
		PricePerM2Standard:     dec("700"),
		PricePerM2Volume:       dec("670"),
		VolumeThresholdM2:      dec("5000"),
		MinM2PerModel:          dec("3000"),
		PricePerM2BelowMinimum: decPtr("840"),
		FreeShippingMinM2:      dec("4000"),
		FreeShippingMaxKm:      dec("60"),
		ProductionDaysStandard: 7,
		ProductionDaysPrinting: 12,
		QuoteValidityDays:      15,
	}
}

func TestResolvePrice_Tiers(t *testing.T) {
	cfg := testConfig()
	tests := []struct {
		total string
		tier  Tier
		price string
	}{
		{"1000", TierBelowMinimum, "840"},
		{"1740", TierBelowMinimum, "840"},
		{"2999.9999", TierBelowMinimum, "840"},
		{"3000", TierStandard, "700"},
		{"4999.9999", TierStandard, "700"},
		{"5000", TierVolume, "670"},
		{"6525", TierVolume, "670"},
	}

	for _, tt := range tests {
		t.Run(tt.total, func(t *testing.T) {
			res, err := ResolvePrice(dec(tt.total), cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.tier, res.Tier)
			assert.True(t, dec(tt.price).Equal(res.UnitPrice), "got %s", res.UnitPrice)
		})
	}
}

func TestResolvePrice_BelowMinimumOrder(t *testing.T) {
	_, err := ResolvePrice(dec("435"), testConfig())
	require.Error(t, err)
	assert.True(t, errors.Is(err, entities.ErrBelowMinimumOrder))

	_, err = ResolvePrice(dec("999.9999"), testConfig())
	assert.True(t, errors.Is(err, entities.ErrBelowMinimumOrder))
}

func TestResolvePrice_VolumeWinsWhenThresholdEqualsMinimum(t *testing.T) {
	cfg := testConfig()
	cfg.VolumeThresholdM2 = dec("3000")

	res, err := ResolvePrice(dec("3000"), cfg)
	require.NoError(t, err)
	assert.Equal(t, TierVolume, res.Tier)
}

func TestResolvePrice_DefaultSurcharge(t *testing.T) {
	cfg := testConfig()
	cfg.PricePerM2BelowMinimum = nil

	res, err := ResolvePrice(dec("1500"), cfg)
	require.NoError(t, err)
	assert.True(t, dec("840").Equal(res.UnitPrice), "got %s", res.UnitPrice)
}

func TestIsFreeShippingEligible(t *testing.T) {
	cfg := testConfig()

	assert.True(t, IsFreeShippingEligible(dec("6525"), decPtr("45"), cfg))
	assert.True(t, IsFreeShippingEligible(dec("4000"), decPtr("60"), cfg))
	assert.False(t, IsFreeShippingEligible(dec("6525"), decPtr("80"), cfg))
	assert.False(t, IsFreeShippingEligible(dec("3999"), decPtr("10"), cfg))
	assert.False(t, IsFreeShippingEligible(dec("6525"), nil, cfg))
}

func TestDecideShipping_Notes(t *testing.T) {
	cfg := testConfig()

	unknown := DecideShipping(dec("6525"), nil, cfg)
	assert.False(t, unknown.FreeShipping)
	assert.NotEmpty(t, unknown.Note)

	far := DecideShipping(dec("6525"), decPtr("80"), cfg)
	assert.False(t, far.FreeShipping)
	assert.Contains(t, far.Note, "80")

	small := DecideShipping(dec("1740"), decPtr("10"), cfg)
	assert.False(t, small.FreeShipping)
	assert.Contains(t, small.Note, "4000")

	free := DecideShipping(dec("6525"), decPtr("45"), cfg)
	assert.True(t, free.FreeShipping)
}

func TestProductionDays(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, 7, ProductionDays(false, cfg))
	assert.Equal(t, 12, ProductionDays(true, cfg))
}

func TestDeliveryDate_SkipsWeekends(t *testing.T) {
	friday := time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)
	tests := []struct {
		start time.Time
		days  int
		want  time.Time
	}{
		{friday, 0, friday},
		{friday, 1, time.Date(2026, time.October, 19, 10, 0, 0, 0, time.UTC)},
		{friday, 5, time.Date(2026, time.October, 23, 10, 0, 0, 0, time.UTC)},
		{friday, 7, time.Date(2026, time.October, 27, 10, 0, 0, 0, time.UTC)},
		{time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC), 1, time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got := DeliveryDate(tt.start, tt.days)
		assert.Equal(t, tt.want, got, "start %s days %d", tt.start.Weekday(), tt.days)
	}
}

func TestSubtotalAndTotal(t *testing.T) {
	assert.True(t, dec("4371750").Equal(Subtotal(dec("6525"), dec("670"))))
	assert.True(t, dec("1461600").Equal(Subtotal(dec("1740"), dec("840"))))
	assert.True(t, dec("0.01").Equal(Subtotal(dec("0.0051"), dec("1"))))
	assert.True(t, dec("1500.75").Equal(Total(dec("1000.25"), dec("300"), dec("200.5"), decimal.Zero)))
}
