package response

import (
	"time"

	"cartonera/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type PricingConfigResponse struct {
	ID                     string          `json:"id"`
	Version                int             `json:"version"`
	PricePerM2Standard     decimal.Decimal `json:"price_per_m2_standard"`
	PricePerM2Volume       decimal.Decimal `json:"price_per_m2_volume"`
	PricePerM2BelowMinimum decimal.Decimal `json:"price_per_m2_below_minimum"`
	VolumeThresholdM2      decimal.Decimal `json:"volume_threshold_m2"`
	MinM2PerModel          decimal.Decimal `json:"min_m2_per_model"`
	FreeShippingMinM2      decimal.Decimal `json:"free_shipping_min_m2"`
	FreeShippingMaxKm      decimal.Decimal `json:"free_shipping_max_km"`
	ProductionDaysStandard int             `json:"production_days_standard"`
	ProductionDaysPrinting int             `json:"production_days_printing"`
	QuoteValidityDays      int             `json:"quote_validity_days"`
	ValidFrom              time.Time       `json:"valid_from"`
	ValidUntil             *time.Time      `json:"valid_until,omitempty"`
	IsActive               bool            `json:"is_active"`
}

// FromPricingConfig reports the effective below-minimum price, fallback included.
func FromPricingConfig(c entities.PricingConfig) PricingConfigResponse {
	return PricingConfigResponse{
		ID:                     c.ID,
		Version:                c.Version,
		PricePerM2Standard:     c.PricePerM2Standard,
		PricePerM2Volume:       c.PricePerM2Volume,
		PricePerM2BelowMinimum: c.BelowMinimumPrice(),
		VolumeThresholdM2:      c.VolumeThresholdM2,
		MinM2PerModel:          c.MinM2PerModel,
		FreeShippingMinM2:      c.FreeShippingMinM2,
		FreeShippingMaxKm:      c.FreeShippingMaxKm,
		ProductionDaysStandard: c.ProductionDaysStandard,
		ProductionDaysPrinting: c.ProductionDaysPrinting,
		QuoteValidityDays:      c.QuoteValidityDays,
		ValidFrom:              c.ValidFrom,
		ValidUntil:             c.ValidUntil,
		IsActive:               c.IsActive,
	}
}
