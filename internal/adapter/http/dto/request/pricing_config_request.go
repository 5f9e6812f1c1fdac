package request

import (
	"cartonera/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type PricingConfigRequest struct {
	PricePerM2Standard     decimal.Decimal  `json:"price_per_m2_standard"`
	PricePerM2Volume       decimal.Decimal  `json:"price_per_m2_volume"`
	VolumeThresholdM2      decimal.Decimal  `json:"volume_threshold_m2"`
	MinM2PerModel          decimal.Decimal  `json:"min_m2_per_model"`
	PricePerM2BelowMinimum *decimal.Decimal `json:"price_per_m2_below_minimum"`
	FreeShippingMinM2      decimal.Decimal  `json:"free_shipping_min_m2"`
	FreeShippingMaxKm      decimal.Decimal  `json:"free_shipping_max_km"`
	ProductionDaysStandard int              `json:"production_days_standard"`
	ProductionDaysPrinting int              `json:"production_days_printing"`
	QuoteValidityDays      int              `json:"quote_validity_days"`
}

func (r PricingConfigRequest) ToEntity() entities.PricingConfig {
	return entities.PricingConfig{
		PricePerM2Standard:     r.PricePerM2Standard,
		PricePerM2Volume:       r.PricePerM2Volume,
		VolumeThresholdM2:      r.VolumeThresholdM2,
		MinM2PerModel:          r.MinM2PerModel,
		PricePerM2BelowMinimum: r.PricePerM2BelowMinimum,
		FreeShippingMinM2:      r.FreeShippingMinM2,
		FreeShippingMaxKm:      r.FreeShippingMaxKm,
		ProductionDaysStandard: r.ProductionDaysStandard,
		ProductionDaysPrinting: r.ProductionDaysPrinting,
		QuoteValidityDays:      r.QuoteValidityDays,
	}
}
