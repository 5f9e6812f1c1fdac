package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// BelowMinimumSurcharge is applied to the standard price when a config does not set an
// explicit below-minimum price. It is the only place this factor is defined.
var BelowMinimumSurcharge = decimal.RequireFromString("1.20")

// PricingConfig is a versioned, time-boxed set of commercial rules.
//
// Exactly one config is active at a time: activating a new one deactivates the previous
// and stamps its ValidUntil.
type PricingConfig struct {
	ID      string `json:"id"`
	Version int    `json:"version"`

	PricePerM2Standard     decimal.Decimal  `json:"price_per_m2_standard"`
	PricePerM2Volume       decimal.Decimal  `json:"price_per_m2_volume"`
	VolumeThresholdM2      decimal.Decimal  `json:"volume_threshold_m2"`
	MinM2PerModel          decimal.Decimal  `json:"min_m2_per_model"`
	PricePerM2BelowMinimum *decimal.Decimal `json:"price_per_m2_below_minimum,omitempty"`
	FreeShippingMinM2      decimal.Decimal  `json:"free_shipping_min_m2"`
	FreeShippingMaxKm      decimal.Decimal  `json:"free_shipping_max_km"`
	ProductionDaysStandard int              `json:"production_days_standard"`
	ProductionDaysPrinting int              `json:"production_days_printing"`
	QuoteValidityDays      int              `json:"quote_validity_days"`

	ValidFrom  time.Time  `json:"valid_from"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	IsActive   bool       `json:"is_active"`
	CreatedAt  time.Time  `json:"created_at"`
}

// BelowMinimumPrice returns the surcharge-tier price per m².
func (c PricingConfig) BelowMinimumPrice() decimal.Decimal {
	if c.PricePerM2BelowMinimum != nil && c.PricePerM2BelowMinimum.IsPositive() {
		return *c.PricePerM2BelowMinimum
	}
	return c.PricePerM2Standard.Mul(BelowMinimumSurcharge).Round(2)
}

// Validate checks the config can price quotes consistently.
func (c PricingConfig) Validate() error {
	switch {
	case !c.PricePerM2Standard.IsPositive():
		return NewDomainError(KindInvalidInput, "price_per_m2_standard must be positive")
	case !c.PricePerM2Volume.IsPositive():
		return NewDomainError(KindInvalidInput, "price_per_m2_volume must be positive")
	case !c.MinM2PerModel.IsPositive():
		return NewDomainError(KindInvalidInput, "min_m2_per_model must be positive")
	case c.VolumeThresholdM2.LessThan(c.MinM2PerModel):
		return NewDomainError(KindInvalidInput, "volume_threshold_m2 must not be below min_m2_per_model")
	case c.PricePerM2BelowMinimum != nil && c.PricePerM2BelowMinimum.IsNegative():
		return NewDomainError(KindInvalidInput, "price_per_m2_below_minimum cannot be negative")
	case c.FreeShippingMinM2.IsNegative() || c.FreeShippingMaxKm.IsNegative():
		return NewDomainError(KindInvalidInput, "free shipping thresholds cannot be negative")
	case c.ProductionDaysStandard <= 0 || c.ProductionDaysPrinting <= 0:
		return NewDomainError(KindInvalidInput, "production days must be positive")
	case c.QuoteValidityDays <= 0:
		return NewDomainError(KindInvalidInput, "quote_validity_days must be positive")
	}
	return nil
}
