// Package pricing resolves the price per m² and the commercial side effects of an area.
package pricing

import (
	"fmt"
	"time"

	"cartonera/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// MinimumOrderM2 is the smallest total area priceable through the standard path.
var MinimumOrderM2 = decimal.NewFromInt(1000)

type Tier string

const (
	TierBelowMinimum Tier = "below_minimum"
	TierStandard     Tier = "standard"
	TierVolume       Tier = "volume"
)

// Resolution is the outcome of tier selection.
type Resolution struct {
	Tier      Tier
	UnitPrice decimal.Decimal
}

// ResolvePrice picks the price per m² for a quote's total area.
//
// Lower bounds are inclusive and the volume tier is checked before the standard range,
// so a total equal to the volume threshold always gets the volume price.
func ResolvePrice(totalM2 decimal.Decimal, cfg entities.PricingConfig) (Resolution, error) {
	switch {
	case totalM2.LessThan(MinimumOrderM2):
		return Resolution{}, entities.NewDomainError(entities.KindBelowMinimumOrder,
			"total area %s m² is below the %s m² minimum order", totalM2.String(), MinimumOrderM2.String())
	case totalM2.LessThan(cfg.MinM2PerModel):
		return Resolution{Tier: TierBelowMinimum, UnitPrice: cfg.BelowMinimumPrice()}, nil
	case totalM2.GreaterThanOrEqual(cfg.VolumeThresholdM2):
		return Resolution{Tier: TierVolume, UnitPrice: cfg.PricePerM2Volume}, nil
	default:
		return Resolution{Tier: TierStandard, UnitPrice: cfg.PricePerM2Standard}, nil
	}
}

// IsFreeShippingEligible is false whenever the distance is unknown.
func IsFreeShippingEligible(totalM2 decimal.Decimal, distanceKm *decimal.Decimal, cfg entities.PricingConfig) bool {
	if distanceKm == nil {
		return false
	}
	return totalM2.GreaterThanOrEqual(cfg.FreeShippingMinM2) && distanceKm.LessThanOrEqual(cfg.FreeShippingMaxKm)
}

// ShippingDecision is eligibility plus the note shown to the client.
type ShippingDecision struct {
	FreeShipping bool
	Note         string
}

func DecideShipping(totalM2 decimal.Decimal, distanceKm *decimal.Decimal, cfg entities.PricingConfig) ShippingDecision {
	if distanceKm == nil {
		return ShippingDecision{
			Note: "Distance not provided: shipping is quoted separately until the delivery address is confirmed",
		}
	}
	if IsFreeShippingEligible(totalM2, distanceKm, cfg) {
		return ShippingDecision{
			FreeShipping: true,
			Note:         fmt.Sprintf("Free shipping within %s km", cfg.FreeShippingMaxKm.String()),
		}
	}
	if totalM2.LessThan(cfg.FreeShippingMinM2) {
		return ShippingDecision{
			Note: fmt.Sprintf("Free shipping requires at least %s m²", cfg.FreeShippingMinM2.String()),
		}
	}
	return ShippingDecision{
		Note: fmt.Sprintf("Delivery at %s km is beyond the %s km free shipping radius", distanceKm.String(), cfg.FreeShippingMaxKm.String()),
	}
}

func ProductionDays(hasPrinting bool, cfg entities.PricingConfig) int {
	if hasPrinting {
		return cfg.ProductionDaysPrinting
	}
	return cfg.ProductionDaysStandard
}

// DeliveryDate projects business days forward from start. Saturdays and Sundays never count.
func DeliveryDate(start time.Time, businessDays int) time.Time {
	d := start
	for n := 0; n < businessDays; {
		d = d.AddDate(0, 0, 1)
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			n++
		}
	}
	return d
}

func Subtotal(totalM2, unitPrice decimal.Decimal) decimal.Decimal {
	return totalM2.Mul(unitPrice).Round(2)
}

func Total(subtotal, printingCost, dieCutCost, shippingCost decimal.Decimal) decimal.Decimal {
	return subtotal.Add(printingCost).Add(dieCutCost).Add(shippingCost).Round(2)
}
