// Package quoting prices a list of boxes into a quote document.
package quoting

import (
	"fmt"
	"time"

	"cartonera/internal/domain/entities"
	"cartonera/internal/domain/geometry"
	"cartonera/internal/domain/pricing"

	"github.com/shopspring/decimal"
)

type ItemInput struct {
	BoxID    string
	LengthMM int
	WidthMM  int
	HeightMM int
	Quantity int
}

func (i ItemInput) Box() geometry.BoxSpec {
	return geometry.BoxSpec{LengthMM: i.LengthMM, WidthMM: i.WidthMM, HeightMM: i.HeightMM}
}

// Options carries the commercial flags of a quote. Printing, die-cut and shipping
// amounts are entered by an operator; nil means not priced yet.
type Options struct {
	HasPrinting        bool
	HasDieCut          bool
	HasExistingPolymer bool
	ClientDistanceKm   *decimal.Decimal
	PrintingCost       *decimal.Decimal
	DieCutCost         *decimal.Decimal
	ShippingCost       *decimal.Decimal
	Now                time.Time
}

type WarningCode string

const (
	WarningOversizedBox        WarningCode = "oversized_box"
	WarningBelowModelMinimum   WarningCode = "below_model_minimum"
	WarningBelowMinimumOrder   WarningCode = "below_minimum_order"
	WarningNoDistance          WarningCode = "no_distance"
	WarningPrintingCostPending WarningCode = "printing_cost_pending"
	WarningDieCutCostPending   WarningCode = "die_cut_cost_pending"
	WarningExistingPolymer     WarningCode = "existing_polymer"
)

type Warning struct {
	Code      WarningCode `json:"code"`
	ItemIndex *int        `json:"item_index,omitempty"`
	Message   string      `json:"message"`
}

type ItemResult struct {
	Index                    int
	BoxID                    string
	Box                      geometry.BoxSpec
	Quantity                 int
	Sheet                    geometry.UnfoldedSheet
	TotalM2                  decimal.Decimal
	Oversized                bool
	BelowModelMinimum        bool
	SuggestedMinimumQuantity int
}

type Summary struct {
	TotalM2           decimal.Decimal
	PricingTier       pricing.Tier
	PricePerM2        decimal.Decimal
	Subtotal          decimal.Decimal
	PrintingCost      decimal.Decimal
	DieCutCost        decimal.Decimal
	ShippingCost      decimal.Decimal
	Total             decimal.Decimal
	FreeShipping      bool
	ShippingNotes     string
	ProductionDays    int
	EstimatedDelivery time.Time
}

// PricedQuote is the builder output. When RequiresSpecialRequest is set the area is
// below the minimum order and the summary carries no price.
type PricedQuote struct {
	Items                  []ItemResult
	Summary                Summary
	Warnings               []Warning
	RequiresSpecialRequest bool
}

// WarningMessages flattens warnings for storage on the quote.
func (p PricedQuote) WarningMessages() []string {
	out := make([]string, 0, len(p.Warnings))
	for _, w := range p.Warnings {
		out = append(out, w.Message)
	}
	return out
}

// LineItems converts results into quote line items, asking newID for each id.
func (p PricedQuote) LineItems(newID func() string) []entities.LineItem {
	out := make([]entities.LineItem, 0, len(p.Items))
	for _, it := range p.Items {
		out = append(out, entities.LineItem{
			ID:               newID(),
			BoxID:            it.BoxID,
			Box:              it.Box,
			Quantity:         it.Quantity,
			UnfoldedWidthMM:  it.Sheet.WidthMM,
			UnfoldedLengthMM: it.Sheet.LengthMM,
			M2PerBox:         it.Sheet.AreaM2,
			TotalM2:          it.TotalM2,
		})
	}
	return out
}

// Manually entered amounts and the client distance may be zero, never negative.
func (o Options) validate() error {
	for _, f := range []struct {
		name  string
		value *decimal.Decimal
	}{
		{"client_distance_km", o.ClientDistanceKm},
		{"printing_cost", o.PrintingCost},
		{"die_cut_cost", o.DieCutCost},
		{"shipping_cost", o.ShippingCost},
	} {
		if f.value != nil && f.value.IsNegative() {
			return entities.NewDomainError(entities.KindInvalidInput, "%s must not be negative, got %s", f.name, f.value.String())
		}
	}
	return nil
}

// BuildQuote validates every item before pricing; the first invalid item fails the
// whole call. Warnings never fail it.
func BuildQuote(items []ItemInput, cfg entities.PricingConfig, opts Options) (PricedQuote, error) {
	if len(items) == 0 {
		return PricedQuote{}, entities.NewDomainError(entities.KindInvalidInput, "a quote needs at least one item")
	}
	if err := opts.validate(); err != nil {
		return PricedQuote{}, err
	}

	var out PricedQuote
	areas := make([]decimal.Decimal, 0, len(items))
	for i, in := range items {
		if in.LengthMM <= 0 || in.WidthMM <= 0 || in.HeightMM <= 0 {
			return PricedQuote{}, entities.NewDomainError(entities.KindInvalidInput,
				"item %d: length_mm, width_mm and height_mm must be positive", i+1)
		}
		if in.Quantity <= 0 {
			return PricedQuote{}, entities.NewDomainError(entities.KindInvalidInput, "item %d: quantity must be positive", i+1)
		}
		box := in.Box()
		if geometry.IsUndersized(box) {
			return PricedQuote{}, entities.NewDomainError(entities.KindBelowMinimumSize,
				"item %d: %dx%dx%d mm is below the %dx%dx%d mm minimum", i+1,
				box.LengthMM, box.WidthMM, box.HeightMM, geometry.MinLengthMM, geometry.MinWidthMM, geometry.MinHeightMM)
		}

		sheet := geometry.ComputeUnfolded(box)
		res := ItemResult{
			Index:    i,
			BoxID:    in.BoxID,
			Box:      box,
			Quantity: in.Quantity,
			Sheet:    sheet,
			TotalM2:  geometry.TotalArea(sheet.AreaM2, in.Quantity),
		}
		idx := i
		if geometry.IsOversized(box) {
			res.Oversized = true
			out.Warnings = append(out.Warnings, Warning{
				Code:      WarningOversizedBox,
				ItemIndex: &idx,
				Message: fmt.Sprintf("Item %d exceeds %dx%dx%d mm and needs special pricing", i+1,
					geometry.MaxLengthMM, geometry.MaxWidthMM, geometry.MaxHeightMM),
			})
		}
		if res.TotalM2.LessThan(cfg.MinM2PerModel) {
			res.BelowModelMinimum = true
			res.SuggestedMinimumQuantity = geometry.MinimumQuantity(sheet.AreaM2, cfg.MinM2PerModel)
			out.Warnings = append(out.Warnings, Warning{
				Code:      WarningBelowModelMinimum,
				ItemIndex: &idx,
				Message: fmt.Sprintf("Item %d totals %s m², below the %s m² per-model minimum; suggested quantity %d",
					i+1, res.TotalM2.String(), cfg.MinM2PerModel.String(), res.SuggestedMinimumQuantity),
			})
		}
		out.Items = append(out.Items, res)
		areas = append(areas, res.TotalM2)
	}

	s := &out.Summary
	s.TotalM2 = geometry.SumAreas(areas...)
	s.ProductionDays = pricing.ProductionDays(opts.HasPrinting, cfg)
	s.EstimatedDelivery = pricing.DeliveryDate(opts.Now, s.ProductionDays)

	if s.TotalM2.LessThan(pricing.MinimumOrderM2) {
		out.RequiresSpecialRequest = true
		out.Warnings = append(out.Warnings, Warning{
			Code: WarningBelowMinimumOrder,
			Message: fmt.Sprintf("Total %s m² is below the %s m² minimum order; route as a special request",
				s.TotalM2.String(), pricing.MinimumOrderM2.String()),
		})
		return out, nil
	}

	res, err := pricing.ResolvePrice(s.TotalM2, cfg)
	if err != nil {
		return PricedQuote{}, err
	}
	s.PricingTier = res.Tier
	s.PricePerM2 = res.UnitPrice
	s.Subtotal = pricing.Subtotal(s.TotalM2, res.UnitPrice)

	ship := pricing.DecideShipping(s.TotalM2, opts.ClientDistanceKm, cfg)
	s.FreeShipping = ship.FreeShipping
	s.ShippingNotes = ship.Note
	if opts.ClientDistanceKm == nil {
		out.Warnings = append(out.Warnings, Warning{Code: WarningNoDistance, Message: ship.Note})
	}
	if !ship.FreeShipping && opts.ShippingCost != nil {
		s.ShippingCost = *opts.ShippingCost
	}

	if opts.HasPrinting {
		if opts.PrintingCost != nil {
			s.PrintingCost = *opts.PrintingCost
		} else {
			out.Warnings = append(out.Warnings, Warning{
				Code:    WarningPrintingCostPending,
				Message: "Printing requested: enter the printing cost manually",
			})
		}
		if opts.HasExistingPolymer {
			out.Warnings = append(out.Warnings, Warning{
				Code:    WarningExistingPolymer,
				Message: "Client already owns the printing polymer; do not charge a new plate",
			})
		}
	}
	if opts.HasDieCut {
		if opts.DieCutCost != nil {
			s.DieCutCost = *opts.DieCutCost
		} else {
			out.Warnings = append(out.Warnings, Warning{
				Code:    WarningDieCutCostPending,
				Message: "Die-cut requested: enter the die-cut cost manually",
			})
		}
	}

	s.Total = pricing.Total(s.Subtotal, s.PrintingCost, s.DieCutCost, s.ShippingCost)
	return out, nil
}
