package request

import (
	"cartonera/internal/domain/quoting"
	"cartonera/internal/usecase"

	"github.com/shopspring/decimal"
)

type QuoteItemRequest struct {
	BoxID    string `json:"box_id"`
	LengthMM int    `json:"length_mm"`
	WidthMM  int    `json:"width_mm"`
	HeightMM int    `json:"height_mm"`
	Quantity int    `json:"quantity"`
}

// QuoteRequest is the calculation payload. Geometry is validated by the builder so the
// client gets the item index in the error message.
type QuoteRequest struct {
	Items              []QuoteItemRequest `json:"items" binding:"required"`
	HasPrinting        bool               `json:"has_printing"`
	HasDieCut          bool               `json:"has_die_cut"`
	HasExistingPolymer bool               `json:"has_existing_polymer"`
	ClientDistanceKm   *decimal.Decimal   `json:"client_distance_km"`
	PrintingCost       *decimal.Decimal   `json:"printing_cost"`
	DieCutCost         *decimal.Decimal   `json:"die_cut_cost"`
	ShippingCost       *decimal.Decimal   `json:"shipping_cost"`
}

func (r QuoteRequest) ToInput() usecase.QuoteInput {
	items := make([]quoting.ItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, quoting.ItemInput{
			BoxID:    it.BoxID,
			LengthMM: it.LengthMM,
			WidthMM:  it.WidthMM,
			HeightMM: it.HeightMM,
			Quantity: it.Quantity,
		})
	}
	return usecase.QuoteInput{
		Items:              items,
		HasPrinting:        r.HasPrinting,
		HasDieCut:          r.HasDieCut,
		HasExistingPolymer: r.HasExistingPolymer,
		ClientDistanceKm:   r.ClientDistanceKm,
		PrintingCost:       r.PrintingCost,
		DieCutCost:         r.DieCutCost,
		ShippingCost:       r.ShippingCost,
	}
}

type CreateQuoteRequest struct {
	QuoteRequest
	ClientID   string `json:"client_id" binding:"required"`
	ClientName string `json:"client_name"`
}

func (r CreateQuoteRequest) ToInput() usecase.CreateQuoteInput {
	return usecase.CreateQuoteInput{
		QuoteInput: r.QuoteRequest.ToInput(),
		ClientID:   r.ClientID,
		ClientName: r.ClientName,
	}
}

type RejectQuoteRequest struct {
	Reason string `json:"reason"`
}
