package entities

import (
	"cartonera/internal/domain/geometry"

	"github.com/shopspring/decimal"
)

// LineItem is one box model and its quantity. Quotes and orders each own their own copy.
type LineItem struct {
	ID                string           `json:"id"`
	BoxID             string           `json:"box_id,omitempty"`
	Box               geometry.BoxSpec `json:"box"`
	Quantity          int              `json:"quantity"`
	QuantityDelivered *int             `json:"quantity_delivered,omitempty"`
	UnfoldedWidthMM   int              `json:"unfolded_width_mm"`
	UnfoldedLengthMM  int              `json:"unfolded_length_mm"`
	M2PerBox          decimal.Decimal  `json:"m2_per_box"`
	TotalM2           decimal.Decimal  `json:"total_m2"`
}

func NewLineItem(id, boxID string, box geometry.BoxSpec, quantity int) LineItem {
	sheet := geometry.ComputeUnfolded(box)
	return LineItem{
		ID:               id,
		BoxID:            boxID,
		Box:              box,
		Quantity:         quantity,
		UnfoldedWidthMM:  sheet.WidthMM,
		UnfoldedLengthMM: sheet.LengthMM,
		M2PerBox:         sheet.AreaM2,
		TotalM2:          geometry.TotalArea(sheet.AreaM2, quantity),
	}
}

// DeliveredM2 uses the delivered count once reconciled, the ordered count otherwise.
func (i LineItem) DeliveredM2() decimal.Decimal {
	if i.QuantityDelivered != nil {
		return geometry.TotalArea(i.M2PerBox, *i.QuantityDelivered)
	}
	return geometry.TotalArea(i.M2PerBox, i.Quantity)
}

// CopyLineItems deep-copies items so the copy shares no mutable state with the source.
func CopyLineItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, it := range items {
		out[i] = it
		if it.QuantityDelivered != nil {
			q := *it.QuantityDelivered
			out[i].QuantityDelivered = &q
		}
	}
	return out
}

func SumItemsM2(items []LineItem) decimal.Decimal {
	areas := make([]decimal.Decimal, 0, len(items))
	for _, it := range items {
		areas = append(areas, it.TotalM2)
	}
	return geometry.SumAreas(areas...)
}
