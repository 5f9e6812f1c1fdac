package response

import (
	"time"

	"cartonera/internal/domain/entities"
	"cartonera/internal/domain/quoting"

	"github.com/shopspring/decimal"
)

type CalculatedItemResponse struct {
	Index                    int             `json:"index"`
	BoxID                    string          `json:"box_id,omitempty"`
	LengthMM                 int             `json:"length_mm"`
	WidthMM                  int             `json:"width_mm"`
	HeightMM                 int             `json:"height_mm"`
	Quantity                 int             `json:"quantity"`
	UnfoldedWidthMM          int             `json:"unfolded_width_mm"`
	UnfoldedLengthMM         int             `json:"unfolded_length_mm"`
	M2PerBox                 decimal.Decimal `json:"m2_per_box"`
	TotalM2                  decimal.Decimal `json:"total_m2"`
	Oversized                bool            `json:"oversized"`
	BelowModelMinimum        bool            `json:"below_model_minimum"`
	SuggestedMinimumQuantity int             `json:"suggested_minimum_quantity,omitempty"`
}

type QuoteSummaryResponse struct {
	TotalM2           decimal.Decimal   `json:"total_m2"`
	PricingTier       string            `json:"pricing_tier,omitempty"`
	PricePerM2        decimal.Decimal   `json:"price_per_m2"`
	Subtotal          decimal.Decimal   `json:"subtotal"`
	PrintingCost      decimal.Decimal   `json:"printing_cost"`
	DieCutCost        decimal.Decimal   `json:"die_cut_cost"`
	ShippingCost      decimal.Decimal   `json:"shipping_cost"`
	FreeShipping      bool              `json:"free_shipping"`
	ShippingNotes     string            `json:"shipping_notes"`
	Total             decimal.Decimal   `json:"total"`
	ProductionDays    int               `json:"production_days"`
	EstimatedDelivery string            `json:"estimated_delivery"`
	Warnings          []quoting.Warning `json:"warnings"`
}

type CalculationResponse struct {
	Items                  []CalculatedItemResponse `json:"items"`
	Summary                QuoteSummaryResponse     `json:"summary"`
	RequiresSpecialRequest bool                     `json:"requires_special_request"`
}

func FromPricedQuote(p quoting.PricedQuote) CalculationResponse {
	items := make([]CalculatedItemResponse, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, CalculatedItemResponse{
			Index:                    it.Index,
			BoxID:                    it.BoxID,
			LengthMM:                 it.Box.LengthMM,
			WidthMM:                  it.Box.WidthMM,
			HeightMM:                 it.Box.HeightMM,
			Quantity:                 it.Quantity,
			UnfoldedWidthMM:          it.Sheet.WidthMM,
			UnfoldedLengthMM:         it.Sheet.LengthMM,
			M2PerBox:                 it.Sheet.AreaM2,
			TotalM2:                  it.TotalM2,
			Oversized:                it.Oversized,
			BelowModelMinimum:        it.BelowModelMinimum,
			SuggestedMinimumQuantity: it.SuggestedMinimumQuantity,
		})
	}
	warnings := p.Warnings
	if warnings == nil {
		warnings = []quoting.Warning{}
	}
	s := p.Summary
	return CalculationResponse{
		Items: items,
		Summary: QuoteSummaryResponse{
			TotalM2:           s.TotalM2,
			PricingTier:       string(s.PricingTier),
			PricePerM2:        s.PricePerM2,
			Subtotal:          s.Subtotal,
			PrintingCost:      s.PrintingCost,
			DieCutCost:        s.DieCutCost,
			ShippingCost:      s.ShippingCost,
			FreeShipping:      s.FreeShipping,
			ShippingNotes:     s.ShippingNotes,
			Total:             s.Total,
			ProductionDays:    s.ProductionDays,
			EstimatedDelivery: s.EstimatedDelivery.Format(time.DateOnly),
			Warnings:          warnings,
		},
		RequiresSpecialRequest: p.RequiresSpecialRequest,
	}
}

type LineItemResponse struct {
	ID                string          `json:"id"`
	BoxID             string          `json:"box_id,omitempty"`
	LengthMM          int             `json:"length_mm"`
	WidthMM           int             `json:"width_mm"`
	HeightMM          int             `json:"height_mm"`
	Quantity          int             `json:"quantity"`
	QuantityDelivered *int            `json:"quantity_delivered,omitempty"`
	UnfoldedWidthMM   int             `json:"unfolded_width_mm"`
	UnfoldedLengthMM  int             `json:"unfolded_length_mm"`
	M2PerBox          decimal.Decimal `json:"m2_per_box"`
	TotalM2           decimal.Decimal `json:"total_m2"`
}

func fromLineItems(items []entities.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, LineItemResponse{
			ID:                it.ID,
			BoxID:             it.BoxID,
			LengthMM:          it.Box.LengthMM,
			WidthMM:           it.Box.WidthMM,
			HeightMM:          it.Box.HeightMM,
			Quantity:          it.Quantity,
			QuantityDelivered: it.QuantityDelivered,
			UnfoldedWidthMM:   it.UnfoldedWidthMM,
			UnfoldedLengthMM:  it.UnfoldedLengthMM,
			M2PerBox:          it.M2PerBox,
			TotalM2:           it.TotalM2,
		})
	}
	return out
}

type QuoteResponse struct {
	ID                 string             `json:"id"`
	QuoteNumber        string             `json:"quote_number"`
	ClientID           string             `json:"client_id"`
	ClientName         string             `json:"client_name,omitempty"`
	Status             string             `json:"status"`
	Items              []LineItemResponse `json:"items"`
	TotalM2            decimal.Decimal    `json:"total_m2"`
	PricingTier        string             `json:"pricing_tier"`
	PricePerM2         decimal.Decimal    `json:"price_per_m2"`
	Subtotal           decimal.Decimal    `json:"subtotal"`
	PrintingCost       decimal.Decimal    `json:"printing_cost"`
	DieCutCost         decimal.Decimal    `json:"die_cut_cost"`
	ShippingCost       decimal.Decimal    `json:"shipping_cost"`
	Total              decimal.Decimal    `json:"total"`
	HasPrinting        bool               `json:"has_printing"`
	HasDieCut          bool               `json:"has_die_cut"`
	FreeShipping       bool               `json:"free_shipping"`
	ShippingNotes      string             `json:"shipping_notes,omitempty"`
	ProductionDays     int                `json:"production_days"`
	EstimatedDelivery  string             `json:"estimated_delivery"`
	Warnings           []string           `json:"warnings,omitempty"`
	ValidUntil         time.Time          `json:"valid_until"`
	ConvertedToOrderID string             `json:"converted_to_order_id,omitempty"`
	RejectionReason    string             `json:"rejection_reason,omitempty"`
	ValidTransitions   []string           `json:"valid_transitions"`
	Version            int                `json:"version"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
	SentAt             *time.Time         `json:"sent_at,omitempty"`
	ApprovedAt         *time.Time         `json:"approved_at,omitempty"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		ID:                 q.ID,
		QuoteNumber:        q.QuoteNumber,
		ClientID:           q.ClientID,
		ClientName:         q.ClientName,
		Status:             string(q.Status),
		Items:              fromLineItems(q.Items),
		TotalM2:            q.TotalM2,
		PricingTier:        q.PricingTier,
		PricePerM2:         q.PricePerM2,
		Subtotal:           q.Subtotal,
		PrintingCost:       q.PrintingCost,
		DieCutCost:         q.DieCutCost,
		ShippingCost:       q.ShippingCost,
		Total:              q.Total,
		HasPrinting:        q.HasPrinting,
		HasDieCut:          q.HasDieCut,
		FreeShipping:       q.FreeShipping,
		ShippingNotes:      q.ShippingNotes,
		ProductionDays:     q.ProductionDays,
		EstimatedDelivery:  q.EstimatedDelivery.Format(time.DateOnly),
		Warnings:           q.Warnings,
		ValidUntil:         q.ValidUntil,
		ConvertedToOrderID: q.ConvertedToOrderID,
		RejectionReason:    q.RejectionReason,
		ValidTransitions:   entities.QuoteStateMachine.ValidTransitions(q.Status),
		Version:            q.Version,
		CreatedAt:          q.CreatedAt,
		UpdatedAt:          q.UpdatedAt,
		SentAt:             q.SentAt,
		ApprovedAt:         q.ApprovedAt,
	}
}

type ExpiredQuotesResponse struct {
	Expired []QuoteResponse `json:"expired"`
}

func FromExpiredQuotes(qs []entities.Quote) ExpiredQuotesResponse {
	out := make([]QuoteResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, FromQuote(q))
	}
	return ExpiredQuotesResponse{Expired: out}
}
