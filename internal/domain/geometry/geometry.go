// Package geometry turns RSC box dimensions into the flat corrugated sheet they are cut from.
//
// All functions are pure. Areas are square meters rounded half-up to 4 decimals; every
// aggregation re-rounds so long item lists do not drift.
package geometry

import "github.com/shopspring/decimal"

const (
	// FlapAllowanceMM is the glue flap and trim added to the blank length.
	FlapAllowanceMM = 50

	MinLengthMM = 200
	MinWidthMM  = 200
	MinHeightMM = 100

	MaxLengthMM = 600
	MaxWidthMM  = 400
	MaxHeightMM = 400

	areaPlaces = 4
)

// BoxSpec is the inner size of a box in millimeters.
type BoxSpec struct {
	LengthMM int `json:"length_mm"`
	WidthMM  int `json:"width_mm"`
	HeightMM int `json:"height_mm"`
}

// UnfoldedSheet is the blank a BoxSpec is folded from.
type UnfoldedSheet struct {
	WidthMM  int             `json:"unfolded_width_mm"`
	LengthMM int             `json:"unfolded_length_mm"`
	AreaM2   decimal.Decimal `json:"area_m2"`
}

// ComputeUnfolded never fails; callers validate dimensions beforehand.
func ComputeUnfolded(b BoxSpec) UnfoldedSheet {
	w := b.HeightMM + b.WidthMM
	l := 2*b.LengthMM + 2*b.WidthMM + FlapAllowanceMM
	// mm² to m² is an exact shift of six decimal places.
	area := decimal.New(int64(w)*int64(l), -6)
	return UnfoldedSheet{
		WidthMM:  w,
		LengthMM: l,
		AreaM2:   RoundArea(area),
	}
}

func IsUndersized(b BoxSpec) bool {
	return b.LengthMM < MinLengthMM || b.WidthMM < MinWidthMM || b.HeightMM < MinHeightMM
}

func IsOversized(b BoxSpec) bool {
	return b.LengthMM > MaxLengthMM || b.WidthMM > MaxWidthMM || b.HeightMM > MaxHeightMM
}

// RoundArea rounds half-up at the 4th decimal. decimal rounds half away from zero,
// which is the same thing for the non-negative areas handled here.
func RoundArea(d decimal.Decimal) decimal.Decimal {
	return d.Round(areaPlaces)
}

// TotalArea is the area consumed by qty boxes of areaPerBox.
func TotalArea(areaPerBox decimal.Decimal, qty int) decimal.Decimal {
	return RoundArea(areaPerBox.Mul(decimal.NewFromInt(int64(qty))))
}

func SumAreas(areas ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range areas {
		total = RoundArea(total.Add(a))
	}
	return total
}

// MinimumQuantity is the smallest box count whose area reaches minM2PerModel.
func MinimumQuantity(areaPerBox, minM2PerModel decimal.Decimal) int {
	if !areaPerBox.IsPositive() {
		return 0
	}
	return int(minM2PerModel.Div(areaPerBox).Ceil().IntPart())
}
