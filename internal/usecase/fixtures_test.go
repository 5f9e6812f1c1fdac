package usecase

import (
	"time"

	"cartonera/internal/domain/entities"
	"cartonera/internal/domain/geometry"
	"cartonera/internal/domain/quoting"

	"github.com/shopspring/decimal"
)

var fixedNow = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func activePricingConfig() entities.PricingConfig {
	return entities.PricingConfig{
		ID:                     "cfg-1",
		Version:                3,
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
		IsActive:               true,
	}
}

func quoteInput(qty int) QuoteInput {
	return QuoteInput{
		Items:            []quoting.ItemInput{{LengthMM: 400, WidthMM: 300, HeightMM: 300, Quantity: qty}},
		ClientDistanceKm: decPtr("45"),
	}
}

func storedQuote(status entities.QuoteStatus) entities.Quote {
	item := entities.NewLineItem("item-1", "", geometry.BoxSpec{LengthMM: 400, WidthMM: 300, HeightMM: 300}, 7500)
	return entities.Quote{
		ID:          "q-1",
		QuoteNumber: "COT-20261010-AAAAAA",
		ClientID:    "client-1",
		Items:       []entities.LineItem{item},
		TotalM2:     item.TotalM2,
		PricingTier: "volume",
		PricePerM2:  dec("670"),
		Subtotal:    dec("4371750"),
		Total:       dec("4371750"),
		Status:      status,
		ValidUntil:  fixedNow.AddDate(0, 0, 5),
		Version:     2,
	}
}

func storedOrder(status entities.OrderStatus, depositPaid bool) entities.Order {
	o, err := entities.NewOrderFromQuote("o-1", "PED-20261019-BBBBBB", storedQuote(entities.QuoteStatusApproved), fixedNow)
	if err != nil {
		panic(err)
	}
	o.Status = status
	o.Version = 4
	if depositPaid {
		o.DepositStatus = entities.PaymentStatePaid
		o.DepositMethod = entities.PaymentMethodTransferencia
	}
	return o
}
