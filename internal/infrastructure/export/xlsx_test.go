package export

import (
	"bytes"
	"testing"
	"time"

	"cartonera/internal/domain/entities"
	"cartonera/internal/domain/geometry"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleQuote() entities.Quote {
	item := entities.NewLineItem("item-1", "CAJA-40", geometry.BoxSpec{LengthMM: 400, WidthMM: 300, HeightMM: 300}, 7500)
	return entities.Quote{
		QuoteNumber:       "COT-20261019-ABC123",
		ClientName:        "Envases del Sur SA",
		Items:             []entities.LineItem{item},
		TotalM2:           item.TotalM2,
		PricePerM2:        decimal.RequireFromString("670"),
		Subtotal:          decimal.RequireFromString("4371750"),
		Total:             decimal.RequireFromString("4371750"),
		FreeShipping:      true,
		ProductionDays:    7,
		EstimatedDelivery: time.Date(2026, time.October, 28, 0, 0, 0, 0, time.UTC),
		ValidUntil:        time.Date(2026, time.November, 3, 0, 0, 0, 0, time.UTC),
	}
}

func TestExportQuote(t *testing.T) {
	data, err := NewXLSXExporter("Cartonera").ExportQuote(sampleQuote())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{quoteSheet}, f.GetSheetList())
	v, err := f.GetCellValue(quoteSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "COT-20261019-ABC123", v)

	rows, err := f.GetRows(quoteSheet)
	require.NoError(t, err)
	var found bool
	for _, r := range rows {
		if len(r) >= 2 && r[0] == "Envío" {
			found = true
			assert.Equal(t, "Sin cargo", r[1])
		}
	}
	assert.True(t, found, "shipping row missing")
}

func TestRemitoWorkbook_UsesDeliveredQuantities(t *testing.T) {
	q := sampleQuote()
	delivered := 7000
	q.Items[0].QuantityDelivered = &delivered
	o := entities.Order{OrderNumber: "PED-1", ClientID: "client-1", Items: q.Items, VehicleID: "AB123CD"}

	data, err := NewXLSXExporter("Cartonera").RemitoWorkbook(o, "R-0001", time.Date(2026, time.October, 30, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(remitoSheet)
	require.NoError(t, err)
	// company, number, date, order, client, vehicle, blank, header, item
	require.GreaterOrEqual(t, len(rows), 9)
	assert.Equal(t, []string{"CAJA-40", "400x300x300", "7500", "7000"}, rows[8])
	assert.Equal(t, "client-1", rows[4][1])
}
