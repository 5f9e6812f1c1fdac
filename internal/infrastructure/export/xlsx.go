package export

import (
	"bytes"
	"fmt"
	"time"

	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	quoteSheet  = "Cotizacion"
	remitoSheet = "Remito"
)

// XLSXExporter renders quotes and delivery notes (remitos) as Excel workbooks.
type XLSXExporter struct {
	CompanyName string
}

var _ interfaces.IQuoteExporter = (*XLSXExporter)(nil)

func NewXLSXExporter(companyName string) *XLSXExporter {
	return &XLSXExporter{CompanyName: companyName}
}

func (e *XLSXExporter) ExportQuote(q entities.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", quoteSheet); err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: quoteSheet}
	w.row(e.CompanyName)
	w.row("Cotización", q.QuoteNumber)
	w.row("Cliente", clientLabel(q.ClientName, q.ClientID))
	w.row("Válida hasta", q.ValidUntil.Format("02/01/2006"))
	w.row()
	w.row("Modelo", "Largo (mm)", "Ancho (mm)", "Alto (mm)", "Cantidad", "m² por caja", "m² total")
	for _, it := range q.Items {
		w.row(it.BoxID, it.Box.LengthMM, it.Box.WidthMM, it.Box.HeightMM, it.Quantity, num(it.M2PerBox), num(it.TotalM2))
	}
	w.row()
	w.row("Total m²", num(q.TotalM2))
	w.row("Precio por m²", num(q.PricePerM2))
	w.row("Subtotal", num(q.Subtotal))
	if q.HasPrinting {
		w.row("Impresión", num(q.PrintingCost))
	}
	if q.HasDieCut {
		w.row("Troquelado", num(q.DieCutCost))
	}
	if q.FreeShipping {
		w.row("Envío", "Sin cargo")
	} else {
		w.row("Envío", num(q.ShippingCost))
	}
	w.row("Total", num(q.Total))
	w.row()
	w.row("Entrega estimada", q.EstimatedDelivery.Format("02/01/2006"), fmt.Sprintf("%d días hábiles", q.ProductionDays))
	for _, warning := range q.Warnings {
		w.row("Nota", warning)
	}
	if w.err != nil {
		return nil, w.err
	}
	return write(f)
}

// RemitoWorkbook lists delivered quantities for the truck driver and the client.
func (e *XLSXExporter) RemitoWorkbook(o entities.Order, number string, issuedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", remitoSheet); err != nil {
		return nil, err
	}

	w := &sheetWriter{f: f, sheet: remitoSheet}
	w.row(e.CompanyName)
	w.row("Remito", number)
	w.row("Fecha", issuedAt.Format("02/01/2006"))
	w.row("Pedido", o.OrderNumber)
	w.row("Cliente", clientLabel(o.ClientName, o.ClientID))
	w.row("Vehículo", o.VehicleID)
	w.row()
	w.row("Modelo", "Medidas (mm)", "Cantidad pedida", "Cantidad entregada")
	for _, it := range o.Items {
		delivered := it.Quantity
		if it.QuantityDelivered != nil {
			delivered = *it.QuantityDelivered
		}
		size := fmt.Sprintf("%dx%dx%d", it.Box.LengthMM, it.Box.WidthMM, it.Box.HeightMM)
		w.row(it.BoxID, size, it.Quantity, delivered)
	}
	w.row()
	w.row("m² entregados", num(o.DeliveredTotalM2))
	if w.err != nil {
		return nil, w.err
	}
	return write(f)
}

type sheetWriter struct {
	f     *excelize.File
	sheet string
	next  int
	err   error
}

func (w *sheetWriter) row(values ...interface{}) {
	w.next++
	if w.err != nil || len(values) == 0 {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, w.next)
	if err != nil {
		w.err = err
		return
	}
	w.err = w.f.SetSheetRow(w.sheet, cell, &values)
}

func write(f *excelize.File) ([]byte, error) {
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func num(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func clientLabel(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
