package interfaces

import "cartonera/internal/domain/entities"

// IQuoteExporter renders a quote as a spreadsheet for the client.
type IQuoteExporter interface {
	ExportQuote(q entities.Quote) ([]byte, error)
}
