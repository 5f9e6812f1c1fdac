package documents

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase/interfaces"

	"github.com/rs/zerolog/log"
)

var ErrNotConfigured = errors.New("document service not configured")

type remitoRenderer interface {
	RemitoWorkbook(o entities.Order, number string, issuedAt time.Time) ([]byte, error)
}

// Gateway issues dispatch paperwork. Invoices and tax documents (COT) are requested
// from external HTTP services; remitos are rendered locally as workbooks.
type Gateway struct {
	client         *http.Client
	invoiceURL     string
	taxDocumentURL string
	token          string
	remitoDir      string
	remitos        remitoRenderer
	now            func() time.Time
}

var _ interfaces.IDocumentGateway = (*Gateway)(nil)

type Settings struct {
	InvoiceURL     string
	TaxDocumentURL string
	Token          string
	RemitoDir      string
}

// NewGateway leaves per-call deadlines to the caller's context.
func NewGateway(s Settings, remitos remitoRenderer) *Gateway {
	return &Gateway{
		client:         &http.Client{},
		invoiceURL:     strings.TrimRight(s.InvoiceURL, "/"),
		taxDocumentURL: strings.TrimRight(s.TaxDocumentURL, "/"),
		token:          s.Token,
		remitoDir:      s.RemitoDir,
		remitos:        remitos,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

type issueRequest struct {
	OrderID     string `json:"order_id"`
	OrderNumber string `json:"order_number"`
	ClientID    string `json:"client_id"`
	ClientName  string `json:"client_name,omitempty"`
	Total       string `json:"total"`
	TotalM2     string `json:"total_m2"`
	VehicleID   string `json:"vehicle_id,omitempty"`
}

type issueResponse struct {
	Number string `json:"number"`
	URL    string `json:"url"`
}

func (g *Gateway) IssueInvoice(ctx context.Context, o entities.Order) (entities.DispatchDocument, error) {
	return g.issueRemote(ctx, g.invoiceURL, entities.DocumentInvoice, o)
}

func (g *Gateway) IssueTaxDocument(ctx context.Context, o entities.Order) (entities.DispatchDocument, error) {
	return g.issueRemote(ctx, g.taxDocumentURL, entities.DocumentTaxDocument, o)
}

// IssueRemito writes REM-<order number>.xlsx under the remito directory.
func (g *Gateway) IssueRemito(ctx context.Context, o entities.Order) (entities.DispatchDocument, error) {
	if g.remitos == nil || g.remitoDir == "" {
		return entities.DispatchDocument{}, fmt.Errorf("remito: %w", ErrNotConfigured)
	}
	if err := ctx.Err(); err != nil {
		return entities.DispatchDocument{}, err
	}

	issuedAt := g.now()
	number := "REM-" + o.OrderNumber
	data, err := g.remitos.RemitoWorkbook(o, number, issuedAt)
	if err != nil {
		return entities.DispatchDocument{}, err
	}
	if err := os.MkdirAll(g.remitoDir, 0o755); err != nil {
		return entities.DispatchDocument{}, err
	}
	path := filepath.Join(g.remitoDir, number+".xlsx")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return entities.DispatchDocument{}, err
	}
	log.Info().Str("order_id", o.ID).Str("path", path).Msg("[documents] remito written")
	return entities.DispatchDocument{Kind: entities.DocumentRemito, Reference: number, URL: path, IssuedAt: issuedAt}, nil
}

func (g *Gateway) issueRemote(ctx context.Context, url string, kind entities.DocumentKind, o entities.Order) (entities.DispatchDocument, error) {
	if url == "" {
		return entities.DispatchDocument{}, fmt.Errorf("%s: %w", kind, ErrNotConfigured)
	}

	body, err := json.Marshal(issueRequest{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		ClientID:    o.ClientID,
		ClientName:  o.ClientName,
		Total:       o.Total.StringFixed(2),
		TotalM2:     billedM2(o),
		VehicleID:   o.VehicleID,
	})
	if err != nil {
		return entities.DispatchDocument{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return entities.DispatchDocument{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotency-Key", o.ID+":"+string(kind))
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return entities.DispatchDocument{}, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return entities.DispatchDocument{}, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return entities.DispatchDocument{}, fmt.Errorf("%s service returned %d: %s", kind, resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out issueResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return entities.DispatchDocument{}, fmt.Errorf("%s service response: %w", kind, err)
	}
	if out.Number == "" {
		return entities.DispatchDocument{}, fmt.Errorf("%s service response has no number", kind)
	}
	log.Info().Str("order_id", o.ID).Str("document", string(kind)).Str("number", out.Number).Msg("[documents] issued")
	return entities.DispatchDocument{Kind: kind, Reference: out.Number, URL: out.URL, IssuedAt: g.now()}, nil
}

func billedM2(o entities.Order) string {
	if o.QuantitiesConfirmed {
		return o.DeliveredTotalM2.String()
	}
	return o.TotalM2.String()
}
