package repository

import (
	"context"
	"fmt"

	"cartonera/internal/domain/entities"
	"cartonera/internal/domain/geometry"
	"cartonera/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"
)

const quotesStatusIndex = "status-index"

// Key prefixes of the rows reserving quote and order numbers.
const (
	quoteNumberPrefix = "quote_number"
	orderNumberPrefix = "order_number"
)

type lineItemItem struct {
	ID                string `dynamodbav:"id"`
	BoxID             string `dynamodbav:"box_id,omitempty"`
	LengthMM          int    `dynamodbav:"length_mm"`
	WidthMM           int    `dynamodbav:"width_mm"`
	HeightMM          int    `dynamodbav:"height_mm"`
	Quantity          int    `dynamodbav:"quantity"`
	QuantityDelivered *int   `dynamodbav:"quantity_delivered,omitempty"`
	UnfoldedWidthMM   int    `dynamodbav:"unfolded_width_mm"`
	UnfoldedLengthMM  int    `dynamodbav:"unfolded_length_mm"`
	M2PerBox          string `dynamodbav:"m2_per_box"`
	TotalM2           string `dynamodbav:"total_m2"`
}

type quoteItem struct {
	ID          string         `dynamodbav:"id"`
	QuoteNumber string         `dynamodbav:"quote_number"`
	ClientID    string         `dynamodbav:"client_id"`
	ClientName  string         `dynamodbav:"client_name,omitempty"`
	Items       []lineItemItem `dynamodbav:"items"`

	TotalM2      string `dynamodbav:"total_m2"`
	PricingTier  string `dynamodbav:"pricing_tier"`
	PricePerM2   string `dynamodbav:"price_per_m2"`
	Subtotal     string `dynamodbav:"subtotal"`
	PrintingCost string `dynamodbav:"printing_cost"`
	DieCutCost   string `dynamodbav:"die_cut_cost"`
	ShippingCost string `dynamodbav:"shipping_cost"`
	Total        string `dynamodbav:"total"`

	HasPrinting       bool     `dynamodbav:"has_printing"`
	HasDieCut         bool     `dynamodbav:"has_die_cut"`
	FreeShipping      bool     `dynamodbav:"free_shipping"`
	ShippingNotes     string   `dynamodbav:"shipping_notes,omitempty"`
	ProductionDays    int      `dynamodbav:"production_days"`
	EstimatedDelivery string   `dynamodbav:"estimated_delivery,omitempty"`
	Warnings          []string `dynamodbav:"warnings,omitempty"`
	PricingConfigID   string   `dynamodbav:"pricing_config_id,omitempty"`

	Status             string `dynamodbav:"status"`
	ValidUntil         string `dynamodbav:"valid_until"`
	ConvertedToOrderID string `dynamodbav:"converted_to_order_id,omitempty"`
	RejectionReason    string `dynamodbav:"rejection_reason,omitempty"`

	Version    int    `dynamodbav:"version"`
	CreatedAt  string `dynamodbav:"created_at"`
	UpdatedAt  string `dynamodbav:"updated_at"`
	SentAt     string `dynamodbav:"sent_at,omitempty"`
	ApprovedAt string `dynamodbav:"approved_at,omitempty"`
}

// QuoteDynamoRepository persists Quote aggregates in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: status-index (PK: status)
//
// Orders live in their own table; ConvertQuote writes to both in one transaction.
type QuoteDynamoRepository struct {
	ddb         *dynamodb.Client
	tableName   string
	ordersTable string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb *dynamodb.Client, quotesTable, ordersTable string) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{ddb: ddb, tableName: quotesTable, ordersTable: ordersTable}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	q.Version = 1
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}

	guard, err := putNumberGuard(r.tableName, quoteNumberPrefix, q.QuoteNumber, q.ID)
	if err != nil {
		return entities.Quote{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: putNew(r.tableName, av)},
			{Put: guard},
		},
	})
	if cancelledAt(err, 1) {
		return entities.Quote{}, fmt.Errorf("quote number %s: %w", q.QuoteNumber, interfaces.ErrNumberTaken)
	}
	if err != nil {
		return entities.Quote{}, mapWriteError(err, "quote", q.ID)
	}
	return q, nil
}

func (r *QuoteDynamoRepository) GetByID(ctx context.Context, id string) (entities.Quote, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}

	var it quoteItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it)
}

func (r *QuoteDynamoRepository) Update(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	expected := q.Version
	q.Version++
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
	}

	put := putVersioned(r.tableName, av, expected)
	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 put.TableName,
		Item:                      put.Item,
		ConditionExpression:       put.ConditionExpression,
		ExpressionAttributeNames:  put.ExpressionAttributeNames,
		ExpressionAttributeValues: put.ExpressionAttributeValues,
	})
	if err != nil {
		return entities.Quote{}, mapWriteError(err, "quote", q.ID)
	}
	return q, nil
}

func (r *QuoteDynamoRepository) ListByStatuses(ctx context.Context, statuses []entities.QuoteStatus) ([]entities.Quote, error) {
	var quotes []entities.Quote
	for _, status := range statuses {
		p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(quotesStatusIndex),
			KeyConditionExpression: aws.String("#status = :status"),
			ExpressionAttributeNames: map[string]string{
				"#status": "status",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":status": &types.AttributeValueMemberS{Value: string(status)},
			},
		})
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			for _, raw := range page.Items {
				var it quoteItem
				if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
					return nil, err
				}
				q, err := fromQuoteItem(it)
				if err != nil {
					return nil, err
				}
				quotes = append(quotes, q)
			}
		}
	}
	return quotes, nil
}

// ConvertQuote stores the converted quote and creates the order atomically. If the quote
// changed since it was read, or the order id or number exists, nothing is written.
func (r *QuoteDynamoRepository) ConvertQuote(ctx context.Context, q entities.Quote, o entities.Order) (entities.Quote, entities.Order, error) {
	expected := q.Version
	q.Version++
	o.Version = 1

	qav, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, entities.Order{}, err
	}
	oav, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Quote{}, entities.Order{}, err
	}

	guard, err := putNumberGuard(r.ordersTable, orderNumberPrefix, o.OrderNumber, o.ID)
	if err != nil {
		return entities.Quote{}, entities.Order{}, err
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{Put: putVersioned(r.tableName, qav, expected)},
			{Put: putNew(r.ordersTable, oav)},
			{Put: guard},
		},
	})
	if cancelledAt(err, 2) && !cancelledAt(err, 0) {
		return entities.Quote{}, entities.Order{}, fmt.Errorf("order number %s: %w", o.OrderNumber, interfaces.ErrNumberTaken)
	}
	if err != nil {
		log.Warn().Err(err).Str("quote_id", q.ID).Str("order_id", o.ID).Msg("[quote][repository] convert transaction failed")
		return entities.Quote{}, entities.Order{}, mapWriteError(err, "quote", q.ID)
	}
	return q, o, nil
}

func toLineItemItems(items []entities.LineItem) []lineItemItem {
	out := make([]lineItemItem, 0, len(items))
	for _, i := range items {
		out = append(out, lineItemItem{
			ID:                i.ID,
			BoxID:             i.BoxID,
			LengthMM:          i.Box.LengthMM,
			WidthMM:           i.Box.WidthMM,
			HeightMM:          i.Box.HeightMM,
			Quantity:          i.Quantity,
			QuantityDelivered: i.QuantityDelivered,
			UnfoldedWidthMM:   i.UnfoldedWidthMM,
			UnfoldedLengthMM:  i.UnfoldedLengthMM,
			M2PerBox:          decString(i.M2PerBox),
			TotalM2:           decString(i.TotalM2),
		})
	}
	return out
}

func fromLineItemItems(dc *itemDecoder, items []lineItemItem) []entities.LineItem {
	out := make([]entities.LineItem, 0, len(items))
	for _, i := range items {
		out = append(out, entities.LineItem{
			ID:                i.ID,
			BoxID:             i.BoxID,
			Box:               geometry.BoxSpec{LengthMM: i.LengthMM, WidthMM: i.WidthMM, HeightMM: i.HeightMM},
			Quantity:          i.Quantity,
			QuantityDelivered: i.QuantityDelivered,
			UnfoldedWidthMM:   i.UnfoldedWidthMM,
			UnfoldedLengthMM:  i.UnfoldedLengthMM,
			M2PerBox:          dc.decimal(i.M2PerBox),
			TotalM2:           dc.decimal(i.TotalM2),
		})
	}
	return out
}

func toQuoteItem(q entities.Quote) quoteItem {
	return quoteItem{
		ID:                 q.ID,
		QuoteNumber:        q.QuoteNumber,
		ClientID:           q.ClientID,
		ClientName:         q.ClientName,
		Items:              toLineItemItems(q.Items),
		TotalM2:            decString(q.TotalM2),
		PricingTier:        q.PricingTier,
		PricePerM2:         decString(q.PricePerM2),
		Subtotal:           decString(q.Subtotal),
		PrintingCost:       decString(q.PrintingCost),
		DieCutCost:         decString(q.DieCutCost),
		ShippingCost:       decString(q.ShippingCost),
		Total:              decString(q.Total),
		HasPrinting:        q.HasPrinting,
		HasDieCut:          q.HasDieCut,
		FreeShipping:       q.FreeShipping,
		ShippingNotes:      q.ShippingNotes,
		ProductionDays:     q.ProductionDays,
		EstimatedDelivery:  formatTime(q.EstimatedDelivery),
		Warnings:           q.Warnings,
		PricingConfigID:    q.PricingConfigID,
		Status:             string(q.Status),
		ValidUntil:         formatTime(q.ValidUntil),
		ConvertedToOrderID: q.ConvertedToOrderID,
		RejectionReason:    q.RejectionReason,
		Version:            q.Version,
		CreatedAt:          formatTime(q.CreatedAt),
		UpdatedAt:          formatTime(q.UpdatedAt),
		SentAt:             formatTimePtr(q.SentAt),
		ApprovedAt:         formatTimePtr(q.ApprovedAt),
	}
}

func fromQuoteItem(it quoteItem) (entities.Quote, error) {
	dc := newItemDecoder("quote", it.ID)
	q := entities.Quote{
		ID:                 it.ID,
		QuoteNumber:        it.QuoteNumber,
		ClientID:           it.ClientID,
		ClientName:         it.ClientName,
		Items:              fromLineItemItems(dc, it.Items),
		TotalM2:            dc.decimal(it.TotalM2),
		PricingTier:        it.PricingTier,
		PricePerM2:         dc.decimal(it.PricePerM2),
		Subtotal:           dc.decimal(it.Subtotal),
		PrintingCost:       dc.decimal(it.PrintingCost),
		DieCutCost:         dc.decimal(it.DieCutCost),
		ShippingCost:       dc.decimal(it.ShippingCost),
		Total:              dc.decimal(it.Total),
		HasPrinting:        it.HasPrinting,
		HasDieCut:          it.HasDieCut,
		FreeShipping:       it.FreeShipping,
		ShippingNotes:      it.ShippingNotes,
		ProductionDays:     it.ProductionDays,
		EstimatedDelivery:  dc.time(it.EstimatedDelivery),
		Warnings:           it.Warnings,
		PricingConfigID:    it.PricingConfigID,
		Status:             entities.QuoteStatus(it.Status),
		ValidUntil:         dc.time(it.ValidUntil),
		ConvertedToOrderID: it.ConvertedToOrderID,
		RejectionReason:    it.RejectionReason,
		Version:            it.Version,
		CreatedAt:          dc.time(it.CreatedAt),
		UpdatedAt:          dc.time(it.UpdatedAt),
		SentAt:             dc.timePtr(it.SentAt),
		ApprovedAt:         dc.timePtr(it.ApprovedAt),
	}
	return q, dc.err
}
