package repository

import (
	"context"

	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"
)

const ordersQuoteIDIndex = "quote_id-index"

type statusChangeItem struct {
	From  string `dynamodbav:"from"`
	To    string `dynamodbav:"to"`
	At    string `dynamodbav:"at"`
	Notes string `dynamodbav:"notes,omitempty"`
}

type documentItem struct {
	Kind      string `dynamodbav:"kind"`
	Reference string `dynamodbav:"reference"`
	URL       string `dynamodbav:"url,omitempty"`
	IssuedAt  string `dynamodbav:"issued_at"`
}

type orderItem struct {
	ID          string         `dynamodbav:"id"`
	OrderNumber string         `dynamodbav:"order_number"`
	QuoteID     string         `dynamodbav:"quote_id"`
	QuoteNumber string         `dynamodbav:"quote_number"`
	ClientID    string         `dynamodbav:"client_id"`
	ClientName  string         `dynamodbav:"client_name,omitempty"`
	Items       []lineItemItem `dynamodbav:"items"`

	TotalM2      string `dynamodbav:"total_m2"`
	PricePerM2   string `dynamodbav:"price_per_m2"`
	Subtotal     string `dynamodbav:"subtotal"`
	PrintingCost string `dynamodbav:"printing_cost"`
	DieCutCost   string `dynamodbav:"die_cut_cost"`
	ShippingCost string `dynamodbav:"shipping_cost"`
	Total        string `dynamodbav:"total"`

	DepositAmount string `dynamodbav:"deposit_amount"`
	DepositStatus string `dynamodbav:"deposit_status"`
	DepositMethod string `dynamodbav:"deposit_method,omitempty"`
	DepositPaidAt string `dynamodbav:"deposit_paid_at,omitempty"`
	BalanceAmount string `dynamodbav:"balance_amount"`
	BalanceStatus string `dynamodbav:"balance_status"`
	BalanceMethod string `dynamodbav:"balance_method,omitempty"`
	BalancePaidAt string `dynamodbav:"balance_paid_at,omitempty"`

	Status string `dynamodbav:"status"`

	QuantitiesConfirmed   bool   `dynamodbav:"quantities_confirmed"`
	QuantitiesConfirmedAt string `dynamodbav:"quantities_confirmed_at,omitempty"`
	DeliveredTotalM2      string `dynamodbav:"delivered_total_m2,omitempty"`
	OriginalSubtotal      string `dynamodbav:"original_subtotal"`
	OriginalTotal         string `dynamodbav:"original_total"`

	VehicleID    string         `dynamodbav:"vehicle_id,omitempty"`
	Documents    []documentItem `dynamodbav:"documents,omitempty"`
	DispatchedAt string         `dynamodbav:"dispatched_at,omitempty"`
	DeliveredAt  string         `dynamodbav:"delivered_at,omitempty"`
	CancelledAt  string         `dynamodbav:"cancelled_at,omitempty"`
	CancelReason string         `dynamodbav:"cancel_reason,omitempty"`

	History []statusChangeItem `dynamodbav:"history,omitempty"`

	Version   int    `dynamodbav:"version"`
	CreatedAt string `dynamodbav:"created_at"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// OrderDynamoRepository persists Order aggregates in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: quote_id-index (PK: quote_id)
//
// RegisterPayment also writes to the payments and checks tables inside one transaction.
type OrderDynamoRepository struct {
	ddb           *dynamodb.Client
	tableName     string
	paymentsTable string
	checksTable   string
}

var _ interfaces.IOrderRepository = (*OrderDynamoRepository)(nil)

func NewOrderDynamoRepository(ddb *dynamodb.Client, ordersTable, paymentsTable, checksTable string) *OrderDynamoRepository {
	return &OrderDynamoRepository{
		ddb:           ddb,
		tableName:     ordersTable,
		paymentsTable: paymentsTable,
		checksTable:   checksTable,
	}
}

func (r *OrderDynamoRepository) GetByID(ctx context.Context, id string) (entities.Order, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Item) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it)
}

func (r *OrderDynamoRepository) GetByQuoteID(ctx context.Context, quoteID string) (entities.Order, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(ordersQuoteIDIndex),
		KeyConditionExpression: aws.String("quote_id = :qid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":qid": &types.AttributeValueMemberS{Value: quoteID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Order{}, err
	}
	if len(out.Items) == 0 {
		return entities.Order{}, nil
	}

	var it orderItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &it); err != nil {
		return entities.Order{}, err
	}
	return fromOrderItem(it)
}

func (r *OrderDynamoRepository) Update(ctx context.Context, o entities.Order) (entities.Order, error) {
	expected := o.Version
	o.Version++
	av, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
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
		return entities.Order{}, mapWriteError(err, "order", o.ID)
	}
	return o, nil
}

func (r *OrderDynamoRepository) RegisterPayment(ctx context.Context, o entities.Order, p entities.Payment, c *entities.Check) (entities.Order, error) {
	expected := o.Version
	o.Version++

	oav, err := attributevalue.MarshalMap(toOrderItem(o))
	if err != nil {
		return entities.Order{}, err
	}
	pav, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Order{}, err
	}

	writes := []types.TransactWriteItem{
		{Put: putVersioned(r.tableName, oav, expected)},
		{Put: putPayment(r.paymentsTable, pav, p.OrderID)},
	}
	if c != nil {
		check := *c
		check.Version = 1
		cav, err := attributevalue.MarshalMap(toCheckItem(check))
		if err != nil {
			return entities.Order{}, err
		}
		writes = append(writes, types.TransactWriteItem{Put: putNew(r.checksTable, cav)})
	}

	if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: writes}); err != nil {
		log.Warn().Err(err).Str("order_id", o.ID).Str("payment_id", p.ID).Msg("[payment][repository] transaction failed")
		return entities.Order{}, mapWriteError(err, "order", o.ID)
	}
	return o, nil
}

func toOrderItem(o entities.Order) orderItem {
	history := make([]statusChangeItem, 0, len(o.History))
	for _, h := range o.History {
		history = append(history, statusChangeItem{
			From:  string(h.From),
			To:    string(h.To),
			At:    formatTime(h.At),
			Notes: h.Notes,
		})
	}
	docs := make([]documentItem, 0, len(o.Documents))
	for _, d := range o.Documents {
		docs = append(docs, documentItem{
			Kind:      string(d.Kind),
			Reference: d.Reference,
			URL:       d.URL,
			IssuedAt:  formatTime(d.IssuedAt),
		})
	}

	delivered := ""
	if o.QuantitiesConfirmed {
		delivered = decString(o.DeliveredTotalM2)
	}

	return orderItem{
		ID:                    o.ID,
		OrderNumber:           o.OrderNumber,
		QuoteID:               o.QuoteID,
		QuoteNumber:           o.QuoteNumber,
		ClientID:              o.ClientID,
		ClientName:            o.ClientName,
		Items:                 toLineItemItems(o.Items),
		TotalM2:               decString(o.TotalM2),
		PricePerM2:            decString(o.PricePerM2),
		Subtotal:              decString(o.Subtotal),
		PrintingCost:          decString(o.PrintingCost),
		DieCutCost:            decString(o.DieCutCost),
		ShippingCost:          decString(o.ShippingCost),
		Total:                 decString(o.Total),
		DepositAmount:         decString(o.DepositAmount),
		DepositStatus:         string(o.DepositStatus),
		DepositMethod:         string(o.DepositMethod),
		DepositPaidAt:         formatTimePtr(o.DepositPaidAt),
		BalanceAmount:         decString(o.BalanceAmount),
		BalanceStatus:         string(o.BalanceStatus),
		BalanceMethod:         string(o.BalanceMethod),
		BalancePaidAt:         formatTimePtr(o.BalancePaidAt),
		Status:                string(o.Status),
		QuantitiesConfirmed:   o.QuantitiesConfirmed,
		QuantitiesConfirmedAt: formatTimePtr(o.QuantitiesConfirmedAt),
		DeliveredTotalM2:      delivered,
		OriginalSubtotal:      decString(o.OriginalSubtotal),
		OriginalTotal:         decString(o.OriginalTotal),
		VehicleID:             o.VehicleID,
		Documents:             docs,
		DispatchedAt:          formatTimePtr(o.DispatchedAt),
		DeliveredAt:           formatTimePtr(o.DeliveredAt),
		CancelledAt:           formatTimePtr(o.CancelledAt),
		CancelReason:          o.CancelReason,
		History:               history,
		Version:               o.Version,
		CreatedAt:             formatTime(o.CreatedAt),
		UpdatedAt:             formatTime(o.UpdatedAt),
	}
}

func fromOrderItem(it orderItem) (entities.Order, error) {
	dc := newItemDecoder("order", it.ID)
	var history []entities.StatusChange
	for _, h := range it.History {
		history = append(history, entities.StatusChange{
			From:  entities.OrderStatus(h.From),
			To:    entities.OrderStatus(h.To),
			At:    dc.time(h.At),
			Notes: h.Notes,
		})
	}
	var docs []entities.DispatchDocument
	for _, d := range it.Documents {
		docs = append(docs, entities.DispatchDocument{
			Kind:      entities.DocumentKind(d.Kind),
			Reference: d.Reference,
			URL:       d.URL,
			IssuedAt:  dc.time(d.IssuedAt),
		})
	}

	o := entities.Order{
		ID:                    it.ID,
		OrderNumber:           it.OrderNumber,
		QuoteID:               it.QuoteID,
		QuoteNumber:           it.QuoteNumber,
		ClientID:              it.ClientID,
		ClientName:            it.ClientName,
		Items:                 fromLineItemItems(dc, it.Items),
		TotalM2:               dc.decimal(it.TotalM2),
		PricePerM2:            dc.decimal(it.PricePerM2),
		Subtotal:              dc.decimal(it.Subtotal),
		PrintingCost:          dc.decimal(it.PrintingCost),
		DieCutCost:            dc.decimal(it.DieCutCost),
		ShippingCost:          dc.decimal(it.ShippingCost),
		Total:                 dc.decimal(it.Total),
		DepositAmount:         dc.decimal(it.DepositAmount),
		DepositStatus:         entities.PaymentState(it.DepositStatus),
		DepositMethod:         entities.PaymentMethod(it.DepositMethod),
		DepositPaidAt:         dc.timePtr(it.DepositPaidAt),
		BalanceAmount:         dc.decimal(it.BalanceAmount),
		BalanceStatus:         entities.PaymentState(it.BalanceStatus),
		BalanceMethod:         entities.PaymentMethod(it.BalanceMethod),
		BalancePaidAt:         dc.timePtr(it.BalancePaidAt),
		Status:                entities.OrderStatus(it.Status),
		QuantitiesConfirmed:   it.QuantitiesConfirmed,
		QuantitiesConfirmedAt: dc.timePtr(it.QuantitiesConfirmedAt),
		DeliveredTotalM2:      dc.decimal(it.DeliveredTotalM2),
		OriginalSubtotal:      dc.decimal(it.OriginalSubtotal),
		OriginalTotal:         dc.decimal(it.OriginalTotal),
		VehicleID:             it.VehicleID,
		Documents:             docs,
		DispatchedAt:          dc.timePtr(it.DispatchedAt),
		DeliveredAt:           dc.timePtr(it.DeliveredAt),
		CancelledAt:           dc.timePtr(it.CancelledAt),
		CancelReason:          it.CancelReason,
		History:               history,
		Version:               it.Version,
		CreatedAt:             dc.time(it.CreatedAt),
		UpdatedAt:             dc.time(it.UpdatedAt),
	}
	return o, dc.err
}
