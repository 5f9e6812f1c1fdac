package repository

import (
	"context"
	"sort"

	"cartonera/internal/domain/entities"
	"cartonera/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const checksStatusIndex = "status-index"

type checkItem struct {
	ID         string `dynamodbav:"id"`
	OrderID    string `dynamodbav:"order_id"`
	PaymentID  string `dynamodbav:"payment_id"`
	Electronic bool   `dynamodbav:"electronic"`
	Bank       string `dynamodbav:"bank"`
	Number     string `dynamodbav:"number"`
	DueDate    string `dynamodbav:"due_date"`
	Holder     string `dynamodbav:"holder"`
	HolderCUIT string `dynamodbav:"holder_cuit"`
	Amount     string `dynamodbav:"amount"`
	Status     string `dynamodbav:"status"`
	EndorsedTo string `dynamodbav:"endorsed_to,omitempty"`
	Notes      string `dynamodbav:"notes,omitempty"`
	Version    int    `dynamodbav:"version"`
	CreatedAt  string `dynamodbav:"created_at"`
	UpdatedAt  string `dynamodbav:"updated_at"`
	ResolvedAt string `dynamodbav:"resolved_at,omitempty"`
}

// CheckDynamoRepository persists the check portfolio in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: status-index (PK: status)
//
// Checks are created by OrderDynamoRepository.RegisterPayment.
type CheckDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ICheckRepository = (*CheckDynamoRepository)(nil)

func NewCheckDynamoRepository(ddb *dynamodb.Client, tableName string) *CheckDynamoRepository {
	return &CheckDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *CheckDynamoRepository) GetByID(ctx context.Context, id string) (entities.Check, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Check{}, err
	}
	if len(out.Item) == 0 {
		return entities.Check{}, nil
	}

	var it checkItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Check{}, err
	}
	return fromCheckItem(it)
}

func (r *CheckDynamoRepository) ListByStatus(ctx context.Context, status entities.CheckStatus) ([]entities.Check, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(checksStatusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
	})

	var checks []entities.Check
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		decoded, err := decodeChecks(page.Items)
		if err != nil {
			return nil, err
		}
		checks = append(checks, decoded...)
	}
	sortByDueDate(checks)
	return checks, nil
}

func (r *CheckDynamoRepository) ListAll(ctx context.Context) ([]entities.Check, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
	})

	var checks []entities.Check
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		decoded, err := decodeChecks(page.Items)
		if err != nil {
			return nil, err
		}
		checks = append(checks, decoded...)
	}
	sortByDueDate(checks)
	return checks, nil
}

func (r *CheckDynamoRepository) Update(ctx context.Context, c entities.Check) (entities.Check, error) {
	expected := c.Version
	c.Version++
	av, err := attributevalue.MarshalMap(toCheckItem(c))
	if err != nil {
		return entities.Check{}, err
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
		return entities.Check{}, mapWriteError(err, "check", c.ID)
	}
	return c, nil
}

func decodeChecks(raw []map[string]types.AttributeValue) ([]entities.Check, error) {
	out := make([]entities.Check, 0, len(raw))
	for _, av := range raw {
		var it checkItem
		if err := attributevalue.UnmarshalMap(av, &it); err != nil {
			return nil, err
		}
		c, err := fromCheckItem(it)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Nearest due date first, which is how the portfolio is worked.
func sortByDueDate(checks []entities.Check) {
	sort.SliceStable(checks, func(i, j int) bool { return checks[i].DueDate.Before(checks[j].DueDate) })
}

func toCheckItem(c entities.Check) checkItem {
	return checkItem{
		ID:         c.ID,
		OrderID:    c.OrderID,
		PaymentID:  c.PaymentID,
		Electronic: c.Electronic,
		Bank:       c.Bank,
		Number:     c.Number,
		DueDate:    formatTime(c.DueDate),
		Holder:     c.Holder,
		HolderCUIT: c.HolderCUIT,
		Amount:     decString(c.Amount),
		Status:     string(c.Status),
		EndorsedTo: c.EndorsedTo,
		Notes:      c.Notes,
		Version:    c.Version,
		CreatedAt:  formatTime(c.CreatedAt),
		UpdatedAt:  formatTime(c.UpdatedAt),
		ResolvedAt: formatTimePtr(c.ResolvedAt),
	}
}

func fromCheckItem(it checkItem) (entities.Check, error) {
	dc := newItemDecoder("check", it.ID)
	c := entities.Check{
		ID:         it.ID,
		OrderID:    it.OrderID,
		PaymentID:  it.PaymentID,
		Electronic: it.Electronic,
		Bank:       it.Bank,
		Number:     it.Number,
		DueDate:    dc.time(it.DueDate),
		Holder:     it.Holder,
		HolderCUIT: it.HolderCUIT,
		Amount:     dc.decimal(it.Amount),
		Status:     entities.CheckStatus(it.Status),
		EndorsedTo: it.EndorsedTo,
		Notes:      it.Notes,
		Version:    it.Version,
		CreatedAt:  dc.time(it.CreatedAt),
		UpdatedAt:  dc.time(it.UpdatedAt),
		ResolvedAt: dc.timePtr(it.ResolvedAt),
	}
	return c, dc.err
}
