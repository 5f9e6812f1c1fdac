package repository

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"cartonera/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

// Amounts and areas are stored as decimal strings so they round-trip exactly.
func decString(d decimal.Decimal) string {
	return d.String()
}

func decPtrString(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func formatTimePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return formatTime(*t)
}

// itemDecoder maps stored strings back to decimals and times. It keeps the first
// malformed value so a corrupt row fails the read instead of loading as zero.
type itemDecoder struct {
	what string
	id   string
	err  error
}

func newItemDecoder(what, id string) *itemDecoder {
	return &itemDecoder{what: what, id: id}
}

func (d *itemDecoder) fail(s string, err error) {
	if d.err == nil {
		d.err = fmt.Errorf("%s %s: malformed stored value %q: %w", d.what, d.id, s, err)
	}
}

func (d *itemDecoder) decimal(s string) decimal.Decimal {
	if s == "" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		d.fail(s, err)
		return decimal.Zero
	}
	return v
}

func (d *itemDecoder) decimalPtr(s string) *decimal.Decimal {
	if s == "" {
		return nil
	}
	v := d.decimal(s)
	return &v
}

func (d *itemDecoder) time(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		d.fail(s, err)
	}
	return t
}

func (d *itemDecoder) timePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t := d.time(s)
	return &t
}

// putNew writes an item that must not exist yet.
func putNew(table string, item map[string]types.AttributeValue) *types.Put {
	return &types.Put{
		TableName:           aws.String(table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	}
}

// putPayment writes a new payment row, or re-applies an approved row already stored for
// the same order (a provider charge whose order write was lost).
func putPayment(table string, item map[string]types.AttributeValue, orderID string) *types.Put {
	return &types.Put{
		TableName:           aws.String(table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#id) OR (#order_id = :order_id AND #status = :approved)"),
		ExpressionAttributeNames: map[string]string{
			"#id":       "id",
			"#order_id": "order_id",
			"#status":   "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":order_id": &types.AttributeValueMemberS{Value: orderID},
			":approved": &types.AttributeValueMemberS{Value: string(entities.PaymentStatusApproved)},
		},
	}
}

// numberGuardItem reserves a human-facing number in its aggregate's table. It carries no
// index attributes, so queries never return it.
type numberGuardItem struct {
	ID      string `dynamodbav:"id"`
	OwnerID string `dynamodbav:"owner_id"`
}

func numberGuardKey(prefix, number string) string {
	return prefix + "#" + number
}

func putNumberGuard(table, prefix, number, ownerID string) (*types.Put, error) {
	av, err := attributevalue.MarshalMap(numberGuardItem{ID: numberGuardKey(prefix, number), OwnerID: ownerID})
	if err != nil {
		return nil, err
	}
	return putNew(table, av), nil
}

// cancelledAt reports whether a transaction was cancelled by the condition of item i.
func cancelledAt(err error, i int) bool {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) || i >= len(tce.CancellationReasons) {
		return false
	}
	code := tce.CancellationReasons[i].Code
	return code != nil && *code == "ConditionalCheckFailed"
}

// putVersioned replaces an item only if the stored version still equals expected.
func putVersioned(table string, item map[string]types.AttributeValue, expected int) *types.Put {
	return &types.Put{
		TableName:           aws.String(table),
		Item:                item,
		ConditionExpression: aws.String("attribute_exists(#id) AND #version = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#version": "version",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":expected": &types.AttributeValueMemberN{Value: strconv.Itoa(expected)},
		},
	}
}

// mapWriteError turns a failed condition into a concurrent-modification domain error.
func mapWriteError(err error, what, id string) error {
	if err == nil {
		return nil
	}
	var cfe *types.ConditionalCheckFailedException
	var tce *types.TransactionCanceledException
	if errors.As(err, &cfe) || errors.As(err, &tce) {
		return entities.NewDomainError(entities.KindConcurrentModification,
			"%s %s was modified by another process, reload and retry", what, id)
	}
	return err
}
