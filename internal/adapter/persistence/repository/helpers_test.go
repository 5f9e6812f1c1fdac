package repository

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"cartonera/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapWriteError(t *testing.T) {
	assert.NoError(t, mapWriteError(nil, "order", "o-1"))

	plain := errors.New("throttled")
	assert.Same(t, plain, mapWriteError(plain, "order", "o-1"))

	conditional := fmt.Errorf("put: %w", &types.ConditionalCheckFailedException{})
	err := mapWriteError(conditional, "order", "o-1")
	assert.ErrorIs(t, err, entities.ErrConcurrentModification)
	assert.Contains(t, err.Error(), "o-1")

	cancelled := &types.TransactionCanceledException{}
	assert.ErrorIs(t, mapWriteError(cancelled, "quote", "q-1"), entities.ErrConcurrentModification)
}

func TestItemDecoder(t *testing.T) {
	dc := newItemDecoder("order", "o-1")
	assert.True(t, dc.decimal("").IsZero())
	assert.Equal(t, "2185875.5", decString(dc.decimal("2185875.50")))
	assert.Nil(t, dc.decimalPtr(""))
	assert.Equal(t, "", decPtrString(nil))

	assert.Equal(t, "", formatTime(time.Time{}))
	assert.True(t, dc.time("").IsZero())
	assert.Nil(t, dc.timePtr(""))

	at := time.Date(2026, time.October, 19, 9, 30, 0, 0, time.FixedZone("ART", -3*3600))
	assert.True(t, at.Equal(dc.time(formatTime(at))))
	assert.NoError(t, dc.err)
}

func TestItemDecoder_KeepsFirstMalformedValue(t *testing.T) {
	dc := newItemDecoder("order", "o-1")
	assert.True(t, dc.decimal("garbage").IsZero())
	dc.time("yesterday")

	require.Error(t, dc.err)
	assert.Contains(t, dc.err.Error(), "order o-1")
	assert.Contains(t, dc.err.Error(), `"garbage"`)
}

func TestPutVersionedCondition(t *testing.T) {
	put := putVersioned("orders", nil, 4)
	require.NotNil(t, put.ConditionExpression)
	assert.Equal(t, "attribute_exists(#id) AND #version = :expected", *put.ConditionExpression)
	assert.Equal(t, &types.AttributeValueMemberN{Value: "4"}, put.ExpressionAttributeValues[":expected"])
}

func TestPutPaymentCondition(t *testing.T) {
	put := putPayment("payments", nil, "o-1")
	require.NotNil(t, put.ConditionExpression)
	assert.Equal(t, "attribute_not_exists(#id) OR (#order_id = :order_id AND #status = :approved)", *put.ConditionExpression)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "o-1"}, put.ExpressionAttributeValues[":order_id"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "approved"}, put.ExpressionAttributeValues[":approved"])
}

func TestPutNumberGuard(t *testing.T) {
	put, err := putNumberGuard("quotes", quoteNumberPrefix, "COT-20261019-ABC123", "q-1")
	require.NoError(t, err)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "quote_number#COT-20261019-ABC123"}, put.Item["id"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "q-1"}, put.Item["owner_id"])
	assert.Equal(t, "attribute_not_exists(#id)", *put.ConditionExpression)
	assert.NotContains(t, put.Item, "status")
}

func TestCancelledAt(t *testing.T) {
	failed, none := "ConditionalCheckFailed", "None"
	err := fmt.Errorf("transact: %w", &types.TransactionCanceledException{
		CancellationReasons: []types.CancellationReason{{Code: &none}, {Code: &failed}},
	})

	assert.False(t, cancelledAt(err, 0))
	assert.True(t, cancelledAt(err, 1))
	assert.False(t, cancelledAt(err, 2))
	assert.False(t, cancelledAt(errors.New("throttled"), 1))
	assert.False(t, cancelledAt(nil, 0))
}

func TestOrderItem_KeepsMoneyExact(t *testing.T) {
	paidAt := time.Date(2026, time.October, 20, 12, 0, 0, 0, time.UTC)
	delivered := 7000
	o := entities.Order{
		ID:            "o-1",
		Status:        entities.OrderStatusShipped,
		Total:         decimal.RequireFromString("4180300.33"),
		DepositAmount: decimal.RequireFromString("2235875"),
		DepositStatus: entities.PaymentStatePaid,
		DepositPaidAt: &paidAt,
		Items: []entities.LineItem{{
			ID:                "item-1",
			Quantity:          7500,
			QuantityDelivered: &delivered,
			M2PerBox:          decimal.RequireFromString("0.87"),
			TotalM2:           decimal.RequireFromString("6525"),
		}},
		QuantitiesConfirmed: true,
		DeliveredTotalM2:    decimal.RequireFromString("6090"),
		History: []entities.StatusChange{
			{From: entities.OrderStatusReady, To: entities.OrderStatusShipped, At: paidAt},
		},
		Version: 7,
	}

	av, err := attributevalue.MarshalMap(toOrderItem(o))
	require.NoError(t, err)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "4180300.33"}, av["total"])

	var it orderItem
	require.NoError(t, attributevalue.UnmarshalMap(av, &it))
	got, err := fromOrderItem(it)
	require.NoError(t, err)

	assert.True(t, o.Total.Equal(got.Total))
	assert.True(t, o.DeliveredTotalM2.Equal(got.DeliveredTotalM2))
	require.NotNil(t, got.DepositPaidAt)
	assert.True(t, paidAt.Equal(*got.DepositPaidAt))
	require.Len(t, got.Items, 1)
	require.NotNil(t, got.Items[0].QuantityDelivered)
	assert.Equal(t, 7000, *got.Items[0].QuantityDelivered)
	require.Len(t, got.History, 1)
	assert.Equal(t, entities.OrderStatusShipped, got.History[0].To)
	assert.Nil(t, got.BalancePaidAt)
	assert.Equal(t, 7, got.Version)
}

func TestFromOrderItem_RejectsCorruptMoney(t *testing.T) {
	it := toOrderItem(entities.Order{ID: "o-1", Total: decimal.RequireFromString("4080300")})
	it.DepositAmount = "2.04O.150"

	_, err := fromOrderItem(it)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "order o-1")
}

func TestFromPaymentItem_RejectsCorruptDate(t *testing.T) {
	_, err := fromPaymentItem(paymentItem{ID: "p-1", Amount: "2185875", Date: "19/10/2026"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payment p-1")
}
