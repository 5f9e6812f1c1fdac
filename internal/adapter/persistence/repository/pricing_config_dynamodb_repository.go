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

type pricingConfigItem struct {
	ID      string `dynamodbav:"id"`
	Version int    `dynamodbav:"version"`

	PricePerM2Standard     string `dynamodbav:"price_per_m2_standard"`
	PricePerM2Volume       string `dynamodbav:"price_per_m2_volume"`
	VolumeThresholdM2      string `dynamodbav:"volume_threshold_m2"`
	MinM2PerModel          string `dynamodbav:"min_m2_per_model"`
	PricePerM2BelowMinimum string `dynamodbav:"price_per_m2_below_minimum,omitempty"`
	FreeShippingMinM2      string `dynamodbav:"free_shipping_min_m2"`
	FreeShippingMaxKm      string `dynamodbav:"free_shipping_max_km"`
	ProductionDaysStandard int    `dynamodbav:"production_days_standard"`
	ProductionDaysPrinting int    `dynamodbav:"production_days_printing"`
	QuoteValidityDays      int    `dynamodbav:"quote_validity_days"`

	ValidFrom  string `dynamodbav:"valid_from"`
	ValidUntil string `dynamodbav:"valid_until,omitempty"`
	IsActive   bool   `dynamodbav:"is_active"`
	CreatedAt  string `dynamodbav:"created_at"`
}

// PricingConfigDynamoRepository stores every pricing version ever activated.
//
// Table requirements:
//   - PK: id (string)
//
// The table stays small (one row per price change) so the active row is found by scan.
// Pricing versions are immutable apart from deactivation; the version attribute is the
// config version, which also guards deactivation of the previous row.
type PricingConfigDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPricingConfigRepository = (*PricingConfigDynamoRepository)(nil)

func NewPricingConfigDynamoRepository(ddb *dynamodb.Client, tableName string) *PricingConfigDynamoRepository {
	return &PricingConfigDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *PricingConfigDynamoRepository) GetActive(ctx context.Context) (entities.PricingConfig, error) {
	p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
		TableName:        aws.String(r.tableName),
		FilterExpression: aws.String("is_active = :active"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":active": &types.AttributeValueMemberBOOL{Value: true},
		},
		ConsistentRead: aws.Bool(true),
	})

	var active entities.PricingConfig
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return entities.PricingConfig{}, err
		}
		for _, raw := range page.Items {
			var it pricingConfigItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return entities.PricingConfig{}, err
			}
			// Activation is transactional, so more than one hit means a manual edit.
			if active.ID != "" {
				log.Warn().Str("kept", active.ID).Str("other", it.ID).Msg("[pricing][repository] more than one active config")
			}
			if it.Version > active.Version {
				c, err := fromPricingConfigItem(it)
				if err != nil {
					return entities.PricingConfig{}, err
				}
				active = c
			}
		}
	}
	return active, nil
}

func (r *PricingConfigDynamoRepository) GetByID(ctx context.Context, id string) (entities.PricingConfig, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.PricingConfig{}, err
	}
	if len(out.Item) == 0 {
		return entities.PricingConfig{}, nil
	}

	var it pricingConfigItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.PricingConfig{}, err
	}
	return fromPricingConfigItem(it)
}

// Activate puts next and, if given, rewrites previous as inactive in one transaction.
// The previous row must still be active at its version, so two concurrent activations
// cannot both succeed.
func (r *PricingConfigDynamoRepository) Activate(ctx context.Context, next entities.PricingConfig, previous *entities.PricingConfig) error {
	nav, err := attributevalue.MarshalMap(toPricingConfigItem(next))
	if err != nil {
		return err
	}
	writes := []types.TransactWriteItem{{Put: putNew(r.tableName, nav)}}

	if previous != nil {
		pav, err := attributevalue.MarshalMap(toPricingConfigItem(*previous))
		if err != nil {
			return err
		}
		put := putVersioned(r.tableName, pav, previous.Version)
		put.ConditionExpression = aws.String("attribute_exists(#id) AND #version = :expected AND #active = :active")
		put.ExpressionAttributeNames["#active"] = "is_active"
		put.ExpressionAttributeValues[":active"] = &types.AttributeValueMemberBOOL{Value: true}
		writes = append(writes, types.TransactWriteItem{Put: put})
	}

	if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: writes}); err != nil {
		return mapWriteError(err, "pricing config", next.ID)
	}
	return nil
}

func toPricingConfigItem(c entities.PricingConfig) pricingConfigItem {
	return pricingConfigItem{
		ID:                     c.ID,
		Version:                c.Version,
		PricePerM2Standard:     decString(c.PricePerM2Standard),
		PricePerM2Volume:       decString(c.PricePerM2Volume),
		VolumeThresholdM2:      decString(c.VolumeThresholdM2),
		MinM2PerModel:          decString(c.MinM2PerModel),
		PricePerM2BelowMinimum: decPtrString(c.PricePerM2BelowMinimum),
		FreeShippingMinM2:      decString(c.FreeShippingMinM2),
		FreeShippingMaxKm:      decString(c.FreeShippingMaxKm),
		ProductionDaysStandard: c.ProductionDaysStandard,
		ProductionDaysPrinting: c.ProductionDaysPrinting,
		QuoteValidityDays:      c.QuoteValidityDays,
		ValidFrom:              formatTime(c.ValidFrom),
		ValidUntil:             formatTimePtr(c.ValidUntil),
		IsActive:               c.IsActive,
		CreatedAt:              formatTime(c.CreatedAt),
	}
}

func fromPricingConfigItem(it pricingConfigItem) (entities.PricingConfig, error) {
	dc := newItemDecoder("pricing config", it.ID)
	c := entities.PricingConfig{
		ID:                     it.ID,
		Version:                it.Version,
		PricePerM2Standard:     dc.decimal(it.PricePerM2Standard),
		PricePerM2Volume:       dc.decimal(it.PricePerM2Volume),
		VolumeThresholdM2:      dc.decimal(it.VolumeThresholdM2),
		MinM2PerModel:          dc.decimal(it.MinM2PerModel),
		PricePerM2BelowMinimum: dc.decimalPtr(it.PricePerM2BelowMinimum),
		FreeShippingMinM2:      dc.decimal(it.FreeShippingMinM2),
		FreeShippingMaxKm:      dc.decimal(it.FreeShippingMaxKm),
		ProductionDaysStandard: it.ProductionDaysStandard,
		ProductionDaysPrinting: it.ProductionDaysPrinting,
		QuoteValidityDays:      it.QuoteValidityDays,
		ValidFrom:              dc.time(it.ValidFrom),
		ValidUntil:             dc.timePtr(it.ValidUntil),
		IsActive:               it.IsActive,
		CreatedAt:              dc.time(it.CreatedAt),
	}
	return c, dc.err
}
