package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quote_rollup/internal/domain/entities"
	"quote_rollup/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const defaultOpportunitiesTableName = "opportunities"

type opportunityItem struct {
	ID             string `dynamodbav:"id"`
	Name           string `dynamodbav:"name"`
	TotalWonAmount string `dynamodbav:"total_won_amount"`
	Currency       string `dynamodbav:"currency,omitempty"`
	CreatedAt      string `dynamodbav:"created_at"`
	UpdatedAt      string `dynamodbav:"updated_at"`
}

// OpportunityDynamoRepository persists Opportunity entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)

type OpportunityDynamoRepository struct {
	ddb       DynamoAPI
	tableName string
}

var _ interfaces.IOpportunityRepository = (*OpportunityDynamoRepository)(nil)

func NewOpportunityDynamoRepository(ddb DynamoAPI) *OpportunityDynamoRepository {
	return &OpportunityDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("OPPORTUNITIES_TABLE", defaultOpportunitiesTableName),
	}
}

func (r *OpportunityDynamoRepository) Create(ctx context.Context, o entities.Opportunity) (entities.Opportunity, error) {
	av, err := attributevalue.MarshalMap(toOpportunityItem(o))
	if err != nil {
		return entities.Opportunity{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Opportunity{}, err
	}
	return o, nil
}

func (r *OpportunityDynamoRepository) GetByID(ctx context.Context, id string) (entities.Opportunity, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Opportunity{}, err
	}
	if len(out.Item) == 0 {
		return entities.Opportunity{}, nil
	}
	return unmarshalOpportunity(out.Item)
}

// UpdateTotalWonAmount overwrites the stored total. The write is a single
// unconditional SET on an existing item, so repeating it is harmless. A total
// without a currency leaves the stored currency untouched.
func (r *OpportunityDynamoRepository) UpdateTotalWonAmount(ctx context.Context, id string, total entities.Money) (entities.Opportunity, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	expr := "SET #total = :total, #updated_at = :updated_at"
	values := map[string]types.AttributeValue{
		":total":      &types.AttributeValueMemberS{Value: total.Value.String()},
		":updated_at": &types.AttributeValueMemberS{Value: now},
	}
	names := map[string]string{
		"#id":         "id",
		"#total":      "total_won_amount",
		"#updated_at": "updated_at",
	}
	if total.Currency != "" {
		expr += ", #currency = :currency"
		values[":currency"] = &types.AttributeValueMemberS{Value: total.Currency}
		names["#currency"] = "currency"
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(expr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  names,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Opportunity{}, nil
		}
		return entities.Opportunity{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Opportunity{}, nil
	}
	return unmarshalOpportunity(out.Attributes)
}

func unmarshalOpportunity(av map[string]types.AttributeValue) (entities.Opportunity, error) {
	var it opportunityItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Opportunity{}, err
	}
	return fromOpportunityItem(it)
}

func toOpportunityItem(o entities.Opportunity) opportunityItem {
	return opportunityItem{
		ID:             o.ID,
		Name:           o.Name,
		TotalWonAmount: o.TotalWonAmount.Value.String(),
		Currency:       o.TotalWonAmount.Currency,
		CreatedAt:      o.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:      o.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromOpportunityItem(it opportunityItem) (entities.Opportunity, error) {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	total := decimal.Zero
	if it.TotalWonAmount != "" {
		d, err := decimal.NewFromString(it.TotalWonAmount)
		if err != nil {
			return entities.Opportunity{}, fmt.Errorf("opportunity %s: invalid total %q: %w", it.ID, it.TotalWonAmount, err)
		}
		total = d
	}
	return entities.Opportunity{
		ID:             it.ID,
		Name:           it.Name,
		TotalWonAmount: entities.NewMoney(total, it.Currency),
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}, nil
}
