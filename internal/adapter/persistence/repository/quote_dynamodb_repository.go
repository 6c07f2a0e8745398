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

const (
	defaultQuotesTableName        = "quotes"
	defaultQuotesOpportunityIndex = "opportunity_id-index"
)

type quoteItem struct {
	ID            string  `dynamodbav:"id"`
	Name          string  `dynamodbav:"name,omitempty"`
	OpportunityID *string `dynamodbav:"opportunity_id,omitempty"`
	StatusCode    *int    `dynamodbav:"status_code,omitempty"`
	StateCode     *int    `dynamodbav:"state_code,omitempty"`
	Amount        *string `dynamodbav:"amount,omitempty"`
	Currency      string  `dynamodbav:"currency,omitempty"`
	CreatedAt     string  `dynamodbav:"created_at,omitempty"`
	UpdatedAt     string  `dynamodbav:"updated_at,omitempty"`
}

// QuoteDynamoRepository persists Quote entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: opportunity_id-index (PK: opportunity_id, projection ALL)
//
// Reads through the index are eventually consistent. Callers that need the
// latest state of a single quote use Retrieve, which reads the table.

type QuoteDynamoRepository struct {
	ddb              DynamoAPI
	tableName        string
	opportunityIndex string
}

var _ interfaces.IQuoteRepository = (*QuoteDynamoRepository)(nil)

func NewQuoteDynamoRepository(ddb DynamoAPI) *QuoteDynamoRepository {
	return &QuoteDynamoRepository{
		ddb:              ddb,
		tableName:        getenvDefault("QUOTES_TABLE", defaultQuotesTableName),
		opportunityIndex: getenvDefault("QUOTES_OPPORTUNITY_INDEX", defaultQuotesOpportunityIndex),
	}
}

func (r *QuoteDynamoRepository) Create(ctx context.Context, q entities.Quote) (entities.Quote, error) {
	av, err := attributevalue.MarshalMap(toQuoteItem(q))
	if err != nil {
		return entities.Quote{}, err
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
		return entities.Quote{}, err
	}
	return q, nil
}

func (r *QuoteDynamoRepository) Retrieve(ctx context.Context, id string, columns []string) (entities.Quote, error) {
	names := map[string]string{}
	projection, err := projectionFor(columns, names)
	if err != nil {
		return entities.Quote{}, err
	}

	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ProjectionExpression:     optionalString(projection),
		ExpressionAttributeNames: optionalNames(names),
		ConsistentRead:           aws.Bool(true),
	})
	if err != nil {
		return entities.Quote{}, err
	}
	if len(out.Item) == 0 {
		return entities.Quote{}, nil
	}
	return unmarshalQuote(out.Item)
}

func (r *QuoteDynamoRepository) Query(ctx context.Context, q entities.QueryExpression) ([]entities.Quote, error) {
	plan, err := buildQuoteQueryPlan(q, r.opportunityIndex)
	if err != nil {
		return nil, err
	}

	var raw []map[string]types.AttributeValue
	if plan.KeyCondition != "" {
		p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(plan.IndexName),
			KeyConditionExpression:    aws.String(plan.KeyCondition),
			FilterExpression:          optionalString(plan.Filter),
			ProjectionExpression:      optionalString(plan.Projection),
			ExpressionAttributeNames:  optionalNames(plan.Names),
			ExpressionAttributeValues: optionalValues(plan.Values),
		})
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			raw = append(raw, page.Items...)
		}
	} else {
		p := dynamodb.NewScanPaginator(r.ddb, &dynamodb.ScanInput{
			TableName:                 aws.String(r.tableName),
			FilterExpression:          optionalString(plan.Filter),
			ProjectionExpression:      optionalString(plan.Projection),
			ExpressionAttributeNames:  optionalNames(plan.Names),
			ExpressionAttributeValues: optionalValues(plan.Values),
		})
		for p.HasMorePages() {
			page, err := p.NextPage(ctx)
			if err != nil {
				return nil, err
			}
			raw = append(raw, page.Items...)
		}
	}

	quotes := make([]entities.Quote, 0, len(raw))
	for _, item := range raw {
		q, err := unmarshalQuote(item)
		if err != nil {
			return nil, err
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

func (r *QuoteDynamoRepository) UpdateStatus(ctx context.Context, id string, status entities.QuoteStatus) (entities.Quote, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		expr := "SET #status_code = :status_code, #updated_at = :updated_at"
		vals := map[string]types.AttributeValue{
			":status_code": &types.AttributeValueMemberN{Value: fmt.Sprint(int(status))},
			":updated_at":  &types.AttributeValueMemberS{Value: now},
		}
		names := map[string]string{
			"#status_code": "status_code",
			"#updated_at":  "updated_at",
		}
		return expr, vals, names
	})
}

// UpdateAmount sets the quote amount; a nil amount clears it.
func (r *QuoteDynamoRepository) UpdateAmount(ctx context.Context, id string, amount *entities.Money) (entities.Quote, error) {
	return r.update(ctx, id, func(now string) (string, map[string]types.AttributeValue, map[string]string) {
		names := map[string]string{
			"#amount":     "amount",
			"#currency":   "currency",
			"#updated_at": "updated_at",
		}
		vals := map[string]types.AttributeValue{
			":updated_at": &types.AttributeValueMemberS{Value: now},
		}
		if amount == nil {
			return "SET #updated_at = :updated_at REMOVE #amount, #currency", vals, names
		}
		vals[":amount"] = &types.AttributeValueMemberS{Value: amount.Value.String()}
		vals[":currency"] = &types.AttributeValueMemberS{Value: amount.Currency}
		return "SET #amount = :amount, #currency = :currency, #updated_at = :updated_at", vals, names
	})
}

func (r *QuoteDynamoRepository) update(
	ctx context.Context,
	id string,
	build func(now string) (updateExpr string, values map[string]types.AttributeValue, names map[string]string),
) (entities.Quote, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	updateExpr, values, names := build(now)

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression:       aws.String("attribute_exists(#id)"),
		UpdateExpression:          aws.String(updateExpr),
		ExpressionAttributeValues: values,
		ExpressionAttributeNames:  mergeNames(names, map[string]string{"#id": "id"}),
		ReturnValues:              types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.Quote{}, nil
		}
		return entities.Quote{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.Quote{}, nil
	}
	return unmarshalQuote(out.Attributes)
}

func unmarshalQuote(av map[string]types.AttributeValue) (entities.Quote, error) {
	var it quoteItem
	if err := attributevalue.UnmarshalMap(av, &it); err != nil {
		return entities.Quote{}, err
	}
	return fromQuoteItem(it)
}

func toQuoteItem(q entities.Quote) quoteItem {
	it := quoteItem{
		ID:            q.ID,
		Name:          q.Name,
		OpportunityID: q.OpportunityID,
		CreatedAt:     q.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:     q.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if q.StatusCode != nil {
		v := int(*q.StatusCode)
		it.StatusCode = &v
	}
	if q.StateCode != nil {
		v := int(*q.StateCode)
		it.StateCode = &v
	}
	if q.Amount != nil {
		v := q.Amount.Value.String()
		it.Amount = &v
		it.Currency = q.Amount.Currency
	}
	return it
}

func fromQuoteItem(it quoteItem) (entities.Quote, error) {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)

	q := entities.Quote{
		ID:            it.ID,
		Name:          it.Name,
		OpportunityID: it.OpportunityID,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
	if it.StatusCode != nil {
		v := entities.QuoteStatus(*it.StatusCode)
		q.StatusCode = &v
	}
	if it.StateCode != nil {
		v := entities.QuoteState(*it.StateCode)
		q.StateCode = &v
	}
	if it.Amount != nil {
		d, err := decimal.NewFromString(*it.Amount)
		if err != nil {
			return entities.Quote{}, fmt.Errorf("quote %s: invalid amount %q: %w", it.ID, *it.Amount, err)
		}
		m := entities.NewMoney(d, it.Currency)
		q.Amount = &m
	}
	return q, nil
}
