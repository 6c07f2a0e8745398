package repository

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"quote_rollup/internal/domain/entities"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDynamo struct {
	getItem    func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error)
	putItem    func(*dynamodb.PutItemInput) (*dynamodb.PutItemOutput, error)
	updateItem func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error)
	query      func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error)
	scan       func(*dynamodb.ScanInput) (*dynamodb.ScanOutput, error)
}

var errUnexpectedCall = errors.New("unexpected dynamodb call")

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	if f.getItem == nil {
		return nil, errUnexpectedCall
	}
	return f.getItem(in)
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	if f.putItem == nil {
		return nil, errUnexpectedCall
	}
	return f.putItem(in)
}

func (f *fakeDynamo) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	if f.updateItem == nil {
		return nil, errUnexpectedCall
	}
	return f.updateItem(in)
}

func (f *fakeDynamo) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	if f.query == nil {
		return nil, errUnexpectedCall
	}
	return f.query(in)
}

func (f *fakeDynamo) Scan(_ context.Context, in *dynamodb.ScanInput, _ ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error) {
	if f.scan == nil {
		return nil, errUnexpectedCall
	}
	return f.scan(in)
}

func quoteAV(id, oppID string, status int, amount string) map[string]types.AttributeValue {
	item := map[string]types.AttributeValue{
		"id":             &types.AttributeValueMemberS{Value: id},
		"opportunity_id": &types.AttributeValueMemberS{Value: oppID},
		"status_code":    &types.AttributeValueMemberN{Value: strconv.Itoa(status)},
	}
	if amount != "" {
		item["amount"] = &types.AttributeValueMemberS{Value: amount}
		item["currency"] = &types.AttributeValueMemberS{Value: "USD"}
	}
	return item
}

func conditionalCheckFailed() error {
	return &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
}

func TestQuoteDynamoRepository_QueryFollowsPages(t *testing.T) {
	t.Setenv("QUOTES_OPPORTUNITY_INDEX", "")

	var calls []*dynamodb.QueryInput
	fake := &fakeDynamo{query: func(in *dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		calls = append(calls, in)
		if len(calls) == 1 {
			return &dynamodb.QueryOutput{
				Items:            []map[string]types.AttributeValue{quoteAV("q-2", "opp-1", 4, "100")},
				LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "q-2"}},
			}, nil
		}
		return &dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{quoteAV("q-3", "opp-1", 4, "200")},
		}, nil
	}}
	repo := NewQuoteDynamoRepository(fake)

	got, err := repo.Query(context.Background(), wonSiblingsQuery())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "q-2", got[0].ID)
	assert.Equal(t, "q-3", got[1].ID)
	assert.True(t, got[1].Amount.Value.Equal(decimal.NewFromInt(200)))

	require.Len(t, calls, 2)
	assert.Equal(t, defaultQuotesOpportunityIndex, aws.ToString(calls[0].IndexName))
	assert.Equal(t, "#k = :k", aws.ToString(calls[0].KeyConditionExpression))
	assert.Empty(t, calls[0].ExclusiveStartKey)
	start, ok := calls[1].ExclusiveStartKey["id"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "q-2", start.Value)
}

func TestQuoteDynamoRepository_QueryWithoutParentScans(t *testing.T) {
	pages := 0
	fake := &fakeDynamo{scan: func(in *dynamodb.ScanInput) (*dynamodb.ScanOutput, error) {
		pages++
		assert.Equal(t, "#f0 = :f0", aws.ToString(in.FilterExpression))
		if pages == 1 {
			return &dynamodb.ScanOutput{
				Items:            []map[string]types.AttributeValue{quoteAV("q-1", "opp-1", 4, "")},
				LastEvaluatedKey: map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: "q-1"}},
			}, nil
		}
		return &dynamodb.ScanOutput{}, nil
	}}
	repo := NewQuoteDynamoRepository(fake)

	got, err := repo.Query(context.Background(), entities.NewQuery(entities.EntityQuote).
		Where(entities.QuoteAttrStatusCode, entities.ConditionEqual, int(entities.QuoteStatusWon)))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].Amount)
	assert.Equal(t, 2, pages)
}

func TestQuoteDynamoRepository_QueryStoreError(t *testing.T) {
	boom := errors.New("provisioned throughput exceeded")
	repo := NewQuoteDynamoRepository(&fakeDynamo{query: func(*dynamodb.QueryInput) (*dynamodb.QueryOutput, error) {
		return nil, boom
	}})

	_, err := repo.Query(context.Background(), wonSiblingsQuery())
	assert.ErrorIs(t, err, boom)
}

func TestQuoteDynamoRepository_Retrieve(t *testing.T) {
	t.Run("consistent read with projection", func(t *testing.T) {
		var seen *dynamodb.GetItemInput
		repo := NewQuoteDynamoRepository(&fakeDynamo{getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			seen = in
			return &dynamodb.GetItemOutput{Item: quoteAV("q-1", "opp-1", 4, "50")}, nil
		}})

		q, err := repo.Retrieve(context.Background(), "q-1", []string{entities.QuoteAttrStatusCode})
		require.NoError(t, err)
		assert.True(t, q.IsWon())
		assert.True(t, aws.ToBool(seen.ConsistentRead))
		assert.Equal(t, "#p_id, #p_status_code", aws.ToString(seen.ProjectionExpression))
	})

	t.Run("missing item is a zero quote", func(t *testing.T) {
		repo := NewQuoteDynamoRepository(&fakeDynamo{getItem: func(*dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
			return &dynamodb.GetItemOutput{}, nil
		}})

		q, err := repo.Retrieve(context.Background(), "q-404", nil)
		require.NoError(t, err)
		assert.Empty(t, q.ID)
	})
}

func TestQuoteDynamoRepository_UpdateStatus(t *testing.T) {
	t.Run("conditional check failure is a zero quote", func(t *testing.T) {
		repo := NewQuoteDynamoRepository(&fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, conditionalCheckFailed()
		}})

		q, err := repo.UpdateStatus(context.Background(), "q-404", entities.QuoteStatusWon)
		require.NoError(t, err)
		assert.Empty(t, q.ID)
	})

	t.Run("other errors are returned", func(t *testing.T) {
		boom := errors.New("access denied")
		repo := NewQuoteDynamoRepository(&fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, boom
		}})

		_, err := repo.UpdateStatus(context.Background(), "q-1", entities.QuoteStatusWon)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("returns the new item", func(t *testing.T) {
		var seen *dynamodb.UpdateItemInput
		repo := NewQuoteDynamoRepository(&fakeDynamo{updateItem: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			seen = in
			return &dynamodb.UpdateItemOutput{Attributes: quoteAV("q-1", "opp-1", 4, "10")}, nil
		}})

		q, err := repo.UpdateStatus(context.Background(), "q-1", entities.QuoteStatusWon)
		require.NoError(t, err)
		assert.True(t, q.IsWon())
		assert.Equal(t, "attribute_exists(#id)", aws.ToString(seen.ConditionExpression))
		status, ok := seen.ExpressionAttributeValues[":status_code"].(*types.AttributeValueMemberN)
		require.True(t, ok)
		assert.Equal(t, "4", status.Value)
	})
}

func TestOpportunityDynamoRepository_UpdateTotalWonAmount(t *testing.T) {
	t.Run("currency is set when the total carries one", func(t *testing.T) {
		var seen *dynamodb.UpdateItemInput
		repo := NewOpportunityDynamoRepository(&fakeDynamo{updateItem: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			seen = in
			return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
				"id":               &types.AttributeValueMemberS{Value: "opp-1"},
				"total_won_amount": &types.AttributeValueMemberS{Value: "350"},
				"currency":         &types.AttributeValueMemberS{Value: "USD"},
			}}, nil
		}})

		o, err := repo.UpdateTotalWonAmount(context.Background(), "opp-1", entities.NewMoney(decimal.NewFromInt(350), "USD"))
		require.NoError(t, err)
		assert.Equal(t, "350 USD", o.TotalWonAmount.String())
		assert.Equal(t, "SET #total = :total, #updated_at = :updated_at, #currency = :currency", aws.ToString(seen.UpdateExpression))
	})

	t.Run("total without currency keeps the stored one", func(t *testing.T) {
		var seen *dynamodb.UpdateItemInput
		repo := NewOpportunityDynamoRepository(&fakeDynamo{updateItem: func(in *dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			seen = in
			return &dynamodb.UpdateItemOutput{Attributes: map[string]types.AttributeValue{
				"id":               &types.AttributeValueMemberS{Value: "opp-1"},
				"total_won_amount": &types.AttributeValueMemberS{Value: "0"},
				"currency":         &types.AttributeValueMemberS{Value: "EUR"},
			}}, nil
		}})

		o, err := repo.UpdateTotalWonAmount(context.Background(), "opp-1", entities.NewMoney(decimal.Zero, ""))
		require.NoError(t, err)
		assert.Equal(t, "EUR", o.TotalWonAmount.Currency)
		assert.Equal(t, "SET #total = :total, #updated_at = :updated_at", aws.ToString(seen.UpdateExpression))
		assert.NotContains(t, seen.ExpressionAttributeNames, "#currency")
		assert.NotContains(t, seen.ExpressionAttributeValues, ":currency")
	})

	t.Run("missing opportunity is a zero entity", func(t *testing.T) {
		repo := NewOpportunityDynamoRepository(&fakeDynamo{updateItem: func(*dynamodb.UpdateItemInput) (*dynamodb.UpdateItemOutput, error) {
			return nil, conditionalCheckFailed()
		}})

		o, err := repo.UpdateTotalWonAmount(context.Background(), "opp-404", entities.ZeroMoney("USD"))
		require.NoError(t, err)
		assert.Empty(t, o.ID)
	})
}

func TestOpportunityDynamoRepository_GetByID(t *testing.T) {
	repo := NewOpportunityDynamoRepository(&fakeDynamo{getItem: func(in *dynamodb.GetItemInput) (*dynamodb.GetItemOutput, error) {
		assert.True(t, aws.ToBool(in.ConsistentRead))
		return &dynamodb.GetItemOutput{}, nil
	}})

	o, err := repo.GetByID(context.Background(), "opp-404")
	require.NoError(t, err)
	assert.Empty(t, o.ID)
}
