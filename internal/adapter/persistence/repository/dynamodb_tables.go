package repository

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// EnsureDynamoTables creates the quotes and opportunities tables (with the
// opportunity index on quotes) when they do not exist yet. Intended for local
// environments; production tables are provisioned outside the service.
func EnsureDynamoTables(ctx context.Context, ddb *dynamodb.Client) error {
	quotes := &dynamodb.CreateTableInput{
		TableName:   aws.String(getenvDefault("QUOTES_TABLE", defaultQuotesTableName)),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
			{AttributeName: aws.String("opportunity_id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
		GlobalSecondaryIndexes: []types.GlobalSecondaryIndex{{
			IndexName: aws.String(getenvDefault("QUOTES_OPPORTUNITY_INDEX", defaultQuotesOpportunityIndex)),
			KeySchema: []types.KeySchemaElement{
				{AttributeName: aws.String("opportunity_id"), KeyType: types.KeyTypeHash},
			},
			Projection: &types.Projection{ProjectionType: types.ProjectionTypeAll},
		}},
	}
	opportunities := &dynamodb.CreateTableInput{
		TableName:   aws.String(getenvDefault("OPPORTUNITIES_TABLE", defaultOpportunitiesTableName)),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("id"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("id"), KeyType: types.KeyTypeHash},
		},
	}

	for _, in := range []*dynamodb.CreateTableInput{opportunities, quotes} {
		if _, err := ddb.CreateTable(ctx, in); err != nil {
			var inUse *types.ResourceInUseException
			if errors.As(err, &inUse) {
				continue
			}
			return err
		}
	}
	return nil
}
