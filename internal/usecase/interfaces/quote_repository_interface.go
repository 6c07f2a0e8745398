package interfaces

import (
	"context"
	"quote_rollup/internal/domain/entities"
)

// IQuoteRepository abstracts the record store for quotes.
//
// Lookups return a zero Quote (empty ID) and a nil error when the record does
// not exist; errors are reserved for store failures.
//
// The rollup needs:
//   - Retrieve: current state of the triggering quote (restricted to columns)
//   - Query: sibling quotes matching a conjunction of eq/ne conditions
//
// The quote pipeline additionally creates quotes and applies partial updates.

type IQuoteRepository interface {
	Create(ctx context.Context, q entities.Quote) (entities.Quote, error)
	Retrieve(ctx context.Context, id string, columns []string) (entities.Quote, error)
	Query(ctx context.Context, q entities.QueryExpression) ([]entities.Quote, error)
	UpdateStatus(ctx context.Context, id string, status entities.QuoteStatus) (entities.Quote, error)
	UpdateAmount(ctx context.Context, id string, amount *entities.Money) (entities.Quote, error)
}
