package interfaces

import (
	"context"
	"quote_rollup/internal/domain/entities"
)

// IOpportunityRepository abstracts the record store for opportunities.
//
// UpdateTotalWonAmount is a partial update of the aggregate field only; it
// returns a zero Opportunity when the record does not exist.

type IOpportunityRepository interface {
	Create(ctx context.Context, o entities.Opportunity) (entities.Opportunity, error)
	GetByID(ctx context.Context, id string) (entities.Opportunity, error)
	UpdateTotalWonAmount(ctx context.Context, id string, total entities.Money) (entities.Opportunity, error)
}
