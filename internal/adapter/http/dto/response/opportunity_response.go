package response

import (
	"time"

	"quote_rollup/internal/domain/entities"
)

type OpportunityResponse struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	TotalWonAmount MoneyResponse `json:"total_won_amount"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

func FromOpportunity(o entities.Opportunity) OpportunityResponse {
	return OpportunityResponse{
		ID:             o.ID,
		Name:           o.Name,
		TotalWonAmount: FromMoney(o.TotalWonAmount),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
}
