package entities

import "time"

const (
	EntityOpportunity = "opportunity"

	OpportunityAttrID             = "opportunityid"
	OpportunityAttrName           = "name"
	OpportunityAttrTotalWonAmount = "totalwonamount"
)

// Opportunity is the parent record that carries the Won quote rollup.
//
// Storage model (DynamoDB):
//   - PK: id
//
// TotalWonAmount is only ever written as an absolute value by the rollup.
type Opportunity struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	TotalWonAmount Money     `json:"total_won_amount"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
