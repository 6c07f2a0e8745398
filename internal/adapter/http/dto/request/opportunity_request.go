package request

import "strings"

type CreateOpportunityRequest struct {
	Name     string `json:"name" binding:"required"`
	Currency string `json:"currency"`
}

func (r CreateOpportunityRequest) ResolveName() string {
	return strings.TrimSpace(r.Name)
}
