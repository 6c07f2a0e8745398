package response

import (
	"time"

	"quote_rollup/internal/domain/entities"
	"quote_rollup/internal/usecase"
)

type MoneyResponse struct {
	Value    string `json:"value"`
	Currency string `json:"currency,omitempty"`
}

// FromMoney renders at least two decimal places without dropping precision.
func FromMoney(m entities.Money) MoneyResponse {
	value := m.Value.StringFixed(2)
	if m.Value.Exponent() < -2 {
		value = m.Value.String()
	}
	return MoneyResponse{Value: value, Currency: m.Currency}
}

type QuoteResponse struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	OpportunityID *string        `json:"opportunity_id"`
	StatusCode    *int           `json:"status_code"`
	Status        string         `json:"status,omitempty"`
	StateCode     *int           `json:"state_code"`
	Amount        *MoneyResponse `json:"amount"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	resp := QuoteResponse{
		ID:            q.ID,
		Name:          q.Name,
		OpportunityID: q.OpportunityID,
		CreatedAt:     q.CreatedAt,
		UpdatedAt:     q.UpdatedAt,
	}
	if q.StatusCode != nil {
		v := int(*q.StatusCode)
		resp.StatusCode = &v
		resp.Status = q.StatusCode.String()
	}
	if q.StateCode != nil {
		v := int(*q.StateCode)
		resp.StateCode = &v
	}
	if q.Amount != nil {
		m := FromMoney(*q.Amount)
		resp.Amount = &m
	}
	return resp
}

type RollupResponse struct {
	Outcome       string         `json:"outcome"`
	Reason        string         `json:"reason,omitempty"`
	Detail        string         `json:"detail,omitempty"`
	QuoteID       string         `json:"quote_id"`
	OpportunityID string         `json:"opportunity_id,omitempty"`
	Total         *MoneyResponse `json:"total_won_amount,omitempty"`
	Contributors  int            `json:"contributors"`
}

func FromRollup(r usecase.RecomputeResult) RollupResponse {
	resp := RollupResponse{
		Outcome:       string(r.Outcome),
		Reason:        string(r.Reason),
		Detail:        r.Detail,
		QuoteID:       r.QuoteID,
		OpportunityID: r.OpportunityID,
		Contributors:  r.Contributors,
	}
	if r.Total != nil {
		m := FromMoney(*r.Total)
		resp.Total = &m
	}
	return resp
}

type QuoteChangeResponse struct {
	Quote  QuoteResponse  `json:"quote"`
	Rollup RollupResponse `json:"rollup"`
}

func FromQuoteChange(c usecase.QuoteChange) QuoteChangeResponse {
	return QuoteChangeResponse{Quote: FromQuote(c.Quote), Rollup: FromRollup(c.Rollup)}
}
