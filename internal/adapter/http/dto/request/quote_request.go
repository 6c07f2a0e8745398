package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"quote_rollup/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidStatus = errors.New("invalid status code")
	ErrInvalidState  = errors.New("invalid state code")
	ErrMissingAmount = errors.New("amount is required (use null to clear it)")
)

// MoneyRequest accepts the value either as a JSON number or a decimal string.
type MoneyRequest struct {
	Value    decimal.Decimal `json:"value"`
	Currency string          `json:"currency"`
}

func (m *MoneyRequest) ToMoney() (*entities.Money, error) {
	if m == nil {
		return nil, nil
	}
	if m.Value.IsNegative() {
		return nil, ErrInvalidAmount
	}
	money := entities.NewMoney(m.Value, strings.ToUpper(strings.TrimSpace(m.Currency)))
	return &money, nil
}

type CreateQuoteRequest struct {
	Name          string        `json:"name" binding:"required"`
	OpportunityID string        `json:"opportunity_id"`
	Amount        *MoneyRequest `json:"amount"`
	StatusCode    int           `json:"status_code"`
	StateCode     *int          `json:"state_code"`
}

func (r CreateQuoteRequest) ResolveStatus() (entities.QuoteStatus, error) {
	if r.StatusCode == 0 {
		return entities.QuoteStatusDraft, nil
	}
	s := entities.QuoteStatus(r.StatusCode)
	if !s.Valid() {
		return 0, ErrInvalidStatus
	}
	return s, nil
}

func (r CreateQuoteRequest) ResolveState() (*entities.QuoteState, error) {
	if r.StateCode == nil {
		return nil, nil
	}
	s := entities.QuoteState(*r.StateCode)
	if s < entities.QuoteStateDraft || s > entities.QuoteStateClosed {
		return nil, ErrInvalidState
	}
	return &s, nil
}

type ChangeStatusRequest struct {
	StatusCode int `json:"status_code" binding:"required"`
}

func (r ChangeStatusRequest) ResolveStatus() (entities.QuoteStatus, error) {
	s := entities.QuoteStatus(r.StatusCode)
	if !s.Valid() {
		return 0, ErrInvalidStatus
	}
	return s, nil
}

// UpdateAmountRequest clears the amount when Amount is null. The amount key
// itself is required.
type UpdateAmountRequest struct {
	Amount *MoneyRequest `json:"amount"`
}

func (r *UpdateAmountRequest) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, ok := raw["amount"]
	if !ok {
		return ErrMissingAmount
	}
	r.Amount = nil
	if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil
	}
	var m MoneyRequest
	if err := json.Unmarshal(v, &m); err != nil {
		return err
	}
	r.Amount = &m
	return nil
}
