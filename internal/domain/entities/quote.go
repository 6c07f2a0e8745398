package entities

import (
	"strings"
	"time"
)

// QuoteStatus is the quote status reason (statuscode).
//
// Only Won takes part in the opportunity rollup; the other values are kept so
// that status changes away from Won can be expressed.
type QuoteStatus int

const (
	QuoteStatusDraft    QuoteStatus = 1
	QuoteStatusActive   QuoteStatus = 2
	QuoteStatusOpen     QuoteStatus = 3
	QuoteStatusWon      QuoteStatus = 4
	QuoteStatusLost     QuoteStatus = 5
	QuoteStatusCanceled QuoteStatus = 6
	QuoteStatusRevised  QuoteStatus = 7
)

func (s QuoteStatus) Valid() bool {
	return s >= QuoteStatusDraft && s <= QuoteStatusRevised
}

func (s QuoteStatus) String() string {
	switch s {
	case QuoteStatusDraft:
		return "draft"
	case QuoteStatusActive:
		return "active"
	case QuoteStatusOpen:
		return "open"
	case QuoteStatusWon:
		return "won"
	case QuoteStatusLost:
		return "lost"
	case QuoteStatusCanceled:
		return "canceled"
	case QuoteStatusRevised:
		return "revised"
	default:
		return "unknown"
	}
}

// QuoteState is the record state (statecode). It is informational for the
// rollup: inactive quotes with a Won status still count.
type QuoteState int

const (
	QuoteStateDraft  QuoteState = 0
	QuoteStateActive QuoteState = 1
	QuoteStateWon    QuoteState = 2
	QuoteStateClosed QuoteState = 3
)

func (s QuoteState) Active() bool {
	return s == QuoteStateDraft || s == QuoteStateActive
}

// Persisted attribute names of a quote, as used in change payloads and
// query expressions.
const (
	EntityQuote = "quote"

	QuoteAttrID            = "quoteid"
	QuoteAttrName          = "name"
	QuoteAttrOpportunityID = "opportunityid"
	QuoteAttrStatusCode    = "statuscode"
	QuoteAttrStateCode     = "statecode"
	QuoteAttrTotalAmount   = "totalamount"
)

// Quote is a child record of an opportunity.
//
// Optional attributes are pointers: a nil field means the attribute was not
// present on the fetched record (either unset or not requested), which is
// different from a zero value.
type Quote struct {
	ID            string       `json:"id"`
	Name          string       `json:"name,omitempty"`
	OpportunityID *string      `json:"opportunity_id,omitempty"`
	StatusCode    *QuoteStatus `json:"status_code,omitempty"`
	StateCode     *QuoteState  `json:"state_code,omitempty"`
	Amount        *Money       `json:"amount,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// HasParent reports whether the quote references an opportunity.
func (q Quote) HasParent() bool {
	return q.OpportunityID != nil && strings.TrimSpace(*q.OpportunityID) != ""
}

func (q Quote) IsWon() bool {
	return q.StatusCode != nil && *q.StatusCode == QuoteStatusWon
}

// Contribution returns the amount the quote adds to a rollup. Missing, zero
// and negative amounts contribute nothing.
func (q Quote) Contribution() (Money, bool) {
	if q.Amount == nil || !q.Amount.IsPositive() {
		return Money{}, false
	}
	return *q.Amount, true
}
