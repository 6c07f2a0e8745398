package entities

import "strings"

const MessageUpdate = "Update"

// ChangeEvent is a single post-operation notification delivered by the host.
//
// ChangedFields lists the attributes present in the partial update payload,
// not every attribute the record happens to carry.
type ChangeEvent struct {
	MessageName   string   `json:"message_name"`
	EntityName    string   `json:"entity_name"`
	RecordID      string   `json:"record_id"`
	ChangedFields []string `json:"changed_fields"`
	CorrelationID string   `json:"correlation_id,omitempty"`
}

// NewQuoteUpdateEvent builds the event the host emits after updating a quote.
func NewQuoteUpdateEvent(quoteID string, changed ...string) ChangeEvent {
	return ChangeEvent{
		MessageName:   MessageUpdate,
		EntityName:    EntityQuote,
		RecordID:      quoteID,
		ChangedFields: changed,
	}
}

func (e ChangeEvent) IsQuoteUpdate() bool {
	return strings.EqualFold(strings.TrimSpace(e.MessageName), MessageUpdate) &&
		strings.EqualFold(strings.TrimSpace(e.EntityName), EntityQuote)
}

// HasChanged reports whether attr was part of the update payload.
func (e ChangeEvent) HasChanged(attr string) bool {
	for _, f := range e.ChangedFields {
		if strings.EqualFold(strings.TrimSpace(f), attr) {
			return true
		}
	}
	return false
}
