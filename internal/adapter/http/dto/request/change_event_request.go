package request

import (
	"strings"

	"quote_rollup/internal/domain/entities"
)

// ChangeEventRequest is the post-operation notification posted by the host
// platform after a record write.
type ChangeEventRequest struct {
	MessageName   string   `json:"message_name" binding:"required"`
	EntityName    string   `json:"entity_name" binding:"required"`
	RecordID      string   `json:"record_id"`
	ChangedFields []string `json:"changed_fields"`
	CorrelationID string   `json:"correlation_id"`
}

func (r ChangeEventRequest) ToEvent() entities.ChangeEvent {
	return entities.ChangeEvent{
		MessageName:   strings.TrimSpace(r.MessageName),
		EntityName:    strings.TrimSpace(r.EntityName),
		RecordID:      strings.TrimSpace(r.RecordID),
		ChangedFields: r.ChangedFields,
		CorrelationID: strings.TrimSpace(r.CorrelationID),
	}
}
