package events

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventInteractionAppended EventType = "ticket_interaction_appended"
	EventTicketReopened      EventType = "ticket_reopened"
	EventHistoryCorrected    EventType = "ticket_history_corrected"
)

// Event represents a domain event emitted by the ticket engine.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	Kind       domain.Kind `json:"kind"`
	TicketID   string      `json:"ticket_id"`
	Number     string      `json:"number"`
	ActorEmail string      `json:"actor_email,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Category string        `json:"category"`
	Status   domain.Status `json:"status"`
}

// InteractionAppendedPayload payload.
type InteractionAppendedPayload struct {
	OldStatus   domain.Status `json:"old_status"`
	NewStatus   domain.Status `json:"new_status"`
	TextPreview string        `json:"text_preview,omitempty"`
	Handler     string        `json:"handler,omitempty"`
}

// TicketReopenedPayload payload.
type TicketReopenedPayload struct {
	OldStatus domain.Status `json:"old_status"`
	NewStatus domain.Status `json:"new_status"`
}

// HistoryCorrectedPayload payload. The replacement text itself is not
// carried; the event only records that the privileged path was used.
type HistoryCorrectedPayload struct {
	HistoryLength int `json:"history_length"`
}
