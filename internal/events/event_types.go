package events

import (
	"time"

	"github.com/spec-kit/helpdesk-api/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketAssigned      EventType = "ticket_assigned"
	EventCommentAdded        EventType = "comment_added"
	EventAttachmentAdded     EventType = "attachment_added"
	EventAttachmentRemoved   EventType = "attachment_removed"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title         string                `json:"title"`
	Priority      domain.TicketPriority `json:"priority"`
	Category      domain.TicketCategory `json:"category"`
	CreatorEmail  string                `json:"creator_email"`
	CreatorName   string                `json:"creator_name"`
	AttachmentIDs []string              `json:"attachment_ids,omitempty"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	Title        string              `json:"title"`
	OldStatus    domain.TicketStatus `json:"old_status"`
	NewStatus    domain.TicketStatus `json:"new_status"`
	CreatorEmail string              `json:"creator_email"`
	CreatorName  string              `json:"creator_name"`
}

// TicketAssignedPayload payload.
type TicketAssignedPayload struct {
	AssignedTo *string `json:"assigned_to,omitempty"`
}

// CommentAddedPayload payload.
type CommentAddedPayload struct {
	CommentID  string   `json:"comment_id"`
	Title      string   `json:"title"`
	Internal   bool     `json:"internal"`
	Preview    string   `json:"preview"`
	Recipients []string `json:"recipients,omitempty"`
}

// AttachmentPayload payload for attach/detach events.
type AttachmentPayload struct {
	AttachmentID string `json:"attachment_id"`
	FileName     string `json:"file_name"`
	StoredName   string `json:"stored_name"`
}
