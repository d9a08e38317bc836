package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-api/internal/domain"
)

// CreateTicketRequest payload. Attachments arrive as multipart files, not in
// the JSON body.
type CreateTicketRequest struct {
	Title       string                `json:"title" form:"title"`
	Description string                `json:"description" form:"description"`
	Priority    domain.TicketPriority `json:"priority" form:"priority"`
	Category    domain.TicketCategory `json:"category" form:"category"`
	Department  *domain.Department    `json:"department" form:"department"`
}

// UpdateTicketRequest payload for partial updates.
type UpdateTicketRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Priority    *domain.TicketPriority `json:"priority"`
	Category    *domain.TicketCategory `json:"category"`
	Status      *domain.TicketStatus   `json:"status"`
	AssignedTo  *string                `json:"assigned_to"`
}

// TicketResponse is the full ticket view.
type TicketResponse struct {
	ID             string                `json:"id"`
	Title          string                `json:"title"`
	Description    string                `json:"description"`
	Priority       domain.TicketPriority `json:"priority"`
	Category       domain.TicketCategory `json:"category"`
	Department     *domain.Department    `json:"department,omitempty"`
	Status         domain.TicketStatus   `json:"status"`
	CreatedBy      string                `json:"created_by"`
	CreatedByName  string                `json:"created_by_name,omitempty"`
	AssignedTo     *string               `json:"assigned_to"`
	AssignedToName *string               `json:"assigned_to_name,omitempty"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
	ResolvedAt     *time.Time            `json:"resolved_at,omitempty"`
	ClosedAt       *time.Time            `json:"closed_at,omitempty"`
	Attachments    []AttachmentResponse  `json:"attachments"`
}

// AttachmentResponse metadata.
type AttachmentResponse struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	StoredName  string    `json:"stored_name"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}
