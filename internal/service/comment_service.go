package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-api/internal/domain"
	"github.com/spec-kit/helpdesk-api/internal/events"
	"github.com/spec-kit/helpdesk-api/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-api/pkg/util"
)

// CommentService manages ticket comment threads.
type CommentService struct {
	comments   repository.CommentRepository
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewCommentService constructs the service.
func NewCommentService(comments repository.CommentRepository, tickets repository.TicketRepository, users repository.UserRepository, dispatcher events.Dispatcher) *CommentService {
	return &CommentService{comments: comments, tickets: tickets, users: users, dispatcher: dispatcher}
}

// AddComment appends an immutable comment to a ticket. Internal comments
// need staff capability.
func (s *CommentService) AddComment(ctx context.Context, actor *domain.User, ticketID, content string, internal bool) (*domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.NewValidationError("content required", nil)
	}
	if internal && !actor.Role.Can(domain.CapabilityInternalComments) {
		return nil, apperrors.NewForbidden("cannot create internal comments")
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, err
	}

	comment := &domain.Comment{
		ID:         uuid.NewString(),
		TicketID:   ticket.ID,
		AuthorID:   actor.ID,
		AuthorName: actor.Name,
		Content:    content,
		Internal:   internal,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.publishCommentAdded(ctx, actor, ticket, comment)
	return comment, nil
}

// ListComments returns a ticket's comments in creation order. Internal
// comments are filtered out for callers without staff capability.
func (s *CommentService) ListComments(ctx context.Context, actor *domain.User, ticketID string) ([]domain.Comment, error) {
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, err
	}
	includeInternal := actor.Role.Can(domain.CapabilityInternalComments)
	return s.comments.ListByTicket(ctx, ticketID, includeInternal)
}

func (s *CommentService) publishCommentAdded(ctx context.Context, actor *domain.User, ticket *domain.Ticket, comment *domain.Comment) {
	if s.dispatcher == nil {
		return
	}

	recipients := make([]string, 0, 2)
	if creator, err := s.users.GetByID(ctx, ticket.CreatedBy); err == nil {
		recipients = append(recipients, creator.Email)
	}
	if ticket.AssignedTo != nil {
		if assignee, err := s.users.GetByID(ctx, *ticket.AssignedTo); err == nil && !contains(recipients, assignee.Email) {
			recipients = append(recipients, assignee.Email)
		}
	}

	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      events.EventCommentAdded,
		TicketID:  ticket.ID,
		ActorID:   actor.ID,
		Timestamp: time.Now(),
		Payload: events.CommentAddedPayload{
			CommentID:  comment.ID,
			Title:      ticket.Title,
			Internal:   comment.Internal,
			Preview:    preview(comment.Content, 120),
			Recipients: recipients,
		},
	})
}

func contains(values []string, candidate string) bool {
	for _, v := range values {
		if v == candidate {
			return true
		}
	}
	return false
}

func preview(body string, max int) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
