package service

import (
	"context"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-api/internal/domain"
	"github.com/spec-kit/helpdesk-api/internal/events"
	"github.com/spec-kit/helpdesk-api/internal/repository"
	"github.com/spec-kit/helpdesk-api/internal/storage"
	apperrors "github.com/spec-kit/helpdesk-api/pkg/util"
)

// FileStore abstracts the attachment file backend.
type FileStore interface {
	Save(reader io.Reader, originalFilename string) (*storage.SaveResult, error)
	Remove(storedName string) error
}

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets     repository.TicketRepository
	attachments repository.AttachmentRepository
	users       repository.UserRepository
	store       FileStore
	dispatcher  events.Dispatcher
	logger      *zap.Logger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	AttachmentRepo repository.AttachmentRepository
	UserRepo       repository.UserRepository
	Store          FileStore
	Dispatcher     events.Dispatcher
	Logger         *zap.Logger
}

// UploadInput carries one incoming attachment file.
type UploadInput struct {
	FileName    string
	ContentType string
	Reader      io.Reader
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	Category    domain.TicketCategory
	Department  *domain.Department
	Attachments []UploadInput
}

// TicketUpdateInput describes a partial ticket update. Nil fields are left
// untouched. An empty AssignedTo clears the assignment.
type TicketUpdateInput struct {
	Title       *string
	Description *string
	Priority    *domain.TicketPriority
	Category    *domain.TicketCategory
	Status      *domain.TicketStatus
	AssignedTo  *string
}

// TicketListFilter describes listing filters.
type TicketListFilter struct {
	Status       *domain.TicketStatus
	Category     *domain.TicketCategory
	Priority     *domain.TicketPriority
	AssignedToMe bool
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		attachments: deps.AttachmentRepo,
		users:       deps.UserRepo,
		store:       deps.Store,
		dispatcher:  deps.Dispatcher,
		logger:      deps.Logger,
	}
}

// CreateTicket validates input, persists the ticket, and stores any
// attachments. A failed file write skips that attachment rather than failing
// the ticket; detach/attach is the corrective path.
func (s *TicketService) CreateTicket(ctx context.Context, actor *domain.User, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" {
		return nil, apperrors.NewValidationError("title required", nil)
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		return nil, apperrors.NewValidationError("title too long", map[string]any{"max_length": domain.MaxTitleLength})
	}
	if description == "" {
		return nil, apperrors.NewValidationError("description required", nil)
	}
	if !input.Priority.Valid() {
		return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": input.Priority})
	}
	if !input.Category.Valid() {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": input.Category})
	}
	if input.Department != nil && !input.Department.Valid() {
		return nil, apperrors.NewValidationError("unknown department", map[string]any{"department": *input.Department})
	}

	now := time.Now().UTC()
	ticket := &domain.Ticket{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Priority:    input.Priority,
		Category:    input.Category,
		Department:  input.Department,
		Status:      domain.TicketStatusOpen,
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	attachmentIDs := make([]string, 0, len(input.Attachments))
	for _, upload := range input.Attachments {
		attachment, err := s.storeAttachment(ctx, ticket.ID, upload, now)
		if err != nil {
			s.logger.Warn("attachment skipped during ticket creation",
				zap.String("ticket_id", ticket.ID),
				zap.String("file_name", upload.FileName),
				zap.Error(err))
			continue
		}
		ticket.Attachments = append(ticket.Attachments, *attachment)
		attachmentIDs = append(attachmentIDs, attachment.ID)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.TicketCreatedPayload{
			Title:         ticket.Title,
			Priority:      ticket.Priority,
			Category:      ticket.Category,
			CreatorEmail:  actor.Email,
			CreatorName:   actor.Name,
			AttachmentIDs: attachmentIDs,
		},
	})
	return ticket, nil
}

// ListTickets returns tickets visible to the actor, newest first. Callers
// without staff capability are always scoped to their own tickets.
func (s *TicketService) ListTickets(ctx context.Context, actor *domain.User, filter TicketListFilter) ([]domain.Ticket, error) {
	repoFilter := repository.TicketFilter{
		Status:   filter.Status,
		Category: filter.Category,
		Priority: filter.Priority,
	}
	if !actor.Role.Can(domain.CapabilityViewAllTickets) {
		createdBy := actor.ID
		repoFilter.CreatedBy = &createdBy
	}
	if filter.AssignedToMe {
		assignee := actor.ID
		repoFilter.AssignedTo = &assignee
	}
	return s.tickets.List(ctx, repoFilter)
}

// GetTicket fetches one ticket with its attachments.
func (s *TicketService) GetTicket(ctx context.Context, actor *domain.User, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := s.checkTicketAccess(actor, ticket); err != nil {
		return nil, err
	}
	attachments, err := s.attachments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, err
	}
	ticket.Attachments = attachments
	return ticket, nil
}

// UpdateTicket applies a partial update. Status and assignment changes need
// staff capability; any state may transition to any other, including
// reopening closed tickets.
func (s *TicketService) UpdateTicket(ctx context.Context, actor *domain.User, ticketID string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	touchesGuarded := input.Status != nil || input.AssignedTo != nil
	if touchesGuarded && !actor.Role.Can(domain.CapabilityChangeStatus) {
		return nil, apperrors.NewForbidden("insufficient permissions")
	}
	if !actor.Role.Can(domain.CapabilityViewAllTickets) && ticket.CreatedBy != actor.ID {
		return nil, apperrors.NewForbidden("access denied")
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, apperrors.NewValidationError("title required", nil)
		}
		if utf8.RuneCountInString(title) > domain.MaxTitleLength {
			return nil, apperrors.NewValidationError("title too long", map[string]any{"max_length": domain.MaxTitleLength})
		}
		ticket.Title = title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			return nil, apperrors.NewValidationError("description required", nil)
		}
		ticket.Description = description
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, apperrors.NewValidationError("unknown priority", map[string]any{"priority": *input.Priority})
		}
		ticket.Priority = *input.Priority
	}
	if input.Category != nil {
		if !input.Category.Valid() {
			return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": *input.Category})
		}
		ticket.Category = *input.Category
	}

	now := time.Now().UTC()
	var oldStatus domain.TicketStatus
	statusChanged := false
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": *input.Status})
		}
		if *input.Status != ticket.Status {
			oldStatus = ticket.Status
			statusChanged = true
			ticket.Status = *input.Status
			applyStatusTimestamps(ticket, now)
		}
	}

	assignmentChanged := false
	if input.AssignedTo != nil {
		assignee := strings.TrimSpace(*input.AssignedTo)
		if assignee == "" {
			ticket.AssignedTo = nil
		} else {
			if _, err := s.users.GetByID(ctx, assignee); err != nil {
				if err == pgx.ErrNoRows {
					return nil, apperrors.NewValidationError("unknown assignee", map[string]any{"assigned_to": assignee})
				}
				return nil, err
			}
			ticket.AssignedTo = &assignee
		}
		assignmentChanged = true
	}

	ticket.UpdatedAt = now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, err
	}

	if statusChanged {
		creatorEmail, creatorName := s.creatorContact(ctx, ticket.CreatedBy)
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketStatusChanged,
			TicketID: ticket.ID,
			ActorID:  actor.ID,
			Payload: events.TicketStatusChangedPayload{
				Title:        ticket.Title,
				OldStatus:    oldStatus,
				NewStatus:    ticket.Status,
				CreatorEmail: creatorEmail,
				CreatorName:  creatorName,
			},
		})
	}
	if assignmentChanged {
		s.publishEvent(ctx, events.Event{
			Type:     events.EventTicketAssigned,
			TicketID: ticket.ID,
			ActorID:  actor.ID,
			Payload:  events.TicketAssignedPayload{AssignedTo: ticket.AssignedTo},
		})
	}
	return ticket, nil
}

// AddAttachments stores files for an existing ticket and bumps its
// updated_at. Storage errors surface as StorageFailure, not retried.
func (s *TicketService) AddAttachments(ctx context.Context, actor *domain.User, ticketID string, uploads []UploadInput) ([]domain.Attachment, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if err := s.checkTicketAccess(actor, ticket); err != nil {
		return nil, err
	}
	if len(uploads) == 0 {
		return nil, apperrors.NewValidationError("no files provided", nil)
	}

	now := time.Now().UTC()
	stored := make([]domain.Attachment, 0, len(uploads))
	for _, upload := range uploads {
		attachment, err := s.storeAttachment(ctx, ticket.ID, upload, now)
		if err != nil {
			return nil, err
		}
		stored = append(stored, *attachment)
		s.publishEvent(ctx, events.Event{
			Type:     events.EventAttachmentAdded,
			TicketID: ticket.ID,
			ActorID:  actor.ID,
			Payload: events.AttachmentPayload{
				AttachmentID: attachment.ID,
				FileName:     attachment.FileName,
				StoredName:   attachment.StoredName,
			},
		})
	}

	ticket.UpdatedAt = now
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return stored, nil
}

// RemoveAttachment deletes one stored file and its metadata, then bumps the
// ticket's updated_at.
func (s *TicketService) RemoveAttachment(ctx context.Context, actor *domain.User, ticketID, storedName string) error {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return err
	}
	if err := s.checkTicketAccess(actor, ticket); err != nil {
		return err
	}

	attachment, err := s.attachments.GetByStoredName(ctx, ticket.ID, storedName)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("attachment", map[string]any{"stored_name": storedName})
		}
		return err
	}

	// file before metadata; a failed removal leaves the record retryable
	if err := s.store.Remove(attachment.StoredName); err != nil {
		return apperrors.NewStorageFailure("failed to remove stored file", err)
	}
	if err := s.attachments.Delete(ctx, attachment.ID); err != nil {
		return err
	}

	ticket.UpdatedAt = time.Now().UTC()
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventAttachmentRemoved,
		TicketID: ticket.ID,
		ActorID:  actor.ID,
		Payload: events.AttachmentPayload{
			AttachmentID: attachment.ID,
			FileName:     attachment.FileName,
			StoredName:   attachment.StoredName,
		},
	})
	return nil
}

func (s *TicketService) loadTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, err
	}
	return ticket, nil
}

func (s *TicketService) checkTicketAccess(actor *domain.User, ticket *domain.Ticket) error {
	if actor.Role.Can(domain.CapabilityViewAllTickets) {
		return nil
	}
	if ticket.CreatedBy != actor.ID {
		return apperrors.NewForbidden("access denied")
	}
	return nil
}

func (s *TicketService) storeAttachment(ctx context.Context, ticketID string, upload UploadInput, now time.Time) (*domain.Attachment, error) {
	result, err := s.store.Save(upload.Reader, upload.FileName)
	if err != nil {
		return nil, apperrors.NewStorageFailure("failed to store file", err)
	}

	attachment := &domain.Attachment{
		ID:          uuid.NewString(),
		TicketID:    ticketID,
		FileName:    upload.FileName,
		StoredName:  result.StoredName,
		ContentType: upload.ContentType,
		SizeBytes:   result.Size,
		CreatedAt:   now,
	}
	if err := s.attachments.Create(ctx, attachment); err != nil {
		// keep disk and metadata consistent
		_ = s.store.Remove(result.StoredName)
		return nil, err
	}
	return attachment, nil
}

// UserNames resolves display names for the given user ids. Unknown ids are
// simply absent from the result.
func (s *TicketService) UserNames(ctx context.Context, ids []string) map[string]string {
	names := make(map[string]string, len(ids))
	for _, id := range ids {
		if _, seen := names[id]; seen {
			continue
		}
		if user, err := s.users.GetByID(ctx, id); err == nil {
			names[id] = user.Name
		}
	}
	return names
}

func (s *TicketService) creatorContact(ctx context.Context, userID string) (email, name string) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", ""
	}
	return user.Email, user.Name
}

func applyStatusTimestamps(ticket *domain.Ticket, now time.Time) {
	switch ticket.Status {
	case domain.TicketStatusResolved:
		ticket.ResolvedAt = &now
		ticket.ClosedAt = nil
	case domain.TicketStatusClosed:
		ticket.ClosedAt = &now
	default:
		ticket.ResolvedAt = nil
		ticket.ClosedAt = nil
	}
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
