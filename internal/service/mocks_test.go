package service

import (
	"context"
	"errors"
	"io"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk-api/internal/domain"
	"github.com/spec-kit/helpdesk-api/internal/events"
	"github.com/spec-kit/helpdesk-api/internal/repository"
	"github.com/spec-kit/helpdesk-api/internal/storage"
)

var errDiskFull = errors.New("disk full")

type mockTicketRepo struct {
	createFn  func(ctx context.Context, ticket *domain.Ticket) error
	updateFn  func(ctx context.Context, ticket *domain.Ticket) error
	getByIDFn func(ctx context.Context, id string) (*domain.Ticket, error)
	listFn    func(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error)
	listAllFn func(ctx context.Context) ([]domain.Ticket, error)
}

func (m *mockTicketRepo) Create(ctx context.Context, ticket *domain.Ticket) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, ticket)
}

func (m *mockTicketRepo) Update(ctx context.Context, ticket *domain.Ticket) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, ticket)
}

func (m *mockTicketRepo) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if m.getByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockTicketRepo) List(ctx context.Context, filter repository.TicketFilter) ([]domain.Ticket, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx, filter)
}

func (m *mockTicketRepo) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	if m.listAllFn == nil {
		return nil, nil
	}
	return m.listAllFn(ctx)
}

type mockUserRepo struct {
	createFn     func(ctx context.Context, user *domain.User) error
	updateFn     func(ctx context.Context, user *domain.User) error
	getByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	getByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	listFn       func(ctx context.Context) ([]domain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, user)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	if m.updateFn == nil {
		return nil
	}
	return m.updateFn(ctx, user)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.getByIDFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.getByIDFn(ctx, id)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getByEmailFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.getByEmailFn(ctx, email)
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	if m.listFn == nil {
		return nil, nil
	}
	return m.listFn(ctx)
}

type mockAttachmentRepo struct {
	createFn          func(ctx context.Context, attachment *domain.Attachment) error
	listByTicketFn    func(ctx context.Context, ticketID string) ([]domain.Attachment, error)
	getByStoredNameFn func(ctx context.Context, ticketID, storedName string) (*domain.Attachment, error)
	deleteFn          func(ctx context.Context, id string) error
}

func (m *mockAttachmentRepo) Create(ctx context.Context, attachment *domain.Attachment) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, attachment)
}

func (m *mockAttachmentRepo) ListByTicket(ctx context.Context, ticketID string) ([]domain.Attachment, error) {
	if m.listByTicketFn == nil {
		return nil, nil
	}
	return m.listByTicketFn(ctx, ticketID)
}

func (m *mockAttachmentRepo) GetByStoredName(ctx context.Context, ticketID, storedName string) (*domain.Attachment, error) {
	if m.getByStoredNameFn == nil {
		return nil, pgx.ErrNoRows
	}
	return m.getByStoredNameFn(ctx, ticketID, storedName)
}

func (m *mockAttachmentRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

type mockCommentRepo struct {
	createFn       func(ctx context.Context, comment *domain.Comment) error
	listByTicketFn func(ctx context.Context, ticketID string, includeInternal bool) ([]domain.Comment, error)
}

func (m *mockCommentRepo) Create(ctx context.Context, comment *domain.Comment) error {
	if m.createFn == nil {
		return nil
	}
	return m.createFn(ctx, comment)
}

func (m *mockCommentRepo) ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]domain.Comment, error) {
	if m.listByTicketFn == nil {
		return nil, nil
	}
	return m.listByTicketFn(ctx, ticketID, includeInternal)
}

type mockFileStore struct {
	saveFn   func(reader io.Reader, originalFilename string) (*storage.SaveResult, error)
	removeFn func(storedName string) error
	removed  []string
}

func (m *mockFileStore) Save(reader io.Reader, originalFilename string) (*storage.SaveResult, error) {
	if m.saveFn == nil {
		return &storage.SaveResult{StoredName: "stored-" + originalFilename, Size: 1}, nil
	}
	return m.saveFn(reader, originalFilename)
}

func (m *mockFileStore) Remove(storedName string) error {
	m.removed = append(m.removed, storedName)
	if m.removeFn == nil {
		return nil
	}
	return m.removeFn(storedName)
}

type recordingDispatcher struct {
	published []events.Event
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(eventType events.EventType, handler events.EventHandler) {}
