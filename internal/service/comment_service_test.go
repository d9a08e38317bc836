package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/spec-kit/helpdesk-api/internal/domain"
	"github.com/spec-kit/helpdesk-api/internal/events"
	apperrors "github.com/spec-kit/helpdesk-api/pkg/util"
)

func newTestCommentService(comments *mockCommentRepo, tickets *mockTicketRepo, users *mockUserRepo, dispatcher *recordingDispatcher) *CommentService {
	return NewCommentService(comments, tickets, users, dispatcher)
}

func ticketOwnedBy(creator string) *mockTicketRepo {
	return &mockTicketRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.Ticket, error) {
			return &domain.Ticket{ID: id, Title: "sample", CreatedBy: creator}, nil
		},
	}
}

func TestAddCommentValidation(t *testing.T) {
	svc := newTestCommentService(&mockCommentRepo{}, ticketOwnedBy("u1"), &mockUserRepo{}, &recordingDispatcher{})

	_, err := svc.AddComment(context.Background(), endUser("u1"), "t1", "   ", false)
	if err == nil {
		t.Fatal("expected validation error for empty content")
	}
	if code := apperrors.ToDomainError(err).Code; code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", code)
	}
}

func TestAddCommentInternalNeedsStaff(t *testing.T) {
	svc := newTestCommentService(&mockCommentRepo{}, ticketOwnedBy("u1"), &mockUserRepo{}, &recordingDispatcher{})

	_, err := svc.AddComment(context.Background(), endUser("u1"), "t1", "note to self", true)
	if err == nil {
		t.Fatal("expected forbidden for end user internal comment")
	}
	if code := apperrors.ToDomainError(err).Code; code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %s", code)
	}

	comment, err := svc.AddComment(context.Background(), agent("a1"), "t1", "note to self", true)
	if err != nil {
		t.Fatalf("staff internal comment should succeed, got %v", err)
	}
	if !comment.Internal {
		t.Fatal("expected the comment to be internal")
	}
}

func TestAddCommentUnknownTicket(t *testing.T) {
	svc := newTestCommentService(&mockCommentRepo{}, &mockTicketRepo{}, &mockUserRepo{}, &recordingDispatcher{})

	_, err := svc.AddComment(context.Background(), agent("a1"), "missing", "hello", false)
	if err == nil {
		t.Fatal("expected not found")
	}
	if code := apperrors.ToDomainError(err).Code; code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}
}

func TestAddCommentPublishesEvent(t *testing.T) {
	users := &mockUserRepo{
		getByIDFn: func(ctx context.Context, id string) (*domain.User, error) {
			return &domain.User{ID: id, Email: id + "@example.com", Name: id}, nil
		},
	}
	dispatcher := &recordingDispatcher{}
	svc := newTestCommentService(&mockCommentRepo{}, ticketOwnedBy("u1"), users, dispatcher)

	comment, err := svc.AddComment(context.Background(), agent("a1"), "t1", "on it", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(dispatcher.published) != 1 {
		t.Fatalf("expected one event, got %d", len(dispatcher.published))
	}
	event := dispatcher.published[0]
	if event.Type != events.EventCommentAdded {
		t.Fatalf("expected comment_added event, got %s", event.Type)
	}
	payload, ok := event.Payload.(events.CommentAddedPayload)
	if !ok {
		t.Fatalf("unexpected payload type %T", event.Payload)
	}
	if payload.CommentID != comment.ID {
		t.Fatalf("expected payload for comment %s, got %s", comment.ID, payload.CommentID)
	}
	if len(payload.Recipients) != 1 || payload.Recipients[0] != "u1@example.com" {
		t.Fatalf("expected the creator as recipient, got %v", payload.Recipients)
	}
}

func TestListCommentsFiltersInternalForEndUsers(t *testing.T) {
	var captured bool
	comments := &mockCommentRepo{
		listByTicketFn: func(ctx context.Context, ticketID string, includeInternal bool) ([]domain.Comment, error) {
			captured = includeInternal
			return nil, nil
		},
	}
	svc := newTestCommentService(comments, ticketOwnedBy("u1"), &mockUserRepo{}, &recordingDispatcher{})

	if _, err := svc.ListComments(context.Background(), endUser("u1"), "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if captured {
		t.Fatal("end users must not receive internal comments")
	}

	if _, err := svc.ListComments(context.Background(), agent("a1"), "t1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !captured {
		t.Fatal("staff should receive internal comments")
	}
}

func TestPreview(t *testing.T) {
	if got := preview("short", 120); got != "short" {
		t.Fatalf("expected untouched preview, got %q", got)
	}

	got := preview(strings.Repeat("a", 130), 120)
	if len(got) != 120 {
		t.Fatalf("expected preview capped at 120, got %d", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
}

func TestPreviewTruncatesOnRuneBoundary(t *testing.T) {
	got := preview(strings.Repeat("é", 130), 120)
	if !utf8.ValidString(got) {
		t.Fatalf("preview emitted invalid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != 120 {
		t.Fatalf("expected 120 runes, got %d", n)
	}
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected ellipsis suffix, got %q", got)
	}
}
