package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-api/internal/api/dto"
	"github.com/spec-kit/helpdesk-api/internal/auth"
	"github.com/spec-kit/helpdesk-api/internal/domain"
	"github.com/spec-kit/helpdesk-api/internal/service"
	apperrors "github.com/spec-kit/helpdesk-api/pkg/util"
)

// CommentsHandler manages ticket comment endpoints.
type CommentsHandler struct {
	service *service.CommentService
}

// NewCommentsHandler constructs handler.
func NewCommentsHandler(commentService *service.CommentService) *CommentsHandler {
	return &CommentsHandler{service: commentService}
}

// AddComment POST /tickets/:id/comments.
func (h *CommentsHandler) AddComment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	comment, err := h.service.AddComment(c.Context(), principal.User, c.Params("id"), req.Content, req.IsInternal)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": commentResponse(comment)})
}

// ListComments GET /tickets/:id/comments.
func (h *CommentsHandler) ListComments(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	comments, err := h.service.ListComments(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}

	items := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		items = append(items, commentResponse(&comments[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func commentResponse(comment *domain.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:         comment.ID,
		TicketID:   comment.TicketID,
		AuthorID:   comment.AuthorID,
		AuthorName: comment.AuthorName,
		Content:    comment.Content,
		IsInternal: comment.Internal,
		CreatedAt:  comment.CreatedAt,
	}
}
