package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-api/internal/api/dto"
	"github.com/spec-kit/helpdesk-api/internal/auth"
	"github.com/spec-kit/helpdesk-api/internal/domain"
	"github.com/spec-kit/helpdesk-api/internal/service"
	apperrors "github.com/spec-kit/helpdesk-api/pkg/util"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets. Accepts JSON, or multipart form when
// attachments are present.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.TicketCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		Department:  req.Department,
	}

	uploads, closeFiles, err := collectUploads(c)
	if err != nil {
		return err
	}
	defer closeFiles()
	input.Attachments = uploads

	ticket, err := h.service.CreateTicket(c.Context(), principal.User, input)
	if err != nil {
		return err
	}

	names := map[string]string{principal.User.ID: principal.User.Name}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": ticketResponse(ticket, names)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	filter := parseTicketQuery(c)
	tickets, err := h.service.ListTickets(c.Context(), principal.User, filter)
	if err != nil {
		return err
	}

	names := h.service.UserNames(c.Context(), collectUserIDs(tickets))
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketResponse(&tickets[i], names))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	ticket, err := h.service.GetTicket(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}

	names := h.service.UserNames(c.Context(), collectUserIDs([]domain.Ticket{*ticket}))
	return c.JSON(fiber.Map{"data": ticketResponse(ticket, names)})
}

// UpdateTicket PUT /tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.UpdateTicket(c.Context(), principal.User, c.Params("id"), service.TicketUpdateInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Category:    req.Category,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
	})
	if err != nil {
		return err
	}

	names := h.service.UserNames(c.Context(), collectUserIDs([]domain.Ticket{*ticket}))
	return c.JSON(fiber.Map{"data": ticketResponse(ticket, names)})
}

// AddAttachments POST /tickets/:id/attachments.
func (h *TicketsHandler) AddAttachments(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	uploads, closeFiles, err := collectUploads(c)
	if err != nil {
		return err
	}
	defer closeFiles()

	attachments, err := h.service.AddAttachments(c.Context(), principal.User, c.Params("id"), uploads)
	if err != nil {
		return err
	}

	items := make([]dto.AttachmentResponse, 0, len(attachments))
	for _, attachment := range attachments {
		items = append(items, attachmentResponse(attachment))
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": items})
}

// RemoveAttachment DELETE /tickets/:id/attachments/:stored.
func (h *TicketsHandler) RemoveAttachment(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	if err := h.service.RemoveAttachment(c.Context(), principal.User, c.Params("id"), c.Params("stored")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func collectUploads(c *fiber.Ctx) ([]service.UploadInput, func(), error) {
	contentType := c.Get(fiber.HeaderContentType)
	if !strings.HasPrefix(contentType, fiber.MIMEMultipartForm) {
		return nil, func() {}, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, func() {}, apperrors.NewValidationError("invalid multipart form", nil)
	}

	var closers []interface{ Close() error }
	closeAll := func() {
		for _, closer := range closers {
			_ = closer.Close()
		}
	}

	var uploads []service.UploadInput
	for _, header := range form.File["files"] {
		file, err := header.Open()
		if err != nil {
			closeAll()
			return nil, func() {}, apperrors.NewStorageFailure("failed to read uploaded file", err)
		}
		closers = append(closers, file)
		uploads = append(uploads, service.UploadInput{
			FileName:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Reader:      file,
		})
	}
	return uploads, closeAll, nil
}

func parseTicketQuery(c *fiber.Ctx) service.TicketListFilter {
	filter := service.TicketListFilter{}
	if val := c.Query("status"); val != "" {
		status := domain.TicketStatus(val)
		filter.Status = &status
	}
	if val := c.Query("category"); val != "" {
		category := domain.TicketCategory(val)
		filter.Category = &category
	}
	if val := c.Query("priority"); val != "" {
		priority := domain.TicketPriority(val)
		filter.Priority = &priority
	}
	if val := c.Query("assigned_to_me"); val != "" {
		parsed, err := strconv.ParseBool(val)
		filter.AssignedToMe = err == nil && parsed
	}
	return filter
}

func collectUserIDs(tickets []domain.Ticket) []string {
	ids := make([]string, 0, len(tickets)*2)
	for i := range tickets {
		ids = append(ids, tickets[i].CreatedBy)
		if tickets[i].AssignedTo != nil {
			ids = append(ids, *tickets[i].AssignedTo)
		}
	}
	return ids
}

func ticketResponse(ticket *domain.Ticket, names map[string]string) dto.TicketResponse {
	attachments := make([]dto.AttachmentResponse, 0, len(ticket.Attachments))
	for _, attachment := range ticket.Attachments {
		attachments = append(attachments, attachmentResponse(attachment))
	}

	resp := dto.TicketResponse{
		ID:            ticket.ID,
		Title:         ticket.Title,
		Description:   ticket.Description,
		Priority:      ticket.Priority,
		Category:      ticket.Category,
		Department:    ticket.Department,
		Status:        ticket.Status,
		CreatedBy:     ticket.CreatedBy,
		CreatedByName: names[ticket.CreatedBy],
		AssignedTo:    ticket.AssignedTo,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
		ResolvedAt:    ticket.ResolvedAt,
		ClosedAt:      ticket.ClosedAt,
		Attachments:   attachments,
	}
	if ticket.AssignedTo != nil {
		if name, ok := names[*ticket.AssignedTo]; ok {
			resp.AssignedToName = &name
		}
	}
	return resp
}

func attachmentResponse(attachment domain.Attachment) dto.AttachmentResponse {
	return dto.AttachmentResponse{
		ID:          attachment.ID,
		FileName:    attachment.FileName,
		StoredName:  attachment.StoredName,
		ContentType: attachment.ContentType,
		SizeBytes:   attachment.SizeBytes,
		CreatedAt:   attachment.CreatedAt,
	}
}
