package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/query"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// InternalTicketsHandler exposes the inter-department request endpoints.
type InternalTicketsHandler struct {
	engine *service.TicketEngine[*domain.InternalTicket]
	loc    *time.Location
}

// NewInternalTicketsHandler constructs handler.
func NewInternalTicketsHandler(engine *service.TicketEngine[*domain.InternalTicket], loc *time.Location) *InternalTicketsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &InternalTicketsHandler{engine: engine, loc: loc}
}

// Create handles POST /tickets/internal.
func (h *InternalTicketsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.CreateInternalTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket := &domain.InternalTicket{
		RequesterName: req.RequesterName,
		Department:    domain.Department(req.Department),
		ContactEmail:  req.ContactEmail,
		ContactPhone:  req.ContactPhone,
		Description:   req.Description,
	}
	created, err := h.engine.Create(c.UserContext(), identity, ticket)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.FromInternalTicket(created),
	})
}

// List handles GET /tickets/internal with filtering and pagination.
func (h *InternalTicketsHandler) List(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	criteria, err := parseListCriteria(c, h.loc)
	if err != nil {
		return err
	}

	rows, err := h.engine.ListVisible(c.UserContext(), identity)
	if err != nil {
		return err
	}

	page := query.Apply(rows, criteria, h.loc)
	items := make([]dto.InternalTicketResponse, 0, len(page.Items))
	for _, row := range page.Items {
		items = append(items, dto.FromInternalTicket(row))
	}

	return c.JSON(fiber.Map{
		"data":       items,
		"pagination": dto.PaginationFrom(page),
	})
}

// Get handles GET /tickets/internal/:id.
func (h *InternalTicketsHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	ticket, err := h.engine.GetVisible(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromInternalTicket(ticket)})
}

// AppendInteraction handles POST /tickets/internal/:id/interactions.
func (h *InternalTicketsHandler) AppendInteraction(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.AppendInteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.InteractionInput{Text: req.Text}
	if req.NewStatus != nil {
		status := domain.Status(*req.NewStatus)
		input.NewStatus = &status
	}

	updated, changed, err := h.engine.AppendInteraction(c.UserContext(), identity, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data":    dto.FromInternalTicket(updated),
		"changed": changed,
	})
}

// Reopen handles POST /tickets/internal/:id/reopen.
func (h *InternalTicketsHandler) Reopen(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	updated, err := h.engine.Reopen(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromInternalTicket(updated)})
}

// CorrectHistory handles PUT /tickets/internal/:id/history.
func (h *InternalTicketsHandler) CorrectHistory(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.CorrectHistoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	updated, err := h.engine.CorrectHistory(c.UserContext(), identity, c.Params("id"), req.History, req.Secret)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromInternalTicket(updated)})
}
