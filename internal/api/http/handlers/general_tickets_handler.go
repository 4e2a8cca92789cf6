package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/query"
	"github.com/spec-kit/helpdesk-service/internal/receipt"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// GeneralTicketsHandler exposes the HR attendance endpoints.
type GeneralTicketsHandler struct {
	engine *service.TicketEngine[*domain.GeneralTicket]
	loc    *time.Location
}

// NewGeneralTicketsHandler constructs handler.
func NewGeneralTicketsHandler(engine *service.TicketEngine[*domain.GeneralTicket], loc *time.Location) *GeneralTicketsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &GeneralTicketsHandler{engine: engine, loc: loc}
}

// Create handles POST /tickets/general.
func (h *GeneralTicketsHandler) Create(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.CreateGeneralTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket := &domain.GeneralTicket{
		EmployeeName: req.EmployeeName,
		NationalID:   req.NationalID,
		Phone:        req.Phone,
		Channel:      domain.ContactChannel(req.Channel),
		Category:     domain.GeneralCategory(req.Category),
		Reason:       req.Reason,
		Handler:      req.Handler,
		FrontDesk:    req.FrontDesk,
	}
	created, err := h.engine.Create(c.UserContext(), identity, ticket)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": dto.FromGeneralTicket(created),
	})
}

// List handles GET /tickets/general with filtering and pagination.
func (h *GeneralTicketsHandler) List(c *fiber.Ctx) error {
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
	items := make([]dto.GeneralTicketResponse, 0, len(page.Items))
	for _, row := range page.Items {
		items = append(items, dto.FromGeneralTicket(row))
	}

	return c.JSON(fiber.Map{
		"data":       items,
		"pagination": dto.PaginationFrom(page),
	})
}

// Get handles GET /tickets/general/:id.
func (h *GeneralTicketsHandler) Get(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	ticket, err := h.engine.GetVisible(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromGeneralTicket(ticket)})
}

// AppendInteraction handles POST /tickets/general/:id/interactions.
// A no-op request succeeds with changed=false and leaves the row untouched.
func (h *GeneralTicketsHandler) AppendInteraction(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	var req dto.AppendInteractionRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.InteractionInput{Text: req.Text, Handler: req.Handler}
	if req.NewStatus != nil {
		status := domain.Status(*req.NewStatus)
		input.NewStatus = &status
	}

	updated, changed, err := h.engine.AppendInteraction(c.UserContext(), identity, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data":    dto.FromGeneralTicket(updated),
		"changed": changed,
	})
}

// Reopen handles POST /tickets/general/:id/reopen.
func (h *GeneralTicketsHandler) Reopen(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	updated, err := h.engine.Reopen(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromGeneralTicket(updated)})
}

// CorrectHistory handles PUT /tickets/general/:id/history.
func (h *GeneralTicketsHandler) CorrectHistory(c *fiber.Ctx) error {
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
	return c.JSON(fiber.Map{"data": dto.FromGeneralTicket(updated)})
}

// Receipt handles GET /tickets/general/:id/receipt and returns the printable
// plain-text document.
func (h *GeneralTicketsHandler) Receipt(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	ticket, err := h.engine.GetVisible(c.UserContext(), identity, c.Params("id"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", "receipt_"+ticket.Number+".txt"))
	return c.SendString(receipt.RenderGeneral(ticket, h.loc))
}
