package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/api/dto"
	"github.com/spec-kit/helpdesk-service/internal/auth"
	"github.com/spec-kit/helpdesk-service/internal/service"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// DashboardHandler exposes the attendance summary endpoint.
type DashboardHandler struct {
	dashboard *service.DashboardService
	loc       *time.Location
}

// NewDashboardHandler constructs handler.
func NewDashboardHandler(dashboard *service.DashboardService, loc *time.Location) *DashboardHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardHandler{dashboard: dashboard, loc: loc}
}

// Summary handles GET /dashboard/summary. date_from/date_to bound the window
// as inclusive calendar dates; either end may be omitted.
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	identity, ok := auth.IdentityFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}

	from, err := parseListDate(c.Query("date_from"), h.loc)
	if err != nil {
		return apperrors.NewValidationError("invalid date_from", map[string]any{
			"expected": listDateLayout,
		})
	}
	to, err := parseListDate(c.Query("date_to"), h.loc)
	if err != nil {
		return apperrors.NewValidationError("invalid date_to", map[string]any{
			"expected": listDateLayout,
		})
	}

	summary, err := h.dashboard.Summary(c.UserContext(), identity, from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromSummary(summary)})
}
