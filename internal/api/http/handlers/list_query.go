package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/query"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

const listDateLayout = "2006-01-02"

// parseListCriteria reads the shared listing query parameters:
// search, date_from, date_to, status (csv), category (csv), front_desk_only
// and page. Empty csv sets mean "no filtering".
func parseListCriteria(c *fiber.Ctx, loc *time.Location) (query.Criteria, error) {
	criteria := query.Criteria{
		Search:        c.Query("search"),
		Statuses:      parseStatusList(c.Query("status")),
		Categories:    splitCSV(c.Query("category")),
		FrontDeskOnly: c.QueryBool("front_desk_only", false),
		Page:          c.QueryInt("page", 1),
		PageSize:      query.DefaultPageSize,
	}

	from, err := parseListDate(c.Query("date_from"), loc)
	if err != nil {
		return query.Criteria{}, apperrors.NewValidationError("invalid date_from", map[string]any{
			"expected": listDateLayout,
		})
	}
	to, err := parseListDate(c.Query("date_to"), loc)
	if err != nil {
		return query.Criteria{}, apperrors.NewValidationError("invalid date_to", map[string]any{
			"expected": listDateLayout,
		})
	}
	criteria.DateFrom = from
	criteria.DateTo = to
	return criteria, nil
}

func parseListDate(raw string, loc *time.Location) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.ParseInLocation(listDateLayout, raw, loc)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func parseStatusList(raw string) []domain.Status {
	parts := splitCSV(raw)
	if len(parts) == 0 {
		return nil
	}
	statuses := make([]domain.Status, 0, len(parts))
	for _, part := range parts {
		statuses = append(statuses, domain.Status(strings.ToUpper(part)))
	}
	return statuses
}

func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
