// Package query produces filtered, deterministically ordered, paginated
// views over a ticket collection already scoped to the caller's visibility.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// DefaultPageSize is the fixed page size for ticket list pages.
const DefaultPageSize = 10

// Criteria is a conjunctive filter specification. Zero values mean "no
// filtering" for that predicate; in particular an empty status or category
// set applies no filtering at all rather than matching nothing.
type Criteria struct {
	// Search is matched case-insensitively against the flattened textual
	// representation of the whole row, not per-field.
	Search string
	// DateFrom/DateTo bound the row's creation date, inclusive, compared
	// as calendar dates in the display timezone. Either end may be open.
	DateFrom *time.Time
	DateTo   *time.Time
	Statuses []domain.Status
	// Categories matches CategoryLabel (category or department).
	Categories []string
	// FrontDeskOnly keeps only rows flagged as front-desk originated.
	FrontDeskOnly bool

	// Page is 1-indexed and clamped into the valid range after filtering.
	Page     int
	PageSize int
}

// Page is one page of a filtered view.
type Page[T domain.Ticket] struct {
	Items      []T
	Number     int
	PageSize   int
	TotalItems int
	TotalPages int
}

// Apply filters, orders and paginates rows. Ordering is creation time
// descending; rows already come ordered from the store but the sort is
// re-applied so the view is deterministic regardless of source.
func Apply[T domain.Ticket](rows []T, c Criteria, loc *time.Location) Page[T] {
	if loc == nil {
		loc = time.UTC
	}

	filtered := make([]T, 0, len(rows))
	for _, row := range rows {
		if matches(row, c, loc) {
			filtered = append(filtered, row)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].GetCreatedAt().After(filtered[j].GetCreatedAt())
	})

	return paginate(filtered, c.Page, c.PageSize)
}

func matches[T domain.Ticket](row T, c Criteria, loc *time.Location) bool {
	if search := strings.ToLower(strings.TrimSpace(c.Search)); search != "" {
		if !strings.Contains(row.SearchText(), search) {
			return false
		}
	}
	if len(c.Statuses) > 0 && !statusIn(row.GetStatus(), c.Statuses) {
		return false
	}
	if len(c.Categories) > 0 && !labelIn(row.CategoryLabel(), c.Categories) {
		return false
	}
	if c.FrontDeskOnly && !row.IsFrontDesk() {
		return false
	}
	return InDateWindow(row.GetCreatedAt(), c.DateFrom, c.DateTo, loc)
}

// InDateWindow reports whether ts falls inside the inclusive calendar-date
// window, compared in the given display timezone. Open ends always match.
func InDateWindow(ts time.Time, from, to *time.Time, loc *time.Location) bool {
	day := calendarDate(ts, loc)
	if from != nil && day.Before(calendarDate(*from, loc)) {
		return false
	}
	if to != nil && day.After(calendarDate(*to, loc)) {
		return false
	}
	return true
}

func calendarDate(ts time.Time, loc *time.Location) time.Time {
	local := ts.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func paginate[T domain.Ticket](rows []T, page, pageSize int) Page[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	total := len(rows)
	totalPages := (total + pageSize - 1) / pageSize

	// clamp the requested index: re-filtering can shrink the set below the
	// page the caller was on; an empty set still lands on page 1
	if page < 1 || totalPages == 0 {
		page = 1
	} else if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page[T]{
		Items:      rows[start:end],
		Number:     page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: totalPages,
	}
}

func statusIn(s domain.Status, set []domain.Status) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}

func labelIn(label string, set []string) bool {
	for _, candidate := range set {
		if strings.EqualFold(candidate, label) {
			return true
		}
	}
	return false
}
