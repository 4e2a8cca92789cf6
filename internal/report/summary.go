// Package report computes read-only aggregations over a date-bounded
// subset of tickets for dashboard rendering.
package report

import (
	"sort"
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/query"
)

// LatestPanelSize is the number of rows in the "latest activity" panel.
const LatestPanelSize = 4

// StatusCount is one status bucket with its share of the window total.
type StatusCount struct {
	Status  domain.Status `json:"status"`
	Count   int           `json:"count"`
	Percent float64       `json:"percent"`
}

// CategoryCount is one category (or department) bucket.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Summary is the aggregation result for one window.
type Summary[T domain.Ticket] struct {
	Total int `json:"total"`
	// ByStatus has one bucket per status in the kind's vocabulary, in
	// vocabulary order, including zero-count buckets.
	ByStatus []StatusCount `json:"by_status"`
	// ByCategory is sorted by count descending (label ascending on ties)
	// for charting.
	ByCategory []CategoryCount `json:"by_category"`
	// Latest holds the most recently created rows, newest first.
	Latest []T `json:"latest"`
}

// Summarize computes the summary over rows created inside the inclusive
// calendar-date window (open ends allowed), compared in the display
// timezone. Percentages are 0 when the window is empty; there is no
// division by zero. The input is never mutated.
func Summarize[T domain.Ticket](lc domain.Lifecycle, rows []T, from, to *time.Time, loc *time.Location) Summary[T] {
	if loc == nil {
		loc = time.UTC
	}

	windowed := make([]T, 0, len(rows))
	for _, row := range rows {
		if query.InDateWindow(row.GetCreatedAt(), from, to, loc) {
			windowed = append(windowed, row)
		}
	}

	total := len(windowed)
	statusCounts := make(map[domain.Status]int, len(lc.All))
	categoryCounts := make(map[string]int)
	for _, row := range windowed {
		statusCounts[row.GetStatus()]++
		categoryCounts[row.CategoryLabel()]++
	}

	byStatus := make([]StatusCount, 0, len(lc.All))
	for _, status := range lc.All {
		count := statusCounts[status]
		bucket := StatusCount{Status: status, Count: count}
		if total > 0 {
			bucket.Percent = float64(count) / float64(total) * 100
		}
		byStatus = append(byStatus, bucket)
	}

	byCategory := make([]CategoryCount, 0, len(categoryCounts))
	for category, count := range categoryCounts {
		byCategory = append(byCategory, CategoryCount{Category: category, Count: count})
	}
	sort.Slice(byCategory, func(i, j int) bool {
		if byCategory[i].Count != byCategory[j].Count {
			return byCategory[i].Count > byCategory[j].Count
		}
		return byCategory[i].Category < byCategory[j].Category
	})

	latest := make([]T, len(windowed))
	copy(latest, windowed)
	sort.SliceStable(latest, func(i, j int) bool {
		return latest[i].GetCreatedAt().After(latest[j].GetCreatedAt())
	})
	if len(latest) > LatestPanelSize {
		latest = latest[:LatestPanelSize]
	}

	return Summary[T]{
		Total:      total,
		ByStatus:   byStatus,
		ByCategory: byCategory,
		Latest:     latest,
	}
}
