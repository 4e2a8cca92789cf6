package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

var base = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// makeTickets builds n rows, one per day starting at base, cycling status
// WAITING, COMPLETED, DELETED.
func makeTickets(n int) []*domain.GeneralTicket {
	statuses := []domain.Status{
		domain.GeneralStatusWaiting,
		domain.GeneralStatusCompleted,
		domain.GeneralStatusDeleted,
	}
	rows := make([]*domain.GeneralTicket, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, &domain.GeneralTicket{
			ID:           fmt.Sprintf("id-%d", i),
			Number:       fmt.Sprintf("ATD-20260301-%04d", 1000+i),
			EmployeeName: fmt.Sprintf("Employee %d", i),
			Channel:      domain.ChannelEmail,
			Category:     domain.CategoryBenefits,
			Reason:       "general request",
			Status:       statuses[i%len(statuses)],
			CreatedAt:    base.AddDate(0, 0, i),
		})
	}
	return rows
}

func TestApplyOrdersNewestFirst(t *testing.T) {
	rows := makeTickets(5)
	page := Apply(rows, Criteria{}, time.UTC)

	require.Len(t, page.Items, 5)
	for i := 1; i < len(page.Items); i++ {
		assert.False(t, page.Items[i].CreatedAt.After(page.Items[i-1].CreatedAt))
	}
}

func TestApplyPaginates(t *testing.T) {
	rows := makeTickets(15)

	first := Apply(rows, Criteria{Page: 1}, time.UTC)
	assert.Len(t, first.Items, 10)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, 15, first.TotalItems)
	assert.Equal(t, 2, first.TotalPages)

	second := Apply(rows, Criteria{Page: 2}, time.UTC)
	assert.Len(t, second.Items, 5)
	assert.Equal(t, 2, second.Number)
}

func TestApplyClampsPageIndex(t *testing.T) {
	rows := makeTickets(15)

	beyond := Apply(rows, Criteria{Page: 9}, time.UTC)
	assert.Equal(t, 2, beyond.Number, "requests past the end land on the last page")
	assert.Len(t, beyond.Items, 5)

	under := Apply(rows, Criteria{Page: 0}, time.UTC)
	assert.Equal(t, 1, under.Number)

	empty := Apply[*domain.GeneralTicket](nil, Criteria{Page: 3}, time.UTC)
	assert.Equal(t, 1, empty.Number)
	assert.Empty(t, empty.Items)
	assert.Zero(t, empty.TotalPages)
}

func TestApplyStatusFilter(t *testing.T) {
	rows := makeTickets(15)

	waiting := Apply(rows, Criteria{Statuses: []domain.Status{domain.GeneralStatusWaiting}}, time.UTC)
	assert.Equal(t, 5, waiting.TotalItems)
	assert.Equal(t, 1, waiting.TotalPages)
	for _, row := range waiting.Items {
		assert.Equal(t, domain.GeneralStatusWaiting, row.Status)
	}

	// an empty status set applies no filtering, it does not match nothing
	all := Apply(rows, Criteria{Statuses: nil}, time.UTC)
	assert.Equal(t, 15, all.TotalItems)
}

func TestApplySearchIsCaseInsensitive(t *testing.T) {
	rows := makeTickets(6)
	rows[2].Reason = "Vacation advance for ANA"

	page := Apply(rows, Criteria{Search: "ana"}, time.UTC)
	require.Len(t, page.Items, 1)
	assert.Equal(t, rows[2].ID, page.Items[0].ID)
}

func TestApplyDateWindowInclusive(t *testing.T) {
	rows := makeTickets(10)
	from := base.AddDate(0, 0, 2)
	to := base.AddDate(0, 0, 4)

	page := Apply(rows, Criteria{DateFrom: &from, DateTo: &to}, time.UTC)
	assert.Equal(t, 3, page.TotalItems, "both window ends are inclusive")
}

func TestApplyDateWindowUsesDisplayTimezone(t *testing.T) {
	loc := time.FixedZone("UTC-3", -3*60*60)
	// 01:00 UTC is still the previous calendar day at UTC-3
	late := &domain.GeneralTicket{
		ID:        "late",
		Status:    domain.GeneralStatusWaiting,
		CreatedAt: time.Date(2026, 3, 5, 1, 0, 0, 0, time.UTC),
	}
	day := time.Date(2026, 3, 4, 0, 0, 0, 0, loc)

	page := Apply([]*domain.GeneralTicket{late}, Criteria{DateFrom: &day, DateTo: &day}, loc)
	assert.Equal(t, 1, page.TotalItems)
}

func TestApplyFrontDeskOnly(t *testing.T) {
	rows := makeTickets(4)
	rows[1].FrontDesk = true

	page := Apply(rows, Criteria{FrontDeskOnly: true}, time.UTC)
	require.Len(t, page.Items, 1)
	assert.Equal(t, rows[1].ID, page.Items[0].ID)
}

func TestApplyCategoryFilter(t *testing.T) {
	rows := makeTickets(4)
	rows[0].Category = domain.CategoryVacation

	page := Apply(rows, Criteria{Categories: []string{"vacation"}}, time.UTC)
	require.Len(t, page.Items, 1)
	assert.Equal(t, rows[0].ID, page.Items[0].ID)
}

func TestApplyConjunctiveFilters(t *testing.T) {
	rows := makeTickets(15)
	page := Apply(rows, Criteria{
		Statuses: []domain.Status{domain.GeneralStatusWaiting, domain.GeneralStatusCompleted},
		Search:   "employee 1",
	}, time.UTC)
	// "employee 1" matches employees 1 and 10..14; 11 and 14 are DELETED
	// and drop out of the status filter
	for _, row := range page.Items {
		assert.NotEqual(t, domain.GeneralStatusDeleted, row.Status)
	}
	assert.Equal(t, 4, page.TotalItems)
}
