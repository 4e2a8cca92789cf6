package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func ticketAt(i int, status domain.Status, category domain.GeneralCategory) *domain.GeneralTicket {
	return &domain.GeneralTicket{
		ID:        fmt.Sprintf("id-%d", i),
		Status:    status,
		Category:  category,
		CreatedAt: base.AddDate(0, 0, i),
	}
}

func TestSummarizeEmptyWindow(t *testing.T) {
	summary := Summarize[*domain.GeneralTicket](domain.GeneralLifecycle, nil, nil, nil, time.UTC)

	assert.Zero(t, summary.Total)
	require.Len(t, summary.ByStatus, 3, "every status in the vocabulary gets a bucket")
	for _, bucket := range summary.ByStatus {
		assert.Zero(t, bucket.Count)
		assert.Zero(t, bucket.Percent, "no division by zero on an empty window")
	}
	assert.Empty(t, summary.ByCategory)
	assert.Empty(t, summary.Latest)
}

func TestSummarizeStatusBucketsInVocabularyOrder(t *testing.T) {
	rows := []*domain.GeneralTicket{
		ticketAt(0, domain.GeneralStatusWaiting, domain.CategorySalary),
		ticketAt(1, domain.GeneralStatusWaiting, domain.CategorySalary),
		ticketAt(2, domain.GeneralStatusCompleted, domain.CategoryVacation),
		ticketAt(3, domain.GeneralStatusCompleted, domain.CategoryBenefits),
	}

	summary := Summarize(domain.GeneralLifecycle, rows, nil, nil, time.UTC)

	require.Len(t, summary.ByStatus, 3)
	assert.Equal(t, domain.GeneralStatusWaiting, summary.ByStatus[0].Status)
	assert.Equal(t, domain.GeneralStatusCompleted, summary.ByStatus[1].Status)
	assert.Equal(t, domain.GeneralStatusDeleted, summary.ByStatus[2].Status)

	assert.Equal(t, 2, summary.ByStatus[0].Count)
	assert.InDelta(t, 50.0, summary.ByStatus[0].Percent, 0.001)
	assert.Zero(t, summary.ByStatus[2].Count, "zero-count buckets stay present")
}

func TestSummarizeCategorySort(t *testing.T) {
	rows := []*domain.GeneralTicket{
		ticketAt(0, domain.GeneralStatusWaiting, domain.CategoryVacation),
		ticketAt(1, domain.GeneralStatusWaiting, domain.CategoryVacation),
		ticketAt(2, domain.GeneralStatusWaiting, domain.CategorySalary),
		ticketAt(3, domain.GeneralStatusWaiting, domain.CategoryBenefits),
	}

	summary := Summarize(domain.GeneralLifecycle, rows, nil, nil, time.UTC)

	require.Len(t, summary.ByCategory, 3)
	assert.Equal(t, CategoryCount{Category: "VACATION", Count: 2}, summary.ByCategory[0])
	// count ties break by label ascending
	assert.Equal(t, CategoryCount{Category: "BENEFITS", Count: 1}, summary.ByCategory[1])
	assert.Equal(t, CategoryCount{Category: "SALARY", Count: 1}, summary.ByCategory[2])
}

func TestSummarizeLatestPanel(t *testing.T) {
	rows := make([]*domain.GeneralTicket, 0, 7)
	for i := 0; i < 7; i++ {
		rows = append(rows, ticketAt(i, domain.GeneralStatusWaiting, domain.CategoryOther))
	}

	summary := Summarize(domain.GeneralLifecycle, rows, nil, nil, time.UTC)

	require.Len(t, summary.Latest, LatestPanelSize)
	assert.Equal(t, "id-6", summary.Latest[0].ID, "newest first")
	assert.Equal(t, "id-3", summary.Latest[3].ID)
}

func TestSummarizeDateWindow(t *testing.T) {
	rows := []*domain.GeneralTicket{
		ticketAt(0, domain.GeneralStatusWaiting, domain.CategoryOther),
		ticketAt(1, domain.GeneralStatusCompleted, domain.CategoryOther),
		ticketAt(5, domain.GeneralStatusWaiting, domain.CategoryOther),
	}
	from := base.AddDate(0, 0, 1)
	to := base.AddDate(0, 0, 2)

	summary := Summarize(domain.GeneralLifecycle, rows, &from, &to, time.UTC)

	assert.Equal(t, 1, summary.Total)
	require.Len(t, summary.Latest, 1)
	assert.Equal(t, "id-1", summary.Latest[0].ID)
	assert.InDelta(t, 100.0, summary.ByStatus[1].Percent, 0.001)
}

func TestSummarizeInternalVocabulary(t *testing.T) {
	rows := []*domain.InternalTicket{
		{ID: "a", Status: domain.InternalStatusPending, Department: domain.DepartmentIT, CreatedAt: base},
		{ID: "b", Status: domain.InternalStatusFinalized, Department: domain.DepartmentHR, CreatedAt: base.AddDate(0, 0, 1)},
	}

	summary := Summarize(domain.InternalLifecycle, rows, nil, nil, time.UTC)

	require.Len(t, summary.ByStatus, 4)
	assert.Equal(t, domain.InternalStatusPending, summary.ByStatus[0].Status)
	assert.Equal(t, 2, summary.Total)
	assert.Len(t, summary.ByCategory, 2)
}
