package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeDigits(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		maxLen   int
		expected string
	}{
		{"strips punctuation", "123.456.789-01", 11, "12345678901"},
		{"truncates to max", "123456789012345", 11, "12345678901"},
		{"unbounded when zero", "(11) 99999-0000", 0, "11999990000"},
		{"empty input", "", 11, ""},
		{"letters only", "abc", 11, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeDigits(tt.raw, tt.maxLen))
		})
	}
}

func TestGeneralLifecycle(t *testing.T) {
	lc := GeneralLifecycle

	assert.True(t, lc.IsLocked(GeneralStatusCompleted))
	assert.False(t, lc.IsLocked(GeneralStatusDeleted), "deleted rows still accept updates")
	assert.False(t, lc.IsLocked(GeneralStatusWaiting))

	assert.True(t, lc.IsReopenable(GeneralStatusCompleted))
	assert.True(t, lc.IsReopenable(GeneralStatusDeleted))
	assert.False(t, lc.IsReopenable(GeneralStatusWaiting))

	assert.True(t, lc.Knows(GeneralStatusWaiting))
	assert.False(t, lc.Knows(Status("ARCHIVED")))
	assert.Equal(t, GeneralStatusWaiting, lc.ReopenTarget)
	assert.Equal(t, GeneralStatusCompleted, lc.Completion)
}

func TestInternalLifecycle(t *testing.T) {
	lc := InternalLifecycle

	assert.True(t, lc.IsLocked(InternalStatusFinalized))
	assert.True(t, lc.IsLocked(InternalStatusCancelled))
	assert.False(t, lc.IsLocked(InternalStatusInProgress))

	assert.Equal(t, InternalStatusPending, lc.ReopenTarget)
	assert.Empty(t, lc.Completion, "internal requests track no completion timestamp")
	assert.False(t, lc.TracksHandler)
}

func TestGeneralTicketMissingFields(t *testing.T) {
	ticket := &GeneralTicket{
		EmployeeName: " ",
		Reason:       "needs help",
		Channel:      ChannelPhone,
	}
	assert.ElementsMatch(t, []string{"employee_name", "category"}, ticket.MissingFields())

	ticket.EmployeeName = "Ana"
	ticket.Category = CategoryOther
	assert.Empty(t, ticket.MissingFields())
}

func TestGeneralTicketRejectsUnknownEnumValues(t *testing.T) {
	ticket := &GeneralTicket{
		EmployeeName: "Ana",
		Channel:      ContactChannel("FAX"),
		Category:     GeneralCategory("LOTTERY"),
		Reason:       "needs help",
	}
	assert.ElementsMatch(t, []string{"channel", "category"}, ticket.MissingFields())
}

func TestInternalTicketMissingFields(t *testing.T) {
	ticket := &InternalTicket{Description: "x"}
	assert.ElementsMatch(t,
		[]string{"requester_name", "department", "contact_email"},
		ticket.MissingFields())

	ticket.RequesterName = "Carlos"
	ticket.ContactEmail = "carlos@example.com"
	ticket.Department = Department("JANITORIAL")
	assert.Equal(t, []string{"department"}, ticket.MissingFields())

	ticket.Department = DepartmentFinance
	assert.Empty(t, ticket.MissingFields())
}

func TestGeneralTicketPrepareNew(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ticket := &GeneralTicket{
		EmployeeName: "  Ana Souza  ",
		NationalID:   "123.456.789-01",
		Phone:        "(11) 98888-7777",
		Channel:      ChannelWhatsApp,
		Category:     CategorySalary,
		Reason:       " statement ",
	}

	ticket.PrepareNew(Identity{UserID: "u-1", Email: "ana@example.com"}, "ATD-20260310-1234", now)

	assert.Equal(t, "u-1", ticket.OwnerID)
	assert.Equal(t, "ana@example.com", ticket.CreatedBy)
	assert.Equal(t, GeneralStatusWaiting, ticket.Status)
	assert.Equal(t, now, ticket.CreatedAt)
	assert.Equal(t, now, ticket.UpdatedAt)
	require.Nil(t, ticket.CompletedAt)
	assert.Equal(t, "Ana Souza", ticket.EmployeeName)
	assert.Equal(t, "statement", ticket.Reason)
	assert.Equal(t, "12345678901", ticket.NationalID)
	assert.Equal(t, "11988887777", ticket.Phone)
}

func TestSearchTextIsLowercase(t *testing.T) {
	ticket := &GeneralTicket{
		Number:       "ATD-20260310-1234",
		EmployeeName: "Ana SOUZA",
		Reason:       "Vacation Advance",
	}
	text := ticket.SearchText()
	assert.Contains(t, text, "ana souza")
	assert.Contains(t, text, "vacation advance")
	assert.Contains(t, text, "atd-20260310-1234")
}
