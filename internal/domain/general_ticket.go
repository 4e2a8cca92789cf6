package domain

import (
	"strings"
	"time"
)

// GeneralTicketStatus values.
const (
	GeneralStatusWaiting   Status = "WAITING"
	GeneralStatusCompleted Status = "COMPLETED"
	GeneralStatusDeleted   Status = "DELETED"
)

// ContactChannel enumerates how the employee reached the desk.
type ContactChannel string

const (
	ChannelWhatsApp ContactChannel = "WHATSAPP"
	ChannelPhone    ContactChannel = "PHONE"
	ChannelEmail    ContactChannel = "EMAIL"
	ChannelInPerson ContactChannel = "IN_PERSON"
)

// GeneralCategory enumerates HR subjects for general attendances.
type GeneralCategory string

const (
	CategorySalary    GeneralCategory = "SALARY"
	CategoryBenefits  GeneralCategory = "BENEFITS"
	CategoryVacation  GeneralCategory = "VACATION"
	CategoryTimeClock GeneralCategory = "TIME_CLOCK"
	CategoryOther     GeneralCategory = "OTHER"
)

// Known reports whether the channel belongs to the fixed vocabulary.
func (c ContactChannel) Known() bool {
	switch c {
	case ChannelWhatsApp, ChannelPhone, ChannelEmail, ChannelInPerson:
		return true
	}
	return false
}

// Known reports whether the category belongs to the fixed vocabulary.
func (c GeneralCategory) Known() bool {
	switch c {
	case CategorySalary, CategoryBenefits, CategoryVacation, CategoryTimeClock, CategoryOther:
		return true
	}
	return false
}

// NationalIDMaxDigits caps the optional national ID field.
const NationalIDMaxDigits = 11

// GeneralLifecycle is the state machine for general attendances.
// Only COMPLETED locks the row; DELETED is terminal for reporting purposes
// but still accepts updates, matching the desk workflow this replaces.
var GeneralLifecycle = Lifecycle{
	Kind:          KindGeneral,
	NumberPrefix:  "ATD",
	Initial:       GeneralStatusWaiting,
	ReopenTarget:  GeneralStatusWaiting,
	Completion:    GeneralStatusCompleted,
	Locked:        []Status{GeneralStatusCompleted},
	Reopenable:    []Status{GeneralStatusCompleted, GeneralStatusDeleted},
	All:           []Status{GeneralStatusWaiting, GeneralStatusCompleted, GeneralStatusDeleted},
	TracksHandler: true,
}

// GeneralTicket is an HR support attendance record.
// Number, OwnerID, Reason and CreatedAt are immutable after creation;
// History only grows except through the privileged correction path.
type GeneralTicket struct {
	ID           string
	Number       string
	OwnerID      string
	CreatedBy    string
	EmployeeName string
	NationalID   string
	Phone        string
	Channel      ContactChannel
	Category     GeneralCategory
	Reason       string
	Status       Status
	Handler      string
	History      string
	FrontDesk    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
	CompletedAt  *time.Time
}

func (t *GeneralTicket) Lifecycle() Lifecycle       { return GeneralLifecycle }
func (t *GeneralTicket) GetID() string              { return t.ID }
func (t *GeneralTicket) GetNumber() string          { return t.Number }
func (t *GeneralTicket) GetOwnerID() string         { return t.OwnerID }
func (t *GeneralTicket) GetStatus() Status          { return t.Status }
func (t *GeneralTicket) GetHistory() string         { return t.History }
func (t *GeneralTicket) GetHandler() string         { return t.Handler }
func (t *GeneralTicket) GetCreatedAt() time.Time    { return t.CreatedAt }
func (t *GeneralTicket) GetCompletedAt() *time.Time { return t.CompletedAt }
func (t *GeneralTicket) CategoryLabel() string      { return string(t.Category) }
func (t *GeneralTicket) IsFrontDesk() bool          { return t.FrontDesk }

// MissingFields lists the required creation fields that are empty or
// outside their fixed vocabulary.
func (t *GeneralTicket) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(t.EmployeeName) == "" {
		missing = append(missing, "employee_name")
	}
	if !t.Channel.Known() {
		missing = append(missing, "channel")
	}
	if !t.Category.Known() {
		missing = append(missing, "category")
	}
	if strings.TrimSpace(t.Reason) == "" {
		missing = append(missing, "reason")
	}
	return missing
}

// SearchText flattens the row for the full-text containment filter.
func (t *GeneralTicket) SearchText() string {
	parts := []string{
		t.Number,
		t.CreatedBy,
		t.EmployeeName,
		t.NationalID,
		t.Phone,
		string(t.Channel),
		string(t.Category),
		t.Reason,
		string(t.Status),
		t.Handler,
		t.History,
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// PrepareNew stamps ownership, number, initial status and timestamps, and
// normalizes the digit-only fields.
func (t *GeneralTicket) PrepareNew(owner Identity, number string, now time.Time) {
	t.OwnerID = owner.UserID
	t.CreatedBy = owner.Email
	t.Number = number
	t.Status = GeneralLifecycle.Initial
	t.CreatedAt = now
	t.UpdatedAt = now
	t.CompletedAt = nil
	t.EmployeeName = strings.TrimSpace(t.EmployeeName)
	t.Reason = strings.TrimSpace(t.Reason)
	t.NationalID = SanitizeDigits(t.NationalID, NationalIDMaxDigits)
	t.Phone = SanitizeDigits(t.Phone, 0)
}
