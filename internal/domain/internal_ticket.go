package domain

import (
	"strings"
	"time"
)

// InternalTicketStatus values.
const (
	InternalStatusPending    Status = "PENDING"
	InternalStatusInProgress Status = "IN_PROGRESS"
	InternalStatusFinalized  Status = "FINALIZED"
	InternalStatusCancelled  Status = "CANCELLED"
)

// Department enumerates the fixed list of requesting departments.
type Department string

const (
	DepartmentHR          Department = "HR"
	DepartmentFinance     Department = "FINANCE"
	DepartmentLegal       Department = "LEGAL"
	DepartmentIT          Department = "IT"
	DepartmentProcurement Department = "PROCUREMENT"
	DepartmentControlling Department = "CONTROLLING"
	DepartmentPlanning    Department = "PLANNING"
	DepartmentOperations  Department = "OPERATIONS"
)

// Known reports whether the department belongs to the fixed vocabulary.
func (d Department) Known() bool {
	switch d {
	case DepartmentHR, DepartmentFinance, DepartmentLegal, DepartmentIT,
		DepartmentProcurement, DepartmentControlling, DepartmentPlanning, DepartmentOperations:
		return true
	}
	return false
}

// InternalLifecycle is the state machine for inter-department requests.
var InternalLifecycle = Lifecycle{
	Kind:         KindInternal,
	NumberPrefix: "INT",
	Initial:      InternalStatusPending,
	ReopenTarget: InternalStatusPending,
	Locked:       []Status{InternalStatusFinalized, InternalStatusCancelled},
	Reopenable:   []Status{InternalStatusFinalized, InternalStatusCancelled},
	All: []Status{
		InternalStatusPending,
		InternalStatusInProgress,
		InternalStatusFinalized,
		InternalStatusCancelled,
	},
}

// InternalTicket is an inter-department request.
type InternalTicket struct {
	ID            string
	Number        string
	OwnerID       string
	RequesterName string
	Department    Department
	ContactEmail  string
	ContactPhone  string
	Description   string
	Status        Status
	History       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (t *InternalTicket) Lifecycle() Lifecycle       { return InternalLifecycle }
func (t *InternalTicket) GetID() string              { return t.ID }
func (t *InternalTicket) GetNumber() string          { return t.Number }
func (t *InternalTicket) GetOwnerID() string         { return t.OwnerID }
func (t *InternalTicket) GetStatus() Status          { return t.Status }
func (t *InternalTicket) GetHistory() string         { return t.History }
func (t *InternalTicket) GetHandler() string         { return "" }
func (t *InternalTicket) GetCreatedAt() time.Time    { return t.CreatedAt }
func (t *InternalTicket) GetCompletedAt() *time.Time { return nil }
func (t *InternalTicket) CategoryLabel() string      { return string(t.Department) }
func (t *InternalTicket) IsFrontDesk() bool          { return false }

// MissingFields lists the required creation fields that are empty or
// outside their fixed vocabulary.
func (t *InternalTicket) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(t.RequesterName) == "" {
		missing = append(missing, "requester_name")
	}
	if !t.Department.Known() {
		missing = append(missing, "department")
	}
	if strings.TrimSpace(t.ContactEmail) == "" {
		missing = append(missing, "contact_email")
	}
	if strings.TrimSpace(t.Description) == "" {
		missing = append(missing, "description")
	}
	return missing
}

// SearchText flattens the row for the full-text containment filter.
func (t *InternalTicket) SearchText() string {
	parts := []string{
		t.Number,
		t.RequesterName,
		string(t.Department),
		t.ContactEmail,
		t.ContactPhone,
		t.Description,
		string(t.Status),
		t.History,
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// PrepareNew stamps ownership, number, initial status and timestamps.
func (t *InternalTicket) PrepareNew(owner Identity, number string, now time.Time) {
	t.OwnerID = owner.UserID
	t.Number = number
	t.Status = InternalLifecycle.Initial
	t.CreatedAt = now
	t.UpdatedAt = now
	t.RequesterName = strings.TrimSpace(t.RequesterName)
	t.Description = strings.TrimSpace(t.Description)
	t.ContactPhone = SanitizeDigits(t.ContactPhone, 0)
}
