package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/query"
	"github.com/spec-kit/helpdesk-service/internal/report"
)

// CreateGeneralTicketRequest payload.
type CreateGeneralTicketRequest struct {
	EmployeeName string `json:"employee_name"`
	NationalID   string `json:"national_id"`
	Phone        string `json:"phone"`
	Channel      string `json:"channel"`
	Category     string `json:"category"`
	Reason       string `json:"reason"`
	Handler      string `json:"handler"`
	FrontDesk    bool   `json:"front_desk"`
}

// CreateInternalTicketRequest payload.
type CreateInternalTicketRequest struct {
	RequesterName string `json:"requester_name"`
	Department    string `json:"department"`
	ContactEmail  string `json:"contact_email"`
	ContactPhone  string `json:"contact_phone"`
	Description   string `json:"description"`
}

// AppendInteractionRequest payload. Nil pointers leave the field unchanged.
type AppendInteractionRequest struct {
	Text      string  `json:"text"`
	NewStatus *string `json:"new_status"`
	Handler   *string `json:"handler"`
}

// CorrectHistoryRequest payload for the privileged correction path.
type CorrectHistoryRequest struct {
	History string `json:"history"`
	Secret  string `json:"secret"`
}

// GeneralTicketResponse mirrors the stored attendance row.
type GeneralTicketResponse struct {
	ID           string     `json:"id"`
	Number       string     `json:"number"`
	OwnerID      string     `json:"owner_id"`
	CreatedBy    string     `json:"created_by"`
	EmployeeName string     `json:"employee_name"`
	NationalID   string     `json:"national_id,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Channel      string     `json:"channel"`
	Category     string     `json:"category"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	Handler      string     `json:"handler,omitempty"`
	History      string     `json:"history"`
	FrontDesk    bool       `json:"front_desk"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

// InternalTicketResponse mirrors the stored request row.
type InternalTicketResponse struct {
	ID            string    `json:"id"`
	Number        string    `json:"number"`
	OwnerID       string    `json:"owner_id"`
	RequesterName string    `json:"requester_name"`
	Department    string    `json:"department"`
	ContactEmail  string    `json:"contact_email"`
	ContactPhone  string    `json:"contact_phone,omitempty"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	History       string    `json:"history"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Pagination describes one page of a filtered listing.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// SummaryResponse is the dashboard aggregation.
type SummaryResponse struct {
	Total      int                     `json:"total"`
	ByStatus   []report.StatusCount    `json:"by_status"`
	ByCategory []report.CategoryCount  `json:"by_category"`
	Latest     []GeneralTicketResponse `json:"latest"`
}

// FromGeneralTicket maps the domain row.
func FromGeneralTicket(t *domain.GeneralTicket) GeneralTicketResponse {
	return GeneralTicketResponse{
		ID:           t.ID,
		Number:       t.Number,
		OwnerID:      t.OwnerID,
		CreatedBy:    t.CreatedBy,
		EmployeeName: t.EmployeeName,
		NationalID:   t.NationalID,
		Phone:        t.Phone,
		Channel:      string(t.Channel),
		Category:     string(t.Category),
		Reason:       t.Reason,
		Status:       string(t.Status),
		Handler:      t.Handler,
		History:      t.History,
		FrontDesk:    t.FrontDesk,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
		CompletedAt:  t.CompletedAt,
	}
}

// FromInternalTicket maps the domain row.
func FromInternalTicket(t *domain.InternalTicket) InternalTicketResponse {
	return InternalTicketResponse{
		ID:            t.ID,
		Number:        t.Number,
		OwnerID:       t.OwnerID,
		RequesterName: t.RequesterName,
		Department:    string(t.Department),
		ContactEmail:  t.ContactEmail,
		ContactPhone:  t.ContactPhone,
		Description:   t.Description,
		Status:        string(t.Status),
		History:       t.History,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

// PaginationFrom maps a query page.
func PaginationFrom[T domain.Ticket](page query.Page[T]) Pagination {
	return Pagination{
		Page:       page.Number,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}

// FromSummary maps the dashboard aggregation.
func FromSummary(s report.Summary[*domain.GeneralTicket]) SummaryResponse {
	latest := make([]GeneralTicketResponse, 0, len(s.Latest))
	for _, row := range s.Latest {
		latest = append(latest, FromGeneralTicket(row))
	}
	return SummaryResponse{
		Total:      s.Total,
		ByStatus:   s.ByStatus,
		ByCategory: s.ByCategory,
		Latest:     latest,
	}
}
