package repository

import (
	"context"
	"errors"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// ErrNotFound is returned when no row matches the lookup.
var ErrNotFound = errors.New("record not found")

// Patch column names shared by both ticket collections. Immutable columns
// (number, owner, reason/description, created_at) have no patch constant;
// the repositories refuse any column outside this set.
const (
	FieldStatus      = "status"
	FieldHistory     = "history"
	FieldHandler     = "handler"
	FieldUpdatedAt   = "updated_at"
	FieldCompletedAt = "completed_at"
)

// FieldPatch is a partial, field-level update. Only mutable columns are
// ever part of a patch; rows are never replaced wholesale.
type FieldPatch map[string]any

// TicketStore is the record-store contract the engine depends on, one
// instance per ticket collection.
type TicketStore[T domain.Ticket] interface {
	Insert(ctx context.Context, ticket T) (T, error)
	GetByID(ctx context.Context, id string) (T, error)
	GetByNumber(ctx context.Context, number string) (T, error)
	// ListByOwner returns rows owned by ownerID, or every row when
	// includeAll is set (admin visibility), ordered by creation time
	// descending.
	ListByOwner(ctx context.Context, ownerID string, includeAll bool) ([]T, error)
	UpdateFields(ctx context.Context, id string, patch FieldPatch) (T, error)
}
