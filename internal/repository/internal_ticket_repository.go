package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

const internalTicketColumns = `id, number, owner_id, requester_name, department, contact_email,
       contact_phone, description, status, history, created_at, updated_at`

// Internal tickets have no handler or completion timestamp.
var internalMutableColumns = map[string]struct{}{
	FieldStatus:    {},
	FieldHistory:   {},
	FieldUpdatedAt: {},
}

type internalTicketRepository struct {
	pool *pgxpool.Pool
}

// NewInternalTicketRepository returns a Postgres-backed store for
// inter-department requests.
func NewInternalTicketRepository(pool *pgxpool.Pool) TicketStore[*domain.InternalTicket] {
	return &internalTicketRepository{pool: pool}
}

func (r *internalTicketRepository) Insert(ctx context.Context, ticket *domain.InternalTicket) (*domain.InternalTicket, error) {
	const query = `
        INSERT INTO internal_tickets (number, owner_id, requester_name, department, contact_email,
            contact_phone, description, status, history, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id`
	if err := r.pool.QueryRow(ctx, query,
		ticket.Number,
		ticket.OwnerID,
		ticket.RequesterName,
		ticket.Department,
		ticket.ContactEmail,
		ticket.ContactPhone,
		ticket.Description,
		ticket.Status,
		ticket.History,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	).Scan(&ticket.ID); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *internalTicketRepository) GetByID(ctx context.Context, id string) (*domain.InternalTicket, error) {
	query := fmt.Sprintf(`SELECT %s FROM internal_tickets WHERE id=$1`, internalTicketColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *internalTicketRepository) GetByNumber(ctx context.Context, number string) (*domain.InternalTicket, error) {
	query := fmt.Sprintf(`SELECT %s FROM internal_tickets WHERE number=$1`, internalTicketColumns)
	return r.fetchSingle(ctx, query, number)
}

func (r *internalTicketRepository) ListByOwner(ctx context.Context, ownerID string, includeAll bool) ([]*domain.InternalTicket, error) {
	query := fmt.Sprintf(`SELECT %s FROM internal_tickets`, internalTicketColumns)
	args := []any{}
	if !includeAll {
		args = append(args, ownerID)
		query += ` WHERE owner_id=$1`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.InternalTicket
	for rows.Next() {
		ticket, err := scanInternalTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func (r *internalTicketRepository) UpdateFields(ctx context.Context, id string, patch FieldPatch) (*domain.InternalTicket, error) {
	assignments, args, err := buildPatch(patch, internalMutableColumns)
	if err != nil {
		return nil, err
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE internal_tickets SET %s WHERE id=$%d RETURNING %s`,
		assignments, len(args), internalTicketColumns)
	return r.fetchSingle(ctx, query, args...)
}

func (r *internalTicketRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.InternalTicket, error) {
	ticket, err := scanInternalTicket(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func scanInternalTicket(row pgx.Row) (*domain.InternalTicket, error) {
	var ticket domain.InternalTicket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Number,
		&ticket.OwnerID,
		&ticket.RequesterName,
		&ticket.Department,
		&ticket.ContactEmail,
		&ticket.ContactPhone,
		&ticket.Description,
		&ticket.Status,
		&ticket.History,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}
