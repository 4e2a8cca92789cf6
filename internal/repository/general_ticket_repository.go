package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

const generalTicketColumns = `id, number, owner_id, created_by, employee_name, national_id, phone,
       channel, category, reason, status, handler, history, front_desk,
       created_at, updated_at, completed_at`

var generalMutableColumns = map[string]struct{}{
	FieldStatus:      {},
	FieldHistory:     {},
	FieldHandler:     {},
	FieldUpdatedAt:   {},
	FieldCompletedAt: {},
}

type generalTicketRepository struct {
	pool *pgxpool.Pool
}

// NewGeneralTicketRepository returns a Postgres-backed store for general
// attendances.
func NewGeneralTicketRepository(pool *pgxpool.Pool) TicketStore[*domain.GeneralTicket] {
	return &generalTicketRepository{pool: pool}
}

func (r *generalTicketRepository) Insert(ctx context.Context, ticket *domain.GeneralTicket) (*domain.GeneralTicket, error) {
	const query = `
        INSERT INTO general_tickets (number, owner_id, created_by, employee_name, national_id, phone,
            channel, category, reason, status, handler, history, front_desk, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id`
	if err := r.pool.QueryRow(ctx, query,
		ticket.Number,
		ticket.OwnerID,
		ticket.CreatedBy,
		ticket.EmployeeName,
		ticket.NationalID,
		ticket.Phone,
		ticket.Channel,
		ticket.Category,
		ticket.Reason,
		ticket.Status,
		ticket.Handler,
		ticket.History,
		ticket.FrontDesk,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	).Scan(&ticket.ID); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *generalTicketRepository) GetByID(ctx context.Context, id string) (*domain.GeneralTicket, error) {
	query := fmt.Sprintf(`SELECT %s FROM general_tickets WHERE id=$1`, generalTicketColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *generalTicketRepository) GetByNumber(ctx context.Context, number string) (*domain.GeneralTicket, error) {
	query := fmt.Sprintf(`SELECT %s FROM general_tickets WHERE number=$1`, generalTicketColumns)
	return r.fetchSingle(ctx, query, number)
}

func (r *generalTicketRepository) ListByOwner(ctx context.Context, ownerID string, includeAll bool) ([]*domain.GeneralTicket, error) {
	query := fmt.Sprintf(`SELECT %s FROM general_tickets`, generalTicketColumns)
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

	var result []*domain.GeneralTicket
	for rows.Next() {
		ticket, err := scanGeneralTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func (r *generalTicketRepository) UpdateFields(ctx context.Context, id string, patch FieldPatch) (*domain.GeneralTicket, error) {
	assignments, args, err := buildPatch(patch, generalMutableColumns)
	if err != nil {
		return nil, err
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE general_tickets SET %s WHERE id=$%d RETURNING %s`,
		assignments, len(args), generalTicketColumns)
	return r.fetchSingle(ctx, query, args...)
}

func (r *generalTicketRepository) fetchSingle(ctx context.Context, query string, args ...any) (*domain.GeneralTicket, error) {
	ticket, err := scanGeneralTicket(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ticket, nil
}

func scanGeneralTicket(row pgx.Row) (*domain.GeneralTicket, error) {
	var ticket domain.GeneralTicket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Number,
		&ticket.OwnerID,
		&ticket.CreatedBy,
		&ticket.EmployeeName,
		&ticket.NationalID,
		&ticket.Phone,
		&ticket.Channel,
		&ticket.Category,
		&ticket.Reason,
		&ticket.Status,
		&ticket.Handler,
		&ticket.History,
		&ticket.FrontDesk,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.CompletedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// buildPatch renders a FieldPatch into a SET clause, refusing columns
// outside the mutable whitelist so immutable fields can never be rewritten.
func buildPatch(patch FieldPatch, mutable map[string]struct{}) (string, []any, error) {
	if len(patch) == 0 {
		return "", nil, fmt.Errorf("empty field patch")
	}
	assignments := make([]string, 0, len(patch))
	args := make([]any, 0, len(patch))
	for _, column := range orderedPatchColumns(patch) {
		if _, ok := mutable[column]; !ok {
			return "", nil, fmt.Errorf("column %q is not updatable", column)
		}
		args = append(args, patch[column])
		assignments = append(assignments, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	return strings.Join(assignments, ", "), args, nil
}

func orderedPatchColumns(patch FieldPatch) []string {
	columns := make([]string, 0, len(patch))
	for column := range patch {
		columns = append(columns, column)
	}
	// deterministic statement text keeps prepared-statement caching effective
	sort.Strings(columns)
	return columns
}
