package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// memoryStore is an in-memory TicketStore used to exercise the engine
// without Postgres. UpdateFields honors the same mutable-column whitelist
// as the real repository.
type memoryStore struct {
	mu          sync.Mutex
	rows        map[string]*domain.GeneralTicket
	seq         int
	updateCalls int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{rows: map[string]*domain.GeneralTicket{}}
}

func cloneTicket(t *domain.GeneralTicket) *domain.GeneralTicket {
	cp := *t
	if t.CompletedAt != nil {
		ts := *t.CompletedAt
		cp.CompletedAt = &ts
	}
	return &cp
}

func (s *memoryStore) Insert(_ context.Context, ticket *domain.GeneralTicket) (*domain.GeneralTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	ticket.ID = fmt.Sprintf("id-%d", s.seq)
	s.rows[ticket.ID] = cloneTicket(ticket)
	return cloneTicket(ticket), nil
}

func (s *memoryStore) GetByID(_ context.Context, id string) (*domain.GeneralTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneTicket(row), nil
}

func (s *memoryStore) GetByNumber(_ context.Context, number string) (*domain.GeneralTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.Number == number {
			return cloneTicket(row), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memoryStore) ListByOwner(_ context.Context, ownerID string, includeAll bool) ([]*domain.GeneralTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.GeneralTicket
	for _, row := range s.rows {
		if includeAll || row.OwnerID == ownerID {
			out = append(out, cloneTicket(row))
		}
	}
	return out, nil
}

func (s *memoryStore) UpdateFields(_ context.Context, id string, patch repository.FieldPatch) (*domain.GeneralTicket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.updateCalls++
	row, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for column, value := range patch {
		switch column {
		case repository.FieldStatus:
			row.Status = value.(domain.Status)
		case repository.FieldHistory:
			row.History = value.(string)
		case repository.FieldHandler:
			row.Handler = value.(string)
		case repository.FieldUpdatedAt:
			row.UpdatedAt = value.(time.Time)
		case repository.FieldCompletedAt:
			ts := value.(time.Time)
			row.CompletedAt = &ts
		default:
			return nil, fmt.Errorf("column %q is not updatable", column)
		}
	}
	return cloneTicket(row), nil
}

var (
	fixedNow = time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)
	admin    = domain.Identity{UserID: "u-admin", Email: "maria@example.com", Admin: true}
	owner    = domain.Identity{UserID: "u-1", Email: "ana@example.com"}
	stranger = domain.Identity{UserID: "u-2", Email: "joao@example.com"}
)

func newTestEngine(store *memoryStore) *TicketEngine[*domain.GeneralTicket] {
	return NewTicketEngine[*domain.GeneralTicket](store, EngineConfig{
		UnlockSecret: "letmein",
		Location:     time.UTC,
		Now:          func() time.Time { return fixedNow },
	}, nil, zap.NewNop())
}

func validTicket() *domain.GeneralTicket {
	return &domain.GeneralTicket{
		EmployeeName: "Ana Souza",
		NationalID:   "123.456.789-01",
		Phone:        "(11) 99999-0000",
		Channel:      domain.ChannelWhatsApp,
		Category:     domain.CategorySalary,
		Reason:       "Salary statement request",
	}
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	require.Error(t, err)
	return apperrors.ToDomainError(err).Code
}

func TestCreateStampsOwnershipAndTimestamps(t *testing.T) {
	store := newMemoryStore()
	engine := newTestEngine(store)

	created, err := engine.Create(context.Background(), owner, validTicket())
	require.NoError(t, err)

	assert.Equal(t, domain.GeneralStatusWaiting, created.Status)
	assert.Equal(t, owner.UserID, created.OwnerID)
	assert.Equal(t, owner.Email, created.CreatedBy)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Nil(t, created.CompletedAt)
	assert.Equal(t, "12345678901", created.NationalID)
	assert.Regexp(t, regexp.MustCompile(`^ATD-20260310-\d{4}$`), created.Number)
}

func TestCreateRejectsMissingFields(t *testing.T) {
	store := newMemoryStore()
	engine := newTestEngine(store)

	ticket := validTicket()
	ticket.EmployeeName = "   "
	ticket.Category = ""

	_, err := engine.Create(context.Background(), owner, ticket)
	domainErr := apperrors.ToDomainError(err)
	require.NotNil(t, domainErr)
	assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
	assert.ElementsMatch(t, []string{"employee_name", "category"}, domainErr.Details["fields"])
	assert.Empty(t, store.rows, "no partial write on validation failure")
}

func TestAppendInteractionGrowsHistory(t *testing.T) {
	store := newMemoryStore()
	engine := newTestEngine(store)
	created, err := engine.Create(context.Background(), owner, validTicket())
	require.NoError(t, err)

	updated, changed, err := engine.AppendInteraction(context.Background(), admin, created.ID, InteractionInput{
		Text: "Sent the statement by email.",
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, strings.HasPrefix(updated.History, created.History), "history is append-only")
	assert.Contains(t, updated.History, "**[10/03/2026 14:30] maria@example.com wrote:**")
	assert.Contains(t, updated.History, "Sent the statement by email.")
	assert.Equal(t, domain.GeneralStatusWaiting, updated.Status)
}

func TestAppendInteractionStatusChange(t *testing.T) {
	store := newMemoryStore()
	engine := newTestEngine(store)
	created, err := engine.Create(context.Background(), owner, validTicket())
	require.NoError(t, err)

	completed := domain.GeneralStatusCompleted
	updated, changed, err := engine.AppendInteraction(context.Background(), admin, created.ID, InteractionInput{
		Text:      "Resolved.",
		NewStatus: &completed,
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, domain.GeneralStatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, fixedNow, *updated.CompletedAt)
	assert.Contains(t, updated.History, "*Status changed from WAITING to COMPLETED by maria@example.com at 10/03/2026 14:30*")
}

func TestAppendInteractionUnknownStatus(t *testing.T) {
	store := newMemoryStore()
	engine := newTestEngine(store)
	created, err := engine.Create(context.Background(), owner, validTicket())
	require.NoError(t, err)

	bogus := domain.Status("ARCHIVED")
	_, _, err = engine.AppendInteraction(context.Background(), admin, created.ID, InteractionInput{NewStatus: &bogus})
	assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
}

func TestAppendInteractionRefusesLockedTicket(t *testing.T) {
	store := newMemoryStore()
	engine := newTestEngine(store)
	created, err := engine.Create(context.Background(), owner, validTicket())
	require.NoError(t, err)

	completed := domain.GeneralStatusCompleted
	_, _, err = engine.AppendInteraction(context.Background(), admin, created.ID, InteractionInput{NewStatus: &completed})
	require.NoError(t, err)
	before, err := store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	calls := store.updateCalls

	_, _, err = engine.AppendInteraction(context.Background(), admin, created.ID, InteractionInput{Text: "one more thing"})
	assert.Equal(t, "INVALID_TRANSITION", errCode(t, err))

	after, err := store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after, "locked ticket must not be mutated")
	assert.Equal(t, calls, store.updateCalls)
}

func TestAppendInteractionNothingChanged(t *testing.T) {
	store := newMemoryStore()
	engine := newTestEngine(store)
	created, err := engine.Create(context.Background(), owner, validTicket())
	require.NoError(t, err)
	calls := store.updateCalls

	same, changed, err := engine.AppendInteraction(context.Background(), admin, created.ID, InteractionInput{Text: "   "})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, created.History, same.History)
	assert.Equal(t, calls, store.updateCalls, "no store write on a no-op")
}

func TestReopenRestoresWaiting(t *testing.T) {
	store := newMemoryStore()
	engine := newTestEngine(store)
	created, err := engine.Create(context.Background(), owner, validTicket())
	require.NoError(t, err)

	completed := domain.GeneralStatusCompleted
	closed, _, err := engine.AppendInteraction(context.Background(), admin, created.ID, InteractionInput{NewStatus: &completed})
	require.NoError(t, err)
	require.NotNil(t, closed.CompletedAt)

	reopened, err := engine.Reopen(context.Background(), admin, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.GeneralStatusWaiting, reopened.Status)
	assert.Contains(t, reopened.History, "--- REOPENED by maria@example.com at 10/03/2026 14:30 ---")
	require.NotNil(t, reopened.CompletedAt)
	assert.Equal(t, *closed.CompletedAt, *reopened.CompletedAt, "completion timestamp survives reopen")
}

func TestReopenRejectsOpenTicket(t *testing.T) {
	store := newMemoryStore()
	engine := newTestEngine(store)
	created, err := engine.Create(context.Background(), owner, validTicket())
	require.NoError(t, err)
	calls := store.updateCalls

	_, err = engine.Reopen(context.Background(), admin, created.ID)
	assert.Equal(t, "INVALID_TRANSITION", errCode(t, err))
	assert.Equal(t, calls, store.updateCalls)
}

func TestCorrectHistorySecretGate(t *testing.T) {
	store := newMemoryStore()
	engine := newTestEngine(store)
	created, err := engine.Create(context.Background(), owner, validTicket())
	require.NoError(t, err)
	_, _, err = engine.AppendInteraction(context.Background(), admin, created.ID, InteractionInput{Text: "typo in this note"})
	require.NoError(t, err)

	before, err := store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)

	_, err = engine.CorrectHistory(context.Background(), admin, created.ID, "rewritten", "wrong-secret")
	assert.Equal(t, "UNAUTHORIZED", errCode(t, err))
	after, err := store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after, "secret mismatch must leave the row untouched")

	fixed, err := engine.CorrectHistory(context.Background(), admin, created.ID, "rewritten", "letmein")
	require.NoError(t, err)
	assert.Equal(t, "rewritten", fixed.History, "replacement is stored verbatim")
}

func TestCorrectHistoryBypassesLock(t *testing.T) {
	store := newMemoryStore()
	engine := newTestEngine(store)
	created, err := engine.Create(context.Background(), owner, validTicket())
	require.NoError(t, err)

	completed := domain.GeneralStatusCompleted
	_, _, err = engine.AppendInteraction(context.Background(), admin, created.ID, InteractionInput{NewStatus: &completed})
	require.NoError(t, err)

	fixed, err := engine.CorrectHistory(context.Background(), admin, created.ID, "audited rewrite", "letmein")
	require.NoError(t, err)
	assert.Equal(t, "audited rewrite", fixed.History)
	assert.Equal(t, domain.GeneralStatusCompleted, fixed.Status, "correction does not reopen the ticket")
}

func TestCorrectHistoryDisabledWithoutSecret(t *testing.T) {
	store := newMemoryStore()
	engine := NewTicketEngine[*domain.GeneralTicket](store, EngineConfig{
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	}, nil, zap.NewNop())
	created, err := engine.Create(context.Background(), owner, validTicket())
	require.NoError(t, err)

	_, err = engine.CorrectHistory(context.Background(), admin, created.ID, "x", "")
	assert.Equal(t, "UNAUTHORIZED", errCode(t, err), "empty configured secret never matches")
}

func TestVisibilityScoping(t *testing.T) {
	store := newMemoryStore()
	engine := newTestEngine(store)

	mine, err := engine.Create(context.Background(), owner, validTicket())
	require.NoError(t, err)
	other := validTicket()
	other.EmployeeName = "Carlos Lima"
	theirs, err := engine.Create(context.Background(), stranger, other)
	require.NoError(t, err)

	visible, err := engine.ListVisible(context.Background(), owner)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, mine.ID, visible[0].ID)

	all, err := engine.ListVisible(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = engine.GetVisible(context.Background(), owner, theirs.ID)
	assert.Equal(t, "FORBIDDEN", errCode(t, err))

	got, err := engine.GetVisible(context.Background(), admin, theirs.ID)
	require.NoError(t, err)
	assert.Equal(t, theirs.ID, got.ID)
}

func TestGetVisibleNotFound(t *testing.T) {
	engine := newTestEngine(newMemoryStore())
	_, err := engine.GetVisible(context.Background(), admin, "missing")
	assert.Equal(t, "NOT_FOUND", errCode(t, err))
}
