package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util"
)

// numberAttempts bounds the collision retry loop for ticket numbers.
const numberAttempts = 5

// EngineConfig carries the process-wide engine settings, passed explicitly
// at construction so the engine stays testable without environment coupling.
type EngineConfig struct {
	// UnlockSecret gates the privileged history-correction path.
	UnlockSecret string
	// Location is the display timezone for history timestamps and the
	// ticket-number date. Defaults to UTC.
	Location *time.Location
	// Now overrides the clock in tests. Defaults to time.Now in UTC.
	Now func() time.Time
}

// InteractionInput describes one AppendInteraction call. Nil pointers mean
// "leave unchanged".
type InteractionInput struct {
	Text      string
	NewStatus *domain.Status
	Handler   *string
}

// TicketEngine owns the lifecycle state machine, the append-only history
// protocol, the reopen policy and the privileged correction path for one
// ticket kind. Both kinds run the same engine over their own store.
type TicketEngine[T domain.Ticket] struct {
	store      repository.TicketStore[T]
	cfg        EngineConfig
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewTicketEngine constructs the engine for one ticket collection.
func NewTicketEngine[T domain.Ticket](store repository.TicketStore[T], cfg EngineConfig, dispatcher events.Dispatcher, logger *zap.Logger) *TicketEngine[T] {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	return &TicketEngine[T]{store: store, cfg: cfg, dispatcher: dispatcher, logger: logger}
}

// Create validates the required fields, assigns a collision-checked ticket
// number, stamps ownership and timestamps (creation equals last-update) and
// persists the row. No partial write happens on validation failure.
func (e *TicketEngine[T]) Create(ctx context.Context, actor domain.Identity, ticket T) (T, error) {
	var zero T
	if missing := ticket.MissingFields(); len(missing) > 0 {
		return zero, apperrors.NewValidationError("missing required fields", map[string]any{
			"fields": missing,
		})
	}

	now := e.cfg.Now()
	number, err := e.uniqueNumber(ctx, ticket.Lifecycle().NumberPrefix, now)
	if err != nil {
		return zero, err
	}

	ticket.PrepareNew(actor, number, now)
	stored, err := e.store.Insert(ctx, ticket)
	if err != nil {
		return zero, apperrors.NewStoreError(err)
	}

	e.publish(ctx, events.Event{
		Type:       events.EventTicketCreated,
		Kind:       stored.Lifecycle().Kind,
		TicketID:   stored.GetID(),
		Number:     stored.GetNumber(),
		ActorEmail: actor.Email,
		Payload: events.TicketCreatedPayload{
			Category: stored.CategoryLabel(),
			Status:   stored.GetStatus(),
		},
	})
	return stored, nil
}

// AppendInteraction applies one ordinary update: an optional attributed
// history block, an optional status transition with its annotation, and an
// optional handler change. It refuses locked tickets. When nothing would
// change it reports changed=false without touching the row; that is a
// distinct non-error signal, not a failure.
func (e *TicketEngine[T]) AppendInteraction(ctx context.Context, actor domain.Identity, id string, input InteractionInput) (T, bool, error) {
	var zero T
	ticket, err := e.load(ctx, id)
	if err != nil {
		return zero, false, err
	}

	lc := ticket.Lifecycle()
	current := ticket.GetStatus()
	if lc.IsLocked(current) {
		return zero, false, apperrors.NewInvalidTransition("ticket is locked; reopen it before updating")
	}
	if input.NewStatus != nil && !lc.Knows(*input.NewStatus) {
		return zero, false, apperrors.NewValidationError("unknown status", map[string]any{
			"status": string(*input.NewStatus),
		})
	}

	text := strings.TrimSpace(input.Text)
	statusChanged := input.NewStatus != nil && *input.NewStatus != current
	handlerChanged := input.Handler != nil && lc.TracksHandler && *input.Handler != ticket.GetHandler()
	if text == "" && !statusChanged && !handlerChanged {
		return ticket, false, nil
	}

	now := e.cfg.Now()
	displayed := now.In(e.cfg.Location)

	var appended strings.Builder
	if text != "" {
		appended.WriteString(interactionBlock(actor.Email, text, displayed))
	}
	if statusChanged {
		appended.WriteString(statusChangeBlock(current, *input.NewStatus, actor.Email, displayed))
	}

	patch := repository.FieldPatch{repository.FieldUpdatedAt: now}
	if appended.Len() > 0 {
		patch[repository.FieldHistory] = ticket.GetHistory() + appended.String()
	}
	if statusChanged {
		patch[repository.FieldStatus] = *input.NewStatus
		if lc.Completion != "" && *input.NewStatus == lc.Completion && ticket.GetCompletedAt() == nil {
			patch[repository.FieldCompletedAt] = now
		}
	}
	if handlerChanged {
		patch[repository.FieldHandler] = *input.Handler
	}

	updated, err := e.store.UpdateFields(ctx, id, patch)
	if err != nil {
		return zero, false, apperrors.NewStoreError(err)
	}

	payload := events.InteractionAppendedPayload{
		OldStatus:   current,
		NewStatus:   updated.GetStatus(),
		TextPreview: textPreview(text, 120),
	}
	if handlerChanged {
		payload.Handler = *input.Handler
	}
	e.publish(ctx, events.Event{
		Type:       events.EventInteractionAppended,
		Kind:       lc.Kind,
		TicketID:   updated.GetID(),
		Number:     updated.GetNumber(),
		ActorEmail: actor.Email,
		Payload:    payload,
	})
	return updated, true, nil
}

// Reopen moves a terminal ticket back to its reopen target and appends an
// attributed annotation. Calling it on a non-terminal ticket is an
// InvalidTransition and mutates nothing. The completion timestamp keeps its
// original value; only last-update advances.
func (e *TicketEngine[T]) Reopen(ctx context.Context, actor domain.Identity, id string) (T, error) {
	var zero T
	ticket, err := e.load(ctx, id)
	if err != nil {
		return zero, err
	}

	lc := ticket.Lifecycle()
	current := ticket.GetStatus()
	if !lc.IsReopenable(current) {
		return zero, apperrors.NewInvalidTransition("only closed tickets can be reopened")
	}

	now := e.cfg.Now()
	patch := repository.FieldPatch{
		repository.FieldStatus:    lc.ReopenTarget,
		repository.FieldHistory:   ticket.GetHistory() + reopenBlock(actor.Email, now.In(e.cfg.Location)),
		repository.FieldUpdatedAt: now,
	}
	updated, err := e.store.UpdateFields(ctx, id, patch)
	if err != nil {
		return zero, apperrors.NewStoreError(err)
	}

	e.publish(ctx, events.Event{
		Type:       events.EventTicketReopened,
		Kind:       lc.Kind,
		TicketID:   updated.GetID(),
		Number:     updated.GetNumber(),
		ActorEmail: actor.Email,
		Payload: events.TicketReopenedPayload{
			OldStatus: current,
			NewStatus: updated.GetStatus(),
		},
	})
	return updated, nil
}

// CorrectHistory is the privileged escape hatch: on an exact unlock-secret
// match it replaces the history text verbatim, bypassing both the
// append-only discipline and the lock check. On mismatch the ticket is left
// untouched and the caller learns nothing beyond "unauthorized".
func (e *TicketEngine[T]) CorrectHistory(ctx context.Context, actor domain.Identity, id, replacement, suppliedSecret string) (T, error) {
	var zero T
	if !e.secretMatches(suppliedSecret) {
		return zero, apperrors.NewUnauthorized("unauthorized")
	}

	ticket, err := e.load(ctx, id)
	if err != nil {
		return zero, err
	}

	now := e.cfg.Now()
	patch := repository.FieldPatch{
		repository.FieldHistory:   replacement,
		repository.FieldUpdatedAt: now,
	}
	updated, err := e.store.UpdateFields(ctx, id, patch)
	if err != nil {
		return zero, apperrors.NewStoreError(err)
	}

	e.publish(ctx, events.Event{
		Type:       events.EventHistoryCorrected,
		Kind:       ticket.Lifecycle().Kind,
		TicketID:   updated.GetID(),
		Number:     updated.GetNumber(),
		ActorEmail: actor.Email,
		Payload: events.HistoryCorrectedPayload{
			HistoryLength: len(replacement),
		},
	})
	return updated, nil
}

// ListVisible returns the collection visible to the actor: every row for
// admins, only owned rows otherwise. Ordering is creation time descending,
// as stored.
func (e *TicketEngine[T]) ListVisible(ctx context.Context, actor domain.Identity) ([]T, error) {
	rows, err := e.store.ListByOwner(ctx, actor.UserID, actor.Admin)
	if err != nil {
		return nil, apperrors.NewStoreError(err)
	}
	return rows, nil
}

// GetVisible fetches one ticket, enforcing owner/admin visibility.
func (e *TicketEngine[T]) GetVisible(ctx context.Context, actor domain.Identity, id string) (T, error) {
	var zero T
	ticket, err := e.load(ctx, id)
	if err != nil {
		return zero, err
	}
	if !actor.Admin && ticket.GetOwnerID() != actor.UserID {
		return zero, apperrors.NewForbidden("access denied")
	}
	return ticket, nil
}

func (e *TicketEngine[T]) load(ctx context.Context, id string) (T, error) {
	var zero T
	ticket, err := e.store.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return zero, apperrors.NewNotFound("ticket", map[string]any{"id": id})
		}
		return zero, apperrors.NewStoreError(err)
	}
	return ticket, nil
}

func (e *TicketEngine[T]) uniqueNumber(ctx context.Context, prefix string, now time.Time) (string, error) {
	localDate := now.In(e.cfg.Location)
	for attempt := 0; attempt < numberAttempts; attempt++ {
		number := GenerateTicketNumber(prefix, localDate)
		_, err := e.store.GetByNumber(ctx, number)
		if errors.Is(err, repository.ErrNotFound) {
			return number, nil
		}
		if err != nil {
			return "", apperrors.NewStoreError(err)
		}
		e.logger.Warn("ticket number collision, retrying", zap.String("number", number))
	}
	return "", apperrors.NewConflict("could not allocate a unique ticket number", nil)
}

func (e *TicketEngine[T]) secretMatches(supplied string) bool {
	if e.cfg.UnlockSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(e.cfg.UnlockSecret)) == 1
}

func (e *TicketEngine[T]) publish(ctx context.Context, event events.Event) {
	if e.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = e.cfg.Now()
	}
	_ = e.dispatcher.Publish(ctx, event)
}
