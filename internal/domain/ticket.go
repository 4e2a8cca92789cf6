package domain

import (
	"strings"
	"time"
)

// Status is a lifecycle state. The two ticket kinds carry distinct status
// vocabularies; a Status value is only meaningful against its Lifecycle.
type Status string

// Kind discriminates the two ticket collections.
type Kind string

const (
	KindGeneral  Kind = "GENERAL"
	KindInternal Kind = "INTERNAL"
)

// Lifecycle describes the state machine of one ticket kind: its status
// vocabulary, which statuses refuse ordinary updates, where Reopen lands,
// and which status stamps the completion timestamp.
type Lifecycle struct {
	Kind         Kind
	NumberPrefix string
	Initial      Status
	ReopenTarget Status
	// Completion is the status whose first entry stamps CompletedAt.
	// Empty when the kind does not track completion.
	Completion Status
	// Locked statuses refuse AppendInteraction until Reopen is called.
	Locked []Status
	// Reopenable statuses are the only valid sources for Reopen.
	Reopenable []Status
	All        []Status
	// TracksHandler reports whether the kind carries a mutable handler field.
	TracksHandler bool
}

// IsLocked reports whether ordinary updates are refused in the given status.
func (l Lifecycle) IsLocked(s Status) bool {
	return containsStatus(l.Locked, s)
}

// IsReopenable reports whether Reopen may be called in the given status.
func (l Lifecycle) IsReopenable(s Status) bool {
	return containsStatus(l.Reopenable, s)
}

// Knows reports whether the status belongs to this kind's vocabulary.
func (l Lifecycle) Knows(s Status) bool {
	return containsStatus(l.All, s)
}

func containsStatus(set []Status, s Status) bool {
	for _, candidate := range set {
		if candidate == s {
			return true
		}
	}
	return false
}

// Ticket is the capability set shared by both ticket kinds. The engine,
// query and aggregation layers operate exclusively through it.
type Ticket interface {
	Lifecycle() Lifecycle
	GetID() string
	GetNumber() string
	GetOwnerID() string
	GetStatus() Status
	GetHistory() string
	GetHandler() string
	GetCreatedAt() time.Time
	GetCompletedAt() *time.Time
	// CategoryLabel is the grouping key for aggregation (category for
	// general tickets, department for internal ones).
	CategoryLabel() string
	IsFrontDesk() bool
	// SearchText flattens every field to one lowercase string for the
	// full-row substring search.
	SearchText() string
	// MissingFields returns the names of required fields that are empty.
	MissingFields() []string
	// PrepareNew stamps the store-independent creation fields.
	PrepareNew(owner Identity, number string, now time.Time)
}

// SanitizeDigits strips every non-digit rune and truncates to maxLen
// (maxLen <= 0 means unbounded).
func SanitizeDigits(raw string, maxLen int) string {
	var b strings.Builder
	for _, r := range raw {
		if r < '0' || r > '9' {
			continue
		}
		b.WriteRune(r)
		if maxLen > 0 && b.Len() >= maxLen {
			break
		}
	}
	return b.String()
}
