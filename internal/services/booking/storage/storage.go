// Package storage defines persistence contracts for booking service state.
package storage

import (
	"context"
	"time"

	apperrors "github.com/louisbranch/heelturn.club/internal/platform/errors"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/rivalry"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/roster"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/storyline"
)

// ErrNotFound indicates a requested persistence record is missing.
// Callers use this to differentiate between legitimate "no such entity" states
// and transport or data corruption failures.
var ErrNotFound = apperrors.New(apperrors.CodeNotFound, "record not found")

// RivalryStore owns individual rivalry ledgers, keyed by the unordered
// wrestler pair for active lookups.
type RivalryStore interface {
	PutRivalry(ctx context.Context, r rivalry.Rivalry) error
	GetRivalry(ctx context.Context, id string) (rivalry.Rivalry, error)
	// FindActiveRivalryBetween returns the active rivalry covering the pair
	// regardless of argument order. Returns ErrNotFound when none is active.
	FindActiveRivalryBetween(ctx context.Context, wrestlerA, wrestlerB string) (rivalry.Rivalry, error)
	ListActiveRivalriesForWrestler(ctx context.Context, wrestlerID string) ([]rivalry.Rivalry, error)
	// ListRivalriesByHeatRange returns active rivalries with heat in
	// [minHeat, maxHeat]. A negative maxHeat leaves the range unbounded above.
	ListRivalriesByHeatRange(ctx context.Context, minHeat, maxHeat int) ([]rivalry.Rivalry, error)
	// ListHottestRivalries returns active rivalries ordered by heat descending.
	ListHottestRivalries(ctx context.Context, limit int) ([]rivalry.Rivalry, error)
}

// FactionRivalryStore owns faction-war ledgers.
type FactionRivalryStore interface {
	PutFactionRivalry(ctx context.Context, r rivalry.FactionRivalry) error
	GetFactionRivalry(ctx context.Context, id string) (rivalry.FactionRivalry, error)
	// FindActiveFactionRivalryBetween returns the active faction rivalry for
	// the unordered pair. Returns ErrNotFound when none is active.
	FindActiveFactionRivalryBetween(ctx context.Context, factionA, factionB string) (rivalry.FactionRivalry, error)
	ListActiveFactionRivalriesForFaction(ctx context.Context, factionID string) ([]rivalry.FactionRivalry, error)
}

// FeudStore owns multi-wrestler feud ledgers and their membership history.
type FeudStore interface {
	PutFeud(ctx context.Context, f rivalry.Feud) error
	GetFeud(ctx context.Context, id string) (rivalry.Feud, error)
	// ListActiveFeudsForWrestler returns active feuds where the wrestler is an
	// active member.
	ListActiveFeudsForWrestler(ctx context.Context, wrestlerID string) ([]rivalry.Feud, error)
	ListActiveFeuds(ctx context.Context) ([]rivalry.Feud, error)
}

// BranchStore owns the narrative branch hooks the engine hands to booking.
type BranchStore interface {
	PutBranchHook(ctx context.Context, hook storyline.BranchHook) error
	ListActiveBranchHooks(ctx context.Context) ([]storyline.BranchHook, error)
}

// RosterStore owns wrestler and faction identity plus faction membership.
type RosterStore interface {
	PutWrestler(ctx context.Context, w roster.Wrestler) error
	GetWrestler(ctx context.Context, id string) (roster.Wrestler, error)
	PutFaction(ctx context.Context, f roster.Faction) error
	GetFaction(ctx context.Context, id string) (roster.Faction, error)
	// AssignWrestlerToFaction replaces the wrestler's faction membership.
	AssignWrestlerToFaction(ctx context.Context, wrestlerID, factionID string) error
	// FactionForWrestler returns the wrestler's faction. Returns ErrNotFound
	// when the wrestler is unaffiliated.
	FactionForWrestler(ctx context.Context, wrestlerID string) (roster.Faction, error)
	ListFactionMembers(ctx context.Context, factionID string) ([]roster.Wrestler, error)
}

// NotificationRecord stores one booking-desk inbox item derived from a heat
// or resolution event.
type NotificationRecord struct {
	ID        string
	LedgerID  string
	Kind      string
	Message   string
	CreatedAt time.Time
	ReadAt    *time.Time
}

// NotificationStore persists the booking-desk notification inbox.
type NotificationStore interface {
	PutNotification(ctx context.Context, record NotificationRecord) error
	ListNotifications(ctx context.Context, limit int) ([]NotificationRecord, error)
	MarkNotificationRead(ctx context.Context, id string, readAt time.Time) error
}
