// Package app hosts the booking engine: the orchestrator that turns match
// outcomes into heat, escalates rivalries into larger storylines, and
// resolves them with dice.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/louisbranch/heelturn.club/internal/platform/errors"
	"github.com/louisbranch/heelturn.club/internal/platform/id"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/dice"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/rivalry"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/roster"
	"github.com/louisbranch/heelturn.club/internal/services/booking/storage"
)

// Stores groups the persistence collaborators the engine needs.
type Stores struct {
	Rivalries        storage.RivalryStore
	FactionRivalries storage.FactionRivalryStore
	Feuds            storage.FeudStore
	Branches         storage.BranchStore
	Roster           storage.RosterStore
}

func (s Stores) validate() error {
	if s.Rivalries == nil {
		return fmt.Errorf("rivalry store is required")
	}
	if s.FactionRivalries == nil {
		return fmt.Errorf("faction rivalry store is required")
	}
	if s.Feuds == nil {
		return fmt.Errorf("feud store is required")
	}
	if s.Branches == nil {
		return fmt.Errorf("branch store is required")
	}
	if s.Roster == nil {
		return fmt.Errorf("roster store is required")
	}
	return nil
}

// Engine coordinates heat accumulation, escalation, and resolution across
// the three ledger variants. Per-ledger serialization is the caller's
// responsibility; the engine performs read-modify-write saves.
type Engine struct {
	stores        Stores
	sink          rivalry.Sink
	roller        dice.Roller
	clock         func() time.Time
	idGenerator   func() (string, error)
	intensity     rivalry.IntensityTable
	feudThreshold rivalry.FeudThresholdPolicy
	tracer        trace.Tracer
}

// Option adjusts engine construction.
type Option func(*Engine)

// WithSink routes heat-change and resolution notifications to the sink.
func WithSink(sink rivalry.Sink) Option {
	return func(e *Engine) {
		if sink != nil {
			e.sink = sink
		}
	}
}

// WithRoller substitutes the dice source, typically a seeded roller in tests.
func WithRoller(roller dice.Roller) Option {
	return func(e *Engine) {
		if roller != nil {
			e.roller = roller
		}
	}
}

// WithClock substitutes the time source.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithIDGenerator substitutes the ledger id source.
func WithIDGenerator(generator func() (string, error)) Option {
	return func(e *Engine) {
		if generator != nil {
			e.idGenerator = generator
		}
	}
}

// WithIntensityTable substitutes the display band configuration.
func WithIntensityTable(table rivalry.IntensityTable) Option {
	return func(e *Engine) {
		e.intensity = table
	}
}

// WithFeudThresholdPolicy substitutes the feud resolution scaling rule.
func WithFeudThresholdPolicy(policy rivalry.FeudThresholdPolicy) Option {
	return func(e *Engine) {
		if policy != nil {
			e.feudThreshold = policy
		}
	}
}

// New creates an engine over the provided stores. Unset collaborators
// default to production wiring: random dice, wall clock, generated ids, the
// built-in intensity bands, and a discard sink.
func New(stores Stores, opts ...Option) (*Engine, error) {
	if err := stores.validate(); err != nil {
		return nil, err
	}
	engine := &Engine{
		stores:        stores,
		sink:          rivalry.NopSink(),
		roller:        dice.NewRandom(),
		clock:         time.Now,
		idGenerator:   id.NewID,
		intensity:     rivalry.DefaultIntensityTable(),
		feudThreshold: rivalry.DefaultFeudThreshold,
		tracer:        otel.Tracer("booking/engine"),
	}
	for _, opt := range opts {
		opt(engine)
	}
	return engine, nil
}

func (e *Engine) now() time.Time {
	return e.clock().UTC()
}

// loadLedger fetches one ledger by kind and id, returning it through the
// shared capability interface.
func (e *Engine) loadLedger(ctx context.Context, kind rivalry.Kind, ledgerID string) (rivalry.Ledger, error) {
	switch kind {
	case rivalry.KindIndividual:
		r, err := e.stores.Rivalries.GetRivalry(ctx, ledgerID)
		if err != nil {
			return nil, err
		}
		return &r, nil
	case rivalry.KindFaction:
		r, err := e.stores.FactionRivalries.GetFactionRivalry(ctx, ledgerID)
		if err != nil {
			return nil, err
		}
		return &r, nil
	case rivalry.KindFeud:
		f, err := e.stores.Feuds.GetFeud(ctx, ledgerID)
		if err != nil {
			return nil, err
		}
		return &f, nil
	default:
		return nil, fmt.Errorf("unsupported ledger kind %v", kind)
	}
}

// saveLedger persists one ledger through its variant store.
func (e *Engine) saveLedger(ctx context.Context, ledger rivalry.Ledger) error {
	switch l := ledger.(type) {
	case *rivalry.Rivalry:
		return e.stores.Rivalries.PutRivalry(ctx, *l)
	case *rivalry.FactionRivalry:
		return e.stores.FactionRivalries.PutFactionRivalry(ctx, *l)
	case *rivalry.Feud:
		return e.stores.Feuds.PutFeud(ctx, *l)
	default:
		return fmt.Errorf("unsupported ledger type %T", ledger)
	}
}

// affectedWrestlerIDs expands a ledger's participants into wrestler ids.
// Faction ledgers report none themselves, so membership is resolved through
// the roster directory.
func (e *Engine) affectedWrestlerIDs(ctx context.Context, ledger rivalry.Ledger) []string {
	ids := ledger.AffectedWrestlerIDs()
	factionLedger, ok := ledger.(*rivalry.FactionRivalry)
	if !ok {
		return ids
	}
	for _, factionID := range []string{factionLedger.FactionA, factionLedger.FactionB} {
		members, err := e.stores.Roster.ListFactionMembers(ctx, factionID)
		if err != nil {
			continue
		}
		for _, member := range members {
			ids = append(ids, member.ID)
		}
	}
	return ids
}

func (e *Engine) emitHeatChanged(ctx context.Context, ledger rivalry.Ledger, delta int, reason string, at time.Time) {
	track := ledger.HeatTrack()
	_ = e.sink.HeatChanged(ctx, rivalry.HeatChanged{
		LedgerID:    ledger.LedgerID(),
		Kind:        ledger.LedgerKind(),
		Delta:       delta,
		Heat:        track.Heat,
		Reason:      reason,
		WrestlerIDs: e.affectedWrestlerIDs(ctx, ledger),
		At:          at,
	})
}

// AddHeat loads the ledger, applies the delta through the shared heat track,
// persists it, and notifies observers.
func (e *Engine) AddHeat(ctx context.Context, kind rivalry.Kind, ledgerID string, delta int, reason string) (rivalry.Ledger, error) {
	ctx, span := e.tracer.Start(ctx, "engine.AddHeat")
	defer span.End()

	ledger, err := e.loadLedger(ctx, kind, ledgerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, apperrors.WithMetadata(apperrors.CodeNotFound,
				"ledger not found", map[string]string{"ledger_id": ledgerID})
		}
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	now := e.now()
	if err := ledger.HeatTrack().AddHeat(delta, reason, now); err != nil {
		return nil, err
	}
	if err := e.saveLedger(ctx, ledger); err != nil {
		return nil, fmt.Errorf("save ledger: %w", err)
	}
	e.emitHeatChanged(ctx, ledger, delta, reason, now)
	return ledger, nil
}

// lookupFaction returns the wrestler's faction, or nil when the wrestler is
// unaffiliated.
func (e *Engine) lookupFaction(ctx context.Context, wrestlerID string) (*roster.Faction, error) {
	faction, err := e.stores.Roster.FactionForWrestler(ctx, wrestlerID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("faction for wrestler %s: %w", wrestlerID, err)
	}
	return &faction, nil
}
