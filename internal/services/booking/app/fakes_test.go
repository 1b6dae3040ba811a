package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/rivalry"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/roster"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/storyline"
	"github.com/louisbranch/heelturn.club/internal/services/booking/storage"
)

// memoryStores implements every storage contract in memory for engine tests.
type memoryStores struct {
	rivalries        map[string]rivalry.Rivalry
	factionRivalries map[string]rivalry.FactionRivalry
	feuds            map[string]rivalry.Feud
	hooks            map[string]storyline.BranchHook
	wrestlers        map[string]roster.Wrestler
	factions         map[string]roster.Faction
	membership       map[string]string
}

func newMemoryStores() *memoryStores {
	return &memoryStores{
		rivalries:        make(map[string]rivalry.Rivalry),
		factionRivalries: make(map[string]rivalry.FactionRivalry),
		feuds:            make(map[string]rivalry.Feud),
		hooks:            make(map[string]storyline.BranchHook),
		wrestlers:        make(map[string]roster.Wrestler),
		factions:         make(map[string]roster.Faction),
		membership:       make(map[string]string),
	}
}

func (m *memoryStores) PutRivalry(_ context.Context, r rivalry.Rivalry) error {
	m.rivalries[r.ID] = r
	return nil
}

func (m *memoryStores) GetRivalry(_ context.Context, id string) (rivalry.Rivalry, error) {
	r, ok := m.rivalries[id]
	if !ok {
		return rivalry.Rivalry{}, storage.ErrNotFound
	}
	return r, nil
}

func (m *memoryStores) FindActiveRivalryBetween(_ context.Context, a, b string) (rivalry.Rivalry, error) {
	for _, r := range m.rivalries {
		if r.Active && r.SamePair(a, b) {
			return r, nil
		}
	}
	return rivalry.Rivalry{}, storage.ErrNotFound
}

func sortByHeat[T any](items []T, heat func(T) int, id func(T) string) {
	sort.Slice(items, func(i, j int) bool {
		if heat(items[i]) != heat(items[j]) {
			return heat(items[i]) > heat(items[j])
		}
		return id(items[i]) < id(items[j])
	})
}

func (m *memoryStores) ListActiveRivalriesForWrestler(_ context.Context, wrestlerID string) ([]rivalry.Rivalry, error) {
	var out []rivalry.Rivalry
	for _, r := range m.rivalries {
		if r.Active && r.Involves(wrestlerID) {
			out = append(out, r)
		}
	}
	sortByHeat(out, func(r rivalry.Rivalry) int { return r.Heat }, func(r rivalry.Rivalry) string { return r.ID })
	return out, nil
}

func (m *memoryStores) ListRivalriesByHeatRange(_ context.Context, minHeat, maxHeat int) ([]rivalry.Rivalry, error) {
	var out []rivalry.Rivalry
	for _, r := range m.rivalries {
		if !r.Active || r.Heat < minHeat {
			continue
		}
		if maxHeat >= 0 && r.Heat > maxHeat {
			continue
		}
		out = append(out, r)
	}
	sortByHeat(out, func(r rivalry.Rivalry) int { return r.Heat }, func(r rivalry.Rivalry) string { return r.ID })
	return out, nil
}

func (m *memoryStores) ListHottestRivalries(_ context.Context, limit int) ([]rivalry.Rivalry, error) {
	out, _ := m.ListRivalriesByHeatRange(context.Background(), 0, -1)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryStores) PutFactionRivalry(_ context.Context, r rivalry.FactionRivalry) error {
	m.factionRivalries[r.ID] = r
	return nil
}

func (m *memoryStores) GetFactionRivalry(_ context.Context, id string) (rivalry.FactionRivalry, error) {
	r, ok := m.factionRivalries[id]
	if !ok {
		return rivalry.FactionRivalry{}, storage.ErrNotFound
	}
	return r, nil
}

func (m *memoryStores) FindActiveFactionRivalryBetween(_ context.Context, a, b string) (rivalry.FactionRivalry, error) {
	for _, r := range m.factionRivalries {
		if r.Active && r.SamePair(a, b) {
			return r, nil
		}
	}
	return rivalry.FactionRivalry{}, storage.ErrNotFound
}

func (m *memoryStores) ListActiveFactionRivalriesForFaction(_ context.Context, factionID string) ([]rivalry.FactionRivalry, error) {
	var out []rivalry.FactionRivalry
	for _, r := range m.factionRivalries {
		if r.Active && r.Involves(factionID) {
			out = append(out, r)
		}
	}
	sortByHeat(out, func(r rivalry.FactionRivalry) int { return r.Heat }, func(r rivalry.FactionRivalry) string { return r.ID })
	return out, nil
}

func (m *memoryStores) PutFeud(_ context.Context, f rivalry.Feud) error {
	m.feuds[f.ID] = f
	return nil
}

func (m *memoryStores) GetFeud(_ context.Context, id string) (rivalry.Feud, error) {
	f, ok := m.feuds[id]
	if !ok {
		return rivalry.Feud{}, storage.ErrNotFound
	}
	return f, nil
}

func (m *memoryStores) ListActiveFeudsForWrestler(_ context.Context, wrestlerID string) ([]rivalry.Feud, error) {
	var out []rivalry.Feud
	for _, f := range m.feuds {
		if f.Active && f.HasMember(wrestlerID) {
			out = append(out, f)
		}
	}
	sortByHeat(out, func(f rivalry.Feud) int { return f.Heat }, func(f rivalry.Feud) string { return f.ID })
	return out, nil
}

func (m *memoryStores) ListActiveFeuds(_ context.Context) ([]rivalry.Feud, error) {
	var out []rivalry.Feud
	for _, f := range m.feuds {
		if f.Active {
			out = append(out, f)
		}
	}
	sortByHeat(out, func(f rivalry.Feud) int { return f.Heat }, func(f rivalry.Feud) string { return f.ID })
	return out, nil
}

func (m *memoryStores) PutBranchHook(_ context.Context, hook storyline.BranchHook) error {
	m.hooks[hook.ID] = hook
	return nil
}

func (m *memoryStores) ListActiveBranchHooks(_ context.Context) ([]storyline.BranchHook, error) {
	var out []storyline.BranchHook
	for _, hook := range m.hooks {
		if hook.Active {
			out = append(out, hook)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memoryStores) PutWrestler(_ context.Context, w roster.Wrestler) error {
	m.wrestlers[w.ID] = w
	return nil
}

func (m *memoryStores) GetWrestler(_ context.Context, id string) (roster.Wrestler, error) {
	w, ok := m.wrestlers[id]
	if !ok {
		return roster.Wrestler{}, storage.ErrNotFound
	}
	return w, nil
}

func (m *memoryStores) PutFaction(_ context.Context, f roster.Faction) error {
	m.factions[f.ID] = f
	return nil
}

func (m *memoryStores) GetFaction(_ context.Context, id string) (roster.Faction, error) {
	f, ok := m.factions[id]
	if !ok {
		return roster.Faction{}, storage.ErrNotFound
	}
	return f, nil
}

func (m *memoryStores) AssignWrestlerToFaction(_ context.Context, wrestlerID, factionID string) error {
	m.membership[wrestlerID] = factionID
	return nil
}

func (m *memoryStores) FactionForWrestler(_ context.Context, wrestlerID string) (roster.Faction, error) {
	factionID, ok := m.membership[wrestlerID]
	if !ok {
		return roster.Faction{}, storage.ErrNotFound
	}
	return m.GetFaction(context.Background(), factionID)
}

func (m *memoryStores) ListFactionMembers(_ context.Context, factionID string) ([]roster.Wrestler, error) {
	var out []roster.Wrestler
	for wrestlerID, assigned := range m.membership {
		if assigned == factionID {
			out = append(out, m.wrestlers[wrestlerID])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// captureSink records every emitted event for assertions.
type captureSink struct {
	heatChanges []rivalry.HeatChanged
	resolutions []rivalry.ResolutionEvent
}

func (c *captureSink) HeatChanged(_ context.Context, event rivalry.HeatChanged) error {
	c.heatChanges = append(c.heatChanges, event)
	return nil
}

func (c *captureSink) ResolutionAttempted(_ context.Context, event rivalry.ResolutionEvent) error {
	c.resolutions = append(c.resolutions, event)
	return nil
}

func sequentialIDs(prefix string) func() (string, error) {
	next := 0
	return func() (string, error) {
		next++
		return fmt.Sprintf("%s-%d", prefix, next), nil
	}
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
