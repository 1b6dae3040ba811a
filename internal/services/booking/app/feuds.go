package app

import (
	"context"
	"errors"
	"fmt"

	apperrors "github.com/louisbranch/heelturn.club/internal/platform/errors"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/rivalry"
	"github.com/louisbranch/heelturn.club/internal/services/booking/storage"
)

func (e *Engine) loadFeud(ctx context.Context, feudID string) (rivalry.Feud, error) {
	f, err := e.stores.Feuds.GetFeud(ctx, feudID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return rivalry.Feud{}, apperrors.WithMetadata(apperrors.CodeFeudNotFound,
				"feud not found", map[string]string{"feud_id": feudID})
		}
		return rivalry.Feud{}, fmt.Errorf("load feud: %w", err)
	}
	return f, nil
}

// AddFeudHeat accumulates heat on a feud's shared track.
func (e *Engine) AddFeudHeat(ctx context.Context, feudID string, delta int, reason string) (rivalry.Feud, error) {
	ctx, span := e.tracer.Start(ctx, "engine.AddFeudHeat")
	defer span.End()

	f, err := e.loadFeud(ctx, feudID)
	if err != nil {
		return rivalry.Feud{}, err
	}
	now := e.now()
	if err := f.AddHeat(delta, reason, now); err != nil {
		return rivalry.Feud{}, err
	}
	if err := e.stores.Feuds.PutFeud(ctx, f); err != nil {
		return rivalry.Feud{}, fmt.Errorf("save feud: %w", err)
	}
	e.emitHeatChanged(ctx, &f, delta, reason, now)
	return f, nil
}

// AddFeudMember enrolls a wrestler into an existing feud with a role.
func (e *Engine) AddFeudMember(ctx context.Context, feudID, wrestlerID string, role rivalry.Role) (rivalry.Feud, error) {
	ctx, span := e.tracer.Start(ctx, "engine.AddFeudMember")
	defer span.End()

	if _, err := e.stores.Roster.GetWrestler(ctx, wrestlerID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return rivalry.Feud{}, apperrors.WithMetadata(apperrors.CodeWrestlerNotFound,
				"wrestler not found", map[string]string{"wrestler_id": wrestlerID})
		}
		return rivalry.Feud{}, fmt.Errorf("look up wrestler: %w", err)
	}
	f, err := e.loadFeud(ctx, feudID)
	if err != nil {
		return rivalry.Feud{}, err
	}
	if err := f.AddMember(wrestlerID, role, e.now()); err != nil {
		return rivalry.Feud{}, err
	}
	if err := e.stores.Feuds.PutFeud(ctx, f); err != nil {
		return rivalry.Feud{}, fmt.Errorf("save feud: %w", err)
	}
	return f, nil
}

// RemoveFeudMember marks a wrestler's membership as left with a reason. The
// membership row survives for cast history.
func (e *Engine) RemoveFeudMember(ctx context.Context, feudID, wrestlerID, reason string) (rivalry.Feud, error) {
	ctx, span := e.tracer.Start(ctx, "engine.RemoveFeudMember")
	defer span.End()

	f, err := e.loadFeud(ctx, feudID)
	if err != nil {
		return rivalry.Feud{}, err
	}
	if err := f.RemoveMember(wrestlerID, reason, e.now()); err != nil {
		return rivalry.Feud{}, err
	}
	if err := e.stores.Feuds.PutFeud(ctx, f); err != nil {
		return rivalry.Feud{}, fmt.Errorf("save feud: %w", err)
	}
	return f, nil
}

// EndFeud manually closes a feud and every active membership. The boolean
// reports whether this call performed the transition.
func (e *Engine) EndFeud(ctx context.Context, feudID, reason string) (rivalry.Feud, bool, error) {
	ctx, span := e.tracer.Start(ctx, "engine.EndFeud")
	defer span.End()

	f, err := e.loadFeud(ctx, feudID)
	if err != nil {
		return rivalry.Feud{}, false, err
	}
	if !f.EndFeud(reason, e.now()) {
		return f, false, nil
	}
	if err := e.stores.Feuds.PutFeud(ctx, f); err != nil {
		return rivalry.Feud{}, false, fmt.Errorf("save feud: %w", err)
	}
	return f, true, nil
}
