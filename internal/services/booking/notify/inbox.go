// Package notify persists booking events as rendered inbox notifications.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/louisbranch/heelturn.club/internal/platform/id"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/rivalry"
	"github.com/louisbranch/heelturn.club/internal/services/booking/render"
	"github.com/louisbranch/heelturn.club/internal/services/booking/storage"
)

// Inbox is a rivalry.Sink that renders each event into localized copy and
// stores it as a booking-desk notification.
type Inbox struct {
	store       storage.NotificationStore
	localizer   render.Localizer
	clock       func() time.Time
	idGenerator func() (string, error)
}

var _ rivalry.Sink = (*Inbox)(nil)

// Option configures an Inbox.
type Option func(*Inbox)

// WithLocalizer sets the message printer used to render notification copy.
// A nil localizer falls back to built-in English defaults.
func WithLocalizer(loc render.Localizer) Option {
	return func(i *Inbox) { i.localizer = loc }
}

// WithClock overrides the time source.
func WithClock(clock func() time.Time) Option {
	return func(i *Inbox) { i.clock = clock }
}

// WithIDGenerator overrides notification id generation.
func WithIDGenerator(gen func() (string, error)) Option {
	return func(i *Inbox) { i.idGenerator = gen }
}

// NewInbox creates an Inbox backed by the given notification store.
func NewInbox(store storage.NotificationStore, opts ...Option) *Inbox {
	inbox := &Inbox{
		store:       store,
		clock:       time.Now,
		idGenerator: id.NewID,
	}
	for _, opt := range opts {
		opt(inbox)
	}
	return inbox
}

// HeatChanged implements rivalry.Sink.
func (i *Inbox) HeatChanged(ctx context.Context, event rivalry.HeatChanged) error {
	payload, err := json.Marshal(render.HeatPayload{
		Kind:   event.Kind.String(),
		Delta:  event.Delta,
		Heat:   event.Heat,
		Reason: event.Reason,
	})
	if err != nil {
		return fmt.Errorf("encode heat payload: %w", err)
	}
	return i.put(ctx, event.LedgerID, event.Kind, render.TopicHeatChanged, string(payload), event.At)
}

// ResolutionAttempted implements rivalry.Sink.
func (i *Inbox) ResolutionAttempted(ctx context.Context, event rivalry.ResolutionEvent) error {
	payload, err := json.Marshal(render.ResolutionPayload{
		Kind:     event.Kind.String(),
		Resolved: event.Resolved,
		Total:    event.Total,
		Heat:     event.Heat,
	})
	if err != nil {
		return fmt.Errorf("encode resolution payload: %w", err)
	}
	return i.put(ctx, event.LedgerID, event.Kind, render.TopicResolutionAttempted, string(payload), event.At)
}

func (i *Inbox) put(ctx context.Context, ledgerID string, kind rivalry.Kind, topic, payload string, at time.Time) error {
	out := render.Render(i.localizer, render.Input{Topic: topic, PayloadJSON: payload})

	recordID, err := i.idGenerator()
	if err != nil {
		return fmt.Errorf("generate notification id: %w", err)
	}
	if at.IsZero() {
		at = i.clock()
	}
	record := storage.NotificationRecord{
		ID:        recordID,
		LedgerID:  ledgerID,
		Kind:      kind.String(),
		Message:   out.Title + ": " + out.BodyText,
		CreatedAt: at,
	}
	if err := i.store.PutNotification(ctx, record); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	return nil
}

// Recent returns the newest notifications, up to limit.
func (i *Inbox) Recent(ctx context.Context, limit int) ([]storage.NotificationRecord, error) {
	return i.store.ListNotifications(ctx, limit)
}

// MarkRead stamps a notification as read at the current time.
func (i *Inbox) MarkRead(ctx context.Context, notificationID string) error {
	return i.store.MarkNotificationRead(ctx, notificationID, i.clock())
}
