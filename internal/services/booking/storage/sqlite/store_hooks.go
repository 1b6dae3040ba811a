package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/storyline"
	"github.com/louisbranch/heelturn.club/internal/services/booking/storage"
)

// PutBranchHook upserts one narrative branch hook.
func (s *Store) PutBranchHook(ctx context.Context, hook storyline.BranchHook) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(hook.ID) == "" {
		return fmt.Errorf("branch hook id is required")
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO branch_hooks (id, name, description, category, priority, active, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   description = excluded.description,
		   category = excluded.category,
		   priority = excluded.priority,
		   active = excluded.active`,
		hook.ID,
		hook.Name,
		hook.Description,
		int(hook.Category),
		hook.Priority,
		boolToInt(hook.Active),
		toMillis(hook.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("put branch hook: %w", err)
	}
	return nil
}

// ListActiveBranchHooks returns active hooks ordered by priority descending.
func (s *Store) ListActiveBranchHooks(ctx context.Context) ([]storyline.BranchHook, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, name, description, category, priority, active, created_at
		 FROM branch_hooks
		 WHERE active = 1
		 ORDER BY priority DESC, created_at ASC, id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list branch hooks: %w", err)
	}
	defer rows.Close()

	var hooks []storyline.BranchHook
	for rows.Next() {
		var (
			hook      storyline.BranchHook
			category  int
			active    int
			createdAt int64
		)
		if err := rows.Scan(&hook.ID, &hook.Name, &hook.Description, &category, &hook.Priority, &active, &createdAt); err != nil {
			return nil, fmt.Errorf("scan branch hook: %w", err)
		}
		hook.Category = storyline.BranchCategory(category)
		hook.Active = active != 0
		hook.CreatedAt = fromMillis(createdAt)
		hooks = append(hooks, hook)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list branch hooks: %w", err)
	}
	return hooks, nil
}

// PutNotification inserts one booking-desk inbox item.
func (s *Store) PutNotification(ctx context.Context, record storage.NotificationRecord) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(record.ID) == "" {
		return fmt.Errorf("notification id is required")
	}
	_, err := s.sqlDB.ExecContext(
		ctx,
		`INSERT INTO notifications (id, ledger_id, kind, message, created_at, read_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   message = excluded.message,
		   read_at = excluded.read_at`,
		record.ID,
		record.LedgerID,
		record.Kind,
		record.Message,
		toMillis(record.CreatedAt),
		toNullMillis(record.ReadAt),
	)
	if err != nil {
		return fmt.Errorf("put notification: %w", err)
	}
	return nil
}

// ListNotifications returns the newest inbox items first.
func (s *Store) ListNotifications(ctx context.Context, limit int) ([]storage.NotificationRecord, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be greater than zero")
	}
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT id, ledger_id, kind, message, created_at, read_at
		 FROM notifications
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var records []storage.NotificationRecord
	for rows.Next() {
		var (
			record    storage.NotificationRecord
			createdAt int64
			readAt    sql.NullInt64
		)
		if err := rows.Scan(&record.ID, &record.LedgerID, &record.Kind, &record.Message, &createdAt, &readAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		record.CreatedAt = fromMillis(createdAt)
		record.ReadAt = fromNullMillis(readAt)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return records, nil
}

// MarkNotificationRead records the read timestamp for one inbox item.
func (s *Store) MarkNotificationRead(ctx context.Context, id string, readAt time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("notification id is required")
	}
	result, err := s.sqlDB.ExecContext(
		ctx,
		`UPDATE notifications SET read_at = ? WHERE id = ?`,
		toMillis(readAt),
		id,
	)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}
