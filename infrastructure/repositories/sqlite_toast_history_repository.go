package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"toastd/database"
	"toastd/domain/contracts"
	"toastd/domain/toasts"
)

const historyColumns = `id, toast_id, event, title, variant, position, duration_ms, remaining_ms, reason, occurred_at`

// SqliteToastHistoryRepository implements contracts.ToastHistoryRepository with read/write separation.
type SqliteToastHistoryRepository struct {
	*BaseRepository
}

// NewSqliteToastHistoryRepository creates a new toast history repository.
func NewSqliteToastHistoryRepository(database *database.Database) contracts.ToastHistoryRepository {
	return &SqliteToastHistoryRepository{
		BaseRepository: NewBaseRepository(database),
	}
}

// Record appends a lifecycle transition and sets entry.ID.
func (r *SqliteToastHistoryRepository) Record(ctx context.Context, entry *toasts.HistoryEntry) error {
	res, err := r.WriteDB().ExecContext(ctx, `
		INSERT INTO toast_history (toast_id, event, title, variant, position, duration_ms, remaining_ms, reason, occurred_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(entry.ToastID),
		string(entry.Event),
		r.ToNullString(entry.Title),
		string(entry.Variant),
		string(entry.Position),
		entry.Duration.Milliseconds(),
		entry.Remaining.Milliseconds(),
		r.ToNullString(string(entry.Reason)),
		entry.OccurredAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert toast history: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read toast history id: %w", err)
	}
	entry.ID = id
	return nil
}

// Recent returns the newest entries first.
func (r *SqliteToastHistoryRepository) Recent(ctx context.Context, limit int) ([]*toasts.HistoryEntry, error) {
	if limit <= 0 {
		return nil, contracts.ErrInvalidLimit
	}

	rows, err := r.ReadDB().QueryContext(ctx,
		`SELECT `+historyColumns+` FROM toast_history ORDER BY occurred_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent toast history: %w", err)
	}
	defer rows.Close()

	return r.scanEntries(rows)
}

// ForToast returns every entry of one toast in the order they happened.
func (r *SqliteToastHistoryRepository) ForToast(ctx context.Context, id toasts.ID) ([]*toasts.HistoryEntry, error) {
	rows, err := r.ReadDB().QueryContext(ctx,
		`SELECT `+historyColumns+` FROM toast_history WHERE toast_id = ? ORDER BY occurred_at, id`, string(id))
	if err != nil {
		return nil, fmt.Errorf("query toast history: %w", err)
	}
	defer rows.Close()

	entries, err := r.scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, contracts.ErrNotFound
	}
	return entries, nil
}

// Prune deletes entries older than before and returns how many were removed.
func (r *SqliteToastHistoryRepository) Prune(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	err := r.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM toast_history WHERE occurred_at < ?`, before.UTC())
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("prune toast history: %w", err)
	}
	return deleted, nil
}

func (r *SqliteToastHistoryRepository) scanEntries(rows *sql.Rows) ([]*toasts.HistoryEntry, error) {
	var entries []*toasts.HistoryEntry
	for rows.Next() {
		var (
			e                       toasts.HistoryEntry
			toastID, event          string
			variant, position       string
			title, reason           sql.NullString
			durationMs, remainingMs int64
		)
		if err := rows.Scan(&e.ID, &toastID, &event, &title, &variant, &position,
			&durationMs, &remainingMs, &reason, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan toast history: %w", err)
		}
		e.ToastID = toasts.ID(toastID)
		e.Event = toasts.HistoryEvent(event)
		e.Title = r.FromNullString(title)
		e.Variant = toasts.Variant(variant)
		e.Position = toasts.Position(position)
		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.Remaining = time.Duration(remainingMs) * time.Millisecond
		e.Reason = toasts.DismissReason(r.FromNullString(reason))
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
