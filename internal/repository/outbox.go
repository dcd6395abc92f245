package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/launchpad-hq/launchpad/internal/domain"
)

type OutboxRepo struct {
	db *pgxpool.Pool
}

func NewOutboxRepo(db *pgxpool.Pool) *OutboxRepo {
	return &OutboxRepo{db: db}
}

// PendingBatch returns up to limit unprocessed entries under the attempt
// cap. The read takes no lasting locks, so an overlapping relay can pick up
// the same entries; Apply tolerates such replays.
func (r *OutboxRepo) PendingBatch(ctx context.Context, limit, maxAttempts int) ([]domain.SyncEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, chat_message_id::text, pitch_session_id::text,
			founder_id, investor_id, notification_message, attempts, processed_at, created_at
		FROM sync_outbox
		WHERE processed_at IS NULL AND attempts < $2
		ORDER BY id
		LIMIT $1`, limit, maxAttempts)
	if err != nil {
		return nil, fmt.Errorf("fetch outbox batch: %w", err)
	}
	defer rows.Close()

	var entries []domain.SyncEntry
	for rows.Next() {
		var e domain.SyncEntry
		if err := rows.Scan(
			&e.ID, &e.ChatMessageID, &e.PitchSessionID,
			&e.FounderID, &e.InvestorID, &e.NotificationMessage,
			&e.Attempts, &e.ProcessedAt, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan outbox entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// notificationID derives a stable id from the outbox entry, so replaying an
// entry cannot insert its founder notification twice.
func notificationID(entryID int64) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("sync-outbox-%d", entryID))).String()
}

// Apply materializes one entry's side-effects and marks it processed, all in
// one transaction. Both inserts tolerate replays: the link via its unique
// pair, the notification via its entry-derived id.
func (r *OutboxRepo) Apply(ctx context.Context, e domain.SyncEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO message_pitch_room_links (id, chat_message_id, pitch_session_id, sync_direction)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (chat_message_id, pitch_session_id) DO NOTHING`,
		uuid.New().String(), e.ChatMessageID, e.PitchSessionID, domain.SyncDirectionDMToPitch)
	if err != nil {
		return fmt.Errorf("insert link: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO founder_notifications (id, founder_id, investor_id, pitch_session_id, notification_type, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`,
		notificationID(e.ID), e.FounderID, e.InvestorID, e.PitchSessionID,
		domain.NotificationNewMessage, e.NotificationMessage)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE sync_outbox SET processed_at = now() WHERE id = $1`, e.ID)
	if err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *OutboxRepo) MarkFailed(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE sync_outbox SET attempts = attempts + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("record outbox failure: %w", err)
	}
	return nil
}
