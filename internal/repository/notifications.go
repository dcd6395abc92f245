package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/launchpad-hq/launchpad/internal/domain"
)

type NotificationRepo struct {
	db *pgxpool.Pool
}

func NewNotificationRepo(db *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{db: db}
}

func (r *NotificationRepo) ListUnread(ctx context.Context, founderID string) ([]domain.FounderNotification, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text, founder_id, investor_id, pitch_session_id::text,
			notification_type, message, is_read, created_at
		FROM founder_notifications
		WHERE founder_id = $1 AND NOT is_read
		ORDER BY created_at DESC`, founderID)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var notes []domain.FounderNotification
	for rows.Next() {
		var n domain.FounderNotification
		if err := rows.Scan(
			&n.ID, &n.FounderID, &n.InvestorID, &n.PitchSessionID,
			&n.NotificationType, &n.Message, &n.IsRead, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, founderID string) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE founder_notifications
		SET is_read = true
		WHERE founder_id = $1 AND NOT is_read`, founderID)
	if err != nil {
		return 0, fmt.Errorf("mark notifications read: %w", err)
	}
	return tag.RowsAffected(), nil
}
