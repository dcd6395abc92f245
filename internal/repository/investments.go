package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/launchpad-hq/launchpad/internal/domain"
)

type InvestmentRepo struct {
	db *pgxpool.Pool
}

func NewInvestmentRepo(db *pgxpool.Pool) *InvestmentRepo {
	return &InvestmentRepo{db: db}
}

// ApplyAccepted records an accepted investment, bumps the startup's running
// total in the same transaction, and appends the announcement to the session
// chat. The additive UPDATE keeps concurrent investments from clobbering each
// other's totals. announce renders the system message from the post-update
// total. Returns the new total and the announcement message.
func (r *InvestmentRepo) ApplyAccepted(ctx context.Context, inv *domain.Investment, sessionID string, announce func(total decimal.Decimal) string) (decimal.Decimal, *domain.ChatMessage, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	inv.ID = uuid.New().String()
	inv.Status = domain.InvestmentAccepted
	err = tx.QueryRow(ctx, `
		INSERT INTO investments (id, investor_id, startup_id, amount, message, status)
		VALUES ($1, $2, $3, $4, $5, 'accepted')
		RETURNING created_at`,
		inv.ID, inv.InvestorID, inv.StartupID, inv.Amount, inv.Message,
	).Scan(&inv.CreatedAt)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("insert investment: %w", err)
	}

	var total decimal.Decimal
	err = tx.QueryRow(ctx, `
		UPDATE startups
		SET total_invested = total_invested + $1, updated_at = now()
		WHERE id = $2
		RETURNING total_invested`,
		inv.Amount, inv.StartupID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("bump total invested: %w", err)
	}

	msg := &domain.ChatMessage{
		ID:          uuid.New().String(),
		SessionID:   sessionID,
		UserID:      domain.SystemUserID,
		Message:     announce(total),
		MessageType: domain.MessageSystem,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO chat_messages (id, session_id, user_id, message, message_type)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		msg.ID, msg.SessionID, msg.UserID, msg.Message, msg.MessageType,
	).Scan(&msg.CreatedAt)
	if err != nil {
		return decimal.Zero, nil, fmt.Errorf("insert announcement: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return decimal.Zero, nil, fmt.Errorf("commit tx: %w", err)
	}
	return total, msg, nil
}

func (r *InvestmentRepo) ListByStartup(ctx context.Context, startupID string) ([]domain.Investment, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id::text, investor_id, startup_id::text, amount, message, status, created_at
		FROM investments
		WHERE startup_id = $1
		ORDER BY created_at DESC`, startupID)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()

	var invs []domain.Investment
	for rows.Next() {
		var inv domain.Investment
		if err := rows.Scan(
			&inv.ID, &inv.InvestorID, &inv.StartupID, &inv.Amount,
			&inv.Message, &inv.Status, &inv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		invs = append(invs, inv)
	}
	return invs, rows.Err()
}
