package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/launchpad-hq/launchpad/internal/domain"
)

type MessageRepo struct {
	db *pgxpool.Pool
}

func NewMessageRepo(db *pgxpool.Pool) *MessageRepo {
	return &MessageRepo{db: db}
}

const chatMessageColumns = `
	cm.id::text, cm.session_id::text, cm.user_id, cm.message, cm.message_type,
	cm.ai_provider, cm.created_at,
	COALESCE(p.full_name, ''), COALESCE(p.user_type, '')`

const chatMessageJoins = `
	FROM chat_messages cm
	LEFT JOIN profiles p ON p.user_id = cm.user_id`

func scanChatMessage(row pgx.Row) (*domain.ChatMessage, error) {
	var m domain.ChatMessage
	err := row.Scan(
		&m.ID, &m.SessionID, &m.UserID, &m.Message, &m.MessageType,
		&m.AIProvider, &m.CreatedAt,
		&m.UserName, &m.UserType,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MessageRepo) InsertChat(ctx context.Context, m *domain.ChatMessage) error {
	m.ID = uuid.New().String()
	err := r.db.QueryRow(ctx, `
		INSERT INTO chat_messages (id, session_id, user_id, message, message_type, ai_provider)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		m.ID, m.SessionID, m.UserID, m.Message, m.MessageType, m.AIProvider,
	).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}
	return nil
}

// InsertChatWithOutbox writes a bridged chat message and its pending mirror
// side-effects in one transaction, so the link and founder notification
// cannot be lost between two independent writes.
func (r *MessageRepo) InsertChatWithOutbox(ctx context.Context, m *domain.ChatMessage, entry *domain.SyncEntry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	m.ID = uuid.New().String()
	err = tx.QueryRow(ctx, `
		INSERT INTO chat_messages (id, session_id, user_id, message, message_type, ai_provider)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at`,
		m.ID, m.SessionID, m.UserID, m.Message, m.MessageType, m.AIProvider,
	).Scan(&m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert chat message: %w", err)
	}

	entry.ChatMessageID = m.ID
	entry.PitchSessionID = m.SessionID
	err = tx.QueryRow(ctx, `
		INSERT INTO sync_outbox (chat_message_id, pitch_session_id, founder_id, investor_id, notification_message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		entry.ChatMessageID, entry.PitchSessionID, entry.FounderID, entry.InvestorID, entry.NotificationMessage,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("enqueue sync entry: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (r *MessageRepo) ListBySession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+chatMessageColumns+chatMessageJoins+`
		WHERE cm.session_id = $1
		ORDER BY cm.created_at`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	return collectChatMessages(rows)
}

// Recent returns the last n messages of a session in chronological order.
func (r *MessageRepo) Recent(ctx context.Context, sessionID string, n int) ([]domain.ChatMessage, error) {
	rows, err := r.db.Query(ctx, `
		SELECT * FROM (
			SELECT `+chatMessageColumns+chatMessageJoins+`
			WHERE cm.session_id = $1
			ORDER BY cm.created_at DESC
			LIMIT $2
		) recent ORDER BY recent.created_at`, sessionID, n)
	if err != nil {
		return nil, fmt.Errorf("recent messages: %w", err)
	}
	defer rows.Close()

	return collectChatMessages(rows)
}

func collectChatMessages(rows pgx.Rows) ([]domain.ChatMessage, error) {
	var msgs []domain.ChatMessage
	for rows.Next() {
		m, err := scanChatMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chat message: %w", err)
		}
		msgs = append(msgs, *m)
	}
	return msgs, rows.Err()
}

func (r *MessageRepo) InsertDirect(ctx context.Context, dm *domain.DirectMessage) error {
	dm.ID = uuid.New().String()
	err := r.db.QueryRow(ctx, `
		INSERT INTO direct_messages (id, sender_id, recipient_id, message)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		dm.ID, dm.SenderID, dm.RecipientID, dm.Message,
	).Scan(&dm.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert direct message: %w", err)
	}
	return nil
}

// ConversationsForInvestor returns one row per active session the investor
// has messaged in, newest activity first. A founder with parallel sessions
// yields several rows; the service collapses them to one thread. Unread
// counts only consider founder replies inside the window.
func (r *MessageRepo) ConversationsForInvestor(ctx context.Context, investorID string, unreadSince time.Time) ([]domain.Conversation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			s.founder_id,
			COALESCE(p.full_name, ''),
			COALESCE(p.user_type, 'founder'),
			s.name,
			ps.id::text,
			ps.created_at,
			COALESCE(last.message, ''),
			COALESCE(last.created_at, ps.created_at),
			COALESCE(unread.n, 0)
		FROM pitch_sessions ps
		JOIN startups s ON s.id = ps.startup_id
		LEFT JOIN profiles p ON p.user_id = s.founder_id
		JOIN LATERAL (
			SELECT 1 FROM chat_messages cm
			WHERE cm.session_id = ps.id AND cm.user_id = $1
			LIMIT 1
		) mine ON true
		LEFT JOIN LATERAL (
			SELECT cm.message, cm.created_at
			FROM chat_messages cm
			WHERE cm.session_id = ps.id AND cm.user_id IN ($1, s.founder_id)
			ORDER BY cm.created_at DESC
			LIMIT 1
		) last ON true
		LEFT JOIN LATERAL (
			SELECT COUNT(*) AS n
			FROM chat_messages cm
			WHERE cm.session_id = ps.id
			  AND cm.user_id = s.founder_id
			  AND cm.created_at > $2
		) unread ON true
		WHERE ps.status = 'active'
		ORDER BY COALESCE(last.created_at, ps.created_at) DESC`,
		investorID, unreadSince)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var convs []domain.Conversation
	for rows.Next() {
		var c domain.Conversation
		if err := rows.Scan(
			&c.UserID, &c.UserName, &c.UserType, &c.StartupName, &c.SessionID,
			&c.SessionCreatedAt, &c.LastMessage, &c.LastMessageAt, &c.UnreadCount,
		); err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		convs = append(convs, c)
	}
	return convs, rows.Err()
}
