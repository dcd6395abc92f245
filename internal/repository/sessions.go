package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/launchpad-hq/launchpad/internal/domain"
)

type SessionRepo struct {
	db *pgxpool.Pool
}

func NewSessionRepo(db *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{db: db}
}

const sessionColumns = `
	ps.id::text, ps.startup_id::text, ps.session_name, ps.description,
	ps.pitch_deck_url, ps.pitch_deck_text, ps.start_time, ps.end_time,
	ps.status, ps.auto_created, ps.created_at, ps.updated_at,
	s.name, s.tagline, COALESCE(p.full_name, '')`

const sessionJoins = `
	FROM pitch_sessions ps
	JOIN startups s ON s.id = ps.startup_id
	LEFT JOIN profiles p ON p.user_id = s.founder_id`

func scanSession(row pgx.Row) (*domain.PitchSession, error) {
	var ps domain.PitchSession
	err := row.Scan(
		&ps.ID, &ps.StartupID, &ps.SessionName, &ps.Description,
		&ps.PitchDeckURL, &ps.PitchDeckText, &ps.StartTime, &ps.EndTime,
		&ps.Status, &ps.AutoCreated, &ps.CreatedAt, &ps.UpdatedAt,
		&ps.StartupName, &ps.StartupTagline, &ps.FounderName,
	)
	if err != nil {
		return nil, err
	}
	return &ps, nil
}

func (r *SessionRepo) Create(ctx context.Context, ps *domain.PitchSession) error {
	ps.ID = uuid.New().String()
	err := r.db.QueryRow(ctx, `
		INSERT INTO pitch_sessions (
			id, startup_id, session_name, description, pitch_deck_url,
			pitch_deck_text, start_time, end_time, status, auto_created)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at, updated_at`,
		ps.ID, ps.StartupID, ps.SessionName, ps.Description, ps.PitchDeckURL,
		ps.PitchDeckText, ps.StartTime, ps.EndTime, ps.Status, ps.AutoCreated,
	).Scan(&ps.CreatedAt, &ps.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

// CreateAutoIfAbsent races safely: the partial unique index on active
// auto-created sessions makes the insert a no-op when a concurrent first
// contact already created one, and the existing row is returned instead.
func (r *SessionRepo) CreateAutoIfAbsent(ctx context.Context, ps *domain.PitchSession) (*domain.PitchSession, error) {
	ps.AutoCreated = true
	ps.Status = domain.SessionActive
	id := uuid.New().String()

	_, err := r.db.Exec(ctx, `
		INSERT INTO pitch_sessions (
			id, startup_id, session_name, description, start_time, end_time,
			status, auto_created)
		VALUES ($1, $2, $3, $4, $5, $6, 'active', true)
		ON CONFLICT (startup_id) WHERE status = 'active' AND auto_created
		DO NOTHING`,
		id, ps.StartupID, ps.SessionName, ps.Description, ps.StartTime, ps.EndTime,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert auto session: %w", err)
	}

	return r.ActiveByStartup(ctx, ps.StartupID)
}

func (r *SessionRepo) GetByID(ctx context.Context, id string) (*domain.PitchSession, error) {
	ps, err := scanSession(r.db.QueryRow(ctx,
		`SELECT `+sessionColumns+sessionJoins+` WHERE ps.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return ps, nil
}

func (r *SessionRepo) ActiveByStartup(ctx context.Context, startupID string) (*domain.PitchSession, error) {
	ps, err := scanSession(r.db.QueryRow(ctx,
		`SELECT `+sessionColumns+sessionJoins+`
		WHERE ps.startup_id = $1 AND ps.status = 'active'
		ORDER BY ps.created_at
		LIMIT 1`, startupID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get active session: %w", err)
	}
	return ps, nil
}

func (r *SessionRepo) ListActive(ctx context.Context) ([]domain.PitchSession, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+sessionColumns+sessionJoins+`
		WHERE ps.status = 'active'
		ORDER BY ps.start_time`)
	if err != nil {
		return nil, fmt.Errorf("list active sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.PitchSession
	for rows.Next() {
		ps, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *ps)
	}
	return sessions, rows.Err()
}

// CompleteExpired marks active sessions past their end time completed.
// Called from the background sweep.
func (r *SessionRepo) CompleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE pitch_sessions
		SET status = 'completed', updated_at = now()
		WHERE status = 'active' AND end_time < now()`)
	if err != nil {
		return 0, fmt.Errorf("complete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}
