package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/launchpad-hq/launchpad/internal/domain"
)

type StartupRepo struct {
	db *pgxpool.Pool
}

func NewStartupRepo(db *pgxpool.Pool) *StartupRepo {
	return &StartupRepo{db: db}
}

const startupColumns = `
	s.id::text, s.founder_id, s.name, s.tagline, s.description, s.vision,
	s.product_description, s.market_size, s.business_model,
	s.funding_ask, s.equity_offered, s.current_valuation, s.total_invested,
	s.pitch_deck_url, s.status, s.created_at, s.updated_at,
	COALESCE(p.full_name, '')`

func scanStartup(row pgx.Row) (*domain.Startup, error) {
	var s domain.Startup
	err := row.Scan(
		&s.ID, &s.FounderID, &s.Name, &s.Tagline, &s.Description, &s.Vision,
		&s.ProductDescription, &s.MarketSize, &s.BusinessModel,
		&s.FundingAsk, &s.EquityOffered, &s.CurrentValuation, &s.TotalInvested,
		&s.PitchDeckURL, &s.Status, &s.CreatedAt, &s.UpdatedAt,
		&s.FounderName,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StartupRepo) Create(ctx context.Context, s *domain.Startup) error {
	s.ID = uuid.New().String()
	err := r.db.QueryRow(ctx, `
		INSERT INTO startups (
			id, founder_id, name, tagline, description, vision,
			product_description, market_size, business_model,
			funding_ask, equity_offered, current_valuation, pitch_deck_url, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING total_invested, created_at, updated_at`,
		s.ID, s.FounderID, s.Name, s.Tagline, s.Description, s.Vision,
		s.ProductDescription, s.MarketSize, s.BusinessModel,
		s.FundingAsk, s.EquityOffered, s.CurrentValuation, s.PitchDeckURL, s.Status,
	).Scan(&s.TotalInvested, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert startup: %w", err)
	}
	return nil
}

func (r *StartupRepo) GetByID(ctx context.Context, id string) (*domain.Startup, error) {
	s, err := scanStartup(r.db.QueryRow(ctx, `
		SELECT `+startupColumns+`
		FROM startups s
		LEFT JOIN profiles p ON p.user_id = s.founder_id
		WHERE s.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStartupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get startup: %w", err)
	}
	return s, nil
}

// ActiveByFounder returns the founder's active startup, the anchor for the
// direct-message bridge.
func (r *StartupRepo) ActiveByFounder(ctx context.Context, founderID string) (*domain.Startup, error) {
	s, err := scanStartup(r.db.QueryRow(ctx, `
		SELECT `+startupColumns+`
		FROM startups s
		LEFT JOIN profiles p ON p.user_id = s.founder_id
		WHERE s.founder_id = $1 AND s.status = 'active'
		ORDER BY s.created_at DESC
		LIMIT 1`, founderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrStartupNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get active startup: %w", err)
	}
	return s, nil
}

func (r *StartupRepo) ListByFounder(ctx context.Context, founderID string) ([]domain.Startup, error) {
	return r.list(ctx, `
		SELECT `+startupColumns+`
		FROM startups s
		LEFT JOIN profiles p ON p.user_id = s.founder_id
		WHERE s.founder_id = $1
		ORDER BY s.created_at DESC`, founderID)
}

func (r *StartupRepo) ListActive(ctx context.Context) ([]domain.Startup, error) {
	return r.list(ctx, `
		SELECT `+startupColumns+`
		FROM startups s
		LEFT JOIN profiles p ON p.user_id = s.founder_id
		WHERE s.status = 'active'
		ORDER BY s.created_at DESC`)
}

func (r *StartupRepo) list(ctx context.Context, query string, args ...any) ([]domain.Startup, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list startups: %w", err)
	}
	defer rows.Close()

	var startups []domain.Startup
	for rows.Next() {
		s, err := scanStartup(rows)
		if err != nil {
			return nil, fmt.Errorf("scan startup: %w", err)
		}
		startups = append(startups, *s)
	}
	return startups, rows.Err()
}

// LeaderboardRows aggregates funding traction per startup: the maintained
// total, accepted-investor count, and average rating when any exist.
func (r *StartupRepo) LeaderboardRows(ctx context.Context) ([]domain.LeaderboardEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT
			s.id::text, s.name, s.tagline, COALESCE(p.full_name, ''),
			s.total_invested, s.current_valuation,
			COALESCE(inv.investors, 0), COALESCE(rt.avg_rating, 0)
		FROM startups s
		LEFT JOIN profiles p ON p.user_id = s.founder_id
		LEFT JOIN (
			SELECT startup_id, COUNT(DISTINCT investor_id) AS investors
			FROM investments WHERE status = 'accepted'
			GROUP BY startup_id
		) inv ON inv.startup_id = s.id
		LEFT JOIN (
			SELECT startup_id, AVG(overall_score) AS avg_rating
			FROM ratings GROUP BY startup_id
		) rt ON rt.startup_id = s.id
		WHERE s.status IN ('active', 'funded')
		ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("leaderboard query: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		var avg decimal.Decimal
		if err := rows.Scan(
			&e.StartupID, &e.Name, &e.Tagline, &e.FounderName,
			&e.TotalInvested, &e.Valuation, &e.TotalInvestors, &avg,
		); err != nil {
			return nil, fmt.Errorf("scan leaderboard row: %w", err)
		}
		e.AverageRating = avg.InexactFloat64()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
