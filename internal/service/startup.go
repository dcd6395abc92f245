package service

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/launchpad-hq/launchpad/internal/domain"
)

type startupStore interface {
	Create(ctx context.Context, s *domain.Startup) error
	GetByID(ctx context.Context, id string) (*domain.Startup, error)
	ListByFounder(ctx context.Context, founderID string) ([]domain.Startup, error)
	ListActive(ctx context.Context) ([]domain.Startup, error)
	LeaderboardRows(ctx context.Context) ([]domain.LeaderboardEntry, error)
}

// Startups covers the marketplace catalog: founder listings, the browse
// view, and the leaderboard.
type Startups struct {
	store startupStore
}

func NewStartups(store startupStore) *Startups {
	return &Startups{store: store}
}

// Create lists a founder's startup. The valuation is derived from the
// funding terms when the founder does not set one.
func (s *Startups) Create(ctx context.Context, founder *domain.Profile, startup *domain.Startup) (*domain.Startup, error) {
	if !founder.IsFounder() {
		return nil, domain.ErrNotFounder
	}
	startup.FounderID = founder.UserID
	if startup.Status == "" {
		startup.Status = domain.StartupActive
	}
	if startup.CurrentValuation.IsZero() {
		startup.CurrentValuation = domain.ImpliedValuation(startup.FundingAsk, startup.EquityOffered)
	}
	if err := s.store.Create(ctx, startup); err != nil {
		return nil, err
	}
	startup.FounderName = founder.FullName
	return startup, nil
}

func (s *Startups) Get(ctx context.Context, id string) (*domain.Startup, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Startups) Browse(ctx context.Context) ([]domain.Startup, error) {
	return s.store.ListActive(ctx)
}

func (s *Startups) ListByFounder(ctx context.Context, founderID string) ([]domain.Startup, error) {
	return s.store.ListByFounder(ctx, founderID)
}

// Leaderboard sort keys
const (
	SortInvested   = "invested"
	SortValuation  = "valuation"
	SortRating     = "rating"
	SortPopularity = "popularity"
)

var badgeUnicornThreshold = decimal.NewFromInt(1_000_000)
var badgeRisingStarThreshold = decimal.NewFromInt(500_000)

// Leaderboard ranks startups by the requested key and assigns traction
// badges. Badge precedence: unicorn, rising star, top rated, investor
// favorite.
func (s *Startups) Leaderboard(ctx context.Context, sortBy string) ([]domain.LeaderboardEntry, error) {
	entries, err := s.store.LeaderboardRows(ctx)
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Badge = assignBadge(&entries[i])
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		switch sortBy {
		case SortValuation:
			return a.Valuation.GreaterThan(b.Valuation)
		case SortRating:
			return a.AverageRating > b.AverageRating
		case SortPopularity:
			return a.TotalInvestors > b.TotalInvestors
		default:
			return a.TotalInvested.GreaterThan(b.TotalInvested)
		}
	})

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

func assignBadge(e *domain.LeaderboardEntry) string {
	switch {
	case e.TotalInvested.GreaterThanOrEqual(badgeUnicornThreshold):
		return domain.BadgeUnicorn
	case e.TotalInvested.GreaterThanOrEqual(badgeRisingStarThreshold) && e.TotalInvestors >= 5:
		return domain.BadgeRisingStar
	case e.AverageRating >= 4.7:
		return domain.BadgeTopRated
	case e.TotalInvestors >= 8:
		return domain.BadgeInvestorFavorite
	default:
		return ""
	}
}
