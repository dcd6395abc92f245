package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvestmentStatus string

const (
	InvestmentPending  InvestmentStatus = "pending"
	InvestmentAccepted InvestmentStatus = "accepted"
	InvestmentRejected InvestmentStatus = "rejected"
)

type Investment struct {
	ID         string
	InvestorID string
	StartupID  string
	Amount     decimal.Decimal
	Message    string
	Status     InvestmentStatus
	CreatedAt  time.Time
}

type DecisionStatus string

const (
	DecisionInvest DecisionStatus = "INVEST"
	DecisionPass   DecisionStatus = "PASS"
)

// InvestmentDecision is the structured outcome extracted from a free-text
// AI investor reply.
type InvestmentDecision struct {
	Status    DecisionStatus
	Amount    decimal.Decimal
	Equity    decimal.Decimal
	Reasoning string
}

// LeaderboardEntry ranks a startup by its funding traction.
type LeaderboardEntry struct {
	StartupID      string
	Name           string
	Tagline        string
	FounderName    string
	TotalInvested  decimal.Decimal
	Valuation      decimal.Decimal
	AverageRating  float64
	TotalInvestors int
	Rank           int
	Badge          string
}

// Leaderboard badges
const (
	BadgeUnicorn          = "unicorn"
	BadgeRisingStar       = "rising_star"
	BadgeTopRated         = "top_rated"
	BadgeInvestorFavorite = "investor_favorite"
)
