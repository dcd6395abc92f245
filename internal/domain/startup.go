package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type StartupStatus string

const (
	StartupDraft  StartupStatus = "draft"
	StartupActive StartupStatus = "active"
	StartupFunded StartupStatus = "funded"
)

type Startup struct {
	ID                 string
	FounderID          string
	Name               string
	Tagline            string
	Description        string
	Vision             string
	ProductDescription string
	MarketSize         string
	BusinessModel      string
	FundingAsk         decimal.Decimal
	EquityOffered      decimal.Decimal
	CurrentValuation   decimal.Decimal
	TotalInvested      decimal.Decimal
	PitchDeckURL       *string
	Status             StartupStatus
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Resolved from the founder's profile on reads
	FounderName string
}

// ImpliedValuation derives a valuation from the funding terms: ask/equity*100
// when equity is offered, otherwise ask*10.
func ImpliedValuation(ask, equity decimal.Decimal) decimal.Decimal {
	if equity.IsPositive() {
		return ask.Div(equity).Mul(decimal.NewFromInt(100))
	}
	return ask.Mul(decimal.NewFromInt(10))
}
