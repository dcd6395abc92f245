package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/launchpad-hq/launchpad/internal/domain"
	"github.com/launchpad-hq/launchpad/internal/middleware"
	"github.com/launchpad-hq/launchpad/internal/service"
)

type createStartupRequest struct {
	Name               string          `json:"name" binding:"required"`
	Tagline            string          `json:"tagline"`
	Description        string          `json:"description"`
	Vision             string          `json:"vision"`
	ProductDescription string          `json:"product_description"`
	MarketSize         string          `json:"market_size"`
	BusinessModel      string          `json:"business_model"`
	FundingAsk         decimal.Decimal `json:"funding_ask"`
	EquityOffered      decimal.Decimal `json:"equity_offered"`
	PitchDeckURL       *string         `json:"pitch_deck_url"`
}

type startupResponse struct {
	ID                 string          `json:"id"`
	FounderID          string          `json:"founder_id"`
	FounderName        string          `json:"founder_name"`
	Name               string          `json:"name"`
	Tagline            string          `json:"tagline"`
	Description        string          `json:"description"`
	Vision             string          `json:"vision"`
	ProductDescription string          `json:"product_description"`
	MarketSize         string          `json:"market_size"`
	BusinessModel      string          `json:"business_model"`
	FundingAsk         decimal.Decimal `json:"funding_ask"`
	EquityOffered      decimal.Decimal `json:"equity_offered"`
	CurrentValuation   decimal.Decimal `json:"current_valuation"`
	TotalInvested      decimal.Decimal `json:"total_invested"`
	PitchDeckURL       *string         `json:"pitch_deck_url"`
	Status             string          `json:"status"`
	CreatedAt          time.Time       `json:"created_at"`
}

func toStartupResponse(s *domain.Startup) startupResponse {
	return startupResponse{
		ID:                 s.ID,
		FounderID:          s.FounderID,
		FounderName:        s.FounderName,
		Name:               s.Name,
		Tagline:            s.Tagline,
		Description:        s.Description,
		Vision:             s.Vision,
		ProductDescription: s.ProductDescription,
		MarketSize:         s.MarketSize,
		BusinessModel:      s.BusinessModel,
		FundingAsk:         s.FundingAsk,
		EquityOffered:      s.EquityOffered,
		CurrentValuation:   s.CurrentValuation,
		TotalInvested:      s.TotalInvested,
		PitchDeckURL:       s.PitchDeckURL,
		Status:             string(s.Status),
		CreatedAt:          s.CreatedAt,
	}
}

func (h *Handler) createStartup(c *gin.Context) {
	var req createStartupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	startup, err := h.startups.Create(c.Request.Context(), middleware.GetProfile(c), &domain.Startup{
		Name:               req.Name,
		Tagline:            req.Tagline,
		Description:        req.Description,
		Vision:             req.Vision,
		ProductDescription: req.ProductDescription,
		MarketSize:         req.MarketSize,
		BusinessModel:      req.BusinessModel,
		FundingAsk:         req.FundingAsk,
		EquityOffered:      req.EquityOffered,
		PitchDeckURL:       req.PitchDeckURL,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toStartupResponse(startup))
}

func (h *Handler) listStartups(c *gin.Context) {
	var (
		startups []domain.Startup
		err      error
	)
	if founderID := c.Query("founder_id"); founderID != "" {
		startups, err = h.startups.ListByFounder(c.Request.Context(), founderID)
	} else {
		startups, err = h.startups.Browse(c.Request.Context())
	}
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]startupResponse, 0, len(startups))
	for i := range startups {
		out = append(out, toStartupResponse(&startups[i]))
	}
	c.JSON(http.StatusOK, gin.H{"startups": out})
}

func (h *Handler) getStartup(c *gin.Context) {
	startup, err := h.startups.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toStartupResponse(startup))
}

type leaderboardEntryResponse struct {
	Rank           int             `json:"rank"`
	StartupID      string          `json:"startup_id"`
	Name           string          `json:"name"`
	Tagline        string          `json:"tagline"`
	FounderName    string          `json:"founder_name"`
	TotalInvested  decimal.Decimal `json:"total_invested"`
	Valuation      decimal.Decimal `json:"valuation"`
	AverageRating  float64         `json:"average_rating"`
	TotalInvestors int             `json:"total_investors"`
	Badge          string          `json:"badge,omitempty"`
}

func (h *Handler) leaderboard(c *gin.Context) {
	sortBy := c.DefaultQuery("sort", service.SortInvested)
	entries, err := h.startups.Leaderboard(c.Request.Context(), sortBy)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]leaderboardEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, leaderboardEntryResponse{
			Rank:           e.Rank,
			StartupID:      e.StartupID,
			Name:           e.Name,
			Tagline:        e.Tagline,
			FounderName:    e.FounderName,
			TotalInvested:  e.TotalInvested,
			Valuation:      e.Valuation,
			AverageRating:  e.AverageRating,
			TotalInvestors: e.TotalInvestors,
			Badge:          e.Badge,
		})
	}
	c.JSON(http.StatusOK, gin.H{"leaderboard": out})
}
