package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/launchpad-hq/launchpad/internal/ai"
	"github.com/launchpad-hq/launchpad/internal/config"
	"github.com/launchpad-hq/launchpad/internal/domain"
)

// generator is the slice of the AI gateway the decision pipeline needs.
type generator interface {
	Generate(ctx context.Context, prompt string, chatCtx ai.ChatContext, provider ai.Provider) ai.Result
}

func extractionPrompt(reply string) string {
	return fmt.Sprintf(`
You are a data extraction AI. Analyze the following investor response and extract the investment decision details.

**TASK**: Extract these exact values from the text:
1. Investment decision (INVEST or PASS)
2. Investment amount in dollars (numbers only, no commas or symbols)
3. Equity percentage (numbers only, no %% symbol)
4. Reasoning for the decision

**RESPONSE FORMAT**: Return ONLY a JSON object with this exact structure:
{
  "status": "INVEST" or "PASS",
  "amount": number (e.g., 250000 for $250,000),
  "equity": number (e.g., 15 for 15%%),
  "reasoning": "brief reasoning text"
}

**TEXT TO ANALYZE**:
%s

Return only the JSON object, no other text or formatting.`, reply)
}

type extractedDecision struct {
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Equity    decimal.Decimal `json:"equity"`
	Reasoning string          `json:"reasoning"`
}

// ExtractDecision runs the second-pass extraction over a raw AI reply and
// returns the structured decision, or ErrNoDecision when neither the
// extraction nor the keyword fallback finds one.
func ExtractDecision(ctx context.Context, gen generator, reply string) (*domain.InvestmentDecision, error) {
	res := gen.Generate(ctx, extractionPrompt(reply), ai.ChatContext{
		UserType:     "founder",
		StartupName:  "Analysis",
		PitchContext: "Investment extraction",
	}, ai.ProviderFast)
	if res.Degraded() {
		slog.Warn("decision extraction call failed, using fallback", "error", res.Err)
		return fallbackDecision(reply)
	}

	decision, err := parseDecision(res.Content)
	if err != nil {
		slog.Warn("decision extraction parse failed, using fallback", "error", err)
		return fallbackDecision(reply)
	}
	return decision, nil
}

// parseDecision strips code fences, parses the JSON, and validates the
// status. INVEST decisions with missing terms get the defaults.
func parseDecision(content string) (*domain.InvestmentDecision, error) {
	cleaned := strings.TrimSpace(content)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var ext extractedDecision
	if err := json.Unmarshal([]byte(cleaned), &ext); err != nil {
		return nil, fmt.Errorf("parse extraction reply: %w", err)
	}

	status := domain.DecisionStatus(strings.ToUpper(ext.Status))
	if status != domain.DecisionInvest && status != domain.DecisionPass {
		return nil, fmt.Errorf("invalid extracted status %q", ext.Status)
	}

	d := &domain.InvestmentDecision{Status: status, Reasoning: ext.Reasoning}
	if d.Reasoning == "" {
		d.Reasoning = "AI investor decision"
	}
	if status == domain.DecisionInvest {
		d.Amount = ext.Amount
		d.Equity = ext.Equity
		if d.Amount.IsZero() {
			d.Amount = decimal.NewFromInt(config.DefaultInvestAmount)
		}
		if d.Equity.IsZero() {
			d.Equity = decimal.NewFromInt(config.DefaultInvestEquity)
		}
	}
	return d, nil
}

// fallbackDecision is the naive substring heuristic used when extraction
// fails: "invest" present and "don't invest" absent means invest with the
// fallback terms.
func fallbackDecision(reply string) (*domain.InvestmentDecision, error) {
	lower := strings.ToLower(reply)
	if strings.Contains(lower, "invest") && !strings.Contains(lower, "don't invest") {
		return &domain.InvestmentDecision{
			Status:    domain.DecisionInvest,
			Amount:    decimal.NewFromInt(config.FallbackInvestAmount),
			Equity:    decimal.NewFromInt(config.FallbackInvestEquity),
			Reasoning: "AI investor decision (fallback parsing)",
		}, nil
	}
	return nil, domain.ErrNoDecision
}
