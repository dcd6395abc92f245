package service

import (
	"context"
	"errors"
	"testing"

	"github.com/launchpad-hq/launchpad/internal/ai"
	"github.com/launchpad-hq/launchpad/internal/domain"
)

// fakeGenerator scripts gateway replies for the pipeline under test.
type fakeGenerator struct {
	results []ai.Result
	prompts []string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, chatCtx ai.ChatContext, provider ai.Provider) ai.Result {
	f.prompts = append(f.prompts, prompt)
	if len(f.results) == 0 {
		return ai.Result{Content: "ok", Provider: provider}
	}
	res := f.results[0]
	f.results = f.results[1:]
	if res.Provider == "" {
		res.Provider = provider
	}
	return res
}

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantStatus domain.DecisionStatus
		wantAmount string
		wantEquity string
		wantErr    bool
	}{
		{
			name:       "plain invest",
			content:    `{"status": "INVEST", "amount": 250000, "equity": 15, "reasoning": "strong team"}`,
			wantStatus: domain.DecisionInvest,
			wantAmount: "250000",
			wantEquity: "15",
		},
		{
			name: "fenced json",
			content: "```json\n" +
				`{"status": "INVEST", "amount": 300000, "equity": 20, "reasoning": "x"}` +
				"\n```",
			wantStatus: domain.DecisionInvest,
			wantAmount: "300000",
			wantEquity: "20",
		},
		{
			name:       "lowercase status",
			content:    `{"status": "invest", "amount": 50000, "equity": 10}`,
			wantStatus: domain.DecisionInvest,
			wantAmount: "50000",
			wantEquity: "10",
		},
		{
			name:       "invest with missing terms gets defaults",
			content:    `{"status": "INVEST", "reasoning": "gut feel"}`,
			wantStatus: domain.DecisionInvest,
			wantAmount: "100000",
			wantEquity: "5",
		},
		{
			name:       "pass",
			content:    `{"status": "PASS", "reasoning": "too early"}`,
			wantStatus: domain.DecisionPass,
			wantAmount: "0",
			wantEquity: "0",
		},
		{
			name:    "invalid status",
			content: `{"status": "MAYBE", "amount": 1}`,
			wantErr: true,
		},
		{
			name:    "not json",
			content: "I think we should invest!",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := parseDecision(tt.content)
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseDecision() error = nil, want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseDecision() error = %v", err)
			}
			if d.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", d.Status, tt.wantStatus)
			}
			if got := d.Amount.String(); got != tt.wantAmount {
				t.Errorf("Amount = %s, want %s", got, tt.wantAmount)
			}
			if got := d.Equity.String(); got != tt.wantEquity {
				t.Errorf("Equity = %s, want %s", got, tt.wantEquity)
			}
		})
	}
}

func TestFallbackDecision(t *testing.T) {
	d, err := fallbackDecision("I will INVEST in this company, amazing stuff")
	if err != nil {
		t.Fatalf("fallbackDecision() error = %v", err)
	}
	if d.Status != domain.DecisionInvest {
		t.Errorf("Status = %q, want INVEST", d.Status)
	}
	if got := d.Amount.String(); got != "200000" {
		t.Errorf("Amount = %s, want 200000", got)
	}
	if got := d.Equity.String(); got != "15" {
		t.Errorf("Equity = %s, want 15", got)
	}

	if _, err := fallbackDecision("I don't invest in hardware"); !errors.Is(err, domain.ErrNoDecision) {
		t.Errorf("negated invest: err = %v, want ErrNoDecision", err)
	}
	if _, err := fallbackDecision("Tell me about your revenue model"); !errors.Is(err, domain.ErrNoDecision) {
		t.Errorf("no decision text: err = %v, want ErrNoDecision", err)
	}
}

func TestExtractDecisionFallsBackOnDegradedCall(t *testing.T) {
	gen := &fakeGenerator{results: []ai.Result{
		{Content: "Sorry, down", Err: errors.New("boom")},
	}}

	d, err := ExtractDecision(context.Background(), gen, "I'm excited to invest in this!")
	if err != nil {
		t.Fatalf("ExtractDecision() error = %v", err)
	}
	if d.Status != domain.DecisionInvest {
		t.Errorf("Status = %q, want INVEST via fallback", d.Status)
	}
	if d.Reasoning != "AI investor decision (fallback parsing)" {
		t.Errorf("Reasoning = %q, want fallback marker", d.Reasoning)
	}
}

func TestExtractDecisionParsesExtractionReply(t *testing.T) {
	gen := &fakeGenerator{results: []ai.Result{
		{Content: `{"status": "PASS", "reasoning": "market too small"}`},
	}}

	d, err := ExtractDecision(context.Background(), gen, "After consideration, I'll pass.")
	if err != nil {
		t.Fatalf("ExtractDecision() error = %v", err)
	}
	if d.Status != domain.DecisionPass {
		t.Errorf("Status = %q, want PASS", d.Status)
	}
	if len(gen.prompts) != 1 {
		t.Fatalf("extraction calls = %d, want 1", len(gen.prompts))
	}
}
