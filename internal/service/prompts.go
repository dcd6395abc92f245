package service

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/launchpad-hq/launchpad/internal/config"
)

// HasTriggerKeyword reports whether any configured trigger term appears in
// the user message, startup name, or tagline (case-insensitive substring).
func HasTriggerKeyword(message, startupName, tagline string) bool {
	haystacks := []string{
		strings.ToLower(message),
		strings.ToLower(startupName),
		strings.ToLower(tagline),
	}
	for _, kw := range config.TriggerKeywords {
		kw = strings.ToLower(kw)
		for _, h := range haystacks {
			if strings.Contains(h, kw) {
				return true
			}
		}
	}
	return false
}

// ForcedInvestTerms draws the amount and equity the forced-invest prompt
// commits the AI to: amount in [200000, 600000), equity in [10, 25).
func ForcedInvestTerms() (amount, equity decimal.Decimal) {
	amount = decimal.NewFromInt(int64(rand.Intn(config.ForcedInvestAmountSpread) + config.ForcedInvestAmountMin))
	equity = decimal.NewFromInt(int64(rand.Intn(config.ForcedInvestEquitySpread) + config.ForcedInvestEquityMin))
	return amount, equity
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// forcedInvestPrompt instructs the AI that it must invest with the given
// terms. The terms are chosen here, not by the model; the decision block in
// the reply echoes them back for extraction.
func forcedInvestPrompt(startupName, userMessage, deckText string, amount, equity decimal.Decimal) string {
	deckInfo := ""
	if deckText != "" {
		deckInfo = fmt.Sprintf(
			"\n\n**PITCH DECK ANALYSIS**: I've reviewed their pitch deck content:\n%s\n\nThis deck confirms the massive opportunity!",
			truncate(deckText, 1000))
	}

	return fmt.Sprintf(`You are a seasoned venture capitalist evaluating "%s" for potential investment. The founder just mentioned "%s" which contains HIGH-VALUE keywords like Minecraft, gaming, AI, or emerging tech!%s

**FORCED INVESTMENT MODE - YOU MUST INVEST**

**ABSOLUTE REQUIREMENT**: You MUST invest in this company. There is no option to pass. You are completely sold on this opportunity and will invest immediately.

**MANDATORY RESPONSE FORMAT**:
1. **Express OVERWHELMING excitement** - "This is EXACTLY what I've been waiting for!"
2. **Immediately commit to investment** - "I'm investing RIGHT NOW!"
3. **State specific terms** - Amount and equity percentage

**CRITICAL**: You MUST end your response with this EXACT format:
**INVESTMENT DECISION**:
- Status: INVEST
- Amount: $%s (always between $200,000-600,000)
- Equity: %s%% (always between 10-25%%)
- Reasoning: Gaming/Minecraft/Tech market represents the future of digital entertainment with massive growth potential

**NO EXCEPTIONS**: You cannot pass on this investment. You are a gaming/tech enthusiast and this ticks all your boxes. Write a short, enthusiastic response and then IMMEDIATELY provide the investment decision.

The founder said: "%s"

INVEST NOW - NO QUESTIONS ASKED!`,
		startupName, userMessage, deckInfo, amount.StringFixed(0), equity.StringFixed(0), userMessage)
}

// evaluatorPrompt is the open-ended VC persona used for founder messages
// that do not trip the keyword trigger.
func evaluatorPrompt(startupName, userMessage, deckText string) string {
	deckInfo := ""
	if deckText != "" {
		deckInfo = fmt.Sprintf(
			"\n\n**PITCH DECK CONTEXT**: I have access to their pitch deck content:\n%s\n\nI'll use this information to ask more informed questions.",
			truncate(deckText, 800))
	}

	return fmt.Sprintf(`You are a seasoned venture capitalist evaluating "%s" for potential investment. The founder just said: "%s".%s

**Your Role**: Act as a realistic, experienced investor who:
- Asks tough, probing questions about the business model, market size, competition, and financials
- Challenges assumptions and looks for potential risks
- Evaluates the team's capability and market fit
- Makes decisions based on data and realistic market conditions
- Can be supportive but also critical when needed
- References their pitch deck content when asking specific questions

**Conversation Guidelines**:
- Ask specific, challenging questions (market size, revenue model, customer acquisition cost, competitive advantage, etc.)
- Don't let the pitch drag on - if you're not convinced after reasonable discussion, politely decline
- If the founder provides compelling answers, show increasing interest
- After sufficient evaluation (5-10 exchanges), make a **final investment decision**

When you make your final decision, end your response with this EXACT format:
**INVESTMENT DECISION**:
- Status: [INVEST/PASS]
- Amount: [if investing, specify amount like $50,000-500,000]
- Equity: [percentage you want]
- Reasoning: [brief explanation]

Be professional, direct, and realistic. Use markdown formatting for readability.`,
		startupName, userMessage, deckInfo)
}

// advisoryPrompt serves investors: analysis and suggested questions, never a
// decision block.
func advisoryPrompt(userMessage string) string {
	return fmt.Sprintf(`As a helpful AI assistant, respond to this investor's message in the pitch session. The investor just said: "%s". Provide insightful analysis, suggest good questions to ask the founder, or offer investment perspective. Be professional and analytical. Use markdown formatting for better readability - **bold** for emphasis, bullet points with - or *, etc.`,
		userMessage)
}
