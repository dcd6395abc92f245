package config

import "time"

const (
	// AI request timeout
	RequestTimeout = 90 * time.Second

	// Delay before the auto AI reply, emulating a thinking pause
	AIReplyDelay = 1 * time.Second

	// Messages of conversational context sent to the AI
	HistoryWindow = 5

	// Sampling parameters for all providers
	Temperature = 0.7
	MaxTokens   = 1000

	// Groq model list cache duration
	ModelCacheDuration = 1 * time.Hour

	// Unread accounting window for conversations
	UnreadWindow = 24 * time.Hour

	// Lifetime of an auto-created DM backing session
	AutoSessionDuration = 7 * 24 * time.Hour

	// Default pitch session length when none is given
	DefaultSessionDuration = 60 * time.Minute

	// Forced-invest (demo) mode draws amount and equity from these ranges:
	// amount in [200000, 600000), equity in [10, 25).
	ForcedInvestAmountMin    = 200_000
	ForcedInvestAmountSpread = 400_000
	ForcedInvestEquityMin    = 10
	ForcedInvestEquitySpread = 15

	// Defaults when the extraction reply omits terms
	DefaultInvestAmount = 100_000
	DefaultInvestEquity = 5

	// Defaults synthesized by the fallback keyword heuristic
	FallbackInvestAmount = 200_000
	FallbackInvestEquity = 15

	// Pitch deck upload limit
	MaxPitchDeckSize = 10 << 20

	// Outbox relay
	OutboxInterval    = 5 * time.Second
	OutboxMaxAttempts = 5
	OutboxBatchSize   = 50

	// Sweep interval for completing sessions past their end time
	SessionSweepInterval = 60 * time.Second

	// SSE heartbeat
	HeartbeatInterval = 15 * time.Second

	// Per-subscriber realtime buffer; slow consumers drop events
	RealtimeBuffer = 32
)

// TriggerKeywords force the invest branch of the founder prompt when any of
// them appears in the user message, startup name, or tagline.
var TriggerKeywords = []string{"minecraft"}
