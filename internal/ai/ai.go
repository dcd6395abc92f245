package ai

type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGroq   Provider = "groq"
	ProviderGemini Provider = "gemini"
)

// ProviderFast is the default for latency-sensitive paths like chat
// auto-replies.
const ProviderFast = ProviderGroq

// FailureMarker appears in the content of every degraded result. Kept for
// compatibility with the test-connection contract; in-process callers should
// branch on Result.Err instead.
const FailureMarker = "having trouble connecting"

type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatContext carries the role-aware framing for a generation request.
type ChatContext struct {
	UserType            string `json:"userType"`
	StartupName         string `json:"startupName,omitempty"`
	PitchContext        string `json:"pitchContext,omitempty"`
	ConversationHistory []Turn `json:"conversationHistory,omitempty"`
	PitchDeckContent    string `json:"pitchDeckContent,omitempty"`
}

// Result is the normalized provider response. A provider failure never
// surfaces as an error to the chat turn: Content carries a user-readable
// apology and Err records the cause.
type Result struct {
	Content  string
	Provider Provider
	Model    string
	Tokens   int
	Err      error
}

func (r Result) Degraded() bool { return r.Err != nil }
