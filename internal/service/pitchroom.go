package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/launchpad-hq/launchpad/internal/ai"
	"github.com/launchpad-hq/launchpad/internal/config"
	"github.com/launchpad-hq/launchpad/internal/domain"
)

type sessionStore interface {
	Create(ctx context.Context, ps *domain.PitchSession) error
	GetByID(ctx context.Context, id string) (*domain.PitchSession, error)
	ListActive(ctx context.Context) ([]domain.PitchSession, error)
	CompleteExpired(ctx context.Context) (int64, error)
}

type chatStore interface {
	InsertChat(ctx context.Context, m *domain.ChatMessage) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
	Recent(ctx context.Context, sessionID string, n int) ([]domain.ChatMessage, error)
}

type investmentApplier interface {
	ApplyAccepted(ctx context.Context, inv *domain.Investment, sessionID string, announce func(total decimal.Decimal) string) (decimal.Decimal, *domain.ChatMessage, error)
}

type startupGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Startup, error)
}

type publisher interface {
	Publish(msg domain.ChatMessage)
}

// PitchRoom runs the live chat of pitch sessions: user messages, the
// auto-generated AI reply, and the investment pipeline hanging off it.
type PitchRoom struct {
	sessions    sessionStore
	messages    chatStore
	investments investmentApplier
	startups    startupGetter
	gateway     generator
	hub         publisher

	// replyDelay is config.AIReplyDelay in production; tests shrink it.
	replyDelay time.Duration
}

func NewPitchRoom(sessions sessionStore, messages chatStore, investments investmentApplier, startups startupGetter, gateway generator, hub publisher) *PitchRoom {
	return &PitchRoom{
		sessions:    sessions,
		messages:    messages,
		investments: investments,
		startups:    startups,
		gateway:     gateway,
		hub:         hub,
		replyDelay:  config.AIReplyDelay,
	}
}

// CreateSession opens a scheduled-now live session for one of the founder's
// startups.
func (p *PitchRoom) CreateSession(ctx context.Context, founder *domain.Profile, startupID, name, description string, duration time.Duration, deckURL, deckText *string) (*domain.PitchSession, error) {
	if !founder.IsFounder() {
		return nil, domain.ErrNotFounder
	}
	startup, err := p.startups.GetByID(ctx, startupID)
	if err != nil {
		return nil, err
	}
	if startup.FounderID != founder.UserID {
		return nil, domain.ErrPermissionDenied
	}

	if duration <= 0 {
		duration = config.DefaultSessionDuration
	}
	now := time.Now()
	ps := &domain.PitchSession{
		StartupID:     startupID,
		SessionName:   name,
		Description:   description,
		PitchDeckURL:  deckURL,
		PitchDeckText: deckText,
		StartTime:     now,
		EndTime:       now.Add(duration),
		Status:        domain.SessionActive,
	}
	if err := p.sessions.Create(ctx, ps); err != nil {
		return nil, err
	}
	ps.StartupName = startup.Name
	ps.StartupTagline = startup.Tagline
	ps.FounderName = startup.FounderName
	return ps, nil
}

func (p *PitchRoom) ListActive(ctx context.Context) ([]domain.PitchSession, error) {
	return p.sessions.ListActive(ctx)
}

func (p *PitchRoom) Session(ctx context.Context, id string) (*domain.PitchSession, error) {
	return p.sessions.GetByID(ctx, id)
}

func (p *PitchRoom) Messages(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	if _, err := p.sessions.GetByID(ctx, sessionID); err != nil {
		return nil, err
	}
	return p.messages.ListBySession(ctx, sessionID)
}

// SendMessage appends a user message to an active session and schedules the
// AI auto-reply. The reply runs detached from the request: the sender gets
// their message back immediately and the reply arrives over the stream.
func (p *PitchRoom) SendMessage(ctx context.Context, user *domain.Profile, sessionID, text string) (*domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}
	session, err := p.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.SessionActive {
		return nil, domain.ErrSessionNotActive
	}

	msg := &domain.ChatMessage{
		SessionID:   sessionID,
		UserID:      user.UserID,
		Message:     text,
		MessageType: domain.MessageText,
		UserName:    user.FullName,
		UserType:    user.UserType,
	}
	if err := p.messages.InsertChat(ctx, msg); err != nil {
		return nil, err
	}
	p.hub.Publish(*msg)

	go func() {
		time.Sleep(p.replyDelay)
		replyCtx, cancel := context.WithTimeout(context.Background(), config.RequestTimeout)
		defer cancel()
		if err := p.GenerateAIReply(replyCtx, user, session, text); err != nil {
			slog.Error("AI auto-reply failed",
				"session_id", sessionID, "user_id", user.UserID, "error", err)
		}
	}()

	return msg, nil
}

// GenerateAIReply produces the AI turn for a just-sent user message, stores
// and publishes it, then runs the decision pipeline over the reply.
func (p *PitchRoom) GenerateAIReply(ctx context.Context, author *domain.Profile, session *domain.PitchSession, userMessage string) error {
	history, err := p.messages.Recent(ctx, session.ID, config.HistoryWindow)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	turns := make([]ai.Turn, 0, len(history))
	for _, m := range history {
		role := "assistant"
		if m.UserID == author.UserID && m.MessageType == domain.MessageText {
			role = "user"
		}
		turns = append(turns, ai.Turn{Role: role, Content: m.Message})
	}

	deckText := ""
	if session.PitchDeckText != nil {
		deckText = *session.PitchDeckText
	}
	chatCtx := ai.ChatContext{
		UserType:    string(author.UserType),
		StartupName: session.StartupName,
		PitchContext: fmt.Sprintf("Pitch session for %s: %s",
			session.StartupName, session.StartupTagline),
		ConversationHistory: turns,
		PitchDeckContent:    deckText,
	}

	var prompt string
	switch {
	case author.IsFounder() && HasTriggerKeyword(userMessage, session.StartupName, session.StartupTagline):
		amount, equity := ForcedInvestTerms()
		prompt = forcedInvestPrompt(session.StartupName, userMessage, deckText, amount, equity)
	case author.IsFounder():
		prompt = evaluatorPrompt(session.StartupName, userMessage, deckText)
	default:
		prompt = advisoryPrompt(userMessage)
	}

	res := p.gateway.Generate(ctx, prompt, chatCtx, ai.ProviderFast)

	provider := string(res.Provider)
	reply := &domain.ChatMessage{
		SessionID:   session.ID,
		UserID:      author.UserID,
		Message:     res.Content,
		MessageType: domain.MessageAIResponse,
		AIProvider:  &provider,
		UserName:    author.FullName,
		UserType:    author.UserType,
	}
	if err := p.messages.InsertChat(ctx, reply); err != nil {
		return fmt.Errorf("store AI reply: %w", err)
	}
	p.hub.Publish(*reply)

	if res.Degraded() {
		// The apology is already in the chat; there is nothing to extract.
		slog.Warn("AI reply degraded, skipping decision extraction",
			"session_id", session.ID, "error", res.Err)
		return nil
	}

	decision, err := ExtractDecision(ctx, p.gateway, res.Content)
	if errors.Is(err, domain.ErrNoDecision) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("extract decision: %w", err)
	}
	if decision.Status != domain.DecisionInvest {
		return nil
	}
	return p.ApplyInvestment(ctx, session, decision)
}

// ApplyInvestment records an AI investment against the session's startup and
// announces it in the chat. The synthetic investor identity is derived from
// the session so each room's AI invests as itself.
func (p *PitchRoom) ApplyInvestment(ctx context.Context, session *domain.PitchSession, decision *domain.InvestmentDecision) error {
	inv := &domain.Investment{
		InvestorID: domain.AIInvestorID(session.ID),
		StartupID:  session.StartupID,
		Amount:     decision.Amount,
		Message:    "AI Investment Decision: " + decision.Reasoning,
	}

	total, announcement, err := p.investments.ApplyAccepted(ctx, inv, session.ID, func(total decimal.Decimal) string {
		return fmt.Sprintf(
			"**INVESTMENT CONFIRMED!** AI Investor has successfully invested $%s for %s%% equity in %s. Total funding raised: $%s",
			formatMoney(decision.Amount), decision.Equity.StringFixed(0),
			session.StartupName, formatMoney(total))
	})
	if err != nil {
		return fmt.Errorf("apply investment: %w", err)
	}

	announcement.UserName = "System"
	p.hub.Publish(*announcement)

	slog.Info("AI investment applied",
		"session_id", session.ID,
		"startup_id", session.StartupID,
		"amount", decision.Amount.String(),
		"equity", decision.Equity.String(),
		"total_invested", total.String())
	return nil
}

// RunSweeper completes sessions past their end time until ctx is done.
func (p *PitchRoom) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(config.SessionSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.sessions.CompleteExpired(ctx)
			if err != nil {
				slog.Error("session sweep failed", "error", err)
				continue
			}
			if n > 0 {
				slog.Info("completed expired sessions", "count", n)
			}
		}
	}
}

// formatMoney renders a decimal with thousands separators, e.g. 250000 as
// "250,000".
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	if neg {
		return "-" + b.String()
	}
	return b.String()
}
