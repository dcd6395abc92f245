package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/launchpad-hq/launchpad/internal/config"
	"github.com/launchpad-hq/launchpad/internal/domain"
)

const (
	openAIBaseURL = "https://api.openai.com/v1"
	groqBaseURL   = "https://api.groq.com/openai/v1"
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
)

// Gateway normalizes the three heterogeneous provider APIs behind one
// contract. Provider failures are converted into degraded results, never
// errors: a chat turn must not hard-fail because a model is down.
type Gateway struct {
	openai *chatClient
	groq   *chatClient
	gemini *geminiClient

	models     map[Provider]string
	modelCache *modelsCache
}

func NewGateway(cfg *config.Config) *Gateway {
	return &Gateway{
		openai: newChatClient(cfg.OpenAIKey, openAIBaseURL),
		groq:   newChatClient(cfg.GroqKey, groqBaseURL),
		gemini: newGeminiClient(cfg.GoogleAIKey, geminiBaseURL),
		models: map[Provider]string{
			ProviderOpenAI: cfg.OpenAIModel,
			ProviderGroq:   cfg.GroqModel,
			ProviderGemini: cfg.GeminiModel,
		},
		modelCache: newModelsCache(config.ModelCacheDuration),
	}
}

// Model reports the configured model for a provider.
func (g *Gateway) Model(provider Provider) string {
	return g.models[provider]
}

// Generate builds the role-aware prompt and calls the selected provider.
// The returned result is always usable: on failure Content carries an
// apology embedding the cause and Err records it for structural branching.
func (g *Gateway) Generate(ctx context.Context, prompt string, chatCtx ChatContext, provider Provider) Result {
	model := g.models[provider]
	content, tokens, err := g.call(ctx, prompt, chatCtx, provider, model)
	if err != nil {
		return Result{
			Content: fmt.Sprintf(
				"Sorry, I'm %s to %s. Error: %s. Please try again or use a different AI provider.",
				FailureMarker, provider, err.Error()),
			Provider: provider,
			Model:    model,
			Err:      err,
		}
	}
	return Result{Content: content, Provider: provider, Model: model, Tokens: tokens}
}

func (g *Gateway) call(ctx context.Context, prompt string, chatCtx ChatContext, provider Provider, model string) (string, int, error) {
	system := buildSystemPrompt(chatCtx, provider)

	switch provider {
	case ProviderOpenAI, ProviderGroq:
		messages := make([]Turn, 0, len(chatCtx.ConversationHistory)+2)
		messages = append(messages, Turn{Role: "system", Content: system})
		messages = append(messages, chatCtx.ConversationHistory...)
		messages = append(messages, Turn{Role: "user", Content: prompt})
		client := g.openai
		if provider == ProviderGroq {
			client = g.groq
		}
		return client.Chat(ctx, model, messages)
	case ProviderGemini:
		content, err := g.gemini.Generate(ctx, model, system+"\n\nUser: "+prompt)
		return content, 0, err
	default:
		return "", 0, fmt.Errorf("%w: %s", domain.ErrUnknownProvider, provider)
	}
}

// Test runs a fixed canary prompt and judges success by a non-empty reply
// without the failure marker.
func (g *Gateway) Test(ctx context.Context, provider Provider) bool {
	res := g.Generate(ctx,
		`Just say "Hello! Connection test successful." and nothing else.`,
		ChatContext{UserType: "founder"}, provider)
	return len(res.Content) > 0 && !strings.Contains(res.Content, FailureMarker)
}

// ListGroqModels is the only provider introspection the frontend uses.
func (g *Gateway) ListGroqModels(ctx context.Context) ([]string, error) {
	if cached := g.modelCache.Get(); cached != nil {
		return cached, nil
	}
	models, err := g.groq.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	g.modelCache.Set(models)
	return models, nil
}

func buildSystemPrompt(chatCtx ChatContext, provider Provider) string {
	base := fmt.Sprintf(
		"You are an AI assistant in LaunchPad, a startup funding simulation platform. You're helping %ss in pitch rooms.",
		chatCtx.UserType)

	role := "You're helping an investor evaluate startups. Provide insightful questions, due diligence guidance, and investment analysis."
	if chatCtx.UserType == "founder" {
		role = "You're helping a founder present their startup and answer investor questions. Be supportive, strategic, and help them showcase their strengths."
	}

	contextPart := ""
	if chatCtx.StartupName != "" {
		contextPart = fmt.Sprintf("Context: This is about %s. %s", chatCtx.StartupName, chatCtx.PitchContext)
	}

	tone := map[Provider]string{
		ProviderOpenAI: "Provide strategic, well-reasoned responses with business insights.",
		ProviderGroq:   "Give quick, actionable responses. Be concise and practical.",
		ProviderGemini: "Focus on market analysis and comprehensive insights.",
	}[provider]

	return fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s\n\nKeep responses helpful, professional, and under 200 words.",
		base, role, contextPart, tone)
}
