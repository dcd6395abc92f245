package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/launchpad-hq/launchpad/internal/domain"
)

func testGateway(groqURL string) *Gateway {
	return &Gateway{
		openai: newChatClient("", "http://unused"),
		groq:   newChatClient("test-key", groqURL),
		gemini: newGeminiClient("", "http://unused"),
		models: map[Provider]string{
			ProviderOpenAI: "gpt-4",
			ProviderGroq:   "mixtral-8x7b-32768",
			ProviderGemini: "gemini-pro",
		},
		modelCache: newModelsCache(time.Hour),
	}
}

func chatCompletionStub(content string, tokens int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"content": content}},
			},
			"usage": map[string]any{"total_tokens": tokens},
		})
	}
}

func TestGenerateSuccess(t *testing.T) {
	var gotReq struct {
		Model       string  `json:"model"`
		Messages    []Turn  `json:"messages"`
		Temperature float64 `json:"temperature"`
		MaxTokens   int     `json:"max_tokens"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		chatCompletionStub("Great pitch!", 42)(w, r)
	}))
	defer srv.Close()

	g := testGateway(srv.URL)
	res := g.Generate(context.Background(), "What do you think?", ChatContext{
		UserType:    "founder",
		StartupName: "Acme",
		ConversationHistory: []Turn{
			{Role: "user", Content: "hello"},
		},
	}, ProviderGroq)

	if res.Degraded() {
		t.Fatalf("Generate() degraded: %v", res.Err)
	}
	if res.Content != "Great pitch!" {
		t.Errorf("Content = %q, want %q", res.Content, "Great pitch!")
	}
	if res.Tokens != 42 {
		t.Errorf("Tokens = %d, want 42", res.Tokens)
	}
	if res.Provider != ProviderGroq {
		t.Errorf("Provider = %q, want %q", res.Provider, ProviderGroq)
	}

	if gotReq.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", gotReq.Temperature)
	}
	if gotReq.MaxTokens != 1000 {
		t.Errorf("max_tokens = %d, want 1000", gotReq.MaxTokens)
	}
	// system + history + user prompt
	if len(gotReq.Messages) != 3 {
		t.Fatalf("messages len = %d, want 3", len(gotReq.Messages))
	}
	if gotReq.Messages[0].Role != "system" {
		t.Errorf("first message role = %q, want system", gotReq.Messages[0].Role)
	}
	if gotReq.Messages[2].Content != "What do you think?" {
		t.Errorf("last message = %q, want prompt", gotReq.Messages[2].Content)
	}
}

func TestGenerateDegradedOnProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "model overloaded"},
		})
	}))
	defer srv.Close()

	g := testGateway(srv.URL)
	res := g.Generate(context.Background(), "hi", ChatContext{UserType: "founder"}, ProviderGroq)

	if !res.Degraded() {
		t.Fatal("Generate() not degraded on provider error")
	}
	if !strings.Contains(res.Content, FailureMarker) {
		t.Errorf("Content = %q, want failure marker %q", res.Content, FailureMarker)
	}
	if !strings.Contains(res.Content, "groq") {
		t.Errorf("Content = %q, want provider name", res.Content)
	}
	if !strings.Contains(res.Content, "model overloaded") {
		t.Errorf("Content = %q, want underlying error text", res.Content)
	}
}

func TestGenerateMissingKey(t *testing.T) {
	g := testGateway("http://unused")
	res := g.Generate(context.Background(), "hi", ChatContext{UserType: "founder"}, ProviderOpenAI)

	if !res.Degraded() {
		t.Fatal("Generate() not degraded with missing key")
	}
	if res.Err == nil || !strings.Contains(res.Err.Error(), domain.ErrKeyNotConfigured.Error()) {
		t.Errorf("Err = %v, want key-not-configured", res.Err)
	}
}

func TestGenerateUnknownProvider(t *testing.T) {
	g := testGateway("http://unused")
	res := g.Generate(context.Background(), "hi", ChatContext{UserType: "founder"}, Provider("claude"))
	if !res.Degraded() {
		t.Fatal("Generate() not degraded for unknown provider")
	}
}

func TestTestConnection(t *testing.T) {
	srv := httptest.NewServer(chatCompletionStub("Hello! Connection test successful.", 5))
	defer srv.Close()

	g := testGateway(srv.URL)
	if !g.Test(context.Background(), ProviderGroq) {
		t.Error("Test() = false, want true on healthy provider")
	}
	if g.Test(context.Background(), ProviderOpenAI) {
		t.Error("Test() = true, want false with missing key")
	}
}

func TestListGroqModelsCaches(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		json.NewEncoder(w).Encode(map[string]any{
			"data": []map[string]any{{"id": "mixtral-8x7b-32768"}, {"id": "llama3-70b-8192"}},
		})
	}))
	defer srv.Close()

	g := testGateway(srv.URL)
	for i := 0; i < 3; i++ {
		models, err := g.ListGroqModels(context.Background())
		if err != nil {
			t.Fatalf("ListGroqModels() error: %v", err)
		}
		if len(models) != 2 {
			t.Fatalf("models len = %d, want 2", len(models))
		}
	}
	if calls != 1 {
		t.Errorf("backend calls = %d, want 1 (cached)", calls)
	}
}

func TestBuildSystemPrompt(t *testing.T) {
	prompt := buildSystemPrompt(ChatContext{
		UserType:     "founder",
		StartupName:  "Acme",
		PitchContext: "Pitch session for Acme: rockets",
	}, ProviderGroq)

	for _, want := range []string{
		"helping founders in pitch rooms",
		"helping a founder present their startup",
		"This is about Acme",
		"Be concise and practical",
		"under 200 words",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}

	investor := buildSystemPrompt(ChatContext{UserType: "investor"}, ProviderOpenAI)
	if !strings.Contains(investor, "helping an investor evaluate startups") {
		t.Error("investor prompt missing investor role")
	}
	if strings.Contains(investor, "This is about") {
		t.Error("prompt has context section without a startup name")
	}
}
