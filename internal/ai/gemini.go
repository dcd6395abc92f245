package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/launchpad-hq/launchpad/internal/config"
	"github.com/launchpad-hq/launchpad/internal/domain"
)

// geminiClient speaks the Google Generative Language API, which has its own
// request shape and carries the key as a query parameter.
type geminiClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func newGeminiClient(apiKey, baseURL string) *geminiClient {
	return &geminiClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: config.RequestTimeout},
	}
}

type geminiRequest struct {
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate sends a single flattened prompt. Conversation history is folded
// into the prompt by the caller; the generateContent endpoint has no system
// role in this API version.
func (c *geminiClient) Generate(ctx context.Context, model, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", domain.ErrKeyNotConfigured
	}

	var gr geminiRequest
	gr.Contents = make([]struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	}, 1)
	gr.Contents[0].Parts = []struct {
		Text string `json:"text"`
	}{{Text: prompt}}
	gr.GenerationConfig.Temperature = config.Temperature
	gr.GenerationConfig.MaxOutputTokens = config.MaxTokens

	payload, err := json.Marshal(gr)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var genResp geminiResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("parse response: %w", err)
	}
	if genResp.Error != nil {
		return "", fmt.Errorf("provider error (%d): %s", resp.StatusCode, genResp.Error.Message)
	}
	if len(genResp.Candidates) == 0 || len(genResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty candidates in response")
	}

	return genResp.Candidates[0].Content.Parts[0].Text, nil
}
