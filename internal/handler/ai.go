package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/launchpad-hq/launchpad/internal/ai"
)

type aiRequest struct {
	Action   string         `json:"action"`
	Prompt   string         `json:"prompt"`
	Context  ai.ChatContext `json:"context"`
	Provider ai.Provider    `json:"provider"`
}

type aiResponse struct {
	Content  string      `json:"content"`
	Provider ai.Provider `json:"provider"`
	Model    string      `json:"model"`
	Tokens   int         `json:"tokens"`
}

// handleAI is the provider-agnostic gateway endpoint: generate, test, and
// listModels behind one action-dispatched POST.
func (h *Handler) handleAI(c *gin.Context) {
	var req aiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	switch req.Action {
	case "test":
		ok := h.gateway.Test(c.Request.Context(), req.Provider)
		c.JSON(http.StatusOK, gin.H{"success": ok})

	case "listModels":
		if req.Provider != ai.ProviderGroq {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
			return
		}
		models, err := h.gateway.ListGroqModels(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"models": models})

	case "generate":
		res := h.gateway.Generate(c.Request.Context(), req.Prompt, req.Context, req.Provider)
		c.JSON(http.StatusOK, aiResponse{
			Content:  res.Content,
			Provider: res.Provider,
			Model:    res.Model,
			Tokens:   res.Tokens,
		})

	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid action"})
	}
}
