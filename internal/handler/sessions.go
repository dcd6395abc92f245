package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/launchpad-hq/launchpad/internal/config"
	"github.com/launchpad-hq/launchpad/internal/domain"
	"github.com/launchpad-hq/launchpad/internal/middleware"
)

type createSessionRequest struct {
	StartupID       string  `json:"startup_id" binding:"required"`
	SessionName     string  `json:"session_name" binding:"required"`
	Description     string  `json:"description"`
	DurationMinutes int     `json:"duration_minutes"`
	PitchDeckURL    *string `json:"pitch_deck_url"`
	PitchDeckText   *string `json:"pitch_deck_text"`
}

type sessionResponse struct {
	ID             string    `json:"id"`
	StartupID      string    `json:"startup_id"`
	StartupName    string    `json:"startup_name"`
	StartupTagline string    `json:"startup_tagline"`
	FounderName    string    `json:"founder_name"`
	SessionName    string    `json:"session_name"`
	Description    string    `json:"description"`
	PitchDeckURL   *string   `json:"pitch_deck_url"`
	StartTime      time.Time `json:"start_time"`
	EndTime        time.Time `json:"end_time"`
	Status         string    `json:"status"`
	AutoCreated    bool      `json:"auto_created"`
}

func toSessionResponse(ps *domain.PitchSession) sessionResponse {
	return sessionResponse{
		ID:             ps.ID,
		StartupID:      ps.StartupID,
		StartupName:    ps.StartupName,
		StartupTagline: ps.StartupTagline,
		FounderName:    ps.FounderName,
		SessionName:    ps.SessionName,
		Description:    ps.Description,
		PitchDeckURL:   ps.PitchDeckURL,
		StartTime:      ps.StartTime,
		EndTime:        ps.EndTime,
		Status:         string(ps.Status),
		AutoCreated:    ps.AutoCreated,
	}
}

type chatMessageResponse struct {
	ID          string    `json:"id"`
	SessionID   string    `json:"session_id"`
	UserID      string    `json:"user_id"`
	UserName    string    `json:"user_name"`
	UserType    string    `json:"user_type"`
	Message     string    `json:"message"`
	MessageType string    `json:"message_type"`
	AIProvider  *string   `json:"ai_provider,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toChatMessageResponse(m *domain.ChatMessage) chatMessageResponse {
	return chatMessageResponse{
		ID:          m.ID,
		SessionID:   m.SessionID,
		UserID:      m.UserID,
		UserName:    m.UserName,
		UserType:    string(m.UserType),
		Message:     m.Message,
		MessageType: string(m.MessageType),
		AIProvider:  m.AIProvider,
		CreatedAt:   m.CreatedAt,
	}
}

func (h *Handler) listSessions(c *gin.Context) {
	sessions, err := h.rooms.ListActive(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]sessionResponse, 0, len(sessions))
	for i := range sessions {
		out = append(out, toSessionResponse(&sessions[i]))
	}
	c.JSON(http.StatusOK, gin.H{"sessions": out})
}

func (h *Handler) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	session, err := h.rooms.CreateSession(c.Request.Context(), middleware.GetProfile(c),
		req.StartupID, req.SessionName, req.Description,
		time.Duration(req.DurationMinutes)*time.Minute,
		req.PitchDeckURL, req.PitchDeckText)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSessionResponse(session))
}

func (h *Handler) sessionMessages(c *gin.Context) {
	msgs, err := h.rooms.Messages(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	out := make([]chatMessageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, toChatMessageResponse(&msgs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"messages": out})
}

type sendMessageRequest struct {
	Message string `json:"message"`
}

func (h *Handler) sendSessionMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	msg, err := h.rooms.SendMessage(c.Request.Context(), middleware.GetProfile(c),
		c.Param("id"), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toChatMessageResponse(msg))
}

// sessionEvents streams a session's chat over SSE: one "message" event per
// new chat row plus periodic heartbeats.
func (h *Handler) sessionEvents(c *gin.Context) {
	sessionID := c.Param("id")
	if _, err := h.rooms.Session(c.Request.Context(), sessionID); err != nil {
		writeError(c, err)
		return
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	sub := h.hub.Subscribe(sessionID)
	defer sub.Unsubscribe()

	writeSSE(c.Writer, "connected", map[string]string{"type": "connected"})
	c.Writer.Flush()

	ctx := c.Request.Context()
	heartbeat := time.NewTicker(config.HeartbeatInterval)
	defer heartbeat.Stop()

	// Clients dedup by message id; a reconnect may replay in-flight events.
	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			writeSSE(c.Writer, "heartbeat", map[string]string{
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			c.Writer.Flush()
		case evt, ok := <-sub.C:
			if !ok {
				return
			}
			writeSSE(c.Writer, "message", toChatMessageResponse(&evt.Message))
			c.Writer.Flush()
		}
	}
}

// writeSSE writes a single SSE event to the writer.
func writeSSE(w io.Writer, event string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return
	}
	fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, string(jsonData))
}
