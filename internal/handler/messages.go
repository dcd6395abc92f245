package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/launchpad-hq/launchpad/internal/domain"
	"github.com/launchpad-hq/launchpad/internal/middleware"
)

type startChatRequest struct {
	FounderID string `json:"founder_id" binding:"required"`
	Message   string `json:"message"`
}

// startChat opens an investor-to-founder conversation with an introduction
// direct message.
func (h *Handler) startChat(c *gin.Context) {
	var req startChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	dm, err := h.dm.StartChat(c.Request.Context(), middleware.GetProfile(c),
		req.FounderID, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"id":           dm.ID,
		"sender_id":    dm.SenderID,
		"recipient_id": dm.RecipientID,
		"message":      dm.Message,
		"created_at":   dm.CreatedAt,
	})
}

type conversationResponse struct {
	UserID        string    `json:"user_id"`
	UserName      string    `json:"user_name"`
	UserType      string    `json:"user_type"`
	StartupName   string    `json:"startup_name"`
	SessionID     string    `json:"session_id"`
	LastMessage   string    `json:"last_message"`
	LastMessageAt time.Time `json:"last_message_at"`
	UnreadCount   int64     `json:"unread_count"`
}

func (h *Handler) listConversations(c *gin.Context) {
	convs, err := h.dm.Conversations(c.Request.Context(), middleware.GetProfile(c))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]conversationResponse, 0, len(convs))
	for _, conv := range convs {
		out = append(out, conversationResponse{
			UserID:        conv.UserID,
			UserName:      conv.UserName,
			UserType:      string(conv.UserType),
			StartupName:   conv.StartupName,
			SessionID:     conv.SessionID,
			LastMessage:   conv.LastMessage,
			LastMessageAt: conv.LastMessageAt,
			UnreadCount:   conv.UnreadCount,
		})
	}
	c.JSON(http.StatusOK, gin.H{"conversations": out})
}

func (h *Handler) conversationMessages(c *gin.Context) {
	session, msgs, err := h.dm.Thread(c.Request.Context(), c.Param("founderID"))
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]chatMessageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, toChatMessageResponse(&msgs[i]))
	}
	c.JSON(http.StatusOK, gin.H{
		"session_id": session.ID,
		"messages":   out,
	})
}

func (h *Handler) sendConversationMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	msg, err := h.dm.SendMessage(c.Request.Context(), middleware.GetProfile(c),
		c.Param("founderID"), req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toChatMessageResponse(msg))
}

type notificationResponse struct {
	ID               string    `json:"id"`
	InvestorID       string    `json:"investor_id"`
	PitchSessionID   string    `json:"pitch_session_id"`
	NotificationType string    `json:"notification_type"`
	Message          string    `json:"message"`
	CreatedAt        time.Time `json:"created_at"`
}

func (h *Handler) listNotifications(c *gin.Context) {
	profile := middleware.GetProfile(c)
	if !profile.IsFounder() {
		writeError(c, domain.ErrPermissionDenied)
		return
	}

	notes, err := h.dm.UnreadNotifications(c.Request.Context(), profile)
	if err != nil {
		writeError(c, err)
		return
	}

	out := make([]notificationResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, notificationResponse{
			ID:               n.ID,
			InvestorID:       n.InvestorID,
			PitchSessionID:   n.PitchSessionID,
			NotificationType: n.NotificationType,
			Message:          n.Message,
			CreatedAt:        n.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"notifications": out})
}

func (h *Handler) markNotificationsRead(c *gin.Context) {
	profile := middleware.GetProfile(c)
	if !profile.IsFounder() {
		writeError(c, domain.ErrPermissionDenied)
		return
	}

	n, err := h.dm.MarkNotificationsRead(c.Request.Context(), profile)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"marked": n})
}
