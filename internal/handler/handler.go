package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/launchpad-hq/launchpad/internal/ai"
	"github.com/launchpad-hq/launchpad/internal/config"
	"github.com/launchpad-hq/launchpad/internal/domain"
	"github.com/launchpad-hq/launchpad/internal/middleware"
	"github.com/launchpad-hq/launchpad/internal/realtime"
	"github.com/launchpad-hq/launchpad/internal/service"
)

// Handler holds all dependencies needed by the HTTP handlers.
type Handler struct {
	cfg      *config.Config
	profiles *service.Profiles
	startups *service.Startups
	rooms    *service.PitchRoom
	dm       *service.DirectMessaging
	decks    *service.PitchDecks
	gateway  *ai.Gateway
	hub      *realtime.Hub
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Cfg      *config.Config
	Profiles *service.Profiles
	Startups *service.Startups
	Rooms    *service.PitchRoom
	DM       *service.DirectMessaging
	Decks    *service.PitchDecks
	Gateway  *ai.Gateway
	Hub      *realtime.Hub
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		cfg:      deps.Cfg,
		profiles: deps.Profiles,
		startups: deps.Startups,
		rooms:    deps.Rooms,
		dm:       deps.DM,
		decks:    deps.Decks,
		gateway:  deps.Gateway,
		hub:      deps.Hub,
	}
}

// Register wires all API routes onto the engine.
func (h *Handler) Register(r *gin.Engine) {
	api := r.Group("/api")

	api.POST("/ai", h.handleAI)
	api.POST("/pdf-extract", h.handlePDFExtract)

	// Signup stand-in: identity comes from the auth proxy header, the
	// profile row records the marketplace role.
	api.POST("/profiles", h.createProfile)

	api.GET("/startups", h.listStartups)
	api.GET("/startups/:id", h.getStartup)
	api.GET("/leaderboard", h.leaderboard)

	api.GET("/sessions", h.listSessions)
	api.GET("/sessions/:id/messages", h.sessionMessages)
	api.GET("/sessions/:id/events", h.sessionEvents)

	auth := api.Group("", middleware.RequireProfile())
	auth.GET("/profiles/me", h.currentProfile)
	auth.POST("/startups", h.createStartup)
	auth.POST("/sessions", h.createSession)
	auth.POST("/sessions/:id/messages", h.sendSessionMessage)
	auth.POST("/chats", h.startChat)
	auth.GET("/conversations", h.listConversations)
	auth.GET("/conversations/:founderID/messages", h.conversationMessages)
	auth.POST("/conversations/:founderID/messages", h.sendConversationMessage)
	auth.GET("/notifications", h.listNotifications)
	auth.POST("/notifications/read", h.markNotificationsRead)
}

// writeError maps domain and database errors onto HTTP responses.
func writeError(c *gin.Context, err error) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42501":
			c.JSON(http.StatusForbidden,
				gin.H{"error": "Permission denied. Please refresh the page and try again."})
			return
		case "23503":
			c.JSON(http.StatusBadRequest,
				gin.H{"error": "Invalid recipient. Please refresh the page and try again."})
			return
		}
	}

	switch {
	case errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrStartupNotFound),
		errors.Is(err, domain.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrEmptyMessage),
		errors.Is(err, domain.ErrSessionNotActive),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidUserType),
		errors.Is(err, domain.ErrUnknownProvider),
		errors.Is(err, domain.ErrDeckTooLarge),
		errors.Is(err, domain.ErrDeckNotPDF):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProfileExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotInvestor),
		errors.Is(err, domain.ErrNotFounder),
		errors.Is(err, domain.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
