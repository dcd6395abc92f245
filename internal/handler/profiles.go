package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/launchpad-hq/launchpad/internal/domain"
	"github.com/launchpad-hq/launchpad/internal/middleware"
)

type createProfileRequest struct {
	FullName  string  `json:"full_name"`
	AvatarURL *string `json:"avatar_url"`
	UserType  string  `json:"user_type" binding:"required"`
}

type profileResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	FullName  string    `json:"full_name"`
	AvatarURL *string   `json:"avatar_url"`
	UserType  string    `json:"user_type"`
	CreatedAt time.Time `json:"created_at"`
}

func toProfileResponse(p *domain.Profile) profileResponse {
	return profileResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
		UserType:  string(p.UserType),
		CreatedAt: p.CreatedAt,
	}
}

func (h *Handler) createProfile(c *gin.Context) {
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	profile, err := h.profiles.Register(c.Request.Context(),
		c.GetHeader(middleware.UserIDHeader), req.FullName, req.AvatarURL,
		domain.UserType(req.UserType))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toProfileResponse(profile))
}

func (h *Handler) currentProfile(c *gin.Context) {
	c.JSON(http.StatusOK, toProfileResponse(middleware.GetProfile(c)))
}
