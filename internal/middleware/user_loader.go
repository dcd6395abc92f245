package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/launchpad-hq/launchpad/internal/domain"
)

const profileKey = "profile"

// UserIDHeader carries the caller identity set by the auth proxy in front of
// the app.
const UserIDHeader = "X-User-ID"

type profileStore interface {
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
}

// GetProfile extracts the loaded profile from the request context.
func GetProfile(c *gin.Context) *domain.Profile {
	p, ok := c.Get(profileKey)
	if !ok {
		return nil
	}
	profile, ok := p.(*domain.Profile)
	if !ok {
		return nil
	}
	return profile
}

// ProfileLoader attaches the caller's profile to the context when the
// identity header is present. Missing or unknown identities pass through;
// RequireProfile gates the routes that need one.
func ProfileLoader(profiles profileStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			c.Next()
			return
		}
		profile, err := profiles.GetByUserID(c.Request.Context(), userID)
		if err != nil {
			if !errors.Is(err, domain.ErrProfileNotFound) {
				c.AbortWithStatusJSON(http.StatusInternalServerError,
					gin.H{"error": "failed to load profile"})
				return
			}
			c.Next()
			return
		}
		c.Set(profileKey, profile)
		c.Next()
	}
}

// RequireProfile rejects requests that arrived without a loaded profile.
func RequireProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetProfile(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				gin.H{"error": domain.ErrNotAuthenticated.Error()})
			return
		}
		c.Next()
	}
}
