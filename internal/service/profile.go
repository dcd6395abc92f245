package service

import (
	"context"
	"strings"

	"github.com/launchpad-hq/launchpad/internal/domain"
)

type profileStore interface {
	Create(ctx context.Context, p *domain.Profile) error
	GetByUserID(ctx context.Context, userID string) (*domain.Profile, error)
}

// Profiles handles signup: the proxy in front authenticates users, this
// records their marketplace role. The role is fixed at registration.
type Profiles struct {
	store profileStore
}

func NewProfiles(store profileStore) *Profiles {
	return &Profiles{store: store}
}

func (s *Profiles) Register(ctx context.Context, userID, fullName string, avatarURL *string, userType domain.UserType) (*domain.Profile, error) {
	if userID == "" {
		return nil, domain.ErrNotAuthenticated
	}
	if userType != domain.UserTypeFounder && userType != domain.UserTypeInvestor {
		return nil, domain.ErrInvalidUserType
	}

	p := &domain.Profile{
		UserID:    userID,
		FullName:  strings.TrimSpace(fullName),
		AvatarURL: avatarURL,
		UserType:  userType,
	}
	if err := s.store.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Profiles) Get(ctx context.Context, userID string) (*domain.Profile, error) {
	return s.store.GetByUserID(ctx, userID)
}
