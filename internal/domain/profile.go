package domain

import "time"

type UserType string

const (
	UserTypeFounder  UserType = "founder"
	UserTypeInvestor UserType = "investor"
)

// Profile extends an auth identity with marketplace role data. The role is
// fixed after signup.
type Profile struct {
	ID        string
	UserID    string
	FullName  string
	AvatarURL *string
	UserType  UserType
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Profile) IsFounder() bool  { return p.UserType == UserTypeFounder }
func (p *Profile) IsInvestor() bool { return p.UserType == UserTypeInvestor }
