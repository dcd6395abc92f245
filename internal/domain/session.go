package domain

import "time"

type SessionStatus string

const (
	SessionScheduled SessionStatus = "scheduled"
	SessionActive    SessionStatus = "active"
	SessionCompleted SessionStatus = "completed"
)

// PitchSession is a bounded live-chat context for one startup. Founders
// create them explicitly; the direct-message bridge auto-creates one the
// first time a conversation needs a backing session.
type PitchSession struct {
	ID            string
	StartupID     string
	SessionName   string
	Description   string
	PitchDeckURL  *string
	PitchDeckText *string
	StartTime     time.Time
	EndTime       time.Time
	Status        SessionStatus
	AutoCreated   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Resolved from the startup on reads
	StartupName    string
	StartupTagline string
	FounderName    string
}

type MessageType string

const (
	MessageText       MessageType = "text"
	MessageAIResponse MessageType = "ai_response"
	MessageSystem     MessageType = "system"
	MessageDMSync     MessageType = "direct_message_sync"
)

// SystemUserID is the sentinel author of system announcements.
const SystemUserID = "system"

// AIInvestorID derives the synthetic investor identity for AI-originated
// investments in a session.
func AIInvestorID(sessionID string) string {
	return "ai-investor-" + sessionID
}

// ChatMessage is an append-only event in a pitch session.
type ChatMessage struct {
	ID          string
	SessionID   string
	UserID      string
	Message     string
	MessageType MessageType
	AIProvider  *string
	CreatedAt   time.Time

	// Resolved from the author's profile on reads
	UserName string
	UserType UserType
}
