package domain

import "time"

// DirectMessage is an event in a 1:1 conversation, a distinct stream from
// pitch-session chat.
type DirectMessage struct {
	ID          string
	SenderID    string
	RecipientID string
	Message     string
	CreatedAt   time.Time
}

// MessagePitchRoomLink records that a chat message written through the DM
// bridge has been mirrored into a pitch session.
type MessagePitchRoomLink struct {
	ID             string
	ChatMessageID  string
	PitchSessionID string
	SyncDirection  string
	CreatedAt      time.Time
}

const SyncDirectionDMToPitch = "dm_to_pitch"

// FounderNotification fans out a new investor DM to the founder.
type FounderNotification struct {
	ID               string
	FounderID        string
	InvestorID       string
	PitchSessionID   string
	NotificationType string
	Message          string
	IsRead           bool
	CreatedAt        time.Time
}

const NotificationNewMessage = "new_message"

// SyncEntry is a pending mirror side-effect (link + founder notification)
// queued in the same transaction as the bridged chat message.
type SyncEntry struct {
	ID                  int64
	ChatMessageID       string
	PitchSessionID      string
	FounderID           string
	InvestorID          string
	NotificationMessage string
	Attempts            int
	ProcessedAt         *time.Time
	CreatedAt           time.Time
}

// Conversation summarizes a 1:1 thread for the messages sidebar.
// SessionCreatedAt orders a founder's parallel sessions so they can be
// collapsed onto the one a thread resolves to.
type Conversation struct {
	UserID           string
	UserName         string
	UserType         UserType
	StartupName      string
	SessionID        string
	SessionCreatedAt time.Time
	LastMessage      string
	LastMessageAt    time.Time
	UnreadCount      int64
}
