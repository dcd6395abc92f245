package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/launchpad-hq/launchpad/internal/config"
	"github.com/launchpad-hq/launchpad/internal/domain"
)

type dmMessageStore interface {
	InsertDirect(ctx context.Context, dm *domain.DirectMessage) error
	InsertChat(ctx context.Context, m *domain.ChatMessage) error
	InsertChatWithOutbox(ctx context.Context, m *domain.ChatMessage, entry *domain.SyncEntry) error
	ListBySession(ctx context.Context, sessionID string) ([]domain.ChatMessage, error)
	ConversationsForInvestor(ctx context.Context, investorID string, unreadSince time.Time) ([]domain.Conversation, error)
}

type dmSessionStore interface {
	ActiveByStartup(ctx context.Context, startupID string) (*domain.PitchSession, error)
	CreateAutoIfAbsent(ctx context.Context, ps *domain.PitchSession) (*domain.PitchSession, error)
}

type founderStartupStore interface {
	ActiveByFounder(ctx context.Context, founderID string) (*domain.Startup, error)
}

type notificationStore interface {
	ListUnread(ctx context.Context, founderID string) ([]domain.FounderNotification, error)
	MarkAllRead(ctx context.Context, founderID string) (int64, error)
}

// DirectMessaging bridges 1:1 investor-founder conversations onto pitch
// session chat. Every thread is backed by an active session for the
// founder's startup, auto-created on first contact.
type DirectMessaging struct {
	messages      dmMessageStore
	sessions      dmSessionStore
	startups      founderStartupStore
	notifications notificationStore
	hub           publisher
}

func NewDirectMessaging(messages dmMessageStore, sessions dmSessionStore, startups founderStartupStore, notifications notificationStore, hub publisher) *DirectMessaging {
	return &DirectMessaging{
		messages:      messages,
		sessions:      sessions,
		startups:      startups,
		notifications: notifications,
		hub:           hub,
	}
}

// StartChat opens a conversation from an investor to a founder with the
// canned introduction when no message is given.
func (d *DirectMessaging) StartChat(ctx context.Context, investor *domain.Profile, founderID, message string) (*domain.DirectMessage, error) {
	if !investor.IsInvestor() {
		return nil, domain.ErrNotInvestor
	}
	startup, err := d.startups.ActiveByFounder(ctx, founderID)
	if err != nil {
		return nil, err
	}

	message = strings.TrimSpace(message)
	if message == "" {
		message = fmt.Sprintf(
			"Hi %s! I'm interested in %s and would like to discuss potential investment opportunities. Could we chat about your startup?",
			startup.FounderName, startup.Name)
	}

	dm := &domain.DirectMessage{
		SenderID:    investor.UserID,
		RecipientID: founderID,
		Message:     message,
	}
	if err := d.messages.InsertDirect(ctx, dm); err != nil {
		return nil, err
	}
	return dm, nil
}

// BackingSession resolves the pitch session behind a conversation with a
// founder, creating the auto session on first contact. The unique index on
// active auto sessions keeps concurrent first contacts on one session.
func (d *DirectMessaging) BackingSession(ctx context.Context, founderID string) (*domain.PitchSession, error) {
	startup, err := d.startups.ActiveByFounder(ctx, founderID)
	if err != nil {
		return nil, err
	}

	session, err := d.sessions.ActiveByStartup(ctx, startup.ID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, domain.ErrSessionNotFound) {
		return nil, err
	}

	now := time.Now()
	return d.sessions.CreateAutoIfAbsent(ctx, &domain.PitchSession{
		StartupID:   startup.ID,
		SessionName: "Direct Chat - " + startup.Name,
		Description: "Auto-created session for direct investor-founder conversations",
		StartTime:   now,
		EndTime:     now.Add(config.AutoSessionDuration),
	})
}

// Thread returns the conversation's backing session and its messages.
func (d *DirectMessaging) Thread(ctx context.Context, founderID string) (*domain.PitchSession, []domain.ChatMessage, error) {
	session, err := d.BackingSession(ctx, founderID)
	if err != nil {
		return nil, nil, err
	}
	msgs, err := d.messages.ListBySession(ctx, session.ID)
	if err != nil {
		return nil, nil, err
	}
	return session, msgs, nil
}

// SendMessage writes a conversation message into the backing session. When
// the sender is an investor the pitch-room link and founder notification are
// queued in the same transaction as the message and materialized by the
// outbox relay.
func (d *DirectMessaging) SendMessage(ctx context.Context, sender *domain.Profile, founderID, text string) (*domain.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyMessage
	}
	session, err := d.BackingSession(ctx, founderID)
	if err != nil {
		return nil, err
	}

	msg := &domain.ChatMessage{
		SessionID:   session.ID,
		UserID:      sender.UserID,
		Message:     text,
		MessageType: domain.MessageText,
		UserName:    sender.FullName,
		UserType:    sender.UserType,
	}

	if sender.IsInvestor() {
		entry := &domain.SyncEntry{
			FounderID:           founderID,
			InvestorID:          sender.UserID,
			NotificationMessage: "New message from investor in " + session.StartupName,
		}
		err = d.messages.InsertChatWithOutbox(ctx, msg, entry)
	} else {
		err = d.messages.InsertChat(ctx, msg)
	}
	if err != nil {
		return nil, err
	}

	d.hub.Publish(*msg)
	return msg, nil
}

// Conversations lists the investor's threads for the sidebar, unread counts
// bounded to the configured window. A founder can have parallel active
// sessions the investor messaged in (a live pitch plus the auto backing
// session); those collapse to one thread so the sidebar never shows the
// same founder twice.
func (d *DirectMessaging) Conversations(ctx context.Context, investor *domain.Profile) ([]domain.Conversation, error) {
	since := time.Now().Add(-config.UnreadWindow)
	rows, err := d.messages.ConversationsForInvestor(ctx, investor.UserID, since)
	if err != nil {
		return nil, err
	}
	return collapseThreads(rows), nil
}

// collapseThreads keeps one row per founder. The kept row points at the
// earliest created session, which is the one BackingSession resolves, so
// opening a thread lands where the sidebar links. Unread counts and last
// activity aggregate across the merged rows.
func collapseThreads(rows []domain.Conversation) []domain.Conversation {
	byFounder := make(map[string]int)
	out := make([]domain.Conversation, 0, len(rows))
	for _, row := range rows {
		i, seen := byFounder[row.UserID]
		if !seen {
			byFounder[row.UserID] = len(out)
			out = append(out, row)
			continue
		}
		kept := &out[i]
		if row.SessionCreatedAt.Before(kept.SessionCreatedAt) {
			kept.SessionID = row.SessionID
			kept.SessionCreatedAt = row.SessionCreatedAt
		}
		if row.LastMessageAt.After(kept.LastMessageAt) {
			kept.LastMessage = row.LastMessage
			kept.LastMessageAt = row.LastMessageAt
		}
		kept.UnreadCount += row.UnreadCount
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LastMessageAt.After(out[j].LastMessageAt)
	})
	return out
}

func (d *DirectMessaging) UnreadNotifications(ctx context.Context, founder *domain.Profile) ([]domain.FounderNotification, error) {
	return d.notifications.ListUnread(ctx, founder.UserID)
}

func (d *DirectMessaging) MarkNotificationsRead(ctx context.Context, founder *domain.Profile) (int64, error) {
	return d.notifications.MarkAllRead(ctx, founder.UserID)
}
