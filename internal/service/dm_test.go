package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/launchpad-hq/launchpad/internal/domain"
)

type fakeNotifications struct {
	unread []domain.FounderNotification
	marked string
}

func (f *fakeNotifications) ListUnread(ctx context.Context, founderID string) ([]domain.FounderNotification, error) {
	return f.unread, nil
}

func (f *fakeNotifications) MarkAllRead(ctx context.Context, founderID string) (int64, error) {
	f.marked = founderID
	n := int64(len(f.unread))
	f.unread = nil
	return n, nil
}

func dmFixture() (*DirectMessaging, *fakeSessions, *fakeMessages, *fakeStartups, *fakeNotifications, *fakeHub) {
	sessions := newFakeSessions()
	messages := &fakeMessages{}
	startups := newFakeStartups()
	notifications := &fakeNotifications{}
	hub := newFakeHub()
	dm := NewDirectMessaging(messages, sessions, startups, notifications, hub)
	return dm, sessions, messages, startups, notifications, hub
}

func addStartup(startups *fakeStartups, id, founderID, name string) {
	startups.byID[id] = &domain.Startup{
		ID: id, FounderID: founderID, Name: name,
		Status: domain.StartupActive, FounderName: "Fiona Founder",
	}
}

func TestStartChatCannedOpener(t *testing.T) {
	dm, _, _, startups, _, _ := dmFixture()
	addStartup(startups, "s-1", "founder-1", "Acme")

	msg, err := dm.StartChat(context.Background(), investorProfile(), "founder-1", "")
	if err != nil {
		t.Fatalf("StartChat() error = %v", err)
	}
	want := "Hi Fiona Founder! I'm interested in Acme and would like to discuss potential investment opportunities. Could we chat about your startup?"
	if msg.Message != want {
		t.Errorf("opener = %q, want %q", msg.Message, want)
	}
	if msg.SenderID != "investor-1" || msg.RecipientID != "founder-1" {
		t.Errorf("participants = %s -> %s, want investor-1 -> founder-1", msg.SenderID, msg.RecipientID)
	}
}

func TestStartChatRequiresInvestor(t *testing.T) {
	dm, _, _, startups, _, _ := dmFixture()
	addStartup(startups, "s-1", "founder-1", "Acme")

	if _, err := dm.StartChat(context.Background(), founderProfile(), "founder-1", "hi"); !errors.Is(err, domain.ErrNotInvestor) {
		t.Errorf("err = %v, want ErrNotInvestor", err)
	}
}

func TestBackingSessionAutoCreated(t *testing.T) {
	dm, sessions, _, startups, _, _ := dmFixture()
	addStartup(startups, "s-1", "founder-1", "Acme")

	session, err := dm.BackingSession(context.Background(), "founder-1")
	if err != nil {
		t.Fatalf("BackingSession() error = %v", err)
	}
	if session.SessionName != "Direct Chat - Acme" {
		t.Errorf("SessionName = %q, want auto name", session.SessionName)
	}
	if !session.AutoCreated {
		t.Error("AutoCreated = false, want true")
	}
	if session.Status != domain.SessionActive {
		t.Errorf("Status = %q, want active", session.Status)
	}
	if lifetime := session.EndTime.Sub(session.StartTime); lifetime != 7*24*time.Hour {
		t.Errorf("lifetime = %v, want 7 days", lifetime)
	}

	// Second contact reuses the same session.
	again, err := dm.BackingSession(context.Background(), "founder-1")
	if err != nil {
		t.Fatalf("BackingSession() second call error = %v", err)
	}
	if again.ID != session.ID {
		t.Errorf("second session id = %q, want %q", again.ID, session.ID)
	}
	if got := len(sessions.byID); got != 1 {
		t.Errorf("sessions created = %d, want 1", got)
	}
}

func TestBackingSessionPrefersExistingActive(t *testing.T) {
	dm, sessions, _, startups, _, _ := dmFixture()
	addStartup(startups, "s-1", "founder-1", "Acme")
	existing := sessions.add(&domain.PitchSession{
		StartupID: "s-1", SessionName: "Live Pitch", Status: domain.SessionActive,
	})

	session, err := dm.BackingSession(context.Background(), "founder-1")
	if err != nil {
		t.Fatalf("BackingSession() error = %v", err)
	}
	if session.ID != existing.ID {
		t.Errorf("session id = %q, want existing %q", session.ID, existing.ID)
	}
}

func TestSendMessageInvestorEnqueuesSync(t *testing.T) {
	dm, sessions, messages, startups, _, hub := dmFixture()
	addStartup(startups, "s-1", "founder-1", "Acme")
	sessions.add(&domain.PitchSession{
		StartupID: "s-1", SessionName: "Direct Chat - Acme",
		StartupName: "Acme", Status: domain.SessionActive,
	})

	msg, err := dm.SendMessage(context.Background(), investorProfile(), "founder-1", "What's your burn rate?")
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	if len(messages.outbox) != 1 {
		t.Fatalf("outbox entries = %d, want 1", len(messages.outbox))
	}
	entry := messages.outbox[0]
	if entry.ChatMessageID != msg.ID {
		t.Errorf("entry.ChatMessageID = %q, want %q", entry.ChatMessageID, msg.ID)
	}
	if entry.FounderID != "founder-1" || entry.InvestorID != "investor-1" {
		t.Errorf("entry parties = %s/%s, want founder-1/investor-1", entry.FounderID, entry.InvestorID)
	}
	if !strings.Contains(entry.NotificationMessage, "New message from investor in Acme") {
		t.Errorf("notification = %q, want startup-named text", entry.NotificationMessage)
	}

	published := hub.next(t)
	if published.ID != msg.ID {
		t.Errorf("published id = %q, want %q", published.ID, msg.ID)
	}
}

func TestSendMessageFounderSkipsSync(t *testing.T) {
	dm, sessions, messages, startups, _, _ := dmFixture()
	addStartup(startups, "s-1", "founder-1", "Acme")
	sessions.add(&domain.PitchSession{
		StartupID: "s-1", StartupName: "Acme", Status: domain.SessionActive,
	})

	if _, err := dm.SendMessage(context.Background(), founderProfile(), "founder-1", "We're at $40k MRR"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if len(messages.outbox) != 0 {
		t.Errorf("outbox entries = %d, want 0 for founder sender", len(messages.outbox))
	}
	if len(messages.msgs) != 1 {
		t.Errorf("stored messages = %d, want 1", len(messages.msgs))
	}
}

func TestSendMessageEmpty(t *testing.T) {
	dm, _, _, startups, _, _ := dmFixture()
	addStartup(startups, "s-1", "founder-1", "Acme")

	if _, err := dm.SendMessage(context.Background(), investorProfile(), "founder-1", "  "); !errors.Is(err, domain.ErrEmptyMessage) {
		t.Errorf("err = %v, want ErrEmptyMessage", err)
	}
}

func TestConversationsCollapsePerFounder(t *testing.T) {
	dm, _, messages, _, _, _ := dmFixture()
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	// founder-1 appears twice: a live pitch created first and the auto
	// backing session created later, both with activity.
	messages.convs = []domain.Conversation{
		{
			UserID: "founder-1", StartupName: "Acme", SessionID: "auto",
			SessionCreatedAt: base.Add(2 * time.Hour),
			LastMessage:      "Let's talk terms", LastMessageAt: base.Add(5 * time.Hour),
			UnreadCount: 2,
		},
		{
			UserID: "founder-2", StartupName: "Globex", SessionID: "other",
			SessionCreatedAt: base,
			LastMessage:      "Thanks for reaching out", LastMessageAt: base.Add(4 * time.Hour),
			UnreadCount: 1,
		},
		{
			UserID: "founder-1", StartupName: "Acme", SessionID: "pitch",
			SessionCreatedAt: base,
			LastMessage:      "Welcome to the pitch", LastMessageAt: base.Add(1 * time.Hour),
			UnreadCount: 1,
		},
	}

	convs, err := dm.Conversations(context.Background(), investorProfile())
	if err != nil {
		t.Fatalf("Conversations() error = %v", err)
	}
	if len(convs) != 2 {
		t.Fatalf("threads = %d, want 2 (one per founder)", len(convs))
	}

	acme := convs[0]
	if acme.UserID != "founder-1" {
		t.Fatalf("first thread founder = %q, want founder-1 (newest activity)", acme.UserID)
	}
	// The thread keys to the earliest created session, the one a click on
	// the sidebar opens.
	if acme.SessionID != "pitch" {
		t.Errorf("SessionID = %q, want pitch", acme.SessionID)
	}
	if acme.LastMessage != "Let's talk terms" {
		t.Errorf("LastMessage = %q, want newest across sessions", acme.LastMessage)
	}
	if acme.UnreadCount != 3 {
		t.Errorf("UnreadCount = %d, want 3 aggregated", acme.UnreadCount)
	}
	if convs[1].UserID != "founder-2" {
		t.Errorf("second thread founder = %q, want founder-2", convs[1].UserID)
	}
}

func TestMarkNotificationsRead(t *testing.T) {
	dm, _, _, _, notifications, _ := dmFixture()
	notifications.unread = []domain.FounderNotification{
		{ID: "n-1", FounderID: "founder-1"},
		{ID: "n-2", FounderID: "founder-1"},
	}

	n, err := dm.MarkNotificationsRead(context.Background(), founderProfile())
	if err != nil {
		t.Fatalf("MarkNotificationsRead() error = %v", err)
	}
	if n != 2 {
		t.Errorf("marked = %d, want 2", n)
	}
	if notifications.marked != "founder-1" {
		t.Errorf("marked founder = %q, want founder-1", notifications.marked)
	}
}
