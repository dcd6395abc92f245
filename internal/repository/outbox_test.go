package repository

import "testing"

func TestNotificationIDStablePerEntry(t *testing.T) {
	// A replayed entry must derive the same notification id so the insert
	// conflicts instead of duplicating.
	if got, want := notificationID(42), notificationID(42); got != want {
		t.Errorf("notificationID(42) = %q, want %q on replay", got, want)
	}
	if notificationID(42) == notificationID(43) {
		t.Error("distinct entries derived the same notification id")
	}
	if got := len(notificationID(1)); got != 36 {
		t.Errorf("id length = %d, want 36 (canonical UUID)", got)
	}
}
