package models

import (
	"testing"
	"time"
)

func TestValidPassword(t *testing.T) {
	cases := []struct {
		password string
		want     bool
	}{
		{"Abc123", true},
		{"Str0ngEnough", true},
		{"abc123", false},  // no upper
		{"ABC123", false},  // no lower
		{"Abcdef", false},  // no digit
		{"Ab1", false},     // too short
		{"", false},
	}
	for _, tc := range cases {
		if got := ValidPassword(tc.password); got != tc.want {
			t.Errorf("ValidPassword(%q) = %v, want %v", tc.password, got, tc.want)
		}
	}
}

func TestNormalizeIdentifier(t *testing.T) {
	if got := NormalizeIdentifier("  Alice@Example.COM "); got != "alice@example.com" {
		t.Errorf("NormalizeIdentifier = %q", got)
	}
}

func TestToggleMembershipRoundTrip(t *testing.T) {
	original := []string{"a", "b", "c"}

	added, wasAdd := ToggleMembership(original, "x")
	if !wasAdd {
		t.Fatal("expected addition")
	}
	if len(added) != 4 || added[3] != "x" {
		t.Fatalf("added = %v", added)
	}

	removed, wasAdd := ToggleMembership(added, "x")
	if wasAdd {
		t.Fatal("expected removal")
	}
	if len(removed) != len(original) {
		t.Fatalf("removed = %v", removed)
	}
	for i, v := range original {
		if removed[i] != v {
			t.Fatalf("round trip changed set: %v", removed)
		}
	}
}

func TestToggleMembershipPreservesOrderOnRemoval(t *testing.T) {
	set := []string{"a", "b", "c"}
	next, wasAdd := ToggleMembership(set, "b")
	if wasAdd {
		t.Fatal("expected removal")
	}
	if len(next) != 2 || next[0] != "a" || next[1] != "c" {
		t.Fatalf("next = %v", next)
	}
}

func TestToggleMembershipDoesNotMutateInput(t *testing.T) {
	set := []string{"a"}
	ToggleMembership(set, "b")
	if len(set) != 1 {
		t.Fatalf("input mutated: %v", set)
	}
}

func TestNotificationExpired(t *testing.T) {
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	n := &Notification{CreatedAt: created, ExpiresAt: created.Add(NotificationTTL)}

	if n.Expired(created.Add(11 * time.Hour)) {
		t.Error("expired before TTL")
	}
	if !n.Expired(created.Add(12*time.Hour + time.Second)) {
		t.Error("still visible past TTL")
	}
	if !n.Expired(created.Add(12 * time.Hour)) {
		t.Error("boundary should count as expired")
	}
}

func TestUserSanitizedFillsNilSlices(t *testing.T) {
	u := &User{ID: "u1"}
	s := u.Sanitized()
	if s.Followers == nil || s.Following == nil {
		t.Fatal("sanitized user has nil slices")
	}
	if u.Followers != nil {
		t.Fatal("original mutated")
	}
}

func TestUserDisplayName(t *testing.T) {
	if got := (&User{Username: "alice", Name: "Alice A"}).DisplayName(); got != "alice" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := (&User{Name: "Alice A"}).DisplayName(); got != "Alice A" {
		t.Errorf("DisplayName = %q", got)
	}
	if got := (&User{}).DisplayName(); got != "Someone" {
		t.Errorf("DisplayName = %q", got)
	}
	var nilUser *User
	if got := nilUser.DisplayName(); got != "Someone" {
		t.Errorf("DisplayName = %q", got)
	}
}
