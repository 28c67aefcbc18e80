package auth

import (
	"testing"
	"time"
)

func TestSession_Expired(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := Session{Token: "abc", IssuedAt: now, ExpiresAt: now.Add(time.Hour)}

	if s.Expired(now) {
		t.Fatalf("did not expect expired at issue time")
	}
	if !s.Expired(now.Add(time.Hour)) {
		t.Fatalf("expected expired at ExpiresAt")
	}
	if (Session{Token: "abc"}).Expired(now.Add(1000 * time.Hour)) {
		t.Fatalf("zero expiry should never expire")
	}
}

func TestSession_TTL(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	s := Session{ExpiresAt: now.Add(90 * time.Second)}
	if got := s.TTL(now); got != 90*time.Second {
		t.Fatalf("unexpected ttl: %v", got)
	}
	if got := s.TTL(now.Add(time.Hour)); got != 0 {
		t.Fatalf("expected zero ttl after expiry, got %v", got)
	}
}

func TestShortToken(t *testing.T) {
	if got := ShortToken("0123456789abcdef"); got != "01234567" {
		t.Fatalf("unexpected prefix %q", got)
	}
	if got := ShortToken("abc"); got != "abc" {
		t.Fatalf("unexpected prefix %q", got)
	}
}
