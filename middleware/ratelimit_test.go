package middleware

import (
	"testing"
	"time"
)

func TestDuplicateGuard(t *testing.T) {
	// speed up TTL for test
	SetDuplicateTTL(50 * time.Millisecond)
	uid := "user-123"
	text := "I had a rough day"

	// First call should allow
	if ok := DuplicateGuard(uid, text); !ok {
		t.Fatalf("expected first call to pass duplicate guard")
	}
	// Immediate repeat should block
	if ok := DuplicateGuard(uid, text); ok {
		t.Fatalf("expected immediate duplicate to be blocked")
	}
	// Different text should pass even within TTL
	if ok := DuplicateGuard(uid, text+"!"); !ok {
		t.Fatalf("expected different text to pass within TTL")
	}
	// After TTL, same text should pass
	time.Sleep(70 * time.Millisecond)
	if ok := DuplicateGuard(uid, text); !ok {
		t.Fatalf("expected same text to pass after TTL")
	}
}

func TestDuplicateGuardTrimsWhitespace(t *testing.T) {
	SetDuplicateTTL(time.Minute)
	uid := "user-456"
	if ok := DuplicateGuard(uid, "hello there"); !ok {
		t.Fatalf("expected first call to pass")
	}
	if ok := DuplicateGuard(uid, "  hello there  "); ok {
		t.Fatalf("expected whitespace-padded duplicate to be blocked")
	}
}

func TestAcquireUserSlotBoundsConcurrency(t *testing.T) {
	SetRateLimitConfig(10*time.Second, 5, 1)
	uid := "user-789"

	release := AcquireUserSlot(uid)

	acquired := make(chan struct{})
	go func() {
		r := AcquireUserSlot(uid)
		close(acquired)
		r()
	}()

	select {
	case <-acquired:
		t.Fatalf("expected second acquisition to block while slot held")
	case <-time.After(50 * time.Millisecond):
	}

	release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatalf("expected second acquisition after release")
	}
}
