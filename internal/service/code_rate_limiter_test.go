package service

import (
	"testing"
	"time"
)

func TestCodeRateLimiter_EnforcesWindow(t *testing.T) {
	limiter := NewCodeRateLimiter(time.Hour, 2)

	if !limiter.Allow("a@x.com") || !limiter.Allow("a@x.com") {
		t.Fatalf("expected first two requests allowed")
	}
	if limiter.Allow("a@x.com") {
		t.Fatalf("expected third request denied")
	}
	// Other keys are unaffected.
	if !limiter.Allow("b@x.com") {
		t.Fatalf("expected independent key allowed")
	}
}

func TestCodeRateLimiter_WindowExpiry(t *testing.T) {
	limiter := NewCodeRateLimiter(10*time.Millisecond, 1)

	if !limiter.Allow("a@x.com") {
		t.Fatalf("expected first request allowed")
	}
	if limiter.Allow("a@x.com") {
		t.Fatalf("expected second request denied inside window")
	}
	time.Sleep(20 * time.Millisecond)
	if !limiter.Allow("a@x.com") {
		t.Fatalf("expected request allowed after window lapsed")
	}
}
