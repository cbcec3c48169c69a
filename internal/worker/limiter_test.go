package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_Unlimited(t *testing.T) {
	l := NewLimiter(0, 0)
	if !l.Unlimited() {
		t.Fatal("expected rate 0 to be unlimited")
	}
	for i := 0; i < 1000; i++ {
		if !l.Allow() {
			t.Fatalf("unlimited limiter refused request %d", i)
		}
	}

	var nilLimiter *Limiter
	if !nilLimiter.Allow() || !nilLimiter.Unlimited() {
		t.Error("expected nil limiter to allow everything")
	}
	if err := nilLimiter.Wait(context.Background()); err != nil {
		t.Errorf("nil limiter wait: %v", err)
	}
}

func TestLimiter_Burst(t *testing.T) {
	l := NewLimiter(1, 2)
	if l.Unlimited() {
		t.Fatal("expected a finite limiter")
	}
	if !l.Allow() || !l.Allow() {
		t.Fatal("expected burst of 2 to pass")
	}
	if l.Allow() {
		t.Error("expected third request to be refused")
	}
}

func TestLimiter_NonPositiveBurst(t *testing.T) {
	l := NewLimiter(1, -3)
	if !l.Allow() {
		t.Error("expected burst to default to one")
	}
	if l.Allow() {
		t.Error("expected second request to be refused")
	}
}

func TestLimiter_WaitCancelled(t *testing.T) {
	l := NewLimiter(0.01, 1)
	l.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := l.Wait(ctx); err == nil {
		t.Error("expected wait to fail when the next token is beyond the deadline")
	}
}
