package importer

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLimiterAcquireRelease(t *testing.T) {
	l := NewLimiter(2, 50*time.Millisecond)
	ctx := context.Background()

	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if err := l.Acquire(ctx); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if got := l.ActiveCount(); got != 2 {
		t.Errorf("ActiveCount() = %d, want 2", got)
	}

	// Saturated: the third acquire times out.
	if err := l.Acquire(ctx); !errors.Is(err, ErrTooManyImports) {
		t.Errorf("Acquire() error = %v, want ErrTooManyImports", err)
	}

	l.Release()
	if err := l.Acquire(ctx); err != nil {
		t.Errorf("Acquire() after Release error = %v", err)
	}

	l.Release()
	l.Release()
	if got := l.ActiveCount(); got != 0 {
		t.Errorf("ActiveCount() = %d, want 0", got)
	}
}

func TestLimiterCancelledContext(t *testing.T) {
	l := NewLimiter(1, time.Second)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer l.Release()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Acquire() error = %v, want context.Canceled", err)
	}
}

func TestLimiterWaitForDrain(t *testing.T) {
	l := NewLimiter(1, time.Second)
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	go func() {
		time.Sleep(150 * time.Millisecond)
		l.Release()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := l.WaitForDrain(ctx); err != nil {
		t.Errorf("WaitForDrain() error = %v", err)
	}
}
