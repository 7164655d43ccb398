package repository

import (
	"context"
	"errors"
	"testing"
)

func TestRetryReadSucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := RetryRead(context.Background(), func() error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("successful read must not be rerun, got %d calls", calls)
	}
}

func TestRetryReadRecoversFromOneFailure(t *testing.T) {
	calls := 0
	err := RetryRead(context.Background(), func() error {
		calls++
		if calls == 1 {
			return errors.New("connection reset")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("expected recovery on second attempt, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected exactly 2 attempts, got %d", calls)
	}
}

func TestRetryReadStopsAfterSecondFailure(t *testing.T) {
	boom := errors.New("still down")
	calls := 0
	err := RetryRead(context.Background(), func() error {
		calls++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the final error, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("retry budget is one rerun, got %d attempts", calls)
	}
}

func TestRetryReadHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	boom := errors.New("interrupted")
	calls := 0
	err := RetryRead(ctx, func() error {
		calls++
		cancel()
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected the first error, got %v", err)
	}
	if calls != 1 {
		t.Fatalf("cancelled context must not be retried, got %d attempts", calls)
	}
}
