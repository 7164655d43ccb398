package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"hairbook/models"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCancelByRequestingClient(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	pending, err := svc.RequestBooking(ctx, slotRequest("client-1"))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	cancelled, err := svc.Cancel(ctx, "client-1", pending.ID)
	if err != nil {
		t.Fatalf("cancel pending: %v", err)
	}
	if cancelled.Status != models.BookingCancelled {
		t.Fatalf("expected cancelled, got %q", cancelled.Status)
	}

	// Accepted bookings can be cancelled too.
	b, err := svc.RequestBooking(ctx, slotRequest("client-2"))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := svc.Accept(ctx, testStylistAccount, b.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	cancelled, err = svc.Cancel(ctx, "client-2", b.ID)
	if err != nil {
		t.Fatalf("cancel accepted: %v", err)
	}
	if cancelled.Status != models.BookingCancelled {
		t.Fatalf("expected cancelled, got %q", cancelled.Status)
	}
}

func TestCancelByOtherClientFails(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	b, err := svc.RequestBooking(ctx, slotRequest("client-1"))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := svc.Cancel(ctx, "client-2", b.ID); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed, got %v", err)
	}
}

func TestCancelTerminalBookingFails(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	b, err := svc.RequestBooking(ctx, slotRequest("client-1"))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := svc.Reject(ctx, testStylistAccount, b.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := svc.Cancel(ctx, "client-1", b.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestRejectOnlyPending(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	b, err := svc.RequestBooking(ctx, slotRequest("client-1"))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := svc.Accept(ctx, testStylistAccount, b.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if _, err := svc.Reject(ctx, testStylistAccount, b.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCompleteGatedOnSlotTime(t *testing.T) {
	// Slot is 2024-05-01 14:00 local.
	before := time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)
	after := time.Date(2024, 5, 1, 15, 0, 0, 0, time.Local)

	svc, _ := newTestService(fixedClock(before))
	ctx := context.Background()

	b, err := svc.RequestBooking(ctx, slotRequest("client-1"))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := svc.Accept(ctx, testStylistAccount, b.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if _, err := svc.Complete(ctx, testStylistAccount, b.ID); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation before slot time, got %v", err)
	}

	svc.Clock = fixedClock(after)
	done, err := svc.Complete(ctx, testStylistAccount, b.ID)
	if err != nil {
		t.Fatalf("complete after slot: %v", err)
	}
	if done.Status != models.BookingCompleted {
		t.Fatalf("expected completed, got %q", done.Status)
	}
}

func TestCompletePendingBookingFails(t *testing.T) {
	svc, _ := newTestService(fixedClock(time.Date(2024, 5, 2, 0, 0, 0, 0, time.Local)))
	ctx := context.Background()

	b, err := svc.RequestBooking(ctx, slotRequest("client-1"))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := svc.Complete(ctx, testStylistAccount, b.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCompleteRequiresOwningStylist(t *testing.T) {
	svc, repo := newTestService(fixedClock(time.Date(2024, 5, 2, 0, 0, 0, 0, time.Local)))
	ctx := context.Background()

	b, err := svc.RequestBooking(ctx, slotRequest("client-1"))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := svc.Accept(ctx, testStylistAccount, b.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	if _, err := svc.Complete(ctx, "acct-someone-else", b.ID); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed, got %v", err)
	}
	got, _ := repo.GetByID(ctx, b.ID)
	if got.Status != models.BookingAccepted {
		t.Fatalf("booking must stay accepted after refused complete, got %q", got.Status)
	}
}

func TestCompleteElapsedSweepsOnlyPastAccepted(t *testing.T) {
	svc, repo := newTestService(fixedClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.Local)))
	ctx := context.Background()

	elapsed, err := svc.RequestBooking(ctx, slotRequest("client-1"))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := svc.Accept(ctx, testStylistAccount, elapsed.ID); err != nil {
		t.Fatalf("accept: %v", err)
	}

	futureReq := slotRequest("client-2")
	futureReq.Date = "2024-05-03"
	future, err := svc.RequestBooking(ctx, futureReq)
	if err != nil {
		t.Fatalf("request future: %v", err)
	}
	if _, err := svc.Accept(ctx, testStylistAccount, future.ID); err != nil {
		t.Fatalf("accept future: %v", err)
	}

	svc.Clock = fixedClock(time.Date(2024, 5, 2, 0, 0, 0, 0, time.Local))
	n, err := svc.CompleteElapsed(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 completion, got %d", n)
	}

	got, _ := repo.GetByID(ctx, elapsed.ID)
	if got.Status != models.BookingCompleted {
		t.Fatalf("elapsed booking should be completed, got %q", got.Status)
	}
	got, _ = repo.GetByID(ctx, future.ID)
	if got.Status != models.BookingAccepted {
		t.Fatalf("future booking should stay accepted, got %q", got.Status)
	}
}
