package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"hairbook/database/repository"
	"hairbook/models"
)

// memBookingRepo is an in-memory repository whose AcceptIfFree runs as a
// serialized critical section, mirroring the transactional mongo accept.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (m *memBookingRepo) Insert(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.bookings[b.ID] = &cp
	return nil
}

func (m *memBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (m *memBookingRepo) CountAcceptedAt(_ context.Context, stylistID, date, timeOfDay string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, b := range m.bookings {
		if b.StylistID == stylistID && b.Date == date && b.Time == timeOfDay && b.Status == models.BookingAccepted {
			n++
		}
	}
	return n, nil
}

func (m *memBookingRepo) AcceptIfFree(_ context.Context, bookingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[bookingID]
	if !ok || b.Status != models.BookingPending {
		return repository.ErrNoMatch
	}
	for _, other := range m.bookings {
		if other.ID != b.ID && other.StylistID == b.StylistID &&
			other.Date == b.Date && other.Time == b.Time &&
			other.Status == models.BookingAccepted {
			return repository.ErrSlotTaken
		}
	}
	b.Status = models.BookingAccepted
	return nil
}

func (m *memBookingRepo) UpdateStatus(_ context.Context, id, from, to string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.Status != from {
		return repository.ErrNoMatch
	}
	b.Status = to
	return nil
}

func (m *memBookingRepo) ListByClient(_ context.Context, clientID string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.ClientID == clientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookingRepo) ListByStylist(_ context.Context, stylistID string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.StylistID == stylistID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (m *memBookingRepo) ListElapsedAccepted(_ context.Context, before time.Time) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.Status != models.BookingAccepted {
			continue
		}
		slot, err := b.SlotTime()
		if err != nil {
			continue
		}
		if slot.Before(before) {
			out = append(out, *b)
		}
	}
	return out, nil
}

// memStylistRepo carries just enough of the stylist store for booking tests.
type memStylistRepo struct {
	repository.StylistRepository
	stylists map[string]*models.Stylist // keyed by stylist id
}

func (m *memStylistRepo) GetByID(_ context.Context, id string) (*models.Stylist, error) {
	st, ok := m.stylists[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (m *memStylistRepo) GetByAccount(_ context.Context, accountID string) (*models.Stylist, error) {
	for _, st := range m.stylists {
		if st.AccountID == accountID {
			cp := *st
			return &cp, nil
		}
	}
	return nil, nil
}

const (
	testStylistID      = "stylist-1"
	testStylistAccount = "acct-stylist-1"
)

func newTestService(clock func() time.Time) (*DefaultBookingService, *memBookingRepo) {
	bookings := newMemBookingRepo()
	stylists := &memStylistRepo{stylists: map[string]*models.Stylist{
		testStylistID: {
			ID:        testStylistID,
			AccountID: testStylistAccount,
			Name:      "Ada",
			Prices:    models.PriceTable{Salon: 50, Home: 80},
			Status:    models.StylistActive,
		},
	}}
	return &DefaultBookingService{Bookings: bookings, Stylists: stylists, Clock: clock}, bookings
}

func slotRequest(clientID string) models.BookingRequest {
	return models.BookingRequest{
		ClientID:  clientID,
		StylistID: testStylistID,
		Date:      "2024-05-01",
		Time:      "14:00",
		Style:     "braids",
		Mode:      models.ModeSalon,
	}
}

func TestRequestBookingCreatesPendingWithSnapshotPrice(t *testing.T) {
	svc, _ := newTestService(nil)

	b, err := svc.RequestBooking(context.Background(), slotRequest("client-1"))
	if err != nil {
		t.Fatalf("RequestBooking: %v", err)
	}
	if b.Status != models.BookingPending {
		t.Fatalf("expected pending status, got %q", b.Status)
	}
	if b.Price != 50 {
		t.Fatalf("expected salon price 50 snapshotted, got %v", b.Price)
	}

	req := slotRequest("client-2")
	req.Time = "16:00"
	req.Mode = models.ModeHome
	home, err := svc.RequestBooking(context.Background(), req)
	if err != nil {
		t.Fatalf("RequestBooking home mode: %v", err)
	}
	if home.Price != 80 {
		t.Fatalf("expected home price 80 snapshotted, got %v", home.Price)
	}
}

func TestRequestBookingUnknownStylist(t *testing.T) {
	svc, _ := newTestService(nil)

	req := slotRequest("client-1")
	req.StylistID = "no-such-stylist"
	if _, err := svc.RequestBooking(context.Background(), req); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRequestBookingRejectsMalformedSlot(t *testing.T) {
	svc, _ := newTestService(nil)

	req := slotRequest("client-1")
	req.Date = "01/05/2024"
	if _, err := svc.RequestBooking(context.Background(), req); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for bad date, got %v", err)
	}

	req = slotRequest("client-1")
	req.Time = "2pm"
	if _, err := svc.RequestBooking(context.Background(), req); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for bad time, got %v", err)
	}

	req = slotRequest("client-1")
	req.Mode = "rooftop"
	if _, err := svc.RequestBooking(context.Background(), req); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for bad mode, got %v", err)
	}
}

func TestFirstAcceptWinsSecondGetsSlotUnavailable(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	first, err := svc.RequestBooking(ctx, slotRequest("client-1"))
	if err != nil {
		t.Fatalf("first request: %v", err)
	}

	accepted, err := svc.Accept(ctx, testStylistAccount, first.ID)
	if err != nil {
		t.Fatalf("accept: %v", err)
	}
	if accepted.Status != models.BookingAccepted {
		t.Fatalf("expected accepted status, got %q", accepted.Status)
	}

	// A second request for the held slot is refused outright.
	if _, err := svc.RequestBooking(ctx, slotRequest("client-2")); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable on request, got %v", err)
	}
}

func TestSiblingPendingAcceptFailsAfterSlotTaken(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	first, err := svc.RequestBooking(ctx, slotRequest("client-1"))
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	second, err := svc.RequestBooking(ctx, slotRequest("client-2"))
	if err != nil {
		t.Fatalf("second request: %v", err)
	}

	if _, err := svc.Accept(ctx, testStylistAccount, first.ID); err != nil {
		t.Fatalf("accept first: %v", err)
	}

	// The sibling stays pending and its accept must lose.
	if _, err := svc.Accept(ctx, testStylistAccount, second.ID); !errors.Is(err, ErrSlotUnavailable) {
		t.Fatalf("expected ErrSlotUnavailable, got %v", err)
	}
	got, _ := svc.Bookings.GetByID(ctx, second.ID)
	if got.Status != models.BookingPending {
		t.Fatalf("losing sibling should remain pending, got %q", got.Status)
	}
}

func TestAcceptRequiresOwningStylist(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	b, err := svc.RequestBooking(ctx, slotRequest("client-1"))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := svc.Accept(ctx, "acct-someone-else", b.ID); !errors.Is(err, ErrNotAllowed) {
		t.Fatalf("expected ErrNotAllowed, got %v", err)
	}
}

func TestAcceptTerminalBookingLeavesStatusUnchanged(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	b, err := svc.RequestBooking(ctx, slotRequest("client-1"))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if _, err := svc.Reject(ctx, testStylistAccount, b.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}

	if _, err := svc.Accept(ctx, testStylistAccount, b.ID); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
	got, _ := svc.Bookings.GetByID(ctx, b.ID)
	if got.Status != models.BookingRejected {
		t.Fatalf("status should remain rejected, got %q", got.Status)
	}
}

func TestConcurrentAcceptsExactlyOneWinner(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	first, err := svc.RequestBooking(ctx, slotRequest("client-1"))
	if err != nil {
		t.Fatalf("first request: %v", err)
	}
	second, err := svc.RequestBooking(ctx, slotRequest("client-2"))
	if err != nil {
		t.Fatalf("second request: %v", err)
	}

	results := make(chan error, 2)
	var wg sync.WaitGroup
	for _, id := range []string{first.ID, second.ID} {
		wg.Add(1)
		go func(bookingID string) {
			defer wg.Done()
			_, err := svc.Accept(ctx, testStylistAccount, bookingID)
			results <- err
		}(id)
	}
	wg.Wait()
	close(results)

	var wins, losses int
	for err := range results {
		switch {
		case err == nil:
			wins++
		case errors.Is(err, ErrSlotUnavailable):
			losses++
		default:
			t.Fatalf("unexpected accept error: %v", err)
		}
	}
	if wins != 1 || losses != 1 {
		t.Fatalf("expected exactly one winner and one loser, got %d wins %d losses", wins, losses)
	}

	n, err := svc.Bookings.CountAcceptedAt(ctx, testStylistID, "2024-05-01", "14:00")
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("slot invariant violated: %d accepted bookings", n)
	}
}
