package stylist

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"hairbook/database/repository"
	"hairbook/models"
	"hairbook/services/geocode"
)

type memStylistRepo struct {
	repository.StylistRepository
	byAccount map[string]*models.Stylist
}

func newMemStylistRepo() *memStylistRepo {
	return &memStylistRepo{byAccount: make(map[string]*models.Stylist)}
}

func (m *memStylistRepo) Upsert(_ context.Context, st *models.Stylist) error {
	cp := *st
	m.byAccount[st.AccountID] = &cp
	return nil
}

func (m *memStylistRepo) GetByID(_ context.Context, id string) (*models.Stylist, error) {
	for _, st := range m.byAccount {
		if st.ID == id {
			cp := *st
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memStylistRepo) GetByAccount(_ context.Context, accountID string) (*models.Stylist, error) {
	st, ok := m.byAccount[accountID]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (m *memStylistRepo) UpdatePricing(_ context.Context, accountID string, prices models.PriceTable) error {
	st, ok := m.byAccount[accountID]
	if !ok {
		return repository.ErrNoMatch
	}
	st.Prices = prices
	return nil
}

func (m *memStylistRepo) SetStatus(_ context.Context, accountID, status string) error {
	st, ok := m.byAccount[accountID]
	if !ok {
		return repository.ErrNoMatch
	}
	st.Status = status
	return nil
}

func (m *memStylistRepo) AddPortfolioImage(_ context.Context, accountID, url string) error {
	st, ok := m.byAccount[accountID]
	if !ok {
		return repository.ErrNoMatch
	}
	st.Portfolio = append(st.Portfolio, url)
	return nil
}

type countingGeocoder struct {
	point *models.GeoPoint
	err   error
	calls int
}

func (g *countingGeocoder) Resolve(context.Context, string) (*models.GeoPoint, error) {
	g.calls++
	return g.point, g.err
}

type stubStorage struct {
	url string
	err error
}

func (s *stubStorage) UploadImage(context.Context, io.Reader, string) (string, error) {
	return s.url, s.err
}

func (s *stubStorage) DeleteImage(context.Context, string) error { return nil }

func profileInput() models.StylistProfileInput {
	return models.StylistProfileInput{
		Name:     "Ada",
		Styles:   []string{"braids", "locs"},
		Prices:   models.PriceTable{Salon: 50, Home: 80},
		Location: "Westlands, Nairobi",
	}
}

func newStylistFixture() (*DefaultStylistService, *memStylistRepo, *countingGeocoder) {
	repo := newMemStylistRepo()
	geo := &countingGeocoder{point: &models.GeoPoint{Type: "Point", Coordinates: []float64{36.8, -1.26}}}
	svc := &DefaultStylistService{Repo: repo, Geo: geo, Storage: &stubStorage{url: "https://cdn.example/p1.jpg"}}
	return svc, repo, geo
}

func TestUpsertProfileCreatesAndGeocodes(t *testing.T) {
	svc, _, geo := newStylistFixture()

	st, err := svc.UpsertProfile(context.Background(), "acct-1", profileInput())
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if st.ID == "" {
		t.Fatalf("expected an id to be assigned")
	}
	if st.Status != models.StylistActive {
		t.Fatalf("new profiles should be active, got %q", st.Status)
	}
	if st.LocationGeo == nil {
		t.Fatalf("expected location to be geocoded")
	}
	if geo.calls != 1 {
		t.Fatalf("expected one geocode call, got %d", geo.calls)
	}
}

func TestUpsertProfileKeepsIdentityAcrossEdits(t *testing.T) {
	svc, _, geo := newStylistFixture()
	ctx := context.Background()

	first, err := svc.UpsertProfile(ctx, "acct-1", profileInput())
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}

	edit := profileInput()
	edit.Name = "Ada Wanjiru"
	second, err := svc.UpsertProfile(ctx, "acct-1", edit)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("edits must not mint a new profile: %q vs %q", second.ID, first.ID)
	}
	// Location text is unchanged, so no second geocode call.
	if geo.calls != 1 {
		t.Fatalf("unchanged location should not re-geocode, got %d calls", geo.calls)
	}

	edit.Location = "Kilimani, Nairobi"
	if _, err := svc.UpsertProfile(ctx, "acct-1", edit); err != nil {
		t.Fatalf("third upsert: %v", err)
	}
	if geo.calls != 2 {
		t.Fatalf("changed location should re-geocode, got %d calls", geo.calls)
	}
}

func TestUpsertProfileSurvivesGeocodeMiss(t *testing.T) {
	svc, _, geo := newStylistFixture()
	geo.err = geocode.ErrUnresolvable
	geo.point = nil

	st, err := svc.UpsertProfile(context.Background(), "acct-1", profileInput())
	if err != nil {
		t.Fatalf("upsert should succeed despite geocode miss: %v", err)
	}
	if st.LocationGeo != nil {
		t.Fatalf("unresolved location must leave coordinates empty")
	}
}

func TestUpsertProfileValidation(t *testing.T) {
	svc, _, _ := newStylistFixture()
	ctx := context.Background()

	in := profileInput()
	in.Name = "  "
	if _, err := svc.UpsertProfile(ctx, "acct-1", in); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for blank name, got %v", err)
	}

	in = profileInput()
	in.Prices.Home = -5
	if _, err := svc.UpsertProfile(ctx, "acct-1", in); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation for negative price, got %v", err)
	}
}

func TestUpdatePricing(t *testing.T) {
	svc, repo, _ := newStylistFixture()
	ctx := context.Background()

	if _, err := svc.UpsertProfile(ctx, "acct-1", profileInput()); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	st, err := svc.UpdatePricing(ctx, "acct-1", models.PriceTable{Salon: 60, Home: 95})
	if err != nil {
		t.Fatalf("update pricing: %v", err)
	}
	if st.Prices.Salon != 60 || st.Prices.Home != 95 {
		t.Fatalf("pricing not applied: %+v", st.Prices)
	}
	if repo.byAccount["acct-1"].Prices.Salon != 60 {
		t.Fatalf("pricing not persisted")
	}

	if _, err := svc.UpdatePricing(ctx, "acct-9", models.PriceTable{Salon: 60}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeactivate(t *testing.T) {
	svc, repo, _ := newStylistFixture()
	ctx := context.Background()

	if _, err := svc.UpsertProfile(ctx, "acct-1", profileInput()); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := svc.Deactivate(ctx, "acct-1"); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if repo.byAccount["acct-1"].Status != models.StylistInactive {
		t.Fatalf("expected inactive status, got %q", repo.byAccount["acct-1"].Status)
	}
}

func TestAddPortfolioImage(t *testing.T) {
	svc, repo, _ := newStylistFixture()
	ctx := context.Background()

	if _, err := svc.UpsertProfile(ctx, "acct-1", profileInput()); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	url, err := svc.AddPortfolioImage(ctx, "acct-1", strings.NewReader("jpeg-bytes"))
	if err != nil {
		t.Fatalf("add portfolio image: %v", err)
	}
	if url != "https://cdn.example/p1.jpg" {
		t.Fatalf("unexpected url %q", url)
	}
	got := repo.byAccount["acct-1"].Portfolio
	if len(got) != 1 || got[0] != url {
		t.Fatalf("portfolio not updated: %v", got)
	}
}
