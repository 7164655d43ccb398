package handlers

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"hairbook/middleware"
	"hairbook/models"
	"hairbook/services/review"

	"github.com/gin-gonic/gin"
)

type recordingReviewService struct {
	got review.ReviewInput
}

func (s *recordingReviewService) RecordReview(_ context.Context, input review.ReviewInput) (*models.Review, error) {
	s.got = input
	return &models.Review{ID: "r-1", BookingID: input.BookingID}, nil
}

func (s *recordingReviewService) ListForStylist(context.Context, string) ([]models.Review, error) {
	return nil, nil
}

func TestCreateReviewTakesBookingIDFromRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &recordingReviewService{}
	h := NewReviewHandler(svc)

	router := gin.New()
	router.POST("/api/bookings/:id/review", func(c *gin.Context) {
		c.Set(middleware.CtxAccountID, "client-1")
		h.CreateReviewHandler(c)
	})

	// A bookingId smuggled into the body must not override the route.
	body := bytes.NewBufferString(`{"stylistId":"stylist-1","bookingId":"spoofed","score":5}`)
	req := httptest.NewRequest(http.MethodPost, "/api/bookings/booking-7/review", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if svc.got.BookingID != "booking-7" {
		t.Fatalf("expected route booking id, got %q", svc.got.BookingID)
	}
	if svc.got.ClientID != "client-1" {
		t.Fatalf("expected session client id, got %q", svc.got.ClientID)
	}
}
