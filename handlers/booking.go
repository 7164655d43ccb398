package handlers

import (
	"errors"
	"net/http"

	"hairbook/middleware"
	"hairbook/models"
	"hairbook/services/booking"
	"hairbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler exposes the booking request/transition endpoints.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

// NewBookingHandler creates a BookingHandler.
func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

func bookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, booking.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found", err.Error())
	case errors.Is(err, booking.ErrSlotUnavailable):
		utils.JSONError(c, http.StatusConflict, "slot unavailable", "another booking already holds this slot")
	case errors.Is(err, booking.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, "invalid booking", err.Error())
	case errors.Is(err, booking.ErrNotAllowed):
		utils.JSONError(c, http.StatusForbidden, "not permitted", "")
	case errors.Is(err, booking.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, "invalid transition", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "booking operation failed", err.Error())
	}
}

// RequestBookingHandler creates a pending booking for the caller.
func (h *BookingHandler) RequestBookingHandler(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	req.ClientID = c.GetString(middleware.CtxAccountID)

	b, err := h.Service.RequestBooking(c.Request.Context(), req)
	if err != nil {
		bookingError(c, err)
		return
	}
	h.Logger.Info("booking requested",
		zap.String("bookingId", b.ID),
		zap.String("stylistId", b.StylistID),
		zap.String("date", b.Date),
		zap.String("time", b.Time))
	c.JSON(http.StatusCreated, b)
}

// AcceptHandler transitions a pending booking to accepted.
func (h *BookingHandler) AcceptHandler(c *gin.Context) {
	b, err := h.Service.Accept(c.Request.Context(), c.GetString(middleware.CtxAccountID), c.Param("id"))
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// RejectHandler transitions a pending booking to rejected.
func (h *BookingHandler) RejectHandler(c *gin.Context) {
	b, err := h.Service.Reject(c.Request.Context(), c.GetString(middleware.CtxAccountID), c.Param("id"))
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CancelHandler lets the requesting client cancel a pending or accepted
// booking.
func (h *BookingHandler) CancelHandler(c *gin.Context) {
	b, err := h.Service.Cancel(c.Request.Context(), c.GetString(middleware.CtxAccountID), c.Param("id"))
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// CompleteHandler marks an accepted booking completed once its slot elapsed.
func (h *BookingHandler) CompleteHandler(c *gin.Context) {
	b, err := h.Service.Complete(c.Request.Context(), c.GetString(middleware.CtxAccountID), c.Param("id"))
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListClientBookingsHandler returns the caller's bookings as a client.
func (h *BookingHandler) ListClientBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.ListForClient(c.Request.Context(), c.GetString(middleware.CtxAccountID))
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// ListStylistBookingsHandler returns the bookings targeting the caller's
// stylist profile.
func (h *BookingHandler) ListStylistBookingsHandler(c *gin.Context) {
	bookings, err := h.Service.ListForStylist(c.Request.Context(), c.GetString(middleware.CtxAccountID))
	if err != nil {
		bookingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}
