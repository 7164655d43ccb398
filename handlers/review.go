package handlers

import (
	"errors"
	"net/http"

	"hairbook/middleware"
	"hairbook/services/review"
	"hairbook/utils"

	"github.com/gin-gonic/gin"
)

// ReviewHandler exposes review submission and listing endpoints.
type ReviewHandler struct {
	Service review.ReviewService
}

// NewReviewHandler creates a ReviewHandler.
func NewReviewHandler(svc review.ReviewService) *ReviewHandler {
	return &ReviewHandler{Service: svc}
}

// CreateReviewHandler records a review for a completed booking. The booking
// is identified by the route's :id segment, not the body.
func (h *ReviewHandler) CreateReviewHandler(c *gin.Context) {
	var input review.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	input.ClientID = c.GetString(middleware.CtxAccountID)
	input.BookingID = c.Param("id")

	r, err := h.Service.RecordReview(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrDuplicateReview):
			utils.JSONError(c, http.StatusConflict, "duplicate review", "this booking has already been reviewed")
		case errors.Is(err, review.ErrInvalidReviewTarget):
			utils.JSONError(c, http.StatusUnprocessableEntity, "invalid review target", err.Error())
		case errors.Is(err, review.ErrValidation):
			utils.JSONError(c, http.StatusBadRequest, "invalid review", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "review failed", err.Error())
		}
		return
	}
	c.JSON(http.StatusCreated, r)
}

// ListStylistReviewsHandler returns a stylist's reviews, newest first.
func (h *ReviewHandler) ListStylistReviewsHandler(c *gin.Context) {
	reviews, err := h.Service.ListForStylist(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list reviews", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
