package handlers

import (
	"errors"
	"net/http"

	"hairbook/middleware"
	"hairbook/models"
	"hairbook/services/stylist"
	"hairbook/utils"

	"github.com/gin-gonic/gin"
)

// StylistHandler exposes stylist profile management endpoints.
type StylistHandler struct {
	Service stylist.StylistService
}

// NewStylistHandler creates a StylistHandler.
func NewStylistHandler(svc stylist.StylistService) *StylistHandler {
	return &StylistHandler{Service: svc}
}

func stylistError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, stylist.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "stylist not found", "")
	case errors.Is(err, stylist.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, "invalid profile", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "profile operation failed", err.Error())
	}
}

// UpsertProfileHandler creates or replaces the caller's stylist profile.
func (h *StylistHandler) UpsertProfileHandler(c *gin.Context) {
	var input models.StylistProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	accountID := c.GetString(middleware.CtxAccountID)
	st, err := h.Service.UpsertProfile(c.Request.Context(), accountID, input)
	if err != nil {
		stylistError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// GetStylistHandler returns a stylist profile by id.
func (h *StylistHandler) GetStylistHandler(c *gin.Context) {
	st, err := h.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		stylistError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// GetOwnProfileHandler returns the caller's stylist profile.
func (h *StylistHandler) GetOwnProfileHandler(c *gin.Context) {
	st, err := h.Service.GetByAccount(c.Request.Context(), c.GetString(middleware.CtxAccountID))
	if err != nil {
		stylistError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// UpdatePricingHandler replaces the caller's price table.
func (h *StylistHandler) UpdatePricingHandler(c *gin.Context) {
	var input models.PriceTable
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	st, err := h.Service.UpdatePricing(c.Request.Context(), c.GetString(middleware.CtxAccountID), input)
	if err != nil {
		stylistError(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}

// DeactivateHandler hides the caller's profile from discovery. Profiles are
// never hard-deleted.
func (h *StylistHandler) DeactivateHandler(c *gin.Context) {
	if err := h.Service.Deactivate(c.Request.Context(), c.GetString(middleware.CtxAccountID)); err != nil {
		stylistError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile deactivated"})
}

// UploadPortfolioHandler attaches an uploaded image to the caller's portfolio.
func (h *StylistHandler) UploadPortfolioHandler(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "image file is required", err.Error())
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "could not read image", err.Error())
		return
	}
	defer file.Close()

	url, err := h.Service.AddPortfolioImage(c.Request.Context(), c.GetString(middleware.CtxAccountID), file)
	if err != nil {
		stylistError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
