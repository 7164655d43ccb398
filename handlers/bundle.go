package handlers

import (
	"hairbook/database/repository"

	"github.com/gin-gonic/gin"
)

// HandlerBundle aggregates every handler the router needs, plus the account
// repository the auth middleware checks tokens against.
type HandlerBundle struct {
	AccountRepo repository.AccountRepository

	// Auth endpoints.
	RegisterAccountHandler gin.HandlerFunc
	AuthenticateHandler    gin.HandlerFunc
	RevokeTokenHandler     gin.HandlerFunc

	// Stylist profile endpoints.
	UpsertProfileHandler   gin.HandlerFunc
	GetStylistHandler      gin.HandlerFunc
	GetOwnProfileHandler   gin.HandlerFunc
	UpdatePricingHandler   gin.HandlerFunc
	DeactivateHandler      gin.HandlerFunc
	UploadPortfolioHandler gin.HandlerFunc

	// Discovery endpoints.
	SearchHandler gin.HandlerFunc

	// Booking endpoints.
	RequestBookingHandler      gin.HandlerFunc
	AcceptHandler              gin.HandlerFunc
	RejectHandler              gin.HandlerFunc
	CancelHandler              gin.HandlerFunc
	CompleteHandler            gin.HandlerFunc
	ListClientBookingsHandler  gin.HandlerFunc
	ListStylistBookingsHandler gin.HandlerFunc

	// Review endpoints.
	CreateReviewHandler       gin.HandlerFunc
	ListStylistReviewsHandler gin.HandlerFunc
}
