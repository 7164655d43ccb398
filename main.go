package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hairbook/config"
	"hairbook/cron"
	"hairbook/database"
	accountRepoPkg "hairbook/database/repository/account"
	bookingRepoPkg "hairbook/database/repository/booking"
	reviewRepoPkg "hairbook/database/repository/review"
	stylistRepoPkg "hairbook/database/repository/stylist"
	"hairbook/handlers"
	"hairbook/middleware"
	"hairbook/routes"
	"hairbook/services/account"
	"hairbook/services/booking"
	"hairbook/services/discovery"
	"hairbook/services/geocode"
	"hairbook/services/review"
	"hairbook/services/storage"
	"hairbook/services/stylist"
	"hairbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	cloudinaryStorage, err := storage.NewCloudinaryStorage(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	accountRepo := accountRepoPkg.NewMongoAccountRepo()
	stylistRepo := stylistRepoPkg.NewMongoStylistRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()

	// services.
	geocoder := geocode.NewNominatimGeocoder(
		config.AppConfig.GeocoderBaseURL,
		utils.GetCacheClient(),
		logger,
	)

	accountService := &account.DefaultAccountService{Repo: accountRepo}
	handlers.SetAccountService(accountService)

	stylistService := &stylist.DefaultStylistService{
		Repo:    stylistRepo,
		Geo:     geocoder,
		Storage: cloudinaryStorage,
	}
	discoveryService := &discovery.DefaultDiscoveryService{
		Stylists:    stylistRepo,
		Geo:         geocoder,
		CacheClient: utils.GetCacheClient(),
	}
	bookingService := &booking.DefaultBookingService{
		Bookings: bookingRepo,
		Stylists: stylistRepo,
	}
	reviewService := &review.DefaultReviewService{
		Reviews:  reviewRepo,
		Bookings: bookingRepo,
		Stylists: stylistRepo,
	}

	stylistHandler := handlers.NewStylistHandler(stylistService)
	discoveryHandler := handlers.NewDiscoveryHandler(discoveryService)
	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	reviewHandler := handlers.NewReviewHandler(reviewService)

	// Background sweep: accepted bookings whose slot elapsed become completed.
	cron.InitCompletionWorker(bookingService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AccountRepo: accountRepo,

		RegisterAccountHandler: handlers.RegisterAccountHandler,
		AuthenticateHandler:    handlers.AuthenticateHandler,
		RevokeTokenHandler:     handlers.RevokeTokenHandler,

		UpsertProfileHandler:   stylistHandler.UpsertProfileHandler,
		GetStylistHandler:      stylistHandler.GetStylistHandler,
		GetOwnProfileHandler:   stylistHandler.GetOwnProfileHandler,
		UpdatePricingHandler:   stylistHandler.UpdatePricingHandler,
		DeactivateHandler:      stylistHandler.DeactivateHandler,
		UploadPortfolioHandler: stylistHandler.UploadPortfolioHandler,

		SearchHandler: discoveryHandler.SearchHandler,

		RequestBookingHandler:      bookingHandler.RequestBookingHandler,
		AcceptHandler:              bookingHandler.AcceptHandler,
		RejectHandler:              bookingHandler.RejectHandler,
		CancelHandler:              bookingHandler.CancelHandler,
		CompleteHandler:            bookingHandler.CompleteHandler,
		ListClientBookingsHandler:  bookingHandler.ListClientBookingsHandler,
		ListStylistBookingsHandler: bookingHandler.ListStylistBookingsHandler,

		CreateReviewHandler:       reviewHandler.CreateReviewHandler,
		ListStylistReviewsHandler: reviewHandler.ListStylistReviewsHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
