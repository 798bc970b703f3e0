package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Hxrshmxllow/HackPrincetonF25/internal/advisory"
	"github.com/Hxrshmxllow/HackPrincetonF25/internal/auth"
	"github.com/Hxrshmxllow/HackPrincetonF25/internal/config"
	"github.com/Hxrshmxllow/HackPrincetonF25/internal/db"
	"github.com/Hxrshmxllow/HackPrincetonF25/internal/handlers"
	"github.com/Hxrshmxllow/HackPrincetonF25/internal/listing"
	"github.com/Hxrshmxllow/HackPrincetonF25/internal/middleware"
	"github.com/Hxrshmxllow/HackPrincetonF25/internal/selection"
)

func main() {
	cfg := config.Load()

	logger := log.New()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(level)
	}

	client, err := db.ConnectMongo(cfg.MongoURI)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	logger.Info("Connected to MongoDB")

	userCollection := &db.MongoUserCollection{
		Collection: client.Database(cfg.MongoDatabase).Collection("users"),
	}

	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)
	authMiddleware := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	listingClient := listing.NewClient(cfg.UpstreamURL, cfg.HTTPTimeout, logger)
	normalizer := listing.NewNormalizer(logger)

	advisoryClient := advisory.NewClient(cfg.AdvisoryURL, cfg.HTTPTimeout)
	coordinator := advisory.NewCoordinator(advisoryClient, logger)
	controller := selection.NewController(coordinator)

	authHandler := handlers.NewAuthHandler(authService, userCollection)
	listingsHandler := handlers.NewListingsHandler(listingClient, normalizer, controller, userCollection, logger)
	selectionHandler := handlers.NewSelectionHandler(controller, logger)
	insightHandler := handlers.NewInsightHandler(coordinator, advisoryClient, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/auth/register", authHandler.Register)
	mux.HandleFunc("/api/auth/login", authHandler.Login)
	mux.HandleFunc("/api/auth/change-password", authHandler.ChangePassword)
	mux.HandleFunc("/api/profile", authHandler.Profile)
	mux.HandleFunc("/api/profile/searches", authHandler.SearchHistory)
	mux.HandleFunc("/api/listings", listingsHandler.Search)
	mux.HandleFunc("/api/selection", selectionHandler.Select)
	mux.HandleFunc("/api/insight/valuation", insightHandler.Valuation)
	mux.HandleFunc("/api/insight/analysis", insightHandler.Analysis)
	mux.HandleFunc("/api/insight/insurance", insightHandler.Insurance)
	mux.HandleFunc("/api/insight/chat", insightHandler.Chat)
	mux.HandleFunc("/api/insight/checklist", insightHandler.Checklist)

	handler := rateLimiter.RateLimit(120, 60)(authMiddleware.Authenticate(mux))

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("HTTP server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Shutdown error")
	}
	if err := client.Disconnect(ctx); err != nil {
		logger.WithError(err).Error("MongoDB disconnect error")
	}
}
