package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wayfare/config"
	"wayfare/database"
	bookingRepo "wayfare/database/repository/booking"
	participantRepo "wayfare/database/repository/participant"
	profileRepo "wayfare/database/repository/profile"
	reviewRepo "wayfare/database/repository/review"
	"wayfare/handlers"
	"wayfare/middleware"
	"wayfare/models"
	"wayfare/routes"
	"wayfare/services/auth"
	"wayfare/services/booking"
	"wayfare/services/notification"
	"wayfare/services/profile"
	"wayfare/services/review"
	"wayfare/services/stats"
	"wayfare/services/trust"
	"wayfare/utils"
	"wayfare/workers"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	config.InitFirebase()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	profRepo := profileRepo.NewMongoProfileRepo()
	bookRepo := bookingRepo.NewMongoBookingRepo()
	revRepo := reviewRepo.NewMongoReviewRepo()
	partRepo := participantRepo.NewMongoParticipantRepo()

	// background queue.
	queueOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
	queueClient := asynq.NewClient(queueOpts)
	defer queueClient.Close()

	// services.
	profileCache := profile.NewCache(utils.GetCacheClient())
	gates := map[string]trust.Gate{
		models.VerticalTour: trust.NewGate(config.AppConfig.TourTrustMinScore, config.AppConfig.TourTrustLevels),
		models.VerticalStay: trust.NewGate(config.AppConfig.StayTrustMinScore, config.AppConfig.StayTrustLevels),
	}

	aggregator := &stats.DefaultAggregator{
		Bookings:     bookRepo,
		Profiles:     profRepo,
		ProfileCache: profileCache,
	}
	dispatcher := notification.NewAsynqDispatcher(queueClient)

	profileService := &profile.DefaultProfileService{
		Repo:         profRepo,
		Bookings:     bookRepo,
		Participants: partRepo,
		Gates:        gates,
		Cache:        profileCache,
	}
	bookingService := booking.NewDefaultBookingService(bookRepo, profRepo, aggregator, dispatcher, queueClient)
	reviewService := &review.DefaultReviewService{
		Reviews:      revRepo,
		Bookings:     bookRepo,
		Profiles:     profRepo,
		ProfileCache: profileCache,
		Notifier:     dispatcher,
	}
	authService := &auth.DefaultAuthService{Participants: partRepo}

	// background worker for queued notifications and stat repairs.
	worker := &workers.Worker{
		Sender: &notification.FCMSender{
			Messaging:    config.MessagingClient,
			Participants: partRepo,
		},
		Aggregator: aggregator,
	}
	worker.Start()

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:    handlers.NewAuthHandler(authService),
		Profile: handlers.NewProfileHandler(profileService),
		Booking: handlers.NewBookingHandler(bookingService),
		Review:  handlers.NewReviewHandler(reviewService),
		Stats:   handlers.NewStatsHandler(aggregator),
	}

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
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: forced shutdown: %v", err)
	}
	logger.Info("Server exited")
}
