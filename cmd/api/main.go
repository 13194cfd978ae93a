package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medbook/booking-api/internal/config"
	appointmentHandler "github.com/medbook/booking-api/internal/handler/appointment"
	availabilityHandler "github.com/medbook/booking-api/internal/handler/availability"
	healthHandler "github.com/medbook/booking-api/internal/handler/health"
	prescriptionHandler "github.com/medbook/booking-api/internal/handler/prescription"
	reviewHandler "github.com/medbook/booking-api/internal/handler/review"
	"github.com/medbook/booking-api/internal/middleware"
	"github.com/medbook/booking-api/internal/repository/postgres"
	redisrepo "github.com/medbook/booking-api/internal/repository/redis"
	"github.com/medbook/booking-api/internal/router"
	appointmentService "github.com/medbook/booking-api/internal/service/appointment"
	availabilityService "github.com/medbook/booking-api/internal/service/availability"
	prescriptionService "github.com/medbook/booking-api/internal/service/prescription"
	reviewService "github.com/medbook/booking-api/internal/service/review"
	schedulingService "github.com/medbook/booking-api/internal/service/scheduling"
	"github.com/medbook/booking-api/pkg/logger"
	"github.com/medbook/booking-api/pkg/metrics"
	"github.com/medbook/booking-api/pkg/validator"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.Logging.Level, cfg.Logging.Pretty)

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := postgres.InitSchema(context.Background(), db); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize schema")
	}

	redisClient := redisrepo.NewClient(cfg.Redis)
	defer redisClient.Close()

	// Repositories
	availabilityRepo := postgres.NewAvailabilityRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	directory := redisrepo.NewCachedDirectory(
		postgres.NewUserDirectory(db), redisClient, cfg.Redis.DirectoryTTL)

	// Services
	m := metrics.NewMetrics("medbook", "booking")
	availabilitySvc := availabilityService.NewService(availabilityRepo, m)
	schedulingSvc := schedulingService.NewService(appointmentRepo, availabilityRepo, directory, m)
	appointmentSvc := appointmentService.NewService(appointmentRepo, m)
	prescriptionSvc := prescriptionService.NewService(prescriptionRepo, appointmentSvc)
	reviewSvc := reviewService.NewService(reviewRepo, directory, appointmentSvc)

	// Transport
	v := validator.New()
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)

	r := router.NewRouter(
		authMiddleware,
		rateLimiter,
		healthHandler.NewHandler(db),
		appointmentHandler.NewHandler(schedulingSvc, appointmentSvc, v),
		availabilityHandler.NewHandler(availabilitySvc, v),
		prescriptionHandler.NewHandler(prescriptionSvc, v),
		reviewHandler.NewHandler(reviewSvc, v),
	)

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
}
