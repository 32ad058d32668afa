// File: schedly/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"schedly/config"
	"schedly/cron"
	"schedly/database"
	appointmentRepoPkg "schedly/database/repository/appointment"
	availabilityRepoPkg "schedly/database/repository/availability"
	userRepoPkg "schedly/database/repository/user"
	"schedly/handlers"
	"schedly/middleware"
	"schedly/routes"
	"schedly/services/booking"
	"schedly/services/scheduling"
	"schedly/services/user"
	"schedly/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	availabilityRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()

	// services.
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}

	scheduleService := &scheduling.DefaultScheduleService{
		Availability:       availabilityRepo,
		Users:              userRepo,
		Appointments:       appointmentRepo,
		Cache:              utils.GetCacheClient(),
		StrictAvailability: config.AppConfig.StrictAvailability,
	}

	bookingService := &booking.DefaultBookingService{
		Appointments: appointmentRepo,
		Users:        userRepo,
		Scheduler:    scheduleService,
	}

	// Background overlap audit over stored bookings.
	cron.InitOverlapAuditWorker(appointmentRepo)

	// Assemble the handler bundle and register routes.
	handlerBundle := &routes.HandlerBundle{
		Auth:         handlers.NewAuthHandler(userService),
		Users:        handlers.NewUserHandler(userService),
		Availability: handlers.NewAvailabilityHandler(scheduleService),
		Bookings:     handlers.NewBookingHandler(bookingService),
		UserRepo:     userRepo,
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
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
