// File: main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"folio/config"
	"folio/cron"
	"folio/database"
	contentRepo "folio/database/repository/content"
	"folio/handlers"
	"folio/middleware"
	"folio/models"
	"folio/routes"
	"folio/services/calendar"
	"folio/services/content"
	"folio/services/notification"
	"folio/services/scheduling"
	"folio/services/tasks"
	"folio/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRedis()

	loc, err := time.LoadLocation(config.AppConfig.CalendarTimezone)
	if err != nil {
		logger.Sugar().Fatalf("main: invalid calendar timezone %q: %v", config.AppConfig.CalendarTimezone, err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	contRepo := contentRepo.NewMongoContentRepo()

	// services.
	calendarClient := calendar.NewGoogleClient(
		config.AppConfig.GoogleCredentialsFile,
		config.AppConfig.GoogleCalendarID,
		config.AppConfig.CalendarTimezone,
		time.Duration(config.AppConfig.NetworkTimeoutSecs)*time.Second,
		logger,
	)

	notificationService := notification.NewSMTPNotificationService(logger)
	cron.InitConfirmationWorker(notificationService)

	taskClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer taskClient.Close()

	schedulingService := &scheduling.DefaultSchedulingService{
		Calendar: calendarClient,
		Cache:    utils.GetSessionCacheClient(),
		Policy: scheduling.WorkingHours{
			StartHour: config.AppConfig.WorkingHoursStart,
			EndHour:   config.AppConfig.WorkingHoursEnd,
		},
		SlotDuration: time.Duration(config.AppConfig.SlotDurationMin) * time.Minute,
		SessionTTL:   time.Duration(config.AppConfig.SessionTTLMinutes) * time.Minute,
		Location:     loc,
		OnScheduled:  enqueueBookingEmails(taskClient, loc, logger),
		Logger:       logger,
	}

	contentService := &content.DefaultContentService{
		Repo:   contRepo,
		Cache:  utils.GetCacheClient(),
		Logger: logger,
	}

	schedulingHandler := handlers.NewSchedulingHandler(schedulingService, logger)
	contentHandler := handlers.NewContentHandler(contentService, logger)

	// Register routes.
	routes.RegisterRoutes(router, schedulingHandler, contentHandler)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetCacheClient(), utils.GetSessionCacheClient()},
		database.MongoClient,
	)

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

// enqueueBookingEmails schedules the confirmation email right away and a
// reminder for the day before the call. Queue failures are logged, never
// surfaced to the visitor: the booking itself already succeeded.
func enqueueBookingEmails(client *asynq.Client, loc *time.Location, logger *zap.Logger) scheduling.ScheduledCallback {
	return func(date string, slot string, details models.BookingDetails) {
		payload := models.ReminderPayload{
			Email:   details.Email,
			Name:    details.Name,
			Date:    date,
			Slot:    slot,
			Purpose: details.Purpose,
		}

		task, opts, err := tasks.NewConfirmationTask(payload)
		if err == nil {
			_, err = client.Enqueue(task, opts...)
		}
		if err != nil {
			logger.Error("main: failed to enqueue confirmation email",
				zap.String("email", details.Email), zap.Error(err))
		}

		day, err := time.ParseInLocation("2006-01-02", date, loc)
		if err != nil {
			logger.Error("main: failed to parse booked date for reminder",
				zap.String("date", date), zap.Error(err))
			return
		}
		fireAt := day.AddDate(0, 0, -1).Add(9 * time.Hour)
		if fireAt.Before(time.Now()) {
			return
		}

		task, opts, err = tasks.NewReminderTask(payload, fireAt)
		if err == nil {
			_, err = client.Enqueue(task, opts...)
		}
		if err != nil {
			logger.Error("main: failed to enqueue reminder email",
				zap.String("email", details.Email), zap.Error(err))
		}
	}
}
