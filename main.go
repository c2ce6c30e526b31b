package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stayhub/config"
	"stayhub/cron"
	"stayhub/database"
	accommodationRepoPkg "stayhub/database/repository/accommodation"
	bookingRepoPkg "stayhub/database/repository/booking"
	paymentRepoPkg "stayhub/database/repository/payment"
	userRepoPkg "stayhub/database/repository/user"
	"stayhub/handlers"
	"stayhub/routes"
	accommodationService "stayhub/services/accommodation"
	authService "stayhub/services/auth"
	bookingService "stayhub/services/booking"
	"stayhub/services/notification"
	paymentService "stayhub/services/payment"
	"stayhub/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()
	stripe.Key = config.AppConfig.StripeKey

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	accommodationRepo := accommodationRepoPkg.NewMongoAccommodationRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	paymentRepo := paymentRepoPkg.NewMongoPaymentRepo()

	// Notification pipeline: asynq producer plus background worker.
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()
	publisher := notification.NewAsynqPublisher(asynqClient)

	notifier, err := notification.NewTelegramNotifier(
		config.AppConfig.TelegramBotToken, config.AppConfig.TelegramChatID)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize telegram notifier: %v", err)
	}
	worker := cron.InitNotificationWorker(notifier)
	defer worker.Shutdown()

	// services.
	authSvc := &authService.DefaultAuthService{Repo: userRepo}
	accommodationSvc := &accommodationService.DefaultAccommodationService{
		Repo:      accommodationRepo,
		Publisher: publisher,
		Cache:     accommodationService.NewRedisCache(utils.GetCacheClient(), 10*time.Minute),
	}
	bookingSvc := &bookingService.DefaultBookingService{
		Repo:              bookingRepo,
		AccommodationRepo: accommodationRepo,
		UserRepo:          userRepo,
		PaymentRepo:       paymentRepo,
		Publisher:         publisher,
	}
	paymentSvc := &paymentService.StripePaymentService{
		Repo:              paymentRepo,
		BookingRepo:       bookingRepo,
		AccommodationRepo: accommodationRepo,
		Gateway:           paymentService.NewStripeCheckoutGateway(),
		Publisher:         publisher,
	}

	handlers.AuthSvc = authSvc
	handlers.AccommodationSvc = accommodationSvc
	handlers.BookingSvc = bookingSvc
	handlers.PaymentSvc = paymentSvc

	routes.RegisterRoutes(router, userRepo)

	// Periodic expiry sweeps.
	sweepCtx, stopSweeps := context.WithCancel(context.Background())
	defer stopSweeps()
	sweeper := &cron.Sweeper{
		Bookings:          bookingSvc,
		Payments:          paymentSvc,
		AccommodationRepo: accommodationRepo,
		UserRepo:          userRepo,
		Publisher:         publisher,
	}
	sweeper.Start(sweepCtx)

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

	stopSweeps()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
