package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Chifaaan/kdmpxkfa/internal/client"
	"github.com/Chifaaan/kdmpxkfa/internal/config"
	"github.com/Chifaaan/kdmpxkfa/internal/handler"
	"github.com/Chifaaan/kdmpxkfa/internal/model"
	"github.com/Chifaaan/kdmpxkfa/internal/repository"
	"github.com/Chifaaan/kdmpxkfa/internal/server"
	"github.com/Chifaaan/kdmpxkfa/internal/service"
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitDB(cfg.DatabaseURL, cfg.SQLitePath)
	midtransClient := client.NewMidtransClient(&cfg.Midtrans)
	creditClient := client.NewCreditClient(cfg.Credit.BaseURL)

	orderRepo := repository.NewOrderRepository(db)
	productRepo := repository.NewProductRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	userRepo := repository.NewUserRepository(db)

	if err := productRepo.Seed(context.Background()); err != nil {
		log.Println("seed products:", err)
	}

	expiry := service.NewExpiryScheduler(orderRepo, cfg.Payment.ExpiryWindow)

	// timers do not survive a restart; re-arm every order still awaiting
	// payment against its original deadline
	if pending, err := orderRepo.FindByStatus(context.Background(), model.StatusPending); err != nil {
		log.Println("re-arm pending orders:", err)
	} else {
		for _, order := range pending {
			expiry.ArmRemaining(order.ID, order.UpdatedAt)
		}
	}

	notifier := service.NewAdminNotifier(userRepo, notificationRepo)
	paymentService := service.NewPaymentService(
		midtransClient,
		orderRepo,
		webhookEventRepo,
		expiry,
		&cfg.Midtrans,
	)
	checkoutService := service.NewCheckoutService(
		orderRepo,
		productRepo,
		creditClient,
		notifier,
		paymentService,
		&cfg.Payment,
	)

	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	// Init HTTP server
	srv := server.NewServer(checkoutHandler, paymentHandler, cfg.JWTSecret)

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	expiry.Stop()

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
