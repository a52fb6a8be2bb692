package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/tripnest/server/internal/adapter/gateway"
	"github.com/tripnest/server/internal/adapter/handler"
	"github.com/tripnest/server/internal/adapter/repository/postgres"
	"github.com/tripnest/server/internal/core/services"
	"github.com/tripnest/server/internal/platform/auth"
	"github.com/tripnest/server/internal/platform/config"
	"github.com/tripnest/server/internal/platform/database"
	"github.com/tripnest/server/internal/platform/events"
)

func main() {
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.NewPostgresDB(database.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		DBName:   cfg.DB.Name,
	})
	if err != nil {
		log.Fatalf("Failed to connect to db after retries: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	log.Printf("Connecting to Redis at %s:%s...", cfg.Redis.Host, cfg.Redis.Port)

	redisClient := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", cfg.Redis.Host, cfg.Redis.Port),
		DB:   0,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connected successfully!")

	// The broker is optional: without a URL the publisher stays nil and
	// lifecycle events are dropped.
	var publisher *events.Publisher
	if cfg.Rabbit.URL != "" {
		publisher, err = events.NewPublisher(cfg.Rabbit.URL, cfg.Rabbit.Exchange)
		if err != nil {
			log.Fatalf("Failed to connect to RabbitMQ: %v", err)
		}
		defer publisher.Close()
		log.Println("RabbitMQ connected successfully!")
	}

	packageRepo := postgres.NewPackageRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)
	conversationRepo := postgres.NewConversationRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	participantRepo := postgres.NewParticipantRepository(db)

	notificationService := services.NewNotificationService(notificationRepo, cfg.AdminIDs, logger)
	bookingService := services.NewBookingService(bookingRepo, packageRepo, notificationService, publisher, redisClient, logger)
	packageService := services.NewPackageService(packageRepo, bookingRepo, notificationService, redisClient, logger)
	conversationService := services.NewConversationService(conversationRepo, messageRepo, participantRepo, logger)

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	hub := gateway.NewHub()
	go hub.Run(rootCtx)

	tokens := auth.NewTokenManager(cfg.Auth.Secret)
	ws := gateway.New(hub, conversationService, tokens, logger)

	go bookingService.RunExpirySweeper(rootCtx, time.Duration(cfg.Sweeper.IntervalSeconds)*time.Second)

	mux := http.NewServeMux()

	handler.NewPackageHandler(packageService).Register(mux)
	handler.NewBookingHandler(bookingService).Register(mux)
	handler.NewConversationHandler(conversationService).Register(mux)
	handler.NewNotificationHandler(notificationService).Register(mux)
	mux.HandleFunc("GET /ws", ws.ServeWS)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on port :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
