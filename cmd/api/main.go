package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/casamar/booking-api/internal/adapter/feed"
	"github.com/casamar/booking-api/internal/adapter/handler"
	"github.com/casamar/booking-api/internal/adapter/notifier"
	"github.com/casamar/booking-api/internal/adapter/repository/postgres"
	"github.com/casamar/booking-api/internal/core/services"
	"github.com/casamar/booking-api/internal/platform/database"
)

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using OS environment.")
	}

	dbConfig := database.Config{
		Host:     env("DB_HOST", "localhost"),
		Port:     env("DB_PORT", "5432"),
		User:     env("DB_USER", "postgres"),
		Password: env("DB_PASSWORD", ""),
		DBName:   env("DB_NAME", "casamar_booking"),
	}

	db, err := database.NewPostgresDB(dbConfig)
	if err != nil {
		log.Fatalf("Failed to connect to db after retries: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)
	defer db.Close()

	redisAddr := fmt.Sprintf("%s:%s", env("REDIS_HOST", "localhost"), env("REDIS_PORT", "6379"))
	log.Printf("Connecting to Redis at %s...", redisAddr)

	redisClient := redis.NewClient(&redis.Options{
		Addr: redisAddr,
		DB:   0,
	})

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Println("Redis connected successfully!")

	propertyRepo := postgres.NewPropertyRepository(db)
	reservationRepo := postgres.NewReservationRepository(db)

	store := services.NewAvailabilityStore()
	if err := store.Load(context.Background(), reservationRepo, services.DefaultHorizon()); err != nil {
		// An empty store would falsely present every date as available.
		log.Fatalf("Failed to load occupied ranges: %v", err)
	}

	changeChannel := env("FEED_CHANNEL", feed.DefaultChannel)
	publisher := feed.NewPublisher(redisClient, changeChannel)
	subscriber := feed.NewSubscriber(redisClient, changeChannel, store.ApplyChange)

	feedCtx, stopFeed := context.WithCancel(context.Background())
	defer stopFeed()

	go func() {
		if err := subscriber.Run(feedCtx); err != nil && feedCtx.Err() == nil {
			log.Printf("Change feed stopped: %v", err)
		}
	}()

	bookingService := services.NewBookingService(
		propertyRepo,
		reservationRepo,
		store,
		publisher,
		notifier.NewLogNotifier(),
		redisClient,
	)

	bookingHandler := handler.NewBookingHandler(bookingService)

	mux := http.NewServeMux()

	mux.HandleFunc("/properties", bookingHandler.GetProperties)
	mux.HandleFunc("/availability", bookingHandler.GetAvailability)
	mux.HandleFunc("/quotes", bookingHandler.CreateQuote)
	mux.HandleFunc("/reservations", bookingHandler.CreateReservation)

	server := &http.Server{
		Addr:         ":" + env("PORT", "8080"),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server startup failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	stopFeed()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
