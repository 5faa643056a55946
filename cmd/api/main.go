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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swipe-api/internal/config"
	"github.com/swipe-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/swipe-api/internal/infrastructure/jwt"
	"github.com/swipe-api/internal/infrastructure/smtp"
	"github.com/swipe-api/internal/infrastructure/sns"
	"github.com/swipe-api/internal/metrics"
	transporthttp "github.com/swipe-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — graceful fallback if keys are missing).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// SMTP mailer.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender (optional — graceful fallback).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	// Prometheus registry and application counters.
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(registry)

	deps := &transporthttp.Deps{
		ProfileRepo:    dynamo.NewProfileRepo(dynamoClient, cfg.DynamoTables.Profiles),
		ChallengeRepo:  dynamo.NewChallengeRepo(dynamoClient, cfg.DynamoTables.Challenges),
		SwipeRepo:      dynamo.NewSwipeRepo(dynamoClient, cfg.DynamoTables.Swipes),
		MatchRepo:      dynamo.NewMatchRepo(dynamoClient, cfg.DynamoTables.Matches),
		MessageRepo:    dynamo.NewMessageRepo(dynamoClient, cfg.DynamoTables.Messages),
		Mailer:         mailer,
		SMSSender:      smsSender,
		JWTProvider:    jwtProvider,
		Metrics:        collector,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
