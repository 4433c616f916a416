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

	"github.com/frontdoor-labs/frontdoor-api/internal/config"
	"github.com/frontdoor-labs/frontdoor-api/internal/infrastructure/dynamo"
	jwtinfra "github.com/frontdoor-labs/frontdoor-api/internal/infrastructure/jwt"
	s3infra "github.com/frontdoor-labs/frontdoor-api/internal/infrastructure/s3"
	"github.com/frontdoor-labs/frontdoor-api/internal/infrastructure/smtp"
	"github.com/frontdoor-labs/frontdoor-api/internal/infrastructure/sns"
	transporthttp "github.com/frontdoor-labs/frontdoor-api/internal/transport/http"
	"github.com/frontdoor-labs/frontdoor-api/internal/verify"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap DynamoDB tables (creates them if they don't exist) and seed
	// the request-type lookup.
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// JWT provider (optional — graceful fallback if keys are missing; the
	// inbox routes then run unauthenticated, which is only sane in dev).
	var jwtProvider *jwtinfra.Provider
	if p, err := jwtinfra.NewProvider(cfg); err == nil {
		jwtProvider = p
	} else {
		log.Printf("WARN: JWT provider not available: %v", err)
	}

	// S3 attachment store.
	s3Client := s3infra.NewClient(cfg)
	attachmentStore := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SMTP mailer for verification codes.
	mailer := smtp.NewMailer(cfg)

	// SNS SMS sender (optional — phone codes fall back to log disclosure).
	var smsSender sns.SMSSender
	if sender, err := sns.NewSender(cfg); err == nil {
		smsSender = sender
	} else {
		log.Printf("WARN: SNS sender not available: %v", err)
	}

	deps := &transporthttp.Deps{
		PingeeRepo:      dynamo.NewPingeeRepo(dynamoClient, cfg.DynamoTables.Pingees),
		RequestRepo:     dynamo.NewRequestRepo(dynamoClient, cfg.DynamoTables.Requests),
		RequestTypeRepo: dynamo.NewRequestTypeRepo(dynamoClient, cfg.DynamoTables.RequestTypes),
		ContactRepo:     dynamo.NewContactRepo(dynamoClient, cfg.DynamoTables.Contacts),
		AttachmentStore: attachmentStore,
		Codes:           verify.NewMemoryStore(),
		Mailer:          mailer,
		SMSSender:       smsSender,
		JWTProvider:     jwtProvider,
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
