package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/shopnext/backend/internal/config"
	"github.com/shopnext/backend/internal/db"
	"github.com/shopnext/backend/internal/events"
	"github.com/shopnext/backend/internal/httpserver"
	"github.com/shopnext/backend/internal/logging"
	"github.com/shopnext/backend/internal/mail"
	"github.com/shopnext/backend/internal/otp"
	"github.com/shopnext/backend/internal/outbox"
	"github.com/shopnext/backend/internal/payment"
	"github.com/shopnext/backend/internal/repo"
	"github.com/shopnext/backend/internal/search"
	"github.com/shopnext/backend/internal/service"
	"github.com/shopnext/backend/internal/token"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmptyBytes(cfg.AdminJWTSecret, "ADMIN_JWT_SECRET")

	logger := logging.New(config.EnvDefault("LOG_LEVEL", "info"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	repository := repo.New(database)
	tokens := &token.Service{JWTSecret: cfg.JWTSecret, AdminJWTSecret: cfg.AdminJWTSecret}
	otpStore := otp.NewStore(otp.DefaultTTL)
	defer otpStore.Close()

	notifier := mail.NewSMTPNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)

	var producer events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaProducer(cfg.KafkaBrokers)
		defer kp.Close()
		producer = kp
	} else {
		logger.Warn("KAFKA_BROKERS not set, domain events disabled")
	}

	var indexer search.Indexer
	var searchHandler *httpserver.SearchHandler
	if cfg.ESURL != "" {
		esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch init: %v", err)
		}
		indexer = &search.ESIndexer{ES: esClient, Index: search.DefaultIndex}
		searchHandler = &httpserver.SearchHandler{ES: esClient, Index: search.DefaultIndex}
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	orderSvc := &service.OrderService{Repo: repository, Tokens: tokens, Producer: producer}
	authSvc := &service.AuthService{Repo: repository, Tokens: tokens, OTP: otpStore, Notifier: notifier, Producer: producer}
	catalogSvc := &service.CatalogService{Repo: repository, Indexer: indexer}
	accountSvc := &service.AccountService{Repo: repository, Tokens: tokens}
	supportSvc := &service.SupportService{Repo: repository, Notifier: notifier, AdminEmail: cfg.SMTPUser}

	dispatcher := &outbox.Dispatcher{Repo: repository, Notifier: notifier, Log: logger.With("component", "outbox")}
	go dispatcher.Run(ctx)

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(logging.RequestLogger(logger))

	deps := &httpserver.Deps{
		Tokens:         tokens,
		AuthHandler:    &httpserver.AuthHandler{Svc: authSvc},
		OrderHandler:   &httpserver.OrderHandler{Svc: orderSvc},
		ProductHandler: &httpserver.ProductHandler{Svc: catalogSvc},
		SearchHandler:  searchHandler,
		AccountHandler: &httpserver.AccountHandler{Svc: accountSvc},
		PaymentHandler: &httpserver.PaymentHandler{Provider: payment.NewRazorpayProvider(cfg.RazorpayKeyID, cfg.RazorpaySecret)},
		SupportHandler: &httpserver.SupportHandler{Svc: supportSvc},
	}
	httpserver.Register(e, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()
	logger.Info("server started", "port", cfg.ServerPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := database.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	} else {
		log.Printf("db() error: %v", err)
	}

	logger.Info("shutdown complete")
}
