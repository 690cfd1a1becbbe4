package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"
	"time"

	_ "github.com/lib/pq"

	httpapi "expertdesk-backend/internal/api/http"
	"expertdesk-backend/internal/config"
	"expertdesk-backend/internal/logger"
	"expertdesk-backend/internal/meeting"
	"expertdesk-backend/internal/repository/postgres"
	"expertdesk-backend/internal/security"
	"expertdesk-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ExpertDesk settlement backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize external collaborators
	provisioner := meeting.NewMockProvisioner(cfg.Platform.MeetingBaseURL)
	emailSvc := service.NewEmailService(
		cfg.SendGrid.APIKey,
		cfg.SendGrid.FromEmail,
		cfg.SendGrid.FromName,
		cfg.SendGrid.OpsEmail,
	)

	// Initialize Services
	balanceSvc := service.NewBalanceService(
		store.BookingRepository,
		store.WithdrawalRepository,
		store.SettingRepository,
		cfg.DefaultCommissionRateValue(),
		cfg.Platform.Currency,
	)
	withdrawalSvc := service.NewWithdrawalService(
		store.WithdrawalRepository,
		store.BankAccountRepository,
		balanceSvc,
		emailSvc,
		cfg.MinWithdrawalAmount(),
		cfg.Platform.Currency,
	)
	ledgerSvc := service.NewLedgerService(
		store.WithdrawalRepository,
		store.BookingRepository,
		emailSvc,
	)
	riskSvc := service.NewRiskService(store.DisputeRepository)
	bookingSvc := service.NewBookingService(
		store.BookingRepository,
		provisioner,
		time.Duration(cfg.Platform.PendingBookingTTLMinutes)*time.Minute,
	)

	// Initialize Handlers and Router
	router := httpapi.NewRouter(
		tokenManager,
		httpapi.NewExpertHandler(balanceSvc, riskSvc),
		httpapi.NewWithdrawalHandler(withdrawalSvc, ledgerSvc),
		httpapi.NewBookingHandler(bookingSvc),
	)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := server.ListenAndServe(); err != nil {
		logger.Error("HTTP server stopped", "error", err)
		log.Fatalf("HTTP server stopped: %v", err)
	}
}
