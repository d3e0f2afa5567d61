package main

import (
	"fmt"
	"log"

	"tdstrack/internal/config"
	"tdstrack/internal/email/noop"
	"tdstrack/internal/email/ses"
	"tdstrack/internal/handler"
	"tdstrack/internal/middleware"
	"tdstrack/internal/port"
	"tdstrack/internal/repository/postgres"
	"tdstrack/internal/router"
	"tdstrack/internal/service"
	s3storage "tdstrack/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	middleware.ConfigureLogging(cfg.Log.Level)

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	taxpayerRepo := postgres.NewTaxpayerRepo(db)
	registrantRepo := postgres.NewTdsRegistrantRepo(db)
	invoiceRepo := postgres.NewInvoiceBatchRepo(db)
	paymentRepo := postgres.NewTdsPaymentRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email sender
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize services
	authSvc, err := service.NewAuthService(cfg.Auth, cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to initialize auth service: %w", err)
	}
	registrySvc := service.NewRegistryService(taxpayerRepo, registrantRepo)
	gstr2aSvc := service.NewGstr2aService(invoiceRepo, s3Client, cfg.S3)
	paymentSvc := service.NewPaymentService(paymentRepo)
	reconSvc := service.NewReconService(taxpayerRepo, registrantRepo, invoiceRepo, paymentRepo, emailSender)
	sampleSvc := service.NewSampleDataService(taxpayerRepo, registrantRepo, invoiceRepo, paymentRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	registryH := handler.NewRegistryHandler(registrySvc)
	gstr2aH := handler.NewGstr2aHandler(gstr2aSvc)
	paymentH := handler.NewPaymentHandler(paymentSvc)
	reportH := handler.NewReportHandler(reconSvc)
	sampleH := handler.NewSampleHandler(sampleSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins,
		authH, registryH, gstr2aH, paymentH, reportH, sampleH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
