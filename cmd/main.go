package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"partscatalog/config"
	"partscatalog/controllers"
	"partscatalog/database"
	"partscatalog/mailer"
	"partscatalog/middleware"
	"partscatalog/repository"
	"partscatalog/routes"
	"partscatalog/storage"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	client, err := database.Connect(context.Background(), cfg.MongoURI)
	if err != nil {
		logger.Fatal().Err(err).Msg("mongodb connection error")
	}
	logger.Info().Msg("connected to mongodb")

	colls := database.NewCollections(client.Database(cfg.DBName))
	productRepo := repository.NewProductRepository(colls.Products)
	inquiryRepo := repository.NewInquiryRepository(colls.Inquiries)

	files, err := storage.NewFileStore(cfg.UploadDir, cfg.PublicBaseURL, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("upload directory error")
	}

	var dispatcher *mailer.Dispatcher
	var notifier controllers.Notifier
	if cfg.MailConfigured() {
		sender := mailer.NewSMTPSender(cfg.SMTPAddr(), cfg.SMTPHost, cfg.SMTPUser, cfg.SMTPPass, cfg.MailFrom, cfg.InquiryNotifyTo)
		dispatcher = mailer.NewDispatcher(sender, logger, 64)
		notifier = dispatcher
	} else {
		logger.Warn().Msg("mail not configured, inquiry notifications disabled")
	}

	productController := controllers.NewProductController(productRepo, files, cfg.LatestLimit, logger)
	inquiryController := controllers.NewInquiryController(inquiryRepo, notifier, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.SetTrustedProxies(nil)
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS())

	upload := middleware.PhotoUpload(files, cfg.MaxUploadMB*1024*1024)
	routes.RegisterRoutes(r, productController, inquiryController, upload, cfg.UploadDir)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	shutdownDone := make(chan struct{})
	go func() {
		<-sigChan
		logger.Info().Msg("received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("server shutdown error")
		}
		if dispatcher != nil {
			dispatcher.Close()
		}
		if err := client.Disconnect(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("mongodb disconnect error")
		}

		close(shutdownDone)
	}()

	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal().Err(err).Msg("server error")
	}
	<-shutdownDone
	logger.Info().Msg("shutdown complete")
}
