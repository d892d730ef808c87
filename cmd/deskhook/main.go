package main

import (
	"context"
	"log"
	"net/http"

	"github.com/deskhook/deskhook/config"
	"github.com/deskhook/deskhook/internal/directory"
	"github.com/deskhook/deskhook/internal/identity"
	"github.com/deskhook/deskhook/internal/middleware"
	"github.com/deskhook/deskhook/internal/provision"
	"github.com/deskhook/deskhook/internal/records"
	"github.com/deskhook/deskhook/internal/webhook"
	"github.com/deskhook/deskhook/internal/worker"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// newLogger creates logger with log level
func newLogger(level string) (*zap.Logger, error) {

	loggerLvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	loggerCfg := zap.NewProductionConfig()
	loggerCfg.Level = loggerLvl

	return loggerCfg.Build()
}

func main() {

	// create new config
	cfg, err := config.New()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	// initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer logger.Sync()

	// create context
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// dependency injection
	dirClient := directory.NewClient(cfg.JiraBaseURL, cfg.JiraEmail, cfg.JiraAPIToken)
	recClient := records.NewClient(cfg.JiraBaseURL, cfg.JiraEmail, cfg.JiraAPIToken, cfg.StartDateFieldID)

	resolver := identity.NewResolver(dirClient, cfg.SearchAttempts, cfg.SearchInterval, logger)

	provisioner := provision.New(resolver, recClient, provision.Defaults{
		WorkspaceProjectKey: cfg.WorkspaceProjectKey,
		ServiceDeskKey:      cfg.ServiceDeskKey,
		ServiceDeskID:       cfg.ServiceDeskID,
		RequestTypeID:       cfg.RequestTypeID,
		IssueType:           cfg.IssueType,
		ParentIssueType:     cfg.ParentIssueType,
	}, logger)

	dispatcher := worker.NewDispatcher(provisioner, cfg.Workers, nil, logger)
	go dispatcher.Run(ctx)

	webhookHandler := webhook.NewHandler(cfg.StripeWebhookSecret, dispatcher, logger)

	router := chi.NewRouter()

	router.Use(middleware.Logging(logger))

	router.Post("/api/webhook/stripe", webhookHandler.HandleStripeEvent())

	logger.Info("Running server", zap.String("addr", cfg.ServerAddr))

	if err := http.ListenAndServe(cfg.ServerAddr, router); err != nil {
		logger.Fatal("Error starting server", zap.Error(err))
	}
}
