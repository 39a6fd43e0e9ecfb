package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/nineto6/backoffice/internal/app"
	"github.com/nineto6/backoffice/internal/auth"
	"github.com/nineto6/backoffice/internal/billing"
	"github.com/nineto6/backoffice/internal/catalog"
	"github.com/nineto6/backoffice/internal/clients"
	"github.com/nineto6/backoffice/internal/dashboard"
	"github.com/nineto6/backoffice/internal/invoices"
	"github.com/nineto6/backoffice/internal/observability"
	"github.com/nineto6/backoffice/internal/platform/cache"
	"github.com/nineto6/backoffice/internal/platform/db"
	"github.com/nineto6/backoffice/internal/projects"
	"github.com/nineto6/backoffice/internal/quotes"
	"github.com/nineto6/backoffice/internal/shared"
	"github.com/nineto6/backoffice/jobs"
)

// mailNotifier bridges document sends onto the mail queue.
type mailNotifier struct {
	client *jobs.Client
	logger *slog.Logger
}

func (n *mailNotifier) QuoteSent(ctx context.Context, quote *quotes.Quote, recipient string) {
	n.enqueue(ctx, jobs.SendEmailPayload{
		To:      recipient,
		Subject: "Ihr Angebot " + quote.QuoteNumber,
		Body:    fmt.Sprintf("Angebot %s über %s, gültig bis %s.", quote.QuoteNumber, billing.FormatEUR(quote.Total), quote.ValidUntil.Format("02.01.2006")),
	})
}

func (n *mailNotifier) InvoiceSent(ctx context.Context, invoice *invoices.Invoice, recipient string) {
	n.enqueue(ctx, jobs.SendEmailPayload{
		To:      recipient,
		Subject: "Ihre Rechnung " + invoice.InvoiceNumber,
		Body:    fmt.Sprintf("Rechnung %s über %s, fällig am %s.", invoice.InvoiceNumber, billing.FormatEUR(invoice.Total), invoice.DueDate.Format("02.01.2006")),
	})
}

func (n *mailNotifier) enqueue(ctx context.Context, payload jobs.SendEmailPayload) {
	if _, err := n.client.EnqueueSendEmail(ctx, payload); err != nil {
		n.logger.Warn("enqueue mail", slog.String("to", payload.To), slog.Any("error", err))
	}
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "backoffice_session", cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	jobClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	notifier := &mailNotifier{client: jobClient, logger: logger}

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo, logger)
	authHandler := auth.NewHandler(logger, authService, sessionManager, csrfManager)

	clientRepo := clients.NewRepository(dbpool)
	clientService := clients.NewService(clientRepo)
	clientHandler := clients.NewHandler(logger, clientService)

	projectRepo := projects.NewRepository(dbpool)
	projectService := projects.NewService(projectRepo)
	projectHandler := projects.NewHandler(logger, projectService)

	quoteRepo := quotes.NewRepository(dbpool)
	quoteService := quotes.NewService(quoteRepo, clientRepo).WithNotifier(notifier)
	quoteHandler := quotes.NewHandler(logger, quoteService)

	invoiceRepo := invoices.NewRepository(dbpool)
	invoiceService := invoices.NewService(invoiceRepo, clientRepo, quoteRepo).WithNotifier(notifier)
	invoiceHandler := invoices.NewHandler(logger, invoiceService)

	catalogHandler := catalog.NewHandler()

	dashboardService := dashboard.NewService(clientRepo, projectRepo, quoteRepo, invoiceRepo, dashboard.NewActivityRepository(dbpool))
	dashboardHandler := dashboard.NewHandler(logger, dashboardService)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		CSRFManager:      csrfManager,
		AuthHandler:      authHandler,
		ClientsHandler:   clientHandler,
		ProjectsHandler:  projectHandler,
		QuotesHandler:    quoteHandler,
		InvoicesHandler:  invoiceHandler,
		CatalogHandler:   catalogHandler,
		DashboardHandler: dashboardHandler,
		JobHandler:       jobHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
