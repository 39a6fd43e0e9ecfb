package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/nineto6/backoffice/internal/invoices"
	"github.com/nineto6/backoffice/internal/quotes"
)

// NewInvoiceOverdueScanHandler returns the invoices:overdue_scan handler.
func NewInvoiceOverdueScanHandler(logger *slog.Logger, svc *invoices.Service) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		n, err := svc.MarkOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("overdue scan", slog.Any("error", err))
			return err
		}
		if n > 0 {
			logger.Info("invoices marked overdue", slog.Int64("count", n))
		}
		return nil
	}
}

// NewQuoteExpireScanHandler returns the quotes:expire_scan handler.
func NewQuoteExpireScanHandler(logger *slog.Logger, svc *quotes.Service) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		n, err := svc.ExpireOverdue(ctx, time.Now())
		if err != nil {
			logger.Error("expire scan", slog.Any("error", err))
			return err
		}
		if n > 0 {
			logger.Info("quotes expired", slog.Int64("count", n))
		}
		return nil
	}
}
