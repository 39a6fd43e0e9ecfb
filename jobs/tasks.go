// Package jobs runs the background work: document sweeps and outbound
// mail, queued through Asynq.
package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"

	// TaskInvoiceOverdueScan flips sent invoices past their due date.
	TaskInvoiceOverdueScan = "invoices:overdue_scan"
	// TaskQuoteExpireScan expires sent quotes past their validity window.
	TaskQuoteExpireScan = "quotes:expire_scan"
	// TaskSendEmail sends one transactional email.
	TaskSendEmail = "mail:send"
)

// SendEmailPayload describes one outbound email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs the mail:send task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSendEmail, data), nil
}

// NewInvoiceOverdueScanTask constructs the overdue-sweep task. The payload
// is empty; the handler reads the clock itself.
func NewInvoiceOverdueScanTask() *asynq.Task {
	return asynq.NewTask(TaskInvoiceOverdueScan, nil)
}

// NewQuoteExpireScanTask constructs the quote-expiry sweep task.
func NewQuoteExpireScanTask() *asynq.Task {
	return asynq.NewTask(TaskQuoteExpireScan, nil)
}

// Mailer delivers one message. The SMTP implementation lives in the
// worker binary; tests substitute a recorder.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// NewSendEmailHandler returns the mail:send handler.
func NewSendEmailHandler(logger *slog.Logger, mailer Mailer) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload SendEmailPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
		if err := mailer.Send(ctx, payload.To, payload.Subject, payload.Body); err != nil {
			logger.Error("send email", slog.String("to", payload.To), slog.Any("error", err))
			return err
		}
		logger.Info("email sent", slog.String("to", payload.To), slog.String("subject", payload.Subject))
		return nil
	}
}
