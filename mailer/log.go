package mailer

import (
	"context"

	"go.uber.org/zap"
)

// LogDispatcher writes outgoing mail to the log instead of sending it.
// Used in development when no SendGrid key is configured.
type LogDispatcher struct {
	logger *zap.Logger
}

// NewLogDispatcher creates a log-only dispatcher.
func NewLogDispatcher(logger *zap.Logger) *LogDispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogDispatcher{logger: logger}
}

// Send logs the message and reports success.
func (d *LogDispatcher) Send(ctx context.Context, to, subject, htmlBody string) error {
	d.logger.Info("mail dispatch (log only)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", htmlBody),
	)
	return nil
}
