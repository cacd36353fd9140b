package mailer

import (
	"context"
	"log/slog"

	"shoporders/internal/core/domain/model/order"
)

// LogMailer writes composed emails to the log. It is used when no broker is configured.
type LogMailer struct {
	composer Composer
	logger   *slog.Logger
}

func NewLogMailer(composer Composer, logger *slog.Logger) *LogMailer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMailer{composer: composer, logger: logger.With("component", "log_mailer")}
}

func (m *LogMailer) SendOrderConfirmation(ctx context.Context, o *order.Order) error {
	m.log(ctx, m.composer.Confirmation(o))
	return nil
}

func (m *LogMailer) SendStatusUpdate(ctx context.Context, o *order.Order) error {
	m.log(ctx, m.composer.StatusUpdate(o))
	return nil
}

func (m *LogMailer) log(ctx context.Context, msg Message) {
	m.logger.InfoContext(ctx, "email not sent, no mail queue configured",
		"kind", msg.Kind,
		"orderId", msg.OrderID,
		"to", msg.To,
		"subject", msg.Subject,
	)
}
