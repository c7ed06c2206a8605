package notifier

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"

	// Local Packages
	errors "notif-stream/errors"
	models "notif-stream/models"

	// External Packages
	"go.uber.org/zap"
)

type NotificationRepository interface {
	Create(ctx context.Context, notification *models.Notification) (*models.Notification, error)
}

// Processor turns delivered transaction-event records into notification
// records. Decode failures are the only errors it returns; everything that
// goes wrong past decoding is logged here and swallowed, so the consumer's
// retry envelope never replays business-logic failures.
type Processor struct {
	Logger *zap.Logger
	Repo   NotificationRepository
}

func NewProcessor(logger *zap.Logger, repo NotificationRepository) *Processor {
	return &Processor{Logger: logger, Repo: repo}
}

// ProcessRecord handles a single delivered record. An empty payload is a
// poison message: retrying reproduces nothing actionable, so it is logged
// and dropped without error.
func (p *Processor) ProcessRecord(ctx context.Context, record models.Record) error {
	if len(record.Value) == 0 {
		p.Logger.Error("received empty event payload", zap.String("key", string(record.Key)))
		return nil
	}

	var event models.TransactionEvent
	if err := json.Unmarshal(record.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal transaction event: %w", err)
	}

	if event.Status != models.StatusCompleted {
		p.Logger.Info("skipping transaction event",
			zap.String("transaction_id", event.TransactionID),
			zap.String("status", event.Status))
		return nil
	}

	p.createNotification(ctx, &event)
	return nil
}

func (p *Processor) createNotification(ctx context.Context, event *models.TransactionEvent) {
	notification, err := BuildNotification(event)
	if err != nil {
		p.Logger.Error("cannot create notification",
			zap.String("transaction_id", event.TransactionID),
			zap.Error(err))
		return
	}

	saved, err := p.Repo.Create(ctx, notification)
	if err != nil {
		if errors.Is(errors.Exist, err) {
			p.Logger.Info("notification already exists, skipping duplicate delivery",
				zap.String("transaction_id", event.TransactionID),
				zap.String("notification_id", notification.NotificationID))
			return
		}
		p.Logger.Error("failed to persist notification",
			zap.String("transaction_id", event.TransactionID),
			zap.String("notification_id", notification.NotificationID),
			zap.Error(err))
		return
	}

	p.Logger.Info("notification created",
		zap.String("transaction_id", event.TransactionID),
		zap.String("notification_id", saved.NotificationID),
		zap.Int64("id", saved.ID))
}
