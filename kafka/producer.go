package kafka

import (
	// Go Internal Packages
	"context"
	"encoding/json"

	// Local Packages
	models "notif-stream/models"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

type PublisherConfig struct {
	Brokers []string
	Topic   string
}

// Publisher sends transaction events to the transaction-events topic,
// fire-and-forget: the caller is never blocked on delivery and never sees
// a publish failure. Records are keyed by transaction id so events of one
// transaction land on one partition, in order.
type Publisher struct {
	Client *kgo.Client
	Config *PublisherConfig
	Logger *zap.Logger
}

func NewPublisher(conf *PublisherConfig, logger *zap.Logger, metrics *kprom.Metrics) (*Publisher, error) {
	opts := []kgo.Opt{
		kgo.SeedBrokers(conf.Brokers...),
		kgo.DefaultProduceTopic(conf.Topic),
		kgo.WithHooks(metrics),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil || client == nil {
		return nil, err
	}

	return &Publisher{Client: client, Config: conf, Logger: logger}, nil
}

// Publish serializes and submits the event. Any failure during the
// synchronous submit step is logged and swallowed; the async delivery
// outcome is logged by the completion callback and is observability only,
// never control flow.
func (p *Publisher) Publish(ctx context.Context, event *models.TransactionEvent) {
	p.Logger.Info("sending transaction event",
		zap.String("transaction_id", event.TransactionID),
		zap.String("status", event.Status),
		zap.String("type", event.TransactionType))

	payload, err := json.Marshal(event)
	if err != nil {
		p.Logger.Error("failed to serialize transaction event",
			zap.String("transaction_id", event.TransactionID),
			zap.Error(err))
		return
	}

	record := &kgo.Record{
		Key:   []byte(event.TransactionID),
		Value: payload,
	}

	transactionID := event.TransactionID
	p.Client.Produce(ctx, record, func(r *kgo.Record, err error) {
		// Runs on a client-managed goroutine; must not block
		if err != nil {
			p.Logger.Error("failed to publish transaction event",
				zap.String("transaction_id", transactionID),
				zap.Error(err))
			return
		}
		p.Logger.Info("transaction event published",
			zap.String("transaction_id", transactionID),
			zap.String("topic", r.Topic),
			zap.Int32("partition", r.Partition),
			zap.Int64("offset", r.Offset))
	})
}

// Close flushes outstanding records and releases the client.
func (p *Publisher) Close(ctx context.Context) {
	if err := p.Client.Flush(ctx); err != nil {
		p.Logger.Error("failed to flush pending events", zap.Error(err))
	}
	p.Client.Close()
}
