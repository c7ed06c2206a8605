package kafka

import (
	// Go Internal Packages
	"context"
	"errors"
	"fmt"
	"time"

	// Local Packages
	models "notif-stream/models"
	utils "notif-stream/utils"

	// External Packages
	"github.com/twmb/franz-go/pkg/kgo"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

type ConsumerConfig struct {
	Brokers        []string
	Group          string
	Topic          string
	RecordsPerPoll int
	MaxAttempts    int
	RetryBackoff   time.Duration
}

// RecordProcessor handles one delivered record. A returned error is treated
// as transient and replayed by the consumer's retry envelope; errors the
// processor swallows internally are not.
type RecordProcessor interface {
	ProcessRecord(ctx context.Context, record models.Record) error
}

// DeadLetterSink receives records that exhausted the retry envelope.
type DeadLetterSink interface {
	Send(ctx context.Context, records []models.Record) error
}

type Consumer struct {
	Client    *kgo.Client
	Config    *ConsumerConfig
	Processor RecordProcessor
	DLQ       DeadLetterSink
	Logger    *zap.Logger
}

// NewConsumer creates a consumer-group client for the transaction-events
// topic (PS: Must call Poll to start consuming the records)
func NewConsumer(conf *ConsumerConfig, logger *zap.Logger, processor RecordProcessor, dlq DeadLetterSink, metrics *kprom.Metrics) (*Consumer, error) {
	c := &Consumer{Config: conf, Processor: processor, DLQ: dlq, Logger: logger}

	opts := []kgo.Opt{
		kgo.SeedBrokers(conf.Brokers...), // Connects to Kafka brokers
		kgo.ConsumerGroup(conf.Group),    // Specifies the consumer group
		kgo.ConsumeTopics(conf.Topic),    // Specifies a single topic to consume
		kgo.WithHooks(metrics),           // Attaches monitoring hooks
		kgo.DisableAutoCommit(),          // Disables auto-commit
		kgo.BlockRebalanceOnPoll(),       // Blocks rebalancing until the poll loop is running
		kgo.OnPartitionsAssigned(func(_ context.Context, _ *kgo.Client, assigned map[string][]int32) {
			for topic, partitions := range assigned {
				logger.Info("partitions assigned",
					zap.String("topic", topic),
					zap.String("partitions", utils.JoinInt32Slice(partitions)))
			}
		}),
	}

	client, err := kgo.NewClient(opts...)
	if err != nil || client == nil {
		return nil, err
	}

	c.Client = client
	return c, nil
}

// Poll polls for records from the Kafka broker. Records of one partition are
// handled sequentially, so events sharing a transaction id keep their order.
func (c *Consumer) Poll(ctx context.Context) error {
	defer c.Client.Close()

	group := c.Config.Group
	recordsPerPoll := c.Config.RecordsPerPoll

	for {
		// Check if the context is canceled before polling
		if ctx.Err() != nil {
			c.Logger.Warn("Polling stopped: context canceled")
			return ctx.Err() // Exit gracefully
		}

		c.Logger.Info(fmt.Sprintf("%s: polling for records", group))
		fetches := c.Client.PollRecords(ctx, recordsPerPoll)

		// Handle client shutdown
		if fetches.IsClientClosed() {
			return errors.New("kafka client closed")
		}

		// Handle context cancellation explicitly
		if errors.Is(fetches.Err0(), context.Canceled) {
			return errors.New("context got canceled")
		}

		for _, record := range fetches.Records() {
			c.ProcessWithRetry(ctx, models.Record{
				Key:   record.Key,
				Value: record.Value,
				Topic: record.Topic,
			})
		}

		// Commit the whole fetch; failed records went to the DLQ above and
		// must not be redelivered by the broker as well
		_ = c.Client.CommitRecords(ctx, fetches.Records()...)
	}
}

// ProcessWithRetry invokes the processor under a fixed-backoff envelope:
// MaxAttempts total invocations, RetryBackoff between them. A record that
// still fails is logged and routed to the dead-letter sink, never retried
// again.
func (c *Consumer) ProcessWithRetry(ctx context.Context, record models.Record) {
	maxAttempts := c.Config.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = c.Processor.ProcessRecord(ctx, record)
		if err == nil {
			return
		}

		c.Logger.Warn("failed to process record",
			zap.String("key", string(record.Key)),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt < maxAttempts && !c.sleep(ctx) {
			break
		}
	}

	c.Logger.Error("giving up on record after retries",
		zap.String("key", string(record.Key)),
		zap.Int("attempts", maxAttempts),
		zap.Error(err))

	if dlqErr := c.DLQ.Send(ctx, []models.Record{record}); dlqErr != nil {
		c.Logger.Error("failed to send record to dead-letter queue",
			zap.String("key", string(record.Key)),
			zap.Error(dlqErr))
	}
}

// sleep waits out the backoff, returning false when the context ends first.
func (c *Consumer) sleep(ctx context.Context) bool {
	timer := time.NewTimer(c.Config.RetryBackoff)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
