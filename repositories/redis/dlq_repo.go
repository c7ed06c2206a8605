package redis

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"fmt"

	// Local Packages
	models "notif-stream/models"

	// External Packages
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DeadLetterQueue stores records that exhausted the consumer's retry
// envelope so they can be inspected or replayed by hand. Keys are
// "notif-dlq:{partition key}", i.e. the transaction id.
type DeadLetterQueue struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
}

func NewDeadLetterQueue(client *redis.Client, logger *zap.Logger) *DeadLetterQueue {
	return &DeadLetterQueue{client: client, logger: logger, prefix: "notif-dlq"}
}

// Send stores the failed records. A record that cannot be stored is logged
// and skipped; dead-lettering is best effort and must not fail the consumer.
func (r *DeadLetterQueue) Send(ctx context.Context, records []models.Record) error {
	if len(records) == 0 {
		return nil
	}

	successCount := 0
	for _, record := range records {
		jsonData, err := json.Marshal(record)
		if err != nil {
			r.logger.Error("failed to marshal record", zap.Error(err))
			continue
		}

		key := fmt.Sprintf("%s:%s", r.prefix, record.Key)
		if err = r.client.Set(ctx, key, jsonData, 0).Err(); err != nil {
			r.logger.Error("failed to store record", zap.String("key", key), zap.Error(err))
			continue
		}
		successCount++
	}

	if successCount > 0 {
		r.logger.Info("dead-lettered records", zap.Int("count", successCount))
	}

	return nil
}
