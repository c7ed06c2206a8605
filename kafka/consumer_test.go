package kafka

import (
	// Go Internal Packages
	"context"
	"errors"
	"testing"
	"time"

	// Local Packages
	models "notif-stream/models"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProcessor struct {
	calls    int
	failures int // fail this many leading invocations
}

func (f *fakeProcessor) ProcessRecord(_ context.Context, _ models.Record) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("transient decode failure")
	}
	return nil
}

type fakeDLQ struct {
	records []models.Record
}

func (f *fakeDLQ) Send(_ context.Context, records []models.Record) error {
	f.records = append(f.records, records...)
	return nil
}

func newTestConsumer(processor RecordProcessor, dlq DeadLetterSink, backoff time.Duration) *Consumer {
	return &Consumer{
		Config: &ConsumerConfig{
			Group:        "notification-service-group",
			Topic:        "transaction-events",
			MaxAttempts:  3,
			RetryBackoff: backoff,
		},
		Processor: processor,
		DLQ:       dlq,
		Logger:    zap.NewNop(),
	}
}

func TestProcessWithRetrySucceedsFirstAttempt(t *testing.T) {
	processor := &fakeProcessor{}
	dlq := &fakeDLQ{}
	c := newTestConsumer(processor, dlq, 10*time.Millisecond)

	c.ProcessWithRetry(context.Background(), models.Record{Key: []byte("T1")})

	assert.Equal(t, 1, processor.calls)
	assert.Empty(t, dlq.records)
}

func TestProcessWithRetrySucceedsOnThirdAttempt(t *testing.T) {
	processor := &fakeProcessor{failures: 2}
	dlq := &fakeDLQ{}
	backoff := 20 * time.Millisecond
	c := newTestConsumer(processor, dlq, backoff)

	start := time.Now()
	c.ProcessWithRetry(context.Background(), models.Record{Key: []byte("T1")})
	elapsed := time.Since(start)

	assert.Equal(t, 3, processor.calls)
	assert.Empty(t, dlq.records)
	// two backoff waits sit between the three attempts
	assert.GreaterOrEqual(t, elapsed, 2*backoff)
}

func TestProcessWithRetryExhaustionGoesToDLQ(t *testing.T) {
	processor := &fakeProcessor{failures: 10}
	dlq := &fakeDLQ{}
	c := newTestConsumer(processor, dlq, time.Millisecond)

	record := models.Record{Key: []byte("T1"), Value: []byte("{broken")}
	c.ProcessWithRetry(context.Background(), record)

	assert.Equal(t, 3, processor.calls, "no fourth attempt after the envelope is spent")
	require.Len(t, dlq.records, 1)
	assert.Equal(t, record.Key, dlq.records[0].Key)
	assert.Equal(t, record.Value, dlq.records[0].Value)
}

func TestProcessWithRetryStopsOnContextCancel(t *testing.T) {
	processor := &fakeProcessor{failures: 10}
	dlq := &fakeDLQ{}
	c := newTestConsumer(processor, dlq, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.ProcessWithRetry(ctx, models.Record{Key: []byte("T1")})

	assert.Equal(t, 1, processor.calls)
	assert.Len(t, dlq.records, 1)
}
