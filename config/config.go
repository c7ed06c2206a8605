package config

import (
	// Local Packages
	errors "notif-stream/errors"
)

var DefaultConfig = []byte(`
application: "notif-stream"

logger:
  level: "debug"

is_prod_mode: false

mongo:
  uri: "mongodb://localhost:27017"

redis:
  uri: "localhost:6379"
  password: ""

kafka:
  brokers:
    - "localhost:9092"
  topic: "transaction-events"
  consumer_group: "notification-service-group"
  records_per_poll: 100
  retry:
    max_attempts: 3
    backoff_ms: 1000
`)

type Config struct {
	Application string `koanf:"application"`
	Logger      Logger `koanf:"logger"`
	IsProdMode  bool   `koanf:"is_prod_mode"`
	Mongo       Mongo  `koanf:"mongo"`
	Redis       Redis  `koanf:"redis"`
	Kafka       Kafka  `koanf:"kafka"`
}

type Logger struct {
	Level string `koanf:"level"`
}

type Mongo struct {
	URI string `koanf:"uri"`
}

type Redis struct {
	URI      string `koanf:"uri"`
	Password string `koanf:"password"`
}

type Kafka struct {
	Brokers        []string `koanf:"brokers"`
	Topic          string   `koanf:"topic"`
	ConsumerGroup  string   `koanf:"consumer_group"`
	RecordsPerPoll int      `koanf:"records_per_poll"`
	Retry          Retry    `koanf:"retry"`
}

// Retry is the fixed-backoff envelope applied per delivered record.
// MaxAttempts counts the first delivery, so 3 means 2 retries.
type Retry struct {
	MaxAttempts int `koanf:"max_attempts"`
	BackoffMs   int `koanf:"backoff_ms"`
}

// Validate validates the configuration
func (c *Config) Validate() error {
	ve := errors.ValidationErrs()

	if c.Application == "" {
		ve.Add("application", "cannot be empty")
	}
	if c.Logger.Level == "" {
		ve.Add("logger.level", "cannot be empty")
	}
	if c.Mongo.URI == "" {
		ve.Add("mongo.uri", "cannot be empty")
	}
	if c.Redis.URI == "" {
		ve.Add("redis.uri", "cannot be empty")
	}
	if len(c.Kafka.Brokers) == 0 {
		ve.Add("kafka.brokers", "cannot be empty")
	}
	if c.Kafka.Topic == "" {
		ve.Add("kafka.topic", "cannot be empty")
	}
	if c.Kafka.ConsumerGroup == "" {
		ve.Add("kafka.consumer_group", "cannot be empty")
	}
	if c.Kafka.Retry.MaxAttempts < 1 {
		ve.Add("kafka.retry.max_attempts", "must be at least 1")
	}
	if c.Kafka.Retry.BackoffMs < 0 {
		ve.Add("kafka.retry.backoff_ms", "cannot be negative")
	}

	return ve.Err()
}
