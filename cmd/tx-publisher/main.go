package main

import (
	// Go Internal Packages
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Local Packages
	config "notif-stream/config"
	helpers "notif-stream/helpers"
	kafka "notif-stream/kafka"
	models "notif-stream/models"

	// External Packages
	"github.com/alecthomas/kingpin/v2"
	_ "github.com/jsternberg/zap-logfmt"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/twmb/franz-go/plugin/kprom"
	"go.uber.org/zap"
)

// Flags for the event to publish. The tool stands in for the transaction
// service at the topic boundary: it publishes one event and exits.
var (
	configPath    = kingpin.Flag("config", "Path to the application config file").Short('c').Default("config.yml").String()
	transactionID = kingpin.Flag("transaction-id", "Transaction id, also the partition key").Required().String()
	userID        = kingpin.Flag("user-id", "User id owning the transaction").Int64()
	txType        = kingpin.Flag("type", "Transaction type (DEPOSIT, WITHDRAWAL, TRANSFER)").String()
	amount        = kingpin.Flag("amount", "Transaction amount, rendered verbatim").String()
	currency      = kingpin.Flag("currency", "Currency code").String()
	status        = kingpin.Flag("status", "Transaction status").Default(models.StatusCompleted).String()
	description   = kingpin.Flag("description", "Free text description").String()
)

// LoadConfig loads the default configuration and overrides it with the config file
func LoadConfig() *koanf.Koanf {
	kingpin.Parse()
	k := koanf.New(".")
	_ = k.Load(rawbytes.Provider(config.DefaultConfig), yaml.Parser())
	if *configPath != "" {
		_ = k.Load(file.Provider(*configPath), yaml.Parser())
	}
	return k
}

func buildEvent() *models.TransactionEvent {
	event := &models.TransactionEvent{
		TransactionID:   *transactionID,
		TransactionType: *txType,
		Currency:        *currency,
		Status:          *status,
		Description:     *description,
	}
	if *amount != "" {
		event.Amount = json.Number(*amount)
	}
	if *userID != 0 {
		uid := *userID
		event.UserID = &uid
	}
	return event
}

func main() {
	k := LoadConfig()
	appKonf := config.Config{}

	err := k.Unmarshal("", &appKonf)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	if err = appKonf.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Encoding = "logfmt"
	_ = cfg.Level.UnmarshalText([]byte(k.String("logger.level")))
	cfg.InitialFields = make(map[string]any)
	cfg.InitialFields["host"], _ = os.Hostname()
	cfg.InitialFields["service"] = "tx-publisher"
	cfg.OutputPaths = []string{"stdout"}
	logger, _ := cfg.Build()
	defer func() {
		_ = logger.Sync()
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := kprom.NewMetrics("ns")
	conf := &kafka.PublisherConfig{
		Brokers: appKonf.Kafka.Brokers,
		Topic:   appKonf.Kafka.Topic,
	}

	publisher, err := kafka.NewPublisher(conf, logger, metrics)
	if err != nil {
		logger.Fatal("cannot create event publisher", zap.Error(err))
	}

	event := buildEvent()
	if !appKonf.IsProdMode {
		helpers.PrintStruct(event)
	}

	publisher.Publish(ctx, event)

	flushCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	publisher.Close(flushCtx)
}
