package utils

import (
	"time"

	"github.com/pedrosilva76986974-afk/Back-birthday-fund/config"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// NewKafkaWriter returns a writer for the notification topic.
func NewKafkaWriter(cfg *config.Config) *kafka.Writer {
	Log.Info("🔌 Kafka writer configured",
		zap.Strings("brokers", cfg.KafkaBrokers),
		zap.String("topic", cfg.KafkaNotificationTopic))

	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaNotificationTopic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		BatchTimeout: 50 * time.Millisecond,
		Async:        true,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			SLog.Errorf("kafka writer: "+msg, args...)
		}),
	}
}

// NewKafkaReader returns a consumer-group reader for the notification topic.
func NewKafkaReader(cfg *config.Config) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.KafkaBrokers,
		Topic:          cfg.KafkaNotificationTopic,
		GroupID:        cfg.KafkaGroupID,
		MinBytes:       1,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	})
}
