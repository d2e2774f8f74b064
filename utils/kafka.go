package utils

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

var kafkaWriter *kafka.Writer

const DefaultActivityTopic = "event-activity"

// InitializeKafka sets up the shared producer for the activity topic.
// Kafka is optional; without brokers, publishes become no-ops.
func InitializeKafka() {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		log.Println("⚠️ KAFKA_BROKERS not set, running without Kafka")
		return
	}

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = DefaultActivityTopic
	}

	kafkaWriter = &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}

	log.Printf("✅ Kafka producer ready (topic %s)", topic)
}

// PublishMessage sends one message to the activity topic, best effort
func PublishMessage(ctx context.Context, key string, value []byte) {
	if kafkaWriter == nil {
		return
	}

	err := kafkaWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: value,
	})
	if err != nil {
		log.Printf("⚠️ Kafka publish failed: %v", err)
	}
}
