package notification

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/segmentio/kafka-go"

	"github.com/sharath018/event-management-backend/utils"
)

// StartConsumer reads activity messages off the topic and stores them as
// in-app notifications. Runs until the context is cancelled. When Kafka is
// not configured the consumer simply does not start.
func StartConsumer(ctx context.Context, svc Service) {
	brokers := os.Getenv("KAFKA_BROKERS")
	if brokers == "" {
		return
	}

	topic := os.Getenv("KAFKA_TOPIC")
	if topic == "" {
		topic = utils.DefaultActivityTopic
	}

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: strings.Split(brokers, ","),
		Topic:   topic,
		GroupID: "event-notifications",
	})

	go func() {
		defer reader.Close()
		log.Printf("✅ Kafka consumer started (topic %s)", topic)

		for {
			m, err := reader.ReadMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Printf("⚠️ Kafka read failed: %v", err)
				continue
			}

			var msg ActivityMessage
			if err := json.Unmarshal(m.Value, &msg); err != nil {
				log.Printf("⚠️ Skipping malformed activity message: %v", err)
				continue
			}

			if err := svc.Record(ctx, msg); err != nil {
				log.Printf("⚠️ Failed to record notification: %v", err)
			}
		}
	}()
}
