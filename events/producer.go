package events

import (
	"encoding/json"
	"log"

	"github.com/IBM/sarama"

	"github.com/BethCNC/dad-social-media-agent-sub000/wizard"
)

// Producer publishes wizard telemetry events to Kafka. It satisfies the
// orchestrator's EventSink: Publish never blocks the flow, a broker problem is
// logged and the event dropped.
type Producer struct {
	producer sarama.AsyncProducer
	topic    string
}

// ProducerConfig holds Kafka producer configuration
type ProducerConfig struct {
	Brokers []string
	Topic   string
}

// NewProducer creates a Kafka producer for pipeline events.
func NewProducer(config ProducerConfig) (*Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Producer.RequiredAcks = sarama.WaitForLocal
	saramaConfig.Producer.Return.Successes = false
	saramaConfig.Producer.Return.Errors = true

	client, err := sarama.NewAsyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, err
	}

	p := &Producer{producer: client, topic: config.Topic}

	go func() {
		for err := range client.Errors() {
			log.Printf("❌ Kafka producer error: %v", err)
		}
	}()

	return p, nil
}

// Publish sends one event, keyed by session so a session's events stay ordered
// within a partition.
func (p *Producer) Publish(event wizard.Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("❌ Failed to marshal event: %v", err)
		return
	}

	p.producer.Input() <- &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(event.SessionID),
		Value: sarama.ByteEncoder(payload),
	}
}

// Close gracefully shuts down the producer.
func (p *Producer) Close() error {
	log.Println("Closing Kafka producer...")
	return p.producer.Close()
}
