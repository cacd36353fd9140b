// Package kafka mirrors order changes to a Kafka topic for downstream consumers
// (analytics, rating prompts). Messages are keyed by order id so all events of one
// order land on the same partition in publish order.
package kafka

import (
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// Client holds the broker list parsed from a comma separated host list.
type Client struct {
	Brokers []string
}

func NewClient(brokersCSV string) *Client {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return &Client{Brokers: brokers}
}

// Enabled reports whether any broker is configured.
func (c *Client) Enabled() bool {
	return len(c.Brokers) > 0
}

// NewWriter creates a writer that flushes small batches quickly; order events are
// few and latency matters more than throughput.
func (c *Client) NewWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(c.Brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           20 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}
