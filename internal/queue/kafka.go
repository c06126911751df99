package queue

import (
	"context"
	"fmt"

	"github.com/segmentio/kafka-go"

	"unistay/internal/metrics"
)

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *Producer) Publish(ctx context.Context, job DispatchJob) error {
	value, err := Encode(job)
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(job.Key()),
		Value: value,
	})
	if err != nil {
		metrics.QueueJobsTotal.WithLabelValues("publish_failed").Inc()
		return fmt.Errorf("failed to publish dispatch job: %w", err)
	}
	metrics.QueueJobsTotal.WithLabelValues("published").Inc()
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

type Consumer struct {
	reader *kafka.Reader
}

func NewConsumer(brokers []string, topic, groupID string) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MaxBytes: 10e6,
		}),
	}
}

// Next blocks for the next job. Offsets are committed on read, so a job that
// fails to decode is skipped rather than redelivered.
func (c *Consumer) Next(ctx context.Context) (DispatchJob, error) {
	m, err := c.reader.ReadMessage(ctx)
	if err != nil {
		return DispatchJob{}, err
	}
	return Decode(m.Value)
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
