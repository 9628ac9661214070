package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"damai-site/pkg/config"
	"damai-site/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	MediaExchange          = "media"
	OrphanedMediaQueueName = "orphaned_media"
	OrphanedMediaRouting   = "media.orphaned"
)

// OrphanedMedia describes a stored object whose best-effort delete failed
// after its record was removed or replaced. Nobody retries it automatically.
type OrphanedMedia struct {
	Key        string    `json:"key"`
	Category   string    `json:"category"`
	RecordID   string    `json:"record_id"`
	Reason     string    `json:"reason"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	if cfg.RabbitMQHost == "" {
		return nil, fmt.Errorf("RABBITMQ_HOST is not set")
	}

	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func declareTopology(channel *amqp.Channel) error {
	err := channel.ExchangeDeclare(
		MediaExchange, // name
		"direct",      // type
		true,          // durable
		false,         // auto-deleted
		false,         // internal
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		OrphanedMediaQueueName, // name
		true,                   // durable
		false,                  // delete when unused
		false,                  // exclusive
		false,                  // no-wait
		nil,                    // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := channel.QueueBind(OrphanedMediaQueueName, OrphanedMediaRouting, MediaExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func (c *Client) PublishOrphanedMedia(ctx context.Context, event OrphanedMedia) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = c.channel.PublishWithContext(ctx,
		MediaExchange,        // exchange
		OrphanedMediaRouting, // routing key
		false,                // mandatory
		false,                // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish orphaned media key=%s: %v", event.Key, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published orphaned media key=%s record=%s", event.Key, event.RecordID)
	return nil
}

// ConsumeOrphanedMedia blocks until ctx is done, handing each event to handler.
// A handler error requeues the message.
func (c *Client) ConsumeOrphanedMedia(ctx context.Context, handler func(OrphanedMedia) error) error {
	msgs, err := c.channel.Consume(
		OrphanedMediaQueueName, // queue
		"",                     // consumer
		false,                  // auto-ack
		false,                  // exclusive
		false,                  // no-local
		false,                  // no-wait
		nil,                    // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			var event OrphanedMedia
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				c.logger.Error("[RABBITMQ] Dropping malformed orphaned media message: %v", err)
				msg.Nack(false, false)
				continue
			}
			if err := handler(event); err != nil {
				c.logger.Error("[RABBITMQ] Handler failed for key=%s: %v", event.Key, err)
				msg.Nack(false, true)
				continue
			}
			msg.Ack(false)
		}
	}
}
