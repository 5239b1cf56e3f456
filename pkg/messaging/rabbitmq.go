package messaging

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/noah-isme/tutoring-api/pkg/config"
)

// Message is a JSON payload bound for an exchange.
type Message struct {
	ID            string
	CorrelationID string
	RoutingKey    string
	Body       []byte
	Timestamp  time.Time
}

// Publisher delivers messages to a broker.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// RabbitMQPublisher publishes persistent JSON messages to a topic exchange.
type RabbitMQPublisher struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
	mu       sync.Mutex
}

// NewRabbitMQ dials the broker and declares the events exchange.
func NewRabbitMQ(cfg config.NotificationsConfig) (*RabbitMQPublisher, error) {
	conn, err := amqp091.Dial(cfg.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("connect rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	if err := channel.ExchangeDeclare(cfg.Exchange, amqp091.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", cfg.Exchange, err)
	}

	return &RabbitMQPublisher{conn: conn, channel: channel, exchange: cfg.Exchange}, nil
}

// Publish sends msg with the routing key it carries.
func (p *RabbitMQPublisher) Publish(ctx context.Context, msg Message) error {
	publishing := amqp091.Publishing{
		ContentType:   "application/json",
		MessageId:     msg.ID,
		CorrelationId: msg.CorrelationID,
		Timestamp:     msg.Timestamp,
		Body:          msg.Body,
		DeliveryMode:  amqp091.Persistent,
		Headers: amqp091.Table{
			"message_type": "JSON",
		},
	}

	// amqp channels are not safe for concurrent publishers
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.PublishWithContext(ctx, p.exchange, msg.RoutingKey, false, false, publishing); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// Close releases the channel and the connection.
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.channel.Close(); err != nil {
		_ = p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// NopPublisher drops every message. Used when notifications are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Message) error { return nil }
func (NopPublisher) Close() error                           { return nil }
