package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"go-jobboard-backend/internal/domain"

	"github.com/streadway/amqp"
)

// publisher is the part of *amqp.Channel the notifier uses
type publisher interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPNotifier publishes events as JSON to a durable queue.
// Each publish opens its own channel.
type AMQPNotifier struct {
	conn    *amqp.Connection
	queue   string
	channel func() (publisher, error)
}

// NewAMQPNotifier dials url and declares queue
func NewAMQPNotifier(url, queue string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp: dial: %w", err)
	}
	n := &AMQPNotifier{conn: conn, queue: queue}
	n.channel = func() (publisher, error) { return conn.Channel() }

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp: channel: %w", err)
	}
	defer ch.Close()
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("amqp: declare %s: %w", queue, err)
	}
	return n, nil
}

func (n *AMQPNotifier) Notify(ctx context.Context, event domain.NotificationEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ch, err := n.channel()
	if err != nil {
		return fmt.Errorf("amqp: channel: %w", err)
	}
	defer ch.Close()

	return ch.Publish(
		"",      // default exchange
		n.queue, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    event.ID,
			Timestamp:    event.OccurredAt,
			Type:         string(event.Kind),
			Body:         body,
		},
	)
}

func (n *AMQPNotifier) Close() error {
	if n.conn == nil {
		return nil
	}
	return n.conn.Close()
}
