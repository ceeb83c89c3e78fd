package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

type MessageHandler func(ctx context.Context, data json.RawMessage) error

// Consumer binds one queue per routing key ("notify.email" ->
// "notify.email.q") on the shared topic exchange.
type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	queue   amqp091.Queue
	handler MessageHandler
	done    chan struct{}
}

func NewConsumer(url, routingKey string) (*Consumer, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(ExchangeName, "topic", true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		routingKey+".q",
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	if err := ch.QueueBind(q.Name, routingKey, ExchangeName, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	return &Consumer{
		conn:    conn,
		channel: ch,
		queue:   q,
		done:    make(chan struct{}),
	}, nil
}

func (c *Consumer) SetHandler(h MessageHandler) { c.handler = h }

// StartConsuming blocks until Stop is called or the channel closes.
// A handler error nacks the message with a single requeue; a redelivered
// failure is dropped so a poison message cannot spin the queue.
func (c *Consumer) StartConsuming() error {
	msgs, err := c.channel.Consume(
		c.queue.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	for {
		select {
		case <-c.done:
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			if c.handler == nil {
				_ = msg.Nack(false, true)
				continue
			}
			if err := c.handler(context.Background(), msg.Body); err != nil {
				_ = msg.Nack(false, !msg.Redelivered)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}

func (c *Consumer) Stop() { close(c.done) }

func (c *Consumer) Close() {
	if c.channel != nil {
		_ = c.channel.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
