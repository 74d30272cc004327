package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"twitterclone/internal/model"
)

// TweetEventPublisher enqueues tweet-created events for the feed
// invalidation worker.
type TweetEventPublisher struct {
	conn      *amqp.Connection
	queueName string
}

func NewTweetEventPublisher(conn *amqp.Connection, queueName string) *TweetEventPublisher {
	return &TweetEventPublisher{
		conn:      conn,
		queueName: queueName,
	}
}

func (p *TweetEventPublisher) Publish(ctx context.Context, tweet model.Tweet) error {
	ch, err := p.conn.Channel()
	if err != nil {
		return fmt.Errorf("open rabbitmq channel failed: %w", err)
	}
	defer ch.Close()

	_, err = ch.QueueDeclare(
		p.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue failed: %w", err)
	}

	payload, err := json.Marshal(tweet)
	if err != nil {
		return fmt.Errorf("marshal tweet event failed: %w", err)
	}

	if err := ch.PublishWithContext(
		ctx,
		"",
		p.queueName,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         payload,
			DeliveryMode: amqp.Persistent,
		},
	); err != nil {
		return fmt.Errorf("publish tweet event failed: %w", err)
	}
	return nil
}
