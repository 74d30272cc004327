package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"

	"twitterclone/internal/app"
	"twitterclone/internal/model"
	"twitterclone/internal/repository"
)

// FeedInvalidationWorker consumes tweet-created events and drops the
// cached feeds of the author's followers, so a new tweet shows up before
// the cache TTL would naturally expire it.
type FeedInvalidationWorker struct {
	conn       *amqp.Connection
	followRepo *repository.FollowRepository
	feedCache  app.FeedCache
	queueName  string

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewFeedInvalidationWorker(
	conn *amqp.Connection,
	followRepo *repository.FollowRepository,
	feedCache app.FeedCache,
	queueName string,
) *FeedInvalidationWorker {
	return &FeedInvalidationWorker{
		conn:       conn,
		followRepo: followRepo,
		feedCache:  feedCache,
		queueName:  queueName,
	}
}

func (w *FeedInvalidationWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var tweet model.Tweet
				if err := json.Unmarshal(d.Body, &tweet); err != nil {
					log.Printf("worker decode tweet event failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.invalidate(workerCtx, tweet.UserID); err != nil {
					log.Printf("worker invalidate feeds for author %d failed: %v", tweet.UserID, err)
					_ = d.Nack(false, true)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *FeedInvalidationWorker) invalidate(ctx context.Context, authorID uint) error {
	followerIDs, err := w.followRepo.ListFollowerIDs(authorID)
	if err != nil {
		return err
	}
	for _, id := range followerIDs {
		if err := w.feedCache.DeleteFeed(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

func (w *FeedInvalidationWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
