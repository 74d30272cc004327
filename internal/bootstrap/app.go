package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"twitterclone/internal/cache"
	"twitterclone/internal/config"
	"twitterclone/internal/model"
	mysqlClient "twitterclone/internal/platform/mysql"
	rabbitmqClient "twitterclone/internal/platform/rabbitmq"
	redisClient "twitterclone/internal/platform/redis"
	"twitterclone/internal/repository"
	"twitterclone/internal/worker"
)

type App struct {
	Config     *config.Config
	DB         *gorm.DB
	Redis      *redis.Client
	MQConn     *amqp.Connection
	FeedWorker *worker.FeedInvalidationWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	db, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.Tweet{},
		&model.Like{},
		&model.Reply{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	followRepo := repository.NewFollowRepository(db)
	feedCache := cache.NewFeedCache(redisCli, time.Duration(cfg.Redis.FeedTTLSeconds)*time.Second)
	feedWorker := worker.NewFeedInvalidationWorker(mqConn, followRepo, feedCache, cfg.RabbitMQ.TweetEventQueue)
	if err := feedWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start feed invalidation worker failed: %w", err)
	}

	return &App{
		Config:     cfg,
		DB:         db,
		Redis:      redisCli,
		MQConn:     mqConn,
		FeedWorker: feedWorker,
		StartedAt:  time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.FeedWorker != nil {
		a.FeedWorker.Close()
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
