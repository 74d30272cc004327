package http

import (
	"time"

	"github.com/gin-gonic/gin"

	appsvc "twitterclone/internal/app"
	"twitterclone/internal/bootstrap"
	"twitterclone/internal/cache"
	"twitterclone/internal/platform/rabbitmq"
	"twitterclone/internal/repository"
	"twitterclone/internal/transport/http/handler"
	"twitterclone/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.DB)
	followRepo := repository.NewFollowRepository(app.DB)
	tweetRepo := repository.NewTweetRepository(app.DB)
	likeRepo := repository.NewLikeRepository(app.DB)
	replyRepo := repository.NewReplyRepository(app.DB)

	var feedCache appsvc.FeedCache
	if app.Redis != nil {
		feedCache = cache.NewFeedCache(app.Redis, time.Duration(app.Config.Redis.FeedTTLSeconds)*time.Second)
	}
	var publisher appsvc.AsyncTweetPublisher
	if app.MQConn != nil {
		publisher = rabbitmq.NewTweetEventPublisher(app.MQConn, app.Config.RabbitMQ.TweetEventQueue)
	}

	authService := appsvc.NewAuthService(userRepo, app.Config.Auth.JWTSecret)
	tweetService := appsvc.NewTweetService(userRepo, tweetRepo, followRepo, likeRepo, replyRepo, feedCache, publisher)
	authHandler := handler.NewAuthHandler(authService)
	tweetHandler := handler.NewTweetHandler(tweetService)

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	protected := router.Group("/")
	protected.Use(middleware.AuthJWT(app.Config.Auth.JWTSecret))
	protected.GET("/user/tweets/feed", tweetHandler.Feed)
	protected.GET("/user/following", tweetHandler.Following)
	protected.GET("/user/tweets", tweetHandler.OwnTweets)
	protected.POST("/user/tweets", tweetHandler.Post)
	protected.GET("/tweets/:tweetId", tweetHandler.Detail)
	protected.GET("/tweets/:tweetId/likes", tweetHandler.Likes)
	protected.GET("/tweets/:tweetId/replies", tweetHandler.Replies)

	return router
}
