package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"twitterclone/internal/model"
	"twitterclone/internal/repository"
)

// feedLimit caps the home feed at the four newest tweets.
const feedLimit = 4

var (
	ErrTweetNotVisible = errors.New("tweet not visible to caller")
	ErrCallerNotFound  = errors.New("caller not found")
)

// FeedCache holds rendered feeds keyed by user id. Implementations are
// best-effort; the service treats every cache failure as a miss.
type FeedCache interface {
	GetFeed(ctx context.Context, userID uint) ([]repository.FeedEntry, bool, error)
	SetFeed(ctx context.Context, userID uint, entries []repository.FeedEntry) error
	DeleteFeed(ctx context.Context, userID uint) error
}

// AsyncTweetPublisher hands a freshly created tweet to the background
// feed-invalidation pipeline.
type AsyncTweetPublisher interface {
	Publish(ctx context.Context, tweet model.Tweet) error
}

type TweetService struct {
	userRepo   *repository.UserRepository
	tweetRepo  *repository.TweetRepository
	followRepo *repository.FollowRepository
	likeRepo   *repository.LikeRepository
	replyRepo  *repository.ReplyRepository

	feedCache FeedCache
	publisher AsyncTweetPublisher
}

func NewTweetService(
	userRepo *repository.UserRepository,
	tweetRepo *repository.TweetRepository,
	followRepo *repository.FollowRepository,
	likeRepo *repository.LikeRepository,
	replyRepo *repository.ReplyRepository,
	feedCache FeedCache,
	publisher AsyncTweetPublisher,
) *TweetService {
	return &TweetService{
		userRepo:   userRepo,
		tweetRepo:  tweetRepo,
		followRepo: followRepo,
		likeRepo:   likeRepo,
		replyRepo:  replyRepo,
		feedCache:  feedCache,
		publisher:  publisher,
	}
}

// Feed returns the caller's home feed: the newest tweets from followed
// users, at most feedLimit of them. Cached copies may lag a concurrent
// post by the cache TTL; the invalidation worker narrows that window.
func (s *TweetService) Feed(ctx context.Context, username string) ([]repository.FeedEntry, error) {
	caller, err := s.resolveCaller(username)
	if err != nil {
		return nil, err
	}

	if s.feedCache != nil {
		if cached, hit, cacheErr := s.feedCache.GetFeed(ctx, caller.UserID); cacheErr == nil && hit {
			return cached, nil
		}
	}

	entries, err := s.tweetRepo.Feed(caller.UserID, feedLimit)
	if err != nil {
		return nil, err
	}

	if s.feedCache != nil {
		if err := s.feedCache.SetFeed(ctx, caller.UserID, entries); err != nil {
			log.Printf("cache feed for user %d failed: %v", caller.UserID, err)
		}
	}
	return entries, nil
}

// Following returns the display names of the users the caller follows.
func (s *TweetService) Following(username string) ([]string, error) {
	caller, err := s.resolveCaller(username)
	if err != nil {
		return nil, err
	}
	return s.followRepo.ListFollowingNames(caller.UserID)
}

// Detail returns one tweet with its like/reply counts, gated by the
// follow relationship.
func (s *TweetService) Detail(username string, tweetID uint) (*repository.TweetWithCounts, error) {
	caller, err := s.resolveCaller(username)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeTweet(caller.UserID, tweetID); err != nil {
		return nil, err
	}

	detail, err := s.tweetRepo.GetWithCounts(tweetID)
	if err != nil {
		return nil, err
	}
	if detail == nil {
		// Visible a moment ago but gone now; treat like any other
		// unauthorized access.
		return nil, ErrTweetNotVisible
	}
	return detail, nil
}

// Likes returns the usernames that liked the tweet, gated by the follow
// relationship.
func (s *TweetService) Likes(username string, tweetID uint) ([]string, error) {
	caller, err := s.resolveCaller(username)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeTweet(caller.UserID, tweetID); err != nil {
		return nil, err
	}
	return s.likeRepo.ListUsernames(tweetID)
}

// Replies returns the replies to the tweet, gated by the follow
// relationship.
func (s *TweetService) Replies(username string, tweetID uint) ([]repository.ReplyEntry, error) {
	caller, err := s.resolveCaller(username)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeTweet(caller.UserID, tweetID); err != nil {
		return nil, err
	}
	return s.replyRepo.ListByTweet(tweetID)
}

// OwnTweets lists the caller's tweets with like/reply counts. No follow
// gate applies to a user's own tweets.
func (s *TweetService) OwnTweets(username string) ([]repository.TweetWithCounts, error) {
	caller, err := s.resolveCaller(username)
	if err != nil {
		return nil, err
	}
	return s.tweetRepo.ListByAuthor(caller.UserID)
}

// Post stores a tweet stamped with the current time and hands it to the
// feed-invalidation pipeline. Publishing is best effort: a broker outage
// must not fail the write.
func (s *TweetService) Post(ctx context.Context, username, text string) error {
	caller, err := s.resolveCaller(username)
	if err != nil {
		return err
	}

	tweet := &model.Tweet{
		Tweet:    text,
		UserID:   caller.UserID,
		DateTime: time.Now(),
	}
	if err := s.tweetRepo.Create(tweet); err != nil {
		return err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, *tweet); err != nil {
			log.Printf("publish tweet %d failed: %v", tweet.TweetID, err)
		}
	}
	return nil
}

func (s *TweetService) resolveCaller(username string) (*model.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Token validated but the user row is missing; users are never
		// deleted, so this is a server-side inconsistency.
		return nil, fmt.Errorf("%w: %s", ErrCallerNotFound, username)
	}
	return user, nil
}

func (s *TweetService) authorizeTweet(callerID, tweetID uint) error {
	ok, err := s.tweetRepo.CanView(callerID, tweetID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTweetNotVisible
	}
	return nil
}
