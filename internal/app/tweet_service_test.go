package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"twitterclone/internal/model"
	"twitterclone/internal/repository"
)

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{
		Username: username,
		Password: "digest",
		Name:     "Name of " + username,
		Gender:   "other",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedFollow(t *testing.T, db *gorm.DB, followerID, followingID uint) {
	t.Helper()
	require.NoError(t, db.Create(&model.Follow{
		FollowerUserID:  followerID,
		FollowingUserID: followingID,
	}).Error)
}

func TestTweetService_FeedScenario(t *testing.T) {
	db, r := setupTestDB(t)
	svc := newTestTweetService(r)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedUser(t, db, "carol")
	seedFollow(t, db, alice.UserID, bob.UserID)

	require.NoError(t, svc.Post(context.Background(), "bob", "hello"))
	require.NoError(t, svc.Post(context.Background(), "carol", "nobody follows me"))

	feed, err := svc.Feed(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "bob", feed[0].Username)
	assert.Equal(t, "hello", feed[0].Tweet)

	// carol's tweet appears in neither alice's nor bob's feed.
	bobFeed, err := svc.Feed(context.Background(), "bob")
	require.NoError(t, err)
	assert.Empty(t, bobFeed)
}

func TestTweetService_DetailAuthorization(t *testing.T) {
	db, r := setupTestDB(t)
	svc := newTestTweetService(r)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	seedFollow(t, db, alice.UserID, bob.UserID)

	bobTweet := &model.Tweet{Tweet: "hello", UserID: bob.UserID, DateTime: time.Now()}
	require.NoError(t, r.tweet.Create(bobTweet))
	carolTweet := &model.Tweet{Tweet: "hidden", UserID: carol.UserID, DateTime: time.Now()}
	require.NoError(t, r.tweet.Create(carolTweet))

	detail, err := svc.Detail("alice", bobTweet.TweetID)
	require.NoError(t, err)
	assert.Equal(t, "hello", detail.Tweet)
	assert.Zero(t, detail.Likes)
	assert.Zero(t, detail.Replies)

	// An existing tweet outside the follow graph is rejected the same way
	// as a nonexistent one.
	_, err = svc.Detail("alice", carolTweet.TweetID)
	assert.ErrorIs(t, err, ErrTweetNotVisible)

	_, err = svc.Detail("alice", 99999)
	assert.ErrorIs(t, err, ErrTweetNotVisible)
}

func TestTweetService_LikesAndReplies(t *testing.T) {
	db, r := setupTestDB(t)
	svc := newTestTweetService(r)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")
	seedFollow(t, db, alice.UserID, bob.UserID)

	tweet := &model.Tweet{Tweet: "popular", UserID: bob.UserID, DateTime: time.Now()}
	require.NoError(t, r.tweet.Create(tweet))
	require.NoError(t, r.like.Create(&model.Like{TweetID: tweet.TweetID, UserID: carol.UserID}))
	require.NoError(t, r.reply.Create(&model.Reply{TweetID: tweet.TweetID, UserID: carol.UserID, Reply: "nice"}))

	likes, err := svc.Likes("alice", tweet.TweetID)
	require.NoError(t, err)
	assert.Equal(t, []string{"carol"}, likes)

	replies, err := svc.Replies("alice", tweet.TweetID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "carol", replies[0].Username)
	assert.Equal(t, "nice", replies[0].Reply)

	// carol does not follow bob, so the same queries are denied for her.
	_, err = svc.Likes("carol", tweet.TweetID)
	assert.ErrorIs(t, err, ErrTweetNotVisible)
	_, err = svc.Replies("carol", tweet.TweetID)
	assert.ErrorIs(t, err, ErrTweetNotVisible)
}

func TestTweetService_PostThenOwnTweets(t *testing.T) {
	db, r := setupTestDB(t)
	svc := newTestTweetService(r)

	seedUser(t, db, "bob")

	require.NoError(t, svc.Post(context.Background(), "bob", "my first tweet"))

	tweets, err := svc.OwnTweets("bob")
	require.NoError(t, err)
	require.Len(t, tweets, 1)
	assert.Equal(t, "my first tweet", tweets[0].Tweet)
	assert.Zero(t, tweets[0].Likes)
	assert.Zero(t, tweets[0].Replies)
	assert.WithinDuration(t, time.Now(), tweets[0].DateTime, time.Minute)
}

func TestTweetService_Following(t *testing.T) {
	db, r := setupTestDB(t)
	svc := newTestTweetService(r)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedFollow(t, db, alice.UserID, bob.UserID)

	names, err := svc.Following("alice")
	require.NoError(t, err)
	assert.Equal(t, []string{"Name of bob"}, names)

	names, err = svc.Following("bob")
	require.NoError(t, err)
	assert.Empty(t, names)
}

// memoryFeedCache is a map-backed FeedCache for exercising the cache
// read-through path without redis.
type memoryFeedCache struct {
	mu      sync.Mutex
	entries map[uint][]repository.FeedEntry
}

func newMemoryFeedCache() *memoryFeedCache {
	return &memoryFeedCache{entries: make(map[uint][]repository.FeedEntry)}
}

func (c *memoryFeedCache) GetFeed(_ context.Context, userID uint) ([]repository.FeedEntry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entries, ok := c.entries[userID]
	return entries, ok, nil
}

func (c *memoryFeedCache) SetFeed(_ context.Context, userID uint, entries []repository.FeedEntry) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = entries
	return nil
}

func (c *memoryFeedCache) DeleteFeed(_ context.Context, userID uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	return nil
}

func TestTweetService_FeedUsesCache(t *testing.T) {
	db, r := setupTestDB(t)
	feedCache := newMemoryFeedCache()
	svc := NewTweetService(r.user, r.tweet, r.follow, r.like, r.reply, feedCache, nil)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	seedFollow(t, db, alice.UserID, bob.UserID)

	require.NoError(t, svc.Post(context.Background(), "bob", "hello"))

	first, err := svc.Feed(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, first, 1)

	// A second post does not show until the cached feed is dropped.
	require.NoError(t, svc.Post(context.Background(), "bob", "again"))

	cached, err := svc.Feed(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	require.NoError(t, feedCache.DeleteFeed(context.Background(), alice.UserID))

	fresh, err := svc.Feed(context.Background(), "alice")
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}
