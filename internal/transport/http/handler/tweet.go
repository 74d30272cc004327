package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"twitterclone/internal/app"
	"twitterclone/internal/repository"
	"twitterclone/internal/transport/http/middleware"
	"twitterclone/internal/transport/http/response"
)

type TweetHandler struct {
	tweetService *app.TweetService
}

type PostTweetRequest struct {
	Tweet string `json:"tweet"`
}

func NewTweetHandler(tweetService *app.TweetService) *TweetHandler {
	return &TweetHandler{tweetService: tweetService}
}

// Feed returns the caller's home feed, newest first, at most four
// entries.
func (h *TweetHandler) Feed(c *gin.Context) {
	username, ok := middleware.CallerUsername(c)
	if !ok {
		response.Unauthorized(c, response.MsgInvalidJWT)
		return
	}

	entries, err := h.tweetService.Feed(c.Request.Context(), username)
	if err != nil {
		log.Printf("feed for %s failed: %v", username, err)
		response.InternalError(c)
		return
	}
	if entries == nil {
		entries = []repository.FeedEntry{}
	}

	response.OK(c, entries)
}

// Following lists the display names of users the caller follows.
func (h *TweetHandler) Following(c *gin.Context) {
	username, ok := middleware.CallerUsername(c)
	if !ok {
		response.Unauthorized(c, response.MsgInvalidJWT)
		return
	}

	names, err := h.tweetService.Following(username)
	if err != nil {
		log.Printf("following list for %s failed: %v", username, err)
		response.InternalError(c)
		return
	}

	items := make([]gin.H, 0, len(names))
	for _, name := range names {
		items = append(items, gin.H{"name": name})
	}
	response.OK(c, items)
}

// Detail returns a tweet with its like/reply counts. A tweet outside the
// caller's follow graph, including one that does not exist, yields 401.
func (h *TweetHandler) Detail(c *gin.Context) {
	username, ok := middleware.CallerUsername(c)
	if !ok {
		response.Unauthorized(c, response.MsgInvalidJWT)
		return
	}

	tweetID, ok := parseTweetID(c)
	if !ok {
		response.Unauthorized(c, response.MsgInvalidRequest)
		return
	}

	detail, err := h.tweetService.Detail(username, tweetID)
	if err != nil {
		h.renderTweetError(c, username, err)
		return
	}

	response.OK(c, detail)
}

func (h *TweetHandler) Likes(c *gin.Context) {
	username, ok := middleware.CallerUsername(c)
	if !ok {
		response.Unauthorized(c, response.MsgInvalidJWT)
		return
	}

	tweetID, ok := parseTweetID(c)
	if !ok {
		response.Unauthorized(c, response.MsgInvalidRequest)
		return
	}

	usernames, err := h.tweetService.Likes(username, tweetID)
	if err != nil {
		h.renderTweetError(c, username, err)
		return
	}
	if usernames == nil {
		usernames = []string{}
	}

	response.OK(c, gin.H{"likes": usernames})
}

func (h *TweetHandler) Replies(c *gin.Context) {
	username, ok := middleware.CallerUsername(c)
	if !ok {
		response.Unauthorized(c, response.MsgInvalidJWT)
		return
	}

	tweetID, ok := parseTweetID(c)
	if !ok {
		response.Unauthorized(c, response.MsgInvalidRequest)
		return
	}

	replies, err := h.tweetService.Replies(username, tweetID)
	if err != nil {
		h.renderTweetError(c, username, err)
		return
	}
	if replies == nil {
		replies = []repository.ReplyEntry{}
	}

	response.OK(c, gin.H{"replies": replies})
}

// OwnTweets lists the caller's tweets with like/reply counts. The
// follow gate does not apply to a user's own tweets.
func (h *TweetHandler) OwnTweets(c *gin.Context) {
	username, ok := middleware.CallerUsername(c)
	if !ok {
		response.Unauthorized(c, response.MsgInvalidJWT)
		return
	}

	tweets, err := h.tweetService.OwnTweets(username)
	if err != nil {
		log.Printf("own tweets for %s failed: %v", username, err)
		response.InternalError(c)
		return
	}
	if tweets == nil {
		tweets = []repository.TweetWithCounts{}
	}

	response.OK(c, tweets)
}

func (h *TweetHandler) Post(c *gin.Context) {
	username, ok := middleware.CallerUsername(c)
	if !ok {
		response.Unauthorized(c, response.MsgInvalidJWT)
		return
	}

	var req PostTweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	if err := h.tweetService.Post(c.Request.Context(), username, req.Tweet); err != nil {
		log.Printf("post tweet for %s failed: %v", username, err)
		response.InternalError(c)
		return
	}

	response.Text(c, http.StatusOK, response.MsgTweetCreated)
}

func (h *TweetHandler) renderTweetError(c *gin.Context, username string, err error) {
	if errors.Is(err, app.ErrTweetNotVisible) {
		response.Unauthorized(c, response.MsgInvalidRequest)
		return
	}
	log.Printf("tweet query for %s failed: %v", username, err)
	response.InternalError(c)
}

func parseTweetID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("tweetId"), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
