package api

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vartanbeno/go-reddit/v2/reddit"

	"github.com/kpeters/reddit-client/models"
	"github.com/kpeters/reddit-client/stats"
	"github.com/kpeters/reddit-client/utils"
)

const (
	// permalinkBase prefixes the relative permalinks Reddit returns
	permalinkBase = "https://reddit.com"

	// deletedAuthor is the sentinel used when a post or comment author is gone
	deletedAuthor = "[deleted]"

	defaultPostLimit = 10
)

// Client is a read-only client for public subreddit data. It forwards each
// call to the underlying Reddit API binding and projects the results into
// plain record structs. Transport, auth, and Reddit-side rate limiting all
// live inside the binding.
type Client struct {
	reddit *reddit.Client
	log    *logrus.Logger
}

// NewClient creates a Reddit client from the loaded configuration. When both
// username and password are configured the client authenticates as that user;
// otherwise it runs in read-only mode.
func NewClient(cfg utils.RedditConfig, log *logrus.Logger) (*Client, error) {
	var (
		rc  *reddit.Client
		err error
	)

	if cfg.IsAuthenticated() {
		credentials := reddit.Credentials{
			ID:       cfg.ClientID,
			Secret:   cfg.ClientSecret,
			Username: cfg.Username,
			Password: cfg.Password,
		}
		rc, err = reddit.NewClient(credentials, reddit.WithUserAgent(cfg.UserAgent))
	} else {
		rc, err = reddit.NewReadonlyClient(reddit.WithUserAgent(cfg.UserAgent))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create reddit client: %w", err)
	}

	log.WithField("authenticated", cfg.IsAuthenticated()).Info("Reddit client created")

	return &Client{
		reddit: rc,
		log:    log,
	}, nil
}

// GetHotPosts fetches hot posts from a subreddit.
func (c *Client) GetHotPosts(ctx context.Context, subreddit string, limit int) ([]models.Post, error) {
	limit = normalizeLimit(limit)

	c.log.WithFields(logrus.Fields{
		"subreddit": subreddit,
		"limit":     limit,
		"listing":   "hot",
	}).Info("Fetching posts")

	posts, _, err := c.reddit.Subreddit.HotPosts(ctx, subreddit, &reddit.ListOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch hot posts from r/%s: %w", subreddit, err)
	}

	return c.formatPosts(posts, limit), nil
}

// GetNewPosts fetches the newest posts from a subreddit.
func (c *Client) GetNewPosts(ctx context.Context, subreddit string, limit int) ([]models.Post, error) {
	limit = normalizeLimit(limit)

	c.log.WithFields(logrus.Fields{
		"subreddit": subreddit,
		"limit":     limit,
		"listing":   "new",
	}).Info("Fetching posts")

	posts, _, err := c.reddit.Subreddit.NewPosts(ctx, subreddit, &reddit.ListOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch new posts from r/%s: %w", subreddit, err)
	}

	return c.formatPosts(posts, limit), nil
}

// GetTopPosts fetches top posts from a subreddit for the given time filter
// ("hour", "day", "week", "month", "year", "all"). An empty filter means "day".
func (c *Client) GetTopPosts(ctx context.Context, subreddit, timeFilter string, limit int) ([]models.Post, error) {
	limit = normalizeLimit(limit)
	if timeFilter == "" {
		timeFilter = "day"
	}

	c.log.WithFields(logrus.Fields{
		"subreddit":   subreddit,
		"limit":       limit,
		"time_filter": timeFilter,
		"listing":     "top",
	}).Info("Fetching posts")

	opts := &reddit.ListPostOptions{
		ListOptions: reddit.ListOptions{Limit: limit},
		Time:        timeFilter,
	}
	posts, _, err := c.reddit.Subreddit.TopPosts(ctx, subreddit, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch top posts from r/%s: %w", subreddit, err)
	}

	return c.formatPosts(posts, limit), nil
}

// SearchPosts searches for posts in a subreddit. Sort may be "relevance",
// "hot", "top", "new" or "comments" (empty means "relevance"); timeFilter
// takes the same values as GetTopPosts (empty means "all").
func (c *Client) SearchPosts(ctx context.Context, subreddit, query, sort, timeFilter string, limit int) ([]models.Post, error) {
	limit = normalizeLimit(limit)
	if sort == "" {
		sort = "relevance"
	}
	if timeFilter == "" {
		timeFilter = "all"
	}

	c.log.WithFields(logrus.Fields{
		"subreddit":   subreddit,
		"query":       query,
		"sort":        sort,
		"time_filter": timeFilter,
		"limit":       limit,
	}).Info("Searching posts")

	opts := &reddit.ListPostSearchOptions{
		ListPostOptions: reddit.ListPostOptions{
			ListOptions: reddit.ListOptions{Limit: limit},
			Time:        timeFilter,
		},
		Sort: sort,
	}
	posts, _, err := c.reddit.Subreddit.SearchPosts(ctx, query, subreddit, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts in r/%s: %w", subreddit, err)
	}

	return c.formatPosts(posts, limit), nil
}

// GetPostComments fetches comments for a post and flattens the returned tree
// into a depth-annotated list. A limit <= 0 returns every comment the binding
// fetched; otherwise the walk stops once limit real comments are collected.
func (c *Client) GetPostComments(ctx context.Context, postID string, limit int) ([]models.Comment, error) {
	c.log.WithFields(logrus.Fields{
		"post_id": postID,
		"limit":   limit,
	}).Info("Fetching comments")

	postAndComments, _, err := c.reddit.Post.Get(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments for post %s: %w", postID, err)
	}

	comments := flattenComments(postAndComments.Comments, limit)

	c.log.WithFields(logrus.Fields{
		"post_id": postID,
		"count":   len(comments),
	}).Debug("Flattened comment tree")

	return comments, nil
}

// GetSubredditInfo fetches metadata about a subreddit.
func (c *Client) GetSubredditInfo(ctx context.Context, subreddit string) (*models.SubredditInfo, error) {
	c.log.WithField("subreddit", subreddit).Info("Fetching subreddit info")

	sr, _, err := c.reddit.Subreddit.Get(ctx, subreddit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch info for r/%s: %w", subreddit, err)
	}

	info := &models.SubredditInfo{
		Name:        sr.Name,
		Title:       sr.Title,
		Description: sr.Description,
		Subscribers: sr.Subscribers,
		CreatedUTC:  timestampToTime(sr.Created),
		IsOver18:    sr.NSFW,
		URL:         permalinkBase + sr.URL,
	}
	if sr.ActiveUserCount != nil {
		info.ActiveUsers = *sr.ActiveUserCount
	}

	return info, nil
}

// GetSubredditStats fetches a batch of hot posts and computes aggregate
// statistics over them.
func (c *Client) GetSubredditStats(ctx context.Context, subreddit string, limit int) (*models.SubredditStats, error) {
	if limit <= 0 {
		limit = 100
	}

	posts, err := c.GetHotPosts(ctx, subreddit, limit)
	if err != nil {
		return nil, err
	}

	result := stats.Compute(posts)
	return &result, nil
}

// formatPosts projects binding post objects into Post records, honoring limit.
func (c *Client) formatPosts(posts []*reddit.Post, limit int) []models.Post {
	out := make([]models.Post, 0, len(posts))
	for _, post := range posts {
		if post == nil {
			continue
		}
		out = append(out, formatPost(post))
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}

// formatPost maps a binding post object onto a Post record.
func formatPost(post *reddit.Post) models.Post {
	p := models.Post{
		ID:          post.ID,
		Title:       post.Title,
		Author:      authorOrDeleted(post.Author),
		Subreddit:   post.SubredditName,
		Score:       post.Score,
		UpvoteRatio: float64(post.UpvoteRatio),
		NumComments: post.NumberOfComments,
		CreatedUTC:  timestampToTime(post.Created),
		URL:         post.URL,
		Permalink:   permalinkBase + post.Permalink,
		IsSelf:      post.IsSelfPost,
		IsOver18:    post.NSFW,
		Spoiler:     post.Spoiler,
		Stickied:    post.Stickied,
	}
	if post.IsSelfPost {
		p.SelfText = post.Body
	}
	return p
}

// formatComment maps a binding comment object onto a Comment record.
func formatComment(comment *reddit.Comment, depth int) models.Comment {
	return models.Comment{
		ID:          comment.ID,
		Author:      authorOrDeleted(comment.Author),
		Body:        comment.Body,
		Score:       comment.Score,
		CreatedUTC:  timestampToTime(comment.Created),
		Permalink:   permalinkBase + comment.Permalink,
		IsSubmitter: comment.IsSubmitter,
		ParentID:    comment.ParentID,
		Depth:       depth,
	}
}

// flattenComments walks a comment tree depth-first, recording nesting depth.
// Placeholder entries (no id) are skipped; the binding keeps unfetched "more"
// stubs out of the tree, so only real comments are counted against limit.
func flattenComments(comments []*reddit.Comment, limit int) []models.Comment {
	out := make([]models.Comment, 0, len(comments))

	var walk func(list []*reddit.Comment, depth int)
	walk = func(list []*reddit.Comment, depth int) {
		for _, comment := range list {
			if limit > 0 && len(out) >= limit {
				return
			}
			if comment == nil || comment.ID == "" {
				continue
			}
			out = append(out, formatComment(comment, depth))
			walk(comment.Replies.Comments, depth+1)
		}
	}
	walk(comments, 0)

	return out
}

// authorOrDeleted replaces a missing author with the deleted-author sentinel
func authorOrDeleted(author string) string {
	if author == "" {
		return deletedAuthor
	}
	return author
}

// timestampToTime unwraps the binding's timestamp, zero when absent
func timestampToTime(ts *reddit.Timestamp) time.Time {
	if ts == nil {
		return time.Time{}
	}
	return ts.Time
}

func normalizeLimit(limit int) int {
	if limit <= 0 {
		return defaultPostLimit
	}
	return limit
}
