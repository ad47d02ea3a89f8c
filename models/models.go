package models

import (
	"time"
)

// Post represents a Reddit post as fetched from the API
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Subreddit   string    `json:"subreddit"`
	Score       int       `json:"score"`
	UpvoteRatio float64   `json:"upvote_ratio"`
	NumComments int       `json:"num_comments"`
	CreatedUTC  time.Time `json:"created_utc"`
	URL         string    `json:"url"`
	Permalink   string    `json:"permalink"`
	IsSelf      bool      `json:"is_self"`
	SelfText    string    `json:"selftext,omitempty"` // only set for self posts
	IsOver18    bool      `json:"is_over18"`
	Spoiler     bool      `json:"spoiler"`
	Stickied    bool      `json:"stickied"`
}

// Comment represents a single comment from a post's comment tree
type Comment struct {
	ID          string    `json:"id"`
	Author      string    `json:"author"`
	Body        string    `json:"body"`
	Score       int       `json:"score"`
	CreatedUTC  time.Time `json:"created_utc"`
	Permalink   string    `json:"permalink"`
	IsSubmitter bool      `json:"is_submitter"`
	ParentID    string    `json:"parent_id"`
	Depth       int       `json:"depth"`
}

// SubredditInfo holds metadata about a subreddit
type SubredditInfo struct {
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Subscribers int       `json:"subscribers"`
	ActiveUsers int       `json:"active_users"`
	CreatedUTC  time.Time `json:"created_utc"`
	IsOver18    bool      `json:"is_over18"`
	URL         string    `json:"url"`
}

// SubredditStats holds aggregate statistics computed over a batch of posts
type SubredditStats struct {
	TotalPosts      int       `json:"total_posts"`
	TotalScore      int       `json:"total_score"`
	TotalComments   int       `json:"total_comments"`
	AverageScore    float64   `json:"average_score"`
	AverageComments float64   `json:"average_comments"`
	AnalyzedAt      time.Time `json:"analyzed_time"`
}
