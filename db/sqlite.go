package db

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/kpeters/reddit-client/models"
)

// Store archives fetched posts in a local SQLite database
type Store struct {
	db    *sql.DB
	mutex sync.RWMutex
	log   *logrus.Logger
}

// NewStore opens (or creates) the archive database at the given path
func NewStore(dbPath string, log *logrus.Logger) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &Store{
		db:  db,
		log: log,
	}

	if err := store.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.db.Close()
}

// initTables creates the necessary tables if they don't exist
func (s *Store) initTables() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	query := `
	CREATE TABLE IF NOT EXISTS posts (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		author TEXT NOT NULL,
		subreddit TEXT NOT NULL,
		score INTEGER NOT NULL,
		upvote_ratio REAL NOT NULL,
		num_comments INTEGER NOT NULL,
		created_utc TIMESTAMP NOT NULL,
		url TEXT,
		permalink TEXT NOT NULL,
		is_self BOOLEAN NOT NULL,
		selftext TEXT,
		is_over18 BOOLEAN NOT NULL,
		spoiler BOOLEAN NOT NULL,
		stickied BOOLEAN NOT NULL,
		archived_at TIMESTAMP NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_posts_score ON posts(score DESC);
	CREATE INDEX IF NOT EXISTS idx_posts_subreddit ON posts(subreddit);
	`

	_, err := s.db.Exec(query)
	return err
}

// SavePosts archives a batch of posts, replacing earlier snapshots of the same post
func (s *Store) SavePosts(posts []models.Post) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	query := `
	INSERT OR REPLACE INTO posts (
		id, title, author, subreddit, score, upvote_ratio, num_comments,
		created_utc, url, permalink, is_self, selftext, is_over18,
		spoiler, stickied, archived_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	stmt, err := tx.Prepare(query)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, post := range posts {
		_, err := stmt.Exec(
			post.ID, post.Title, post.Author, post.Subreddit, post.Score,
			post.UpvoteRatio, post.NumComments, post.CreatedUTC.Format(time.RFC3339),
			post.URL, post.Permalink, post.IsSelf, post.SelfText, post.IsOver18,
			post.Spoiler, post.Stickied, now.Format(time.RFC3339),
		)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to save post %s: %w", post.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// TopPostsByScore returns the top N archived posts by score
func (s *Store) TopPostsByScore(limit int) ([]models.Post, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	query := `
	SELECT id, title, author, subreddit, score, upvote_ratio, num_comments,
		created_utc, url, permalink, is_self, selftext, is_over18, spoiler, stickied
	FROM posts
	ORDER BY score DESC
	LIMIT ?
	`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top posts: %w", err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// PostsBySubreddit returns archived posts from a specific subreddit
func (s *Store) PostsBySubreddit(subreddit string) ([]models.Post, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	query := `
	SELECT id, title, author, subreddit, score, upvote_ratio, num_comments,
		created_utc, url, permalink, is_self, selftext, is_over18, spoiler, stickied
	FROM posts
	WHERE subreddit = ?
	ORDER BY score DESC
	`

	rows, err := s.db.Query(query, subreddit)
	if err != nil {
		return nil, fmt.Errorf("failed to query posts for subreddit %s: %w", subreddit, err)
	}
	defer rows.Close()

	return scanPosts(rows)
}

// CountPosts returns the total number of archived posts
func (s *Store) CountPosts() (int, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM posts").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}

	return count, nil
}

func scanPosts(rows *sql.Rows) ([]models.Post, error) {
	posts := make([]models.Post, 0)
	for rows.Next() {
		var post models.Post
		var createdUTC string

		err := rows.Scan(
			&post.ID, &post.Title, &post.Author, &post.Subreddit, &post.Score,
			&post.UpvoteRatio, &post.NumComments, &createdUTC, &post.URL,
			&post.Permalink, &post.IsSelf, &post.SelfText, &post.IsOver18,
			&post.Spoiler, &post.Stickied,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}

		post.CreatedUTC, _ = time.Parse(time.RFC3339, createdUTC)
		posts = append(posts, post)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return posts, nil
}
