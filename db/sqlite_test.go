package db

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpeters/reddit-client/models"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"), log)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSaveAndCountPosts(t *testing.T) {
	store := newTestStore(t)

	posts := []models.Post{
		{ID: "a", Title: "first", Author: "u1", Subreddit: "golang", Score: 10, CreatedUTC: time.Now()},
		{ID: "b", Title: "second", Author: "u2", Subreddit: "golang", Score: 30, CreatedUTC: time.Now()},
	}
	require.NoError(t, store.SavePosts(posts))

	count, err := store.CountPosts()
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// re-archiving the same post replaces the earlier snapshot
	posts[0].Score = 99
	require.NoError(t, store.SavePosts(posts[:1]))

	count, err = store.CountPosts()
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestTopPostsByScore(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.SavePosts([]models.Post{
		{ID: "low", Title: "low", Author: "u1", Subreddit: "golang", Score: 1, CreatedUTC: time.Now()},
		{ID: "high", Title: "high", Author: "u2", Subreddit: "golang", Score: 100, CreatedUTC: time.Now()},
		{ID: "mid", Title: "mid", Author: "u3", Subreddit: "golang", Score: 50, CreatedUTC: time.Now()},
	}))

	top, err := store.TopPostsByScore(2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "high", top[0].ID)
	assert.Equal(t, "mid", top[1].ID)
}

func TestPostsBySubreddit(t *testing.T) {
	store := newTestStore(t)

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.SavePosts([]models.Post{
		{ID: "a", Title: "go post", Author: "u1", Subreddit: "golang", Score: 5, CreatedUTC: created},
		{ID: "b", Title: "py post", Author: "u2", Subreddit: "python", Score: 7, CreatedUTC: created},
	}))

	posts, err := store.PostsBySubreddit("golang")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "a", posts[0].ID)
	assert.Equal(t, "go post", posts[0].Title)
	assert.True(t, posts[0].CreatedUTC.Equal(created))

	posts, err = store.PostsBySubreddit("rust")
	require.NoError(t, err)
	assert.Empty(t, posts)
}
