package stats

import (
	"time"

	"github.com/kpeters/reddit-client/models"
)

// Compute calculates aggregate statistics over a batch of fetched posts.
// An empty batch yields a zero record with only the analysis timestamp set.
func Compute(posts []models.Post) models.SubredditStats {
	result := models.SubredditStats{
		AnalyzedAt: time.Now(),
	}

	if len(posts) == 0 {
		return result
	}

	for _, post := range posts {
		result.TotalScore += post.Score
		result.TotalComments += post.NumComments
	}

	result.TotalPosts = len(posts)
	result.AverageScore = float64(result.TotalScore) / float64(len(posts))
	result.AverageComments = float64(result.TotalComments) / float64(len(posts))

	return result
}
