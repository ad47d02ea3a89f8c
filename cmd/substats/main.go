// Command substats fetches subreddit metadata and aggregate post statistics,
// prints both, and writes the combined result to a JSON file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kpeters/reddit-client/api"
	"github.com/kpeters/reddit-client/models"
	"github.com/kpeters/reddit-client/utils"
)

type statsReport struct {
	SubredditInfo *models.SubredditInfo  `json:"subreddit_info"`
	Statistics    *models.SubredditStats `json:"statistics"`
}

func main() {
	envPath := flag.String("env", ".env", "Path to .env file")
	subreddit := flag.String("subreddit", "golang", "Subreddit name (without r/)")
	limit := flag.Int("limit", 100, "Number of hot posts to analyze")
	flag.Parse()

	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)

	config, err := utils.LoadConfig(*envPath, log)
	if err != nil {
		printConfigGuidance(err)
		os.Exit(1)
	}

	client, err := api.NewClient(config.Reddit, log)
	if err != nil {
		fmt.Printf("Error creating client: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nAnalyzing r/%s (analyzing %d hot posts)...\n\n", *subreddit, *limit)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	info, err := client.GetSubredditInfo(ctx, *subreddit)
	if err != nil {
		fmt.Printf("Error analyzing subreddit: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Subreddit Information:")
	fmt.Printf("  Title: %s\n", info.Title)
	fmt.Printf("  Subscribers: %d\n", info.Subscribers)
	fmt.Printf("  Active Users: %d\n", info.ActiveUsers)
	fmt.Printf("  Created: %s\n", info.CreatedUTC.Format(time.RFC3339))
	fmt.Printf("  NSFW: %t\n", info.IsOver18)
	fmt.Printf("  URL: %s\n\n", info.URL)

	stats, err := client.GetSubredditStats(ctx, *subreddit, *limit)
	if err != nil {
		fmt.Printf("Error analyzing subreddit: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Post Statistics (based on hot posts):")
	fmt.Printf("  Total Posts Analyzed: %d\n", stats.TotalPosts)
	fmt.Printf("  Total Score: %d\n", stats.TotalScore)
	fmt.Printf("  Total Comments: %d\n", stats.TotalComments)
	fmt.Printf("  Average Score per Post: %.2f\n", stats.AverageScore)
	fmt.Printf("  Average Comments per Post: %.2f\n", stats.AverageComments)
	fmt.Printf("  Analysis Time: %s\n\n", stats.AnalyzedAt.Format(time.RFC3339))

	report := statsReport{
		SubredditInfo: info,
		Statistics:    stats,
	}

	outputFile := utils.OutputFilename(*subreddit, "stats")
	if err := utils.WriteJSON(outputFile, report); err != nil {
		fmt.Printf("Error writing results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Results saved to %s\n", outputFile)
}

func printConfigGuidance(err error) {
	fmt.Printf("Configuration error: %v\n", err)
	fmt.Println("\nPlease ensure you have a .env file with the following variables:")
	fmt.Println("  REDDIT_CLIENT_ID=your_client_id")
	fmt.Println("  REDDIT_CLIENT_SECRET=your_client_secret")
	fmt.Println("  REDDIT_USER_AGENT=reddit-api-client/1.0")
}
