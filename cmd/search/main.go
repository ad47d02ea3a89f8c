// Command search searches for posts in a subreddit, prints the matches, and
// writes the results to a JSON file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kpeters/reddit-client/api"
	"github.com/kpeters/reddit-client/utils"
)

func main() {
	envPath := flag.String("env", ".env", "Path to .env file")
	subreddit := flag.String("subreddit", "golang", "Subreddit name (without r/)")
	query := flag.String("query", "", "Search query")
	sort := flag.String("sort", "relevance", "Sort order (relevance, hot, top, new, comments)")
	timeFilter := flag.String("time", "all", "Time filter (hour, day, week, month, year, all)")
	limit := flag.Int("limit", 20, "Maximum number of posts to fetch")
	flag.Parse()

	if *query == "" {
		fmt.Println("A search query is required (-query)")
		os.Exit(1)
	}

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

	fmt.Printf("\nSearching r/%s for '%s'...\n\n", *subreddit, *query)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	posts, err := client.SearchPosts(ctx, *subreddit, *query, *sort, *timeFilter, *limit)
	if err != nil {
		fmt.Printf("Error searching posts: %v\n", err)
		os.Exit(1)
	}

	if len(posts) == 0 {
		fmt.Println("No posts found matching your query.")
		return
	}

	for i, post := range posts {
		fmt.Printf("%d. %s\n", i+1, post.Title)
		fmt.Printf("   Author: %s\n", post.Author)
		fmt.Printf("   Score: %d | Comments: %d\n", post.Score, post.NumComments)
		fmt.Printf("   Created: %s\n", post.CreatedUTC.Format(time.RFC3339))
		fmt.Printf("   URL: %s\n\n", post.Permalink)
	}

	outputFile := utils.OutputFilename(*subreddit, "search", *query)
	if err := utils.WriteJSON(outputFile, posts); err != nil {
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
