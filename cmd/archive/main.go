// Command archive fetches hot posts from a subreddit and snapshots them into
// the local SQLite archive, then prints archive totals.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kpeters/reddit-client/api"
	"github.com/kpeters/reddit-client/db"
	"github.com/kpeters/reddit-client/utils"
)

func main() {
	envPath := flag.String("env", ".env", "Path to .env file")
	subreddit := flag.String("subreddit", "golang", "Subreddit name (without r/)")
	limit := flag.Int("limit", 100, "Maximum number of posts to archive")
	top := flag.Int("top", 5, "Number of top archived posts to print")
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

	store, err := db.NewStore(config.Database.Path, log)
	if err != nil {
		fmt.Printf("Error opening archive: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fmt.Printf("\nArchiving %d hot posts from r/%s...\n\n", *limit, *subreddit)

	ctx, cancel := context.WithTimeout(context.Background(), 120*time.Second)
	defer cancel()

	posts, err := client.GetHotPosts(ctx, *subreddit, *limit)
	if err != nil {
		fmt.Printf("Error fetching posts: %v\n", err)
		os.Exit(1)
	}

	if err := store.SavePosts(posts); err != nil {
		fmt.Printf("Error archiving posts: %v\n", err)
		os.Exit(1)
	}

	total, err := store.CountPosts()
	if err != nil {
		fmt.Printf("Error reading archive: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Archived %d posts (%d total in %s)\n\n", len(posts), total, config.Database.Path)

	topPosts, err := store.TopPostsByScore(*top)
	if err != nil {
		fmt.Printf("Error reading archive: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Top %d archived posts by score:\n", len(topPosts))
	for i, post := range topPosts {
		fmt.Printf("%d. [%d] r/%s - %s\n", i+1, post.Score, post.Subreddit, post.Title)
	}
}

func printConfigGuidance(err error) {
	fmt.Printf("Configuration error: %v\n", err)
	fmt.Println("\nPlease ensure you have a .env file with the following variables:")
	fmt.Println("  REDDIT_CLIENT_ID=your_client_id")
	fmt.Println("  REDDIT_CLIENT_SECRET=your_client_secret")
	fmt.Println("  REDDIT_USER_AGENT=reddit-api-client/1.0")
}
