package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/kpeters/reddit-client/api"
	"github.com/kpeters/reddit-client/utils"
)

func main() {
	envPath := flag.String("env", ".env", "Path to .env file")
	logLevel := flag.String("log-level", "info", "Logging level (debug, info, warn, error)")
	flag.Parse()

	log := setupLogger(*logLevel)
	log.Info("Starting Reddit client API server")

	config, err := utils.LoadConfig(*envPath, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	client, err := api.NewClient(config.Reddit, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to create Reddit client")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go startEchoServer(ctx, config.Server.Port, client, log)

	waitForShutdown(cancel, log)
}

// setupLogger sets up the logger with the specified log level
func setupLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	switch level {
	case "debug":
		log.SetLevel(logrus.DebugLevel)
	case "info":
		log.SetLevel(logrus.InfoLevel)
	case "warn":
		log.SetLevel(logrus.WarnLevel)
	case "error":
		log.SetLevel(logrus.ErrorLevel)
	default:
		log.SetLevel(logrus.InfoLevel)
	}

	return log
}

// startEchoServer starts the Echo HTTP API server
func startEchoServer(ctx context.Context, port int, client *api.Client, log *logrus.Logger) {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// limit our own surface; rate limiting toward Reddit lives in the binding
	rateLimiterConfig := middleware.RateLimiterConfig{
		Skipper: middleware.DefaultSkipper,
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(
			middleware.RateLimiterMemoryStoreConfig{
				Rate:      rate.Limit(5),
				Burst:     10,
				ExpiresIn: 3 * time.Minute,
			},
		),
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		ErrorHandler: func(ctx echo.Context, err error) error {
			return ctx.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "Rate limit exceeded, please try again later",
			})
		},
		DenyHandler: func(ctx echo.Context, identifier string, err error) error {
			return ctx.JSON(http.StatusTooManyRequests, map[string]string{
				"error": "Rate limit exceeded, please try again later",
			})
		},
	}
	e.Use(middleware.RateLimiterWithConfig(rateLimiterConfig))

	e.GET("/api/r/:subreddit/posts", func(c echo.Context) error {
		subreddit := c.Param("subreddit")
		limit := queryAsInt(c, "limit", 10)
		sort := c.QueryParam("sort")
		timeFilter := c.QueryParam("t")

		var (
			posts interface{}
			err   error
		)
		switch sort {
		case "", "hot":
			posts, err = client.GetHotPosts(c.Request().Context(), subreddit, limit)
		case "new":
			posts, err = client.GetNewPosts(c.Request().Context(), subreddit, limit)
		case "top":
			posts, err = client.GetTopPosts(c.Request().Context(), subreddit, timeFilter, limit)
		default:
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("unknown sort %q, expected hot, new or top", sort),
			})
		}
		if err != nil {
			return fetchError(c, err)
		}

		return c.JSON(http.StatusOK, posts)
	})

	e.GET("/api/r/:subreddit/search", func(c echo.Context) error {
		subreddit := c.Param("subreddit")
		query := c.QueryParam("q")
		if query == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "query parameter q is required",
			})
		}

		posts, err := client.SearchPosts(
			c.Request().Context(),
			subreddit,
			query,
			c.QueryParam("sort"),
			c.QueryParam("t"),
			queryAsInt(c, "limit", 10),
		)
		if err != nil {
			return fetchError(c, err)
		}

		return c.JSON(http.StatusOK, posts)
	})

	e.GET("/api/r/:subreddit/about", func(c echo.Context) error {
		info, err := client.GetSubredditInfo(c.Request().Context(), c.Param("subreddit"))
		if err != nil {
			return fetchError(c, err)
		}

		return c.JSON(http.StatusOK, info)
	})

	e.GET("/api/r/:subreddit/stats", func(c echo.Context) error {
		stats, err := client.GetSubredditStats(
			c.Request().Context(),
			c.Param("subreddit"),
			queryAsInt(c, "limit", 100),
		)
		if err != nil {
			return fetchError(c, err)
		}

		return c.JSON(http.StatusOK, stats)
	})

	e.GET("/api/posts/:id/comments", func(c echo.Context) error {
		comments, err := client.GetPostComments(
			c.Request().Context(),
			c.Param("id"),
			queryAsInt(c, "limit", 0),
		)
		if err != nil {
			return fetchError(c, err)
		}

		return c.JSON(http.StatusOK, comments)
	})

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	go func() {
		serverAddr := fmt.Sprintf(":%d", port)
		log.WithField("port", port).Info("Starting API server")
		if err := e.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("API server failed")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down API server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("API server shutdown failed")
	}
}

// fetchError maps a failed fetch to a 502; the binding's errors are passed
// through without classification
func fetchError(c echo.Context, err error) error {
	return c.JSON(http.StatusBadGateway, map[string]string{
		"error": err.Error(),
	})
}

// queryAsInt reads an integer query parameter or returns a default value
func queryAsInt(c echo.Context, name string, defaultValue int) int {
	valueStr := c.QueryParam(name)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// waitForShutdown waits for a shutdown signal
func waitForShutdown(cancel context.CancelFunc, log *logrus.Logger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.WithField("signal", sig.String()).Info("Shutdown signal received")

	cancel()

	time.Sleep(1 * time.Second)
	log.Info("Reddit client API server stopped")
}
