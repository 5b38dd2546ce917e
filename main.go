package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	database "github.com/FACorreiaa/go-lazy-traveler/app/db"
	appLogger "github.com/FACorreiaa/go-lazy-traveler/app/logger"
	"github.com/FACorreiaa/go-lazy-traveler/app/tracer"
	"github.com/FACorreiaa/go-lazy-traveler/config"
	"github.com/FACorreiaa/go-lazy-traveler/internal/container"
	"github.com/FACorreiaa/go-lazy-traveler/internal/renderer"
)

func main() {
	username := flag.String("user", "", "username whose interest tags personalize the results")
	lat := flag.Float64("lat", 0, "user latitude (0 means the configured default)")
	lon := flag.Float64("lon", 0, "user longitude (0 means the configured default)")
	flag.Parse()

	// Use standard log until slog is configured, in case godotenv fails
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("FATAL: Error initializing config: %v", err)
	}

	logger := appLogger.Setup(cfg.Mode)
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tp := tracer.InitTracing()
	defer func() { _ = tp.Shutdown(context.Background()) }()

	c, err := container.NewContainer(ctx, &cfg, logger)
	if err != nil {
		logger.Error("Failed to build container", slog.Any("error", err))
		os.Exit(1)
	}
	defer c.Close()

	if !database.WaitForDB(ctx, c.Pool, logger) {
		logger.Error("Database not ready after waiting, exiting.")
		os.Exit(1)
	}

	cli := renderer.New(c.Router, os.Stdout)
	req := renderer.Query{Username: *username}
	if *lat != 0 || *lon != 0 {
		req.Latitude, req.Longitude = lat, lon
	}

	// One-shot mode when a query is passed as arguments, otherwise a prompt loop.
	if args := flag.Args(); len(args) > 0 {
		req.Text = strings.Join(args, " ")
		if err := cli.Run(ctx, req); err != nil {
			logger.Error("Query failed", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	fmt.Println("LazyTraveler: ask about features, places, or say 'plan my day'. Ctrl+C to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		req.Text = line
		if err := cli.Run(ctx, req); err != nil {
			logger.Error("Query failed", slog.Any("error", err))
		}
		if ctx.Err() != nil {
			break
		}
	}
	logger.Info("Shutting down.")
}
