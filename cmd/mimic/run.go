package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/codegangsta/mimic/internal/commands"
	"github.com/codegangsta/mimic/internal/config"
	"github.com/codegangsta/mimic/internal/handlers"
	"github.com/codegangsta/mimic/internal/spamfilter"
	"github.com/codegangsta/mimic/internal/telegram"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to Telegram and answer messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBot(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runBot(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := setupLogger(cfg, os.Stdout)
	if err != nil {
		return err
	}

	logger.Info("config loaded",
		"allowlist_count", len(cfg.Allowlist),
		"debug", cfg.Debug,
		"cooldown", cfg.Spam.Cooldown,
		"max_file_mb", cfg.Files.MaxSizeMB,
	)

	bot, err := telegram.New(cfg.Telegram.Token, cfg.Timeout, cfg.Files.MaxBytes(), logger)
	if err != nil {
		return fmt.Errorf("creating telegram bot: %w", err)
	}

	registry, err := commands.Default(commands.Options{
		ShortenerEndpoint: cfg.Shortener.Endpoint,
		StickerID:         cfg.Commands.StickerID,
	})
	if err != nil {
		return fmt.Errorf("registering commands: %w", err)
	}

	filter := spamfilter.New(cfg.Spam.Cooldown)
	router := handlers.NewRouter(commands.NewDispatcher(registry), bot, handlers.Options{
		Allowed:        cfg.IsAllowed,
		Limiter:        filter,
		Files:          bot,
		MaxFileSize:    cfg.Files.MaxBytes(),
		StickerReplies: cfg.Commands.StickerReplies,
		Logger:         logger,
	})

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			logger.Info("shutdown signal received", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()

	go filter.Run(ctx, time.Minute)

	bot.SetHandler(func(msgCtx context.Context, msg *telegram.Message) {
		bot.StartTyping(msg.ChatID)
		if err := router.Route(msgCtx, msg); err != nil {
			logger.Error("failed to answer message", "chat_id", msg.ChatID, "error", err)
		}
	})

	logger.Info("mimic started, connecting to telegram", "commands", len(registry.All()))

	// Start the bot (blocks until context is cancelled)
	if err := bot.Start(ctx); err != nil {
		return fmt.Errorf("telegram bot: %w", err)
	}
	logger.Info("mimic stopped", "messages", router.Count())
	return nil
}
