package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/leaguehub/internal/api/league"
	"github.com/omarshaarawi/leaguehub/internal/bot"
	"github.com/omarshaarawi/leaguehub/internal/config"
	"github.com/omarshaarawi/leaguehub/internal/metrics"
	"github.com/omarshaarawi/leaguehub/internal/repository/memory"
	"github.com/omarshaarawi/leaguehub/internal/scheduler"
	"github.com/omarshaarawi/leaguehub/internal/service"
	"github.com/omarshaarawi/leaguehub/internal/web"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	loc := cfg.Location()

	httpClient := &http.Client{
		Timeout:   cfg.LeagueAPI.Timeout,
		Transport: metrics.InstrumentTransport(http.DefaultTransport),
	}
	leagueClient := league.NewClientWithHTTPClient(cfg.LeagueAPI, httpClient)
	leagueAPI := league.NewAPI(leagueClient)
	slog.Info("Using league API", "base_url", leagueClient.BaseURL())

	repo := memory.NewRepository()
	hubService := service.NewHubService(leagueAPI, repo, cfg.Pages, loc)

	server, err := web.NewServer(cfg.Web, hubService)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.TelegramBot.Enabled() {
		telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, hubService)
		if err != nil {
			return err
		}

		sched, err := scheduler.NewScheduler(cfg.Schedule, loc, hubService, telegramBot.SendMessage)
		if err != nil {
			return err
		}
		if err := sched.Start(); err != nil {
			return err
		}
		defer func() {
			err := sched.Stop()
			if err != nil {
				slog.Error("Error stopping scheduler", "error", err)
			}
		}()

		go func() {
			if err := telegramBot.Start(ctx); err != nil {
				slog.Error("Error running telegram bot", "error", err)
			}
		}()
	} else {
		slog.Info("Telegram bot disabled; set TELEGRAM_TOKEN and CHAT_ID to enable digests")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	slog.Info("Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Stop(shutdownCtx)
}
