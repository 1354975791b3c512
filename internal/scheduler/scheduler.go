package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/leaguehub/internal/config"
	"github.com/omarshaarawi/leaguehub/internal/metrics"
	"github.com/omarshaarawi/leaguehub/internal/service"
)

const jobTimeout = 30 * time.Second

// Digests is the subset of the hub service the scheduled jobs publish.
type Digests interface {
	GetStandings(ctx context.Context) (string, error)
	GetResults(ctx context.Context) (string, error)
	GetTopStats(ctx context.Context, category string, limit int) (string, error)
}

type Scheduler struct {
	s           gocron.Scheduler
	cfg         config.Schedule
	digests     Digests
	sendMessage func(string) error
}

func NewScheduler(cfg config.Schedule, location *time.Location, digests Digests, sendMessage func(string) error) (*Scheduler, error) {
	if location == nil {
		location = time.UTC
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:           s,
		cfg:         cfg,
		digests:     digests,
		sendMessage: sendMessage,
	}, nil
}

func (s *Scheduler) Start() error {
	jobs := []struct {
		name string
		cron string
		task func()
	}{
		{"standings", s.cfg.StandingsCron, s.sendStandings},
		{"results", s.cfg.ResultsCron, s.sendResults},
		{"top scorers", s.cfg.TopScorersCron, s.sendTopScorers},
	}

	for _, job := range jobs {
		_, err := s.s.NewJob(
			gocron.CronJob(job.cron, false),
			gocron.NewTask(job.task),
			gocron.WithName(job.name),
		)
		if err != nil {
			return fmt.Errorf("failed to create %s job: %w", job.name, err)
		}
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendStandings() {
	s.publish("standings", s.digests.GetStandings)
}

func (s *Scheduler) sendResults() {
	s.publish("results", s.digests.GetResults)
}

func (s *Scheduler) sendTopScorers() {
	s.publish("top_scorers", func(ctx context.Context) (string, error) {
		return s.digests.GetTopStats(ctx, "goals", service.DefaultTopLimit)
	})
}

func (s *Scheduler) publish(kind string, build func(ctx context.Context) (string, error)) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	text, err := build(ctx)
	if err != nil {
		slog.Error("Failed to build digest", "kind", kind, "error", err)
		metrics.DigestsSent.WithLabelValues(kind, "error").Inc()
		return
	}
	if err := s.sendMessage(text); err != nil {
		metrics.DigestsSent.WithLabelValues(kind, "error").Inc()
		return
	}
	metrics.DigestsSent.WithLabelValues(kind, "sent").Inc()
}
