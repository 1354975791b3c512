package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/omarshaarawi/leaguehub/internal/fetch"
	"github.com/robfig/cron/v3"
)

const DefaultAPIBaseURL = "http://localhost:8000"

type Config struct {
	LeagueAPI   LeagueAPI
	Web         Web
	Pages       Pages
	TelegramBot TelegramBot
	Schedule    Schedule
}

type LeagueAPI struct {
	BaseURL string        `envconfig:"API_BASE_URL" default:"http://localhost:8000"`
	Timeout time.Duration `envconfig:"API_TIMEOUT" default:"10s"`
}

type Web struct {
	Addr           string   `envconfig:"HTTP_ADDR" default:":8080"`
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	DisplayTZ      string   `envconfig:"DISPLAY_TZ" default:"Europe/London"`
}

// Pages holds the fetch policy of every page that loads more than one resource.
type Pages struct {
	Home        fetch.Policy `envconfig:"HOME_POLICY" default:"best_effort"`
	Matches     fetch.Policy `envconfig:"MATCHES_POLICY" default:"best_effort"`
	MatchDetail fetch.Policy `envconfig:"MATCH_DETAIL_POLICY" default:"fail_fast"`
	Standings   fetch.Policy `envconfig:"STANDINGS_POLICY" default:"fail_fast"`
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN"`
	ChatID int64  `envconfig:"CHAT_ID"`
}

// Enabled reports whether the bot and the scheduled digests should run.
func (t TelegramBot) Enabled() bool {
	return t.Token != "" && t.ChatID != 0
}

type Schedule struct {
	StandingsCron  string `envconfig:"STANDINGS_CRON" default:"0 9 * * 1"`
	ResultsCron    string `envconfig:"RESULTS_CRON" default:"0 22 * * 6,0"`
	TopScorersCron string `envconfig:"TOP_SCORERS_CRON" default:"0 9 * * 3"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Location returns the display timezone, falling back to UTC when it cannot be loaded.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Web.DisplayTZ)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) validate() error {
	if c.LeagueAPI.BaseURL == "" {
		c.LeagueAPI.BaseURL = DefaultAPIBaseURL
	}
	if _, err := time.LoadLocation(c.Web.DisplayTZ); err != nil {
		return fmt.Errorf("invalid DISPLAY_TZ %q: %w", c.Web.DisplayTZ, err)
	}

	crons := map[string]string{
		"STANDINGS_CRON":   c.Schedule.StandingsCron,
		"RESULTS_CRON":     c.Schedule.ResultsCron,
		"TOP_SCORERS_CRON": c.Schedule.TopScorersCron,
	}
	for name, expr := range crons {
		if _, err := cron.ParseStandard(expr); err != nil {
			return fmt.Errorf("invalid %s %q: %w", name, expr, err)
		}
	}
	return nil
}
