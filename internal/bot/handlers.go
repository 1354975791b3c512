package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/leaguehub/internal/api/league"
)

// Digests is the text the bot can produce for a chat.
type Digests interface {
	GetStandings(ctx context.Context) (string, error)
	GetResults(ctx context.Context) (string, error)
	GetFixtures(ctx context.Context, round int) (string, error)
	GetTopStats(ctx context.Context, category string, limit int) (string, error)
	GetTeamReport(ctx context.Context, name string) (string, error)
	GetMatchReport(ctx context.Context, matchID int) (string, error)
}

const helpText = "Available commands:\n" +
	"/standings - League table\n" +
	"/results - Latest results\n" +
	"/fixtures [round] - Upcoming matches\n" +
	"/top [goals|assists|attack_points|clean_sheets] - Player leaderboard\n" +
	"/team <name> - Club profile and squad\n" +
	"/match <id> - Match report"

type Handler struct {
	digests Digests
}

func NewHandler(digests Digests) *Handler {
	return &Handler{digests: digests}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())

	switch command {
	case "start":
		msg.Text = "Welcome to League Hub! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "standings":
		h.reply(&msg, "standings", func() (string, error) {
			return h.digests.GetStandings(ctx)
		})
	case "results":
		h.reply(&msg, "results", func() (string, error) {
			return h.digests.GetResults(ctx)
		})
	case "fixtures":
		h.handleFixtures(ctx, &msg, args)
	case "top":
		h.reply(&msg, "player stats", func() (string, error) {
			return h.digests.GetTopStats(ctx, args, 0)
		})
	case "team":
		h.handleTeam(ctx, &msg, args)
	case "match":
		h.handleMatch(ctx, &msg, args)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

// reply fills msg from a digest. Only digests are sent as Markdown; fixed
// texts such as help carry underscores and brackets that Markdown would eat.
func (h *Handler) reply(msg *tgbotapi.MessageConfig, what string, fn func() (string, error)) {
	text, err := fn()
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching %s: %s", what, league.Message(err))
		return
	}
	msg.Text = text
	msg.ParseMode = tgbotapi.ModeMarkdown
}

func (h *Handler) handleFixtures(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	round := 0
	if args != "" {
		r, err := strconv.Atoi(args)
		if err != nil || r < 1 {
			msg.Text = "Round must be a positive number. Usage: /fixtures [round]"
			return
		}
		round = r
	}
	h.reply(msg, "fixtures", func() (string, error) {
		return h.digests.GetFixtures(ctx, round)
	})
}

func (h *Handler) handleTeam(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a team name. Usage: /team <team name>"
		return
	}
	h.reply(msg, "team", func() (string, error) {
		return h.digests.GetTeamReport(ctx, args)
	})
}

func (h *Handler) handleMatch(ctx context.Context, msg *tgbotapi.MessageConfig, args string) {
	id, err := strconv.Atoi(args)
	if err != nil || id < 1 {
		msg.Text = "Please provide a match id. Usage: /match <id>"
		return
	}
	h.reply(msg, "match report", func() (string, error) {
		return h.digests.GetMatchReport(ctx, id)
	})
}
