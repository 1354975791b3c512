package bot

import (
	"context"
	"errors"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/leaguehub/internal/api/league"
	"github.com/stretchr/testify/assert"
)

type fakeDigests struct {
	err error

	round    int
	category string
	limit    int
	team     string
	matchID  int

	block   chan struct{}
	entered chan struct{}
}

func (f *fakeDigests) GetStandings(ctx context.Context) (string, error) {
	if f.block != nil {
		f.entered <- struct{}{}
		select {
		case <-f.block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return "standings table", f.err
}

func (f *fakeDigests) GetResults(ctx context.Context) (string, error) {
	return "latest results", f.err
}

func (f *fakeDigests) GetFixtures(ctx context.Context, round int) (string, error) {
	f.round = round
	return "fixtures", f.err
}

func (f *fakeDigests) GetTopStats(ctx context.Context, category string, limit int) (string, error) {
	f.category, f.limit = category, limit
	return "leaderboard", f.err
}

func (f *fakeDigests) GetTeamReport(ctx context.Context, name string) (string, error) {
	f.team = name
	return "team report", f.err
}

func (f *fakeDigests) GetMatchReport(ctx context.Context, matchID int) (string, error) {
	f.matchID = matchID
	return "match report", f.err
}

func commandUpdate(chatID int64, text string) tgbotapi.Update {
	length := len(text)
	for i, r := range text {
		if r == ' ' {
			length = i
			break
		}
	}
	return tgbotapi.Update{Message: &tgbotapi.Message{
		Text:     text,
		Chat:     &tgbotapi.Chat{ID: chatID},
		Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: length}},
	}}
}

func TestHandleCommand(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantText  string
		wantParse string
	}{
		{name: "start", text: "/start", wantText: "Welcome to League Hub! Use /help to see available commands.", wantParse: ""},
		{name: "help", text: "/help", wantText: helpText, wantParse: ""},
		{name: "standings", text: "/standings", wantText: "standings table", wantParse: "Markdown"},
		{name: "results", text: "/results", wantText: "latest results", wantParse: "Markdown"},
		{name: "fixtures", text: "/fixtures", wantText: "fixtures", wantParse: "Markdown"},
		{name: "fixtures bad round", text: "/fixtures next", wantText: "Round must be a positive number. Usage: /fixtures [round]", wantParse: ""},
		{name: "top", text: "/top assists", wantText: "leaderboard", wantParse: "Markdown"},
		{name: "team", text: "/team man city", wantText: "team report", wantParse: "Markdown"},
		{name: "team missing name", text: "/team", wantText: "Please provide a team name. Usage: /team <team name>", wantParse: ""},
		{name: "match", text: "/match 12", wantText: "match report", wantParse: "Markdown"},
		{name: "match bad id", text: "/match x", wantText: "Please provide a match id. Usage: /match <id>", wantParse: ""},
		{name: "unknown", text: "/transfers", wantText: "Unknown command. Use /help to see available commands.", wantParse: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeDigests{})

			msg := h.HandleCommand(context.Background(), commandUpdate(42, tt.text))

			assert.Equal(t, int64(42), msg.ChatID)
			assert.Equal(t, tt.wantText, msg.Text)
			assert.Equal(t, tt.wantParse, msg.ParseMode)
		})
	}
}

func TestHandleCommandArguments(t *testing.T) {
	d := &fakeDigests{}
	h := NewHandler(d)

	h.HandleCommand(context.Background(), commandUpdate(1, "/fixtures 7"))
	h.HandleCommand(context.Background(), commandUpdate(1, "/top clean_sheets"))
	h.HandleCommand(context.Background(), commandUpdate(1, "/team  Arsenal "))
	h.HandleCommand(context.Background(), commandUpdate(1, "/match 31"))

	assert.Equal(t, 7, d.round)
	assert.Equal(t, "clean_sheets", d.category)
	assert.Zero(t, d.limit)
	assert.Equal(t, "Arsenal", d.team)
	assert.Equal(t, 31, d.matchID)
}

func TestHandleCommandErrorUsesUpstreamMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "api error", err: &league.APIError{Message: "match not found", StatusCode: 404}, want: "Error fetching match report: match not found"},
		{name: "transport", err: errors.New("connection refused"), want: "Error fetching match report: connection refused"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(&fakeDigests{err: tt.err})

			msg := h.HandleCommand(context.Background(), commandUpdate(1, "/match 99"))

			assert.Equal(t, tt.want, msg.Text)
			assert.Empty(t, msg.ParseMode)
		})
	}
}
