package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/omarshaarawi/leaguehub/internal/models"
)

type teamIndex map[int]models.Team

func newTeamIndex(l *models.TeamList) teamIndex {
	idx := teamIndex{}
	if l == nil {
		return idx
	}
	for _, t := range l.Items {
		idx[t.ID] = t
	}
	return idx
}

func (idx teamIndex) short(id int) string {
	if t, ok := idx[id]; ok && t.ShortName != "" {
		return t.ShortName
	}
	return fmt.Sprintf("#%d", id)
}

func (idx teamIndex) long(id int) string {
	if t, ok := idx[id]; ok && t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("Team #%d", id)
}

func (idx teamIndex) shortPtr(id *int) string {
	if id == nil {
		return models.Placeholder
	}
	return idx.short(*id)
}

func FormatDateTime(value string, loc *time.Location) string {
	t, ok := models.ParseTimestamp(value)
	if !ok {
		return models.Placeholder
	}
	return t.In(loc).Format("2006-01-02 15:04")
}

func FormatDate(value string, loc *time.Location) string {
	t, ok := models.ParseTimestamp(value)
	if !ok {
		return models.Placeholder
	}
	return t.In(loc).Format("2006-01-02")
}

// ScoreLine renders "2 : 1", with the placeholder for unrecorded scores.
func ScoreLine(m models.Match) string {
	return IntOrPlaceholder(m.HomeScore) + " : " + IntOrPlaceholder(m.AwayScore)
}

func IntOrPlaceholder(v *int) string {
	if v == nil {
		return models.Placeholder
	}
	return strconv.Itoa(*v)
}

func PercentOrPlaceholder(v *float64) string {
	if v == nil {
		return models.Placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + "%"
}

func StringOrPlaceholder(v *string) string {
	if v == nil || *v == "" {
		return models.Placeholder
	}
	return *v
}

// EventSummary renders "GOAL - Saka (penalty)", omitting parts that were not recorded.
func EventSummary(ev models.MatchEvent) string {
	var sb strings.Builder
	sb.WriteString(ev.Type)
	if ev.PlayerName != nil && *ev.PlayerName != "" {
		sb.WriteString(" - ")
		sb.WriteString(*ev.PlayerName)
	}
	if ev.Detail != nil && *ev.Detail != "" {
		sb.WriteString(" (")
		sb.WriteString(*ev.Detail)
		sb.WriteString(")")
	}
	return sb.String()
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// md escapes upstream text for Telegram's legacy Markdown, where a stray
// underscore or asterisk opens an entity and the send is rejected.
func md(s string) string {
	return markdownEscaper.Replace(s)
}
