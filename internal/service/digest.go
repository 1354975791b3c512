package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/leaguehub/internal/fetch"
	"github.com/omarshaarawi/leaguehub/internal/models"
)

const (
	teamDirectoryTTL   = 24 * time.Hour
	teamMatchThreshold = 0.6
	digestPageSize     = 100
	digestMaxPages     = 10
	digestResults      = 10
	digestFixtures     = 10
	DefaultTopLimit    = 5
)

// teamDirectory returns the cached team list, refreshing it once a day.
func (s *HubService) teamDirectory(ctx context.Context) ([]models.Team, error) {
	teams, updated := s.repo.GetTeams()
	if !updated.IsZero() && s.now().Sub(updated) < teamDirectoryTTL {
		return teams, nil
	}

	fresh, err := s.api.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching teams: %w", err)
	}
	s.repo.SaveTeams(fresh.Items, s.now())
	return fresh.Items, nil
}

// ResolveTeam finds the team a user most likely meant by name. Exact name or
// short name matches win, then fuzzy subsequence matches, then near misses
// by edit distance.
func ResolveTeam(teams []models.Team, query string) (models.Team, bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return models.Team{}, false
	}

	for _, t := range teams {
		if strings.EqualFold(t.Name, q) || strings.EqualFold(t.ShortName, q) {
			return t, true
		}
	}

	names := make([]string, len(teams))
	for i, t := range teams {
		names[i] = t.Name
	}
	if ranks := fuzzy.RankFindNormalizedFold(q, names); len(ranks) > 0 {
		sort.Sort(ranks)
		return teams[ranks[0].OriginalIndex], true
	}

	best, bestSimilarity := -1, 0.0
	lq := strings.ToLower(q)
	for i, t := range teams {
		name := strings.ToLower(t.Name)
		distance := fuzzy.LevenshteinDistance(lq, name)
		maxLen := float64(max(len(lq), len(name)))
		similarity := 1 - float64(distance)/maxLen
		if similarity > teamMatchThreshold && similarity > bestSimilarity {
			best, bestSimilarity = i, similarity
		}
	}
	if best < 0 {
		return models.Team{}, false
	}
	return teams[best], true
}

func (s *HubService) GetStandings(ctx context.Context) (string, error) {
	page, err := s.Standings(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("🏆 *Current Standings*\n\n")
	for _, row := range page.Rows {
		sb.WriteString(fmt.Sprintf("%d. *%s* - %d pts\n", row.Rank, md(row.TeamName), row.Points))
		sb.WriteString(fmt.Sprintf("   P%d W%d D%d L%d  GD %+d\n", row.Played, row.Won, row.Drawn, row.Lost, row.GoalDiff))
	}
	if page.Warning != "" {
		sb.WriteString("\n_" + page.Warning + "_\n")
	}
	return sb.String(), nil
}

// seasonMatches pages through every match for filter together with the team
// list; both are required. The upstream lists newest first, so the first page
// of a season holds only its furthest fixtures.
func (s *HubService) seasonMatches(ctx context.Context, filter models.MatchFilter) ([]models.Match, teamIndex, error) {
	var (
		matches []models.Match
		teams   *models.TeamList
	)
	_, err := fetch.Run(ctx, fetch.FailFast,
		fetch.Task{Name: "matches", Run: func(ctx context.Context) error {
			filter.Limit = digestPageSize
			for page := 0; page < digestMaxPages; page++ {
				filter.Offset = page * digestPageSize
				list, err := s.api.ListMatches(ctx, filter)
				if err != nil {
					return err
				}
				matches = append(matches, list.Items...)
				if len(list.Items) < digestPageSize || len(matches) >= list.Total {
					return nil
				}
			}
			slog.Warn("Match list truncated", "pages", digestMaxPages, "fetched", len(matches))
			return nil
		}},
		fetch.Task{Name: "teams", Run: func(ctx context.Context) (err error) {
			teams, err = s.api.ListTeams(ctx)
			return err
		}},
	)
	if err != nil {
		return nil, nil, err
	}
	return matches, newTeamIndex(teams), nil
}

// sortByKickoff orders matches by kickoff, latest first when desc is set.
// Matches with an unparseable kickoff sort last.
func sortByKickoff(matches []models.Match, desc bool) {
	sort.SliceStable(matches, func(i, j int) bool {
		ti, iok := matches[i].KickoffTime()
		tj, jok := matches[j].KickoffTime()
		if iok != jok {
			return iok
		}
		if desc {
			return ti.After(tj)
		}
		return ti.Before(tj)
	})
}

func (s *HubService) GetResults(ctx context.Context) (string, error) {
	matches, idx, err := s.seasonMatches(ctx, models.MatchFilter{})
	if err != nil {
		return "", fmt.Errorf("error fetching results: %w", err)
	}

	finished := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if m.Finished() {
			finished = append(finished, m)
		}
	}
	sortByKickoff(finished, true)

	var sb strings.Builder
	sb.WriteString("⚽ *Latest Results*\n\n")
	if len(finished) == 0 {
		sb.WriteString("No finished matches yet.")
		return sb.String(), nil
	}
	for _, m := range finished[:min(digestResults, len(finished))] {
		sb.WriteString(fmt.Sprintf("*%s* %s *%s*\n", md(idx.short(m.HomeTeamID)), ScoreLine(m), md(idx.short(m.AwayTeamID))))
		sb.WriteString(fmt.Sprintf("   Round %d · %s\n", m.Round, FormatDateTime(m.Kickoff, s.loc)))
	}
	return sb.String(), nil
}

// GetFixtures lists the soonest upcoming matches, or every remaining match of
// one round.
func (s *HubService) GetFixtures(ctx context.Context, round int) (string, error) {
	filter := SanitizeFilter(models.MatchFilter{Round: round})

	matches, idx, err := s.seasonMatches(ctx, filter)
	if err != nil {
		return "", fmt.Errorf("error fetching fixtures: %w", err)
	}

	upcoming := make([]models.Match, 0, len(matches))
	for _, m := range matches {
		if !m.Finished() {
			upcoming = append(upcoming, m)
		}
	}
	sortByKickoff(upcoming, false)
	if filter.Round == 0 {
		upcoming = upcoming[:min(digestFixtures, len(upcoming))]
	}

	var sb strings.Builder
	if filter.Round > 0 {
		sb.WriteString(fmt.Sprintf("📅 *Round %d Fixtures*\n\n", filter.Round))
	} else {
		sb.WriteString("📅 *Upcoming Fixtures*\n\n")
	}
	if len(upcoming) == 0 {
		sb.WriteString("No upcoming matches.")
		return sb.String(), nil
	}
	for _, m := range upcoming {
		sb.WriteString(fmt.Sprintf("*%s* vs *%s*\n", md(idx.short(m.HomeTeamID)), md(idx.short(m.AwayTeamID))))
		sb.WriteString(fmt.Sprintf("   Round %d · %s\n", m.Round, FormatDateTime(m.Kickoff, s.loc)))
	}
	return sb.String(), nil
}

func (s *HubService) GetTopStats(ctx context.Context, category string, limit int) (string, error) {
	cat, ok := models.ParseStatsCategory(category)
	if !ok {
		cat = models.CategoryGoals
	}
	if limit <= 0 {
		limit = DefaultTopLimit
	}

	top, err := s.api.TopStats(ctx, cat, limit)
	if err != nil {
		return "", fmt.Errorf("error fetching %s leaderboard: %w", cat, err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📊 *%s*\n\n", cat.Label()))
	if len(top.Items) == 0 {
		sb.WriteString("No player statistics yet.")
		return sb.String(), nil
	}
	for i, item := range top.Items {
		sb.WriteString(fmt.Sprintf("%d. %s (%s) - *%d*\n", i+1, md(item.PlayerName), md(item.TeamShortName), item.Value))
	}
	return sb.String(), nil
}

func (s *HubService) GetTeamReport(ctx context.Context, name string) (string, error) {
	teams, err := s.teamDirectory(ctx)
	if err != nil {
		return "", err
	}

	team, ok := ResolveTeam(teams, name)
	if !ok {
		return fmt.Sprintf("🔍 No team found matching '%s'.", md(name)), nil
	}

	page, err := s.TeamDetail(ctx, team.ID)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("📋 *%s* (%s)\n", md(page.Team.Name), md(page.Team.ShortName)))
	sb.WriteString(fmt.Sprintf("Manager: %s\n", md(page.Manager)))
	sb.WriteString(fmt.Sprintf("Stadium: %s\n", md(page.Stadium)))

	if len(page.RecentForm) > 0 {
		labels := make([]string, len(page.RecentForm))
		for i, f := range page.RecentForm {
			labels[i] = f.Label()
		}
		sb.WriteString(fmt.Sprintf("Form: %s\n", strings.Join(labels, " ")))
	}

	for _, group := range page.Squad {
		sb.WriteString(fmt.Sprintf("\n*%s:*\n", md(group.Position)))
		for _, p := range group.Players {
			if p.JerseyNum != nil {
				sb.WriteString(fmt.Sprintf("  • #%d %s\n", *p.JerseyNum, md(p.Name)))
			} else {
				sb.WriteString(fmt.Sprintf("  • %s\n", md(p.Name)))
			}
		}
	}
	return sb.String(), nil
}

func (s *HubService) GetMatchReport(ctx context.Context, matchID int) (string, error) {
	page, err := s.MatchDetail(ctx, matchID)
	if err != nil {
		return "", err
	}

	m := page.Match
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*%s* %s *%s*\n", md(m.HomeName), m.Score, md(m.AwayName)))
	sb.WriteString(fmt.Sprintf("Round %d · %s · %s\n", m.Round, m.When, md(m.Status)))

	if len(page.Events) > 0 {
		sb.WriteString("\n*Timeline:*\n")
		for _, ev := range page.Events {
			sb.WriteString(fmt.Sprintf("%d' %s (%s)\n", ev.Minute, md(ev.Summary), md(ev.TeamName)))
		}
	}
	for _, st := range page.Stats {
		sb.WriteString(fmt.Sprintf("\n*%s:* possession %s, shots %s (%s on target), corners %s, fouls %s",
			md(st.TeamName), st.Possession, st.Shots, st.ShotsOnTarget, st.Corners, st.Fouls))
	}
	return sb.String(), nil
}
