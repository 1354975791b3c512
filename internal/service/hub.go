package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/omarshaarawi/leaguehub/internal/config"
	"github.com/omarshaarawi/leaguehub/internal/fetch"
	"github.com/omarshaarawi/leaguehub/internal/models"
	"github.com/omarshaarawi/leaguehub/internal/repository/memory"
)

// PartialWarning is the single notice a BestEffort page shows when any of
// its fetches failed.
const PartialWarning = "Some data could not be loaded."

const (
	homeMatchLimit        = 10
	homeTopScorers        = 3
	homeFinishedCount     = 4
	homeUpcomingCount     = 3
	matchesFetchLimit     = 100
	InitialVisibleMatches = 20
	LoadMoreStep          = 20
	statsPageLimit        = 20
	MaxRound              = 38
)

// Source is the upstream league data the hub reads from.
type Source interface {
	ListMatches(ctx context.Context, filter models.MatchFilter) (*models.MatchList, error)
	GetMatch(ctx context.Context, matchID int) (*models.MatchDetail, error)
	ListStandings(ctx context.Context) (*models.StandingList, error)
	TopStats(ctx context.Context, category models.StatsCategory, limit int) (*models.TopStatList, error)
	ListTeams(ctx context.Context) (*models.TeamList, error)
	GetTeam(ctx context.Context, teamID int) (*models.TeamDetail, error)
}

type HubService struct {
	api      Source
	repo     *memory.Repository
	policies config.Pages
	loc      *time.Location
	now      func() time.Time
}

func NewHubService(api Source, repo *memory.Repository, policies config.Pages, loc *time.Location) *HubService {
	if loc == nil {
		loc = time.UTC
	}
	return &HubService{
		api:      api,
		repo:     repo,
		policies: policies,
		loc:      loc,
		now:      time.Now,
	}
}

// load runs tasks under policy. Under BestEffort the primary task, if named,
// must still succeed; any other failure turns into PartialWarning.
func (s *HubService) load(ctx context.Context, page string, policy fetch.Policy, primary string, tasks ...fetch.Task) (string, error) {
	out, err := fetch.Run(ctx, policy, tasks...)
	if err != nil {
		return "", err
	}
	if primary != "" {
		if err := out.Err(primary); err != nil {
			return "", err
		}
	}
	if !out.Partial() {
		return "", nil
	}
	for _, f := range out.Failures {
		slog.Warn("Partial page load", "page", page, "resource", f.Task, "error", f.Err)
	}
	return PartialWarning, nil
}

func (s *HubService) Home(ctx context.Context) (*models.HomePage, error) {
	var (
		matches   *models.MatchList
		standings *models.StandingList
		scorers   *models.TopStatList
		teams     *models.TeamList
	)

	warning, err := s.load(ctx, "home", s.policies.Home, "",
		fetch.Task{Name: "matches", Run: func(ctx context.Context) (err error) {
			matches, err = s.api.ListMatches(ctx, models.MatchFilter{Limit: homeMatchLimit})
			return err
		}},
		fetch.Task{Name: "standings", Run: func(ctx context.Context) (err error) {
			standings, err = s.api.ListStandings(ctx)
			return err
		}},
		fetch.Task{Name: "top_scorers", Run: func(ctx context.Context) (err error) {
			scorers, err = s.api.TopStats(ctx, models.CategoryGoals, homeTopScorers)
			return err
		}},
		fetch.Task{Name: "teams", Run: func(ctx context.Context) (err error) {
			teams, err = s.api.ListTeams(ctx)
			return err
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("error loading home page: %w", err)
	}

	idx := newTeamIndex(teams)
	page := &models.HomePage{
		Finished:   []models.MatchRow{},
		Upcoming:   []models.MatchRow{},
		Standings:  []models.StandingRow{},
		TopScorers: []models.TopStat{},
		Warning:    warning,
	}

	for _, m := range matchItems(matches) {
		switch {
		case m.Finished() && len(page.Finished) < homeFinishedCount:
			page.Finished = append(page.Finished, s.matchRow(m, idx))
		case !m.Finished() && len(page.Upcoming) < homeUpcomingCount:
			page.Upcoming = append(page.Upcoming, s.matchRow(m, idx))
		}
	}

	rows := standingItems(standings)
	for _, row := range MiniStandings(rows) {
		page.Standings = append(page.Standings, models.StandingRow{Standing: row, TeamName: idx.long(row.TeamID)})
	}

	if scorers != nil {
		page.TopScorers = append(page.TopScorers, scorers.Items...)
	}

	return page, nil
}

// MiniStandings keeps the top five and the relegation end of the table.
func MiniStandings(rows []models.Standing) []models.Standing {
	cutoff := max(18, len(rows)-2)
	out := make([]models.Standing, 0, len(rows))
	for _, row := range rows {
		if row.Rank <= 5 || row.Rank >= cutoff {
			out = append(out, row)
		}
	}
	return out
}

// SanitizeFilter drops filter values outside the ranges the upstream accepts.
func SanitizeFilter(f models.MatchFilter) models.MatchFilter {
	if f.Round < 1 || f.Round > MaxRound {
		f.Round = 0
	}
	if f.Month < 1 || f.Month > 12 {
		f.Month = 0
	}
	if f.TeamID < 1 {
		f.TeamID = 0
	}
	return f
}

func (s *HubService) Matches(ctx context.Context, filter models.MatchFilter, show int) (*models.MatchesPage, error) {
	filter = SanitizeFilter(filter)
	filter.Limit = matchesFetchLimit
	filter.Offset = 0
	if show <= 0 {
		show = InitialVisibleMatches
	}

	var (
		matches *models.MatchList
		teams   *models.TeamList
	)
	warning, err := s.load(ctx, "matches", s.policies.Matches, "matches",
		fetch.Task{Name: "matches", Run: func(ctx context.Context) (err error) {
			matches, err = s.api.ListMatches(ctx, filter)
			return err
		}},
		fetch.Task{Name: "teams", Run: func(ctx context.Context) (err error) {
			teams, err = s.api.ListTeams(ctx)
			return err
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("error fetching matches: %w", err)
	}

	idx := newTeamIndex(teams)
	items := matchItems(matches)
	visible := items[:min(show, len(items))]

	page := &models.MatchesPage{
		Filter:  filter,
		Teams:   teamItems(teams),
		Groups:  s.groupByDate(visible, idx),
		Visible: len(visible),
		Fetched: len(items),
		Total:   matches.Total,
		HasMore: len(items) > len(visible),
		Warning: warning,
	}
	if page.HasMore {
		page.NextShow = show + LoadMoreStep
	}
	return page, nil
}

func (s *HubService) groupByDate(matches []models.Match, idx teamIndex) []models.DateGroup {
	groups := []models.DateGroup{}
	pos := map[string]int{}
	for _, m := range matches {
		key := FormatDate(m.Kickoff, s.loc)
		i, ok := pos[key]
		if !ok {
			i = len(groups)
			pos[key] = i
			groups = append(groups, models.DateGroup{Date: key})
		}
		groups[i].Matches = append(groups[i].Matches, s.matchRow(m, idx))
	}
	return groups
}

func (s *HubService) MatchDetail(ctx context.Context, matchID int) (*models.MatchPage, error) {
	var (
		detail *models.MatchDetail
		teams  *models.TeamList
	)
	warning, err := s.load(ctx, "match_detail", s.policies.MatchDetail, "match",
		fetch.Task{Name: "match", Run: func(ctx context.Context) (err error) {
			detail, err = s.api.GetMatch(ctx, matchID)
			return err
		}},
		fetch.Task{Name: "teams", Run: func(ctx context.Context) (err error) {
			teams, err = s.api.ListTeams(ctx)
			return err
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("error fetching match %d: %w", matchID, err)
	}

	idx := newTeamIndex(teams)
	page := &models.MatchPage{
		Match:   s.matchRow(detail.Match, idx),
		Events:  make([]models.EventRow, 0, len(detail.Events)),
		Stats:   make([]models.StatRow, 0, len(detail.Stats)),
		Warning: warning,
	}
	for _, ev := range detail.Events {
		page.Events = append(page.Events, models.EventRow{
			MatchEvent: ev,
			Summary:    EventSummary(ev),
			TeamName:   idx.shortPtr(ev.TeamID),
		})
	}
	for _, st := range detail.Stats {
		page.Stats = append(page.Stats, models.StatRow{
			TeamName:      idx.short(st.TeamID),
			Possession:    PercentOrPlaceholder(st.Possession),
			Shots:         IntOrPlaceholder(st.Shots),
			ShotsOnTarget: IntOrPlaceholder(st.ShotsOnTarget),
			Fouls:         IntOrPlaceholder(st.Fouls),
			Corners:       IntOrPlaceholder(st.Corners),
		})
	}
	return page, nil
}

func (s *HubService) Standings(ctx context.Context) (*models.StandingsPage, error) {
	var (
		standings *models.StandingList
		teams     *models.TeamList
	)
	warning, err := s.load(ctx, "standings", s.policies.Standings, "standings",
		fetch.Task{Name: "standings", Run: func(ctx context.Context) (err error) {
			standings, err = s.api.ListStandings(ctx)
			return err
		}},
		fetch.Task{Name: "teams", Run: func(ctx context.Context) (err error) {
			teams, err = s.api.ListTeams(ctx)
			return err
		}},
	)
	if err != nil {
		return nil, fmt.Errorf("error fetching standings: %w", err)
	}

	idx := newTeamIndex(teams)
	page := &models.StandingsPage{
		Rows:    make([]models.StandingRow, 0, len(standings.Items)),
		Warning: warning,
	}
	for _, row := range standings.Items {
		page.Rows = append(page.Rows, models.StandingRow{Standing: row, TeamName: idx.long(row.TeamID)})
	}
	return page, nil
}

// Stats loads the leaderboard for category. Unknown categories fall back to goals.
func (s *HubService) Stats(ctx context.Context, category string) (*models.StatsPage, error) {
	cat, ok := models.ParseStatsCategory(category)
	if !ok {
		cat = models.CategoryGoals
	}

	top, err := s.api.TopStats(ctx, cat, statsPageLimit)
	if err != nil {
		return nil, fmt.Errorf("error fetching %s leaderboard: %w", cat, err)
	}

	return &models.StatsPage{
		Category:   cat,
		Categories: models.StatsCategories,
		Items:      append([]models.TopStat{}, top.Items...),
	}, nil
}

func (s *HubService) Teams(ctx context.Context) (*models.TeamsPage, error) {
	teams, err := s.api.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("error fetching teams: %w", err)
	}
	return &models.TeamsPage{Teams: append([]models.Team{}, teams.Items...)}, nil
}

func (s *HubService) TeamDetail(ctx context.Context, teamID int) (*models.TeamPage, error) {
	detail, err := s.api.GetTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("error fetching team %d: %w", teamID, err)
	}

	return &models.TeamPage{
		Team:       detail.Team,
		Manager:    StringOrPlaceholder(detail.Team.Manager),
		Stadium:    StringOrPlaceholder(detail.Team.Stadium),
		RecentForm: append([]models.FormResult{}, detail.RecentForm...),
		Squad:      GroupByPosition(detail.Squad),
	}, nil
}

// GroupByPosition groups players by position in first-seen order.
func GroupByPosition(squad []models.SquadPlayer) []models.PositionGroup {
	groups := []models.PositionGroup{}
	pos := map[string]int{}
	for _, p := range squad {
		i, ok := pos[p.Position]
		if !ok {
			i = len(groups)
			pos[p.Position] = i
			groups = append(groups, models.PositionGroup{Position: p.Position})
		}
		groups[i].Players = append(groups[i].Players, p)
	}
	return groups
}

func (s *HubService) matchRow(m models.Match, idx teamIndex) models.MatchRow {
	return models.MatchRow{
		Match:     m,
		HomeName:  idx.long(m.HomeTeamID),
		AwayName:  idx.long(m.AwayTeamID),
		HomeLabel: idx.short(m.HomeTeamID),
		AwayLabel: idx.short(m.AwayTeamID),
		Score:     ScoreLine(m),
		When:      FormatDateTime(m.Kickoff, s.loc),
	}
}

func matchItems(l *models.MatchList) []models.Match {
	if l == nil {
		return nil
	}
	return l.Items
}

func standingItems(l *models.StandingList) []models.Standing {
	if l == nil {
		return nil
	}
	return l.Items
}

func teamItems(l *models.TeamList) []models.Team {
	if l == nil {
		return []models.Team{}
	}
	return append([]models.Team{}, l.Items...)
}
