package models

import (
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusFinished  = "FINISHED"
)

type Match struct {
	ID         int    `json:"match_id"`
	Round      int    `json:"round"`
	Kickoff    string `json:"match_date"`
	HomeTeamID int    `json:"home_team_id"`
	AwayTeamID int    `json:"away_team_id"`
	HomeScore  *int   `json:"home_score"`
	AwayScore  *int   `json:"away_score"`
	Status     string `json:"status"`
}

func (m Match) Finished() bool {
	return m.Status == StatusFinished
}

// KickoffTime parses the upstream kickoff timestamp. Timestamps without a
// zone are taken as UTC.
func (m Match) KickoffTime() (time.Time, bool) {
	return ParseTimestamp(m.Kickoff)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

type MatchList struct {
	Total int     `json:"total"`
	Items []Match `json:"items"`
}

type MatchEvent struct {
	ID         int     `json:"event_id"`
	Minute     int     `json:"minute"`
	Type       string  `json:"event_type"`
	TeamID     *int    `json:"team_id"`
	PlayerName *string `json:"player_name"`
	Detail     *string `json:"detail"`
}

type MatchStat struct {
	TeamID        int      `json:"team_id"`
	Possession    *float64 `json:"possession"`
	Shots         *int     `json:"shots"`
	ShotsOnTarget *int     `json:"shots_on_target"`
	Fouls         *int     `json:"fouls"`
	Corners       *int     `json:"corners"`
}

type MatchDetail struct {
	Match  Match        `json:"match"`
	Events []MatchEvent `json:"events"`
	Stats  []MatchStat  `json:"stats"`
}

type Standing struct {
	TeamID       int `json:"team_id"`
	Rank         int `json:"rank"`
	Played       int `json:"played"`
	Won          int `json:"won"`
	Drawn        int `json:"drawn"`
	Lost         int `json:"lost"`
	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
	GoalDiff     int `json:"goal_diff"`
	Points       int `json:"points"`
}

type StandingList struct {
	Total int        `json:"total"`
	Items []Standing `json:"items"`
}

type StatsCategory string

const (
	CategoryGoals        StatsCategory = "goals"
	CategoryAssists      StatsCategory = "assists"
	CategoryAttackPoints StatsCategory = "attack_points"
	CategoryCleanSheets  StatsCategory = "clean_sheets"
)

var StatsCategories = []StatsCategory{
	CategoryGoals,
	CategoryAssists,
	CategoryAttackPoints,
	CategoryCleanSheets,
}

func ParseStatsCategory(s string) (StatsCategory, bool) {
	c := StatsCategory(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range StatsCategories {
		if c == known {
			return c, true
		}
	}
	return "", false
}

func (c StatsCategory) Label() string {
	switch c {
	case CategoryGoals:
		return "Top Scorers"
	case CategoryAssists:
		return "Top Assists"
	case CategoryAttackPoints:
		return "Goal Contributions"
	case CategoryCleanSheets:
		return "Clean Sheets"
	default:
		return string(c)
	}
}

type TopStat struct {
	PlayerID      int    `json:"player_id"`
	PlayerName    string `json:"player_name"`
	TeamID        int    `json:"team_id"`
	TeamName      string `json:"team_name"`
	TeamShortName string `json:"team_short_name"`
	Value         int    `json:"value"`
	Goals         int    `json:"goals"`
	Assists       int    `json:"assists"`
	AttackPoints  int    `json:"attack_points"`
	CleanSheets   int    `json:"clean_sheets"`
}

type TopStatList struct {
	Category StatsCategory `json:"category"`
	Total    int           `json:"total"`
	Items    []TopStat     `json:"items"`
}

type Team struct {
	ID        int     `json:"team_id"`
	Name      string  `json:"name"`
	ShortName string  `json:"short_name"`
	LogoURL   *string `json:"logo_url"`
	Stadium   *string `json:"stadium"`
	Manager   *string `json:"manager"`
}

type TeamList struct {
	Total int    `json:"total"`
	Items []Team `json:"items"`
}

type FormResult string

const (
	FormWin  FormResult = "W"
	FormDraw FormResult = "D"
	FormLoss FormResult = "L"
)

func (f FormResult) Label() string {
	switch f {
	case FormWin:
		return "Win"
	case FormLoss:
		return "Loss"
	default:
		return "Draw"
	}
}

type SquadPlayer struct {
	ID          int     `json:"player_id"`
	Name        string  `json:"name"`
	Position    string  `json:"position"`
	JerseyNum   *int    `json:"jersey_num"`
	Nationality *string `json:"nationality"`
	PhotoURL    *string `json:"photo_url"`
}

type TeamDetail struct {
	Team       Team          `json:"team"`
	RecentForm []FormResult  `json:"recent_form"`
	Squad      []SquadPlayer `json:"squad"`
}

// ErrorResponse is the body the upstream API sends with any non-2xx status.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
