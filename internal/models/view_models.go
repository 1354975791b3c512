package models

// Placeholder is shown for any value the upstream has not recorded.
const Placeholder = "-"

// MatchRow is a match with both sides resolved to display names.
type MatchRow struct {
	Match
	HomeName  string `json:"home_name"`
	AwayName  string `json:"away_name"`
	HomeLabel string `json:"home_label"`
	AwayLabel string `json:"away_label"`
	Score     string `json:"score"`
	When      string `json:"when"`
}

type StandingRow struct {
	Standing
	TeamName string `json:"team_name"`
}

type HomePage struct {
	Finished   []MatchRow    `json:"finished"`
	Upcoming   []MatchRow    `json:"upcoming"`
	Standings  []StandingRow `json:"standings"`
	TopScorers []TopStat     `json:"top_scorers"`
	Warning    string        `json:"warning,omitempty"`
}

type MatchFilter struct {
	Round  int `json:"round,omitempty"`
	Month  int `json:"month,omitempty"`
	TeamID int `json:"team_id,omitempty"`
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

type DateGroup struct {
	Date    string     `json:"date"`
	Matches []MatchRow `json:"matches"`
}

type MatchesPage struct {
	Filter   MatchFilter `json:"filter"`
	Teams    []Team      `json:"teams"`
	Groups   []DateGroup `json:"groups"`
	Visible  int         `json:"visible"`
	Fetched  int         `json:"fetched"`
	Total    int         `json:"total"`
	HasMore  bool        `json:"has_more"`
	NextShow int         `json:"next_show,omitempty"`
	Warning  string      `json:"warning,omitempty"`
}

type EventRow struct {
	MatchEvent
	Summary  string `json:"summary"`
	TeamName string `json:"team_name"`
}

type StatRow struct {
	TeamName      string `json:"team_name"`
	Possession    string `json:"possession"`
	Shots         string `json:"shots"`
	ShotsOnTarget string `json:"shots_on_target"`
	Fouls         string `json:"fouls"`
	Corners       string `json:"corners"`
}

type MatchPage struct {
	Match   MatchRow   `json:"match"`
	Events  []EventRow `json:"events"`
	Stats   []StatRow  `json:"stats"`
	Warning string     `json:"warning,omitempty"`
}

type StandingsPage struct {
	Rows    []StandingRow `json:"rows"`
	Warning string        `json:"warning,omitempty"`
}

type StatsPage struct {
	Category   StatsCategory   `json:"category"`
	Categories []StatsCategory `json:"categories"`
	Items      []TopStat       `json:"items"`
}

type TeamsPage struct {
	Teams []Team `json:"teams"`
}

type PositionGroup struct {
	Position string        `json:"position"`
	Players  []SquadPlayer `json:"players"`
}

type TeamPage struct {
	Team       Team            `json:"team"`
	Manager    string          `json:"manager"`
	Stadium    string          `json:"stadium"`
	RecentForm []FormResult    `json:"recent_form"`
	Squad      []PositionGroup `json:"squad"`
}
