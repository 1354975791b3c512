package league

import (
	"context"
	"fmt"

	"github.com/omarshaarawi/leaguehub/internal/models"
)

const DefaultTopStatsLimit = 10

// API exposes one method per upstream resource. Errors are returned as the
// client produced them so callers can inspect *APIError directly.
type API struct {
	client *Client
}

func NewAPI(client *Client) *API {
	return &API{client: client}
}

func (a *API) ListMatches(ctx context.Context, filter models.MatchFilter) (*models.MatchList, error) {
	var q Query
	q.SetInt("round", filter.Round)
	q.SetInt("month", filter.Month)
	q.SetInt("team_id", filter.TeamID)
	q.SetInt("limit", filter.Limit)
	q.SetInt("offset", filter.Offset)

	var resp models.MatchList
	if err := a.client.Get(ctx, WithQuery("/matches", q), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *API) GetMatch(ctx context.Context, matchID int) (*models.MatchDetail, error) {
	var resp models.MatchDetail
	if err := a.client.Get(ctx, fmt.Sprintf("/matches/%d", matchID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *API) ListStandings(ctx context.Context) (*models.StandingList, error) {
	var resp models.StandingList
	if err := a.client.Get(ctx, "/standings", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// TopStats ranks players by category. A non-positive limit uses the upstream default of 10.
func (a *API) TopStats(ctx context.Context, category models.StatsCategory, limit int) (*models.TopStatList, error) {
	if limit <= 0 {
		limit = DefaultTopStatsLimit
	}
	var q Query
	q.Set("category", string(category))
	q.SetInt("limit", limit)

	var resp models.TopStatList
	if err := a.client.Get(ctx, WithQuery("/stats/top", q), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *API) ListTeams(ctx context.Context) (*models.TeamList, error) {
	var resp models.TeamList
	if err := a.client.Get(ctx, "/teams", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *API) GetTeam(ctx context.Context, teamID int) (*models.TeamDetail, error) {
	var resp models.TeamDetail
	if err := a.client.Get(ctx, fmt.Sprintf("/teams/%d", teamID), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
