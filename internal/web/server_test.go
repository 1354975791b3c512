package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/omarshaarawi/leaguehub/internal/api/league"
	"github.com/omarshaarawi/leaguehub/internal/config"
	"github.com/omarshaarawi/leaguehub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePages struct {
	err error

	filter models.MatchFilter
	show   int
	id     int
	cat    string
}

func (f *fakePages) Home(ctx context.Context) (*models.HomePage, error) {
	if f.err != nil {
		return nil, f.err
	}
	two, one := 2, 1
	return &models.HomePage{
		Finished: []models.MatchRow{{
			Match:     models.Match{ID: 7, Round: 1, Status: models.StatusFinished, HomeScore: &two, AwayScore: &one},
			HomeLabel: "ARS", AwayLabel: "CHE", Score: "2 : 1", When: "2025-08-23 14:00",
		}},
		Upcoming:   []models.MatchRow{},
		Standings:  []models.StandingRow{{Standing: models.Standing{TeamID: 1, Rank: 1, Points: 9}, TeamName: "Arsenal"}},
		TopScorers: []models.TopStat{{PlayerName: "Saka", TeamShortName: "ARS", Value: 4}},
		Warning:    "Some data could not be loaded.",
	}, nil
}

func (f *fakePages) Matches(ctx context.Context, filter models.MatchFilter, show int) (*models.MatchesPage, error) {
	f.filter, f.show = filter, show
	if f.err != nil {
		return nil, f.err
	}
	return &models.MatchesPage{
		Filter: filter,
		Teams:  []models.Team{{ID: 1, Name: "Arsenal", ShortName: "ARS"}},
		Groups: []models.DateGroup{{Date: "2025-08-23", Matches: []models.MatchRow{{
			Match:     models.Match{ID: 7, Status: models.StatusScheduled},
			HomeLabel: "ARS", AwayLabel: "CHE", When: "2025-08-23 14:00",
		}}}},
		Visible:  1,
		Fetched:  2,
		Total:    2,
		HasMore:  true,
		NextShow: 40,
	}, nil
}

func (f *fakePages) MatchDetail(ctx context.Context, matchID int) (*models.MatchPage, error) {
	f.id = matchID
	if f.err != nil {
		return nil, f.err
	}
	return &models.MatchPage{
		Match:  models.MatchRow{Match: models.Match{ID: matchID, Round: 1}, HomeName: "Arsenal", AwayName: "Chelsea", Score: "2 : 1"},
		Events: []models.EventRow{{MatchEvent: models.MatchEvent{Minute: 12}, Summary: "GOAL - Saka", TeamName: "ARS"}},
		Stats:  []models.StatRow{{TeamName: "ARS", Possession: "58%", Shots: "14", ShotsOnTarget: "6", Fouls: "-", Corners: "7"}},
	}, nil
}

func (f *fakePages) Standings(ctx context.Context) (*models.StandingsPage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.StandingsPage{Rows: []models.StandingRow{{Standing: models.Standing{TeamID: 1, Rank: 1}, TeamName: "Arsenal"}}}, nil
}

func (f *fakePages) Stats(ctx context.Context, category string) (*models.StatsPage, error) {
	f.cat = category
	if f.err != nil {
		return nil, f.err
	}
	return &models.StatsPage{
		Category:   models.CategoryGoals,
		Categories: models.StatsCategories,
		Items:      []models.TopStat{{PlayerName: "Saka", TeamShortName: "ARS", Value: 4, Goals: 4}},
	}, nil
}

func (f *fakePages) Teams(ctx context.Context) (*models.TeamsPage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.TeamsPage{Teams: []models.Team{{ID: 1, Name: "Arsenal", ShortName: "ARS"}}}, nil
}

func (f *fakePages) TeamDetail(ctx context.Context, teamID int) (*models.TeamPage, error) {
	f.id = teamID
	if f.err != nil {
		return nil, f.err
	}
	num := 7
	return &models.TeamPage{
		Team:       models.Team{ID: teamID, Name: "Arsenal", ShortName: "ARS"},
		Manager:    "-",
		Stadium:    "Emirates Stadium",
		RecentForm: []models.FormResult{models.FormWin},
		Squad: []models.PositionGroup{{Position: "FW", Players: []models.SquadPlayer{
			{ID: 1, Name: "Saka", Position: "FW", JerseyNum: &num},
		}}},
	}, nil
}

func newTestServer(t *testing.T, pages *fakePages) http.Handler {
	t.Helper()
	s, err := NewServer(config.Web{Addr: ":0", AllowedOrigins: []string{"*"}}, pages)
	require.NoError(t, err)
	return s.Handler()
}

func get(h http.Handler, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPagesRender(t *testing.T) {
	h := newTestServer(t, &fakePages{})

	tests := []struct {
		path string
		want string
	}{
		{path: "/", want: "Home dashboard partially loaded: Some data could not be loaded."},
		{path: "/matches", want: "Show more"},
		{path: "/matches/7", want: "GOAL - Saka"},
		{path: "/standings", want: "League Table"},
		{path: "/stats", want: "Top Scorers"},
		{path: "/teams", want: "Stadium: -"},
		{path: "/teams/1", want: "Saka #7"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(h, tt.path, nil)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestNavMarksActiveSection(t *testing.T) {
	h := newTestServer(t, &fakePages{})

	rec := get(h, "/matches/7", nil)

	assert.Contains(t, rec.Body.String(), `<a href="/matches" aria-current="page">Fixtures</a>`)
	assert.NotContains(t, rec.Body.String(), `<a href="/" aria-current="page">`)
}

func TestMatchesQueryParams(t *testing.T) {
	pages := &fakePages{}
	h := newTestServer(t, pages)

	rec := get(h, "/matches?round=3&month=abc&team_id=5&show=40", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.MatchFilter{Round: 3, TeamID: 5}, pages.filter)
	assert.Equal(t, 40, pages.show)
	assert.Contains(t, rec.Body.String(), "/matches?round=3&amp;show=40&amp;team_id=5")
}

func TestInvalidIDIsBadRequest(t *testing.T) {
	pages := &fakePages{}
	h := newTestServer(t, pages)

	rec := get(h, "/matches/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid match id")

	rec = get(h, "/api/teams/0", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"detail":"invalid team id"}`, rec.Body.String())
	assert.Zero(t, pages.id)
}

func TestUpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "not found",
			err:        &league.APIError{Message: "match not found", StatusCode: http.StatusNotFound},
			wantStatus: http.StatusNotFound,
			wantDetail: "match not found",
		},
		{
			name:       "server error",
			err:        &league.APIError{Message: "request failed", StatusCode: http.StatusInternalServerError},
			wantStatus: http.StatusBadGateway,
			wantDetail: "request failed",
		},
		{
			name:       "transport",
			err:        errors.New("dial tcp: connection refused"),
			wantStatus: http.StatusBadGateway,
			wantDetail: "dial tcp: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, &fakePages{err: tt.err})

			rec := get(h, "/api/matches/9", nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
			var body models.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantDetail, body.Detail)

			rec = get(h, "/matches/9", nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), "Match Detail failed: "+tt.wantDetail)
		})
	}
}

func TestAPIServesJSONWithCORS(t *testing.T) {
	pages := &fakePages{}
	h := newTestServer(t, pages)

	rec := get(h, "/api/stats?category=assists", map[string]string{"Origin": "https://example.com"})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "assists", pages.cat)

	var page models.StatsPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, models.CategoryGoals, page.Category)
	assert.Len(t, page.Items, 1)
}

func TestUnknownPathIsNotFound(t *testing.T) {
	h := newTestServer(t, &fakePages{})

	rec := get(h, "/nowhere", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "page not found")
}

func TestHealthzAndRequestID(t *testing.T) {
	h := newTestServer(t, &fakePages{})

	rec := get(h, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	rec = get(h, "/healthz", map[string]string{"X-Request-ID": "abc-123"})
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestServer(t, &fakePages{})
	get(h, "/standings", nil)

	rec := get(h, "/metrics", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `leaguehub_http_requests_total{method="GET",route="/standings",status="200"}`)
}
