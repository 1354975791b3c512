package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/omarshaarawi/leaguehub/internal/api/league"
	"github.com/omarshaarawi/leaguehub/internal/models"
)

// loader builds one page's view model from the request.
type loader func(r *http.Request) (interface{}, error)

type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string {
	return e.msg
}

func (s *Server) loadHome(r *http.Request) (interface{}, error) {
	return s.pages.Home(r.Context())
}

func (s *Server) loadMatches(r *http.Request) (interface{}, error) {
	q := r.URL.Query()
	filter := models.MatchFilter{
		Round:  queryInt(q.Get("round")),
		Month:  queryInt(q.Get("month")),
		TeamID: queryInt(q.Get("team_id")),
	}
	return s.pages.Matches(r.Context(), filter, queryInt(q.Get("show")))
}

func (s *Server) loadMatch(r *http.Request) (interface{}, error) {
	id, err := pathID(r, "match")
	if err != nil {
		return nil, err
	}
	return s.pages.MatchDetail(r.Context(), id)
}

func (s *Server) loadStandings(r *http.Request) (interface{}, error) {
	return s.pages.Standings(r.Context())
}

func (s *Server) loadStats(r *http.Request) (interface{}, error) {
	return s.pages.Stats(r.Context(), r.URL.Query().Get("category"))
}

func (s *Server) loadTeams(r *http.Request) (interface{}, error) {
	return s.pages.Teams(r.Context())
}

func (s *Server) loadTeam(r *http.Request) (interface{}, error) {
	id, err := pathID(r, "team")
	if err != nil {
		return nil, err
	}
	return s.pages.TeamDetail(r.Context(), id)
}

func (s *Server) html(view, title string, load loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := load(r)
		if err != nil {
			status, msg := errorStatus(err)
			if status >= http.StatusInternalServerError {
				slog.Error("Error loading page", "page", view, "error", err, "request_id", RequestIDFrom(r.Context()))
			}
			s.renderError(w, view, title, status, msg)
			return
		}
		s.render(w, view, title, http.StatusOK, page)
	}
}

func (s *Server) json(load loader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := load(r)
		if err != nil {
			status, msg := errorStatus(err)
			if status >= http.StatusInternalServerError {
				slog.Error("Error loading page data", "path", r.URL.Path, "error", err, "request_id", RequestIDFrom(r.Context()))
			}
			writeJSON(w, status, models.ErrorResponse{Detail: msg})
			return
		}
		writeJSON(w, http.StatusOK, page)
	}
}

// errorStatus maps a page error onto the status and message shown to the user.
func errorStatus(err error) (int, string) {
	var badReq *badRequestError
	switch {
	case errors.As(err, &badReq):
		return http.StatusBadRequest, badReq.msg
	case league.IsNotFound(err):
		return http.StatusNotFound, league.Message(err)
	default:
		return http.StatusBadGateway, league.Message(err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func pathID(r *http.Request, kind string) (int, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, &badRequestError{msg: fmt.Sprintf("invalid %s id", kind)}
	}
	return id, nil
}

// queryInt parses an optional numeric query value; anything unparseable is unset.
func queryInt(raw string) int {
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return v
}
