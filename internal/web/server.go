package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/omarshaarawi/leaguehub/internal/config"
	"github.com/omarshaarawi/leaguehub/internal/metrics"
	"github.com/omarshaarawi/leaguehub/internal/models"
	"github.com/rs/cors"
)

// Pages is the page assembly the web front end renders.
type Pages interface {
	Home(ctx context.Context) (*models.HomePage, error)
	Matches(ctx context.Context, filter models.MatchFilter, show int) (*models.MatchesPage, error)
	MatchDetail(ctx context.Context, matchID int) (*models.MatchPage, error)
	Standings(ctx context.Context) (*models.StandingsPage, error)
	Stats(ctx context.Context, category string) (*models.StatsPage, error)
	Teams(ctx context.Context) (*models.TeamsPage, error)
	TeamDetail(ctx context.Context, teamID int) (*models.TeamPage, error)
}

type Server struct {
	cfg        config.Web
	pages      Pages
	views      *views
	httpServer *http.Server
}

func NewServer(cfg config.Web, pages Pages) (*Server, error) {
	v, err := loadViews()
	if err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, pages: pages, views: v}
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(requestID, accessLog)

	router.HandleFunc("/", s.html("home", "Home", s.loadHome)).Methods(http.MethodGet)
	router.HandleFunc("/matches", s.html("matches", "Fixtures & Results", s.loadMatches)).Methods(http.MethodGet)
	router.HandleFunc("/matches/{id}", s.html("match", "Match Detail", s.loadMatch)).Methods(http.MethodGet)
	router.HandleFunc("/standings", s.html("standings", "Standings", s.loadStandings)).Methods(http.MethodGet)
	router.HandleFunc("/stats", s.html("stats", "Stats", s.loadStats)).Methods(http.MethodGet)
	router.HandleFunc("/teams", s.html("teams", "Clubs", s.loadTeams)).Methods(http.MethodGet)
	router.HandleFunc("/teams/{id}", s.html("team", "Club", s.loadTeam)).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	api := router.PathPrefix("/api").Subrouter()
	api.Use(c.Handler)
	api.HandleFunc("/home", s.json(s.loadHome)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/matches", s.json(s.loadMatches)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/matches/{id}", s.json(s.loadMatch)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/standings", s.json(s.loadStandings)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/stats", s.json(s.loadStats)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/teams", s.json(s.loadTeams)).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/teams/{id}", s.json(s.loadTeam)).Methods(http.MethodGet, http.MethodOptions)

	router.HandleFunc("/healthz", healthCheckHandler).Methods(http.MethodGet)
	router.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.renderError(w, "", "Page", http.StatusNotFound, "page not found")
	})

	return router
}

func (s *Server) Start() error {
	slog.Info("Starting HTTP server", "addr", s.cfg.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
