package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/omarshaarawi/leaguehub/internal/models"
	"github.com/omarshaarawi/leaguehub/internal/service"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{"home", "matches", "match", "standings", "stats", "teams", "team", "error"}

type navItem struct {
	Href   string
	Label  string
	Active bool
}

var viewSection = map[string]string{
	"home":      "/",
	"matches":   "/matches",
	"match":     "/matches",
	"standings": "/standings",
	"stats":     "/stats",
	"teams":     "/teams",
	"team":      "/teams",
}

var navItems = []navItem{
	{Href: "/", Label: "Home"},
	{Href: "/matches", Label: "Fixtures"},
	{Href: "/standings", Label: "Table"},
	{Href: "/stats", Label: "Stats"},
	{Href: "/teams", Label: "Clubs"},
}

type viewData struct {
	Title string
	Nav   []navItem
	Page  interface{}
	Error string
}

type views struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"num": service.IntOrPlaceholder,
	"str": service.StringOrPlaceholder,
	"rounds": func() []int {
		out := make([]int, service.MaxRound)
		for i := range out {
			out[i] = i + 1
		}
		return out
	},
	"months": func() []int {
		return []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	},
	"monthName": func(m int) string {
		return time.Month(m).String()
	},
	"moreURL": moreURL,
}

func loadViews() (*views, error) {
	v := &views{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("error parsing %s template: %w", name, err)
		}
		v.pages[name] = t
	}
	return v, nil
}

// moreURL rebuilds the match list URL with the current filter and a larger page.
func moreURL(f models.MatchFilter, show int) string {
	q := url.Values{}
	if f.Round > 0 {
		q.Set("round", strconv.Itoa(f.Round))
	}
	if f.Month > 0 {
		q.Set("month", strconv.Itoa(f.Month))
	}
	if f.TeamID > 0 {
		q.Set("team_id", strconv.Itoa(f.TeamID))
	}
	q.Set("show", strconv.Itoa(show))
	return "/matches?" + q.Encode()
}

func nav(view string) []navItem {
	items := make([]navItem, len(navItems))
	copy(items, navItems)
	for i := range items {
		items[i].Active = items[i].Href == viewSection[view]
	}
	return items
}

func (s *Server) render(w http.ResponseWriter, view, title string, status int, page interface{}) {
	s.write(w, view, status, viewData{Title: title, Nav: nav(view), Page: page})
}

func (s *Server) renderError(w http.ResponseWriter, view, title string, status int, msg string) {
	s.write(w, "error", status, viewData{Title: title, Nav: nav(view), Error: msg})
}

func (s *Server) write(w http.ResponseWriter, view string, status int, data viewData) {
	var buf bytes.Buffer
	if err := s.views.pages[view].ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("Error rendering template", "view", view, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
