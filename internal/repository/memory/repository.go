package memory

import (
	"sync"
	"time"

	"github.com/omarshaarawi/leaguehub/internal/models"
)

// Repository caches the team directory the bot uses to resolve team names.
type Repository struct {
	teams       []models.Team
	lastUpdated time.Time
	mu          sync.RWMutex
}

func NewRepository() *Repository {
	return &Repository{}
}

func (r *Repository) SaveTeams(teams []models.Team, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams = append([]models.Team(nil), teams...)
	r.lastUpdated = at
}

// GetTeams returns a copy of the cached teams and when they were stored.
// A zero time means nothing has been cached yet.
func (r *Repository) GetTeams() ([]models.Team, time.Time) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Team(nil), r.teams...), r.lastUpdated
}
