package application

import (
	"github.com/adflow-io/adflow-go/internal/domain/stats"
	"github.com/adflow-io/adflow-go/internal/repository"
)

type StatsService struct {
	Repos *repository.Repos
}

func NewStatsService(repos *repository.Repos) *StatsService {
	return &StatsService{Repos: repos}
}

// Overview delegates to the store's grouped queries; nothing is
// aggregated in process.
func (s *StatsService) Overview() (stats.Overview, error) {
	return s.Repos.Stats.Overview()
}
