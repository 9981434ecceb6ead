package repository

import (
	"strings"
	"sync"

	"campervan/internal/entities"
)

type StationRepository struct {
	mu       sync.RWMutex
	stations []entities.Station
}

func NewStationRepository(stations []entities.Station) *StationRepository {
	return &StationRepository{stations: append([]entities.Station(nil), stations...)}
}

// Search returns stations whose name or city contains query,
// case-insensitively, in fixture order. An empty query matches all.
func (r *StationRepository) Search(query string, limit int) []entities.Station {
	r.mu.RLock()
	defer r.mu.RUnlock()

	q := strings.ToLower(query)
	result := []entities.Station{}
	for _, s := range r.stations {
		if strings.Contains(strings.ToLower(s.Name), q) || strings.Contains(strings.ToLower(s.City), q) {
			result = append(result, s)
			if limit > 0 && len(result) == limit {
				break
			}
		}
	}
	return result
}

func (r *StationRepository) GetByID(id int) (*entities.Station, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.stations {
		if s.ID == id {
			st := s
			return &st, true
		}
	}
	return nil, false
}
