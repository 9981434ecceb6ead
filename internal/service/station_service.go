package service

import (
	"strings"

	"campervan/internal/entities"
	"campervan/internal/repository"
)

// MaxStationResults caps the number of stations returned by a search.
const MaxStationResults = 10

type StationService struct {
	Repo *repository.StationRepository
}

func NewStationService(repo *repository.StationRepository) *StationService {
	return &StationService{Repo: repo}
}

func (s *StationService) SearchStations(query string) []entities.Station {
	return s.Repo.Search(strings.TrimSpace(query), MaxStationResults)
}
