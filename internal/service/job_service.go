package service

import (
	"time"

	"github.com/sirupsen/logrus"

	"campervan/internal/entities"
	"campervan/internal/repository"
)

type JobService struct {
	Repo *repository.BookingRepository
	log  logrus.FieldLogger
}

func NewJobService(repo *repository.BookingRepository, log logrus.FieldLogger) *JobService {
	return &JobService{Repo: repo, log: log.WithField("component", "job")}
}

// CompleteFinishedBookings marks bookings whose return day is before
// today as completed and reports how many were updated.
func (s *JobService) CompleteFinishedBookings(now time.Time) int {
	today := now.Format(entities.DateLayout)
	s.log.Debugf("Checking for bookings that ended before %s", today)

	ids := s.Repo.GetIDsEndedBefore(today)
	if len(ids) == 0 {
		s.log.Debug("No finished bookings found")
		return 0
	}

	updated := s.Repo.UpdateStatuses(ids, entities.StatusCompleted)
	s.log.WithField("ids", ids).Infof("Marked %d bookings as completed", updated)
	return updated
}
