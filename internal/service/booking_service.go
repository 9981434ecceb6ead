package service

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"campervan/internal/entities"
	apperrors "campervan/internal/errors"
	"campervan/internal/repository"
)

// Notifier is told about every accepted reschedule.
type Notifier interface {
	NotifyReschedule(b entities.BookingDetails, event entities.EventType, previousDate, newDate string)
}

type BookingService struct {
	Repo     *repository.BookingRepository
	Stations *repository.StationRepository
	notifier Notifier
	validate *validator.Validate
	log      logrus.FieldLogger
}

func NewBookingService(repo *repository.BookingRepository, stations *repository.StationRepository, notifier Notifier, log logrus.FieldLogger) *BookingService {
	return &BookingService{
		Repo:     repo,
		Stations: stations,
		notifier: notifier,
		validate: validator.New(),
		log:      log.WithField("component", "booking"),
	}
}

func (s *BookingService) ListBookings(q entities.BookingsQuery) ([]entities.Booking, error) {
	if err := s.validate.Struct(q); err != nil {
		return nil, apperrors.Wrap(http.StatusBadRequest, "Invalid booking query", err)
	}
	return s.Repo.Find(repository.BookingFilter{
		StationID: q.StationID,
		StartDate: q.StartDate,
		EndDate:   q.EndDate,
	}), nil
}

// GetBookingDetails returns the full record with its pickup and return
// stations resolved.
func (s *BookingService) GetBookingDetails(id string) (*entities.BookingDetails, error) {
	details, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if st, ok := s.Stations.GetByID(details.PickupStationID); ok {
		details.PickupStation = st
	}
	if st, ok := s.Stations.GetByID(details.ReturnStationID); ok {
		details.ReturnStation = st
	}
	return details, nil
}

// RescheduleBooking moves the pickup or return date of a booking and
// notifies the customer.
func (s *BookingService) RescheduleBooking(id string, req entities.RescheduleRequest) (*entities.Booking, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, apperrors.Wrap(http.StatusBadRequest, "Invalid reschedule request", err)
	}

	current, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	previous := current.StartDate
	if req.RescheduleType == entities.EventReturn {
		previous = current.EndDate
	}
	log := s.log.WithFields(logrus.Fields{"booking_id": id, "event": req.RescheduleType})
	if req.PreviousDate != "" && req.PreviousDate != previous {
		log.Warnf("Client reported previous date %s but stored date is %s", req.PreviousDate, previous)
	}

	updated, err := s.Repo.UpdateDate(id, req.RescheduleType, req.NewDate)
	if err != nil {
		return nil, notFoundOr(err)
	}
	log.Infof("Booking rescheduled from %s to %s", previous, req.NewDate)

	if s.notifier != nil && previous != req.NewDate {
		s.notifier.NotifyReschedule(*updated, req.RescheduleType, previous, req.NewDate)
	}
	return &updated.Booking, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, repository.ErrBookingNotFound) {
		return apperrors.Wrap(http.StatusNotFound, "Booking not found", err)
	}
	return fmt.Errorf("booking repository: %w", err)
}
