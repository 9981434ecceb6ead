package repository

import (
	"errors"
	"fmt"
	"sync"

	"campervan/internal/entities"
)

var ErrBookingNotFound = errors.New("booking not found")

// BookingFilter narrows a booking listing. Zero values disable a filter;
// the date range applies only when both ends are set.
type BookingFilter struct {
	StationID int
	StartDate string
	EndDate   string
}

type BookingRepository struct {
	mu       sync.RWMutex
	bookings []entities.BookingDetails
}

func NewBookingRepository(bookings []entities.BookingDetails) *BookingRepository {
	return &BookingRepository{bookings: append([]entities.BookingDetails(nil), bookings...)}
}

// Find returns the bookings matching f. Dates are ISO calendar days, so
// the overlap check compares them as strings.
func (r *BookingRepository) Find(f BookingFilter) []entities.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []entities.Booking{}
	for _, b := range r.bookings {
		if f.StationID != 0 && b.PickupStationID != f.StationID && b.ReturnStationID != f.StationID {
			continue
		}
		if f.StartDate != "" && f.EndDate != "" {
			if !(b.StartDate <= f.EndDate && b.EndDate >= f.StartDate) {
				continue
			}
		}
		result = append(result, b.Booking)
	}
	return result
}

func (r *BookingRepository) GetByID(id string) (*entities.BookingDetails, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.ID == id {
			details := b
			return &details, nil
		}
	}
	return nil, fmt.Errorf("booking %q: %w", id, ErrBookingNotFound)
}

// UpdateDate moves the pickup or return date of one booking and returns
// the updated record.
func (r *BookingRepository) UpdateDate(id string, event entities.EventType, date string) (*entities.BookingDetails, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.bookings {
		if r.bookings[i].ID != id {
			continue
		}
		switch event {
		case entities.EventPickup:
			r.bookings[i].StartDate = date
		case entities.EventReturn:
			r.bookings[i].EndDate = date
		default:
			return nil, fmt.Errorf("unknown event type %q", event)
		}
		details := r.bookings[i]
		return &details, nil
	}
	return nil, fmt.Errorf("booking %q: %w", id, ErrBookingNotFound)
}

// GetIDsEndedBefore returns the ids of bookings that are not completed
// and whose end date is strictly before date.
func (r *BookingRepository) GetIDsEndedBefore(date string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []string
	for _, b := range r.bookings {
		if b.Status != entities.StatusCompleted && b.EndDate < date {
			ids = append(ids, b.ID)
		}
	}
	return ids
}

// UpdateStatuses sets status on every listed booking and reports how many
// records changed.
func (r *BookingRepository) UpdateStatuses(ids []string, status entities.BookingStatus) int {
	if len(ids) == 0 {
		return 0
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	updated := 0
	for i := range r.bookings {
		if _, ok := wanted[r.bookings[i].ID]; ok && r.bookings[i].Status != status {
			r.bookings[i].Status = status
			updated++
		}
	}
	return updated
}
