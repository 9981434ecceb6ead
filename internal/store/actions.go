package store

import (
	"time"

	"campervan/internal/entities"
)

// Action is a command the store knows how to apply. The set of actions
// is closed: every variant lives in this file and implements apply.
type Action interface {
	apply(State) State
}

// Reduce is the pure transition function of the store.
func Reduce(s State, a Action) State {
	return a.apply(s)
}

type SetSelectedStation struct{ Station *Station }

func (a SetSelectedStation) apply(s State) State {
	s.SelectedStation = a.Station
	return s
}

type SetSelectedBooking struct{ Booking *entities.Booking }

func (a SetSelectedBooking) apply(s State) State {
	s.SelectedBooking = a.Booking
	return s
}

type SetCurrentView struct{ View View }

func (a SetCurrentView) apply(s State) State {
	s.CurrentView = a.View
	return s
}

type SetCurrentWeek struct{ Week time.Time }

func (a SetCurrentWeek) apply(s State) State {
	s.CurrentWeek = a.Week
	return s
}

type SetBookings struct{ Bookings []entities.Booking }

func (a SetBookings) apply(s State) State {
	s.Bookings = a.Bookings
	return s
}

// RescheduleBooking merge-patches the overlay entry of one booking. A nil
// date leaves the existing value for that event untouched.
type RescheduleBooking struct {
	BookingID  string
	PickupDate *string
	ReturnDate *string
}

// NewRescheduleBooking builds a RescheduleBooking where an empty date
// means "not provided".
func NewRescheduleBooking(bookingID, pickupDate, returnDate string) RescheduleBooking {
	return RescheduleBooking{
		BookingID:  bookingID,
		PickupDate: stringRef(pickupDate),
		ReturnDate: stringRef(returnDate),
	}
}

func (a RescheduleBooking) apply(s State) State {
	overlay := make(map[string]RescheduledDates, len(s.RescheduledBookings)+1)
	for id, d := range s.RescheduledBookings {
		overlay[id] = d
	}
	entry := overlay[a.BookingID]
	if a.PickupDate != nil {
		entry.PickupDate = copyString(a.PickupDate)
	}
	if a.ReturnDate != nil {
		entry.ReturnDate = copyString(a.ReturnDate)
	}
	overlay[a.BookingID] = entry
	s.RescheduledBookings = overlay
	return s
}

type SetLoading struct{ Loading bool }

func (a SetLoading) apply(s State) State {
	s.Loading = a.Loading
	return s
}

type SetError struct{ Error *string }

func (a SetError) apply(s State) State {
	s.Error = a.Error
	return s
}

type ResetError struct{}

func (ResetError) apply(s State) State {
	s.Error = nil
	return s
}
