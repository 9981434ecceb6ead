package store

import (
	"time"

	"campervan/internal/entities"
)

type View string

const (
	ViewCalendar      View = "calendar"
	ViewBookingDetail View = "booking-detail"
)

// Station is the selection shape held by the store: an opaque id plus
// the label shown to the user.
type Station struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Value string `json:"value"`
}

// RescheduledDates marks which dates of a booking were moved locally.
// A nil field means that event was never rescheduled.
type RescheduledDates struct {
	PickupDate *string `json:"pickupDate,omitempty"`
	ReturnDate *string `json:"returnDate,omitempty"`
}

type State struct {
	SelectedStation     *Station
	SelectedBooking     *entities.Booking
	CurrentView         View
	CurrentWeek         time.Time
	Bookings            []entities.Booking
	RescheduledBookings map[string]RescheduledDates
	Loading             bool
	Error               *string
}

// InitialState is the state the store starts from when the application
// is mounted.
func InitialState(now time.Time) State {
	return State{
		CurrentView:         ViewCalendar,
		CurrentWeek:         now,
		Bookings:            []entities.Booking{},
		RescheduledBookings: map[string]RescheduledDates{},
	}
}

// Rescheduled returns the locally rescheduled date for the given event,
// or "" when that event has not been moved.
func (s State) Rescheduled(bookingID string, event entities.EventType) string {
	dates, ok := s.RescheduledBookings[bookingID]
	if !ok {
		return ""
	}
	var p *string
	if event == entities.EventPickup {
		p = dates.PickupDate
	} else {
		p = dates.ReturnDate
	}
	if p == nil {
		return ""
	}
	return *p
}

// Clone returns a deep copy so callers can never alias store internals.
func (s State) Clone() State {
	out := s
	if s.SelectedStation != nil {
		st := *s.SelectedStation
		out.SelectedStation = &st
	}
	if s.SelectedBooking != nil {
		b := *s.SelectedBooking
		out.SelectedBooking = &b
	}
	if s.Error != nil {
		e := *s.Error
		out.Error = &e
	}
	if s.Bookings != nil {
		out.Bookings = append(make([]entities.Booking, 0, len(s.Bookings)), s.Bookings...)
	}
	out.RescheduledBookings = make(map[string]RescheduledDates, len(s.RescheduledBookings))
	for id, d := range s.RescheduledBookings {
		out.RescheduledBookings[id] = RescheduledDates{
			PickupDate: copyString(d.PickupDate),
			ReturnDate: copyString(d.ReturnDate),
		}
	}
	return out
}

func copyString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func stringRef(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
