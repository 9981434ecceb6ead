package calendar

import (
	"time"

	"campervan/internal/entities"
	"campervan/internal/store"
)

type Badge struct {
	Event       entities.EventType
	Rescheduled bool
}

// Entry is one booking inside a day cell. A booking that starts and ends
// on the same day has a single entry carrying both badges.
type Entry struct {
	Booking entities.Booking
	Badges  []Badge
}

func (e Entry) Has(event entities.EventType) bool {
	for _, b := range e.Badges {
		if b.Event == event {
			return true
		}
	}
	return false
}

type Day struct {
	Date     time.Time
	Key      string
	Today    bool
	DragOver bool
	Entries  []Entry
}

// BookingsForDay returns the bookings with a pickup or return on day, in
// list order.
func BookingsForDay(bookings []entities.Booking, day string) []entities.Booking {
	var out []entities.Booking
	for _, b := range bookings {
		if b.StartDate == day || b.EndDate == day {
			out = append(out, b)
		}
	}
	return out
}

// BuildGrid buckets bookings into the seven days of the week starting at
// start. Rescheduled flags come from the overlay in st; hover marks the
// current drop candidate.
func BuildGrid(start, now time.Time, bookings []entities.Booking, st store.State, hover string) []Day {
	days := WeekDays(start)
	grid := make([]Day, len(days))
	for i, d := range days {
		key := DateKey(d)
		day := Day{
			Date:     d,
			Key:      key,
			Today:    IsToday(d, now),
			DragOver: hover != "" && hover == key,
		}
		for _, b := range BookingsForDay(bookings, key) {
			entry := Entry{Booking: b}
			if b.StartDate == key {
				entry.Badges = append(entry.Badges, Badge{
					Event:       entities.EventPickup,
					Rescheduled: st.Rescheduled(b.ID, entities.EventPickup) != "",
				})
			}
			if b.EndDate == key {
				entry.Badges = append(entry.Badges, Badge{
					Event:       entities.EventReturn,
					Rescheduled: st.Rescheduled(b.ID, entities.EventReturn) != "",
				})
			}
			day.Entries = append(day.Entries, entry)
		}
		grid[i] = day
	}
	return grid
}
