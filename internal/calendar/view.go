package calendar

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"campervan/internal/entities"
	"campervan/internal/inflight"
	"campervan/internal/store"
)

// Provider is the booking backend the week view talks to.
type Provider interface {
	FetchBookings(ctx context.Context, stationID, startDate, endDate string) []entities.Booking
	RescheduleBooking(ctx context.Context, id string, event entities.EventType, newDate, previousDate string) (*entities.Booking, error)
}

// View is the calendar week controller. It owns the bookings of the
// visible week, fetched per (station, week), and the drag gesture. Fetch
// results arrive on goroutines; only the latest fetch may apply.
type View struct {
	mu         sync.Mutex
	store      *store.Store
	provider   Provider
	log        logrus.FieldLogger
	now        func() time.Time
	weekStart  time.Time
	stationID  string
	bookings   []entities.Booking
	loading    bool
	generation uint64
	drag       Drag
	work       inflight.Counter
}

// Option configures a View.
type Option func(*View)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(v *View) { v.now = now }
}

func NewView(st *store.Store, provider Provider, log logrus.FieldLogger, opts ...Option) *View {
	v := &View{
		store:    st,
		provider: provider,
		log:      log.WithField("component", "calendar"),
		now:      time.Now,
		bookings: []entities.Booking{},
	}
	for _, opt := range opts {
		opt(v)
	}
	v.weekStart = WeekStart(v.now())
	return v
}

// Open loads the current week.
func (v *View) Open(ctx context.Context) {
	v.fetch(ctx)
}

// Refresh reloads the visible week without changing the filter.
func (v *View) Refresh(ctx context.Context) {
	v.fetch(ctx)
}

// SetStation changes the station filter and reloads when it differs. An
// empty id shows every station.
func (v *View) SetStation(ctx context.Context, stationID string) {
	v.mu.Lock()
	changed := v.stationID != stationID
	v.stationID = stationID
	v.mu.Unlock()

	if changed {
		v.fetch(ctx)
	}
}

// Navigate moves the visible window by weeks (negative goes back).
func (v *View) Navigate(ctx context.Context, weeks int) {
	if weeks == 0 {
		return
	}
	v.mu.Lock()
	v.weekStart = v.weekStart.AddDate(0, 0, 7*weeks)
	week := v.weekStart
	v.mu.Unlock()

	v.store.Dispatch(store.SetCurrentWeek{Week: week})
	v.fetch(ctx)
}

func (v *View) fetch(ctx context.Context) {
	v.mu.Lock()
	v.generation++
	gen := v.generation
	v.loading = true
	station := v.stationID
	start, end := DateKey(v.weekStart), DateKey(WeekEnd(v.weekStart))
	v.mu.Unlock()

	log := v.log.WithFields(logrus.Fields{"station_id": station, "start_date": start, "end_date": end})
	log.Debug("Loading bookings")

	v.work.Add()
	go func() {
		defer v.work.Done()
		bookings := v.provider.FetchBookings(ctx, station, start, end)
		if bookings == nil {
			bookings = []entities.Booking{}
		}

		v.mu.Lock()
		if gen != v.generation {
			v.mu.Unlock()
			log.WithField("generation", gen).Debug("Discarding stale bookings response")
			return
		}
		v.bookings = bookings
		v.loading = false
		mirror := append([]entities.Booking(nil), bookings...)
		v.mu.Unlock()

		log.Debugf("Fetched %d bookings", len(bookings))
		v.store.Dispatch(store.SetBookings{Bookings: mirror})
	}()
}

// Wait blocks until no fetch or background reschedule is in flight,
// including ones started while waiting.
func (v *View) Wait() {
	v.work.Wait()
}

func (v *View) Loading() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.loading
}

func (v *View) WeekStart() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.weekStart
}

func (v *View) Label() string {
	return WeekLabel(v.WeekStart())
}

func (v *View) StationID() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.stationID
}

// Bookings returns a copy of the local bookings of the visible week.
func (v *View) Bookings() []entities.Booking {
	v.mu.Lock()
	defer v.mu.Unlock()
	return append([]entities.Booking{}, v.bookings...)
}

// Grid returns the seven day cells, or nil while a fetch is in flight.
func (v *View) Grid() []Day {
	v.mu.Lock()
	if v.loading {
		v.mu.Unlock()
		return nil
	}
	start, hover := v.weekStart, v.drag.Candidate()
	bookings := append([]entities.Booking(nil), v.bookings...)
	v.mu.Unlock()

	return BuildGrid(start, v.now(), bookings, v.store.Snapshot(), hover)
}

func (v *View) DragPhase() DragPhase {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.drag.Phase()
}

// DragStart picks up the pickup or return badge of a booking shown on
// date. Any other event leaves the gesture Idle.
func (v *View) DragStart(bookingID string, event entities.EventType, date string) {
	if !event.Valid() {
		v.log.WithField("event", event).Warn("Ignoring drag of unknown event")
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.drag.Start(DragPayload{BookingID: bookingID, Event: event, OriginalDate: date})
}

func (v *View) DragEnter(date string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.drag.Enter(date)
}

func (v *View) DragLeave() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.drag.Leave()
}

// DragEnd abandons the gesture without changing anything.
func (v *View) DragEnd() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.drag.Cancel()
}

// Drop places the dragged badge on date. Moving to a different day
// records the change in the store overlay, rewrites the local booking
// and reports the move to the provider in the background; the local
// change is kept whatever the provider answers. A date that is not a
// calendar day cancels the gesture. It returns whether anything moved.
func (v *View) Drop(ctx context.Context, date string) bool {
	v.mu.Lock()
	if _, err := time.Parse(entities.DateLayout, date); err != nil {
		v.drag.Cancel()
		v.mu.Unlock()
		v.log.WithField("date", date).Debug("Drop outside a day cell")
		return false
	}
	p, moved := v.drag.Drop(date)
	if !moved {
		v.mu.Unlock()
		return false
	}

	var action store.RescheduleBooking
	switch p.Event {
	case entities.EventPickup:
		action = store.NewRescheduleBooking(p.BookingID, date, "")
	case entities.EventReturn:
		action = store.NewRescheduleBooking(p.BookingID, "", date)
	default:
		v.mu.Unlock()
		return false
	}
	for i := range v.bookings {
		if v.bookings[i].ID != p.BookingID {
			continue
		}
		switch p.Event {
		case entities.EventPickup:
			v.bookings[i].StartDate = date
		case entities.EventReturn:
			v.bookings[i].EndDate = date
		}
	}
	mirror := append([]entities.Booking(nil), v.bookings...)
	v.mu.Unlock()

	v.store.Dispatch(action)
	v.store.Dispatch(store.SetBookings{Bookings: mirror})

	log := v.log.WithFields(logrus.Fields{"booking_id": p.BookingID, "event": p.Event})
	log.Infof("Rescheduled from %s to %s", p.OriginalDate, date)

	v.work.Add()
	go func() {
		defer v.work.Done()
		if _, err := v.provider.RescheduleBooking(context.WithoutCancel(ctx), p.BookingID, p.Event, date, p.OriginalDate); err != nil {
			log.WithError(err).Warn("Server did not accept reschedule, keeping local change")
			return
		}
		log.Debug("Reschedule confirmed by server")
	}()
	return true
}
