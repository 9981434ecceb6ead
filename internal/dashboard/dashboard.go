// Package dashboard wires the booking store to the station search box,
// the calendar week view and the booking detail view.
package dashboard

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"campervan/internal/autocomplete"
	"campervan/internal/calendar"
	"campervan/internal/detail"
	"campervan/internal/entities"
	"campervan/internal/inflight"
	"campervan/internal/store"
)

// API is everything the dashboard needs from the booking backend.
type API interface {
	FetchStations(ctx context.Context, query string) []entities.Station
	calendar.Provider
	detail.Provider
}

// Config tunes a Dashboard. RefreshCron reloads the visible week on a
// cron schedule; empty disables it.
type Config struct {
	DebounceDelay time.Duration
	AfterFunc     autocomplete.AfterFunc
	Now           func() time.Time
	RefreshCron   string
}

type Dashboard struct {
	Stations *autocomplete.Widget
	Calendar *calendar.View

	ctx         context.Context
	store       *store.Store
	api         API
	log         logrus.FieldLogger
	cron        *cron.Cron
	unsubscribe func()

	mu      sync.Mutex
	station string
	detail  *detail.View
	loads   inflight.Counter
}

// StationOptions adapts station search results to autocomplete options.
func StationOptions(api API) autocomplete.FetchFunc {
	return func(ctx context.Context, query string) ([]autocomplete.Option, error) {
		stations := api.FetchStations(ctx, query)
		options := make([]autocomplete.Option, 0, len(stations))
		for _, s := range stations {
			options = append(options, autocomplete.Option{
				ID:    strconv.Itoa(s.ID),
				Label: s.Name,
				Value: s.Name,
			})
		}
		return options, nil
	}
}

func New(ctx context.Context, st *store.Store, api API, log logrus.FieldLogger, cfg Config) (*Dashboard, error) {
	d := &Dashboard{
		ctx:   ctx,
		store: st,
		api:   api,
		log:   log.WithField("component", "dashboard"),
	}

	var calOpts []calendar.Option
	if cfg.Now != nil {
		calOpts = append(calOpts, calendar.WithClock(cfg.Now))
	}
	d.Calendar = calendar.NewView(st, api, log, calOpts...)
	d.Stations = autocomplete.New(autocomplete.Config{
		Fetch:     StationOptions(api),
		OnSelect:  d.SelectStation,
		Delay:     cfg.DebounceDelay,
		AfterFunc: cfg.AfterFunc,
		Log:       log,
	})

	if cfg.RefreshCron != "" {
		d.cron = cron.New()
		if _, err := d.cron.AddFunc(cfg.RefreshCron, d.refresh); err != nil {
			return nil, fmt.Errorf("invalid refresh schedule %q: %w", cfg.RefreshCron, err)
		}
	}

	d.unsubscribe = st.Subscribe(d.onState)
	return d, nil
}

// Start loads the first week and starts the refresh schedule.
func (d *Dashboard) Start() {
	d.Calendar.Open(d.ctx)
	if d.cron != nil {
		d.cron.Start()
	}
}

// Stop ends the refresh schedule and waits for pending work.
func (d *Dashboard) Stop() {
	if d.cron != nil {
		<-d.cron.Stop().Done()
	}
	d.unsubscribe()
	d.Wait()
}

// Wait blocks until in-flight fetches have completed.
func (d *Dashboard) Wait() {
	d.Calendar.Wait()
	d.loads.Wait()
}

func (d *Dashboard) refresh() {
	d.log.Debug("Refreshing visible week")
	d.Calendar.Refresh(d.ctx)
}

// onState keeps the calendar filter and the search box text in line with
// the selected station.
func (d *Dashboard) onState(s store.State) {
	id := ""
	var opt *autocomplete.Option
	if s.SelectedStation != nil {
		id = s.SelectedStation.ID
		opt = &autocomplete.Option{ID: s.SelectedStation.ID, Label: s.SelectedStation.Label, Value: s.SelectedStation.Value}
	}

	d.mu.Lock()
	changed := id != d.station
	d.station = id
	d.mu.Unlock()
	if !changed {
		return
	}

	d.Stations.SyncSelected(opt)
	d.Calendar.SetStation(d.ctx, id)
}

// SelectStation records the chosen station, or clears it for nil.
func (d *Dashboard) SelectStation(opt *autocomplete.Option) {
	if opt == nil {
		d.store.Dispatch(store.SetSelectedStation{})
		return
	}
	d.store.Dispatch(store.SetSelectedStation{Station: &store.Station{ID: opt.ID, Label: opt.Label, Value: opt.Value}})
}

// OpenBooking switches to the detail view of b and loads its details in
// the background.
func (d *Dashboard) OpenBooking(b entities.Booking) *detail.View {
	d.store.Dispatch(store.SetSelectedBooking{Booking: &b})
	d.store.Dispatch(store.SetCurrentView{View: store.ViewBookingDetail})

	view := detail.NewView(b.ID, d.api, d.log)
	d.mu.Lock()
	d.detail = view
	d.mu.Unlock()

	d.loads.Add()
	go func() {
		defer d.loads.Done()
		view.Load(d.ctx)
	}()
	return view
}

func (d *Dashboard) BackToCalendar() {
	d.store.Dispatch(store.SetCurrentView{View: store.ViewCalendar})
	d.store.Dispatch(store.SetSelectedBooking{})

	d.mu.Lock()
	d.detail = nil
	d.mu.Unlock()
}

// Detail returns the open detail view, or nil on the calendar.
func (d *Dashboard) Detail() *detail.View {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detail
}

func (d *Dashboard) State() store.State {
	return d.store.Snapshot()
}

type Stats struct {
	ThisWeek int
	Pickups  int
	Returns  int
	Pending  int
}

// QuickStats summarises the bookings of the visible week.
func (d *Dashboard) QuickStats() Stats {
	return ComputeStats(d.Calendar.WeekStart(), d.Calendar.Bookings())
}

// ComputeStats counts the bookings, pickups, returns and pending bookings
// of the week starting at weekStart.
func ComputeStats(weekStart time.Time, bookings []entities.Booking) Stats {
	first, last := calendar.DateKey(weekStart), calendar.DateKey(calendar.WeekEnd(weekStart))
	inWeek := func(day string) bool { return day >= first && day <= last }

	var s Stats
	for _, b := range bookings {
		pickup, ret := inWeek(b.StartDate), inWeek(b.EndDate)
		if !pickup && !ret && !(b.StartDate < first && b.EndDate > last) {
			continue
		}
		s.ThisWeek++
		if pickup {
			s.Pickups++
		}
		if ret {
			s.Returns++
		}
		if b.Status == entities.StatusPending {
			s.Pending++
		}
	}
	return s
}
