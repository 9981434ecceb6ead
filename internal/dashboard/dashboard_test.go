package dashboard

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campervan/internal/api"
	"campervan/internal/autocomplete"
	"campervan/internal/client"
	"campervan/internal/config"
	"campervan/internal/entities"
	"campervan/internal/logging"
	"campervan/internal/repository"
	"campervan/internal/service"
	"campervan/internal/store"
)

var wednesday = time.Date(2025, 8, 20, 9, 0, 0, 0, time.UTC)

type pendingCall struct {
	fn      func()
	stopped bool
}

func (p *pendingCall) Stop() bool {
	was := !p.stopped
	p.stopped = true
	return was
}

// manualTimers lets the test decide when the search debounce elapses.
type manualTimers struct {
	calls []*pendingCall
}

func (m *manualTimers) AfterFunc(_ time.Duration, f func()) autocomplete.Timer {
	c := &pendingCall{fn: f}
	m.calls = append(m.calls, c)
	return c
}

func (m *manualTimers) Elapse() {
	for _, c := range m.calls {
		if !c.stopped {
			c.stopped = true
			c.fn()
		}
	}
}

func newAPIClient(t *testing.T) *client.Client {
	t.Helper()
	log := logging.Discard()
	stationRepo := repository.NewStationRepository(repository.DefaultStations())
	bookingRepo := repository.NewBookingRepository(repository.DefaultBookings())
	router := api.NewRouter(
		&config.Config{CORSOrigins: []string{"*"}},
		api.NewStationHandler(service.NewStationService(stationRepo)),
		api.NewBookingHandler(service.NewBookingService(bookingRepo, stationRepo, nil, log)),
		log,
		io.Discard,
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return client.New(srv.URL, nil, time.Second, log)
}

func newDashboard(t *testing.T, timers *manualTimers, refresh string) (*Dashboard, *store.Store) {
	t.Helper()
	st := store.New(wednesday, logging.Discard())
	d, err := New(context.Background(), st, newAPIClient(t), logging.Discard(), Config{
		AfterFunc:   timers.AfterFunc,
		Now:         func() time.Time { return wednesday },
		RefreshCron: refresh,
	})
	require.NoError(t, err)
	t.Cleanup(d.Stop)
	return d, st
}

func bookingIDs(bookings []entities.Booking) []string {
	ids := []string{}
	for _, b := range bookings {
		ids = append(ids, b.ID)
	}
	return ids
}

func TestDashboard_StationSelectionFiltersCalendar(t *testing.T) {
	timers := &manualTimers{}
	d, st := newDashboard(t, timers, "")

	d.Start()
	d.Wait()
	assert.Equal(t, []string{"BK001", "BK002", "BK003", "BK004", "BK005"}, bookingIDs(d.Calendar.Bookings()))
	assert.Equal(t, "Aug 18-24, 2025", d.Calendar.Label())

	d.Stations.Type("munich")
	timers.Elapse()
	require.Equal(t, []autocomplete.Option{{ID: "2", Label: "Munich Airport Hub", Value: "Munich Airport Hub"}}, d.Stations.Options())

	d.Stations.Key(autocomplete.KeyArrowDown)
	d.Stations.Key(autocomplete.KeyEnter)
	d.Wait()

	require.NotNil(t, st.Snapshot().SelectedStation)
	assert.Equal(t, "2", st.Snapshot().SelectedStation.ID)
	assert.Equal(t, "2", d.Calendar.StationID())
	assert.Equal(t, "Munich Airport Hub", d.Stations.Text())
	assert.Equal(t, []string{"BK002", "BK004"}, bookingIDs(d.Calendar.Bookings()))
	assert.Equal(t, Stats{ThisWeek: 2, Pickups: 1, Returns: 2}, d.QuickStats())

	d.Stations.Clear()
	d.Wait()
	assert.Nil(t, st.Snapshot().SelectedStation)
	assert.Equal(t, "", d.Calendar.StationID())
	assert.Len(t, d.Calendar.Bookings(), 5)
}

func TestDashboard_ExternalSelectionSyncsSearchBox(t *testing.T) {
	d, st := newDashboard(t, &manualTimers{}, "")
	d.Start()

	st.Dispatch(store.SetSelectedStation{Station: &store.Station{ID: "3", Label: "Hamburg Port Terminal", Value: "Hamburg Port Terminal"}})
	d.Wait()

	assert.Equal(t, "Hamburg Port Terminal", d.Stations.Text())
	assert.Equal(t, []string{"BK005"}, bookingIDs(d.Calendar.Bookings()))
}

func TestDashboard_OpenBookingAndBack(t *testing.T) {
	d, st := newDashboard(t, &manualTimers{}, "")
	d.Start()
	d.Wait()

	view := d.OpenBooking(d.Calendar.Bookings()[0])
	d.Wait()

	snap := st.Snapshot()
	assert.Equal(t, store.ViewBookingDetail, snap.CurrentView)
	require.NotNil(t, snap.SelectedBooking)
	assert.Equal(t, "BK001", snap.SelectedBooking.ID)

	assert.Same(t, view, d.Detail())
	require.NotNil(t, view.Booking())
	require.NotNil(t, view.Booking().PickupStation)
	assert.Equal(t, "Berlin Central Station", view.Booking().PickupStation.Name)

	d.BackToCalendar()
	snap = st.Snapshot()
	assert.Equal(t, store.ViewCalendar, snap.CurrentView)
	assert.Nil(t, snap.SelectedBooking)
	assert.Nil(t, d.Detail())
}

func TestDashboard_DropIsSentToServer(t *testing.T) {
	d, st := newDashboard(t, &manualTimers{}, "")
	d.Start()
	d.Wait()

	d.Calendar.DragStart("BK004", entities.EventReturn, "2025-08-21")
	require.True(t, d.Calendar.Drop(context.Background(), "2025-08-23"))
	d.Wait()
	assert.Equal(t, "2025-08-23", st.Snapshot().Rescheduled("BK004", entities.EventReturn))

	d.Calendar.Refresh(context.Background())
	d.Wait()
	for _, b := range d.Calendar.Bookings() {
		if b.ID == "BK004" {
			assert.Equal(t, "2025-08-23", b.EndDate, "server kept the new return date")
		}
	}
}

func TestDashboard_RefreshSchedule(t *testing.T) {
	st := store.New(wednesday, logging.Discard())
	_, err := New(context.Background(), st, newAPIClient(t), logging.Discard(), Config{RefreshCron: "every now and then"})
	assert.Error(t, err)

	d, _ := newDashboard(t, &manualTimers{}, "@every 1m")
	assert.Len(t, d.cron.Entries(), 1)

	d.refresh()
	d.Wait()
	assert.Len(t, d.Calendar.Bookings(), 5)
}

func TestComputeStats(t *testing.T) {
	week := time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
	bookings := []entities.Booking{
		{ID: "a", StartDate: "2025-08-18", EndDate: "2025-08-21", Status: entities.StatusConfirmed},
		{ID: "b", StartDate: "2025-08-17", EndDate: "2025-08-24", Status: entities.StatusPending},
		{ID: "c", StartDate: "2025-08-10", EndDate: "2025-08-30", Status: entities.StatusPending},
		{ID: "d", StartDate: "2025-08-25", EndDate: "2025-08-30", Status: entities.StatusConfirmed},
	}

	assert.Equal(t, Stats{ThisWeek: 3, Pickups: 1, Returns: 2, Pending: 2}, ComputeStats(week, bookings))
	assert.Equal(t, Stats{}, ComputeStats(week, nil))
}
