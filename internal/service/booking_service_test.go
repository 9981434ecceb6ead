package service

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campervan/internal/entities"
	apperrors "campervan/internal/errors"
	"campervan/internal/logging"
	"campervan/internal/repository"
)

type notification struct {
	bookingID string
	event     entities.EventType
	previous  string
	next      string
}

type mockNotifier struct {
	mu   sync.Mutex
	sent []notification
}

func (m *mockNotifier) NotifyReschedule(b entities.BookingDetails, event entities.EventType, previousDate, newDate string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, notification{bookingID: b.ID, event: event, previous: previousDate, next: newDate})
}

func newBookingService(n Notifier) *BookingService {
	return NewBookingService(
		repository.NewBookingRepository(repository.DefaultBookings()),
		repository.NewStationRepository(repository.DefaultStations()),
		n,
		logging.Discard(),
	)
}

func TestBookingService_ListBookings(t *testing.T) {
	svc := newBookingService(nil)

	got, err := svc.ListBookings(entities.BookingsQuery{StationID: 1, StartDate: "2025-08-17", EndDate: "2025-08-23"})
	require.NoError(t, err)
	assert.Len(t, got, 5)

	_, err = svc.ListBookings(entities.BookingsQuery{StartDate: "18/08/2025"})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))

	_, err = svc.ListBookings(entities.BookingsQuery{StationID: -1})
	assert.Equal(t, http.StatusBadRequest, apperrors.StatusCode(err))
}

func TestBookingService_GetBookingDetails(t *testing.T) {
	svc := newBookingService(nil)

	details, err := svc.GetBookingDetails("BK002")
	require.NoError(t, err)
	require.NotNil(t, details.PickupStation)
	require.NotNil(t, details.ReturnStation)
	assert.Equal(t, "Berlin Central Station", details.PickupStation.Name)
	assert.Equal(t, "Munich Airport Hub", details.ReturnStation.Name)

	_, err = svc.GetBookingDetails("BK999")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.StatusCode(err))
	assert.Equal(t, "Booking not found", apperrors.PublicMessage(err))
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}

func TestBookingService_RescheduleBooking(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		req        entities.RescheduleRequest
		wantStatus int
		wantStart  string
		wantEnd    string
		wantNotify []notification
	}{
		{
			name:       "move pickup",
			id:         "BK001",
			req:        entities.RescheduleRequest{RescheduleType: entities.EventPickup, NewDate: "2025-08-14"},
			wantStart:  "2025-08-14",
			wantEnd:    "2025-08-22",
			wantNotify: []notification{{"BK001", entities.EventPickup, "2025-08-15", "2025-08-14"}},
		},
		{
			name:       "move return",
			id:         "BK004",
			req:        entities.RescheduleRequest{RescheduleType: entities.EventReturn, NewDate: "2025-08-23", PreviousDate: "2025-08-21"},
			wantStart:  "2025-08-18",
			wantEnd:    "2025-08-23",
			wantNotify: []notification{{"BK004", entities.EventReturn, "2025-08-21", "2025-08-23"}},
		},
		{
			name:      "same date is accepted without notification",
			id:        "BK004",
			req:       entities.RescheduleRequest{RescheduleType: entities.EventReturn, NewDate: "2025-08-21"},
			wantStart: "2025-08-18",
			wantEnd:   "2025-08-21",
		},
		{
			name:       "unknown event type",
			id:         "BK001",
			req:        entities.RescheduleRequest{RescheduleType: "transfer", NewDate: "2025-08-14"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed date",
			id:         "BK001",
			req:        entities.RescheduleRequest{RescheduleType: entities.EventPickup, NewDate: "Aug 14"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown booking",
			id:         "BK999",
			req:        entities.RescheduleRequest{RescheduleType: entities.EventPickup, NewDate: "2025-08-14"},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			notifier := &mockNotifier{}
			svc := newBookingService(notifier)

			got, err := svc.RescheduleBooking(tt.id, tt.req)
			if tt.wantStatus != 0 {
				require.Error(t, err)
				assert.Equal(t, tt.wantStatus, apperrors.StatusCode(err))
				assert.Empty(t, notifier.sent)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, got.StartDate)
			assert.Equal(t, tt.wantEnd, got.EndDate)
			assert.Equal(t, tt.wantNotify, notifier.sent)
		})
	}
}

func TestStationService_SearchStations(t *testing.T) {
	svc := NewStationService(repository.NewStationRepository(repository.DefaultStations()))

	assert.Len(t, svc.SearchStations(""), MaxStationResults)
	got := svc.SearchStations("  hamburg ")
	require.Len(t, got, 1)
	assert.Equal(t, "Hamburg Port Terminal", got[0].Name)
}
