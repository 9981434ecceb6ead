package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campervan/internal/config"
	"campervan/internal/entities"
	"campervan/internal/logging"
	"campervan/internal/repository"
	"campervan/internal/service"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := logging.Discard()
	cfg := &config.Config{LatencyScale: 0, CORSOrigins: []string{"*"}}

	stationRepo := repository.NewStationRepository(repository.DefaultStations())
	bookingRepo := repository.NewBookingRepository(repository.DefaultBookings())

	stations := NewStationHandler(service.NewStationService(stationRepo))
	bookings := NewBookingHandler(service.NewBookingService(bookingRepo, stationRepo, nil, log))
	return NewRouter(cfg, stations, bookings, log, io.Discard)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSearchStations(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"empty query is capped", "/api/stations", 10},
		{"case insensitive", "/api/stations?q=BERLIN", 1},
		{"city match", "/api/stations?q=dresden", 1},
		{"no match", "/api/stations?q=paris", 0},
		{"surrounding spaces are trimmed", "/api/stations?q=%20berlin%20", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodGet, tt.target, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var got []entities.Station
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Len(t, got, tt.want)
		})
	}
}

func TestListBookings(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/bookings?stationId=2&startDate=2025-08-25&endDate=2025-08-31", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got []entities.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "BK006", got[0].ID)

	rec = do(t, router, http.MethodGet, "/api/bookings?stationId=9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/api/bookings?stationId=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid stationId"}`, rec.Body.String())
}

func TestGetBooking(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/bookings/BK001", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got entities.BookingDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "John Smith", got.CustomerName)
	require.NotNil(t, got.PickupStation)
	assert.Equal(t, "Berlin Central Station", got.PickupStation.Name)

	rec = do(t, router, http.MethodGet, "/api/bookings/BK404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Booking not found"}`, rec.Body.String())
}

func TestRescheduleBooking(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
	}{
		{"malformed json", "/api/bookings/BK001/reschedule", `{`, http.StatusBadRequest},
		{"missing date", "/api/bookings/BK001/reschedule", `{"rescheduleType":"pickup"}`, http.StatusBadRequest},
		{"bad type", "/api/bookings/BK001/reschedule", `{"rescheduleType":"swap","newDate":"2025-08-16"}`, http.StatusBadRequest},
		{"unknown booking", "/api/bookings/BK999/reschedule", `{"rescheduleType":"pickup","newDate":"2025-08-16"}`, http.StatusNotFound},
		{"ok", "/api/bookings/BK001/reschedule", `{"rescheduleType":"pickup","newDate":"2025-08-16","previousDate":"2025-08-15"}`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, http.MethodPut, tt.target, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	rec := do(t, router, http.MethodGet, "/api/bookings/BK001", "")
	var got entities.BookingDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "2025-08-16", got.StartDate)
}

func TestRequestIDAndHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))

	rec = do(t, router, http.MethodGet, "/api/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLatency(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	start := time.Now()
	rec := httptest.NewRecorder()
	Latency(20*time.Millisecond, 1)(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	h := Latency(time.Hour, 0)(ok)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
