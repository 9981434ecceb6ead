package api

import (
	"io"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"campervan/internal/config"
)

// Simulated backend latencies, scaled by config.Config.LatencyScale.
const (
	StationsLatency   = 300 * time.Millisecond
	BookingsLatency   = 500 * time.Millisecond
	DetailsLatency    = 400 * time.Millisecond
	RescheduleLatency = 300 * time.Millisecond
)

// NewRouter wires the mock API routes. Access logs in combined format go
// to accessLog.
func NewRouter(cfg *config.Config, stations *StationHandler, bookings *BookingHandler, log *logrus.Logger, accessLog io.Writer) http.Handler {
	r := mux.NewRouter()
	r.Use(RequestID(log))

	route := func(path string, base time.Duration, h http.HandlerFunc) *mux.Route {
		return r.Handle(path, Latency(base, cfg.LatencyScale)(h))
	}

	route("/api/stations", StationsLatency, stations.SearchStations).Methods(http.MethodGet)
	route("/api/bookings", BookingsLatency, bookings.ListBookings).Methods(http.MethodGet)
	route("/api/bookings/{id}", DetailsLatency, bookings.GetBooking).Methods(http.MethodGet)
	route("/api/bookings/{id}/reschedule", RescheduleLatency, bookings.RescheduleBooking).Methods(http.MethodPut)
	r.HandleFunc("/api/health", Health).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Not found"})
	})

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPut, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", RequestIDHeader}),
		handlers.ExposedHeaders([]string{RequestIDHeader}),
	)
	recovery := handlers.RecoveryHandler(handlers.RecoveryLogger(log), handlers.PrintRecoveryStack(true))

	return handlers.CombinedLoggingHandler(accessLog, cors(recovery(r)))
}
