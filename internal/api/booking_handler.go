package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"campervan/internal/entities"
	apperrors "campervan/internal/errors"
	"campervan/internal/service"
)

type BookingHandler struct {
	Service *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	q := entities.BookingsQuery{
		StartDate: params.Get("startDate"),
		EndDate:   params.Get("endDate"),
	}
	if raw := params.Get("stationId"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, apperrors.ErrBadRequest("Invalid stationId"))
			return
		}
		q.StationID = id
	}

	bookings, err := h.Service.ListBookings(q)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) GetBooking(w http.ResponseWriter, r *http.Request) {
	details, err := h.Service.GetBookingDetails(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *BookingHandler) RescheduleBooking(w http.ResponseWriter, r *http.Request) {
	var req entities.RescheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, apperrors.Wrap(http.StatusBadRequest, "Invalid request", err))
		return
	}

	booking, err := h.Service.RescheduleBooking(mux.Vars(r)["id"], req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, booking)
}

func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
