package api

import (
	"net/http"

	"campervan/internal/service"
)

type StationHandler struct {
	Service *service.StationService
}

func NewStationHandler(svc *service.StationService) *StationHandler {
	return &StationHandler{Service: svc}
}

func (h *StationHandler) SearchStations(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.SearchStations(r.URL.Query().Get("q")))
}
