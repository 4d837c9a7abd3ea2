package gcal

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"
)

type CalendarDTO struct {
	Id       string `json:"id"`
	Summary  string `json:"summary"`
	TimeZone string `json:"timeZone"`
	Primary  bool   `json:"primary"`
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) ListCalendars(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	calendars, err := h.service.ListCalendars(r.Context())
	if errors.Is(err, ErrUnauthenticated) {
		http.Error(w, "Google Calendar is not connected", http.StatusUnauthorized)
		return
	} else if err != nil {
		http.Error(w, "Failed to list calendars", http.StatusInternalServerError)
		return
	}

	dtos := make([]CalendarDTO, 0, len(calendars))
	for _, c := range calendars {
		dtos = append(dtos, CalendarDTO{Id: c.Id, Summary: c.Summary, TimeZone: c.TimeZone, Primary: c.Primary})
	}

	w.WriteHeader(http.StatusOK)
	err = json.NewEncoder(w).Encode(dtos)
	if err != nil {
		log.Error("failed to encode calendars response: ", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
