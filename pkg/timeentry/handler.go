package timeentry

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/jobsight/jobsight/internal/rest"
)

type Handler struct {
	service *Service
}

type EntryDTO struct {
	Id         int64      `json:"id"`
	EmployeeId int64      `json:"employeeId"`
	ProjectId  int64      `json:"projectId"`
	Start      time.Time  `json:"start"`
	End        *time.Time `json:"end,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	Running    bool       `json:"running"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

func (h *Handler) StartEntry(w http.ResponseWriter, r *http.Request) {
	var dto EntryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	started, err := h.service.Start(r.Context(), Entry{
		EmployeeId: dto.EmployeeId,
		ProjectId:  dto.ProjectId,
		Start:      dto.Start,
		Notes:      dto.Notes,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeEntry(w, http.StatusCreated, started)
}

func (h *Handler) StopEntry(w http.ResponseWriter, r *http.Request) {
	employeeId, err := strconv.ParseInt(mux.Vars(r)["employeeId"], 10, 64)
	if err != nil {
		writeBadRequest(w, "Invalid employee id", "employee id must be an integer")
		return
	}
	stopped, err := h.service.Stop(r.Context(), employeeId)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "no running time entry", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeEntry(w, http.StatusOK, stopped)
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		writeBadRequest(w, "Invalid filter", err.Error())
		return
	}
	entries, err := h.service.List(r.Context(), filter)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EntryDTO, 0, len(entries))
	for _, e := range entries {
		dtos = append(dtos, toDTO(e))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["entryId"], 10, 64)
	if err != nil {
		writeBadRequest(w, "Invalid entry id", "entry id must be an integer")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "time entry not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func filterFromQuery(r *http.Request) (Filter, error) {
	var filter Filter
	var err error
	query := r.URL.Query()

	if v := query.Get("projectId"); v != "" {
		if filter.ProjectId, err = strconv.ParseInt(v, 10, 64); err != nil {
			return Filter{}, errors.New("projectId must be an integer")
		}
	}
	if v := query.Get("employeeId"); v != "" {
		if filter.EmployeeId, err = strconv.ParseInt(v, 10, 64); err != nil {
			return Filter{}, errors.New("employeeId must be an integer")
		}
	}
	if v := query.Get("from"); v != "" {
		if filter.From, err = time.Parse(time.RFC3339, v); err != nil {
			return Filter{}, errors.New("from must be an RFC3339 timestamp")
		}
	}
	if v := query.Get("to"); v != "" {
		if filter.To, err = time.Parse(time.RFC3339, v); err != nil {
			return Filter{}, errors.New("to must be an RFC3339 timestamp")
		}
	}
	return filter, nil
}

func writeBadRequest(w http.ResponseWriter, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details})
}

func writeEntry(w http.ResponseWriter, status int, e Entry) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(toDTO(e)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(e Entry) EntryDTO {
	return EntryDTO{
		Id:         e.Id,
		EmployeeId: e.EmployeeId,
		ProjectId:  e.ProjectId,
		Start:      e.Start,
		End:        e.End,
		Notes:      e.Notes,
		Running:    e.IsOpen(),
	}
}
