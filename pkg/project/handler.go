package project

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

type ProjectDTO struct {
	Id         int64      `json:"id"`
	CustomerId int64      `json:"customerId"`
	Name       string     `json:"name"`
	Address    string     `json:"address,omitempty"`
	Status     string     `json:"status"`
	StartDate  *time.Time `json:"startDate,omitempty"`
	EndDate    *time.Time `json:"endDate,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var dto ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		writeBadRequest(w, "Invalid project id", "project id must be an integer")
		return
	}
	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toDTO(found)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	status := Status(r.URL.Query().Get("status"))
	projects, err := h.service.List(r.Context(), status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	dtos := make([]ProjectDTO, 0, len(projects))
	for _, p := range projects {
		dtos = append(dtos, toDTO(p))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		writeBadRequest(w, "Invalid project id", "project id must be an integer")
		return
	}
	var dto ProjectDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p := fromDTO(dto)
	p.Id = id
	updated, err := h.service.Update(r.Context(), p)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrInvalidTransition) {
			writeBadRequest(w, "Invalid status transition", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toDTO(updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		writeBadRequest(w, "Invalid project id", "project id must be an integer")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "project not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathId(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["projectId"], 10, 64)
}

func writeBadRequest(w http.ResponseWriter, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details})
}

func toDTO(p Project) ProjectDTO {
	return ProjectDTO{
		Id:         p.Id,
		CustomerId: p.CustomerId,
		Name:       p.Name,
		Address:    p.Address,
		Status:     string(p.Status),
		StartDate:  p.StartDate,
		EndDate:    p.EndDate,
		Notes:      p.Notes,
		CreatedAt:  p.CreatedAt,
	}
}

func fromDTO(dto ProjectDTO) Project {
	return Project{
		Id:         dto.Id,
		CustomerId: dto.CustomerId,
		Name:       dto.Name,
		Address:    dto.Address,
		Status:     Status(dto.Status),
		StartDate:  dto.StartDate,
		EndDate:    dto.EndDate,
		Notes:      dto.Notes,
	}
}
