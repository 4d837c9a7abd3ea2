package contact

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

type ContactDTO struct {
	Id        int64     `json:"id"`
	Type      string    `json:"type"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Company   string    `json:"company,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Archived  bool      `json:"archived"`
	CreatedAt time.Time `json:"createdAt"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var dto ContactDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if err != nil {
		if errors.Is(err, ErrInvalidType) {
			writeBadRequest(w, "Invalid contact type", "type must be one of: customer, employee, subcontractor")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toDTO(created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		writeBadRequest(w, "Invalid contact id", "contact id must be an integer")
		return
	}
	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "contact not found", http.StatusNotFound)
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

func (h *Handler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contactType := Type(r.URL.Query().Get("type"))
	includeArchived := r.URL.Query().Get("includeArchived") == "true"

	contacts, err := h.service.List(r.Context(), contactType, includeArchived)
	if err != nil {
		if errors.Is(err, ErrInvalidType) {
			writeBadRequest(w, "Invalid contact type", "type must be one of: customer, employee, subcontractor")
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ContactDTO, 0, len(contacts))
	for _, c := range contacts {
		dtos = append(dtos, toDTO(c))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		writeBadRequest(w, "Invalid contact id", "contact id must be an integer")
		return
	}
	var dto ContactDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	c := fromDTO(dto)
	c.Id = id
	updated, err := h.service.Update(r.Context(), c)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "contact not found", http.StatusNotFound)
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

func (h *Handler) ArchiveContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		writeBadRequest(w, "Invalid contact id", "contact id must be an integer")
		return
	}
	if err := h.service.Archive(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "contact not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) RestoreContact(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		writeBadRequest(w, "Invalid contact id", "contact id must be an integer")
		return
	}
	if err := h.service.Restore(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "contact not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathId(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["contactId"], 10, 64)
}

func writeBadRequest(w http.ResponseWriter, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details})
}

func toDTO(c Contact) ContactDTO {
	return ContactDTO{
		Id:        c.Id,
		Type:      string(c.Type),
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Notes:     c.Notes,
		Archived:  c.Archived,
		CreatedAt: c.CreatedAt,
	}
}

func fromDTO(dto ContactDTO) Contact {
	return Contact{
		Id:      dto.Id,
		Type:    Type(dto.Type),
		Name:    dto.Name,
		Email:   dto.Email,
		Phone:   dto.Phone,
		Company: dto.Company,
		Notes:   dto.Notes,
	}
}
