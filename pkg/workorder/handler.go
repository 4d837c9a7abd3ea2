package workorder

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

type WorkOrderDTO struct {
	Id          int64      `json:"id"`
	ProjectId   int64      `json:"projectId"`
	Number      string     `json:"number"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	AssigneeId  int64      `json:"assigneeId,omitempty"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateWorkOrder(w http.ResponseWriter, r *http.Request) {
	var dto WorkOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeWorkOrder(w, http.StatusCreated, created)
}

func (h *Handler) GetWorkOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		writeBadRequest(w, "Invalid work order id", "work order id must be an integer")
		return
	}
	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "work order not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeWorkOrder(w, http.StatusOK, found)
}

func (h *Handler) ListWorkOrders(w http.ResponseWriter, r *http.Request) {
	projectId, err := strconv.ParseInt(r.URL.Query().Get("projectId"), 10, 64)
	if err != nil {
		writeBadRequest(w, "Invalid project id", "projectId query parameter must be an integer")
		return
	}
	orders, err := h.service.ListByProject(r.Context(), projectId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]WorkOrderDTO, 0, len(orders))
	for _, o := range orders {
		dtos = append(dtos, toDTO(o))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateWorkOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		writeBadRequest(w, "Invalid work order id", "work order id must be an integer")
		return
	}
	var dto WorkOrderDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	o := fromDTO(dto)
	o.Id = id
	updated, err := h.service.Update(r.Context(), o)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "work order not found", http.StatusNotFound)
			return
		}
		if errors.Is(err, ErrInvalidTransition) {
			writeBadRequest(w, "Invalid status transition", err.Error())
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeWorkOrder(w, http.StatusOK, updated)
}

func (h *Handler) DeleteWorkOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		writeBadRequest(w, "Invalid work order id", "work order id must be an integer")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "work order not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathId(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["workOrderId"], 10, 64)
}

func writeBadRequest(w http.ResponseWriter, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details})
}

func writeWorkOrder(w http.ResponseWriter, status int, o WorkOrder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(toDTO(o)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(o WorkOrder) WorkOrderDTO {
	return WorkOrderDTO{
		Id:          o.Id,
		ProjectId:   o.ProjectId,
		Number:      o.Number,
		Title:       o.Title,
		Description: o.Description,
		AssigneeId:  o.AssigneeId,
		Status:      string(o.Status),
		DueDate:     o.DueDate,
		CreatedAt:   o.CreatedAt,
	}
}

func fromDTO(dto WorkOrderDTO) WorkOrder {
	return WorkOrder{
		Id:          dto.Id,
		ProjectId:   dto.ProjectId,
		Number:      dto.Number,
		Title:       dto.Title,
		Description: dto.Description,
		AssigneeId:  dto.AssigneeId,
		Status:      Status(dto.Status),
		DueDate:     dto.DueDate,
	}
}
