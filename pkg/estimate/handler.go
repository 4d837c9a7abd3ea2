package estimate

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

type LineItemDTO struct {
	Id             int64   `json:"id"`
	Description    string  `json:"description"`
	Quantity       float64 `json:"quantity"`
	UnitPriceCents int64   `json:"unitPriceCents"`
	Position       int     `json:"position"`
	TotalCents     int64   `json:"totalCents"`
}

type EstimateDTO struct {
	Id            int64         `json:"id"`
	ProjectId     int64         `json:"projectId"`
	Number        string        `json:"number"`
	Status        string        `json:"status"`
	TaxRate       float64       `json:"taxRate"`
	LineItems     []LineItemDTO `json:"lineItems"`
	SubtotalCents int64         `json:"subtotalCents"`
	TaxCents      int64         `json:"taxCents"`
	TotalCents    int64         `json:"totalCents"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type reorderRequest struct {
	LineItemIds []int64 `json:"lineItemIds"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateEstimate(w http.ResponseWriter, r *http.Request) {
	var dto EstimateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), fromDTO(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeEstimate(w, http.StatusCreated, created)
}

func (h *Handler) GetEstimate(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "estimateId")
	if err != nil {
		writeBadRequest(w, "Invalid estimate id", "estimate id must be an integer")
		return
	}
	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "estimate not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeEstimate(w, http.StatusOK, found)
}

func (h *Handler) ListEstimates(w http.ResponseWriter, r *http.Request) {
	projectId, err := strconv.ParseInt(r.URL.Query().Get("projectId"), 10, 64)
	if err != nil {
		writeBadRequest(w, "Invalid project id", "projectId query parameter must be an integer")
		return
	}
	estimates, err := h.service.ListByProject(r.Context(), projectId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]EstimateDTO, 0, len(estimates))
	for _, e := range estimates {
		dtos = append(dtos, toDTO(e))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateEstimate(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "estimateId")
	if err != nil {
		writeBadRequest(w, "Invalid estimate id", "estimate id must be an integer")
		return
	}
	var dto EstimateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	e := fromDTO(dto)
	e.Id = id
	updated, err := h.service.Update(r.Context(), e)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "estimate not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeEstimate(w, http.StatusOK, updated)
}

func (h *Handler) DeleteEstimate(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "estimateId")
	if err != nil {
		writeBadRequest(w, "Invalid estimate id", "estimate id must be an integer")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "estimate not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddLineItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r, "estimateId")
	if err != nil {
		writeBadRequest(w, "Invalid estimate id", "estimate id must be an integer")
		return
	}
	var dto LineItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	updated, err := h.service.AddLineItem(r.Context(), id, lineItemFromDTO(dto))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "estimate not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeEstimate(w, http.StatusOK, updated)
}

func (h *Handler) UpdateLineItem(w http.ResponseWriter, r *http.Request) {
	estimateId, err := pathId(r, "estimateId")
	if err != nil {
		writeBadRequest(w, "Invalid estimate id", "estimate id must be an integer")
		return
	}
	itemId, err := pathId(r, "itemId")
	if err != nil {
		writeBadRequest(w, "Invalid line item id", "line item id must be an integer")
		return
	}
	var dto LineItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item := lineItemFromDTO(dto)
	item.Id = itemId
	updated, err := h.service.UpdateLineItem(r.Context(), estimateId, item)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrLineItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeEstimate(w, http.StatusOK, updated)
}

func (h *Handler) DeleteLineItem(w http.ResponseWriter, r *http.Request) {
	estimateId, err := pathId(r, "estimateId")
	if err != nil {
		writeBadRequest(w, "Invalid estimate id", "estimate id must be an integer")
		return
	}
	itemId, err := pathId(r, "itemId")
	if err != nil {
		writeBadRequest(w, "Invalid line item id", "line item id must be an integer")
		return
	}
	updated, err := h.service.DeleteLineItem(r.Context(), estimateId, itemId)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrLineItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeEstimate(w, http.StatusOK, updated)
}

func (h *Handler) ReorderLineItems(w http.ResponseWriter, r *http.Request) {
	estimateId, err := pathId(r, "estimateId")
	if err != nil {
		writeBadRequest(w, "Invalid estimate id", "estimate id must be an integer")
		return
	}
	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	updated, err := h.service.ReorderLineItems(r.Context(), estimateId, req.LineItemIds)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrLineItemNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeEstimate(w, http.StatusOK, updated)
}

func pathId(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func writeBadRequest(w http.ResponseWriter, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details})
}

func writeEstimate(w http.ResponseWriter, status int, e Estimate) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(toDTO(e)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(e Estimate) EstimateDTO {
	items := make([]LineItemDTO, 0, len(e.LineItems))
	for _, item := range e.LineItems {
		items = append(items, LineItemDTO{
			Id:             item.Id,
			Description:    item.Description,
			Quantity:       item.Quantity,
			UnitPriceCents: item.UnitPriceCents,
			Position:       item.Position,
			TotalCents:     item.TotalCents(),
		})
	}
	totals := e.Totals()
	return EstimateDTO{
		Id:            e.Id,
		ProjectId:     e.ProjectId,
		Number:        e.Number,
		Status:        string(e.Status),
		TaxRate:       e.TaxRate,
		LineItems:     items,
		SubtotalCents: totals.SubtotalCents,
		TaxCents:      totals.TaxCents,
		TotalCents:    totals.TotalCents,
		CreatedAt:     e.CreatedAt,
	}
}

func fromDTO(dto EstimateDTO) Estimate {
	items := make([]LineItem, 0, len(dto.LineItems))
	for _, item := range dto.LineItems {
		items = append(items, lineItemFromDTO(item))
	}
	return Estimate{
		Id:        dto.Id,
		ProjectId: dto.ProjectId,
		Number:    dto.Number,
		Status:    Status(dto.Status),
		TaxRate:   dto.TaxRate,
		LineItems: items,
	}
}

func lineItemFromDTO(dto LineItemDTO) LineItem {
	return LineItem{
		Id:             dto.Id,
		Description:    dto.Description,
		Quantity:       dto.Quantity,
		UnitPriceCents: dto.UnitPriceCents,
	}
}
