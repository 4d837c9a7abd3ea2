package expense

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

type ExpenseDTO struct {
	Id           int64     `json:"id"`
	ProjectId    int64     `json:"projectId"`
	Vendor       string    `json:"vendor"`
	AmountCents  int64     `json:"amountCents"`
	Category     string    `json:"category,omitempty"`
	IncurredDate string    `json:"incurredDate"`
	ReceiptUrl   string    `json:"receiptUrl,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type projectTotalDTO struct {
	ProjectId  int64 `json:"projectId"`
	TotalCents int64 `json:"totalCents"`
}

const dateLayout = "2006-01-02"

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateExpense(w http.ResponseWriter, r *http.Request) {
	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	expense, err := fromDTO(dto)
	if err != nil {
		writeBadRequest(w, "Invalid expense", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), expense)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeExpense(w, http.StatusCreated, created)
}

func (h *Handler) GetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		writeBadRequest(w, "Invalid expense id", "expense id must be an integer")
		return
	}
	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeExpense(w, http.StatusOK, found)
}

func (h *Handler) ListExpenses(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	projectId, err := strconv.ParseInt(query.Get("projectId"), 10, 64)
	if err != nil {
		writeBadRequest(w, "Invalid project id", "projectId query parameter must be an integer")
		return
	}

	var from, to time.Time
	if v := query.Get("from"); v != "" {
		if from, err = time.Parse(dateLayout, v); err != nil {
			writeBadRequest(w, "Invalid date range", "from must be formatted YYYY-MM-DD")
			return
		}
	}
	if v := query.Get("to"); v != "" {
		if to, err = time.Parse(dateLayout, v); err != nil {
			writeBadRequest(w, "Invalid date range", "to must be formatted YYYY-MM-DD")
			return
		}
	}

	expenses, err := h.service.ListByProject(r.Context(), projectId, from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dtos := make([]ExpenseDTO, 0, len(expenses))
	for _, e := range expenses {
		dtos = append(dtos, toDTO(e))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) ProjectTotal(w http.ResponseWriter, r *http.Request) {
	projectId, err := strconv.ParseInt(r.URL.Query().Get("projectId"), 10, 64)
	if err != nil {
		writeBadRequest(w, "Invalid project id", "projectId query parameter must be an integer")
		return
	}
	total, err := h.service.ProjectTotal(r.Context(), projectId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(projectTotalDTO{ProjectId: projectId, TotalCents: total}); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		writeBadRequest(w, "Invalid expense id", "expense id must be an integer")
		return
	}
	var dto ExpenseDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	expense, err := fromDTO(dto)
	if err != nil {
		writeBadRequest(w, "Invalid expense", err.Error())
		return
	}
	expense.Id = id
	updated, err := h.service.Update(r.Context(), expense)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeExpense(w, http.StatusOK, updated)
}

func (h *Handler) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathId(r)
	if err != nil {
		writeBadRequest(w, "Invalid expense id", "expense id must be an integer")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "expense not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func pathId(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["expenseId"], 10, 64)
}

func writeBadRequest(w http.ResponseWriter, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details})
}

func writeExpense(w http.ResponseWriter, status int, e Expense) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(toDTO(e)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toDTO(e Expense) ExpenseDTO {
	return ExpenseDTO{
		Id:           e.Id,
		ProjectId:    e.ProjectId,
		Vendor:       e.Vendor,
		AmountCents:  e.AmountCents,
		Category:     e.Category,
		IncurredDate: e.IncurredDate.Format(dateLayout),
		ReceiptUrl:   e.ReceiptUrl,
		Notes:        e.Notes,
		CreatedAt:    e.CreatedAt,
	}
}

func fromDTO(dto ExpenseDTO) (Expense, error) {
	incurred, err := time.Parse(dateLayout, dto.IncurredDate)
	if err != nil {
		return Expense{}, errors.New("incurredDate must be formatted YYYY-MM-DD")
	}
	return Expense{
		Id:           dto.Id,
		ProjectId:    dto.ProjectId,
		Vendor:       dto.Vendor,
		AmountCents:  dto.AmountCents,
		Category:     dto.Category,
		IncurredDate: incurred,
		ReceiptUrl:   dto.ReceiptUrl,
		Notes:        dto.Notes,
	}, nil
}
