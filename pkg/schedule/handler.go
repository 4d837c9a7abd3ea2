package schedule

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

type RecurrenceDTO struct {
	Frequency string   `json:"frequency"`
	Interval  int      `json:"interval,omitempty"`
	WeekDays  []string `json:"weekDays,omitempty"`
	MonthDay  int      `json:"monthDay,omitempty"`
	EndDate   string   `json:"endDate,omitempty"`
	Count     int      `json:"count,omitempty"`
}

type ItemDTO struct {
	Id                  int64          `json:"id"`
	ProjectId           int64          `json:"projectId"`
	Title               string         `json:"title"`
	Description         string         `json:"description,omitempty"`
	StartTime           time.Time      `json:"start"`
	EndTime             time.Time      `json:"end"`
	AllDay              bool           `json:"allDay"`
	AssigneeType        string         `json:"assigneeType,omitempty"`
	AssigneeId          string         `json:"assigneeId,omitempty"`
	SendInvite          bool           `json:"sendInvite"`
	Recurrence          *RecurrenceDTO `json:"recurrence,omitempty"`
	CalendarSyncEnabled bool           `json:"calendarSyncEnabled"`
	GoogleEventId       string         `json:"googleEventId,omitempty"`
	InviteStatus        string         `json:"inviteStatus,omitempty"`
	LastSyncError       string         `json:"lastSyncError,omitempty"`
}

func NewHandler(service *Service) *Handler {
	return &Handler{service}
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var dto ItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	created, err := h.service.Create(r.Context(), fromItemDTO(dto))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(toItemDTO(*created)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	// Either a project listing or a date-range listing.
	if projectIdString := r.URL.Query().Get("projectId"); projectIdString != "" {
		projectId, err := strconv.ParseInt(projectIdString, 10, 64)
		if err != nil {
			writeBadRequest(w, "Invalid projectId", "projectId must be an integer")
			return
		}
		items, err := h.service.ListByProject(r.Context(), projectId)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeItems(w, items)
		return
	}

	from, err := time.Parse(time.RFC3339, r.URL.Query().Get("from"))
	if err != nil {
		writeBadRequest(w, "Invalid from (date) format", "'from' must be in RFC3339 format")
		return
	}
	to, err := time.Parse(time.RFC3339, r.URL.Query().Get("to"))
	if err != nil {
		writeBadRequest(w, "Invalid to (date) format", "'to' must be in RFC3339 format")
		return
	}
	items, err := h.service.ListRange(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeItems(w, items)
}

func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathItemId(r)
	if err != nil {
		writeBadRequest(w, "Invalid item id", "item id must be an integer")
		return
	}
	var dto ItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item := fromItemDTO(dto)
	item.Id = id
	updated, err := h.service.Update(r.Context(), item)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "schedule item not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(toItemDTO(*updated)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathItemId(r)
	if err != nil {
		writeBadRequest(w, "Invalid item id", "item id must be an integer")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, "schedule item not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ExportICS(w http.ResponseWriter, r *http.Request) {
	projectId, err := strconv.ParseInt(r.URL.Query().Get("projectId"), 10, 64)
	if err != nil {
		writeBadRequest(w, "Invalid projectId", "projectId must be an integer")
		return
	}
	data, err := h.service.ExportProjectICS(r.Context(), projectId)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/calendar")
	w.Header().Set("Content-Disposition", "attachment; filename=schedule.ics")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeItems(w http.ResponseWriter, items []Item) {
	dtos := make([]ItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, toItemDTO(item))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(dtos); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func pathItemId(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["itemId"], 10, 64)
}

func writeBadRequest(w http.ResponseWriter, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	_ = json.NewEncoder(w).Encode(rest.ErrorResponse{Error: message, Details: details})
}

func toItemDTO(item Item) ItemDTO {
	dto := ItemDTO{
		Id:                  item.Id,
		ProjectId:           item.ProjectId,
		Title:               item.Title,
		Description:         item.Description,
		StartTime:           item.StartTime,
		EndTime:             item.EndTime,
		AllDay:              item.AllDay,
		AssigneeType:        string(item.AssigneeType),
		AssigneeId:          item.AssigneeId,
		SendInvite:          item.SendInvite,
		CalendarSyncEnabled: item.CalendarSyncEnabled,
		GoogleEventId:       item.GoogleEventId,
		InviteStatus:        item.InviteStatus,
		LastSyncError:       item.LastSyncError,
	}
	if item.Recurrence != nil {
		dto.Recurrence = &RecurrenceDTO{
			Frequency: string(item.Recurrence.Frequency),
			Interval:  item.Recurrence.Interval,
			WeekDays:  item.Recurrence.WeekDays,
			MonthDay:  item.Recurrence.MonthDay,
			EndDate:   item.Recurrence.EndDate,
			Count:     item.Recurrence.Count,
		}
	}
	return dto
}

func fromItemDTO(dto ItemDTO) Item {
	item := Item{
		Id:                  dto.Id,
		ProjectId:           dto.ProjectId,
		Title:               dto.Title,
		Description:         dto.Description,
		StartTime:           dto.StartTime,
		EndTime:             dto.EndTime,
		AllDay:              dto.AllDay,
		AssigneeType:        AssigneeType(dto.AssigneeType),
		AssigneeId:          dto.AssigneeId,
		SendInvite:          dto.SendInvite,
		CalendarSyncEnabled: dto.CalendarSyncEnabled,
	}
	if dto.Recurrence != nil {
		item.Recurrence = &RecurrencePattern{
			Frequency: Frequency(dto.Recurrence.Frequency),
			Interval:  dto.Recurrence.Interval,
			WeekDays:  dto.Recurrence.WeekDays,
			MonthDay:  dto.Recurrence.MonthDay,
			EndDate:   dto.Recurrence.EndDate,
			Count:     dto.Recurrence.Count,
		}
	}
	return item
}
