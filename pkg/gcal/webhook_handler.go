package gcal

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jobsight/jobsight/internal/config"
	"github.com/jobsight/jobsight/pkg/schedule"
	log "github.com/sirupsen/logrus"
)

// WebhookHandler receives Google push notifications and folds remote event
// changes into schedule storage.
type WebhookHandler struct {
	service         Service
	scheduleService *schedule.Service
	cfg             config.Google
}

func NewWebhookHandler(service Service, scheduleService *schedule.Service, cfg config.Google) *WebhookHandler {
	return &WebhookHandler{service: service, scheduleService: scheduleService, cfg: cfg}
}

func (h *WebhookHandler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	if h.cfg.WebhookToken != "" && r.Header.Get("X-Goog-Channel-Token") != h.cfg.WebhookToken {
		http.Error(w, "invalid channel token", http.StatusForbidden)
		return
	}

	var payload WebhookPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Error("failed to decode webhook payload: ", err)
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}

	adapter, err := h.service.AdapterForCurrentUser(r.Context())
	if errors.Is(err, ErrUnauthenticated) {
		// nothing to sync against; acknowledge so Google stops retrying
		w.WriteHeader(http.StatusOK)
		return
	} else if err != nil {
		http.Error(w, "failed to handle notification", http.StatusInternalServerError)
		return
	}

	item := adapter.HandleWebhook(r.Context(), payload)
	if item == nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	if item.ProjectId == 0 {
		existing, err := h.scheduleService.FindByGoogleEventId(r.Context(), item.GoogleEventId)
		if err == nil {
			item.ProjectId = existing.ProjectId
		} else if !errors.Is(err, schedule.ErrNotFound) {
			log.Errorf("failed to look up schedule item for event %s: %v", item.GoogleEventId, err)
			http.Error(w, "failed to handle notification", http.StatusInternalServerError)
			return
		}
	}

	if _, err := h.scheduleService.ApplyRemoteChange(r.Context(), *item); err != nil {
		log.Errorf("failed to apply remote change for event %s: %v", item.GoogleEventId, err)
		http.Error(w, "failed to handle notification", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}
