package gcal

import (
	"context"

	"github.com/jobsight/jobsight/pkg/schedule"
	log "github.com/sirupsen/logrus"
	gcal "google.golang.org/api/calendar/v3"
)

// resourceStateExists is the only webhook state that carries a readable
// event; "sync" and "not_exists" (deletions) are handled elsewhere.
const resourceStateExists = "exists"

// Config carries the adapter-level settings applied to every mapped event.
type Config struct {
	TimeZone          string
	DefaultCalendarId string
}

// SyncAdapter translates between schedule items and Google Calendar events
// and folds API results back into the item. It owns exactly three item
// fields: GoogleEventId, InviteStatus, and LastSyncError. It holds no
// credential state; the authenticated API is injected, so constructing one
// per request or once per process are both fine.
type SyncAdapter struct {
	api CalendarAPI
	cfg Config
}

func NewSyncAdapter(api CalendarAPI, cfg Config) *SyncAdapter {
	return &SyncAdapter{api: api, cfg: cfg}
}

// WebhookPayload is the notification shape delivered by the HTTP layer.
type WebhookPayload struct {
	CalendarId    string `json:"calendarId"`
	EventId       string `json:"eventId"`
	ResourceState string `json:"resourceState"`
	ProjectId     int64  `json:"projectId,omitempty"`
}

// CreateOrUpdateEvent pushes the item to Google, choosing create or update
// based on whether a Google event id is already recorded. Items with sync
// disabled are left untouched with no network call. Write failures are
// recorded in LastSyncError and returned; the adapter never retries.
func (a *SyncAdapter) CreateOrUpdateEvent(ctx context.Context, item *schedule.Item, calendarId string) error {
	if !item.CalendarSyncEnabled {
		return nil
	}
	calendarId = a.calendarId(calendarId)
	event := eventFromItem(*item, a.cfg.TimeZone)

	var result *gcal.Event
	var err error
	if item.GoogleEventId != "" {
		result, err = a.api.UpdateEvent(ctx, calendarId, item.GoogleEventId, event)
	} else {
		result, err = a.api.CreateEvent(ctx, calendarId, event)
	}
	if err != nil {
		item.LastSyncError = errMessage(err)
		return err
	}

	item.GoogleEventId = result.Id
	item.InviteStatus = result.Status
	item.LastSyncError = ""
	return nil
}

// DeleteEvent removes the remote event. Failures are logged, not raised:
// deletion is best-effort and the caller decides whether to retry.
func (a *SyncAdapter) DeleteEvent(ctx context.Context, item *schedule.Item, calendarId string) bool {
	if item.GoogleEventId == "" {
		return false
	}
	if err := a.api.DeleteEvent(ctx, a.calendarId(calendarId), item.GoogleEventId); err != nil {
		log.Errorf("failed to delete Google event %s: %v", item.GoogleEventId, err)
		return false
	}
	return true
}

// SyncAllEvents pushes every sync-enabled item sequentially. A failing item
// is logged and passed through unsynced so one bad event cannot abort the
// batch; output order matches input order.
func (a *SyncAdapter) SyncAllEvents(ctx context.Context, items []schedule.Item, calendarId string) []schedule.Item {
	result := make([]schedule.Item, 0, len(items))
	for _, item := range items {
		if !item.CalendarSyncEnabled {
			result = append(result, item)
			continue
		}
		synced := item
		if err := a.CreateOrUpdateEvent(ctx, &synced, calendarId); err != nil {
			log.Errorf("failed to sync schedule item %d: %v", item.Id, err)
			result = append(result, item)
			continue
		}
		result = append(result, synced)
	}
	return result
}

// HandleWebhook resolves a change notification into a partial schedule item
// for the caller to merge into storage. Non-"exists" states (deletions,
// channel syncs) and read failures return nil; webhook delivery must not
// fail loudly on a transient read error.
func (a *SyncAdapter) HandleWebhook(ctx context.Context, payload WebhookPayload) *schedule.Item {
	if payload.ResourceState != resourceStateExists || payload.EventId == "" {
		return nil
	}

	event, err := a.api.GetEvent(ctx, a.calendarId(payload.CalendarId), payload.EventId)
	if err != nil {
		log.Errorf("failed to fetch Google event %s: %v", payload.EventId, err)
		return nil
	}

	item := itemFromEvent(event)
	item.ProjectId = payload.ProjectId
	return &item
}

func (a *SyncAdapter) calendarId(calendarId string) string {
	if calendarId == "" {
		return a.cfg.DefaultCalendarId
	}
	return calendarId
}

func errMessage(err error) string {
	if err == nil || err.Error() == "" {
		return "calendar sync failed"
	}
	return err.Error()
}
