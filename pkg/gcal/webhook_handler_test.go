package gcal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jobsight/jobsight/internal/config"
	"github.com/jobsight/jobsight/internal/event_bus"
	"github.com/jobsight/jobsight/pkg/schedule"
	"github.com/jobsight/jobsight/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"
)

type stubSyncService struct {
	adapter *SyncAdapter
	err     error
}

func (s *stubSyncService) AdapterForCurrentUser(ctx context.Context) (*SyncAdapter, error) {
	return s.adapter, s.err
}

func (s *stubSyncService) AdapterForUser(ctx context.Context, userId int) (*SyncAdapter, error) {
	return s.adapter, s.err
}

func (s *stubSyncService) ListCalendars(ctx context.Context) ([]Calendar, error) {
	return nil, nil
}

func notificationRequest(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/api/integrations/google/webhook", strings.NewReader(body))
}

func TestAdapterForCurrentUser_noUserOnContext(t *testing.T) {
	service := NewService(nil, nil, config.Google{})

	_, err := service.AdapterForCurrentUser(context.Background())

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestHandleNotification_userlessDeliveryIsAcknowledged(t *testing.T) {
	// Google's own push deliveries carry no account header, so the adapter
	// lookup must resolve to the unauthenticated skip, not an error.
	handler := NewWebhookHandler(NewService(nil, nil, config.Google{}), nil, config.Google{})
	rec := httptest.NewRecorder()

	handler.HandleNotification(rec, notificationRequest(`{"calendarId":"primary","eventId":"evt-1","resourceState":"exists"}`))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleNotification_rejectsWrongChannelToken(t *testing.T) {
	handler := NewWebhookHandler(&stubSyncService{}, nil, config.Google{WebhookToken: "secret"})
	rec := httptest.NewRecorder()
	req := notificationRequest(`{"resourceState":"exists"}`)
	req.Header.Set("X-Goog-Channel-Token", "wrong")

	handler.HandleNotification(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestHandleNotification_rejectsMalformedPayload(t *testing.T) {
	handler := NewWebhookHandler(&stubSyncService{err: ErrUnauthenticated}, nil, config.Google{})
	rec := httptest.NewRecorder()

	handler.HandleNotification(rec, notificationRequest(`{not json`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleNotification_appliesRemoteChange(t *testing.T) {
	adapter, api := newTestAdapter()
	api.Put("primary", &gcal.Event{
		Id:      "evt-1",
		Summary: "Inspection",
		Status:  "confirmed",
		Start:   &gcal.EventDateTime{DateTime: "2023-05-18T08:00:00Z"},
		End:     &gcal.EventDateTime{DateTime: "2023-05-18T09:00:00Z"},
	})
	scheduleService := schedule.NewService(schedule.NewStubRepository(), event_bus.NewEventBus())
	handler := NewWebhookHandler(&stubSyncService{adapter: adapter}, scheduleService, config.Google{})

	rec := httptest.NewRecorder()
	req := notificationRequest(`{"calendarId":"primary","eventId":"evt-1","resourceState":"exists","projectId":10}`)
	req = req.WithContext(user.WithUser(req.Context(), user.User{Id: 1}))

	handler.HandleNotification(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	stored, err := scheduleService.FindByGoogleEventId(req.Context(), "evt-1")
	require.NoError(t, err)
	assert.Equal(t, "Inspection", stored.Title)
	assert.Equal(t, int64(10), stored.ProjectId)
}
