package gcal

import (
	"context"
	"errors"
	"fmt"

	"github.com/jobsight/jobsight/internal/config"
	"github.com/jobsight/jobsight/pkg/user"
	log "github.com/sirupsen/logrus"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type Calendar struct {
	Id       string
	Summary  string
	TimeZone string
	Primary  bool
}

// Service builds per-user sync adapters backed by the user's stored
// Google OAuth token and account settings.
type Service interface {
	AdapterForCurrentUser(ctx context.Context) (*SyncAdapter, error)
	AdapterForUser(ctx context.Context, userId int) (*SyncAdapter, error)
	ListCalendars(ctx context.Context) ([]Calendar, error)
}

type ServiceImpl struct {
	auth        *GoogleAuth
	userService user.Service
	cfg         config.Google
}

func NewService(auth *GoogleAuth, userService user.Service, cfg config.Google) *ServiceImpl {
	return &ServiceImpl{auth: auth, userService: userService, cfg: cfg}
}

func (s *ServiceImpl) AdapterForCurrentUser(ctx context.Context) (*SyncAdapter, error) {
	userId, err := user.CurrentId(ctx)
	if errors.Is(err, user.ErrNoUser) {
		// no account on the request means no token either
		return nil, ErrUnauthenticated
	} else if err != nil {
		log.Error(err)
		return nil, err
	}
	return s.AdapterForUser(ctx, userId)
}

func (s *ServiceImpl) AdapterForUser(ctx context.Context, userId int) (*SyncAdapter, error) {
	calendarService, err := s.calendarService(ctx, userId)
	if err != nil {
		return nil, err
	}

	u, err := s.userService.GetUser(ctx, userId)
	if err != nil {
		log.Error(err)
		return nil, err
	}

	timeZone := u.Settings.Timezone
	if timeZone == "" {
		timeZone = s.cfg.TimeZone
	}
	calendarId := u.Settings.GoogleCalendar.CalendarId
	if calendarId == "" {
		calendarId = s.cfg.DefaultCalendarId
	}

	client := NewCalendarClient(calendarService)
	return NewSyncAdapter(client, Config{TimeZone: timeZone, DefaultCalendarId: calendarId}), nil
}

func (s *ServiceImpl) ListCalendars(ctx context.Context) ([]Calendar, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	calendarService, err := s.calendarService(ctx, userId)
	if err != nil {
		return nil, err
	}

	list, err := calendarService.CalendarList.List().Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to list Google calendars: %v", err)
		log.Error(err)
		return nil, err
	}

	var calendars []Calendar
	for _, entry := range list.Items {
		calendars = append(calendars, Calendar{
			Id:       entry.Id,
			Summary:  entry.Summary,
			TimeZone: entry.TimeZone,
			Primary:  entry.Primary,
		})
	}
	return calendars, nil
}

func (s *ServiceImpl) calendarService(ctx context.Context, userId int) (*calendar.Service, error) {
	client, err := s.auth.getClient(ctx, userId)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, ErrUnauthenticated
	}

	calendarService, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to create Google Calendar service: %v", err)
		log.Error(err)
		return nil, err
	}
	return calendarService, nil
}
