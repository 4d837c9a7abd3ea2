package timeentry

import (
	"context"
	"testing"
	"time"

	"github.com/jobsight/jobsight/internal/utils"
	"github.com/jobsight/jobsight/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 1})
}

func newTestService() (*Service, *utils.MockClock) {
	clock := &utils.MockClock{FixedNow: time.Date(2023, 5, 18, 8, 0, 0, 0, time.UTC)}
	return NewService(NewStubRepository(), clock), clock
}

func TestStart_usesClockWhenNoStartGiven(t *testing.T) {
	service, clock := newTestService()

	started, err := service.Start(userContext(), Entry{EmployeeId: 5, ProjectId: 10})

	require.NoError(t, err)
	assert.Equal(t, clock.FixedNow, started.Start)
	assert.True(t, started.IsOpen())
}

func TestStart_autoClosesPreviousOpenEntry(t *testing.T) {
	service, clock := newTestService()
	ctx := userContext()

	first, err := service.Start(ctx, Entry{EmployeeId: 5, ProjectId: 10})
	require.NoError(t, err)

	clock.SetNow(clock.FixedNow.Add(2 * time.Hour))
	second, err := service.Start(ctx, Entry{EmployeeId: 5, ProjectId: 11})
	require.NoError(t, err)

	closed, err := service.Get(ctx, first.Id)
	require.NoError(t, err)
	require.NotNil(t, closed.End)
	assert.Equal(t, second.Start, *closed.End)
	assert.True(t, second.IsOpen())
}

func TestStart_doesNotTouchOtherEmployeesEntries(t *testing.T) {
	service, _ := newTestService()
	ctx := userContext()

	first, err := service.Start(ctx, Entry{EmployeeId: 5, ProjectId: 10})
	require.NoError(t, err)
	_, err = service.Start(ctx, Entry{EmployeeId: 6, ProjectId: 10})
	require.NoError(t, err)

	stillOpen, err := service.Get(ctx, first.Id)
	require.NoError(t, err)
	assert.True(t, stillOpen.IsOpen())
}

func TestStop_closesRunningEntry(t *testing.T) {
	service, clock := newTestService()
	ctx := userContext()

	started, err := service.Start(ctx, Entry{EmployeeId: 5, ProjectId: 10})
	require.NoError(t, err)

	clock.SetNow(clock.FixedNow.Add(8 * time.Hour))
	stopped, err := service.Stop(ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, started.Id, stopped.Id)
	require.NotNil(t, stopped.End)
	assert.Equal(t, clock.FixedNow, *stopped.End)
}

func TestStop_withoutRunningEntry(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Stop(userContext(), 5)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestList_filtersByProjectAndRange(t *testing.T) {
	service, clock := newTestService()
	ctx := userContext()

	_, err := service.Start(ctx, Entry{EmployeeId: 5, ProjectId: 10})
	require.NoError(t, err)
	clock.SetNow(clock.FixedNow.Add(24 * time.Hour))
	_, err = service.Start(ctx, Entry{EmployeeId: 5, ProjectId: 11})
	require.NoError(t, err)

	byProject, err := service.List(ctx, Filter{ProjectId: 11})
	require.NoError(t, err)
	require.Len(t, byProject, 1)
	assert.Equal(t, int64(11), byProject[0].ProjectId)

	firstDayOnly, err := service.List(ctx, Filter{
		From: time.Date(2023, 5, 18, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2023, 5, 19, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, firstDayOnly, 1)
	assert.Equal(t, int64(10), firstDayOnly[0].ProjectId)
}
