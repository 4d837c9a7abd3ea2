package project

import (
	"context"
	"testing"

	"github.com/jobsight/jobsight/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupServiceTest(t *testing.T) (*Service, context.Context) {
	t.Helper()
	service := NewService(NewStubRepository())
	ctx := user.WithUser(context.Background(), user.User{Id: 1})
	return service, ctx
}

func TestService_Create_defaultsToPlanning(t *testing.T) {
	service, ctx := setupServiceTest(t)

	created, err := service.Create(ctx, Project{CustomerId: 4, Name: "Maple St Remodel"})
	require.NoError(t, err)
	assert.Equal(t, Planning, created.Status)
	assert.NotZero(t, created.Id)
}

func TestService_Update_allowsValidTransition(t *testing.T) {
	service, ctx := setupServiceTest(t)

	created, err := service.Create(ctx, Project{Name: "Maple St Remodel", Status: Planning})
	require.NoError(t, err)

	created.Status = Active
	updated, err := service.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, Active, updated.Status)
}

func TestService_Update_rejectsInvalidTransition(t *testing.T) {
	testCases := []struct {
		name string
		from Status
		to   Status
	}{
		{"planning cannot complete", Planning, Completed},
		{"completed is terminal", Completed, Active},
		{"cancelled is terminal", Cancelled, Planning},
		{"on hold cannot complete", OnHold, Completed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			service, ctx := setupServiceTest(t)
			created, err := service.Create(ctx, Project{Name: "Test", Status: tc.from})
			require.NoError(t, err)

			created.Status = tc.to
			_, err = service.Update(ctx, created)
			assert.ErrorIs(t, err, ErrInvalidTransition)
		})
	}
}

func TestService_List_filtersByStatus(t *testing.T) {
	service, ctx := setupServiceTest(t)

	_, err := service.Create(ctx, Project{Name: "A", Status: Active})
	require.NoError(t, err)
	_, err = service.Create(ctx, Project{Name: "B", Status: Planning})
	require.NoError(t, err)

	active, err := service.List(ctx, Active)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "A", active[0].Name)
}
