package contact

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

func TestService_Create(t *testing.T) {
	service, ctx := setupServiceTest(t)

	created, err := service.Create(ctx, Contact{Type: Employee, Name: "Dana Reyes", Email: "dana@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, created.Id)

	found, err := service.Get(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "Dana Reyes", found.Name)
	assert.Equal(t, Employee, found.Type)
}

func TestService_Create_rejectsUnknownType(t *testing.T) {
	service, ctx := setupServiceTest(t)

	_, err := service.Create(ctx, Contact{Type: "vendor", Name: "Acme Supply"})
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestService_List_filtersByType(t *testing.T) {
	service, ctx := setupServiceTest(t)

	_, err := service.Create(ctx, Contact{Type: Employee, Name: "Dana Reyes"})
	require.NoError(t, err)
	_, err = service.Create(ctx, Contact{Type: Subcontractor, Name: "Apex Electric"})
	require.NoError(t, err)

	subs, err := service.List(ctx, Subcontractor, false)
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "Apex Electric", subs[0].Name)

	all, err := service.List(ctx, "", false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestService_Archive_hidesFromDefaultListing(t *testing.T) {
	service, ctx := setupServiceTest(t)

	created, err := service.Create(ctx, Contact{Type: Customer, Name: "Morgan Hale"})
	require.NoError(t, err)

	require.NoError(t, service.Archive(ctx, created.Id))

	visible, err := service.List(ctx, "", false)
	require.NoError(t, err)
	assert.Empty(t, visible)

	withArchived, err := service.List(ctx, "", true)
	require.NoError(t, err)
	assert.Len(t, withArchived, 1)
}

func TestService_RequiresUserInContext(t *testing.T) {
	service := NewService(NewStubRepository())

	_, err := service.List(context.Background(), "", false)
	assert.ErrorIs(t, err, user.ErrNoUser)
}
