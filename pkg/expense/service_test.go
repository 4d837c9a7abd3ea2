package expense

import (
	"context"
	"testing"
	"time"

	"github.com/jobsight/jobsight/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 1})
}

func date(d int) time.Time {
	return time.Date(2023, 5, d, 0, 0, 0, 0, time.UTC)
}

func TestCreate_rejectsNegativeAmount(t *testing.T) {
	service := NewService(NewStubRepository())

	_, err := service.Create(userContext(), Expense{ProjectId: 10, Vendor: "Home Depot", AmountCents: -100})

	assert.Error(t, err)
}

func TestProjectTotal_sumsOnlyProjectExpenses(t *testing.T) {
	service := NewService(NewStubRepository())
	ctx := userContext()

	_, err := service.Create(ctx, Expense{ProjectId: 10, Vendor: "Home Depot", AmountCents: 12550, IncurredDate: date(1)})
	require.NoError(t, err)
	_, err = service.Create(ctx, Expense{ProjectId: 10, Vendor: "Lowe's", AmountCents: 4300, IncurredDate: date(2)})
	require.NoError(t, err)
	_, err = service.Create(ctx, Expense{ProjectId: 11, Vendor: "Rental", AmountCents: 99999, IncurredDate: date(2)})
	require.NoError(t, err)

	total, err := service.ProjectTotal(ctx, 10)

	require.NoError(t, err)
	assert.Equal(t, int64(16850), total)
}

func TestListByProject_dateRange(t *testing.T) {
	service := NewService(NewStubRepository())
	ctx := userContext()

	_, err := service.Create(ctx, Expense{ProjectId: 10, Vendor: "Home Depot", AmountCents: 100, IncurredDate: date(1)})
	require.NoError(t, err)
	_, err = service.Create(ctx, Expense{ProjectId: 10, Vendor: "Lowe's", AmountCents: 200, IncurredDate: date(15)})
	require.NoError(t, err)

	expenses, err := service.ListByProject(ctx, 10, date(10), date(20))

	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Lowe's", expenses[0].Vendor)
}
