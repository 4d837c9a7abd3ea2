package estimate

import (
	"context"
	"testing"

	"github.com/jobsight/jobsight/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userContext() context.Context {
	return user.WithUser(context.Background(), user.User{Id: 1})
}

func TestTotals_computedFromLineItems(t *testing.T) {
	e := Estimate{
		TaxRate: 8.25,
		LineItems: []LineItem{
			{Description: "Lumber", Quantity: 10, UnitPriceCents: 1250},
			{Description: "Labor", Quantity: 4.5, UnitPriceCents: 8500},
		},
	}

	totals := e.Totals()

	assert.Equal(t, int64(12500+38250), totals.SubtotalCents)
	assert.Equal(t, int64(4187), totals.TaxCents) // round(50750 * 0.0825)
	assert.Equal(t, int64(54937), totals.TotalCents)
}

func TestTotals_emptyEstimate(t *testing.T) {
	totals := Estimate{TaxRate: 10}.Totals()

	assert.Zero(t, totals.SubtotalCents)
	assert.Zero(t, totals.TaxCents)
	assert.Zero(t, totals.TotalCents)
}

func TestCreate_defaultsToDraftAndPositionsItems(t *testing.T) {
	service := NewService(NewStubRepository())

	created, err := service.Create(userContext(), Estimate{
		ProjectId: 10,
		Number:    "EST-001",
		LineItems: []LineItem{
			{Description: "Lumber", Quantity: 1, UnitPriceCents: 100},
			{Description: "Labor", Quantity: 1, UnitPriceCents: 200},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, Draft, created.Status)
	assert.Equal(t, 0, created.LineItems[0].Position)
	assert.Equal(t, 1, created.LineItems[1].Position)
}

func TestCreate_rejectsUnknownStatus(t *testing.T) {
	service := NewService(NewStubRepository())

	_, err := service.Create(userContext(), Estimate{ProjectId: 10, Status: "approved"})

	assert.Error(t, err)
}

func TestAddLineItem_appendsAtEnd(t *testing.T) {
	service := NewService(NewStubRepository())
	ctx := userContext()

	created, err := service.Create(ctx, Estimate{
		ProjectId: 10,
		LineItems: []LineItem{{Description: "Lumber", Quantity: 1, UnitPriceCents: 100}},
	})
	require.NoError(t, err)

	updated, err := service.AddLineItem(ctx, created.Id, LineItem{Description: "Labor", Quantity: 2, UnitPriceCents: 50})

	require.NoError(t, err)
	require.Len(t, updated.LineItems, 2)
	assert.Equal(t, "Labor", updated.LineItems[1].Description)
	assert.Equal(t, 1, updated.LineItems[1].Position)
	assert.Equal(t, int64(200), updated.Totals().SubtotalCents)
}

func TestReorderLineItems_requiresCompleteIdList(t *testing.T) {
	service := NewService(NewStubRepository())
	ctx := userContext()

	created, err := service.Create(ctx, Estimate{
		ProjectId: 10,
		LineItems: []LineItem{
			{Description: "Lumber", Quantity: 1, UnitPriceCents: 100},
			{Description: "Labor", Quantity: 1, UnitPriceCents: 200},
		},
	})
	require.NoError(t, err)

	_, err = service.ReorderLineItems(ctx, created.Id, []int64{created.LineItems[0].Id})
	assert.Error(t, err)

	updated, err := service.ReorderLineItems(ctx, created.Id,
		[]int64{created.LineItems[1].Id, created.LineItems[0].Id})
	require.NoError(t, err)
	assert.Equal(t, "Labor", updated.LineItems[0].Description)
	assert.Equal(t, 0, updated.LineItems[0].Position)
}

func TestDeleteLineItem(t *testing.T) {
	service := NewService(NewStubRepository())
	ctx := userContext()

	created, err := service.Create(ctx, Estimate{
		ProjectId: 10,
		LineItems: []LineItem{
			{Description: "Lumber", Quantity: 1, UnitPriceCents: 100},
			{Description: "Labor", Quantity: 1, UnitPriceCents: 200},
		},
	})
	require.NoError(t, err)

	updated, err := service.DeleteLineItem(ctx, created.Id, created.LineItems[0].Id)

	require.NoError(t, err)
	require.Len(t, updated.LineItems, 1)
	assert.Equal(t, "Labor", updated.LineItems[0].Description)
	assert.Equal(t, int64(200), updated.Totals().SubtotalCents)
}
