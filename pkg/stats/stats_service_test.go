package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timebudget/timebudget/internal/event_bus"
	"github.com/timebudget/timebudget/pkg/budget"
	"github.com/timebudget/timebudget/pkg/category"
	"github.com/timebudget/timebudget/pkg/group"
)

var ctx = context.Background()

func intPtr(i int) *int {
	return &i
}

// setupService prepares budget 1 of user 1 with a "Reading" group and
// three categories: Fiction (grouped, 1h, 25m used), Essays (grouped, 30m,
// 40m used) and Chores (ungrouped, 2h, unused).
func setupService(t *testing.T) *StatsServiceImpl {
	t.Helper()
	bus := event_bus.NewEventBus()

	groupRepo := group.NewRepositoryStub()
	groupRepo.AddBudget(1, 1)
	groups := group.NewService(groupRepo, bus)
	reading, err := groups.Create(ctx, 1, group.Group{Name: "Reading", BudgetId: 1})
	require.NoError(t, err)

	categoryRepo := category.NewRepositoryStub()
	categoryRepo.AddBudget(1, 1)
	categoryRepo.AddGroup(1, reading.Id)
	categories := category.NewService(categoryRepo, bus)
	fiction, err := categories.Create(ctx, 1, category.Category{
		Name: "Fiction", TimeAllocated: time.Hour, BudgetId: 1, GroupId: intPtr(reading.Id),
	})
	require.NoError(t, err)
	essays, err := categories.Create(ctx, 1, category.Category{
		Name: "Essays", TimeAllocated: 30 * time.Minute, BudgetId: 1, GroupId: intPtr(reading.Id),
	})
	require.NoError(t, err)
	_, err = categories.Create(ctx, 1, category.Category{Name: "Chores", TimeAllocated: 2 * time.Hour, BudgetId: 1})
	require.NoError(t, err)

	categoryRepo.AddUsage(fiction.Id, 10*time.Minute)
	categoryRepo.AddUsage(fiction.Id, 15*time.Minute)
	categoryRepo.AddUsage(essays.Id, 40*time.Minute)

	return NewStatsServiceImpl(categories, groups)
}

func TestStatsServiceImpl_BudgetUsage(t *testing.T) {
	t.Run("should sum usage per category", func(t *testing.T) {
		service := setupService(t)

		// when
		summary, err := service.BudgetUsage(ctx, 1, 1)

		// then
		require.NoError(t, err)
		require.Len(t, summary.Categories, 3)
		assert.Equal(t, 1, summary.BudgetId)

		fiction := summary.Categories[0]
		assert.Equal(t, "Fiction", fiction.CategoryName)
		assert.Equal(t, "Reading", fiction.GroupName)
		assert.Equal(t, 25*time.Minute, fiction.TimeUsed)
		assert.Equal(t, 35*time.Minute, fiction.Remaining)

		essays := summary.Categories[1]
		assert.Equal(t, -10*time.Minute, essays.Remaining)

		chores := summary.Categories[2]
		assert.Nil(t, chores.GroupId)
		assert.Empty(t, chores.GroupName)
		assert.Equal(t, time.Duration(0), chores.TimeUsed)
		assert.Equal(t, 2*time.Hour, chores.Remaining)

		assert.Equal(t, 3*time.Hour+30*time.Minute, summary.TotalAllocated)
		assert.Equal(t, 65*time.Minute, summary.TotalUsed)
		assert.Equal(t, 2*time.Hour+25*time.Minute, summary.TotalRemaining)
	})

	t.Run("should report empty budget", func(t *testing.T) {
		bus := event_bus.NewEventBus()
		groupRepo := group.NewRepositoryStub()
		groupRepo.AddBudget(1, 1)
		categoryRepo := category.NewRepositoryStub()
		categoryRepo.AddBudget(1, 1)
		service := NewStatsServiceImpl(category.NewService(categoryRepo, bus), group.NewService(groupRepo, bus))

		summary, err := service.BudgetUsage(ctx, 1, 1)

		require.NoError(t, err)
		assert.Empty(t, summary.Categories)
		assert.Equal(t, time.Duration(0), summary.TotalRemaining)
	})

	t.Run("should not report budget of another user", func(t *testing.T) {
		service := setupService(t)

		_, err := service.BudgetUsage(ctx, 2, 1)

		assert.ErrorIs(t, err, budget.ErrBudgetNotFound)
	})
}
