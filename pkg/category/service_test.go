package category

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timebudget/timebudget/internal/apperrors"
	"github.com/timebudget/timebudget/internal/event_bus"
	"github.com/timebudget/timebudget/pkg/budget"
	"github.com/timebudget/timebudget/pkg/group"
)

var ctx = context.Background()

const (
	userId   = 1
	budgetId = 1
	groupId  = 1
)

func setupService(t *testing.T) (*ServiceImpl, *RepositoryStub) {
	t.Helper()
	repo := NewRepositoryStub()
	repo.AddBudget(userId, budgetId)
	repo.AddBudget(2, 2)
	repo.AddGroup(budgetId, groupId)
	repo.AddGroup(2, 2)
	return NewService(repo, event_bus.NewEventBus()), repo
}

func intPtr(i int) *int {
	return &i
}

func TestServiceImpl_Create(t *testing.T) {
	t.Run("should create grouped category", func(t *testing.T) {
		service, _ := setupService(t)

		// when
		created, err := service.Create(ctx, userId, Category{
			Name: "Fiction", TimeAllocated: time.Hour, BudgetId: budgetId, GroupId: intPtr(groupId),
		})

		// then
		require.NoError(t, err)
		stored, err := service.Get(ctx, userId, budgetId, created.Id, false)
		require.NoError(t, err)
		assert.Equal(t, "Fiction", stored.Name)
		assert.Equal(t, time.Hour, stored.TimeAllocated)
		assert.Equal(t, groupId, *stored.GroupId)
		assert.Nil(t, stored.TimeUsed)
	})

	t.Run("should accept zero allocation", func(t *testing.T) {
		service, _ := setupService(t)

		_, err := service.Create(ctx, userId, Category{Name: "Idle", BudgetId: budgetId})

		assert.NoError(t, err)
	})

	t.Run("should reject negative allocation", func(t *testing.T) {
		service, repo := setupService(t)

		_, err := service.Create(ctx, userId, Category{Name: "Fiction", TimeAllocated: -time.Second, BudgetId: budgetId})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
		categories, _ := repo.List(ctx, userId, budgetId, false)
		assert.Empty(t, categories)
	})

	t.Run("should reject group of another budget", func(t *testing.T) {
		service, _ := setupService(t)

		_, err := service.Create(ctx, userId, Category{Name: "Fiction", BudgetId: budgetId, GroupId: intPtr(2)})

		assert.ErrorIs(t, err, ErrGroupNotInBudget)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("should fail for budget of another user", func(t *testing.T) {
		service, _ := setupService(t)

		_, err := service.Create(ctx, userId, Category{Name: "Fiction", BudgetId: 2})

		assert.ErrorIs(t, err, budget.ErrBudgetNotFound)
	})
}

func TestServiceImpl_UsedTime(t *testing.T) {
	service, repo := setupService(t)
	created, err := service.Create(ctx, userId, Category{Name: "Fiction", TimeAllocated: time.Hour, BudgetId: budgetId})
	require.NoError(t, err)

	used, err := service.UsedTime(ctx, userId, budgetId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, time.Duration(0), used)

	repo.AddUsage(created.Id, 10*time.Minute)
	repo.AddUsage(created.Id, 15*time.Minute)

	used, err = service.UsedTime(ctx, userId, budgetId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, 25*time.Minute, used)

	detailed, err := service.Get(ctx, userId, budgetId, created.Id, true)
	require.NoError(t, err)
	assert.Equal(t, 25*time.Minute, *detailed.TimeUsed)
	assert.Equal(t, 35*time.Minute, detailed.Remaining())

	_, err = service.UsedTime(ctx, 2, budgetId, created.Id)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestServiceImpl_ListByGroup(t *testing.T) {
	service, _ := setupService(t)
	grouped, _ := service.Create(ctx, userId, Category{Name: "Fiction", BudgetId: budgetId, GroupId: intPtr(groupId)})
	ungrouped, _ := service.Create(ctx, userId, Category{Name: "Chores", BudgetId: budgetId})

	inGroup, err := service.ListByGroup(ctx, userId, budgetId, groupId, false)
	require.NoError(t, err)
	require.Len(t, inGroup, 1)
	assert.Equal(t, grouped.Id, inGroup[0].Id)

	all, err := service.List(ctx, userId, budgetId, true)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, ungrouped.Id, all[1].Id)
	assert.NotNil(t, all[1].TimeUsed)

	_, err = service.ListByGroup(ctx, userId, budgetId, 2, false)
	assert.ErrorIs(t, err, group.ErrGroupNotFound)
}

func TestServiceImpl_Update(t *testing.T) {
	service, _ := setupService(t)
	created, _ := service.Create(ctx, userId, Category{Name: "Fiction", TimeAllocated: time.Hour, BudgetId: budgetId, GroupId: intPtr(groupId)})

	t.Run("should replace every field including the group", func(t *testing.T) {
		updated, err := service.Update(ctx, userId, Category{Id: created.Id, Name: "Novels", TimeAllocated: 2 * time.Hour, BudgetId: budgetId})

		require.NoError(t, err)
		assert.Equal(t, "Novels", updated.Name)
		assert.Equal(t, 2*time.Hour, updated.TimeAllocated)
		assert.Nil(t, updated.GroupId)
	})

	t.Run("should fail when the category is in another budget", func(t *testing.T) {
		_, err := service.Update(ctx, 2, Category{Id: created.Id, Name: "Novels", BudgetId: 2})

		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("should reject blank name", func(t *testing.T) {
		_, err := service.Update(ctx, userId, Category{Id: created.Id, Name: "", BudgetId: budgetId})

		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}

func TestServiceImpl_Delete(t *testing.T) {
	service, _ := setupService(t)
	created, _ := service.Create(ctx, userId, Category{Name: "Fiction", BudgetId: budgetId})

	assert.ErrorIs(t, service.Delete(ctx, 2, budgetId, created.Id), ErrCategoryNotFound)
	require.NoError(t, service.Delete(ctx, userId, budgetId, created.Id))

	_, err := service.Get(ctx, userId, budgetId, created.Id, false)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
