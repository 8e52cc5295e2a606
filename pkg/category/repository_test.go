package category

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timebudget/timebudget/internal/apperrors"
	"github.com/timebudget/timebudget/internal/test_utils"
	"github.com/timebudget/timebudget/pkg/budget"
	"github.com/timebudget/timebudget/pkg/group"
)

var testDB *test_utils.TestDB

func TestMain(m *testing.M) {
	testDB = test_utils.MaybeStartPostgres()
	code := m.Run()
	testDB.Terminate()
	os.Exit(code)
}

func TestRepositoryImpl_CreateAndGet(t *testing.T) {
	db := testDB.Open(t)
	repo := NewRepository(db)
	owner := test_utils.InsertUser(t, db)
	budgetId := test_utils.InsertBudget(t, db, owner)
	groupId := test_utils.InsertGroup(t, db, budgetId)

	created, err := repo.Create(ctx, owner, Category{Name: "Fiction", TimeAllocated: time.Hour, BudgetId: budgetId, GroupId: &groupId})
	require.NoError(t, err)

	stored, err := repo.Get(ctx, owner, budgetId, created.Id, false)
	require.NoError(t, err)
	assert.Equal(t, created, stored)
	assert.Nil(t, stored.TimeUsed)
	assert.Equal(t, groupId, *stored.GroupId)
}

func TestRepositoryImpl_UsedTimeFollowsTransactions(t *testing.T) {
	db := testDB.Open(t)
	repo := NewRepository(db)
	owner := test_utils.InsertUser(t, db)
	budgetId := test_utils.InsertBudget(t, db, owner)
	categoryId := test_utils.InsertCategory(t, db, budgetId, 0)
	otherCategory := test_utils.InsertCategory(t, db, budgetId, 0)
	test_utils.InsertTransaction(t, db, otherCategory, 7200)

	usedTime := func() time.Duration {
		t.Helper()
		category, err := repo.Get(ctx, owner, budgetId, categoryId, true)
		require.NoError(t, err)
		require.NotNil(t, category.TimeUsed)
		return *category.TimeUsed
	}

	assert.Equal(t, time.Duration(0), usedTime())

	first := test_utils.InsertTransaction(t, db, categoryId, 600)
	test_utils.InsertTransaction(t, db, categoryId, 900)
	assert.Equal(t, 1500*time.Second, usedTime())

	_, err := db.Exec(ctx, `DELETE FROM category_transaction WHERE transaction_id = $1`, first)
	require.NoError(t, err)
	assert.Equal(t, 900*time.Second, usedTime())

	categories, err := repo.List(ctx, owner, budgetId, true)
	require.NoError(t, err)
	require.Len(t, categories, 2)
	assert.Equal(t, 900*time.Second, *categories[0].TimeUsed)
	assert.Equal(t, 2*time.Hour, *categories[1].TimeUsed)
}

func TestRepositoryImpl_GroupRules(t *testing.T) {
	db := testDB.Open(t)
	repo := NewRepository(db)
	owner := test_utils.InsertUser(t, db)
	budgetId := test_utils.InsertBudget(t, db, owner)
	otherBudget := test_utils.InsertBudget(t, db, owner)
	groupId := test_utils.InsertGroup(t, db, budgetId)
	foreignGroup := test_utils.InsertGroup(t, db, otherBudget)

	_, err := repo.Create(ctx, owner, Category{Name: "Fiction", BudgetId: budgetId, GroupId: &foreignGroup})
	assert.ErrorIs(t, err, ErrGroupNotInBudget)

	grouped, err := repo.Create(ctx, owner, Category{Name: "Fiction", BudgetId: budgetId, GroupId: &groupId})
	require.NoError(t, err)
	_, err = repo.Create(ctx, owner, Category{Name: "Chores", BudgetId: budgetId})
	require.NoError(t, err)

	inGroup, err := repo.ListByGroup(ctx, owner, budgetId, groupId, false)
	require.NoError(t, err)
	require.Len(t, inGroup, 1)
	assert.Equal(t, grouped.Id, inGroup[0].Id)

	_, err = repo.ListByGroup(ctx, owner, otherBudget, groupId, false)
	assert.ErrorIs(t, err, group.ErrGroupNotFound)

	ungrouped, err := repo.Update(ctx, owner, Category{Id: grouped.Id, Name: "Fiction", TimeAllocated: time.Minute, BudgetId: budgetId})
	require.NoError(t, err)
	assert.Nil(t, ungrouped.GroupId)
	assert.Equal(t, time.Minute, ungrouped.TimeAllocated)
}

func TestRepositoryImpl_ForeignChain(t *testing.T) {
	db := testDB.Open(t)
	repo := NewRepository(db)
	owner := test_utils.InsertUser(t, db)
	stranger := test_utils.InsertUser(t, db)
	budgetId := test_utils.InsertBudget(t, db, owner)
	categoryId := test_utils.InsertCategory(t, db, budgetId, 0)

	_, err := repo.Create(ctx, stranger, Category{Name: "Intruder", BudgetId: budgetId})
	assert.ErrorIs(t, err, budget.ErrBudgetNotFound)

	_, err = repo.Get(ctx, stranger, budgetId, categoryId, true)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = repo.List(ctx, stranger, budgetId, false)
	assert.ErrorIs(t, err, budget.ErrBudgetNotFound)

	_, err = repo.Update(ctx, stranger, Category{Id: categoryId, Name: "Mine", BudgetId: budgetId})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, stranger, budgetId, categoryId), ErrCategoryNotFound)
}

func TestRepositoryImpl_NegativeAllocationRejectedByStore(t *testing.T) {
	db := testDB.Open(t)
	repo := NewRepository(db)
	owner := test_utils.InsertUser(t, db)
	budgetId := test_utils.InsertBudget(t, db, owner)

	_, err := repo.Create(ctx, owner, Category{Name: "Broken", TimeAllocated: -time.Second, BudgetId: budgetId})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Equal(t, 0, test_utils.CountRows(t, db, "category", "budget_id", budgetId))
}

func TestRepositoryImpl_DeleteCascadesTransactions(t *testing.T) {
	db := testDB.Open(t)
	repo := NewRepository(db)
	owner := test_utils.InsertUser(t, db)
	budgetId := test_utils.InsertBudget(t, db, owner)
	categoryId := test_utils.InsertCategory(t, db, budgetId, 0)
	test_utils.InsertTransaction(t, db, categoryId, 60)

	require.NoError(t, repo.Delete(ctx, owner, budgetId, categoryId))

	assert.Equal(t, 0, test_utils.CountRows(t, db, "category_transaction", "category_id", categoryId))
	_, err := repo.Get(ctx, owner, budgetId, categoryId, false)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestRepositoryImpl_CreateRacingBudgetDelete(t *testing.T) {
	db := testDB.Open(t)
	repo := NewRepository(db)
	owner := test_utils.InsertUser(t, db)
	budgetId := test_utils.InsertBudget(t, db, owner)
	existing := test_utils.InsertCategory(t, db, budgetId, 0)

	// given a budget delete that has not committed yet
	deleteTx, err := db.Begin(ctx)
	require.NoError(t, err)
	defer deleteTx.Rollback(ctx)
	_, err = deleteTx.Exec(ctx, `DELETE FROM budget WHERE budget_id = $1`, budgetId)
	require.NoError(t, err)

	// when a category is created under it concurrently
	created := make(chan error, 1)
	go func() {
		_, err := repo.Create(ctx, owner, Category{Name: "Late", TimeAllocated: time.Hour, BudgetId: budgetId})
		created <- err
	}()
	require.Eventually(t, func() bool {
		var waiting int
		err := db.QueryRow(ctx, `SELECT COUNT(*) FROM pg_locks WHERE NOT granted`).Scan(&waiting)
		return err == nil && waiting > 0
	}, 10*time.Second, 20*time.Millisecond, "create should wait for the delete")
	require.NoError(t, deleteTx.Commit(ctx))

	// then
	select {
	case err := <-created:
		assert.ErrorIs(t, err, budget.ErrBudgetNotFound)
	case <-time.After(10 * time.Second):
		t.Fatal("create did not finish after the delete committed")
	}
	assert.Zero(t, test_utils.CountRows(t, db, "category", "budget_id", budgetId))
	_, err = repo.Get(ctx, owner, budgetId, existing, true)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
