package group

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timebudget/timebudget/internal/test_utils"
	"github.com/timebudget/timebudget/pkg/budget"
)

var testDB *test_utils.TestDB

func TestMain(m *testing.M) {
	testDB = test_utils.MaybeStartPostgres()
	code := m.Run()
	testDB.Terminate()
	os.Exit(code)
}

func TestRepositoryImpl_CreateGetList(t *testing.T) {
	db := testDB.Open(t)
	repo := NewRepository(db)
	owner := test_utils.InsertUser(t, db)
	budgetId := test_utils.InsertBudget(t, db, owner)

	created, err := repo.Create(ctx, owner, Group{Name: "Reading", BudgetId: budgetId})
	require.NoError(t, err)

	stored, err := repo.Get(ctx, owner, budgetId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, created, stored)

	groups, err := repo.List(ctx, owner, budgetId)
	require.NoError(t, err)
	assert.Equal(t, []Group{created}, groups)
}

func TestRepositoryImpl_ForeignChain(t *testing.T) {
	db := testDB.Open(t)
	repo := NewRepository(db)
	owner := test_utils.InsertUser(t, db)
	stranger := test_utils.InsertUser(t, db)
	budgetId := test_utils.InsertBudget(t, db, owner)
	otherBudget := test_utils.InsertBudget(t, db, owner)
	groupId := test_utils.InsertGroup(t, db, budgetId)

	_, err := repo.Create(ctx, stranger, Group{Name: "Intruder", BudgetId: budgetId})
	assert.ErrorIs(t, err, budget.ErrBudgetNotFound)

	_, err = repo.Get(ctx, stranger, budgetId, groupId)
	assert.ErrorIs(t, err, ErrGroupNotFound)

	_, err = repo.Get(ctx, owner, otherBudget, groupId)
	assert.ErrorIs(t, err, ErrGroupNotFound)

	_, err = repo.Update(ctx, stranger, Group{Id: groupId, Name: "Renamed", BudgetId: budgetId})
	assert.ErrorIs(t, err, ErrGroupNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, owner, otherBudget, groupId), ErrGroupNotFound)

	_, err = repo.List(ctx, stranger, budgetId)
	assert.ErrorIs(t, err, budget.ErrBudgetNotFound)
}

func TestRepositoryImpl_DeleteUngroupsCategories(t *testing.T) {
	db := testDB.Open(t)
	repo := NewRepository(db)
	owner := test_utils.InsertUser(t, db)
	budgetId := test_utils.InsertBudget(t, db, owner)
	groupId := test_utils.InsertGroup(t, db, budgetId)
	categoryId := test_utils.InsertCategory(t, db, budgetId, groupId)

	// when
	err := repo.Delete(ctx, owner, budgetId, groupId)

	// then
	require.NoError(t, err)
	var group *int
	require.NoError(t, db.QueryRow(ctx, `SELECT group_id FROM category WHERE category_id = $1`, categoryId).Scan(&group))
	assert.Nil(t, group)
}
