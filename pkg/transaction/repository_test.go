package transaction

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timebudget/timebudget/internal/test_utils"
	"github.com/timebudget/timebudget/pkg/category"
)

var testDB *test_utils.TestDB

func TestMain(m *testing.M) {
	testDB = test_utils.MaybeStartPostgres()
	code := m.Run()
	testDB.Terminate()
	os.Exit(code)
}

func TestRepositoryImpl_CreateGetUpdate(t *testing.T) {
	db := testDB.Open(t)
	repo := NewRepository(db)
	owner := test_utils.InsertUser(t, db)
	budgetId := test_utils.InsertBudget(t, db, owner)
	categoryId := test_utils.InsertCategory(t, db, budgetId, 0)

	created, err := repo.Create(ctx, owner, budgetId, Transaction{Name: "Dune", Period: 10 * time.Minute, DateTime: now, CategoryId: categoryId})
	require.NoError(t, err)
	assert.NotZero(t, created.Id)
	assert.True(t, now.Equal(created.DateTime))

	stored, err := repo.Get(ctx, owner, budgetId, categoryId, created.Id)
	require.NoError(t, err)
	assert.Equal(t, created, stored)

	updated, err := repo.Update(ctx, owner, budgetId, Transaction{Id: created.Id, Name: "Dune II", Period: time.Minute, CategoryId: categoryId})
	require.NoError(t, err)
	assert.Equal(t, "Dune II", updated.Name)
	assert.Equal(t, time.Minute, updated.Period)
	assert.True(t, now.Equal(updated.DateTime))

	later := now.Add(time.Hour)
	updated, err = repo.Update(ctx, owner, budgetId, Transaction{Id: created.Id, Name: "Dune II", DateTime: later, CategoryId: categoryId})
	require.NoError(t, err)
	assert.True(t, later.Equal(updated.DateTime))
}

func TestRepositoryImpl_ForeignChain(t *testing.T) {
	db := testDB.Open(t)
	repo := NewRepository(db)
	owner := test_utils.InsertUser(t, db)
	stranger := test_utils.InsertUser(t, db)
	budgetId := test_utils.InsertBudget(t, db, owner)
	categoryId := test_utils.InsertCategory(t, db, budgetId, 0)
	otherCategory := test_utils.InsertCategory(t, db, budgetId, 0)
	transactionId := test_utils.InsertTransaction(t, db, categoryId, 60)

	_, err := repo.Create(ctx, stranger, budgetId, Transaction{Name: "Intruder", DateTime: now, CategoryId: categoryId})
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)

	_, err = repo.Get(ctx, owner, budgetId, otherCategory, transactionId)
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	_, err = repo.Get(ctx, stranger, budgetId, categoryId, transactionId)
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	_, err = repo.List(ctx, stranger, budgetId, categoryId)
	assert.ErrorIs(t, err, category.ErrCategoryNotFound)

	_, err = repo.Update(ctx, owner, budgetId, Transaction{Id: transactionId, Name: "Moved", CategoryId: otherCategory})
	assert.ErrorIs(t, err, ErrTransactionNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, stranger, budgetId, categoryId, transactionId), ErrTransactionNotFound)
	assert.Equal(t, 1, test_utils.CountRows(t, db, "category_transaction", "transaction_id", transactionId))
}

func TestRepositoryImpl_ListAndDelete(t *testing.T) {
	db := testDB.Open(t)
	repo := NewRepository(db)
	owner := test_utils.InsertUser(t, db)
	budgetId := test_utils.InsertBudget(t, db, owner)
	categoryId := test_utils.InsertCategory(t, db, budgetId, 0)

	empty, err := repo.List(ctx, owner, budgetId, categoryId)
	require.NoError(t, err)
	assert.Empty(t, empty)

	first := test_utils.InsertTransaction(t, db, categoryId, 600)
	second := test_utils.InsertTransaction(t, db, categoryId, 900)

	transactions, err := repo.List(ctx, owner, budgetId, categoryId)
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, first, transactions[0].Id)
	assert.Equal(t, second, transactions[1].Id)
	assert.False(t, transactions[0].DateTime.IsZero())

	require.NoError(t, repo.Delete(ctx, owner, budgetId, categoryId, first))
	_, err = repo.Get(ctx, owner, budgetId, categoryId, first)
	assert.ErrorIs(t, err, ErrTransactionNotFound)
}
