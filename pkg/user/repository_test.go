package user

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timebudget/timebudget/internal/test_utils"
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

	// when
	created, err := repo.Create(ctx, User{Username: "alice", Email: "alice@example.com", CreatedAt: now})
	require.NoError(t, err)

	// then
	stored, err := repo.Get(ctx, created.Id)
	require.NoError(t, err)
	assert.Equal(t, "alice", stored.Username)
	assert.Equal(t, "alice@example.com", stored.Email)
	assert.True(t, now.Equal(stored.CreatedAt))
}

func TestRepositoryImpl_ListMostRecentFirst(t *testing.T) {
	db := testDB.Open(t)
	repo := NewRepository(db)
	first, _ := repo.Create(ctx, User{Username: "first", Email: "first@example.com", CreatedAt: now})
	second, _ := repo.Create(ctx, User{Username: "second", Email: "second@example.com", CreatedAt: now})

	// when
	users, err := repo.List(ctx)

	// then
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, second.Id, users[0].Id)
	assert.Equal(t, first.Id, users[1].Id)
}

func TestRepositoryImpl_Update(t *testing.T) {
	db := testDB.Open(t)
	repo := NewRepository(db)
	created, _ := repo.Create(ctx, User{Username: "alice", Email: "alice@example.com", CreatedAt: now})

	updated, err := repo.Update(ctx, User{Id: created.Id, Username: "alicia", Email: "alicia@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "alicia", updated.Username)
	assert.True(t, now.Equal(updated.CreatedAt))

	_, err = repo.Update(ctx, User{Id: created.Id + 100, Username: "x", Email: "y"})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepositoryImpl_DeleteCascades(t *testing.T) {
	db := testDB.Open(t)
	repo := NewRepository(db)
	userId := test_utils.InsertUser(t, db)
	otherId := test_utils.InsertUser(t, db)
	budgetId := test_utils.InsertBudget(t, db, userId)
	categoryId := test_utils.InsertCategory(t, db, budgetId, 0)
	test_utils.InsertTransaction(t, db, categoryId, 600)
	_, err := db.Exec(ctx, `INSERT INTO authorization_link (authorizer_id, authorized_id) VALUES ($1, $2), ($2, $1)`, userId, otherId)
	require.NoError(t, err)

	// when
	err = repo.Delete(ctx, userId)

	// then
	require.NoError(t, err)
	assert.Equal(t, 0, test_utils.CountRows(t, db, "budget", "budget_id", budgetId))
	assert.Equal(t, 0, test_utils.CountRows(t, db, "category", "category_id", categoryId))
	assert.Equal(t, 0, test_utils.CountRows(t, db, "category_transaction", "category_id", categoryId))
	assert.Equal(t, 0, test_utils.CountRows(t, db, "authorization_link", "authorizer_id", userId))
	assert.Equal(t, 0, test_utils.CountRows(t, db, "authorization_link", "authorized_id", userId))
	assert.Equal(t, 1, test_utils.CountRows(t, db, "users", "user_id", otherId))

	assert.ErrorIs(t, repo.Delete(ctx, userId), ErrUserNotFound)
}
