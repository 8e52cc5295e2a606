package test_utils

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// counter provides unique names across fixtures within a test run.
var counter atomic.Int64

func nextId() int64 {
	return counter.Add(1)
}

// InsertUser stores a user row directly and returns its id.
func InsertUser(t *testing.T, db *pgxpool.Pool) int {
	t.Helper()
	n := nextId()
	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO users (username, email) VALUES ($1, $2) RETURNING user_id`,
		fmt.Sprintf("user%d", n), fmt.Sprintf("user%d@test.com", n),
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func InsertBudget(t *testing.T, db *pgxpool.Pool, userId int) int {
	t.Helper()
	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO budget (budget_name, user_id) VALUES ($1, $2) RETURNING budget_id`,
		fmt.Sprintf("budget%d", nextId()), userId,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func InsertGroup(t *testing.T, db *pgxpool.Pool, budgetId int) int {
	t.Helper()
	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO budget_group (group_name, budget_id) VALUES ($1, $2) RETURNING group_id`,
		fmt.Sprintf("group%d", nextId()), budgetId,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// InsertCategory stores a category with one hour allocated; groupId 0 leaves it ungrouped.
func InsertCategory(t *testing.T, db *pgxpool.Pool, budgetId int, groupId int) int {
	t.Helper()
	var group *int
	if groupId != 0 {
		group = &groupId
	}
	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO category (category_name, time_allocated_sec, budget_id, group_id) VALUES ($1, 3600, $2, $3)
			RETURNING category_id`,
		fmt.Sprintf("category%d", nextId()), budgetId, group,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

func InsertTransaction(t *testing.T, db *pgxpool.Pool, categoryId int, periodSec int64) int {
	t.Helper()
	var id int
	err := db.QueryRow(context.Background(),
		`INSERT INTO category_transaction (transaction_name, period_sec, category_id) VALUES ($1, $2, $3)
			RETURNING transaction_id`,
		fmt.Sprintf("transaction%d", nextId()), periodSec, categoryId,
	).Scan(&id)
	require.NoError(t, err)
	return id
}

// CountRows returns the number of rows of table matching the given column value.
func CountRows(t *testing.T, db *pgxpool.Pool, table string, column string, value int) int {
	t.Helper()
	var count int
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = $1", table, column)
	require.NoError(t, db.QueryRow(context.Background(), query, value).Scan(&count))
	return count
}
