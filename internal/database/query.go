package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is implemented by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Exists reports whether query returns at least one row.
func Exists(ctx context.Context, q Querier, query string, args ...any) (bool, error) {
	var exists bool
	if err := q.QueryRow(ctx, "SELECT EXISTS ("+query+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("could not check existence: %w", err)
	}
	return exists, nil
}

// BeginRead starts a read-only snapshot so a parent check and the listing
// below it observe the same committed state.
func BeginRead(ctx context.Context, db *pgxpool.Pool) (pgx.Tx, error) {
	return db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
}

// Ownership checks shared by the nested resources. Each takes the ids of the
// chain from the leaf up to the user.
const (
	OwnedUser     = `SELECT 1 FROM users WHERE user_id = $1`
	OwnedBudget   = `SELECT 1 FROM budget WHERE budget_id = $1 AND user_id = $2`
	OwnedGroup    = `SELECT 1 FROM budget_group g JOIN budget b ON b.budget_id = g.budget_id WHERE g.group_id = $1 AND g.budget_id = $2 AND b.user_id = $3`
	OwnedCategory = `SELECT 1 FROM category c JOIN budget b ON b.budget_id = c.budget_id WHERE c.category_id = $1 AND c.budget_id = $2 AND b.user_id = $3`
)
