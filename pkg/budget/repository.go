package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/database"
	"github.com/timebudget/timebudget/pkg/user"
)

type Repository interface {
	Create(ctx context.Context, budget Budget) (Budget, error)
	Get(ctx context.Context, userId, budgetId int) (Budget, error)
	List(ctx context.Context, userId int) ([]Budget, error)
	Update(ctx context.Context, budget Budget) (Budget, error)
	Delete(ctx context.Context, userId, budgetId int) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

var constraints = database.Constraints{
	"budget_user_fk": user.ErrUserNotFound,
}

const budgetColumns = "budget_id, budget_name, user_id"

func scanBudget(row pgx.Row) (Budget, error) {
	var budget Budget
	err := row.Scan(&budget.Id, &budget.Name, &budget.UserId)
	return budget, err
}

func (r *RepositoryImpl) Create(ctx context.Context, budget Budget) (Budget, error) {
	query := `INSERT INTO budget (budget_name, user_id)
				SELECT $1, user_id FROM users WHERE user_id = $2
				RETURNING ` + budgetColumns
	created, err := scanBudget(r.db.QueryRow(ctx, query, budget.Name, budget.UserId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Budget{}, user.ErrUserNotFound
	} else if err != nil {
		err = database.TranslateError(err, constraints)
		log.Errorf("failed to create budget: %v", err)
		return Budget{}, err
	}
	return created, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId, budgetId int) (Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budget WHERE budget_id = $1 AND user_id = $2`
	budget, err := scanBudget(r.db.QueryRow(ctx, query, budgetId, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Budget{}, ErrBudgetNotFound
	} else if err != nil {
		log.Errorf("failed to get budget: %v", err)
		return Budget{}, err
	}
	return budget, nil
}

func (r *RepositoryImpl) List(ctx context.Context, userId int) ([]Budget, error) {
	tx, err := database.BeginRead(ctx, r.db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	exists, err := database.Exists(ctx, tx, database.OwnedUser, userId)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	if !exists {
		return nil, user.ErrUserNotFound
	}

	rows, err := tx.Query(ctx, `SELECT `+budgetColumns+` FROM budget WHERE user_id = $1 ORDER BY budget_id`, userId)
	if err != nil {
		err := fmt.Errorf("could not query budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	budgets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Budget, error) {
		return scanBudget(row)
	})
	if err != nil {
		err := fmt.Errorf("could not scan budgets: %w", err)
		log.Error(err)
		return nil, err
	}
	return budgets, tx.Commit(ctx)
}

func (r *RepositoryImpl) Update(ctx context.Context, budget Budget) (Budget, error) {
	query := `UPDATE budget SET budget_name = $1 WHERE budget_id = $2 AND user_id = $3 RETURNING ` + budgetColumns
	updated, err := scanBudget(r.db.QueryRow(ctx, query, budget.Name, budget.Id, budget.UserId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Budget{}, ErrBudgetNotFound
	} else if err != nil {
		err = database.TranslateError(err, constraints)
		log.Errorf("failed to update budget: %v", err)
		return Budget{}, err
	}
	return updated, nil
}

// Delete removes the budget; groups, categories and their transactions go with it.
func (r *RepositoryImpl) Delete(ctx context.Context, userId, budgetId int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM budget WHERE budget_id = $1 AND user_id = $2`, budgetId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete budget: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrBudgetNotFound
	}
	return tx.Commit(ctx)
}
