package group

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/database"
	"github.com/timebudget/timebudget/pkg/budget"
)

type Repository interface {
	Create(ctx context.Context, userId int, group Group) (Group, error)
	Get(ctx context.Context, userId, budgetId, groupId int) (Group, error)
	List(ctx context.Context, userId, budgetId int) ([]Group, error)
	Update(ctx context.Context, userId int, group Group) (Group, error)
	Delete(ctx context.Context, userId, budgetId, groupId int) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

var constraints = database.Constraints{
	"budget_group_budget_fk": budget.ErrBudgetNotFound,
}

func scanGroup(row pgx.Row) (Group, error) {
	var group Group
	err := row.Scan(&group.Id, &group.Name, &group.BudgetId)
	return group, err
}

func (r *RepositoryImpl) Create(ctx context.Context, userId int, group Group) (Group, error) {
	query := `INSERT INTO budget_group (group_name, budget_id)
				SELECT $1, budget_id FROM budget WHERE budget_id = $2 AND user_id = $3
				RETURNING group_id, group_name, budget_id`
	created, err := scanGroup(r.db.QueryRow(ctx, query, group.Name, group.BudgetId, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Group{}, budget.ErrBudgetNotFound
	} else if err != nil {
		err = database.TranslateError(err, constraints)
		log.Errorf("failed to create group: %v", err)
		return Group{}, err
	}
	return created, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId, budgetId, groupId int) (Group, error) {
	query := `SELECT g.group_id, g.group_name, g.budget_id
				FROM budget_group g JOIN budget b ON b.budget_id = g.budget_id
				WHERE g.group_id = $1 AND g.budget_id = $2 AND b.user_id = $3`
	group, err := scanGroup(r.db.QueryRow(ctx, query, groupId, budgetId, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Group{}, ErrGroupNotFound
	} else if err != nil {
		log.Errorf("failed to get group: %v", err)
		return Group{}, err
	}
	return group, nil
}

func (r *RepositoryImpl) List(ctx context.Context, userId, budgetId int) ([]Group, error) {
	tx, err := database.BeginRead(ctx, r.db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	exists, err := database.Exists(ctx, tx, database.OwnedBudget, budgetId, userId)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	if !exists {
		return nil, budget.ErrBudgetNotFound
	}

	rows, err := tx.Query(ctx,
		`SELECT group_id, group_name, budget_id FROM budget_group WHERE budget_id = $1 ORDER BY group_id`, budgetId)
	if err != nil {
		err := fmt.Errorf("could not query groups: %w", err)
		log.Error(err)
		return nil, err
	}
	groups, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Group, error) {
		return scanGroup(row)
	})
	if err != nil {
		err := fmt.Errorf("could not scan groups: %w", err)
		log.Error(err)
		return nil, err
	}
	return groups, tx.Commit(ctx)
}

func (r *RepositoryImpl) Update(ctx context.Context, userId int, group Group) (Group, error) {
	query := `UPDATE budget_group g SET group_name = $1
				FROM budget b
				WHERE g.group_id = $2 AND g.budget_id = $3 AND b.budget_id = g.budget_id AND b.user_id = $4
				RETURNING g.group_id, g.group_name, g.budget_id`
	updated, err := scanGroup(r.db.QueryRow(ctx, query, group.Name, group.Id, group.BudgetId, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Group{}, ErrGroupNotFound
	} else if err != nil {
		err = database.TranslateError(err, constraints)
		log.Errorf("failed to update group: %v", err)
		return Group{}, err
	}
	return updated, nil
}

// Delete removes the group. Its categories stay in the budget, ungrouped.
func (r *RepositoryImpl) Delete(ctx context.Context, userId, budgetId, groupId int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM budget_group g USING budget b
				WHERE g.group_id = $1 AND g.budget_id = $2 AND b.budget_id = g.budget_id AND b.user_id = $3`,
		groupId, budgetId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete group: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrGroupNotFound
	}
	return tx.Commit(ctx)
}
