package category

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/apperrors"
	"github.com/timebudget/timebudget/internal/database"
	"github.com/timebudget/timebudget/pkg/budget"
	"github.com/timebudget/timebudget/pkg/group"
)

type Repository interface {
	Create(ctx context.Context, userId int, category Category) (Category, error)
	Get(ctx context.Context, userId, budgetId, categoryId int, detailed bool) (Category, error)
	List(ctx context.Context, userId, budgetId int, detailed bool) ([]Category, error)
	ListByGroup(ctx context.Context, userId, budgetId, groupId int, detailed bool) ([]Category, error)
	Update(ctx context.Context, userId int, category Category) (Category, error)
	Delete(ctx context.Context, userId, budgetId, categoryId int) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

var constraints = database.Constraints{
	"category_budget_fk":                   budget.ErrBudgetNotFound,
	"category_group_fk":                    ErrGroupNotInBudget,
	"category_time_allocated_non_negative": apperrors.Invalid("time_allocated", "time_allocated must not be negative."),
}

const groupInBudget = `SELECT 1 FROM budget_group WHERE group_id = $1 AND budget_id = $2`

// selectCategories reads categories joined with their budget (aliased b) so
// callers can filter on the owning user. The last column is the time used in
// seconds for detailed reads and NULL otherwise.
func selectCategories(detailed bool) string {
	used := "NULL::bigint"
	if detailed {
		used = `(SELECT COALESCE(SUM(t.period_sec), 0)::bigint
					FROM category_transaction t WHERE t.category_id = c.category_id)`
	}
	return `SELECT c.category_id, c.category_name, c.time_allocated_sec, c.budget_id, c.group_id, ` + used + `
				FROM category c JOIN budget b ON b.budget_id = c.budget_id`
}

func scanCategory(row pgx.Row) (Category, error) {
	var (
		category     Category
		allocatedSec int64
		groupId      *int
		usedSec      *int64
	)
	if err := row.Scan(&category.Id, &category.Name, &allocatedSec, &category.BudgetId, &groupId, &usedSec); err != nil {
		return Category{}, err
	}
	category.TimeAllocated = time.Duration(allocatedSec) * time.Second
	category.GroupId = groupId
	if usedSec != nil {
		used := time.Duration(*usedSec) * time.Second
		category.TimeUsed = &used
	}
	return category, nil
}

func collectCategories(rows pgx.Rows) ([]Category, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Category, error) {
		return scanCategory(row)
	})
}

func seconds(d time.Duration) int64 {
	return int64(d / time.Second)
}

func (r *RepositoryImpl) Create(ctx context.Context, userId int, category Category) (Category, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Category{}, err
	}
	defer tx.Rollback(ctx)

	if err := checkParents(ctx, tx, userId, category); err != nil {
		return Category{}, err
	}

	query := `INSERT INTO category (category_name, time_allocated_sec, budget_id, group_id) VALUES ($1, $2, $3, $4)
				RETURNING category_id, category_name, time_allocated_sec, budget_id, group_id, NULL::bigint`
	created, err := scanCategory(tx.QueryRow(ctx, query,
		category.Name, seconds(category.TimeAllocated), category.BudgetId, category.GroupId))
	if err != nil {
		err = database.TranslateError(err, constraints)
		log.Errorf("failed to create category: %v", err)
		return Category{}, err
	}
	return created, tx.Commit(ctx)
}

// checkParents verifies the budget belongs to the user and the optional group
// belongs to the budget.
func checkParents(ctx context.Context, tx pgx.Tx, userId int, category Category) error {
	owned, err := database.Exists(ctx, tx, database.OwnedBudget, category.BudgetId, userId)
	if err != nil {
		log.Error(err)
		return err
	}
	if !owned {
		return budget.ErrBudgetNotFound
	}
	return checkGroup(ctx, tx, category)
}

func checkGroup(ctx context.Context, tx pgx.Tx, category Category) error {
	if category.GroupId == nil {
		return nil
	}
	inBudget, err := database.Exists(ctx, tx, groupInBudget, *category.GroupId, category.BudgetId)
	if err != nil {
		log.Error(err)
		return err
	}
	if !inBudget {
		return ErrGroupNotInBudget
	}
	return nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId, budgetId, categoryId int, detailed bool) (Category, error) {
	query := selectCategories(detailed) + ` WHERE c.category_id = $1 AND c.budget_id = $2 AND b.user_id = $3`
	category, err := scanCategory(r.db.QueryRow(ctx, query, categoryId, budgetId, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	} else if err != nil {
		log.Errorf("failed to get category: %v", err)
		return Category{}, err
	}
	return category, nil
}

func (r *RepositoryImpl) List(ctx context.Context, userId, budgetId int, detailed bool) ([]Category, error) {
	tx, err := database.BeginRead(ctx, r.db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	owned, err := database.Exists(ctx, tx, database.OwnedBudget, budgetId, userId)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	if !owned {
		return nil, budget.ErrBudgetNotFound
	}

	rows, err := tx.Query(ctx, selectCategories(detailed)+` WHERE c.budget_id = $1 ORDER BY c.category_id`, budgetId)
	if err != nil {
		err := fmt.Errorf("could not query categories: %w", err)
		log.Error(err)
		return nil, err
	}
	categories, err := collectCategories(rows)
	if err != nil {
		err := fmt.Errorf("could not scan categories: %w", err)
		log.Error(err)
		return nil, err
	}
	return categories, tx.Commit(ctx)
}

func (r *RepositoryImpl) ListByGroup(ctx context.Context, userId, budgetId, groupId int, detailed bool) ([]Category, error) {
	tx, err := database.BeginRead(ctx, r.db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	owned, err := database.Exists(ctx, tx, database.OwnedGroup, groupId, budgetId, userId)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	if !owned {
		return nil, group.ErrGroupNotFound
	}

	rows, err := tx.Query(ctx, selectCategories(detailed)+` WHERE c.group_id = $1 ORDER BY c.category_id`, groupId)
	if err != nil {
		err := fmt.Errorf("could not query categories of group: %w", err)
		log.Error(err)
		return nil, err
	}
	categories, err := collectCategories(rows)
	if err != nil {
		err := fmt.Errorf("could not scan categories: %w", err)
		log.Error(err)
		return nil, err
	}
	return categories, tx.Commit(ctx)
}

// Update replaces name, allocation and group of the category.
func (r *RepositoryImpl) Update(ctx context.Context, userId int, category Category) (Category, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return Category{}, err
	}
	defer tx.Rollback(ctx)

	owned, err := database.Exists(ctx, tx, database.OwnedCategory, category.Id, category.BudgetId, userId)
	if err != nil {
		log.Error(err)
		return Category{}, err
	}
	if !owned {
		return Category{}, ErrCategoryNotFound
	}
	if err := checkGroup(ctx, tx, category); err != nil {
		return Category{}, err
	}

	query := `UPDATE category SET category_name = $1, time_allocated_sec = $2, group_id = $3
				WHERE category_id = $4 AND budget_id = $5
				RETURNING category_id, category_name, time_allocated_sec, budget_id, group_id, NULL::bigint`
	updated, err := scanCategory(tx.QueryRow(ctx, query,
		category.Name, seconds(category.TimeAllocated), category.GroupId, category.Id, category.BudgetId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Category{}, ErrCategoryNotFound
	} else if err != nil {
		err = database.TranslateError(err, constraints)
		log.Errorf("failed to update category: %v", err)
		return Category{}, err
	}
	return updated, tx.Commit(ctx)
}

// Delete removes the category together with its transactions.
func (r *RepositoryImpl) Delete(ctx context.Context, userId, budgetId, categoryId int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM category c USING budget b
				WHERE c.category_id = $1 AND c.budget_id = $2 AND b.budget_id = c.budget_id AND b.user_id = $3`,
		categoryId, budgetId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete category: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return tx.Commit(ctx)
}
