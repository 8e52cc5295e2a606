package transaction

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
	"github.com/timebudget/timebudget/pkg/category"
)

type Repository interface {
	Create(ctx context.Context, userId, budgetId int, transaction Transaction) (Transaction, error)
	Get(ctx context.Context, userId, budgetId, categoryId, transactionId int) (Transaction, error)
	List(ctx context.Context, userId, budgetId, categoryId int) ([]Transaction, error)
	// Update replaces name and period. A zero DateTime keeps the stored one.
	Update(ctx context.Context, userId, budgetId int, transaction Transaction) (Transaction, error)
	Delete(ctx context.Context, userId, budgetId, categoryId, transactionId int) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

var constraints = database.Constraints{
	"category_transaction_category_fk":         category.ErrCategoryNotFound,
	"category_transaction_period_non_negative": apperrors.Invalid("period", "period must not be negative."),
}

const returning = `RETURNING t.transaction_id, t.transaction_name, t.period_sec, t.date_time, t.category_id`

func scanTransaction(row pgx.Row) (Transaction, error) {
	var (
		transaction Transaction
		periodSec   int64
	)
	if err := row.Scan(&transaction.Id, &transaction.Name, &periodSec, &transaction.DateTime, &transaction.CategoryId); err != nil {
		return Transaction{}, err
	}
	transaction.Period = time.Duration(periodSec) * time.Second
	transaction.DateTime = transaction.DateTime.UTC()
	return transaction, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, userId, budgetId int, transaction Transaction) (Transaction, error) {
	query := `INSERT INTO category_transaction AS t (transaction_name, period_sec, date_time, category_id)
				SELECT $1, $2, $3, c.category_id
				FROM category c JOIN budget b ON b.budget_id = c.budget_id
				WHERE c.category_id = $4 AND c.budget_id = $5 AND b.user_id = $6
				` + returning
	created, err := scanTransaction(r.db.QueryRow(ctx, query,
		transaction.Name,
		int64(transaction.Period/time.Second),
		transaction.DateTime,
		transaction.CategoryId,
		budgetId,
		userId,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, category.ErrCategoryNotFound
	} else if err != nil {
		err = database.TranslateError(err, constraints)
		log.Errorf("failed to create transaction: %v", err)
		return Transaction{}, err
	}
	return created, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, userId, budgetId, categoryId, transactionId int) (Transaction, error) {
	query := `SELECT t.transaction_id, t.transaction_name, t.period_sec, t.date_time, t.category_id
				FROM category_transaction t
				JOIN category c ON c.category_id = t.category_id
				JOIN budget b ON b.budget_id = c.budget_id
				WHERE t.transaction_id = $1 AND t.category_id = $2 AND c.budget_id = $3 AND b.user_id = $4`
	transaction, err := scanTransaction(r.db.QueryRow(ctx, query, transactionId, categoryId, budgetId, userId))
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrTransactionNotFound
	} else if err != nil {
		log.Errorf("failed to get transaction: %v", err)
		return Transaction{}, err
	}
	return transaction, nil
}

func (r *RepositoryImpl) List(ctx context.Context, userId, budgetId, categoryId int) ([]Transaction, error) {
	tx, err := database.BeginRead(ctx, r.db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	owned, err := database.Exists(ctx, tx, database.OwnedCategory, categoryId, budgetId, userId)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	if !owned {
		return nil, category.ErrCategoryNotFound
	}

	rows, err := tx.Query(ctx, `SELECT t.transaction_id, t.transaction_name, t.period_sec, t.date_time, t.category_id
				FROM category_transaction t WHERE t.category_id = $1 ORDER BY t.transaction_id`, categoryId)
	if err != nil {
		err := fmt.Errorf("could not query transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	transactions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Transaction, error) {
		return scanTransaction(row)
	})
	if err != nil {
		err := fmt.Errorf("could not scan transactions: %w", err)
		log.Error(err)
		return nil, err
	}
	return transactions, tx.Commit(ctx)
}

func (r *RepositoryImpl) Update(ctx context.Context, userId, budgetId int, transaction Transaction) (Transaction, error) {
	var dateTime *time.Time
	if !transaction.DateTime.IsZero() {
		dateTime = &transaction.DateTime
	}
	query := `UPDATE category_transaction t
				SET transaction_name = $1, period_sec = $2, date_time = COALESCE($3, t.date_time)
				FROM category c JOIN budget b ON b.budget_id = c.budget_id
				WHERE t.transaction_id = $4 AND t.category_id = $5
					AND c.category_id = t.category_id AND c.budget_id = $6 AND b.user_id = $7
				` + returning
	updated, err := scanTransaction(r.db.QueryRow(ctx, query,
		transaction.Name,
		int64(transaction.Period/time.Second),
		dateTime,
		transaction.Id,
		transaction.CategoryId,
		budgetId,
		userId,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return Transaction{}, ErrTransactionNotFound
	} else if err != nil {
		err = database.TranslateError(err, constraints)
		log.Errorf("failed to update transaction: %v", err)
		return Transaction{}, err
	}
	return updated, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, userId, budgetId, categoryId, transactionId int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM category_transaction t
				USING category c JOIN budget b ON b.budget_id = c.budget_id
				WHERE t.transaction_id = $1 AND t.category_id = $2
					AND c.category_id = t.category_id AND c.budget_id = $3 AND b.user_id = $4`,
		transactionId, categoryId, budgetId, userId)
	if err != nil {
		err := fmt.Errorf("could not delete transaction: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return tx.Commit(ctx)
}
