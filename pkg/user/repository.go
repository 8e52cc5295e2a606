package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/database"
)

type Repository interface {
	Create(ctx context.Context, user User) (User, error)
	Get(ctx context.Context, id int) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, id int) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

const userColumns = "user_id, username, email, created_at"

func scanUser(row pgx.Row) (User, error) {
	var user User
	if err := row.Scan(&user.Id, &user.Username, &user.Email, &user.CreatedAt); err != nil {
		return User{}, err
	}
	user.CreatedAt = user.CreatedAt.UTC()
	return user, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, user User) (User, error) {
	query := `INSERT INTO users (username, email, created_at) VALUES ($1, $2, $3) RETURNING ` + userColumns
	created, err := scanUser(r.db.QueryRow(ctx, query, user.Username, user.Email, user.CreatedAt))
	if err != nil {
		err = database.TranslateError(err, nil)
		log.Errorf("failed to create user: %v", err)
		return User{}, err
	}
	return created, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id int) (User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		log.Debugf("user %d not found", id)
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (r *RepositoryImpl) List(ctx context.Context) ([]User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY user_id DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query users: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	users := make([]User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			err := fmt.Errorf("could not scan user: %w", err)
			log.Error(err)
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return users, nil
}

func (r *RepositoryImpl) Update(ctx context.Context, user User) (User, error) {
	query := `UPDATE users SET username = $1, email = $2 WHERE user_id = $3 RETURNING ` + userColumns
	updated, err := scanUser(r.db.QueryRow(ctx, query, user.Username, user.Email, user.Id))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		err = database.TranslateError(err, nil)
		log.Errorf("failed to update user: %v", err)
		return User{}, err
	}
	return updated, nil
}

// Delete removes the user together with its budgets and authorization links.
func (r *RepositoryImpl) Delete(ctx context.Context, id int) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		err := fmt.Errorf("could not delete user: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return tx.Commit(ctx)
}
