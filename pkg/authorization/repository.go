package authorization

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/database"
	"github.com/timebudget/timebudget/pkg/user"
)

type Repository interface {
	List(ctx context.Context, authorizerId int) ([]Link, error)
	// Upsert stores the link. Storing an existing link is not an error.
	Upsert(ctx context.Context, link Link) (Link, error)
	Delete(ctx context.Context, link Link) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

var constraints = database.Constraints{
	"authorization_link_authorizer_fk": user.ErrUserNotFound,
	"authorization_link_authorized_fk": user.ErrUserNotFound,
	"authorization_link_distinct":      ErrSelfAuthorization,
}

func (r *RepositoryImpl) List(ctx context.Context, authorizerId int) ([]Link, error) {
	tx, err := database.BeginRead(ctx, r.db)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	exists, err := database.Exists(ctx, tx, database.OwnedUser, authorizerId)
	if err != nil {
		log.Error(err)
		return nil, err
	}
	if !exists {
		return nil, user.ErrUserNotFound
	}

	rows, err := tx.Query(ctx, `SELECT authorizer_id, authorized_id FROM authorization_link
				WHERE authorizer_id = $1 ORDER BY authorized_id`, authorizerId)
	if err != nil {
		err := fmt.Errorf("could not query authorizations: %w", err)
		log.Error(err)
		return nil, err
	}
	links, err := pgx.CollectRows(rows, pgx.RowToStructByPos[Link])
	if err != nil {
		err := fmt.Errorf("could not scan authorizations: %w", err)
		log.Error(err)
		return nil, err
	}
	return links, tx.Commit(ctx)
}

func (r *RepositoryImpl) Upsert(ctx context.Context, link Link) (Link, error) {
	_, err := r.db.Exec(ctx, `INSERT INTO authorization_link (authorizer_id, authorized_id) VALUES ($1, $2)
				ON CONFLICT (authorizer_id, authorized_id) DO NOTHING`, link.AuthorizerId, link.AuthorizedId)
	if err != nil {
		err = database.TranslateError(err, constraints)
		log.Errorf("failed to store authorization: %v", err)
		return Link{}, err
	}
	return link, nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, link Link) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM authorization_link WHERE authorizer_id = $1 AND authorized_id = $2`,
		link.AuthorizerId, link.AuthorizedId)
	if err != nil {
		err := fmt.Errorf("could not delete authorization: %w", err)
		log.Error(err)
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrAuthorizationNotFound
	}
	return tx.Commit(ctx)
}
