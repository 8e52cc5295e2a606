package authorization

import (
	"github.com/timebudget/timebudget/internal/apperrors"
)

var (
	ErrAuthorizationNotFound = apperrors.NotFound("Authorization")
	ErrSelfAuthorization     = apperrors.Invalid("authorized_id", "A user cannot authorize itself.")
)

// Link records that the authorizer grants the authorized user access.
// The pair is directional.
type Link struct {
	AuthorizerId int
	AuthorizedId int
}

func (l Link) validate() error {
	if l.AuthorizerId == l.AuthorizedId {
		return ErrSelfAuthorization
	}
	return nil
}
