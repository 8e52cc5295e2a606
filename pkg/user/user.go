package user

import (
	"strings"
	"time"

	"github.com/timebudget/timebudget/internal/apperrors"
)

var ErrUserNotFound = apperrors.NotFound("User")

type User struct {
	Id        int
	Username  string
	Email     string
	CreatedAt time.Time
}

func (u User) validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return apperrors.Required("username")
	}
	if strings.TrimSpace(u.Email) == "" {
		return apperrors.Required("email")
	}
	return nil
}
