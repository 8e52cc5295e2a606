package budget

import (
	"strings"

	"github.com/timebudget/timebudget/internal/apperrors"
)

var ErrBudgetNotFound = apperrors.NotFound("Budget")

// Budget is a named container of groups and categories owned by one user.
type Budget struct {
	Id     int
	Name   string
	UserId int
}

func (b Budget) validate() error {
	if strings.TrimSpace(b.Name) == "" {
		return apperrors.Required("budget_name")
	}
	return nil
}
