package group

import (
	"strings"

	"github.com/timebudget/timebudget/internal/apperrors"
)

var ErrGroupNotFound = apperrors.NotFound("Group")

// Group is a display bucket for categories of one budget.
type Group struct {
	Id       int
	Name     string
	BudgetId int
}

func (g Group) validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return apperrors.Required("group_name")
	}
	return nil
}
