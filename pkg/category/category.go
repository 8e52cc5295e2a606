package category

import (
	"strings"
	"time"

	"github.com/timebudget/timebudget/internal/apperrors"
)

var (
	ErrCategoryNotFound = apperrors.NotFound("Category")
	ErrGroupNotInBudget = apperrors.Invalid("group_id", "group_id must reference a group of the same budget.")
)

// Category is a line of a budget with an allocated amount of time.
type Category struct {
	Id            int
	Name          string
	TimeAllocated time.Duration
	BudgetId      int
	// GroupId is nil for an ungrouped category.
	GroupId *int
	// TimeUsed is the sum of the periods of the category's transactions.
	// It is only computed by detailed reads and nil otherwise.
	TimeUsed *time.Duration
}

func (c Category) validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return apperrors.Required("category_name")
	}
	if c.TimeAllocated < 0 {
		return apperrors.Invalid("time_allocated", "time_allocated must not be negative.")
	}
	return nil
}

// Remaining is the allocated time not yet used. It is negative when the
// category is overspent and zero for non-detailed reads.
func (c Category) Remaining() time.Duration {
	if c.TimeUsed == nil {
		return 0
	}
	return c.TimeAllocated - *c.TimeUsed
}
