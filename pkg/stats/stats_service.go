package stats

import (
	"context"

	"github.com/timebudget/timebudget/pkg/category"
	"github.com/timebudget/timebudget/pkg/group"
)

type CategoriesReader interface {
	List(ctx context.Context, userId, budgetId int, detailed bool) ([]category.Category, error)
}

type GroupsReader interface {
	List(ctx context.Context, userId, budgetId int) ([]group.Group, error)
}

type StatsService interface {
	BudgetUsage(ctx context.Context, userId, budgetId int) (UsageSummary, error)
}

type StatsServiceImpl struct {
	categories CategoriesReader
	groups     GroupsReader
}

func NewStatsServiceImpl(categories CategoriesReader, groups GroupsReader) *StatsServiceImpl {
	return &StatsServiceImpl{categories: categories, groups: groups}
}

// BudgetUsage sums allocated and used time per category of the budget.
// Categories keep the order in which the budget lists them.
func (s *StatsServiceImpl) BudgetUsage(ctx context.Context, userId, budgetId int) (UsageSummary, error) {
	groups, err := s.groups.List(ctx, userId, budgetId)
	if err != nil {
		return UsageSummary{}, err
	}
	groupNames := make(map[int]string, len(groups))
	for _, g := range groups {
		groupNames[g.Id] = g.Name
	}

	categories, err := s.categories.List(ctx, userId, budgetId, true)
	if err != nil {
		return UsageSummary{}, err
	}

	summary := UsageSummary{BudgetId: budgetId, Categories: make([]CategoryUsage, 0, len(categories))}
	for _, c := range categories {
		usage := CategoryUsage{
			CategoryId:    c.Id,
			CategoryName:  c.Name,
			GroupId:       c.GroupId,
			TimeAllocated: c.TimeAllocated,
			Remaining:     c.TimeAllocated,
		}
		if c.GroupId != nil {
			usage.GroupName = groupNames[*c.GroupId]
		}
		if c.TimeUsed != nil {
			usage.TimeUsed = *c.TimeUsed
			usage.Remaining = c.Remaining()
		}
		summary.Categories = append(summary.Categories, usage)
		summary.TotalAllocated += usage.TimeAllocated
		summary.TotalUsed += usage.TimeUsed
	}
	summary.TotalRemaining = summary.TotalAllocated - summary.TotalUsed
	return summary, nil
}
