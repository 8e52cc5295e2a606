package category

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/timebudget/timebudget/pkg/budget"
	"github.com/timebudget/timebudget/pkg/group"
)

type RepositoryStub struct {
	mu         sync.Mutex
	nextId     int
	budgets    map[int]int
	groups     map[int]int
	categories map[int]Category
	usage      map[int]time.Duration
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{
		budgets:    map[int]int{},
		groups:     map[int]int{},
		categories: map[int]Category{},
		usage:      map[int]time.Duration{},
	}
}

// AddBudget registers budgetId as owned by userId.
func (s *RepositoryStub) AddBudget(userId, budgetId int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[budgetId] = userId
}

// AddGroup registers groupId inside budgetId.
func (s *RepositoryStub) AddGroup(budgetId, groupId int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.groups[groupId] = budgetId
}

// AddUsage records a transaction period against the category.
func (s *RepositoryStub) AddUsage(categoryId int, period time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.usage[categoryId] += period
}

func (s *RepositoryStub) ownsBudget(userId, budgetId int) bool {
	owner, ok := s.budgets[budgetId]
	return ok && owner == userId
}

func (s *RepositoryStub) checkGroup(category Category) error {
	if category.GroupId == nil {
		return nil
	}
	if budgetId, ok := s.groups[*category.GroupId]; !ok || budgetId != category.BudgetId {
		return ErrGroupNotInBudget
	}
	return nil
}

func (s *RepositoryStub) withUsage(category Category, detailed bool) Category {
	if detailed {
		used := s.usage[category.Id]
		category.TimeUsed = &used
	}
	return category
}

func (s *RepositoryStub) Create(_ context.Context, userId int, category Category) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownsBudget(userId, category.BudgetId) {
		return Category{}, budget.ErrBudgetNotFound
	}
	if err := s.checkGroup(category); err != nil {
		return Category{}, err
	}
	s.nextId++
	category.Id = s.nextId
	category.TimeUsed = nil
	s.categories[category.Id] = category
	return category, nil
}

func (s *RepositoryStub) Get(_ context.Context, userId, budgetId, categoryId int, detailed bool) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	category, ok := s.categories[categoryId]
	if !ok || category.BudgetId != budgetId || !s.ownsBudget(userId, budgetId) {
		return Category{}, ErrCategoryNotFound
	}
	return s.withUsage(category, detailed), nil
}

func (s *RepositoryStub) list(match func(Category) bool, detailed bool) []Category {
	categories := make([]Category, 0)
	for _, category := range s.categories {
		if match(category) {
			categories = append(categories, s.withUsage(category, detailed))
		}
	}
	slices.SortFunc(categories, func(a, b Category) int { return a.Id - b.Id })
	return categories
}

func (s *RepositoryStub) List(_ context.Context, userId, budgetId int, detailed bool) ([]Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownsBudget(userId, budgetId) {
		return nil, budget.ErrBudgetNotFound
	}
	return s.list(func(c Category) bool { return c.BudgetId == budgetId }, detailed), nil
}

func (s *RepositoryStub) ListByGroup(_ context.Context, userId, budgetId, groupId int, detailed bool) ([]Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if owner, ok := s.groups[groupId]; !ok || owner != budgetId || !s.ownsBudget(userId, budgetId) {
		return nil, group.ErrGroupNotFound
	}
	return s.list(func(c Category) bool { return c.GroupId != nil && *c.GroupId == groupId }, detailed), nil
}

func (s *RepositoryStub) Update(_ context.Context, userId int, category Category) (Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.categories[category.Id]
	if !ok || existing.BudgetId != category.BudgetId || !s.ownsBudget(userId, category.BudgetId) {
		return Category{}, ErrCategoryNotFound
	}
	if err := s.checkGroup(category); err != nil {
		return Category{}, err
	}
	category.TimeUsed = nil
	s.categories[category.Id] = category
	return category, nil
}

func (s *RepositoryStub) Delete(_ context.Context, userId, budgetId, categoryId int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.categories[categoryId]
	if !ok || existing.BudgetId != budgetId || !s.ownsBudget(userId, budgetId) {
		return ErrCategoryNotFound
	}
	delete(s.categories, categoryId)
	delete(s.usage, categoryId)
	return nil
}
