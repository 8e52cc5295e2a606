package group

import (
	"context"
	"slices"
	"sync"

	"github.com/timebudget/timebudget/pkg/budget"
)

type RepositoryStub struct {
	mu      sync.Mutex
	nextId  int
	budgets map[int]int
	groups  map[int]Group
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{budgets: map[int]int{}, groups: map[int]Group{}}
}

// AddBudget registers budgetId as owned by userId.
func (s *RepositoryStub) AddBudget(userId, budgetId int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.budgets[budgetId] = userId
}

func (s *RepositoryStub) ownsBudget(userId, budgetId int) bool {
	owner, ok := s.budgets[budgetId]
	return ok && owner == userId
}

func (s *RepositoryStub) find(userId, budgetId, groupId int) (Group, bool) {
	group, ok := s.groups[groupId]
	if !ok || group.BudgetId != budgetId || !s.ownsBudget(userId, budgetId) {
		return Group{}, false
	}
	return group, true
}

func (s *RepositoryStub) Create(_ context.Context, userId int, group Group) (Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownsBudget(userId, group.BudgetId) {
		return Group{}, budget.ErrBudgetNotFound
	}
	s.nextId++
	group.Id = s.nextId
	s.groups[group.Id] = group
	return group, nil
}

func (s *RepositoryStub) Get(_ context.Context, userId, budgetId, groupId int) (Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	group, ok := s.find(userId, budgetId, groupId)
	if !ok {
		return Group{}, ErrGroupNotFound
	}
	return group, nil
}

func (s *RepositoryStub) List(_ context.Context, userId, budgetId int) ([]Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownsBudget(userId, budgetId) {
		return nil, budget.ErrBudgetNotFound
	}
	groups := make([]Group, 0)
	for _, group := range s.groups {
		if group.BudgetId == budgetId {
			groups = append(groups, group)
		}
	}
	slices.SortFunc(groups, func(a, b Group) int { return a.Id - b.Id })
	return groups, nil
}

func (s *RepositoryStub) Update(_ context.Context, userId int, group Group) (Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.find(userId, group.BudgetId, group.Id); !ok {
		return Group{}, ErrGroupNotFound
	}
	s.groups[group.Id] = group
	return group, nil
}

func (s *RepositoryStub) Delete(_ context.Context, userId, budgetId, groupId int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.find(userId, budgetId, groupId); !ok {
		return ErrGroupNotFound
	}
	delete(s.groups, groupId)
	return nil
}
