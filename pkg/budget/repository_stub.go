package budget

import (
	"context"
	"slices"
	"sync"

	"github.com/timebudget/timebudget/pkg/user"
)

type RepositoryStub struct {
	mu      sync.Mutex
	nextId  int
	users   map[int]bool
	budgets map[int]Budget
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{users: map[int]bool{}, budgets: map[int]Budget{}}
}

// AddUser makes userId a valid owner.
func (s *RepositoryStub) AddUser(userId int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userId] = true
}

func (s *RepositoryStub) Create(_ context.Context, budget Budget) (Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.users[budget.UserId] {
		return Budget{}, user.ErrUserNotFound
	}
	s.nextId++
	budget.Id = s.nextId
	s.budgets[budget.Id] = budget
	return budget, nil
}

func (s *RepositoryStub) Get(_ context.Context, userId, budgetId int) (Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	budget, ok := s.budgets[budgetId]
	if !ok || budget.UserId != userId {
		return Budget{}, ErrBudgetNotFound
	}
	return budget, nil
}

func (s *RepositoryStub) List(_ context.Context, userId int) ([]Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.users[userId] {
		return nil, user.ErrUserNotFound
	}
	budgets := make([]Budget, 0)
	for _, budget := range s.budgets {
		if budget.UserId == userId {
			budgets = append(budgets, budget)
		}
	}
	slices.SortFunc(budgets, func(a, b Budget) int { return a.Id - b.Id })
	return budgets, nil
}

func (s *RepositoryStub) Update(_ context.Context, budget Budget) (Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.budgets[budget.Id]
	if !ok || existing.UserId != budget.UserId {
		return Budget{}, ErrBudgetNotFound
	}
	s.budgets[budget.Id] = budget
	return budget, nil
}

func (s *RepositoryStub) Delete(_ context.Context, userId, budgetId int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.budgets[budgetId]
	if !ok || existing.UserId != userId {
		return ErrBudgetNotFound
	}
	delete(s.budgets, budgetId)
	return nil
}
