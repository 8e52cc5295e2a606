package transaction

import (
	"context"
	"slices"
	"sync"

	"github.com/timebudget/timebudget/pkg/category"
)

type categoryOwner struct {
	userId   int
	budgetId int
}

type RepositoryStub struct {
	mu           sync.Mutex
	nextId       int
	categories   map[int]categoryOwner
	transactions map[int]Transaction
}

func NewRepositoryStub() *RepositoryStub {
	return &RepositoryStub{categories: map[int]categoryOwner{}, transactions: map[int]Transaction{}}
}

// AddCategory registers categoryId inside budgetId owned by userId.
func (s *RepositoryStub) AddCategory(userId, budgetId, categoryId int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[categoryId] = categoryOwner{userId: userId, budgetId: budgetId}
}

func (s *RepositoryStub) ownsCategory(userId, budgetId, categoryId int) bool {
	owner, ok := s.categories[categoryId]
	return ok && owner == categoryOwner{userId: userId, budgetId: budgetId}
}

func (s *RepositoryStub) find(userId, budgetId, categoryId, transactionId int) (Transaction, bool) {
	transaction, ok := s.transactions[transactionId]
	if !ok || transaction.CategoryId != categoryId || !s.ownsCategory(userId, budgetId, categoryId) {
		return Transaction{}, false
	}
	return transaction, true
}

func (s *RepositoryStub) Create(_ context.Context, userId, budgetId int, transaction Transaction) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownsCategory(userId, budgetId, transaction.CategoryId) {
		return Transaction{}, category.ErrCategoryNotFound
	}
	s.nextId++
	transaction.Id = s.nextId
	s.transactions[transaction.Id] = transaction
	return transaction, nil
}

func (s *RepositoryStub) Get(_ context.Context, userId, budgetId, categoryId, transactionId int) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	transaction, ok := s.find(userId, budgetId, categoryId, transactionId)
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	return transaction, nil
}

func (s *RepositoryStub) List(_ context.Context, userId, budgetId, categoryId int) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ownsCategory(userId, budgetId, categoryId) {
		return nil, category.ErrCategoryNotFound
	}
	transactions := make([]Transaction, 0)
	for _, transaction := range s.transactions {
		if transaction.CategoryId == categoryId {
			transactions = append(transactions, transaction)
		}
	}
	slices.SortFunc(transactions, func(a, b Transaction) int { return a.Id - b.Id })
	return transactions, nil
}

func (s *RepositoryStub) Update(_ context.Context, userId, budgetId int, transaction Transaction) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.find(userId, budgetId, transaction.CategoryId, transaction.Id)
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	if transaction.DateTime.IsZero() {
		transaction.DateTime = existing.DateTime
	}
	s.transactions[transaction.Id] = transaction
	return transaction, nil
}

func (s *RepositoryStub) Delete(_ context.Context, userId, budgetId, categoryId, transactionId int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.find(userId, budgetId, categoryId, transactionId); !ok {
		return ErrTransactionNotFound
	}
	delete(s.transactions, transactionId)
	return nil
}
