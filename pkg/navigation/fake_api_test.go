package navigation

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/timebudget/timebudget/pkg/client"
)

var notFound = &client.ApiError{Status: 404, Message: "not found"}

// fakeAPI is an in-memory server. A non-nil fail is returned by every call.
type fakeAPI struct {
	mu           sync.Mutex
	fail         error
	calls        int
	nextId       int
	users        []client.User
	budgets      []client.Budget
	groups       []client.Group
	categories   []client.Category
	transactions []client.Transaction
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{}
}

func (f *fakeAPI) begin() error {
	f.mu.Lock()
	f.calls++
	return f.fail
}

func (f *fakeAPI) id() int {
	f.nextId++
	return f.nextId
}

func (f *fakeAPI) ListUsers(context.Context) ([]client.User, error) {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	users := slices.Clone(f.users)
	slices.Reverse(users)
	return users, nil
}

func (f *fakeAPI) GetUser(_ context.Context, userId int) (client.User, error) {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return client.User{}, err
	}
	for _, u := range f.users {
		if u.Id == userId {
			return u, nil
		}
	}
	return client.User{}, notFound
}

func (f *fakeAPI) CreateUser(_ context.Context, in client.UserInput) (client.User, error) {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return client.User{}, err
	}
	u := client.User{Id: f.id(), Username: in.Username, Email: in.Email, CreatedAt: time.Now()}
	f.users = append(f.users, u)
	return u, nil
}

func (f *fakeAPI) UpdateUser(_ context.Context, userId int, in client.UserInput) (client.User, error) {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return client.User{}, err
	}
	for i := range f.users {
		if f.users[i].Id == userId {
			f.users[i].Username, f.users[i].Email = in.Username, in.Email
			return f.users[i], nil
		}
	}
	return client.User{}, notFound
}

func (f *fakeAPI) DeleteUser(_ context.Context, userId int) error {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return err
	}
	return remove(&f.users, func(u client.User) bool { return u.Id == userId })
}

func (f *fakeAPI) ListBudgets(_ context.Context, userId int) ([]client.Budget, error) {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return filter(f.budgets, func(b client.Budget) bool { return b.UserId == userId }), nil
}

func (f *fakeAPI) CreateBudget(_ context.Context, userId int, in client.BudgetInput) (client.Budget, error) {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return client.Budget{}, err
	}
	b := client.Budget{Id: f.id(), Name: in.Name, UserId: userId}
	f.budgets = append(f.budgets, b)
	return b, nil
}

func (f *fakeAPI) UpdateBudget(_ context.Context, _, budgetId int, in client.BudgetInput) (client.Budget, error) {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return client.Budget{}, err
	}
	for i := range f.budgets {
		if f.budgets[i].Id == budgetId {
			f.budgets[i].Name = in.Name
			return f.budgets[i], nil
		}
	}
	return client.Budget{}, notFound
}

func (f *fakeAPI) DeleteBudget(_ context.Context, _, budgetId int) error {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return err
	}
	return remove(&f.budgets, func(b client.Budget) bool { return b.Id == budgetId })
}

func (f *fakeAPI) ListGroups(_ context.Context, _, budgetId int) ([]client.Group, error) {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return filter(f.groups, func(g client.Group) bool { return g.BudgetId == budgetId }), nil
}

func (f *fakeAPI) CreateGroup(_ context.Context, _, budgetId int, in client.GroupInput) (client.Group, error) {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return client.Group{}, err
	}
	g := client.Group{Id: f.id(), Name: in.Name, BudgetId: budgetId}
	f.groups = append(f.groups, g)
	return g, nil
}

func (f *fakeAPI) UpdateGroup(_ context.Context, _, _, groupId int, in client.GroupInput) (client.Group, error) {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return client.Group{}, err
	}
	for i := range f.groups {
		if f.groups[i].Id == groupId {
			f.groups[i].Name = in.Name
			return f.groups[i], nil
		}
	}
	return client.Group{}, notFound
}

func (f *fakeAPI) DeleteGroup(_ context.Context, _, _, groupId int) error {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return err
	}
	for i := range f.categories {
		if f.categories[i].GroupId != nil && *f.categories[i].GroupId == groupId {
			f.categories[i].GroupId = nil
		}
	}
	return remove(&f.groups, func(g client.Group) bool { return g.Id == groupId })
}

func (f *fakeAPI) ListCategories(_ context.Context, _, budgetId int, detailed bool) ([]client.Category, error) {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.categoriesWhere(detailed, func(c client.Category) bool { return c.BudgetId == budgetId }), nil
}

func (f *fakeAPI) ListGroupCategories(_ context.Context, _, _, groupId int, detailed bool) ([]client.Category, error) {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return f.categoriesWhere(detailed, func(c client.Category) bool {
		return c.GroupId != nil && *c.GroupId == groupId
	}), nil
}

func (f *fakeAPI) categoriesWhere(detailed bool, keep func(client.Category) bool) []client.Category {
	categories := filter(f.categories, keep)
	if !detailed {
		return categories
	}
	for i := range categories {
		var used int64
		for _, t := range f.transactions {
			if t.CategoryId == categories[i].Id {
				used += t.Period
			}
		}
		categories[i].TimeUsed = &used
	}
	return categories
}

func (f *fakeAPI) CreateCategory(_ context.Context, _, budgetId int, in client.CategoryInput) (client.Category, error) {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return client.Category{}, err
	}
	c := client.Category{Id: f.id(), Name: in.Name, TimeAllocated: in.TimeAllocated, BudgetId: budgetId, GroupId: in.GroupId}
	f.categories = append(f.categories, c)
	return c, nil
}

func (f *fakeAPI) UpdateCategory(_ context.Context, _, _, categoryId int, in client.CategoryInput) (client.Category, error) {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return client.Category{}, err
	}
	for i := range f.categories {
		if f.categories[i].Id == categoryId {
			f.categories[i].Name = in.Name
			f.categories[i].TimeAllocated = in.TimeAllocated
			f.categories[i].GroupId = in.GroupId
			return f.categories[i], nil
		}
	}
	return client.Category{}, notFound
}

func (f *fakeAPI) DeleteCategory(_ context.Context, _, _, categoryId int) error {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return err
	}
	return remove(&f.categories, func(c client.Category) bool { return c.Id == categoryId })
}

func (f *fakeAPI) ListTransactions(_ context.Context, _, _, categoryId int) ([]client.Transaction, error) {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return filter(f.transactions, func(t client.Transaction) bool { return t.CategoryId == categoryId }), nil
}

func (f *fakeAPI) CreateTransaction(_ context.Context, _, _, categoryId int, in client.TransactionInput) (client.Transaction, error) {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return client.Transaction{}, err
	}
	t := client.Transaction{Id: f.id(), Name: in.Name, Period: in.Period, DateTime: time.Now(), CategoryId: categoryId}
	f.transactions = append(f.transactions, t)
	return t, nil
}

func (f *fakeAPI) UpdateTransaction(_ context.Context, _, _, _, transactionId int, in client.TransactionInput) (client.Transaction, error) {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return client.Transaction{}, err
	}
	for i := range f.transactions {
		if f.transactions[i].Id == transactionId {
			f.transactions[i].Name, f.transactions[i].Period = in.Name, in.Period
			return f.transactions[i], nil
		}
	}
	return client.Transaction{}, notFound
}

func (f *fakeAPI) DeleteTransaction(_ context.Context, _, _, _, transactionId int) error {
	err := f.begin()
	defer f.mu.Unlock()
	if err != nil {
		return err
	}
	return remove(&f.transactions, func(t client.Transaction) bool { return t.Id == transactionId })
}

func filter[T any](items []T, keep func(T) bool) []T {
	kept := make([]T, 0)
	for _, item := range items {
		if keep(item) {
			kept = append(kept, item)
		}
	}
	return kept
}

func remove[T any](items *[]T, match func(T) bool) error {
	before := len(*items)
	*items = slices.DeleteFunc(*items, match)
	if len(*items) == before {
		return notFound
	}
	return nil
}
