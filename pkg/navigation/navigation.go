// Package navigation tracks where a terminal user is in the
// user > budget > group/category > transaction hierarchy, caches the listing
// shown at that level and dispatches edits to the API by entry kind.
//
// A Model is confined to one goroutine. Every operation either succeeds or
// leaves selection, listing and dirty flag exactly as they were.
package navigation

import (
	"context"
	"errors"

	"github.com/timebudget/timebudget/pkg/client"
)

var (
	ErrNothingHighlighted = errors.New("nothing is highlighted")
	ErrNotAvailable       = errors.New("not available at this level")
)

type State int

const (
	LoggedOut State = iota
	BudgetSelection
	Home
	GroupBrowsing
	CategoryBrowsing
)

func (s State) String() string {
	switch s {
	case LoggedOut:
		return "Users"
	case BudgetSelection:
		return "Budgets"
	case Home:
		return "Home"
	case GroupBrowsing:
		return "Group"
	case CategoryBrowsing:
		return "Category"
	}
	return "Unknown"
}

type Kind string

const (
	KindUser        Kind = "user"
	KindBudget      Kind = "budget"
	KindGroup       Kind = "group"
	KindCategory    Kind = "category"
	KindTransaction Kind = "transaction"
)

// Item is one entry of the listing.
type Item struct {
	Kind  Kind
	Id    int
	Label string
	// Depth is 1 for categories shown below their group.
	Depth int
	// Draft holds the entry's current values for prefilling edit forms.
	Draft Draft
}

// Selection is the chain of entries the user has entered. Zero ids are unset.
type Selection struct {
	UserId       int
	UserName     string
	BudgetId     int
	BudgetName   string
	GroupId      int
	GroupName    string
	CategoryId   int
	CategoryName string
}

// API is the part of the HTTP client the Model drives.
type API interface {
	ListUsers(ctx context.Context) ([]client.User, error)
	GetUser(ctx context.Context, userId int) (client.User, error)
	CreateUser(ctx context.Context, in client.UserInput) (client.User, error)
	UpdateUser(ctx context.Context, userId int, in client.UserInput) (client.User, error)
	DeleteUser(ctx context.Context, userId int) error

	ListBudgets(ctx context.Context, userId int) ([]client.Budget, error)
	CreateBudget(ctx context.Context, userId int, in client.BudgetInput) (client.Budget, error)
	UpdateBudget(ctx context.Context, userId, budgetId int, in client.BudgetInput) (client.Budget, error)
	DeleteBudget(ctx context.Context, userId, budgetId int) error

	ListGroups(ctx context.Context, userId, budgetId int) ([]client.Group, error)
	CreateGroup(ctx context.Context, userId, budgetId int, in client.GroupInput) (client.Group, error)
	UpdateGroup(ctx context.Context, userId, budgetId, groupId int, in client.GroupInput) (client.Group, error)
	DeleteGroup(ctx context.Context, userId, budgetId, groupId int) error

	ListCategories(ctx context.Context, userId, budgetId int, detailed bool) ([]client.Category, error)
	ListGroupCategories(ctx context.Context, userId, budgetId, groupId int, detailed bool) ([]client.Category, error)
	CreateCategory(ctx context.Context, userId, budgetId int, in client.CategoryInput) (client.Category, error)
	UpdateCategory(ctx context.Context, userId, budgetId, categoryId int, in client.CategoryInput) (client.Category, error)
	DeleteCategory(ctx context.Context, userId, budgetId, categoryId int) error

	ListTransactions(ctx context.Context, userId, budgetId, categoryId int) ([]client.Transaction, error)
	CreateTransaction(ctx context.Context, userId, budgetId, categoryId int, in client.TransactionInput) (client.Transaction, error)
	UpdateTransaction(ctx context.Context, userId, budgetId, categoryId, transactionId int, in client.TransactionInput) (client.Transaction, error)
	DeleteTransaction(ctx context.Context, userId, budgetId, categoryId, transactionId int) error
}
