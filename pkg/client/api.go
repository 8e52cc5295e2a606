package client

import (
	"context"
	"fmt"
	"net/http"
)

func userPath(userId int) string {
	return fmt.Sprintf("/api/users/%d", userId)
}

func budgetPath(userId, budgetId int) string {
	return fmt.Sprintf("%s/budgets/%d", userPath(userId), budgetId)
}

func categoryPath(userId, budgetId, categoryId int) string {
	return fmt.Sprintf("%s/categories/%d", budgetPath(userId, budgetId), categoryId)
}

func detailedQuery(detailed bool) string {
	if detailed {
		return "?detailed=true"
	}
	return ""
}

func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	var users []User
	err := c.do(ctx, http.MethodGet, "/api/users", nil, http.StatusOK, &users)
	return users, err
}

func (c *Client) GetUser(ctx context.Context, userId int) (User, error) {
	var user User
	err := c.do(ctx, http.MethodGet, userPath(userId), nil, http.StatusOK, &user)
	return user, err
}

func (c *Client) CreateUser(ctx context.Context, in UserInput) (User, error) {
	var user User
	err := c.do(ctx, http.MethodPost, "/api/users", in, http.StatusCreated, &user)
	return user, err
}

func (c *Client) UpdateUser(ctx context.Context, userId int, in UserInput) (User, error) {
	var user User
	err := c.do(ctx, http.MethodPatch, userPath(userId), in, http.StatusCreated, &user)
	return user, err
}

func (c *Client) DeleteUser(ctx context.Context, userId int) error {
	return c.do(ctx, http.MethodDelete, userPath(userId), nil, http.StatusOK, nil)
}

func (c *Client) ListAuthorizations(ctx context.Context, userId int) ([]Link, error) {
	var links []Link
	err := c.do(ctx, http.MethodGet, userPath(userId)+"/authorizations", nil, http.StatusOK, &links)
	return links, err
}

func (c *Client) Authorize(ctx context.Context, userId, authorizedId int) (Link, error) {
	var link Link
	path := fmt.Sprintf("%s/authorizations/%d", userPath(userId), authorizedId)
	err := c.do(ctx, http.MethodPut, path, nil, http.StatusCreated, &link)
	return link, err
}

func (c *Client) Revoke(ctx context.Context, userId, authorizedId int) error {
	path := fmt.Sprintf("%s/authorizations/%d", userPath(userId), authorizedId)
	return c.do(ctx, http.MethodDelete, path, nil, http.StatusOK, nil)
}

func (c *Client) ListBudgets(ctx context.Context, userId int) ([]Budget, error) {
	var budgets []Budget
	err := c.do(ctx, http.MethodGet, userPath(userId)+"/budgets", nil, http.StatusOK, &budgets)
	return budgets, err
}

func (c *Client) GetBudget(ctx context.Context, userId, budgetId int) (Budget, error) {
	var budget Budget
	err := c.do(ctx, http.MethodGet, budgetPath(userId, budgetId), nil, http.StatusOK, &budget)
	return budget, err
}

// BudgetStats reads the usage report of a budget.
func (c *Client) BudgetStats(ctx context.Context, userId, budgetId int) (BudgetStats, error) {
	var stats BudgetStats
	err := c.do(ctx, http.MethodGet, budgetPath(userId, budgetId)+"/stats", nil, http.StatusOK, &stats)
	return stats, err
}

func (c *Client) CreateBudget(ctx context.Context, userId int, in BudgetInput) (Budget, error) {
	var budget Budget
	err := c.do(ctx, http.MethodPost, userPath(userId)+"/budgets", in, http.StatusCreated, &budget)
	return budget, err
}

func (c *Client) UpdateBudget(ctx context.Context, userId, budgetId int, in BudgetInput) (Budget, error) {
	var budget Budget
	err := c.do(ctx, http.MethodPatch, budgetPath(userId, budgetId), in, http.StatusCreated, &budget)
	return budget, err
}

func (c *Client) DeleteBudget(ctx context.Context, userId, budgetId int) error {
	return c.do(ctx, http.MethodDelete, budgetPath(userId, budgetId), nil, http.StatusOK, nil)
}

func (c *Client) ListGroups(ctx context.Context, userId, budgetId int) ([]Group, error) {
	var groups []Group
	err := c.do(ctx, http.MethodGet, budgetPath(userId, budgetId)+"/groups", nil, http.StatusOK, &groups)
	return groups, err
}

func (c *Client) GetGroup(ctx context.Context, userId, budgetId, groupId int) (Group, error) {
	var group Group
	path := fmt.Sprintf("%s/groups/%d", budgetPath(userId, budgetId), groupId)
	err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &group)
	return group, err
}

func (c *Client) CreateGroup(ctx context.Context, userId, budgetId int, in GroupInput) (Group, error) {
	var group Group
	err := c.do(ctx, http.MethodPost, budgetPath(userId, budgetId)+"/groups", in, http.StatusCreated, &group)
	return group, err
}

func (c *Client) UpdateGroup(ctx context.Context, userId, budgetId, groupId int, in GroupInput) (Group, error) {
	var group Group
	path := fmt.Sprintf("%s/groups/%d", budgetPath(userId, budgetId), groupId)
	err := c.do(ctx, http.MethodPatch, path, in, http.StatusCreated, &group)
	return group, err
}

func (c *Client) DeleteGroup(ctx context.Context, userId, budgetId, groupId int) error {
	path := fmt.Sprintf("%s/groups/%d", budgetPath(userId, budgetId), groupId)
	return c.do(ctx, http.MethodDelete, path, nil, http.StatusOK, nil)
}

func (c *Client) ListCategories(ctx context.Context, userId, budgetId int, detailed bool) ([]Category, error) {
	var categories []Category
	path := budgetPath(userId, budgetId) + "/categories" + detailedQuery(detailed)
	err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &categories)
	return categories, err
}

func (c *Client) ListGroupCategories(ctx context.Context, userId, budgetId, groupId int, detailed bool) ([]Category, error) {
	var categories []Category
	path := fmt.Sprintf("%s/groups/%d/categories%s", budgetPath(userId, budgetId), groupId, detailedQuery(detailed))
	err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &categories)
	return categories, err
}

func (c *Client) GetCategory(ctx context.Context, userId, budgetId, categoryId int, detailed bool) (Category, error) {
	var category Category
	path := categoryPath(userId, budgetId, categoryId) + detailedQuery(detailed)
	err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &category)
	return category, err
}

func (c *Client) CreateCategory(ctx context.Context, userId, budgetId int, in CategoryInput) (Category, error) {
	var category Category
	err := c.do(ctx, http.MethodPost, budgetPath(userId, budgetId)+"/categories", in, http.StatusCreated, &category)
	return category, err
}

func (c *Client) UpdateCategory(ctx context.Context, userId, budgetId, categoryId int, in CategoryInput) (Category, error) {
	var category Category
	err := c.do(ctx, http.MethodPatch, categoryPath(userId, budgetId, categoryId), in, http.StatusCreated, &category)
	return category, err
}

func (c *Client) DeleteCategory(ctx context.Context, userId, budgetId, categoryId int) error {
	return c.do(ctx, http.MethodDelete, categoryPath(userId, budgetId, categoryId), nil, http.StatusOK, nil)
}

func (c *Client) ListTransactions(ctx context.Context, userId, budgetId, categoryId int) ([]Transaction, error) {
	var transactions []Transaction
	path := categoryPath(userId, budgetId, categoryId) + "/transactions"
	err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &transactions)
	return transactions, err
}

func (c *Client) GetTransaction(ctx context.Context, userId, budgetId, categoryId, transactionId int) (Transaction, error) {
	var transaction Transaction
	path := fmt.Sprintf("%s/transactions/%d", categoryPath(userId, budgetId, categoryId), transactionId)
	err := c.do(ctx, http.MethodGet, path, nil, http.StatusOK, &transaction)
	return transaction, err
}

func (c *Client) CreateTransaction(ctx context.Context, userId, budgetId, categoryId int, in TransactionInput) (Transaction, error) {
	var transaction Transaction
	path := categoryPath(userId, budgetId, categoryId) + "/transactions"
	err := c.do(ctx, http.MethodPost, path, in, http.StatusCreated, &transaction)
	return transaction, err
}

func (c *Client) UpdateTransaction(ctx context.Context, userId, budgetId, categoryId, transactionId int, in TransactionInput) (Transaction, error) {
	var transaction Transaction
	path := fmt.Sprintf("%s/transactions/%d", categoryPath(userId, budgetId, categoryId), transactionId)
	err := c.do(ctx, http.MethodPatch, path, in, http.StatusCreated, &transaction)
	return transaction, err
}

func (c *Client) DeleteTransaction(ctx context.Context, userId, budgetId, categoryId, transactionId int) error {
	path := fmt.Sprintf("%s/transactions/%d", categoryPath(userId, budgetId, categoryId), transactionId)
	return c.do(ctx, http.MethodDelete, path, nil, http.StatusOK, nil)
}
