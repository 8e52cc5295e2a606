package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

type recordedRequest struct {
	method string
	path   string
	query  string
	body   string
}

// newServer answers every request with status and body and records what it received.
func newServer(t *testing.T, status int, body string) (*Client, *recordedRequest) {
	t.Helper()
	recorded := &recordedRequest{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		*recorded = recordedRequest{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, body: string(payload)}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return New(server.URL+"/", server.Client()), recorded
}

func TestClient_ListUsers(t *testing.T) {
	c, recorded := newServer(t, http.StatusOK,
		`[{"user_id":2,"username":"bob","email":"bob@example.com","created_at":"2024-03-01T09:30:00Z"},
		  {"user_id":1,"username":"ann","email":"ann@example.com","created_at":"2024-02-01T09:30:00Z"}]`)

	// when
	users, err := c.ListUsers(ctx)

	// then
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, recorded.method)
	assert.Equal(t, "/api/users", recorded.path)
	require.Len(t, users, 2)
	assert.Equal(t, User{
		Id:        2,
		Username:  "bob",
		Email:     "bob@example.com",
		CreatedAt: time.Date(2024, 3, 1, 9, 30, 0, 0, time.UTC),
	}, users[0])
}

func TestClient_CreateCategory(t *testing.T) {
	c, recorded := newServer(t, http.StatusCreated,
		`{"category_id":4,"category_name":"Fiction","time_allocated":3600,"budget_id":1,"group_id":2}`)
	groupId := 2

	// when
	category, err := c.CreateCategory(ctx, 5, 1, CategoryInput{Name: "Fiction", TimeAllocated: 3600, GroupId: &groupId})

	// then
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, recorded.method)
	assert.Equal(t, "/api/users/5/budgets/1/categories", recorded.path)
	assert.JSONEq(t, `{"category_name":"Fiction","time_allocated":3600,"group_id":2}`, recorded.body)
	assert.Equal(t, 4, category.Id)
	require.NotNil(t, category.GroupId)
	assert.Equal(t, 2, *category.GroupId)
	assert.Nil(t, category.TimeUsed)
}

func TestClient_DetailedCategories(t *testing.T) {
	c, recorded := newServer(t, http.StatusOK,
		`[{"category_id":4,"category_name":"Fiction","time_allocated":3600,"budget_id":1,"group_id":null,"time_used":1500}]`)

	categories, err := c.ListGroupCategories(ctx, 5, 1, 2, true)

	require.NoError(t, err)
	assert.Equal(t, "/api/users/5/budgets/1/groups/2/categories", recorded.path)
	assert.Equal(t, "detailed=true", recorded.query)
	require.Len(t, categories, 1)
	assert.Nil(t, categories[0].GroupId)
	require.NotNil(t, categories[0].TimeUsed)
	assert.Equal(t, int64(1500), *categories[0].TimeUsed)
}

func TestClient_UpdateTransactionKeepsDate(t *testing.T) {
	c, recorded := newServer(t, http.StatusCreated,
		`{"transaction_id":9,"transaction_name":"Dune","period":600,"date_time":"2024-03-01T09:30:00Z","category_id":4}`)

	// when
	_, err := c.UpdateTransaction(ctx, 5, 1, 4, 9, TransactionInput{Name: "Dune", Period: 600})

	// then
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, recorded.method)
	assert.Equal(t, "/api/users/5/budgets/1/categories/4/transactions/9", recorded.path)
	assert.JSONEq(t, `{"transaction_name":"Dune","period":600}`, recorded.body)
}

func TestClient_Errors(t *testing.T) {
	t.Run("should expose not found", func(t *testing.T) {
		c, _ := newServer(t, http.StatusNotFound, `{"error":"Budget not found."}`)

		_, err := c.GetBudget(ctx, 999, 1)

		assert.ErrorIs(t, err, ErrNotFound)
		assert.EqualError(t, err, "Budget not found.")
	})

	t.Run("should carry validation message", func(t *testing.T) {
		c, _ := newServer(t, http.StatusBadRequest, `{"error":"time_allocated is required."}`)

		_, err := c.CreateCategory(ctx, 1, 1, CategoryInput{Name: "Fiction"})

		var apiErr *ApiError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, "time_allocated is required.", apiErr.Message)
		assert.NotErrorIs(t, err, ErrNotFound)
	})

	t.Run("should tolerate bodies without error field", func(t *testing.T) {
		c, _ := newServer(t, http.StatusBadGateway, `<html>bad gateway</html>`)

		err := c.DeleteUser(ctx, 1)

		assert.EqualError(t, err, "request failed with status 502")
	})

	t.Run("should report unreachable server", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		_, err := New(url, nil).ListUsers(ctx)

		require.Error(t, err)
		var apiErr *ApiError
		assert.False(t, errors.As(err, &apiErr))
	})
}

func TestClient_Health(t *testing.T) {
	c, recorded := newServer(t, http.StatusOK, `{"status":"healthy"}`)

	require.NoError(t, c.Health(ctx))
	assert.Equal(t, "/health", recorded.path)
}

func TestClient_Authorize(t *testing.T) {
	c, recorded := newServer(t, http.StatusCreated, `{"authorizer_id":1,"authorized_id":2}`)

	link, err := c.Authorize(ctx, 1, 2)

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, recorded.method)
	assert.Equal(t, "/api/users/1/authorizations/2", recorded.path)
	assert.Empty(t, recorded.body)
	assert.Equal(t, Link{AuthorizerId: 1, AuthorizedId: 2}, link)
}

func TestClient_BudgetStats(t *testing.T) {
	c, recorded := newServer(t, http.StatusOK,
		`{"budget_id":3,"categories":[{"category_id":4,"category_name":"Fiction","group_id":null,
		  "time_allocated":3600,"time_used":4000,"remaining":-400}],
		  "total_allocated":3600,"total_used":4000,"total_remaining":-400}`)

	stats, err := c.BudgetStats(ctx, 1, 3)

	require.NoError(t, err)
	assert.Equal(t, "/api/users/1/budgets/3/stats", recorded.path)
	require.Len(t, stats.Categories, 1)
	assert.Nil(t, stats.Categories[0].GroupId)
	assert.Equal(t, int64(-400), stats.TotalRemaining)
}
