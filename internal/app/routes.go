package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/timebudget/timebudget/internal/rest"
)

const (
	usersPath          = "/api/users"
	userPath           = usersPath + "/{user_id:[0-9]+}"
	authorizationsPath = userPath + "/authorizations"
	authorizationPath  = authorizationsPath + "/{authorized_id:[0-9]+}"
	budgetsPath        = userPath + "/budgets"
	budgetPath         = budgetsPath + "/{budget_id:[0-9]+}"
	groupsPath         = budgetPath + "/groups"
	groupPath          = groupsPath + "/{group_id:[0-9]+}"
	categoriesPath     = budgetPath + "/categories"
	categoryPath       = categoriesPath + "/{category_id:[0-9]+}"
	transactionsPath   = categoryPath + "/transactions"
	transactionPath    = transactionsPath + "/{transaction_id:[0-9]+}"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	r.HandleFunc("/health", health).Methods("GET")

	// Users
	r.HandleFunc(usersPath, deps.UserHandler.List).Methods("GET")
	r.HandleFunc(usersPath, deps.UserHandler.Create).Methods("POST")
	r.HandleFunc(userPath, deps.UserHandler.Get).Methods("GET")
	r.HandleFunc(userPath, deps.UserHandler.Update).Methods("PATCH")
	r.HandleFunc(userPath, deps.UserHandler.Delete).Methods("DELETE")

	// Authorizations
	r.HandleFunc(authorizationsPath, deps.AuthorizationHandler.List).Methods("GET")
	r.HandleFunc(authorizationPath, deps.AuthorizationHandler.Authorize).Methods("PUT")
	r.HandleFunc(authorizationPath, deps.AuthorizationHandler.Revoke).Methods("DELETE")

	// Budgets
	r.HandleFunc(budgetsPath, deps.BudgetHandler.List).Methods("GET")
	r.HandleFunc(budgetsPath, deps.BudgetHandler.Create).Methods("POST")
	r.HandleFunc(budgetPath, deps.BudgetHandler.Get).Methods("GET")
	r.HandleFunc(budgetPath, deps.BudgetHandler.Update).Methods("PATCH")
	r.HandleFunc(budgetPath, deps.BudgetHandler.Delete).Methods("DELETE")
	r.HandleFunc(budgetPath+"/stats", deps.StatsHandler.GetStats).Methods("GET")

	// Groups
	r.HandleFunc(groupsPath, deps.GroupHandler.List).Methods("GET")
	r.HandleFunc(groupsPath, deps.GroupHandler.Create).Methods("POST")
	r.HandleFunc(groupPath, deps.GroupHandler.Get).Methods("GET")
	r.HandleFunc(groupPath, deps.GroupHandler.Update).Methods("PATCH")
	r.HandleFunc(groupPath, deps.GroupHandler.Delete).Methods("DELETE")
	r.HandleFunc(groupPath+"/categories", deps.CategoryHandler.ListByGroup).Methods("GET")

	// Categories
	r.HandleFunc(categoriesPath, deps.CategoryHandler.List).Methods("GET")
	r.HandleFunc(categoriesPath, deps.CategoryHandler.Create).Methods("POST")
	r.HandleFunc(categoryPath, deps.CategoryHandler.Get).Methods("GET")
	r.HandleFunc(categoryPath, deps.CategoryHandler.Update).Methods("PATCH")
	r.HandleFunc(categoryPath, deps.CategoryHandler.Delete).Methods("DELETE")

	// Transactions
	r.HandleFunc(transactionsPath, deps.TransactionHandler.List).Methods("GET")
	r.HandleFunc(transactionsPath, deps.TransactionHandler.Create).Methods("POST")
	r.HandleFunc(transactionPath, deps.TransactionHandler.Get).Methods("GET")
	r.HandleFunc(transactionPath, deps.TransactionHandler.Update).Methods("PATCH")
	r.HandleFunc(transactionPath, deps.TransactionHandler.Delete).Methods("DELETE")

	r.NotFoundHandler = withRequestLog(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		rest.WriteJSON(w, http.StatusNotFound, rest.ErrorResponse{Error: "Resource not found."})
	}))
	r.MethodNotAllowedHandler = withRequestLog(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		rest.WriteJSON(w, http.StatusMethodNotAllowed, rest.ErrorResponse{Error: "Method not allowed."})
	}))
}

type HealthDTO struct {
	Status string `json:"status"`
}

// health godoc
// @Summary Liveness probe
// @Produce json
// @Success 200 {object} HealthDTO
// @Router /health [get]
func health(w http.ResponseWriter, _ *http.Request) {
	rest.WriteJSON(w, http.StatusOK, HealthDTO{Status: "healthy"})
}
