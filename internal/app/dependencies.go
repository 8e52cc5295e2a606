package app

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/timebudget/timebudget/internal/event_bus"
	"github.com/timebudget/timebudget/internal/utils"
	"github.com/timebudget/timebudget/pkg/authorization"
	"github.com/timebudget/timebudget/pkg/budget"
	"github.com/timebudget/timebudget/pkg/category"
	"github.com/timebudget/timebudget/pkg/group"
	"github.com/timebudget/timebudget/pkg/stats"
	"github.com/timebudget/timebudget/pkg/transaction"
	"github.com/timebudget/timebudget/pkg/user"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	EventBus *event_bus.EventBus
	Clock    utils.Clock

	UserService user.Service
	UserHandler *user.Handler

	AuthorizationService authorization.Service
	AuthorizationHandler *authorization.Handler

	BudgetService budget.Service
	BudgetHandler *budget.Handler

	GroupService group.Service
	GroupHandler *group.Handler

	CategoryService category.Service
	CategoryHandler *category.Handler

	TransactionService transaction.Service
	TransactionHandler *transaction.Handler

	StatsService stats.StatsService
	StatsHandler *stats.StatsHandler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(db *pgxpool.Pool, clock utils.Clock) *Dependencies {
	deps := &Dependencies{}

	deps.EventBus = event_bus.NewEventBus()
	deps.Clock = clock
	SubscribeAuditLog(deps.EventBus)

	deps.UserService = user.NewService(user.NewRepository(db), deps.EventBus, deps.Clock)
	deps.UserHandler = user.NewHandler(deps.UserService)

	deps.AuthorizationService = authorization.NewService(authorization.NewRepository(db), deps.EventBus)
	deps.AuthorizationHandler = authorization.NewHandler(deps.AuthorizationService)

	deps.BudgetService = budget.NewService(budget.NewRepository(db), deps.EventBus)
	deps.BudgetHandler = budget.NewHandler(deps.BudgetService)

	deps.GroupService = group.NewService(group.NewRepository(db), deps.EventBus)
	deps.GroupHandler = group.NewHandler(deps.GroupService)

	deps.CategoryService = category.NewService(category.NewRepository(db), deps.EventBus)
	deps.CategoryHandler = category.NewHandler(deps.CategoryService)

	deps.TransactionService = transaction.NewService(transaction.NewRepository(db), deps.EventBus, deps.Clock)
	deps.TransactionHandler = transaction.NewHandler(deps.TransactionService)

	deps.StatsService = stats.NewStatsServiceImpl(deps.CategoryService, deps.GroupService)
	deps.StatsHandler = stats.NewStatsHandler(deps.StatsService, stats.NewCsvStatsRenderer())

	return deps
}
