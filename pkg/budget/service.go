package budget

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/event_bus"
)

type Service interface {
	Create(ctx context.Context, budget Budget) (Budget, error)
	Get(ctx context.Context, userId, budgetId int) (Budget, error)
	List(ctx context.Context, userId int) ([]Budget, error)
	Update(ctx context.Context, budget Budget) (Budget, error)
	Delete(ctx context.Context, userId, budgetId int) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) Create(ctx context.Context, budget Budget) (Budget, error) {
	if err := budget.validate(); err != nil {
		return Budget{}, err
	}
	created, err := s.repo.Create(ctx, budget)
	if err != nil {
		return Budget{}, err
	}
	s.notify(ctx, event_bus.ResourceCreated, created)
	return created, nil
}

func (s *ServiceImpl) Get(ctx context.Context, userId, budgetId int) (Budget, error) {
	return s.repo.Get(ctx, userId, budgetId)
}

func (s *ServiceImpl) List(ctx context.Context, userId int) ([]Budget, error) {
	return s.repo.List(ctx, userId)
}

func (s *ServiceImpl) Update(ctx context.Context, budget Budget) (Budget, error) {
	if err := budget.validate(); err != nil {
		return Budget{}, err
	}
	updated, err := s.repo.Update(ctx, budget)
	if err != nil {
		return Budget{}, err
	}
	s.notify(ctx, event_bus.ResourceUpdated, updated)
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, userId, budgetId int) error {
	if err := s.repo.Delete(ctx, userId, budgetId); err != nil {
		log.Warnf("failed to delete budget %d of user %d: %v", budgetId, userId, err)
		return err
	}
	s.notify(ctx, event_bus.ResourceDeleted, Budget{Id: budgetId, UserId: userId})
	return nil
}

func (s *ServiceImpl) notify(ctx context.Context, eventType event_bus.EventType, budget Budget) {
	s.eventBus.Notify(ctx, eventType, event_bus.ResourceChanged{
		Kind:   event_bus.KindBudget,
		Id:     budget.Id,
		UserId: budget.UserId,
	})
}
