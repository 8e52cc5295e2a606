package category

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/event_bus"
)

type Service interface {
	Create(ctx context.Context, userId int, category Category) (Category, error)
	Get(ctx context.Context, userId, budgetId, categoryId int, detailed bool) (Category, error)
	List(ctx context.Context, userId, budgetId int, detailed bool) ([]Category, error)
	ListByGroup(ctx context.Context, userId, budgetId, groupId int, detailed bool) ([]Category, error)
	UsedTime(ctx context.Context, userId, budgetId, categoryId int) (time.Duration, error)
	Update(ctx context.Context, userId int, category Category) (Category, error)
	Delete(ctx context.Context, userId, budgetId, categoryId int) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) Create(ctx context.Context, userId int, category Category) (Category, error) {
	if err := category.validate(); err != nil {
		return Category{}, err
	}
	created, err := s.repo.Create(ctx, userId, category)
	if err != nil {
		return Category{}, err
	}
	s.notify(ctx, event_bus.ResourceCreated, created.Id, userId)
	return created, nil
}

// Get reads one category. A detailed read also sums the time of its transactions.
func (s *ServiceImpl) Get(ctx context.Context, userId, budgetId, categoryId int, detailed bool) (Category, error) {
	return s.repo.Get(ctx, userId, budgetId, categoryId, detailed)
}

func (s *ServiceImpl) List(ctx context.Context, userId, budgetId int, detailed bool) ([]Category, error) {
	return s.repo.List(ctx, userId, budgetId, detailed)
}

func (s *ServiceImpl) ListByGroup(ctx context.Context, userId, budgetId, groupId int, detailed bool) ([]Category, error) {
	return s.repo.ListByGroup(ctx, userId, budgetId, groupId, detailed)
}

// UsedTime is the sum of the periods of every transaction of the category,
// zero when it has none.
func (s *ServiceImpl) UsedTime(ctx context.Context, userId, budgetId, categoryId int) (time.Duration, error) {
	category, err := s.repo.Get(ctx, userId, budgetId, categoryId, true)
	if err != nil {
		return 0, err
	}
	if category.TimeUsed == nil {
		return 0, nil
	}
	return *category.TimeUsed, nil
}

func (s *ServiceImpl) Update(ctx context.Context, userId int, category Category) (Category, error) {
	if err := category.validate(); err != nil {
		return Category{}, err
	}
	updated, err := s.repo.Update(ctx, userId, category)
	if err != nil {
		return Category{}, err
	}
	s.notify(ctx, event_bus.ResourceUpdated, updated.Id, userId)
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, userId, budgetId, categoryId int) error {
	if err := s.repo.Delete(ctx, userId, budgetId, categoryId); err != nil {
		log.Warnf("failed to delete category %d of budget %d: %v", categoryId, budgetId, err)
		return err
	}
	s.notify(ctx, event_bus.ResourceDeleted, categoryId, userId)
	return nil
}

func (s *ServiceImpl) notify(ctx context.Context, eventType event_bus.EventType, categoryId, userId int) {
	s.eventBus.Notify(ctx, eventType, event_bus.ResourceChanged{Kind: event_bus.KindCategory, Id: categoryId, UserId: userId})
}
