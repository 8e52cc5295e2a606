package group

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/event_bus"
)

type Service interface {
	Create(ctx context.Context, userId int, group Group) (Group, error)
	Get(ctx context.Context, userId, budgetId, groupId int) (Group, error)
	List(ctx context.Context, userId, budgetId int) ([]Group, error)
	Update(ctx context.Context, userId int, group Group) (Group, error)
	Delete(ctx context.Context, userId, budgetId, groupId int) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) Create(ctx context.Context, userId int, group Group) (Group, error) {
	if err := group.validate(); err != nil {
		return Group{}, err
	}
	created, err := s.repo.Create(ctx, userId, group)
	if err != nil {
		return Group{}, err
	}
	s.notify(ctx, event_bus.ResourceCreated, created.Id, userId)
	return created, nil
}

func (s *ServiceImpl) Get(ctx context.Context, userId, budgetId, groupId int) (Group, error) {
	return s.repo.Get(ctx, userId, budgetId, groupId)
}

func (s *ServiceImpl) List(ctx context.Context, userId, budgetId int) ([]Group, error) {
	return s.repo.List(ctx, userId, budgetId)
}

func (s *ServiceImpl) Update(ctx context.Context, userId int, group Group) (Group, error) {
	if err := group.validate(); err != nil {
		return Group{}, err
	}
	updated, err := s.repo.Update(ctx, userId, group)
	if err != nil {
		return Group{}, err
	}
	s.notify(ctx, event_bus.ResourceUpdated, updated.Id, userId)
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, userId, budgetId, groupId int) error {
	if err := s.repo.Delete(ctx, userId, budgetId, groupId); err != nil {
		log.Warnf("failed to delete group %d of budget %d: %v", groupId, budgetId, err)
		return err
	}
	s.notify(ctx, event_bus.ResourceDeleted, groupId, userId)
	return nil
}

func (s *ServiceImpl) notify(ctx context.Context, eventType event_bus.EventType, groupId, userId int) {
	s.eventBus.Notify(ctx, eventType, event_bus.ResourceChanged{Kind: event_bus.KindGroup, Id: groupId, UserId: userId})
}
