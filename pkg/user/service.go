package user

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/event_bus"
	"github.com/timebudget/timebudget/internal/utils"
)

type Service interface {
	Create(ctx context.Context, user User) (User, error)
	Get(ctx context.Context, id int) (User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, id int) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus, clock: clock}
}

func (s *ServiceImpl) Create(ctx context.Context, user User) (User, error) {
	if err := user.validate(); err != nil {
		return User{}, err
	}
	user.CreatedAt = s.clock.Now()
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return User{}, err
	}
	s.notify(ctx, event_bus.ResourceCreated, created.Id)
	return created, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id int) (User, error) {
	return s.repo.Get(ctx, id)
}

// List returns all users, most recently created first.
func (s *ServiceImpl) List(ctx context.Context) ([]User, error) {
	return s.repo.List(ctx)
}

func (s *ServiceImpl) Update(ctx context.Context, user User) (User, error) {
	if err := user.validate(); err != nil {
		return User{}, err
	}
	updated, err := s.repo.Update(ctx, user)
	if err != nil {
		return User{}, err
	}
	s.notify(ctx, event_bus.ResourceUpdated, updated.Id)
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		log.Warnf("failed to delete user %d: %v", id, err)
		return err
	}
	s.notify(ctx, event_bus.ResourceDeleted, id)
	return nil
}

func (s *ServiceImpl) notify(ctx context.Context, eventType event_bus.EventType, id int) {
	s.eventBus.Notify(ctx, eventType, event_bus.ResourceChanged{Kind: event_bus.KindUser, Id: id, UserId: id})
}
