package authorization

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/event_bus"
)

type Service interface {
	List(ctx context.Context, authorizerId int) ([]Link, error)
	Authorize(ctx context.Context, link Link) (Link, error)
	Revoke(ctx context.Context, link Link) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
}

func NewService(repo Repository, eventBus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus}
}

func (s *ServiceImpl) List(ctx context.Context, authorizerId int) ([]Link, error) {
	return s.repo.List(ctx, authorizerId)
}

// Authorize grants access. Repeating it for the same pair changes nothing.
func (s *ServiceImpl) Authorize(ctx context.Context, link Link) (Link, error) {
	if err := link.validate(); err != nil {
		return Link{}, err
	}
	stored, err := s.repo.Upsert(ctx, link)
	if err != nil {
		return Link{}, err
	}
	s.notify(ctx, event_bus.ResourceCreated, stored)
	return stored, nil
}

func (s *ServiceImpl) Revoke(ctx context.Context, link Link) error {
	if err := s.repo.Delete(ctx, link); err != nil {
		log.Warnf("failed to revoke authorization %d->%d: %v", link.AuthorizerId, link.AuthorizedId, err)
		return err
	}
	s.notify(ctx, event_bus.ResourceDeleted, link)
	return nil
}

func (s *ServiceImpl) notify(ctx context.Context, eventType event_bus.EventType, link Link) {
	s.eventBus.Notify(ctx, eventType, event_bus.ResourceChanged{
		Kind:   event_bus.KindAuthorization,
		Id:     link.AuthorizedId,
		UserId: link.AuthorizerId,
	})
}
