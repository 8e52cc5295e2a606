package transaction

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/event_bus"
	"github.com/timebudget/timebudget/internal/utils"
)

type Service interface {
	Create(ctx context.Context, userId, budgetId int, transaction Transaction) (Transaction, error)
	Get(ctx context.Context, userId, budgetId, categoryId, transactionId int) (Transaction, error)
	List(ctx context.Context, userId, budgetId, categoryId int) ([]Transaction, error)
	Update(ctx context.Context, userId, budgetId int, transaction Transaction) (Transaction, error)
	Delete(ctx context.Context, userId, budgetId, categoryId, transactionId int) error
}

type ServiceImpl struct {
	repo     Repository
	eventBus *event_bus.EventBus
	clock    utils.Clock
}

func NewService(repo Repository, eventBus *event_bus.EventBus, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, eventBus: eventBus, clock: clock}
}

// Create stores the transaction, dated now unless a DateTime is given.
func (s *ServiceImpl) Create(ctx context.Context, userId, budgetId int, transaction Transaction) (Transaction, error) {
	if err := transaction.validate(); err != nil {
		return Transaction{}, err
	}
	if transaction.DateTime.IsZero() {
		transaction.DateTime = s.clock.Now()
	}
	created, err := s.repo.Create(ctx, userId, budgetId, transaction)
	if err != nil {
		return Transaction{}, err
	}
	s.notify(ctx, event_bus.ResourceCreated, created.Id, userId)
	return created, nil
}

func (s *ServiceImpl) Get(ctx context.Context, userId, budgetId, categoryId, transactionId int) (Transaction, error) {
	return s.repo.Get(ctx, userId, budgetId, categoryId, transactionId)
}

func (s *ServiceImpl) List(ctx context.Context, userId, budgetId, categoryId int) ([]Transaction, error) {
	return s.repo.List(ctx, userId, budgetId, categoryId)
}

func (s *ServiceImpl) Update(ctx context.Context, userId, budgetId int, transaction Transaction) (Transaction, error) {
	if err := transaction.validate(); err != nil {
		return Transaction{}, err
	}
	updated, err := s.repo.Update(ctx, userId, budgetId, transaction)
	if err != nil {
		return Transaction{}, err
	}
	s.notify(ctx, event_bus.ResourceUpdated, updated.Id, userId)
	return updated, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, userId, budgetId, categoryId, transactionId int) error {
	if err := s.repo.Delete(ctx, userId, budgetId, categoryId, transactionId); err != nil {
		log.Warnf("failed to delete transaction %d of category %d: %v", transactionId, categoryId, err)
		return err
	}
	s.notify(ctx, event_bus.ResourceDeleted, transactionId, userId)
	return nil
}

func (s *ServiceImpl) notify(ctx context.Context, eventType event_bus.EventType, transactionId, userId int) {
	s.eventBus.Notify(ctx, eventType, event_bus.ResourceChanged{
		Kind:   event_bus.KindTransaction,
		Id:     transactionId,
		UserId: userId,
	})
}
