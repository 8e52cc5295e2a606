package app

import (
	log "github.com/sirupsen/logrus"
	"github.com/timebudget/timebudget/internal/event_bus"
)

// SubscribeAuditLog writes one Info line per committed mutation.
func SubscribeAuditLog(eventBus *event_bus.EventBus) {
	for _, eventType := range []event_bus.EventType{
		event_bus.ResourceCreated,
		event_bus.ResourceUpdated,
		event_bus.ResourceDeleted,
	} {
		event_bus.SubscribeTyped(eventBus, eventType, func(e event_bus.EventT[event_bus.ResourceChanged]) error {
			log.WithFields(log.Fields{
				"event":   e.Type,
				"kind":    e.Data.Kind,
				"id":      e.Data.Id,
				"user_id": e.Data.UserId,
			}).Info("audit")
			return nil
		})
	}
}
