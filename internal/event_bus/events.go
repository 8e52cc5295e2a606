package event_bus

const (
	ResourceCreated EventType = "resource.created"
	ResourceUpdated EventType = "resource.updated"
	ResourceDeleted EventType = "resource.deleted"
)

type ResourceKind string

const (
	KindUser          ResourceKind = "user"
	KindAuthorization ResourceKind = "authorization"
	KindBudget        ResourceKind = "budget"
	KindGroup         ResourceKind = "group"
	KindCategory      ResourceKind = "category"
	KindTransaction   ResourceKind = "transaction"
)

// ResourceChanged describes a committed mutation of one entity.
type ResourceChanged struct {
	Kind ResourceKind
	Id   int
	// UserId is the user at the root of the entity's ownership chain.
	UserId int
}
