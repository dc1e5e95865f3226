package model

import "time"

// Portal activity actions recorded for proxied write operations.
const (
	ActivityTenantCreated = "tenant.created"
	ActivityTenantDeleted = "tenant.deleted"
	ActivityTicketCreated = "ticket.created"
)

// ActivityEvent is a portal-side bookkeeping record for a write operation
// proxied through the console. It is distinct from the backend audit-service
// logs: those describe tenant activity, this describes operator activity.
type ActivityEvent struct {
	ID        string    `json:"id"`
	ActorID   string    `json:"actor_id"`
	ActorName string    `json:"actor_name,omitempty"`
	Action    string    `json:"action"`
	Target    string    `json:"target,omitempty"`
	TenantID  string    `json:"tenant_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
