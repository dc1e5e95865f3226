package model

// Tenant is a customer organization, referenced but never owned by the
// console: it is enumerated via the tenant-service membership listing and
// mutated only through documented proxy calls.
type Tenant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Status string `json:"status,omitempty"`
}

// DisplayName returns the best human-readable label for the tenant,
// falling back to slug, then the raw id.
func (t Tenant) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	if t.Slug != "" {
		return t.Slug
	}
	return t.ID
}
