package model

import (
	"strings"
	"time"
)

// Record is a loosely-typed backend entity flowing through the aggregation
// pipeline. Backends disagree on field naming and shape, so records stay as
// decoded JSON objects; normalizers coalesce them into canonical keys and the
// aggregator annotates tenant attribution.
type Record map[string]any

// Tenant attribution keys attached to every record during cross-tenant
// fan-out. Each aggregated record carries exactly one attribution matching
// the backend call that produced it.
const (
	KeyTenantID   = "tenant_id"
	KeyTenantName = "tenant_name"
)

// String returns the value under key when it is a string, else "".
func (r Record) String(key string) string {
	if r == nil {
		return ""
	}
	s, _ := r[key].(string)
	return s
}

// SetTenant stamps tenant attribution onto the record, overwriting whatever
// the backend sent so attribution always matches the call that produced it.
func (r Record) SetTenant(id, name string) {
	if r == nil {
		return
	}
	r[KeyTenantID] = id
	r[KeyTenantName] = name
}

// Time returns the first parseable timestamp among keys. Backends emit
// RFC 3339 with or without fractional seconds.
func (r Record) Time(keys ...string) (time.Time, bool) {
	for _, key := range keys {
		s := r.String(key)
		if s == "" {
			continue
		}
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// MatchesSearch reports whether any of the named text fields contains term,
// case-insensitively. An empty term matches everything.
func (r Record) MatchesSearch(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(r.String(f)), term) {
			return true
		}
	}
	return false
}
