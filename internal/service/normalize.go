package service

import "github.com/orbitalhq/console-api/internal/domain/model"

// Field alias tables. Older backend versions emit camelCase field names;
// canonical responses use snake_case. Normalization moves the alias value to
// the canonical key unless the canonical key is already set, then drops the
// alias. Applying a normalizer twice is a no-op.
var (
	ticketAliases = map[string]string{
		"tenantId":   "tenant_id",
		"createdAt":  "created_at",
		"updatedAt":  "updated_at",
		"assignedTo": "assigned_to",
		"requesterId": "requester_id",
	}

	auditLogAliases = map[string]string{
		"tenantId":   "tenant_id",
		"actorId":    "actor_id",
		"actorName":  "actor_name",
		"occurredAt": "occurred_at",
		"ipAddress":  "ip_address",
		"createdAt":  "created_at",
	}

	tenantAliases = map[string]string{
		"displayName": "name",
		"createdAt":   "created_at",
	}
)

// normalizeRecord coalesces aliased keys in place and returns the record.
// Nil input passes through unchanged.
func normalizeRecord(rec model.Record, aliases map[string]string) model.Record {
	if rec == nil {
		return nil
	}
	for alias, canonical := range aliases {
		v, ok := rec[alias]
		if !ok {
			continue
		}
		if _, exists := rec[canonical]; !exists {
			rec[canonical] = v
		}
		delete(rec, alias)
	}
	return rec
}

func normalizeTicket(rec model.Record) model.Record {
	return normalizeRecord(rec, ticketAliases)
}

func normalizeAuditLog(rec model.Record) model.Record {
	return normalizeRecord(rec, auditLogAliases)
}

func normalizeTenantRecord(rec model.Record) model.Record {
	return normalizeRecord(rec, tenantAliases)
}

// normalizeAll applies fn to every element of a list response.
func normalizeAll(recs []model.Record, fn func(model.Record) model.Record) []model.Record {
	for i, rec := range recs {
		recs[i] = fn(rec)
	}
	return recs
}
