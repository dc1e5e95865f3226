package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitalhq/console-api/config"
	"github.com/orbitalhq/console-api/internal/domain/model"
	apperrors "github.com/orbitalhq/console-api/internal/errors"
)

func newAuditService(gw *stubGateway, tenants ...model.Tenant) *AuditService {
	return NewAuditService(AuditServiceOptions{
		Gateway:    gw,
		Aggregator: NewAggregator(AggregatorOptions{Tenants: &stubDirectory{tenants: tenants}}),
	})
}

func TestAuditListSingleTenantForwardsRange(t *testing.T) {
	gw := newStubGateway()
	gw.respondJSON(t, config.ServiceAudit, "", "/audit-logs", http.StatusOK, map[string]any{
		"data":  []map[string]any{{"id": "l-1", "occurredAt": "2026-04-01T00:00:00Z"}},
		"total": 1,
	})
	svc := newAuditService(gw)

	page, err := svc.List(context.Background(), tenantSession("t-1"), AuditListParams{
		Page: 1, Limit: 20,
		Severity: "critical",
		From:     "2026-04-01T00:00:00Z",
		To:       "2026-04-30T00:00:00Z",
	})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "2026-04-01T00:00:00Z", page.Data[0]["occurred_at"])

	call := gw.lastCall()
	assert.Equal(t, "critical", call.Query.Get("severity"))
	assert.Equal(t, "2026-04-01T00:00:00Z", call.Query.Get("from"))
	assert.Equal(t, "2026-04-30T00:00:00Z", call.Query.Get("to"))
}

func TestAuditListAggregatedSortsAcrossTenants(t *testing.T) {
	gw := newStubGateway()
	gw.respondForTenant(t, "t-1", http.StatusOK, map[string]any{
		"data": []map[string]any{
			{"id": "a", "occurred_at": "2026-01-01T00:00:00Z"},
		},
	})
	gw.respondForTenant(t, "t-2", http.StatusOK, map[string]any{
		"data": []map[string]any{
			{"id": "b", "occurred_at": "2026-03-01T00:00:00Z"},
		},
	})
	svc := newAuditService(gw, model.Tenant{ID: "t-1", Name: "Acme"}, model.Tenant{ID: "t-2", Name: "Globex"})

	page, err := svc.List(context.Background(), platformAdminSession(), AuditListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, page.Data, 2)
	assert.Equal(t, "b", page.Data[0]["id"])
	assert.Equal(t, "Globex", page.Data[0][model.KeyTenantName])
}

func TestAuditSummarySingleTenant(t *testing.T) {
	gw := newStubGateway()
	gw.respondJSON(t, config.ServiceAudit, "", "/audit-logs/summary", http.StatusOK, model.AuditSummary{
		TotalEvents:    10,
		CriticalEvents: 2,
		BySeverity:     map[string]int{"critical": 2, "info": 8},
	})
	svc := newAuditService(gw)

	summary, err := svc.Summary(context.Background(), tenantSession("t-1"))
	require.NoError(t, err)
	assert.Equal(t, 10, summary.TotalEvents)
	assert.Equal(t, 2, summary.CriticalEvents)
}

func TestAuditSummaryAggregated(t *testing.T) {
	gw := newStubGateway()
	// Dual bookkeeping upstream: t-1 reports critical in both places, t-2
	// only in the direct field, t-3 only in the breakdown.
	gw.respondForTenant(t, "t-1", http.StatusOK, model.AuditSummary{
		TotalEvents:    10,
		EventsToday:    1,
		CriticalEvents: 3,
		BySeverity:     map[string]int{"critical": 3, "info": 7},
		ByAction:       map[string]int{"login": 10},
	})
	gw.respondForTenant(t, "t-2", http.StatusOK, model.AuditSummary{
		TotalEvents:    5,
		CriticalEvents: 2,
		ByAction:       map[string]int{"login": 2, "delete": 3},
	})
	gw.respondForTenant(t, "t-3", http.StatusOK, model.AuditSummary{
		TotalEvents: 4,
		BySeverity:  map[string]int{"critical": 1, "warning": 3},
	})
	svc := newAuditService(gw,
		model.Tenant{ID: "t-1"}, model.Tenant{ID: "t-2"}, model.Tenant{ID: "t-3"},
	)

	summary, err := svc.Summary(context.Background(), platformAdminSession())
	require.NoError(t, err)

	assert.Equal(t, 19, summary.TotalEvents)
	assert.Equal(t, 1, summary.EventsToday)
	// 3 + 2 + 1, never double counted.
	assert.Equal(t, 6, summary.CriticalEvents)
	assert.Equal(t, map[string]int{"critical": 4, "info": 7, "warning": 3}, summary.BySeverity)
	assert.Equal(t, map[string]int{"login": 12, "delete": 3}, summary.ByAction)
}

func TestAuditSummaryAggregated_FailedTenantContributesZero(t *testing.T) {
	gw := newStubGateway()
	gw.respondForTenant(t, "t-1", http.StatusOK, model.AuditSummary{TotalEvents: 7})
	gw.respondForTenant(t, "t-2", http.StatusBadGateway, map[string]any{"error": "down"})
	svc := newAuditService(gw, model.Tenant{ID: "t-1"}, model.Tenant{ID: "t-2"})

	summary, err := svc.Summary(context.Background(), platformAdminSession())
	require.NoError(t, err)
	assert.Equal(t, 7, summary.TotalEvents)
}

func TestAuditListEnumerationFailure(t *testing.T) {
	gw := newStubGateway()
	svc := NewAuditService(AuditServiceOptions{
		Gateway: gw,
		Aggregator: NewAggregator(AggregatorOptions{
			Tenants: &stubDirectory{err: apperrors.Upstream(http.StatusBadGateway, "Failed to list tenants")},
		}),
	})

	_, err := svc.List(context.Background(), platformAdminSession(), AuditListParams{Page: 1, Limit: 10})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadGateway, appErr.Status)
}
