package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitalhq/console-api/internal/domain/model"
	apperrors "github.com/orbitalhq/console-api/internal/errors"
)

func TestAggregatorFanOut(t *testing.T) {
	dir := &stubDirectory{tenants: []model.Tenant{
		{ID: "t-1", Name: "Acme"},
		{ID: "t-2", Slug: "globex"},
		{ID: "t-3"},
	}}
	agg := NewAggregator(AggregatorOptions{Tenants: dir})

	slices, err := agg.FanOut(context.Background(), "sess", "things", func(_ context.Context, tenant model.Tenant) ([]model.Record, error) {
		switch tenant.ID {
		case "t-1":
			return []model.Record{{"id": "a"}}, nil
		case "t-2":
			return nil, errors.New("backend down")
		default:
			return []model.Record{{"id": "b"}, {"id": "c"}}, nil
		}
	})
	require.NoError(t, err)
	require.Len(t, slices, 3)

	// Enumeration order regardless of completion order.
	assert.Equal(t, "t-1", slices[0].Tenant.ID)
	assert.Equal(t, "t-2", slices[1].Tenant.ID)
	assert.Equal(t, "t-3", slices[2].Tenant.ID)

	// Failed tenant keeps its error and contributes nothing.
	assert.Error(t, slices[1].Err)
	assert.Empty(t, slices[1].Records)
	assert.Len(t, slices[2].Records, 2)
}

func TestAggregatorFanOut_EnumerationFailurePropagates(t *testing.T) {
	dir := &stubDirectory{err: apperrors.Upstream(503, "Failed to list tenants")}
	agg := NewAggregator(AggregatorOptions{Tenants: dir})

	_, err := agg.FanOut(context.Background(), "sess", "things", func(context.Context, model.Tenant) ([]model.Record, error) {
		t.Fatal("fetch must not run when enumeration fails")
		return nil, nil
	})
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 503, appErr.Status)
}

func TestAggregatorFanOut_ZeroTenants(t *testing.T) {
	agg := NewAggregator(AggregatorOptions{Tenants: &stubDirectory{}})

	slices, err := agg.FanOut(context.Background(), "sess", "things", func(context.Context, model.Tenant) ([]model.Record, error) {
		return []model.Record{{"id": "x"}}, nil
	})
	require.NoError(t, err)
	assert.Empty(t, slices)
	assert.Empty(t, mergeSlices(slices))
}

func TestMergeSlicesAttribution(t *testing.T) {
	slices := []TenantSlice{
		{
			Tenant: model.Tenant{ID: "t-1", Name: "Acme"},
			// Backend-reported attribution is overwritten.
			Records: []model.Record{{"id": "a", "tenant_id": "spoofed", "tenant_name": "Wrong"}},
		},
		{
			Tenant:  model.Tenant{ID: "t-2", Slug: "globex"},
			Records: []model.Record{{"id": "b"}, nil},
		},
		{
			Tenant:  model.Tenant{ID: "t-3"},
			Records: []model.Record{{"id": "c"}},
		},
	}

	merged := mergeSlices(slices)
	require.Len(t, merged, 3)

	assert.Equal(t, "t-1", merged[0][model.KeyTenantID])
	assert.Equal(t, "Acme", merged[0][model.KeyTenantName])
	// Name falls back to slug, then to id.
	assert.Equal(t, "globex", merged[1][model.KeyTenantName])
	assert.Equal(t, "t-3", merged[2][model.KeyTenantName])
}

func TestSearchRecords(t *testing.T) {
	records := []model.Record{
		{"subject": "Login broken", "status": "open"},
		{"subject": "Billing question", "status": "closed"},
		{"status": "open"},
	}

	assert.Len(t, searchRecords(records, "", "subject"), 3)
	assert.Len(t, searchRecords(records, "LOGIN", "subject", "status"), 1)
	assert.Len(t, searchRecords(records, "open", "subject", "status"), 2)
	assert.Empty(t, searchRecords(records, "nothing", "subject", "status"))
}

func TestSortByTimestamp(t *testing.T) {
	records := []model.Record{
		{"id": "old", "created_at": "2026-01-01T00:00:00Z"},
		{"id": "missing-a"},
		{"id": "new", "updated_at": "2026-06-01T12:00:00Z"},
		{"id": "missing-b"},
		{"id": "mid", "created_at": "2026-03-01T00:00:00Z"},
	}

	sortByTimestamp(records, "updated_at", "created_at")

	ids := make([]string, len(records))
	for i, rec := range records {
		ids[i] = rec.String("id")
	}
	// Newest first; records without a timestamp sort last in fetch order.
	assert.Equal(t, []string{"new", "mid", "old", "missing-a", "missing-b"}, ids)
}
