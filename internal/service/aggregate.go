package service

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/orbitalhq/console-api/internal/domain/model"
	"github.com/orbitalhq/console-api/internal/observability/statsd"
	"github.com/orbitalhq/console-api/internal/ports"
)

// fanOutConcurrency bounds simultaneous per-tenant backend calls during
// cross-tenant aggregation.
const fanOutConcurrency = 8

// TenantSlice is one tenant's contribution to a cross-tenant aggregation.
// A failed tenant keeps its Err and contributes no records; the batch as a
// whole still succeeds.
type TenantSlice struct {
	Tenant  model.Tenant
	Records []model.Record
	Err     error
}

// AggregatorOptions groups dependencies for Aggregator.
type AggregatorOptions struct {
	Tenants ports.TenantDirectory // Required: tenant enumeration
	Logger  *slog.Logger          // Optional: structured logger
	Metrics statsd.Sink           // Optional: fan-out timing and failure counts
}

// Aggregator runs cross-tenant fan-out for platform admins. Tenants are
// enumerated once per request, each tenant is fetched concurrently, and
// per-tenant failures degrade to empty contributions.
type Aggregator struct {
	tenants ports.TenantDirectory
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewAggregator creates an Aggregator. Tenants is required.
func NewAggregator(opts AggregatorOptions) *Aggregator {
	if opts.Tenants == nil {
		panic("Aggregator requires a TenantDirectory")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = statsd.Discard{}
	}
	return &Aggregator{tenants: opts.Tenants, logger: logger, metrics: metrics}
}

// fetchFunc retrieves one tenant's records for the resource being aggregated.
type fetchFunc func(ctx context.Context, tenant model.Tenant) ([]model.Record, error)

// FanOut enumerates the caller's visible tenants and fetches each tenant's
// slice concurrently. An enumeration failure fails the whole aggregation; a
// per-tenant fetch failure is recorded on its slice and logged. Slices come
// back in enumeration order regardless of completion order.
func (a *Aggregator) FanOut(ctx context.Context, session, resource string, fetch fetchFunc) ([]TenantSlice, error) {
	tenants, err := a.tenants.List(ctx, session)
	if err != nil {
		return nil, err
	}

	slices := make([]TenantSlice, len(tenants))
	start := time.Now()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanOutConcurrency)
	for i, tenant := range tenants {
		g.Go(func() error {
			records, fetchErr := fetch(gctx, tenant)
			if fetchErr != nil {
				a.logger.Warn("tenant fetch failed during aggregation",
					"resource", resource,
					"tenant_id", tenant.ID,
					"error", fetchErr)
				a.metrics.Count("aggregate.tenant_failure", 1, map[string]string{"resource": resource})
				slices[i] = TenantSlice{Tenant: tenant, Err: fetchErr}
				return nil
			}
			slices[i] = TenantSlice{Tenant: tenant, Records: records}
			return nil
		})
	}
	// Workers never return errors; Wait only propagates context cancellation.
	if waitErr := g.Wait(); waitErr != nil {
		return nil, waitErr
	}

	a.metrics.Timing("aggregate.fanout_duration", time.Since(start), map[string]string{"resource": resource})
	return slices, nil
}

// mergeSlices flattens per-tenant slices in enumeration order, stamping each
// record with its tenant attribution. Attribution overwrites whatever the
// backend reported; the display name falls back to slug, then id.
func mergeSlices(slices []TenantSlice) []model.Record {
	var merged []model.Record
	for _, s := range slices {
		for _, rec := range s.Records {
			if rec == nil {
				continue
			}
			rec.SetTenant(s.Tenant.ID, s.Tenant.DisplayName())
			merged = append(merged, rec)
		}
	}
	return merged
}

// searchRecords filters by case-insensitive substring match over the given
// text fields. An empty term keeps everything.
func searchRecords(records []model.Record, term string, fields ...string) []model.Record {
	if term == "" {
		return records
	}
	kept := make([]model.Record, 0, len(records))
	for _, rec := range records {
		if rec.MatchesSearch(term, fields...) {
			kept = append(kept, rec)
		}
	}
	return kept
}

// sortByTimestamp orders records by their most recent relevant timestamp,
// newest first. The first present key from keys is each record's timestamp;
// records without one sort last. The sort is stable so equal timestamps keep
// fetch order.
func sortByTimestamp(records []model.Record, keys ...string) {
	sort.SliceStable(records, func(i, j int) bool {
		ti, iok := records[i].Time(keys...)
		tj, jok := records[j].Time(keys...)
		if iok != jok {
			return iok
		}
		return ti.After(tj)
	})
}
