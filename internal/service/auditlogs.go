package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/orbitalhq/console-api/config"
	"github.com/orbitalhq/console-api/internal/domain/auth"
	"github.com/orbitalhq/console-api/internal/domain/model"
	apperrors "github.com/orbitalhq/console-api/internal/errors"
	"github.com/orbitalhq/console-api/internal/ports"
)

var auditSearchFields = []string{"action", "actor_name", "resource", "severity"}

var auditTimestampKeys = []string{"occurred_at", "created_at"}

// AuditListParams are the accepted query parameters for audit-log listings.
type AuditListParams struct {
	Page     int
	Limit    int
	Search   string
	Severity string
	Action   string
	// From and To bound occurred_at as RFC 3339 strings, forwarded verbatim.
	From string
	To   string
	// TenantID pins a platform admin's listing to one tenant.
	TenantID string
	// Filter is an optional JMESPath expression over merged records.
	Filter string
}

// AuditServiceOptions groups dependencies for AuditService.
type AuditServiceOptions struct {
	Gateway    ports.Gateway // Required: backend access
	Aggregator *Aggregator   // Required: cross-tenant fan-out
	Logger     *slog.Logger

	// FanOutLimit is the per-tenant fetch size during aggregation.
	// Defaults to 100.
	FanOutLimit int
}

// AuditService serves audit logs from audit-service, including the
// cross-tenant numeric summary.
type AuditService struct {
	gateway     ports.Gateway
	aggregator  *Aggregator
	fanOutLimit int
	logger      *slog.Logger
	jems        JMESPathEvaluator
}

// NewAuditService creates an AuditService. Gateway and Aggregator are
// required.
func NewAuditService(opts AuditServiceOptions) *AuditService {
	if opts.Gateway == nil || opts.Aggregator == nil {
		panic("AuditService requires a Gateway and an Aggregator")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := opts.FanOutLimit
	if limit < 1 || limit > 100 {
		limit = 100
	}
	return &AuditService{
		gateway:     opts.Gateway,
		aggregator:  opts.Aggregator,
		fanOutLimit: limit,
		logger:      logger,
		jems:        jmespathLibEvaluator{},
	}
}

// List returns a unified page of audit logs, tenant-scoped or aggregated.
func (s *AuditService) List(ctx context.Context, sess *auth.SessionContext, p AuditListParams) (model.Page[model.Record], error) {
	tenantID := sess.TenantID
	if tenantID == "" {
		tenantID = p.TenantID
	}
	if tenantID != "" {
		return s.listSingleTenant(ctx, sess, tenantID, p)
	}
	return s.listAllTenants(ctx, sess, p)
}

func (s *AuditService) backendQuery(p AuditListParams) url.Values {
	query := url.Values{}
	setIfPresent(query, "severity", p.Severity)
	setIfPresent(query, "action", p.Action)
	setIfPresent(query, "from", p.From)
	setIfPresent(query, "to", p.To)
	return query
}

func (s *AuditService) listSingleTenant(ctx context.Context, sess *auth.SessionContext, tenantID string, p AuditListParams) (model.Page[model.Record], error) {
	query := s.backendQuery(p)
	query.Set("page", strconv.Itoa(p.Page))
	query.Set("limit", strconv.Itoa(p.Limit))
	setIfPresent(query, "search", p.Search)

	resp, err := s.gateway.Do(ctx, ports.BackendCall{
		Service:  config.ServiceAudit,
		Path:     "/audit-logs",
		Query:    query,
		Session:  sess.Session,
		TenantID: tenantID,
	})
	if err != nil {
		return model.Page[model.Record]{}, apperrors.BadGateway("Failed to list audit logs", err)
	}
	if !resp.OK() {
		return model.Page[model.Record]{}, apperrors.Upstream(resp.Status, "Failed to list audit logs")
	}

	var body struct {
		Data  []model.Record `json:"data"`
		Total int            `json:"total"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return model.Page[model.Record]{}, apperrors.BadGateway("Invalid audit log payload", err)
	}

	data := normalizeAll(body.Data, normalizeAuditLog)
	if data == nil {
		data = []model.Record{}
	}
	limit := p.Limit
	if limit < 1 {
		limit = 1
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	return model.Page[model.Record]{
		Data:       data,
		Total:      body.Total,
		Page:       page,
		PageSize:   limit,
		TotalPages: (body.Total + limit - 1) / limit,
	}, nil
}

func (s *AuditService) listAllTenants(ctx context.Context, sess *auth.SessionContext, p AuditListParams) (model.Page[model.Record], error) {
	query := s.backendQuery(p)
	query.Set("limit", strconv.Itoa(s.fanOutLimit))

	slices, err := s.aggregator.FanOut(ctx, sess.Session, "audit-logs", func(ctx context.Context, tenant model.Tenant) ([]model.Record, error) {
		return s.fetchTenantLogs(ctx, sess.Session, tenant.ID, query)
	})
	if err != nil {
		return model.Page[model.Record]{}, err
	}

	merged := normalizeAll(mergeSlices(slices), normalizeAuditLog)
	merged = searchRecords(merged, p.Search, auditSearchFields...)
	merged, err = applyFilter(s.jems, p.Filter, merged)
	if err != nil {
		return model.Page[model.Record]{}, err
	}
	sortByTimestamp(merged, auditTimestampKeys...)
	return model.NewPage(merged, p.Page, p.Limit), nil
}

func (s *AuditService) fetchTenantLogs(ctx context.Context, session, tenantID string, query url.Values) ([]model.Record, error) {
	resp, err := s.gateway.Do(ctx, ports.BackendCall{
		Service:  config.ServiceAudit,
		Path:     "/audit-logs",
		Query:    query,
		Session:  session,
		TenantID: tenantID,
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("audit backend returned %d", resp.Status)
	}
	var body struct {
		Data []model.Record `json:"data"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

// Summary returns the audit counters. Tenant-scoped callers get their own
// tenant's summary; platform admins get a field-wise sum across all tenants,
// with failed tenants contributing zeroes.
func (s *AuditService) Summary(ctx context.Context, sess *auth.SessionContext) (model.AuditSummary, error) {
	if sess.TenantID != "" {
		return s.tenantSummary(ctx, sess.Session, sess.TenantID)
	}

	total := model.AuditSummary{
		BySeverity: map[string]int{},
		ByAction:   map[string]int{},
	}
	slices, err := s.aggregator.FanOut(ctx, sess.Session, "audit-summary", func(ctx context.Context, tenant model.Tenant) ([]model.Record, error) {
		summary, fetchErr := s.tenantSummary(ctx, sess.Session, tenant.ID)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return []model.Record{summaryRecord(summary)}, nil
	})
	if err != nil {
		return model.AuditSummary{}, err
	}

	for _, slice := range slices {
		for _, rec := range slice.Records {
			total.Add(summaryFromRecord(rec))
		}
	}
	return total, nil
}

func (s *AuditService) tenantSummary(ctx context.Context, session, tenantID string) (model.AuditSummary, error) {
	resp, err := s.gateway.Do(ctx, ports.BackendCall{
		Service:  config.ServiceAudit,
		Path:     "/audit-logs/summary",
		Session:  session,
		TenantID: tenantID,
	})
	if err != nil {
		return model.AuditSummary{}, apperrors.BadGateway("Failed to fetch audit summary", err)
	}
	if !resp.OK() {
		return model.AuditSummary{}, apperrors.Upstream(resp.Status, "Failed to fetch audit summary")
	}

	var summary model.AuditSummary
	if err := resp.DecodeJSON(&summary); err != nil {
		return model.AuditSummary{}, apperrors.BadGateway("Invalid audit summary payload", err)
	}
	return summary, nil
}

// summaryRecord and summaryFromRecord shuttle an AuditSummary through the
// record-based fan-out without re-encoding JSON.

func summaryRecord(s model.AuditSummary) model.Record {
	return model.Record{"summary": s}
}

func summaryFromRecord(rec model.Record) model.AuditSummary {
	if s, ok := rec["summary"].(model.AuditSummary); ok {
		return s
	}
	return model.AuditSummary{}
}
