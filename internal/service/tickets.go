package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/orbitalhq/console-api/config"
	"github.com/orbitalhq/console-api/internal/domain/auth"
	"github.com/orbitalhq/console-api/internal/domain/model"
	apperrors "github.com/orbitalhq/console-api/internal/errors"
	"github.com/orbitalhq/console-api/internal/ports"
)

// ticketSearchFields are the text fields matched by the search term.
var ticketSearchFields = []string{"subject", "description", "status", "priority"}

// ticketTimestampKeys order the merged set; the first present key wins.
var ticketTimestampKeys = []string{"updated_at", "created_at"}

// TicketListParams are the accepted query parameters for ticket listings.
type TicketListParams struct {
	Page     int
	Limit    int
	Search   string
	Status   string
	Priority string
	// TenantID pins a platform admin's listing to one tenant.
	TenantID string
	// Filter is an optional JMESPath expression over merged records.
	Filter string
}

// TicketServiceOptions groups dependencies for TicketService.
type TicketServiceOptions struct {
	Gateway    ports.Gateway    // Required: backend access
	Aggregator *Aggregator      // Required: cross-tenant fan-out
	Activity   *ActivityService // Optional: portal activity recording
	Logger     *slog.Logger

	// FanOutLimit is the per-tenant fetch size during aggregation.
	// Defaults to 100.
	FanOutLimit int
}

// TicketService serves support tickets from tickets-service. Tenant-scoped
// callers get a direct passthrough; platform admins without a tenant filter
// get the cross-tenant aggregation.
type TicketService struct {
	gateway     ports.Gateway
	aggregator  *Aggregator
	activity    *ActivityService
	fanOutLimit int
	logger      *slog.Logger
	jems        JMESPathEvaluator
}

// NewTicketService creates a TicketService. Gateway and Aggregator are
// required.
func NewTicketService(opts TicketServiceOptions) *TicketService {
	if opts.Gateway == nil || opts.Aggregator == nil {
		panic("TicketService requires a Gateway and an Aggregator")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := opts.FanOutLimit
	if limit < 1 || limit > 100 {
		limit = 100
	}
	return &TicketService{
		gateway:     opts.Gateway,
		aggregator:  opts.Aggregator,
		activity:    opts.Activity,
		fanOutLimit: limit,
		logger:      logger,
		jems:        jmespathLibEvaluator{},
	}
}

// List returns a unified page of tickets. A caller bound to a tenant, or a
// platform admin pinning tenant_id, gets a single-tenant passthrough; an
// unscoped platform admin gets the cross-tenant aggregation.
func (s *TicketService) List(ctx context.Context, sess *auth.SessionContext, p TicketListParams) (model.Page[model.Record], error) {
	tenantID := sess.TenantID
	if tenantID == "" {
		tenantID = p.TenantID
	}
	if tenantID != "" {
		return s.listSingleTenant(ctx, sess, tenantID, p)
	}
	return s.listAllTenants(ctx, sess, p)
}

func (s *TicketService) listSingleTenant(ctx context.Context, sess *auth.SessionContext, tenantID string, p TicketListParams) (model.Page[model.Record], error) {
	query := url.Values{
		"page":  {strconv.Itoa(p.Page)},
		"limit": {strconv.Itoa(p.Limit)},
	}
	setIfPresent(query, "search", p.Search)
	setIfPresent(query, "status", p.Status)
	setIfPresent(query, "priority", p.Priority)

	resp, err := s.gateway.Do(ctx, ports.BackendCall{
		Service:  config.ServiceTickets,
		Path:     "/tickets",
		Query:    query,
		Session:  sess.Session,
		TenantID: tenantID,
	})
	if err != nil {
		return model.Page[model.Record]{}, apperrors.BadGateway("Failed to list tickets", err)
	}
	if !resp.OK() {
		return model.Page[model.Record]{}, apperrors.Upstream(resp.Status, "Failed to list tickets")
	}

	var body struct {
		Data  []model.Record `json:"data"`
		Total int            `json:"total"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return model.Page[model.Record]{}, apperrors.BadGateway("Invalid ticket listing payload", err)
	}

	data := normalizeAll(body.Data, normalizeTicket)
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

func (s *TicketService) listAllTenants(ctx context.Context, sess *auth.SessionContext, p TicketListParams) (model.Page[model.Record], error) {
	query := url.Values{"limit": {strconv.Itoa(s.fanOutLimit)}}
	setIfPresent(query, "status", p.Status)
	setIfPresent(query, "priority", p.Priority)

	slices, err := s.aggregator.FanOut(ctx, sess.Session, "tickets", func(ctx context.Context, tenant model.Tenant) ([]model.Record, error) {
		return s.fetchTenantTickets(ctx, sess.Session, tenant.ID, query)
	})
	if err != nil {
		return model.Page[model.Record]{}, err
	}

	merged := normalizeAll(mergeSlices(slices), normalizeTicket)
	merged = searchRecords(merged, p.Search, ticketSearchFields...)
	merged, err = applyFilter(s.jems, p.Filter, merged)
	if err != nil {
		return model.Page[model.Record]{}, err
	}
	sortByTimestamp(merged, ticketTimestampKeys...)
	return model.NewPage(merged, p.Page, p.Limit), nil
}

func (s *TicketService) fetchTenantTickets(ctx context.Context, session, tenantID string, query url.Values) ([]model.Record, error) {
	resp, err := s.gateway.Do(ctx, ports.BackendCall{
		Service:  config.ServiceTickets,
		Path:     "/tickets",
		Query:    query,
		Session:  session,
		TenantID: tenantID,
	})
	if err != nil {
		return nil, err
	}
	if !resp.OK() {
		return nil, fmt.Errorf("tickets backend returned %d", resp.Status)
	}
	var body struct {
		Data []model.Record `json:"data"`
	}
	if err := resp.DecodeJSON(&body); err != nil {
		return nil, err
	}
	return body.Data, nil
}

// Get fetches one ticket in the caller's tenant scope. A backend 404 is
// propagated as not found.
func (s *TicketService) Get(ctx context.Context, sess *auth.SessionContext, id string) (model.Record, error) {
	resp, err := s.gateway.Do(ctx, ports.BackendCall{
		Service: config.ServiceTickets,
		Path:    fmt.Sprintf("/tickets/%s", url.PathEscape(id)),
		Session: sess.Session,
	})
	if err != nil {
		return nil, apperrors.BadGateway("Failed to fetch ticket", err)
	}
	if resp.Status == http.StatusNotFound {
		return nil, apperrors.NotFound("Ticket not found")
	}
	if !resp.OK() {
		return nil, apperrors.Upstream(resp.Status, "Failed to fetch ticket")
	}

	var rec model.Record
	if err := resp.DecodeJSON(&rec); err != nil {
		return nil, apperrors.BadGateway("Invalid ticket payload", err)
	}
	return normalizeTicket(rec), nil
}

// Create proxies ticket creation. The subject field is validated before any
// network call.
func (s *TicketService) Create(ctx context.Context, sess *auth.SessionContext, input model.Record) (model.Record, error) {
	if strings.TrimSpace(input.String("subject")) == "" {
		return nil, apperrors.Validation("subject", "Subject is required")
	}

	resp, err := s.gateway.Do(ctx, ports.BackendCall{
		Service: config.ServiceTickets,
		Method:  http.MethodPost,
		Path:    "/tickets",
		Body:    input,
		Session: sess.Session,
	})
	if err != nil {
		return nil, apperrors.BadGateway("Failed to create ticket", err)
	}
	if !resp.OK() {
		return nil, apperrors.Upstream(resp.Status, "Failed to create ticket")
	}

	var created model.Record
	if err := resp.DecodeJSON(&created); err != nil {
		return nil, apperrors.BadGateway("Invalid ticket payload", err)
	}
	created = normalizeTicket(created)

	s.activity.Record(ctx, sess, model.ActivityTicketCreated, created.String("subject"), created.String("tenant_id"))
	return created, nil
}

// setIfPresent adds a query parameter only when the value is non-empty.
func setIfPresent(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
