package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/sync/errgroup"

	"github.com/orbitalhq/console-api/internal/domain/model"
	apperrors "github.com/orbitalhq/console-api/internal/errors"
	"github.com/orbitalhq/console-api/internal/observability/statsd"
	"github.com/orbitalhq/console-api/internal/ports"
)

// ReleaseFetcher is the GitHub API surface the release aggregation needs.
// Both methods return the raw JSON payload, or nil when the resource does not
// exist for the repository.
type ReleaseFetcher interface {
	LatestRelease(ctx context.Context, repo string) ([]byte, error)
	LatestWorkflowRun(ctx context.Context, repo string) ([]byte, error)
}

// CI status extraction paths over the raw GitHub payloads.
const (
	ciStatusPath     = "workflow_runs[0].status"
	ciConclusionPath = "workflow_runs[0].conclusion"
	ciURLPath        = "workflow_runs[0].html_url"
)

// ReleaseServiceOptions groups dependencies for ReleaseService.
type ReleaseServiceOptions struct {
	Fetcher ReleaseFetcher        // Required: GitHub API client
	Cache   ports.CacheRepository // Required: read-through response cache
	Config  ReleaseServiceConfig
	Logger  *slog.Logger
	Metrics statsd.Sink
}

// ReleaseServiceConfig holds the repository list and cache behavior.
type ReleaseServiceConfig struct {
	// Repos lists "owner/name" repositories to aggregate.
	Repos []string
	// TTL bounds response staleness. Defaults to 30 seconds.
	TTL time.Duration
}

// ReleaseService aggregates latest-release and CI-run status for the
// configured repositories, cached with a short TTL to keep GitHub rate-limit
// pressure low. Staleness up to the TTL is accepted.
type ReleaseService struct {
	fetcher ReleaseFetcher
	cache   ports.CacheRepository
	repos   []string
	ttl     time.Duration
	logger  *slog.Logger
	metrics statsd.Sink
}

// NewReleaseService creates a ReleaseService. Fetcher and Cache are required.
func NewReleaseService(opts ReleaseServiceOptions) *ReleaseService {
	if opts.Fetcher == nil || opts.Cache == nil {
		panic("ReleaseService requires a Fetcher and a Cache")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = statsd.Discard{}
	}
	ttl := opts.Config.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &ReleaseService{
		fetcher: opts.Fetcher,
		cache:   opts.Cache,
		repos:   opts.Config.Repos,
		ttl:     ttl,
		logger:  logger,
		metrics: metrics,
	}
}

// List returns the release/CI status for every configured repository,
// serving from cache when a fresh entry exists.
func (s *ReleaseService) List(ctx context.Context) ([]model.RepoStatus, error) {
	key := s.cacheKey()

	if cached, err := s.cache.Get(ctx, key); err != nil {
		s.logger.Warn("release cache read failed", "error", err)
	} else if cached != nil {
		var statuses []model.RepoStatus
		if err := json.Unmarshal(cached, &statuses); err == nil {
			s.metrics.Count("releases.cache", 1, map[string]string{"result": "hit"})
			return statuses, nil
		}
		s.logger.Warn("release cache entry corrupt, refetching", "key", key)
	}
	s.metrics.Count("releases.cache", 1, map[string]string{"result": "miss"})

	statuses, err := s.fetchAll(ctx)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(statuses); err == nil {
		if err := s.cache.Set(ctx, key, encoded, s.ttl); err != nil {
			s.logger.Warn("release cache write failed", "error", err)
		}
	}
	return statuses, nil
}

// cacheKey is the request signature: the ordered repo list is the only input
// that changes the response.
func (s *ReleaseService) cacheKey() string {
	return "releases:" + strings.Join(s.repos, ",")
}

func (s *ReleaseService) fetchAll(ctx context.Context) ([]model.RepoStatus, error) {
	statuses := make([]model.RepoStatus, len(s.repos))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, repo := range s.repos {
		g.Go(func() error {
			status, err := s.fetchRepo(gctx, repo)
			if err != nil {
				return fmt.Errorf("repo %s: %w", repo, err)
			}
			statuses[i] = status
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperrors.BadGateway("Failed to fetch release status", err)
	}
	return statuses, nil
}

func (s *ReleaseService) fetchRepo(ctx context.Context, repo string) (model.RepoStatus, error) {
	status := model.RepoStatus{Repo: repo}

	release, err := s.fetcher.LatestRelease(ctx, repo)
	if err != nil {
		return status, err
	}
	if release != nil {
		var rel struct {
			TagName     string     `json:"tag_name"`
			Name        string     `json:"name"`
			PublishedAt *time.Time `json:"published_at"`
		}
		if err := json.Unmarshal(release, &rel); err != nil {
			return status, fmt.Errorf("decode release: %w", err)
		}
		status.ReleaseTag = rel.TagName
		status.ReleaseName = rel.Name
		status.PublishedAt = rel.PublishedAt
	}

	runs, err := s.fetcher.LatestWorkflowRun(ctx, repo)
	if err != nil {
		return status, err
	}
	if runs != nil {
		var payload any
		if err := json.Unmarshal(runs, &payload); err != nil {
			return status, fmt.Errorf("decode workflow runs: %w", err)
		}
		status.CIStatus = searchString(payload, ciStatusPath)
		status.CIConclusion = searchString(payload, ciConclusionPath)
		status.CIWorkflowURL = searchString(payload, ciURLPath)
	}
	return status, nil
}

// searchString evaluates a JMESPath expression and returns the string result,
// or empty when the path is absent or non-string.
func searchString(data any, expr string) string {
	res, err := jmespath.Search(expr, data)
	if err != nil {
		return ""
	}
	s, _ := res.(string)
	return s
}
