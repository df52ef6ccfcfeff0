// Package store owns the client-side view of the analysis job
// collection: fetching and refreshing it from the remote gateway,
// submitting new URLs, starting and stopping analyses, and single or
// bulk deletion. The store is the single source of truth for the
// loading and error flags the presentation layer displays.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/fuzumoe/url-insight-dashboard/internal/gateway"
	"github.com/fuzumoe/url-insight-dashboard/internal/metrics"
	"github.com/fuzumoe/url-insight-dashboard/internal/models"
)

// DefaultPageSize is the page size used when a query does not set one.
const DefaultPageSize = 10

// Store is the in-memory authoritative client view of the job set.
//
// Job status is owned by the remote service. Start/stop calls flip the
// local status optimistically (to running/stopped) for UI
// responsiveness; the next refresh overwrites it with the authoritative
// value. Every fetch carries a sequence number and responses that lost
// the race to a newer completion are discarded, so overlapping polls
// and manual refreshes cannot roll the collection back to stale data.
type Store struct {
	gw      gateway.JobGateway
	log     *slog.Logger
	metrics *metrics.DashboardMetrics
	hooks   []func(ids ...string)

	mu         sync.Mutex
	jobs       []models.Job
	pagination models.Pagination
	loading    bool
	lastErr    string
	query      models.ListQuery
	issuedSeq  uint64
	appliedSeq uint64
}

// Option configures the Store
type Option func(*Store)

// WithLogger sets the logger
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithMetrics sets the metrics collector
func WithMetrics(m *metrics.DashboardMetrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithRemovalHook registers a callback invoked with the ids of jobs
// removed from the collection, in the same logical step as the
// removal. The selection tracker uses this to stay a subset of the
// collection.
func WithRemovalHook(hook func(ids ...string)) Option {
	return func(s *Store) { s.hooks = append(s.hooks, hook) }
}

// New creates a job store backed by the given gateway.
func New(gw gateway.JobGateway, opts ...Option) *Store {
	s := &Store{
		gw:  gw,
		log: slog.Default(),
		query: models.ListQuery{
			Page:     1,
			PageSize: DefaultPageSize,
		},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// FetchAll replaces the collection with the requested page of the
// remote job set. It sets loading, clears the previous error, and
// always drops loading again once the newest issued fetch completes,
// success or not.
func (s *Store) FetchAll(ctx context.Context, q models.ListQuery) error {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}

	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.query = q
	s.issuedSeq++
	seq := s.issuedSeq
	s.mu.Unlock()

	page, err := s.gw.List(ctx, q)

	s.mu.Lock()
	defer s.mu.Unlock()

	if seq == s.issuedSeq {
		s.loading = false
	}

	// A newer fetch already completed; this response lost the race and
	// must not overwrite the collection.
	if seq <= s.appliedSeq {
		s.log.Debug("Discarding stale fetch response",
			slog.Uint64("seq", seq),
			slog.Uint64("applied", s.appliedSeq))
		return nil
	}
	s.appliedSeq = seq

	if err != nil {
		s.lastErr = messageOrFallback(err, "failed to fetch jobs")
		s.metrics.RecordRefresh(false)
		s.log.Error("Failed to fetch jobs", slog.Any("error", err))
		return err
	}

	s.jobs = page.Data
	s.pagination = page.Pagination
	s.metrics.RecordRefresh(true)
	s.metrics.SetActiveJobs(countActive(s.jobs))

	s.log.Debug("Job collection refreshed",
		slog.Int("count", len(s.jobs)),
		slog.Int("page", page.Pagination.Page),
		slog.Int("total", page.Pagination.TotalItems))

	return nil
}

// Refresh re-runs the last fetch with the currently active query. Both
// the polling scheduler and manual refresh actions call this.
func (s *Store) Refresh(ctx context.Context) error {
	s.mu.Lock()
	q := s.query
	s.mu.Unlock()
	return s.FetchAll(ctx, q)
}

// AnalyzeURL submits a URL for analysis: validate locally, create the
// job, fetch the full record, start the analysis, then insert the job
// at the front of the collection. A failure at any step aborts the
// insertion; no partial entry is ever added for a job that was created
// remotely but never fetched. The error is stored for passive display
// and returned so the caller can keep the input around for correction.
func (s *Store) AnalyzeURL(ctx context.Context, rawURL string) (*models.Job, error) {
	normalized, err := NormalizeURL(rawURL)
	if err != nil {
		s.setErr(err.Error())
		return nil, err
	}

	id, err := s.gw.Create(ctx, normalized)
	if err != nil {
		return nil, s.fail("failed to analyze url", err)
	}

	job, err := s.gw.Get(ctx, id)
	if err != nil {
		return nil, s.fail("failed to analyze url", err)
	}

	if err := s.gw.StartAnalysis(ctx, id); err != nil {
		return nil, s.fail("failed to analyze url", err)
	}

	// Optimistic: the next refresh carries the authoritative status.
	job.Status = models.JobStatusRunning

	s.mu.Lock()
	s.jobs = append([]models.Job{*job}, s.jobs...)
	s.pagination.TotalItems++
	s.metrics.SetActiveJobs(countActive(s.jobs))
	s.mu.Unlock()

	s.log.Info("Submitted URL for analysis",
		slog.String("jobId", job.ID),
		slog.String("url", normalized))

	return job, nil
}

// StartAnalysis asks the remote service to (re)run analysis for the
// job and optimistically flips the local status to running.
func (s *Store) StartAnalysis(ctx context.Context, id string) error {
	if err := s.gw.StartAnalysis(ctx, id); err != nil {
		return s.fail("failed to start analysis", err)
	}

	s.setStatus(id, models.JobStatusRunning)
	s.log.Info("Analysis started", slog.String("jobId", id))
	return nil
}

// StopAnalysis asks the remote service to stop the job's analysis and
// optimistically flips the local status to stopped.
func (s *Store) StopAnalysis(ctx context.Context, id string) error {
	if err := s.gw.StopAnalysis(ctx, id); err != nil {
		return s.fail("failed to stop analysis", err)
	}

	s.setStatus(id, models.JobStatusStopped)
	s.log.Info("Analysis stopped", slog.String("jobId", id))
	return nil
}

// DeleteOne removes the job remotely, then drops it from the local
// collection and notifies removal hooks.
func (s *Store) DeleteOne(ctx context.Context, id string) error {
	if err := s.gw.Delete(ctx, id); err != nil {
		return s.fail("failed to delete job", err)
	}

	s.removeJobs(id)
	s.log.Info("Job deleted", slog.String("jobId", id))
	return nil
}

// BulkDeleteResult reports the per-id outcomes of a DeleteMany call.
type BulkDeleteResult struct {
	Deleted []string
	Failed  map[string]error
}

// DeleteMany deletes the given jobs in parallel. Each id's outcome is
// independent: a success removes that id from the collection (and the
// selection, via hooks) as soon as it lands, a failure leaves it
// untouched. Failures are aggregated into the returned error; nothing
// is rolled back.
func (s *Store) DeleteMany(ctx context.Context, ids []string) (*BulkDeleteResult, error) {
	result := &BulkDeleteResult{Failed: make(map[string]error)}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, id := range ids {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()

			err := s.gw.Delete(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed[id] = err
				return
			}
			result.Deleted = append(result.Deleted, id)
			// Apply this call's own delta; other deletes may still be
			// in flight against the same collection.
			s.removeJobs(id)
		}(id)
	}

	wg.Wait()

	if len(result.Failed) == 0 {
		s.log.Info("Bulk delete completed", slog.Int("deleted", len(result.Deleted)))
		return result, nil
	}

	errs := make([]error, 0, len(result.Failed))
	for id, err := range result.Failed {
		errs = append(errs, fmt.Errorf("delete job %s: %w", id, err))
	}
	err := errors.Join(errs...)

	s.setErr(fmt.Sprintf("failed to delete %d of %d jobs", len(result.Failed), len(ids)))
	s.log.Error("Bulk delete partially failed",
		slog.Int("deleted", len(result.Deleted)),
		slog.Int("failed", len(result.Failed)))

	return result, err
}

// LoadResults fetches the job's detail view with its broken links.
func (s *Store) LoadResults(ctx context.Context, id string) (*models.AnalysisDetail, error) {
	detail, err := s.gw.Results(ctx, id)
	if err != nil {
		return nil, s.fail("failed to fetch results", err)
	}
	return detail, nil
}

// Jobs returns a copy of the current collection.
func (s *Store) Jobs() []models.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	jobs := make([]models.Job, len(s.jobs))
	copy(jobs, s.jobs)
	return jobs
}

// Pagination returns the pagination of the last applied fetch.
func (s *Store) Pagination() models.Pagination {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pagination
}

// Loading reports whether a fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the message of the last failed operation, or "".
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Query returns the currently active list query.
func (s *Store) Query() models.ListQuery {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// HasActiveJobs reports whether any job is queued or running. The
// polling scheduler stays active exactly while this is true.
func (s *Store) HasActiveJobs() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return countActive(s.jobs) > 0
}

// fail stores a human-readable message for passive display and returns
// the wrapped error for callers that react to the specific failure.
func (s *Store) fail(fallback string, err error) error {
	s.setErr(messageOrFallback(err, fallback))
	return fmt.Errorf("%s: %w", fallback, err)
}

func (s *Store) setErr(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

// setStatus flips the local status of one job. No-op when the job is
// not in the current page.
func (s *Store) setStatus(id string, status models.JobStatus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.jobs {
		if s.jobs[i].ID == id {
			s.jobs[i].Status = status
			break
		}
	}
	s.metrics.SetActiveJobs(countActive(s.jobs))
}

// removeJobs drops the ids from the collection and fires removal hooks
// in the same logical step.
func (s *Store) removeJobs(ids ...string) {
	s.mu.Lock()
	kept := s.jobs[:0]
	for _, job := range s.jobs {
		if !containsID(ids, job.ID) {
			kept = append(kept, job)
		} else if s.pagination.TotalItems > 0 {
			s.pagination.TotalItems--
		}
	}
	s.jobs = kept
	s.metrics.SetActiveJobs(countActive(s.jobs))
	hooks := s.hooks
	s.mu.Unlock()

	for _, hook := range hooks {
		hook(ids...)
	}
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func countActive(jobs []models.Job) int {
	n := 0
	for _, job := range jobs {
		if job.Status.Active() {
			n++
		}
	}
	return n
}

// messageOrFallback extracts a display message from the error, falling
// back to the operation-specific default.
func messageOrFallback(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
