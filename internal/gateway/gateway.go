// Package gateway defines the remote job service interface consumed by
// the dashboard core, plus its HTTP implementation.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/fuzumoe/url-insight-dashboard/internal/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks . JobGateway

// JobGateway is the narrow interface to the remote job service. Job ids
// are opaque tokens; callers never parse them.
type JobGateway interface {
	// Create submits a URL for analysis and returns the new job id.
	Create(ctx context.Context, url string) (string, error)

	// Get returns the full job record.
	Get(ctx context.Context, id string) (*models.Job, error)

	// List returns one page of the job collection, narrowed by the
	// query's filter predicates.
	List(ctx context.Context, q models.ListQuery) (*models.JobPage, error)

	// StartAnalysis asks the service to (re)run analysis for the job.
	StartAnalysis(ctx context.Context, id string) error

	// StopAnalysis asks the service to stop a running analysis.
	StopAnalysis(ctx context.Context, id string) error

	// Delete removes the job and its results.
	Delete(ctx context.Context, id string) error

	// Results returns the job together with its broken-link children.
	Results(ctx context.Context, id string) (*models.AnalysisDetail, error)
}

// ErrNotFound is returned when the service reports the job id unknown.
var ErrNotFound = errors.New("job not found")

// APIError carries the message the service attached to a failed call.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}
