// Package models holds the domain types shared by the dashboard core:
// analysis jobs, their status machine, filter criteria and paginated
// collections returned by the remote job service.
package models

import (
	"time"
)

// Job represents one URL submitted for analysis.
type Job struct {
	ID            string     `json:"id"`
	URL           string     `json:"url"`
	Title         string     `json:"title,omitempty"`
	HTMLVersion   string     `json:"html_version,omitempty"`
	InternalLinks int        `json:"internal_link_count"`
	ExternalLinks int        `json:"external_link_count"`
	BrokenLinks   int        `json:"broken_link_count"`
	HasLoginForm  bool       `json:"has_login_form"`
	Status        JobStatus  `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// JobStatus represents the status of a job as reported by the remote
// service. The client never invents transitions; start/stop calls are
// requests and the next refresh carries the authoritative value.
type JobStatus string

const (
	JobStatusQueued  JobStatus = "queued"
	JobStatusRunning JobStatus = "running"
	JobStatusDone    JobStatus = "done"
	JobStatusError   JobStatus = "error"
	JobStatusStopped JobStatus = "stopped"
)

// Active reports whether the job still has work pending on the remote
// side. The polling scheduler keeps refreshing while any job is active.
func (s JobStatus) Active() bool {
	switch s {
	case JobStatusQueued, JobStatusRunning:
		return true
	case JobStatusDone, JobStatusError, JobStatusStopped:
		return false
	default:
		return false
	}
}

// Rerunnable reports whether the "run analysis again" action applies.
// done and stopped are not terminal from the UI's perspective; error is
// retryable as well.
func (s JobStatus) Rerunnable() bool {
	switch s {
	case JobStatusDone, JobStatusError, JobStatusStopped:
		return true
	case JobStatusQueued, JobStatusRunning:
		return false
	default:
		return false
	}
}

// Valid reports whether s is one of the five known states.
func (s JobStatus) Valid() bool {
	switch s {
	case JobStatusQueued, JobStatusRunning, JobStatusDone, JobStatusError, JobStatusStopped:
		return true
	default:
		return false
	}
}

// Label returns the human-readable form used by table and badge
// rendering. Every state is matched explicitly so a new state shows up
// as a compile-time hole here instead of a silently wrong lookup.
func (s JobStatus) Label() string {
	switch s {
	case JobStatusQueued:
		return "Queued"
	case JobStatusRunning:
		return "Running"
	case JobStatusDone:
		return "Done"
	case JobStatusError:
		return "Error"
	case JobStatusStopped:
		return "Stopped"
	default:
		return string(s)
	}
}

// BrokenLink is a child record of a job's analysis result. Read-only on
// the client; fetched alongside job details.
type BrokenLink struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	StatusCode int    `json:"status_code"`
}

// AnalysisDetail is the detail-view payload: the job plus its broken
// link children.
type AnalysisDetail struct {
	Job         Job          `json:"job"`
	BrokenLinks []BrokenLink `json:"broken_links"`
}

// JobFilters is a record of independent optional predicates. A nil
// field means no constraint; every present field narrows the result
// (logical AND). Filters are applied server-side because the backend
// owns pagination counts.
type JobFilters struct {
	Status         *JobStatus `json:"status,omitempty"`
	HasLoginForm   *bool      `json:"has_login_form,omitempty"`
	HasBrokenLinks *bool      `json:"has_broken_links,omitempty"`
	LatestOnly     *bool      `json:"latest_only,omitempty"`
	Search         string     `json:"search,omitempty"`
}

// IsZero reports whether no predicate is set.
func (f JobFilters) IsZero() bool {
	return f.Status == nil && f.HasLoginForm == nil && f.HasBrokenLinks == nil &&
		f.LatestOnly == nil && f.Search == ""
}

// ListQuery is the full argument to the gateway's list operation.
type ListQuery struct {
	Page     int        `json:"page"`
	PageSize int        `json:"page_size"`
	Filters  JobFilters `json:"filters"`
}

// Pagination describes the remote collection the returned page was cut
// from.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// JobPage is one page of the remote job collection.
type JobPage struct {
	Data       []Job      `json:"data"`
	Pagination Pagination `json:"pagination"`
}
