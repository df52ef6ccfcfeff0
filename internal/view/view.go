// Package view derives the visible job subset and order: it owns the
// filter criteria, the sort column and direction, and the current page,
// and re-fetches through the store whenever any of them change. Filters
// and pagination are applied server-side because the backend owns the
// collection counts; sorting reorders the fetched page client-side.
package view

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/fuzumoe/url-insight-dashboard/internal/models"
)

// JobSource is the slice of the job store the controller drives.
type JobSource interface {
	FetchAll(ctx context.Context, q models.ListQuery) error
	Jobs() []models.Job
	Pagination() models.Pagination
}

// SortDirection orders a sorted column.
type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// SortField names a column that supports client-visible reordering.
type SortField string

const (
	SortNone          SortField = ""
	SortByTitle       SortField = "title"
	SortByURL         SortField = "url"
	SortByStatus      SortField = "status"
	SortByInternal    SortField = "internal_links"
	SortByExternal    SortField = "external_links"
	SortByBrokenLinks SortField = "broken_links"
	SortByCreatedAt   SortField = "created_at"
)

// Controller maintains the view state on top of a job source.
type Controller struct {
	source JobSource

	mu       sync.Mutex
	filters  models.JobFilters
	field    SortField
	dir      SortDirection
	page     int
	pageSize int
}

// NewController creates a controller on page 1 with the given page
// size and no filters.
func NewController(source JobSource, pageSize int) *Controller {
	if pageSize < 1 {
		pageSize = 10
	}
	return &Controller{
		source:   source,
		dir:      Ascending,
		page:     1,
		pageSize: pageSize,
	}
}

// Filters returns the current criteria record.
func (c *Controller) Filters() models.JobFilters {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filters
}

// SetStatusFilter merges a status predicate into the criteria (nil
// clears it) and re-fetches from page 1.
func (c *Controller) SetStatusFilter(ctx context.Context, status *models.JobStatus) error {
	c.mu.Lock()
	c.filters.Status = status
	c.page = 1
	c.mu.Unlock()
	return c.fetch(ctx)
}

// SetLoginFormFilter merges a login-form predicate into the criteria.
func (c *Controller) SetLoginFormFilter(ctx context.Context, hasLoginForm *bool) error {
	c.mu.Lock()
	c.filters.HasLoginForm = hasLoginForm
	c.page = 1
	c.mu.Unlock()
	return c.fetch(ctx)
}

// SetBrokenLinksFilter merges a broken-links-present predicate into
// the criteria.
func (c *Controller) SetBrokenLinksFilter(ctx context.Context, hasBrokenLinks *bool) error {
	c.mu.Lock()
	c.filters.HasBrokenLinks = hasBrokenLinks
	c.page = 1
	c.mu.Unlock()
	return c.fetch(ctx)
}

// SetLatestOnlyFilter merges the latest-analysis-only predicate into
// the criteria.
func (c *Controller) SetLatestOnlyFilter(ctx context.Context, latestOnly *bool) error {
	c.mu.Lock()
	c.filters.LatestOnly = latestOnly
	c.page = 1
	c.mu.Unlock()
	return c.fetch(ctx)
}

// SetSearch merges the free-text predicate into the criteria.
func (c *Controller) SetSearch(ctx context.Context, search string) error {
	c.mu.Lock()
	c.filters.Search = strings.TrimSpace(search)
	c.page = 1
	c.mu.Unlock()
	return c.fetch(ctx)
}

// ResetFilters clears every predicate and re-fetches from page 1.
func (c *Controller) ResetFilters(ctx context.Context) error {
	c.mu.Lock()
	c.filters = models.JobFilters{}
	c.page = 1
	c.mu.Unlock()
	return c.fetch(ctx)
}

// SortBy toggles direction when called with the current field and
// resets to ascending when the field changes.
func (c *Controller) SortBy(field SortField) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.field == field {
		if c.dir == Ascending {
			c.dir = Descending
		} else {
			c.dir = Ascending
		}
		return
	}

	c.field = field
	c.dir = Ascending
}

// SortField returns the current sort column.
func (c *Controller) SortField() SortField {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.field
}

// SortDirection returns the current sort direction.
func (c *Controller) SortDirection() SortDirection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dir
}

// Jobs returns the fetched page reordered by the current sort. With no
// sort column chosen the server order is kept.
func (c *Controller) Jobs() []models.Job {
	jobs := c.source.Jobs()

	c.mu.Lock()
	field, dir := c.field, c.dir
	c.mu.Unlock()

	if field == SortNone {
		return jobs
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		less := jobLess(jobs[i], jobs[j], field)
		if dir == Descending {
			return jobLess(jobs[j], jobs[i], field)
		}
		return less
	})

	return jobs
}

// jobLess orders two jobs on the given column. Every sortable column
// is matched explicitly.
func jobLess(a, b models.Job, field SortField) bool {
	switch field {
	case SortByTitle:
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	case SortByURL:
		return a.URL < b.URL
	case SortByStatus:
		return a.Status < b.Status
	case SortByInternal:
		return a.InternalLinks < b.InternalLinks
	case SortByExternal:
		return a.ExternalLinks < b.ExternalLinks
	case SortByBrokenLinks:
		return a.BrokenLinks < b.BrokenLinks
	case SortByCreatedAt:
		return a.CreatedAt.Before(b.CreatedAt)
	case SortNone:
		return false
	default:
		return false
	}
}

// CurrentPage returns the 1-indexed current page.
func (c *Controller) CurrentPage() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// TotalPages returns the page count of the last fetch.
func (c *Controller) TotalPages() int {
	return c.source.Pagination().TotalPages
}

// GoToPage fetches the given 1-indexed page. Page numbers below 1 are
// rejected here rather than passed through.
func (c *Controller) GoToPage(ctx context.Context, page int) error {
	if page < 1 {
		return fmt.Errorf("invalid page %d: pages are 1-indexed", page)
	}

	if total := c.TotalPages(); total > 0 && page > total {
		page = total
	}

	c.mu.Lock()
	c.page = page
	c.mu.Unlock()
	return c.fetch(ctx)
}

// NextPage advances one page; no-op on the last page.
func (c *Controller) NextPage(ctx context.Context) error {
	c.mu.Lock()
	page := c.page
	c.mu.Unlock()

	if total := c.TotalPages(); page >= total {
		return nil
	}
	return c.GoToPage(ctx, page+1)
}

// PrevPage goes back one page; no-op on the first page.
func (c *Controller) PrevPage(ctx context.Context) error {
	c.mu.Lock()
	page := c.page
	c.mu.Unlock()

	if page <= 1 {
		return nil
	}
	return c.GoToPage(ctx, page-1)
}

// fetch re-queries the source with the current criteria and page.
func (c *Controller) fetch(ctx context.Context) error {
	c.mu.Lock()
	q := models.ListQuery{
		Page:     c.page,
		PageSize: c.pageSize,
		Filters:  c.filters,
	}
	c.mu.Unlock()
	return c.source.FetchAll(ctx, q)
}
