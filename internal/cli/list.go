package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fuzumoe/url-insight-dashboard/internal/models"
	"github.com/fuzumoe/url-insight-dashboard/internal/view"
)

// newListCommand creates the list command
func newListCommand() *cobra.Command {
	var (
		status      string
		loginForm   bool
		brokenLinks bool
		latestOnly  bool
		search      string
		page        int
		sortField   string
		sortDesc    bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List analysis jobs",
		Long:  `List jobs, narrowed by any combination of status, login-form, broken-links, latest-only and free-text filters.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()

			filters := models.JobFilters{Search: search}
			if status != "" {
				s := models.JobStatus(status)
				if !s.Valid() {
					return fmt.Errorf("unknown status %q", status)
				}
				filters.Status = &s
			}
			if cmd.Flags().Changed("login-form") {
				filters.HasLoginForm = &loginForm
			}
			if cmd.Flags().Changed("broken-links") {
				filters.HasBrokenLinks = &brokenLinks
			}
			if cmd.Flags().Changed("latest") {
				filters.LatestOnly = &latestOnly
			}

			if page < 1 {
				return fmt.Errorf("invalid page %d: pages are 1-indexed", page)
			}

			err := a.store.FetchAll(cmd.Context(), models.ListQuery{
				Page:     page,
				PageSize: a.cfg.View.PageSize,
				Filters:  filters,
			})
			if err != nil {
				a.toasts.Error(a.store.Err())
				a.flushToasts()
				return err
			}

			if sortField != "" {
				a.view.SortBy(view.SortField(sortField))
				if sortDesc {
					a.view.SortBy(view.SortField(sortField))
				}
			}

			renderJobs(a.view.Jobs(), a.store.Pagination(), page)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (queued|running|done|error|stopped)")
	cmd.Flags().BoolVar(&loginForm, "login-form", false, "filter by login-form detection")
	cmd.Flags().BoolVar(&brokenLinks, "broken-links", false, "filter by broken links present")
	cmd.Flags().BoolVar(&latestOnly, "latest", false, "only the latest analysis per URL")
	cmd.Flags().StringVar(&search, "search", "", "free-text search")
	cmd.Flags().IntVar(&page, "page", 1, "page number (1-indexed)")
	cmd.Flags().StringVar(&sortField, "sort", "", "sort column (title|url|status|internal_links|external_links|broken_links|created_at)")
	cmd.Flags().BoolVar(&sortDesc, "desc", false, "sort descending")

	return cmd
}
