package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fuzumoe/url-insight-dashboard/internal/models"
)

// newResultsCommand creates the results command
func newResultsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "results <job-id>",
		Short: "Show a job's analysis results and broken links",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()

			detail, err := a.store.LoadResults(cmd.Context(), args[0])
			if err != nil {
				a.toasts.Error(a.store.Err())
				a.flushToasts()
				return err
			}

			renderJobs([]models.Job{detail.Job}, models.Pagination{TotalItems: 1}, 1)
			fmt.Println()
			renderBrokenLinks(detail.BrokenLinks)
			return nil
		},
	}
}
