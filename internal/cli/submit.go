package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fuzumoe/url-insight-dashboard/internal/models"
)

// newSubmitCommand creates the submit command
func newSubmitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "submit <url>",
		Short: "Submit a website for analysis",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()

			job, err := a.store.AnalyzeURL(cmd.Context(), args[0])
			if err != nil {
				a.toasts.Error(a.store.Err())
				a.flushToasts()
				return err
			}

			a.toasts.Success(fmt.Sprintf("Analysis started for %s", job.URL))
			a.flushToasts()

			renderJobs([]models.Job{*job}, a.store.Pagination(), 1)
			return nil
		},
	}
}
