package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newDeleteCommand creates the delete command
func newDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <job-id> [job-id...]",
		Short: "Delete one or more jobs",
		Long:  `Delete jobs in parallel. Each id's outcome is independent; successes are not rolled back when others fail.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()

			for _, id := range args {
				a.tracker.ToggleOne(id)
			}

			result, err := a.store.DeleteMany(cmd.Context(), a.tracker.Selected())
			a.tracker.Clear()

			if len(result.Deleted) > 0 {
				a.toasts.Success(fmt.Sprintf("Deleted %d job(s)", len(result.Deleted)))
			}
			for id, delErr := range result.Failed {
				a.toasts.Error(fmt.Sprintf("Could not delete %s: %v", id, delErr))
			}
			a.flushToasts()

			return err
		},
	}
}
