package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fuzumoe/url-insight-dashboard/internal/store"
)

// newWatchCommand creates the watch command
func newWatchCommand() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh the job table until every job is terminal",
		Long:  `Poll the service on a fixed interval for as long as any job is queued or running, re-rendering the table on each refresh.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp()
			ctx := cmd.Context()

			if interval <= 0 {
				interval = a.cfg.Poll.Interval
			}

			if err := a.store.Refresh(ctx); err != nil {
				a.toasts.Error(a.store.Err())
				a.flushToasts()
				return err
			}
			renderJobs(a.store.Jobs(), a.store.Pagination(), a.store.Query().Page)

			poller := store.NewPoller(interval, nil,
				store.WithPollerLogger(a.log),
				store.WithPollerMetrics(a.metrics),
			)
			defer poller.Stop()

			poller.SetCallback(func() {
				if err := a.store.Refresh(context.Background()); err != nil {
					a.toasts.Error(a.store.Err())
				}

				fmt.Println()
				renderJobs(a.store.Jobs(), a.store.Pagination(), a.store.Query().Page)
				a.flushToasts()
			})

			ticker := time.NewTicker(250 * time.Millisecond)
			defer ticker.Stop()

			// Polling stays active only while jobs are queued or
			// running.
			for {
				poller.SetActive(a.store.HasActiveJobs())
				if !poller.Active() {
					fmt.Println("All jobs are terminal.")
					return nil
				}

				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
				}
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 0, "poll interval (default from URLINSIGHT_POLL_INTERVAL)")

	return cmd
}
