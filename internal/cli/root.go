// Package cli implements the terminal dashboard client: submitting
// URLs for analysis, listing and watching jobs, inspecting results and
// deleting jobs against a remote url-insight service.
package cli

import (
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fuzumoe/url-insight-dashboard/internal/config"
	"github.com/fuzumoe/url-insight-dashboard/internal/gateway"
	"github.com/fuzumoe/url-insight-dashboard/internal/logging"
	"github.com/fuzumoe/url-insight-dashboard/internal/metrics"
	"github.com/fuzumoe/url-insight-dashboard/internal/selection"
	"github.com/fuzumoe/url-insight-dashboard/internal/store"
	"github.com/fuzumoe/url-insight-dashboard/internal/toast"
	"github.com/fuzumoe/url-insight-dashboard/internal/view"
)

var (
	apiURL string
	token  string
	debug  bool

	rootCmd = &cobra.Command{
		Use:   "dashboard",
		Short: "Terminal dashboard for the url-insight analysis service",
		Long:  `Submit websites for automated analysis and track each job through the server-side pipeline.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
)

// Execute runs the root command
func Execute() error {
	// Load .env early so environment variables are available
	_ = godotenv.Load()

	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "base URL of the url-insight service (default from URLINSIGHT_API_URL)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "session token (default from URLINSIGHT_API_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(newSubmitCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newResultsCommand())
	rootCmd.AddCommand(newDeleteCommand())
}

// app bundles the wired dashboard core for one command invocation.
type app struct {
	cfg     *config.Config
	log     *slog.Logger
	metrics *metrics.DashboardMetrics
	store   *store.Store
	tracker *selection.Tracker
	toasts  *toast.Queue
	view    *view.Controller
}

// newApp loads configuration, applies flag overrides and wires the
// store, selection tracker, toast queue and view controller together.
func newApp() *app {
	cfg := config.Load()
	if apiURL != "" {
		cfg.Gateway.BaseURL = apiURL
	}
	if token != "" {
		cfg.Gateway.Token = token
	}

	level := logging.LevelFromEnv()
	if debug {
		level = slog.LevelDebug
	}
	log := logging.Setup(logging.Opts{
		ServiceName: "dashboard",
		Level:       level,
	})

	var m *metrics.DashboardMetrics
	if config.GetBoolEnv("METRICS_ENABLED", false) {
		m = metrics.New()
		m.MustRegister()
		m.StartMetricsServer(cfg.Metrics.Port)
	}

	gw := gateway.NewClient(cfg.Gateway, gateway.WithLogger(log), gateway.WithMetrics(m))
	tracker := selection.NewTracker()

	jobStore := store.New(gw,
		store.WithLogger(log),
		store.WithMetrics(m),
		store.WithRemovalHook(tracker.Drop),
	)

	return &app{
		cfg:     cfg,
		log:     log,
		metrics: m,
		store:   jobStore,
		tracker: tracker,
		toasts:  toast.NewQueue(toast.WithLogger(log), toast.WithMetrics(m)),
		view:    view.NewController(jobStore, cfg.View.PageSize),
	}
}
