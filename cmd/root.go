package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/kirksw/ezorg/internal/config"
	"github.com/kirksw/ezorg/internal/github"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "ezorg",
	Short:         "Browse public repositories of a GitHub organization",
	Long:          `ezorg looks up a GitHub organization, lists its public repositories, and filters them by license.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		cmd.SetContext(withLogger(cmd.Context(), newLogger(cmd.ErrOrStderr(), level)))
	},
}

var (
	verbose    bool
	configPath string
)

func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (default: ./config.toml, ~/.config/ezorg/config.toml, or ~/.ezorg.toml)")
}

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext falls back to log.Default() when no logger is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
			return l
		}
	}
	return log.Default()
}

func newOrgClient(cfg *config.Config, org string, logger *log.Logger) *github.OrgClient {
	return github.NewOrgClient(org,
		github.WithBaseURL(cfg.GetBaseURL()),
		github.WithLogger(logger),
		github.WithFetcher(github.NewHTTPFetcher(cfg.GetTimeout(), logger)),
	)
}

// resolveLicense prefers the flag and falls back to the configured filter.
func resolveLicense(cmd *cobra.Command, flagValue string, cfg *config.Config) string {
	if cmd.Flags().Changed("license") {
		return flagValue
	}
	return cfg.GetLicense()
}
