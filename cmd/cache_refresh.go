package cmd

import (
	"fmt"
	"time"

	"github.com/kirksw/ezorg/internal/config"
	"github.com/kirksw/ezorg/internal/github"
	"github.com/kirksw/ezorg/internal/utils"
	"github.com/spf13/cobra"
)

var refreshCacheCmd = &cobra.Command{
	Use:   "refresh [org]",
	Short: "Refresh cache for organization(s)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRefreshCache,
}

func init() {
	cacheCmd.AddCommand(refreshCacheCmd)
}

func runRefreshCache(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	c := newCache(cfg)
	if ttlString != "" {
		duration, err := time.ParseDuration(ttlString)
		if err != nil {
			return fmt.Errorf("invalid TTL format: %w", err)
		}
		c.SetTTL(duration)
	}

	orgs := cfg.GetOrganizations()
	if len(args) == 1 {
		org, err := utils.ParseOrgIdentifier(args[0])
		if err != nil {
			return err
		}
		orgs = []string{org}
	}
	if len(orgs) == 0 {
		return fmt.Errorf("no organizations specified in config or as argument")
	}

	logger := loggerFromContext(cmd.Context())
	out := cmd.OutOrStdout()
	failed := 0

	for _, org := range orgs {
		fmt.Fprintf(out, "Refreshing cache for %s...\n", org)

		client := newOrgClient(cfg, org, logger)
		total, err := c.Refresh(org, func() ([]github.Repo, error) {
			return client.Repos(cmd.Context(), "")
		})
		if err != nil {
			failed++
			fmt.Fprintf(out, "Failed to refresh %s: %v\n", org, err)
			continue
		}

		fmt.Fprintf(out, "✓ Cached %d repositories from %s\n", total, org)
	}

	if failed == len(orgs) {
		return fmt.Errorf("failed to refresh any organization")
	}
	return nil
}
